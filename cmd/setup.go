package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/config"
	"github.com/lehigh-university-libraries/museumwalk/linkedart"
	"github.com/lehigh-university-libraries/museumwalk/mapping"
	"github.com/lehigh-university-libraries/museumwalk/source"
	"github.com/lehigh-university-libraries/museumwalk/vocab"
)

// loadConfig reads the environment configuration and applies the
// persistent flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("overrides-dir") {
		cfg.OverridesDir = overridesDir
	}
	if flags.Changed("offline") {
		cfg.Offline = offline
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	logLevel.Set(cfg.Level())
	return cfg, nil
}

// loadTables returns the embedded override tables overlaid by the
// configured directory.
func loadTables(cfg config.Config) (*mapping.Registry, error) {
	tables, err := mapping.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading embedded override tables: %w", err)
	}
	if cfg.OverridesDir != "" {
		if err := tables.LoadFromDirectory(cfg.OverridesDir); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

// newResolver builds the overrides → Getty → Wikidata chain.
func newResolver(cfg config.Config) (*vocab.Resolver, error) {
	tables, err := loadTables(cfg)
	if err != nil {
		return nil, err
	}

	getty := vocab.NewGetty(vocab.NewSPARQLClient(vocab.StrategyGetty, cfg.GettyEndpoint, cfg.HTTPTimeout, cfg.UserAgent))
	wikidata := vocab.NewWikidata(vocab.NewSPARQLClient(vocab.StrategyWikidata, cfg.WikidataEndpoint, cfg.HTTPTimeout, cfg.UserAgent), cfg.WikidataLanguage)

	return vocab.New(tables,
		vocab.WithRemote(getty, wikidata),
		vocab.WithOffline(cfg.Offline),
	), nil
}

func newMapper(cfg config.Config) (*linkedart.Mapper, error) {
	resolver, err := newResolver(cfg)
	if err != nil {
		return nil, err
	}
	return linkedart.NewMapper(resolver), nil
}

func getExtractor(name string) (source.Extractor, error) {
	e, err := source.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(sourceNames(), ", "))
	}
	return e, nil
}

func sourceNames() []string {
	var names []string
	for _, e := range source.List() {
		names = append(names, string(e.Name()))
	}
	return names
}

func parseCategory(s string) (mapping.Category, error) {
	c := mapping.Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (available: %v)", s, mapping.Categories())
	}
	return c, nil
}
