package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/vocab"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <source> <category> <label>",
	Short: "Resolve a label to a vocabulary URI",
	Long: `Resolve one free-text label the way the mapper does and print the URI
with the strategy that produced it.

Categories: took_place_at, carried_out_by, member_of, made_of, unit,
current_owner, current_permanent_custodian, current_custodian,
current_location, transferred_title_from, exhibition.

Examples:
  museumwalk resolve agorha made_of bronze
  museumwalk resolve louvre current_location "Aile Richelieu, salle 500"
  museumwalk --offline resolve paris_musees made_of "Porcelaine"`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := hub.ParseSource(strings.ReplaceAll(args[0], "-", "_"))
		if err != nil {
			return err
		}
		category, err := parseCategory(args[1])
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		resolver, err := newResolver(cfg)
		if err != nil {
			return err
		}

		res := resolver.Lookup(cmd.Context(), vocab.Query{
			Source:   src,
			Category: category,
			Label:    strings.Join(args[2:], " "),
		})
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.URI, res.Strategy)
		return nil
	},
}
