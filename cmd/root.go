// Package cmd provides CLI commands for museumwalk.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/config"
)

// logLevel is read from LOG_LEVEL at startup and updated once the
// configuration, which may come from a dotenv file, is loaded.
var logLevel = new(slog.LevelVar)

func setupLogger() {
	logLevel.Set(config.ParseLogLevel(os.Getenv("LOG_LEVEL")))

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var (
	overridesDir string
	offline      bool
	envFile      string
)

var rootCmd = &cobra.Command{
	Use:   "museumwalk",
	Short: "Convert museum object records to Linked Art",
	Long: `Museumwalk converts museum object records to Linked Art.

Records from Agorha (INHA), the Louvre collections and Paris Musées are first
normalised into a common intermediate record, then mapped to a Linked Art
HumanMadeObject. Free-text labels (materials, places, people, institutions)
are resolved to Getty and Wikidata URIs through curated override tables and
the Getty and Wikidata SPARQL services.

Examples:
  museumwalk convert louvre -i cl010062370.json
  museumwalk batch agorha --input-dir input_agorha --output-dir output
  museumwalk resolve louvre made_of "Matériau : bronze"
  museumwalk overrides list`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Commands that never load the full configuration still honour
		// LOG_LEVEL from the dotenv file.
		if cfg, err := config.Load(envFile); err == nil {
			logLevel.Set(cfg.Level())
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()

	rootCmd.PersistentFlags().StringVar(&overridesDir, "overrides-dir", "", "Directory of override tables replacing the embedded ones (env MUSEUMWALK_OVERRIDES_DIR)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Skip Getty and Wikidata lookups (env MUSEUMWALK_OFFLINE)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file with MUSEUMWALK_* settings")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(overridesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(auditCmd)
}
