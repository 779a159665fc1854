package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/mapping"
)

var overridesCmd = &cobra.Command{
	Use:   "overrides",
	Short: "Manage vocabulary override tables",
	Long: `List, inspect and validate the curated override tables consulted before
any Getty or Wikidata lookup.

Tables are embedded in the binary. A directory given with --overrides-dir
(or MUSEUMWALK_OVERRIDES_DIR) replaces the embedded table of every source it
holds a table for.`,
}

var overridesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List override tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		registry, err := loadTables(cfg)
		if err != nil {
			return err
		}

		sources := registry.List()
		if len(sources) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No override tables found")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Override tables:")
		for _, src := range sources {
			table, _ := registry.Get(src)
			desc := ""
			if table.Description != "" {
				desc = " - " + table.Description
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s%s\n", table.VersionedName(), desc)
			for _, c := range mapping.Categories() {
				ct := table.Category(c)
				if ct == nil {
					continue
				}
				flags := ""
				if ct.LocalOnly {
					flags = " (local only)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "    %-28s %3d entries%s\n", c, len(ct.Entries), flags)
			}
		}

		return nil
	},
}

var overridesShowCmd = &cobra.Command{
	Use:   "show <source>",
	Short: "Show an override table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := hub.ParseSource(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		registry, err := loadTables(cfg)
		if err != nil {
			return err
		}

		table, ok := registry.Get(src)
		if !ok {
			return fmt.Errorf("no override table for %s", src)
		}

		// Print as YAML
		out, err := table.Marshal()
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var overridesValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate override table files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			table, err := mapping.LoadTable(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", path, err)
				continue
			}

			entries := 0
			for _, ct := range table.Categories {
				entries += len(ct.Entries)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s, %d categories, %d entries\n",
				path, table.VersionedName(), len(table.Categories), entries)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d tables invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	overridesCmd.AddCommand(overridesListCmd)
	overridesCmd.AddCommand(overridesShowCmd)
	overridesCmd.AddCommand(overridesValidateCmd)
}
