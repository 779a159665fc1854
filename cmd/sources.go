package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/pipeline"
	"github.com/lehigh-university-libraries/museumwalk/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported museum sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		extractors := source.List()
		if len(extractors) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sources registered")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Available sources:")
		for _, e := range extractors {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %-18s %s\n",
				e.Name(),
				pipeline.DefaultPattern(e.Extensions()),
				e.Description())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nOutput files: <stem>_<%s>_linkedart.jsonld\n", strings.Join(sourceNames(), "|"))
		return nil
	},
}
