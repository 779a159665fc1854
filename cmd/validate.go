package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/hub"
)

var validateVerbose bool

var validateCmd = &cobra.Command{
	Use:   "validate <source> [file]...",
	Short: "Check source documents without converting",
	Long: `Validate source documents by extracting their intermediate record.

Reports documents that are not JSON or lack a mandatory field (title,
external identifier). No vocabulary lookup is made and nothing is written.

Input defaults to stdin.

Examples:
  museumwalk validate louvre cl010062370.json
  museumwalk validate agorha input_agorha/*.jsonld --verbose
  cat oeuvre.json | museumwalk validate paris_musees`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show a summary of each record")
}

func runValidate(cmd *cobra.Command, args []string) error {
	extractor, err := getExtractor(args[0])
	if err != nil {
		return err
	}

	files := args[1:]
	if len(files) == 0 {
		files = []string{""}
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, path := range files {
		data, name, err := readInput(path)
		if err != nil {
			return err
		}

		rec, err := extractor.Extract(data)
		if err != nil {
			invalid++
			var malformed *hub.MalformedRecordError
			if errors.As(err, &malformed) {
				fmt.Fprintf(out, "✗ %s: missing or invalid %s (%s)\n", name, malformed.Field, malformed.Reason)
			} else {
				fmt.Fprintf(out, "✗ %s: %v\n", name, err)
			}
			continue
		}

		fmt.Fprintf(out, "✓ %s: %s\n", name, truncate(rec.Title.Value, 60))
		if validateVerbose {
			printRecordSummary(out, rec)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("validation failed: %d of %d documents invalid", invalid, len(files))
	}
	return nil
}

func printRecordSummary(w io.Writer, rec *hub.Record) {
	fmt.Fprintf(w, "    ID: %s\n", rec.ExternalID.Value)
	for _, f := range hub.Fields() {
		if f == hub.FieldExternalID || f == hub.FieldTitle {
			continue
		}
		if v := rec.Get(f); v.Valid {
			fmt.Fprintf(w, "    %s: %s\n", f, truncate(v.Value, 60))
		}
	}
	if len(rec.Materials) > 0 {
		labels := make([]string, 0, len(rec.Materials))
		for _, m := range rec.Materials {
			labels = append(labels, m.Label())
		}
		fmt.Fprintf(w, "    materials: %v\n", labels)
	}
	for _, axis := range hub.Axes() {
		if v, unit := rec.Dimension(axis); v.Valid {
			fmt.Fprintf(w, "    %s: %s %s\n", axis, v.Value, unit)
		}
	}
	if typ := rec.GetExtraString("objectType"); typ != "" {
		fmt.Fprintf(w, "    object type: %s\n", typ)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
