package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/pipeline"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <source> <input-dir>",
	Short: "Audit source documents for extraction coverage",
	Long: `Extracts every document of a directory and reports:
- how often each intermediate field is found rather than defaulted
- which extra source fields appear, with their types and examples
- documents that could not be extracted

Use it to review extraction rules with data owners, e.g. a dimension axis
that is never filled for a source.

Example:
  museumwalk audit louvre input_louvre
  museumwalk audit agorha input_agorha --json -o agorha_audit.json`,
	Args: cobra.ExactArgs(2),
	RunE: runAudit,
}

// AuditReport contains the results of an extraction audit.
type AuditReport struct {
	Source            hub.SourceID          `json:"source"`
	TotalDocuments    int                   `json:"total_documents"`
	Extracted         int                   `json:"extracted"`
	Malformed         map[string]string     `json:"malformed,omitempty"`
	FieldCoverage     map[string]FieldStats `json:"field_coverage"`
	ExtraFields       map[string]FieldStats `json:"extra_fields"`
	TypeInconsistency map[string][]string   `json:"type_inconsistency,omitempty"`
}

// FieldStats tracks statistics for a single field.
type FieldStats struct {
	Count      int            `json:"count"`
	Percentage float64        `json:"percentage"`
	Types      map[string]int `json:"types,omitempty"`
	Examples   []string       `json:"examples,omitempty"`
}

func init() {
	auditCmd.Flags().IntP("examples", "e", 3, "Number of example values to include")
	auditCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	auditCmd.Flags().Bool("json", false, "Output as JSON")
	auditCmd.Flags().String("pattern", "", "File name pattern (default from the source's extensions)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	extractor, err := getExtractor(args[0])
	if err != nil {
		return err
	}
	inputDir := args[1]

	maxExamples, _ := cmd.Flags().GetInt("examples")
	outputFile, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	pattern, _ := cmd.Flags().GetString("pattern")

	runner := &pipeline.Runner{Extractor: extractor, Pattern: pattern}
	files, err := runner.Discover(inputDir)
	if err != nil {
		return err
	}

	var records []*hub.Record
	malformed := make(map[string]string)
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(inputDir, name))
		if err != nil {
			malformed[name] = err.Error()
			continue
		}
		rec, err := extractor.Extract(data)
		if err != nil {
			malformed[name] = err.Error()
			continue
		}
		records = append(records, rec)
	}

	report := auditRecords(records, maxExamples)
	report.Source = extractor.Name()
	report.TotalDocuments = len(files)
	if len(malformed) > 0 {
		report.Malformed = malformed
	}

	// Output
	var output []byte
	if jsonOutput {
		output, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
	} else {
		output = []byte(formatAuditReport(report))
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, output, 0644)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}

func auditRecords(records []*hub.Record, maxExamples int) *AuditReport {
	report := &AuditReport{
		Extracted:     len(records),
		FieldCoverage: make(map[string]FieldStats),
		ExtraFields:   make(map[string]FieldStats),
	}

	count := func(stats map[string]FieldStats, key, typ, example string) {
		s, ok := stats[key]
		if !ok {
			s = FieldStats{}
		}
		s.Count++
		if typ != "" {
			if s.Types == nil {
				s.Types = make(map[string]int)
			}
			s.Types[typ]++
		}
		if example != "" && len(s.Examples) < maxExamples && len(example) < 100 {
			found := false
			for _, ex := range s.Examples {
				if ex == example {
					found = true
					break
				}
			}
			if !found {
				s.Examples = append(s.Examples, example)
			}
		}
		stats[key] = s
	}

	for _, rec := range records {
		for _, f := range hub.Fields() {
			if v := rec.Get(f); v.Valid {
				count(report.FieldCoverage, f.String(), "", v.Value)
			}
		}
		for _, axis := range hub.Axes() {
			if v, _ := rec.Dimension(axis); v.Valid {
				count(report.FieldCoverage, axis.String(), "", v.Value)
			}
		}
		for _, m := range rec.Materials {
			if m.Valid {
				count(report.FieldCoverage, "materials", "", m.Value)
				break
			}
		}
		if rec.ChangedOwnershipThrough != nil {
			count(report.FieldCoverage, "changed_ownership_through", "", "")
		}

		if rec.Extra == nil {
			continue
		}
		for key := range rec.Extra.Fields {
			v, _ := rec.GetExtra(key)
			count(report.ExtraFields, key, getValueTypeName(v), getValueString(v))
		}
	}

	for _, stats := range []map[string]FieldStats{report.FieldCoverage, report.ExtraFields} {
		for key, s := range stats {
			if report.Extracted > 0 {
				s.Percentage = float64(s.Count) / float64(report.Extracted) * 100
			}
			stats[key] = s
		}
	}

	for key, s := range report.ExtraFields {
		if len(s.Types) < 2 {
			continue
		}
		var types []string
		for t := range s.Types {
			types = append(types, t)
		}
		sort.Strings(types)
		if report.TypeInconsistency == nil {
			report.TypeInconsistency = make(map[string][]string)
		}
		report.TypeInconsistency[key] = types
	}

	return report
}

func getValueTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func getValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64, bool:
		return fmt.Sprintf("%v", val)
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

func formatAuditReport(report *AuditReport) string {
	var sb strings.Builder

	sb.WriteString("=== Extraction Audit Report ===\n\n")
	sb.WriteString(fmt.Sprintf("Source: %s\n", report.Source))
	sb.WriteString(fmt.Sprintf("Documents: %d, extracted: %d, malformed: %d\n\n",
		report.TotalDocuments, report.Extracted, len(report.Malformed)))

	if len(report.Malformed) > 0 {
		sb.WriteString("MALFORMED DOCUMENTS:\n")
		names := make([]string, 0, len(report.Malformed))
		for name := range report.Malformed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", name, report.Malformed[name]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("FIELD COVERAGE (values found, not defaulted):\n")
	for _, name := range coverageOrder() {
		s := report.FieldCoverage[name]
		sb.WriteString(fmt.Sprintf("  %-46s %5d (%5.1f%%)\n", name, s.Count, s.Percentage))
	}
	sb.WriteString("\n")

	if len(report.TypeInconsistency) > 0 {
		sb.WriteString("TYPE INCONSISTENCIES (mixed types for same extra field):\n")
		for field, types := range report.TypeInconsistency {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", field, strings.Join(types, ", ")))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("EXTRA FIELDS BY FREQUENCY:\n")

	// Sort by count
	type kv struct {
		key   string
		stats FieldStats
	}
	var sorted []kv
	for k, v := range report.ExtraFields {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].stats.Count != sorted[j].stats.Count {
			return sorted[i].stats.Count > sorted[j].stats.Count
		}
		return sorted[i].key < sorted[j].key
	})

	for _, item := range sorted {
		sb.WriteString(fmt.Sprintf("  %s: %d (%.1f%%)\n", item.key, item.stats.Count, item.stats.Percentage))
		if len(item.stats.Examples) > 0 {
			sb.WriteString(fmt.Sprintf("    examples: %s\n", strings.Join(item.stats.Examples, ", ")))
		}
	}

	return sb.String()
}

// coverageOrder lists the coverage keys in record order.
func coverageOrder() []string {
	var names []string
	for _, f := range hub.Fields() {
		names = append(names, f.String())
	}
	for _, axis := range hub.Axes() {
		names = append(names, axis.String())
	}
	return append(names, "materials", "changed_ownership_through")
}
