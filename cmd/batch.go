package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/metrics"
	"github.com/lehigh-university-libraries/museumwalk/pipeline"
)

var (
	batchInputDir    string
	batchOutputDir   string
	batchWorkers     int
	batchPattern     string
	emitIntermediate bool
	metricsFile      string
)

var batchCmd = &cobra.Command{
	Use:   "batch <source>",
	Short: "Convert a directory of museum records",
	Long: `Convert every document of a directory to Linked Art.

Each document is written to <stem>_<source>_linkedart.jsonld in the output
directory. A document that cannot be converted is logged and skipped; the
command still succeeds once every document has been tried.

Examples:
  museumwalk batch louvre --input-dir input_louvre
  museumwalk batch agorha --input-dir input_agorha --pattern '*.{json,jsonld}' --workers 16
  museumwalk batch paris_musees --input-dir input_parismusees --metrics-file batch.prom`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchInputDir, "input-dir", "", "Directory of source documents")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "output", "Directory for Linked Art files")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Documents converted at once (default MUSEUMWALK_WORKERS)")
	batchCmd.Flags().StringVar(&batchPattern, "pattern", "", "File name pattern (default from the source's extensions)")
	batchCmd.Flags().BoolVar(&emitIntermediate, "emit-intermediate", false, "Also write each intermediate record")
	batchCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	_ = batchCmd.MarkFlagRequired("input-dir")
}

func runBatch(cmd *cobra.Command, args []string) error {
	extractor, err := getExtractor(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if batchWorkers > 0 {
		cfg.Workers = batchWorkers
	}

	mapper, err := newMapper(cfg)
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Extractor:        extractor,
		Mapper:           mapper,
		Workers:          cfg.Workers,
		Pattern:          batchPattern,
		EmitIntermediate: emitIntermediate,
	}

	report, err := runner.Run(cmd.Context(), batchInputDir, batchOutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d documents, %d converted, %d failed (%s)\n",
		report.RunID, report.Total, report.Succeeded, report.Failed(), report.Duration.Round(time.Millisecond))
	for _, f := range report.Failures {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", f.File, f.Err)
	}

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			slog.Error("metrics not written", "file", metricsFile, "error", err)
		}
	}

	return nil
}
