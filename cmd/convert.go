package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/museumwalk/linkedart"
	"github.com/lehigh-university-libraries/museumwalk/pipeline"
	"github.com/lehigh-university-libraries/museumwalk/source"
)

var (
	inputFile    string
	outputFile   string
	intermediate bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [source]",
	Short: "Convert one museum record to Linked Art",
	Long: `Convert a single source document to a Linked Art object.

Arguments:
  source  Source the document comes from (agorha, louvre, paris_musees).
          When omitted, the source is detected from the file extension
          and content.

Input defaults to stdin, output defaults to stdout.

Examples:
  # Louvre record from a file
  museumwalk convert louvre -i cl010062370.json

  # Detect the source
  museumwalk convert -i notice.jsonld -o notice_agorha_linkedart.jsonld

  # Show the intermediate record instead
  cat oeuvre.json | museumwalk convert paris_musees --intermediate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().BoolVar(&intermediate, "intermediate", false, "Write the intermediate record instead of Linked Art")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	data, inputName, err := readInput(inputFile)
	if err != nil {
		return err
	}

	var extractor source.Extractor
	if len(args) == 1 {
		extractor, err = getExtractor(args[0])
	} else {
		extractor, err = source.Detect(inputName, data)
	}
	if err != nil {
		return err
	}

	rec, err := extractor.Extract(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputName, err)
	}

	var out []byte
	if intermediate {
		out, err = pipeline.EncodeIntermediate(rec)
	} else {
		cfg, cerr := loadConfig(cmd)
		if cerr != nil {
			return cerr
		}
		mapper, merr := newMapper(cfg)
		if merr != nil {
			return merr
		}
		out, err = linkedart.Marshal(mapper.Map(cmd.Context(), rec))
	}
	if err != nil {
		return err
	}

	// Determine output destination
	var output io.Writer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = cmd.OutOrStdout()
	}

	if _, err := output.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// readInput reads a whole document from path, or from stdin when path is
// empty.
func readInput(path string) ([]byte, string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening input file: %w", err)
	}
	return data, path, nil
}
