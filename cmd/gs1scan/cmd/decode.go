package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MeKo-Tech/gs1scan/internal/catalogue"
	"github.com/MeKo-Tech/gs1scan/internal/config"
	"github.com/MeKo-Tech/gs1scan/internal/gs1"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatText = "text"
)

// decodeOutput is the JSON shape for one decoded barcode on the CLI.
type decodeOutput struct {
	Barcode   string      `json:"barcode"`
	Success   bool        `json:"success"`
	Fields    []gs1.Field `json:"fields,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
}

// decodeCmd represents the decode command.
var decodeCmd = &cobra.Command{
	Use:   "decode [barcodes...]",
	Short: "Decode GS1 barcodes into their AI fields",
	Long: `Decode one or more GS1 element strings into Application Identifier fields.

Barcodes are taken from the arguments, or one per line from stdin when
--stdin is given. Scanner output usually replaces the FNC1 character with
the symbology identifier "]C1" and embeds ASCII GS (0x1D) separators.

Examples:
  gs1scan decode ']C10112345678901234'
  gs1scan decode --format json ']C110ABC123'
  cat scans.txt | gs1scan decode --stdin --format csv`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromStdin, _ := cmd.Flags().GetBool("stdin")
		continueOnError, _ := cmd.Flags().GetBool("continue-on-error")

		cfg := GetConfig()

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}

		validFormats := []string{outputFormatText, outputFormatJSON, outputFormatCSV}
		isValidFormat := false
		for _, f := range validFormats {
			if format == f {
				isValidFormat = true
				break
			}
		}
		if !isValidFormat {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
		}

		barcodes := args
		if fromStdin {
			var err error
			barcodes, err = readBarcodeLines(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading barcodes from stdin: %w", err)
			}
		}
		if len(barcodes) == 0 {
			return errors.New("no barcodes provided")
		}

		scanner, err := buildScanner(cfg, cmd)
		if err != nil {
			return err
		}

		outputs := make([]decodeOutput, 0, len(barcodes))
		var decoded []*gs1.DecodeResult
		var failed int
		for _, barcode := range barcodes {
			res, err := scanner.Decode(barcode).Get()
			if err != nil {
				failed++
				outputs = append(outputs, decodeOutput{
					Barcode:   barcode,
					Error:     err.Error(),
					ErrorType: gs1.ErrorCode(err),
				})
				if !continueOnError {
					break
				}
				continue
			}
			decoded = append(decoded, res)
			outputs = append(outputs, decodeOutput{
				Barcode: barcode,
				Success: true,
				Fields:  res.Fields,
			})
		}

		rendered, err := renderOutputs(format, outputs, decoded)
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
		} else if _, err := fmt.Fprint(cmd.OutOrStdout(), rendered); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d barcode(s) failed to decode", failed, len(barcodes))
		}
		return nil
	},
}

// buildScanner loads the configured catalogue and constructs a scanner,
// honoring per-command flag overrides.
func buildScanner(cfg *config.Config, cmd *cobra.Command) (*gs1.Scanner, error) {
	fnc1 := cfg.Decode.FNC1Prefix
	if cmd.Flags().Changed("fnc1") {
		fnc1, _ = cmd.Flags().GetString("fnc1")
	}
	separator := cfg.Decode.Separator
	if cmd.Flags().Changed("separator") {
		separator, _ = cmd.Flags().GetString("separator")
	}

	cat, err := loadCatalogue(cfg)
	if err != nil {
		return nil, err
	}

	var opts []gs1.Option
	if fnc1 != "" {
		opts = append(opts, gs1.WithFNC1Prefix(fnc1))
	}
	if separator != "" {
		opts = append(opts, gs1.WithSeparator(separator))
	}
	return gs1.NewScanner(cat, opts...), nil
}

// loadCatalogue returns the configured AI table, embedded by default.
func loadCatalogue(cfg *config.Config) (*gs1.Catalogue, error) {
	if cfg.CataloguePath != "" {
		cat, err := catalogue.Load(cfg.CataloguePath)
		if err != nil {
			return nil, fmt.Errorf("loading catalogue %s: %w", cfg.CataloguePath, err)
		}
		return cat, nil
	}
	cat, err := catalogue.Default()
	if err != nil {
		return nil, fmt.Errorf("loading embedded catalogue: %w", err)
	}
	return cat, nil
}

// readBarcodeLines reads one barcode per line, skipping blank lines.
func readBarcodeLines(r io.Reader) ([]string, error) {
	var barcodes []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r\n")
		if line == "" {
			continue
		}
		barcodes = append(barcodes, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return barcodes, nil
}

// renderOutputs formats decode outcomes in the requested output format.
func renderOutputs(format string, outputs []decodeOutput, decoded []*gs1.DecodeResult) (string, error) {
	switch format {
	case outputFormatJSON:
		data, err := json.MarshalIndent(outputs, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding JSON output: %w", err)
		}
		return string(data) + "\n", nil
	case outputFormatCSV:
		return gs1.ToCSV(decoded)
	default:
		var b strings.Builder
		for _, out := range outputs {
			if !out.Success {
				b.WriteString(fmt.Sprintf("Barcode: %s\n  error: %s\n", out.Barcode, out.Error))
				continue
			}
			b.WriteString(gs1.ToPlainText(&gs1.DecodeResult{Barcode: out.Barcode, Fields: out.Fields}))
		}
		return b.String(), nil
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("format", "f", "text", "output format (text, json, csv)")
	decodeCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	decodeCmd.Flags().Bool("stdin", false, "read barcodes from stdin, one per line")
	decodeCmd.Flags().Bool("continue-on-error", false, "keep decoding remaining barcodes after a failure")
	decodeCmd.Flags().String("fnc1", "", "override the FNC1 symbology prefix")
	decodeCmd.Flags().String("separator", "", "override the group separator")

	_ = viper.BindPFlag("output.format", decodeCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", decodeCmd.Flags().Lookup("output"))
}
