package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
)

// itemOutput is the JSON shape for one decoded scan line.
type itemOutput struct {
	File      string      `json:"file"`
	Line      int         `json:"line"`
	Barcode   string      `json:"barcode"`
	Success   bool        `json:"success"`
	Fields    []gs1.Field `json:"fields,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
}

// FormatResults formats the batch outcome in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	switch format {
	case "json":
		return r.formatJSON()
	case "csv":
		return r.formatCSV()
	default:
		return r.formatText(), nil
	}
}

func (r *Result) formatJSON() (string, error) {
	outputs := make([]itemOutput, len(r.Items))
	for i, item := range r.Items {
		out := itemOutput{
			File:    item.File,
			Line:    item.Line,
			Barcode: item.Barcode,
		}
		if item.Err != nil {
			out.Error = item.Err.Error()
			out.ErrorType = gs1.ErrorCode(item.Err)
		} else {
			out.Success = true
			out.Fields = item.Result.Fields
		}
		outputs[i] = out
	}

	data, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding batch results: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Result) formatCSV() (string, error) {
	decoded := make([]*gs1.DecodeResult, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Err == nil {
			decoded = append(decoded, item.Result)
		}
	}
	return gs1.ToCSV(decoded)
}

func (r *Result) formatText() string {
	var b strings.Builder
	for _, item := range r.Items {
		if item.Err != nil {
			b.WriteString(fmt.Sprintf("%s:%d: %s\n", item.File, item.Line, item.Err.Error()))
			continue
		}
		b.WriteString(gs1.ToPlainText(item.Result))
	}
	return b.String()
}

// SaveResults writes the formatted results to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	perBarcode := time.Duration(0)
	if len(r.Items) > 0 {
		perBarcode = r.Duration / time.Duration(len(r.Items))
	}
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Scan files: %d\n", len(r.Files))
	_, _ = fmt.Fprintf(os.Stdout, "  Barcodes: %d\n", len(r.Items))
	_, _ = fmt.Fprintf(os.Stdout, "  Decoded: %d\n", r.Succeeded)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", r.Failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per barcode: %v\n", perBarcode.Round(time.Microsecond))
}
