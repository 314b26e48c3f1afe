package gs1

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ToPlainText renders a decode result as aligned human-readable lines,
// one per field.
func ToPlainText(res *DecodeResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Barcode: %s\n", res.Barcode))
	b.WriteString(fmt.Sprintf("Fields:  %d\n", len(res.Fields)))

	codeWidth, titleWidth := 2, 0
	for _, f := range res.Fields {
		if len(f.Definition.Code) > codeWidth {
			codeWidth = len(f.Definition.Code)
		}
		if len(f.Definition.Title) > titleWidth {
			titleWidth = len(f.Definition.Title)
		}
	}

	for _, f := range res.Fields {
		b.WriteString(fmt.Sprintf("  (%s)%s %-*s %s\n",
			f.Definition.Code,
			strings.Repeat(" ", codeWidth-len(f.Definition.Code)),
			titleWidth, f.Definition.Title,
			f.Value))
	}

	return b.String()
}

// ToCSV renders decode results as CSV with one row per decoded field.
func ToCSV(results []*DecodeResult) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"barcode", "ai", "title", "short_name", "value"}); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}

	for _, res := range results {
		for _, f := range res.Fields {
			row := []string{res.Barcode, f.Definition.Code, f.Definition.Title, f.Definition.ShortName, f.Value}
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	return b.String(), nil
}
