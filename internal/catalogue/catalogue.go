// Package catalogue loads GS1 Application Identifier tables into the
// decoding engine's catalogue form. A full standard table ships embedded;
// hosts can point at their own JSON or YAML file instead.
package catalogue

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
	"gopkg.in/yaml.v3"
)

//go:embed ai_catalogue.json
var embedded []byte

// Record mirrors the on-disk catalogue entry format. Field names follow
// the reference JSON table: "id" is the AI code, "length" the exact or
// maximum value length, "fnc1" flags a variable-length value terminated
// by the group separator.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Length      int    `json:"length" yaml:"length"`
	Description string `json:"description" yaml:"description"`
	DataTitle   string `json:"dataTitle" yaml:"dataTitle"`
	FNC1        bool   `json:"fnc1" yaml:"fnc1"`
	Decimals    int    `json:"decimals" yaml:"decimals"`
	ShortName   string `json:"shortName" yaml:"shortName"`
	DataType    string `json:"dataType" yaml:"dataType"`
}

// Default returns the embedded standard AI table.
func Default() (*gs1.Catalogue, error) {
	return ParseJSON(embedded)
}

// Load reads an AI table from path, selecting the format by extension
// (.yaml/.yml for YAML, JSON otherwise). Record order in the file is
// preserved and determines resolution precedence.
func Load(path string) (*gs1.Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON array of catalogue records.
func ParseJSON(data []byte) (*gs1.Catalogue, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing catalogue JSON: %w", err)
	}
	return build(records)
}

// ParseYAML parses a YAML sequence of catalogue records.
func ParseYAML(data []byte) (*gs1.Catalogue, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing catalogue YAML: %w", err)
	}
	return build(records)
}

func build(records []Record) (*gs1.Catalogue, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalogue contains no records")
	}

	defs := make([]gs1.Definition, len(records))
	for i, r := range records {
		defs[i] = gs1.Definition{
			Code:        r.ID,
			MaxLength:   r.Length,
			Variable:    r.FNC1,
			Decimals:    r.Decimals,
			Title:       r.DataTitle,
			ShortName:   r.ShortName,
			DataType:    r.DataType,
			Description: r.Description,
		}
	}

	cat, err := gs1.NewCatalogue(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}
	return cat, nil
}
