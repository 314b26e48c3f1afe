package gs1

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/gs1scan/internal/result"
)

// Definition describes a single GS1 Application Identifier.
type Definition struct {
	// Code is the AI's numeric code and the prefix matched against the
	// barcode, e.g. "01" for GTIN.
	Code string `json:"code"`

	// MaxLength is the exact value length for fixed-length AIs and the
	// maximum for variable-length ones.
	MaxLength int `json:"max_length"`

	// Variable marks the value as terminated by the group separator
	// rather than by a fixed character count.
	Variable bool `json:"variable"`

	// Decimals is the number of leading digits before an implied decimal
	// point; 0 means no decimal insertion.
	Decimals int `json:"decimals"`

	// Descriptive metadata, carried through but never interpreted.
	Title       string `json:"title,omitempty"`
	ShortName   string `json:"short_name,omitempty"`
	DataType    string `json:"data_type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Catalogue is an ordered, read-only table of AI definitions. Resolution
// is first-match-in-catalogue-order; the order given at construction is
// preserved and never re-sorted.
type Catalogue struct {
	defs []Definition
}

// NewCatalogue validates defs and returns a catalogue preserving their
// order. Codes must be non-empty digit strings and distinct; overlapping
// prefixes are allowed and tie-break by order.
func NewCatalogue(defs []Definition) (*Catalogue, error) {
	seen := make(map[string]struct{}, len(defs))
	for i, d := range defs {
		if d.Code == "" || !isDigits(d.Code) {
			return nil, fmt.Errorf("definition %d: AI code %q must be a non-empty digit string", i, d.Code)
		}
		if d.MaxLength <= 0 {
			return nil, fmt.Errorf("AI %s: max length %d must be positive", d.Code, d.MaxLength)
		}
		if d.Decimals < 0 {
			return nil, fmt.Errorf("AI %s: decimal count %d must not be negative", d.Code, d.Decimals)
		}
		if _, dup := seen[d.Code]; dup {
			return nil, fmt.Errorf("duplicate AI code %q", d.Code)
		}
		seen[d.Code] = struct{}{}
	}

	c := &Catalogue{defs: make([]Definition, len(defs))}
	copy(c.defs, defs)
	return c, nil
}

// Len returns the number of definitions in the catalogue.
func (c *Catalogue) Len() int {
	return len(c.defs)
}

// Definitions returns a copy of the catalogue entries in order.
func (c *Catalogue) Definitions() []Definition {
	defs := make([]Definition, len(c.defs))
	copy(defs, c.defs)
	return defs
}

// Find returns the definition with exactly the given code, if present.
func (c *Catalogue) Find(code string) (Definition, bool) {
	for _, d := range c.defs {
		if d.Code == code {
			return d, true
		}
	}
	return Definition{}, false
}

// Resolve returns the first definition in catalogue order whose code is a
// prefix of remainder, or an AINotFoundError if none matches. The linear
// scan is fine at catalogue scale (~500 entries).
func (c *Catalogue) Resolve(remainder string) result.Result[Definition] {
	for _, d := range c.defs {
		if strings.HasPrefix(remainder, d.Code) {
			return result.Ok(d)
		}
	}
	return result.Err[Definition](&AINotFoundError{Remainder: remainder})
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
