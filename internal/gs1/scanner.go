package gs1

import (
	"strings"

	"github.com/MeKo-Tech/gs1scan/internal/result"
)

// Defaults for GS1-128 payloads as reported by most scanner firmware:
// the symbology identifier "]C1" and the ASCII group separator.
const (
	DefaultFNC1Prefix = "]C1"
	DefaultSeparator  = "\x1d"
)

// Scanner decodes GS1 element strings against a fixed catalogue. A Scanner
// is immutable after construction and safe for concurrent use; Decode holds
// no state across calls.
type Scanner struct {
	catalogue *Catalogue
	fnc1      string
	separator string
}

// Option customizes a Scanner at construction time.
type Option func(*Scanner)

// WithFNC1Prefix overrides the symbology identifier expected at the start
// of every barcode.
func WithFNC1Prefix(prefix string) Option {
	return func(s *Scanner) { s.fnc1 = prefix }
}

// WithSeparator overrides the group separator that terminates
// variable-length values.
func WithSeparator(separator string) Option {
	return func(s *Scanner) { s.separator = separator }
}

// NewScanner returns a scanner over the given catalogue with the default
// FNC1 prefix and group separator unless overridden.
func NewScanner(catalogue *Catalogue, opts ...Option) *Scanner {
	s := &Scanner{
		catalogue: catalogue,
		fnc1:      DefaultFNC1Prefix,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalogue returns the catalogue the scanner decodes against.
func (s *Scanner) Catalogue() *Catalogue {
	return s.catalogue
}

// FNC1Prefix returns the configured symbology identifier.
func (s *Scanner) FNC1Prefix() string {
	return s.fnc1
}

// Separator returns the configured group separator.
func (s *Scanner) Separator() string {
	return s.separator
}

// IsGS1Format reports whether barcode starts with the FNC1 prefix and has
// at least one character of payload beyond it.
func (s *Scanner) IsGS1Format(barcode string) bool {
	return strings.HasPrefix(barcode, s.fnc1) && len(barcode) > len(s.fnc1)
}

// Decode parses barcode into its AI fields, in order of occurrence. The
// first error terminates the decode with no partial result; re-decoding
// the same input always yields an equal result.
func (s *Scanner) Decode(barcode string) result.Result[*DecodeResult] {
	if !s.IsGS1Format(barcode) {
		return result.Err[*DecodeResult](&NotGS1BarcodeError{Barcode: barcode})
	}

	decoded := &DecodeResult{Barcode: barcode}
	remainder := barcode[len(s.fnc1):]
	for remainder != "" {
		rest := remainder
		span := result.Chain(s.catalogue.Resolve(rest), func(def Definition) result.Result[fieldSpan] {
			return decodeField(def, rest[len(def.Code):], s.separator)
		})
		if span.IsErr() {
			_, err := span.Get()
			return result.Err[*DecodeResult](err)
		}

		sp := span.MustGet()
		decoded.Fields = append(decoded.Fields, sp.field)

		remainder = remainder[len(sp.field.Definition.Code)+sp.consumed:]
		// A separator may still precede the next AI when the previous
		// field was fixed-length; drop a single occurrence.
		remainder = strings.TrimPrefix(remainder, s.separator)
	}

	return result.Ok(decoded)
}

// DecodeResult holds a successfully decoded barcode and its fields in
// order of occurrence. The same AI code may appear more than once.
type DecodeResult struct {
	Barcode string  `json:"barcode"`
	Fields  []Field `json:"fields"`
}

// FindFirstByCode returns the first decoded field whose AI code matches.
func (r *DecodeResult) FindFirstByCode(code string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Definition.Code == code {
			return f, true
		}
	}
	return Field{}, false
}
