package gs1

import (
	"strings"

	"github.com/MeKo-Tech/gs1scan/internal/result"
)

// Field pairs a matched AI definition with the value extracted for it.
// The value already includes the decimal point when the definition
// configures one.
type Field struct {
	Definition Definition `json:"definition"`
	Value      string     `json:"value"`
}

// fieldSpan reports a decoded field and how many characters of the
// post-code substring it consumed, including a trailing separator when
// one terminated the value. The consumed count always reflects the raw
// value length, never the decimal display length.
type fieldSpan struct {
	field    Field
	consumed int
}

// decodeField extracts the value for def from rest, the barcode substring
// immediately after the AI code.
func decodeField(def Definition, rest, separator string) result.Result[fieldSpan] {
	if def.Variable {
		return decodeVariable(def, rest, separator)
	}
	return decodeFixed(def, rest)
}

// decodeFixed takes exactly MaxLength characters.
func decodeFixed(def Definition, rest string) result.Result[fieldSpan] {
	if len(rest) < def.MaxLength {
		return result.Err[fieldSpan](&ValueTooShortError{
			Code:     def.Code,
			Required: def.MaxLength,
			Context:  rest,
		})
	}

	raw := rest[:def.MaxLength]
	return result.Ok(fieldSpan{
		field:    Field{Definition: def, Value: insertDecimal(raw, def.Decimals)},
		consumed: len(raw),
	})
}

// decodeVariable scans for the group separator. A value may also end at
// the end of the barcode, provided it stays within MaxLength.
func decodeVariable(def Definition, rest, separator string) result.Result[fieldSpan] {
	if i := strings.Index(rest, separator); i >= 0 && i <= def.MaxLength {
		raw := rest[:i]
		return result.Ok(fieldSpan{
			field:    Field{Definition: def, Value: insertDecimal(raw, def.Decimals)},
			consumed: i + len(separator),
		})
	}

	if len(rest) <= def.MaxLength {
		return result.Ok(fieldSpan{
			field:    Field{Definition: def, Value: insertDecimal(rest, def.Decimals)},
			consumed: len(rest),
		})
	}

	return result.Err[fieldSpan](&SeparatorNotFoundError{
		Code:    def.Code,
		Context: def.Code + rest,
	})
}

// insertDecimal places a decimal point after the first decimals characters
// of raw. Values too short to split are returned unchanged.
func insertDecimal(raw string, decimals int) string {
	if decimals <= 0 || decimals >= len(raw) {
		return raw
	}
	return raw[:decimals] + "." + raw[decimals:]
}
