package gs1

import (
	"errors"
	"fmt"
)

// The decode error set is closed: every way a structurally invalid barcode
// can fail maps to exactly one of the types below. All of them are expected,
// caller-recoverable conditions carried as values; the engine never panics
// on malformed input.

// NotGS1BarcodeError reports input that is missing the FNC1 symbology
// prefix or has no payload beyond it.
type NotGS1BarcodeError struct {
	Barcode string
}

func (e *NotGS1BarcodeError) Error() string {
	return fmt.Sprintf("not a GS1 barcode: %q", e.Barcode)
}

// AINotFoundError reports that no catalogue entry's code is a prefix of
// the remaining barcode substring.
type AINotFoundError struct {
	Remainder string
}

func (e *AINotFoundError) Error() string {
	return fmt.Sprintf("no application identifier matches %q", e.Remainder)
}

// ValueTooShortError reports a fixed-length AI with fewer characters left
// in the barcode than its definition requires. Context is the substring
// that was examined.
type ValueTooShortError struct {
	Code     string
	Required int
	Context  string
}

func (e *ValueTooShortError) Error() string {
	return fmt.Sprintf("AI %s requires %d characters, have %d in %q",
		e.Code, e.Required, len(e.Context), e.Context)
}

// SeparatorNotFoundError reports a variable-length AI whose value exceeded
// its maximum length without a group separator. Context is the substring
// starting at the offending AI's code.
type SeparatorNotFoundError struct {
	Code    string
	Context string
}

func (e *SeparatorNotFoundError) Error() string {
	return fmt.Sprintf("AI %s exceeded its maximum length without a separator in %q",
		e.Code, e.Context)
}

// ErrorCode returns a stable wire identifier for a decode error, or
// "decode_error" for anything outside the closed set.
func ErrorCode(err error) string {
	var (
		notGS1      *NotGS1BarcodeError
		aiNotFound  *AINotFoundError
		tooShort    *ValueTooShortError
		noSeparator *SeparatorNotFoundError
	)
	switch {
	case errors.As(err, &notGS1):
		return "not_gs1_barcode"
	case errors.As(err, &aiNotFound):
		return "ai_not_found"
	case errors.As(err, &tooShort):
		return "value_too_short"
	case errors.As(err, &noSeparator):
		return "separator_not_found"
	default:
		return "decode_error"
	}
}
