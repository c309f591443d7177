package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale converts source values, which are stated in millions, to base units.
var Scale = decimal.NewFromInt(1_000_000)

// ParseError reports an amount cell that is not a usable number after cleaning.
type ParseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing amount %q: %s: %v", e.Raw, e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing amount %q: %s", e.Raw, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse converts a raw currency string such as "$1,500" or "-" into base units.
// A cell made only of dashes is the zero placeholder.
func Parse(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return decimal.Zero, &ParseError{Raw: raw, Reason: "empty value"}
	}
	if strings.Trim(cleaned, "-") == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &ParseError{Raw: raw, Reason: "not a number", Err: err}
	}
	if d.IsNegative() {
		return decimal.Zero, &ParseError{Raw: raw, Reason: "negative amount"}
	}
	return d.Mul(Scale), nil
}
