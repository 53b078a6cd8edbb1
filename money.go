package portfolio

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a parsed monetary or quantity value. The zero Amount is the
// explicit "missing or unparseable" marker: it is distinct from a valid
// zero value, so a failed parse never silently becomes 0.0 in a P&L sum.
type Amount struct {
	Value float64
	Valid bool
}

// Amt wraps a known-good float into a valid Amount.
func Amt(v float64) Amount { return Amount{Value: v, Valid: true} }

// Or returns the amount's value, or the fallback when the amount is missing.
func (a Amount) Or(fallback float64) float64 {
	if !a.Valid {
		return fallback
	}
	return a.Value
}

// ParseAmount normalizes a heterogeneous textual numeric representation into
// an Amount. Broker exports mix plain numbers ("159.00"), thousands
// separators ("1,234.56") and currency-qualified strings ("USD 159.00",
// currency code first, amount last). Blank and NaN cells yield the missing
// marker, never zero.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return Amount{}
	}
	if fields := strings.Fields(s); len(fields) == 2 {
		// "USD 159.00" form: the numeric value is the final token.
		s = fields[1]
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	v := d.InexactFloat64()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{Value: v, Valid: true}
}

// ConvertBase converts a monetary figure into the base currency using a
// single point-in-time FX rate, expressed as EUR per 1 USD. Only the
// USD/EUR pair is supported; any other currency is passed through
// unconverted. This is a known limitation, not an extension point.
func ConvertBase(value float64, currency, base string, eurPerUSD float64) float64 {
	if currency == base || eurPerUSD == 0 {
		return value
	}
	switch {
	case base == "EUR" && currency == "USD":
		return value * eurPerUSD
	case base == "USD" && currency == "EUR":
		return value / eurPerUSD
	default:
		return value
	}
}
