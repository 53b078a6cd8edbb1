package portfolio

import "fmt"

// WarningCode identifies a class of data-quality condition.
type WarningCode string

const (
	// WarnOversell flags a SELL whose quantity exceeds the tracked open
	// quantity. The fold accepts it numerically (quantity goes negative)
	// and values it at average cost 0, which likely overstates realized
	// P&L; it is surfaced, never silently corrected.
	WarnOversell WarningCode = "oversell"
	// WarnParseFailure flags a row whose monetary field could not be
	// parsed. The row is excluded from the affected total instead of
	// being coerced to zero.
	WarnParseFailure WarningCode = "parse-failure"
	// WarnNoQuote flags a symbol with no resolvable market price.
	WarnNoQuote WarningCode = "no-quote"
	// WarnNoHistory flags a weighted symbol missing from the historical
	// panel; the portfolio return series is then only approximate.
	WarnNoHistory WarningCode = "no-history"
)

// Warning is a structured data-quality condition attached to a result.
// Warnings never abort a computation and are never swallowed into logs:
// the caller decides what to do with them.
type Warning struct {
	Code    WarningCode
	Symbol  string
	Message string
}

func (w Warning) String() string {
	if w.Symbol == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s %s: %s", w.Code, w.Symbol, w.Message)
}
