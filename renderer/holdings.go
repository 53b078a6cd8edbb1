package renderer

import (
	"github.com/iaduartec/portfolio"
)

// HoldingsRow is one open position, preformatted for display.
type HoldingsRow struct {
	Symbol        string
	Name          string
	Quantity      string
	AverageCost   string
	LastPrice     string
	MarketValue   string
	UnrealizedPnL string
	ReturnPct     string
}

// Holdings is the holdings report data.
type Holdings struct {
	Date          string
	BaseCurrency  string
	Rows          []HoldingsRow
	MarketValue   string
	Invested      string
	UnrealizedPnL string
	RealizedPnL   string
	Dividends     string
	Warnings      []string
}

// BuildHoldings shapes a snapshot into the holdings report. names maps a
// symbol to its display name, missing entries fall back to the symbol.
func BuildHoldings(s *portfolio.Snapshot, names map[string]string) *Holdings {
	h := &Holdings{
		Date:          s.Time.Format("2006-01-02"),
		BaseCurrency:  s.BaseCurrency,
		MarketValue:   FormatMoney(s.TotalMarketValue, s.BaseCurrency),
		Invested:      FormatMoney(s.TotalInvested(), s.BaseCurrency),
		UnrealizedPnL: FormatMoney(s.TotalUnrealizedPnL, s.BaseCurrency),
		RealizedPnL:   FormatMoney(s.RealizedPnL, s.BaseCurrency),
		Dividends:     FormatMoney(s.Dividends, s.BaseCurrency),
	}
	for _, pv := range s.Positions {
		name := names[pv.Symbol]
		if name == "" {
			name = pv.Symbol
		}
		h.Rows = append(h.Rows, HoldingsRow{
			Symbol:        pv.Symbol,
			Name:          name,
			Quantity:      FormatQuantity(pv.Quantity),
			AverageCost:   FormatMoney(pv.AverageCost(), pv.Currency),
			LastPrice:     FormatMoney(pv.LastPrice, pv.Currency),
			MarketValue:   FormatMoney(pv.MarketValue, pv.Currency),
			UnrealizedPnL: FormatMoney(pv.UnrealizedPnL, pv.Currency),
			ReturnPct:     FormatPercent(pv.ReturnPct),
		})
	}
	for _, w := range s.Warnings {
		h.Warnings = append(h.Warnings, w.String())
	}
	return h
}

// RenderHoldings renders the holdings report to markdown.
func RenderHoldings(h *Holdings) string {
	partials := map[string]string{
		"holdings_title":     "holdings_title.md",
		"holdings_positions": "holdings_positions.md",
		"holdings_totals":    "holdings_totals.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, h)
}
