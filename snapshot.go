package portfolio

import (
	"math"
	"sort"
	"time"
)

// Quote is one symbol's current price observation. Unavailable quotes are
// an explicit state, not a missing map key and not a zero price.
type Quote struct {
	Price     float64
	Currency  string
	Available bool
}

// Pricing is the market view for one reporting instant: current quotes and
// the single USD/EUR rate, captured together so price and FX staleness
// cannot skew against each other.
type Pricing struct {
	Quotes map[string]Quote
	// EURPerUSD is the scalar FX rate (EUR bought by 1 USD) applied to
	// every base-currency conversion in the snapshot.
	EURPerUSD float64
	At        time.Time
}

// PositionValue is an open position valued at the snapshot instant.
type PositionValue struct {
	Position
	LastPrice     float64
	MarketValue   float64 // in the position's trading currency
	UnrealizedPnL float64
	ReturnPct     float64 // unrealized P&L over cost basis, in percent
	// Base-currency projections of the above.
	MarketValueBase   float64
	UnrealizedPnLBase float64
}

// Snapshot is a point-in-time projection of a reconciled Book against a
// Pricing. It is never mutated after construction.
type Snapshot struct {
	Time         time.Time
	BaseCurrency string
	EURPerUSD    float64
	Positions    []PositionValue // open positions, sorted by symbol

	// Base-currency aggregates.
	TotalMarketValue   float64
	TotalUnrealizedPnL float64
	RealizedPnL        float64
	Dividends          float64
	Fees               float64
	Taxes              float64

	Warnings []Warning
}

// TotalInvested is the base-currency capital still at work in open
// positions.
func (s *Snapshot) TotalInvested() float64 {
	return s.TotalMarketValue - s.TotalUnrealizedPnL
}

// Valuate projects a reconciled book against a single market view,
// producing per-position market values, unrealized P&L and base-currency
// totals. Symbols without an available quote are carried with a no-quote
// warning and a zero market value rather than dropped, so the caller can
// see exactly what the totals exclude.
func Valuate(book *Book, pricing Pricing, base string) *Snapshot {
	s := &Snapshot{
		Time:         pricing.At,
		BaseCurrency: base,
		EURPerUSD:    pricing.EURPerUSD,
		Warnings:     append([]Warning(nil), book.Warnings...),
	}

	for _, pos := range book.OpenPositions() {
		pv := PositionValue{Position: *pos}
		quote, ok := pricing.Quotes[pos.Symbol]
		if !ok || !quote.Available {
			s.Warnings = append(s.Warnings, Warning{
				Code:    WarnNoQuote,
				Symbol:  pos.Symbol,
				Message: "no market price available, position valued at 0",
			})
		} else {
			pv.LastPrice = quote.Price
			pv.MarketValue = pos.Quantity * quote.Price
			pv.UnrealizedPnL = pv.MarketValue - pos.CostBasis
			if pos.CostBasis != 0 {
				pv.ReturnPct = pv.UnrealizedPnL / pos.CostBasis * 100
			}
		}
		pv.MarketValueBase = ConvertBase(pv.MarketValue, pos.Currency, base, pricing.EURPerUSD)
		pv.UnrealizedPnLBase = ConvertBase(pv.UnrealizedPnL, pos.Currency, base, pricing.EURPerUSD)
		s.TotalMarketValue += pv.MarketValueBase
		s.TotalUnrealizedPnL += pv.UnrealizedPnLBase
		s.Positions = append(s.Positions, pv)
	}
	sort.Slice(s.Positions, func(i, j int) bool { return s.Positions[i].Symbol < s.Positions[j].Symbol })

	for currency, pnl := range book.RealizedPnL {
		s.RealizedPnL += ConvertBase(pnl, currency, base, pricing.EURPerUSD)
	}
	for currency, amount := range book.Dividends {
		s.Dividends += ConvertBase(amount, currency, base, pricing.EURPerUSD)
	}
	for key, amount := range book.CashFlows {
		converted := ConvertBase(amount, key.Currency, base, pricing.EURPerUSD)
		switch key.Category {
		case Fee:
			s.Fees += converted
		case Tax:
			s.Taxes += converted
		}
	}
	return s
}

// FiscalEstimate is an illustrative gross-to-net profit reconciliation.
// The figures are estimates for orientation only, not a tax computation.
type FiscalEstimate struct {
	GrossProfit  float64
	TaxRate      float64
	EstimatedTax float64
	NetProfit    float64
}

// Fiscal estimates the net profit after applying a flat tax rate to the
// gross profit: realized plus unrealized P&L plus dividends, net of the
// fee and withholding cash flows already paid (recorded as negative
// amounts in broker exports).
func (s *Snapshot) Fiscal(taxRate float64) FiscalEstimate {
	gross := s.RealizedPnL + s.TotalUnrealizedPnL + s.Dividends + s.Fees + s.Taxes
	tax := math.Max(0, gross*taxRate)
	return FiscalEstimate{
		GrossProfit:  gross,
		TaxRate:      taxRate,
		EstimatedTax: tax,
		NetProfit:    gross - tax,
	}
}
