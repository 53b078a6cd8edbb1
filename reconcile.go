package portfolio

import (
	"fmt"
	"math"
	"sort"
)

const (
	// openEpsilon is the threshold below which an open quantity counts as
	// zero: a position is "open" iff |Quantity| > openEpsilon.
	openEpsilon = 1e-6
	// basisEpsilon bounds the floating residue tolerated in a cost basis
	// when the position quantity returns to zero.
	basisEpsilon = 1e-4
)

// Position is the per-symbol ledger state produced by reconciliation.
//
// CostBasis is meaningful only while Quantity is nonzero; when the quantity
// crosses zero the basis is reset, treating floating residue below
// basisEpsilon as zero. RealizedPnL survives the position closing.
type Position struct {
	Symbol      string
	Currency    string
	Quantity    float64
	CostBasis   float64
	RealizedPnL float64
}

// IsOpen reports whether the position still holds stock.
func (p *Position) IsOpen() bool { return math.Abs(p.Quantity) > openEpsilon }

// AverageCost is the running cost basis divided by the currently held
// quantity; it is the valuation basis for every disposal. It is undefined
// (treated as 0) unless Quantity is strictly positive.
func (p *Position) AverageCost() float64 {
	if p.Quantity <= 0 {
		return 0
	}
	return p.CostBasis / p.Quantity
}

// CashFlowKey buckets non-trade cash flows for gross-to-net reconciliation.
type CashFlowKey struct {
	Currency string
	Category Side
}

// Book is the result of one reconciliation pass: every Position keyed by
// canonical symbol, plus the aggregate cash-flow totals and the
// data-quality warnings collected along the way.
type Book struct {
	Positions map[string]*Position
	// RealizedPnL aggregates locked-in trade P&L per trading currency.
	RealizedPnL map[string]float64
	// Dividends aggregates dividend cash per currency. Dividends never
	// touch position quantity or cost basis.
	Dividends map[string]float64
	// CashFlows accumulates fee/tax/other rows keyed by (currency,
	// category), for the estimated gross-to-net profit reconciliation.
	CashFlows map[CashFlowKey]float64
	Warnings  []Warning
}

// Position returns the reconciled position for a symbol, or nil.
func (b *Book) Position(symbol string) *Position { return b.Positions[symbol] }

// OpenPositions returns the currently open positions sorted by symbol.
func (b *Book) OpenPositions() []*Position {
	var open []*Position
	for _, p := range b.Positions {
		if p.IsOpen() {
			open = append(open, p)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Symbol < open[j].Symbol })
	return open
}

func (b *Book) warn(code WarningCode, symbol, format string, args ...any) {
	b.Warnings = append(b.Warnings, Warning{Code: code, Symbol: symbol, Message: fmt.Sprintf(format, args...)})
}

// Reconcile folds a chronologically ordered ledger into per-symbol
// positions using the average-cost method.
//
// Average cost (not FIFO lot matching) is a deliberate simplification: the
// source data rarely carries lot identifiers, so disposals are valued at
// the running cost basis divided by the held quantity. The two methods are
// not equivalent for partially closed positions.
//
// CASH rows are excluded entirely. DIVIDEND, FEE, TAX and OTHER rows only
// feed their separate cash-flow totals and never touch quantity or basis.
// Reconciliation is a pure fold: running it twice over the same ledger
// yields identical state.
func Reconcile(l *Ledger) *Book {
	book := &Book{
		Positions:   make(map[string]*Position),
		RealizedPnL: make(map[string]float64),
		Dividends:   make(map[string]float64),
		CashFlows:   make(map[CashFlowKey]float64),
	}

	for tx := range l.Transactions() {
		switch tx.Side {
		case Cash:
			// Cash sweeps are not part of P&L.
		case Dividend:
			if !tx.Amount.Valid {
				book.warn(WarnParseFailure, tx.Symbol, "dividend on %s has no parseable amount, excluded from totals", tx.Time.Format("2006-01-02"))
				continue
			}
			book.Dividends[tx.Currency] += tx.Amount.Value
		case Fee, Tax, Other:
			if !tx.Amount.Valid {
				book.warn(WarnParseFailure, tx.Symbol, "%s row on %s has no parseable amount, excluded from totals", tx.Side, tx.Time.Format("2006-01-02"))
				continue
			}
			book.CashFlows[CashFlowKey{Currency: tx.Currency, Category: tx.Side}] += tx.Amount.Value
		case Buy, Sell:
			book.applyTrade(tx)
		}
	}
	return book
}

// applyTrade mutates the single position a trade touches. Positions of
// different symbols are independent.
func (b *Book) applyTrade(tx Transaction) {
	if !tx.Price.Valid {
		b.warn(WarnParseFailure, tx.Symbol, "%s of %v has no parseable fill price, excluded from position", tx.Side, tx.Quantity)
		return
	}
	pos, ok := b.Positions[tx.Symbol]
	if !ok {
		pos = &Position{Symbol: tx.Symbol, Currency: tx.Currency}
		b.Positions[tx.Symbol] = pos
	}

	switch tx.Side {
	case Buy:
		pos.Quantity += tx.Quantity
		pos.CostBasis += tx.Quantity*tx.Price.Value + tx.Commission

	case Sell:
		if pos.Quantity <= 0 {
			b.warn(WarnOversell, tx.Symbol, "sell of %v against non-positive open quantity %v, valued at average cost 0", tx.Quantity, pos.Quantity)
		} else if tx.Quantity > pos.Quantity+openEpsilon {
			b.warn(WarnOversell, tx.Symbol, "sell of %v exceeds open quantity %v", tx.Quantity, pos.Quantity)
		}
		avg := pos.AverageCost()
		costOfSold := avg * tx.Quantity
		proceeds := tx.Quantity*tx.Price.Value - tx.Commission
		pnl := proceeds - costOfSold

		pos.RealizedPnL += pnl
		b.RealizedPnL[tx.Currency] += pnl
		pos.Quantity -= tx.Quantity
		pos.CostBasis -= costOfSold
	}

	// When the quantity crosses exactly zero the basis must follow:
	// anything left is floating residue, not real cost.
	if !pos.IsOpen() && math.Abs(pos.CostBasis) < basisEpsilon {
		pos.CostBasis = 0
	}
}
