package portfolio

import (
	"fmt"
	"strings"
	"time"
)

// Side classifies a transaction's effect on the portfolio.
type Side int

const (
	Other Side = iota
	Buy
	Sell
	Dividend
	Fee
	Tax
	Cash
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case Dividend:
		return "DIVIDEND"
	case Fee:
		return "FEE"
	case Tax:
		return "TAX"
	case Cash:
		return "CASH"
	default:
		return "OTHER"
	}
}

// ClassifySide labels a free-text transaction-type string. Matching is
// case-insensitive and priority-ordered, first match wins; in particular
// "DIVIDEND TAX" and "WITHHOLDING" must be classified before "DIVIDEND" is
// even considered. The ordering is part of the contract, not an
// optimization.
func ClassifySide(transactionType string) Side {
	t := strings.ToUpper(transactionType)
	switch {
	case strings.Contains(t, "DIVIDEND TAX") || strings.Contains(t, "WITHHOLDING"):
		return Tax
	case strings.Contains(t, "DIVIDEND"):
		return Dividend
	case strings.Contains(t, "FEE"):
		return Fee
	case strings.Contains(t, "BUY"):
		return Buy
	case strings.Contains(t, "SELL"):
		return Sell
	case strings.Contains(t, "CASH"):
		return Cash
	default:
		return Other
	}
}

// Transaction is a single normalized, immutable broker record.
//
// Trade rows (BUY/SELL) carry Quantity, Price and Commission. Cash-flow rows
// (DIVIDEND/FEE/TAX/OTHER) carry their cash value in Amount: some broker
// exports store a dividend's cash amount in the share-quantity column, and
// the importer maps that quirk into Amount exactly once, at the boundary,
// so the rest of the system never conflates cash with shares.
type Transaction struct {
	Symbol     string // canonical market symbol, already resolved
	Side       Side
	Quantity   float64
	Price      Amount // fill price; missing when the row carries none
	Commission float64
	Amount     Amount    // cash value for dividend/fee/tax/other rows
	Currency   string    // trading currency of the instrument
	Time       time.Time // zero when the source row had no timestamp
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %v @ %v %s", t.Side, t.Symbol, t.Quantity, t.Price.Or(0), t.Currency)
}
