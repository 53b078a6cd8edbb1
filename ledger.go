package portfolio

import (
	"iter"
	"sort"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order. Reconciliation
// is order-sensitive, so the sort is not an implementation detail: the whole
// sequence is materialized and stably sorted before any fold begins, and
// rows without a timestamp keep their relative input order at the front.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{transactions: make([]Transaction, 0, len(txs))}
	l.Append(txs...)
	return l
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts transactions by ascending timestamp. The sort is stable
// so same-instant rows (and rows with no timestamp at all) preserve their
// input order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Time.Before(l.transactions[j].Time)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions iterates over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Symbols returns the distinct canonical symbols seen in the ledger, in
// first-seen order.
func (l *Ledger) Symbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, tx := range l.transactions {
		if tx.Symbol == "" || seen[tx.Symbol] {
			continue
		}
		seen[tx.Symbol] = true
		symbols = append(symbols, tx.Symbol)
	}
	return symbols
}
