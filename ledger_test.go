package portfolio

import (
	"testing"
	"time"
)

func TestLedgerKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger(
		trade(3, Sell, "AAPL", 1, 110, 0),
		trade(1, Buy, "AAPL", 2, 100, 0),
		trade(2, Buy, "AAPL", 1, 105, 0),
	)

	var got []time.Time
	for tx := range ledger.Transactions() {
		got = append(got, tx.Time)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Before(got[i-1]) {
			t.Fatalf("transactions out of order at %d: %v before %v", i, got[i], got[i-1])
		}
	}
}

func TestLedgerSortIsStable(t *testing.T) {
	// Rows without a timestamp keep their relative input order.
	first := Transaction{Symbol: "A", Side: Buy, Quantity: 1, Price: Amt(1)}
	second := Transaction{Symbol: "B", Side: Buy, Quantity: 2, Price: Amt(2)}

	ledger := NewLedger(first, second)
	var symbols []string
	for tx := range ledger.Transactions() {
		symbols = append(symbols, tx.Symbol)
	}
	if symbols[0] != "A" || symbols[1] != "B" {
		t.Errorf("stable sort violated, got order %v", symbols)
	}
}

func TestLedgerSymbols(t *testing.T) {
	ledger := NewLedger(
		trade(1, Buy, "AAPL", 1, 100, 0),
		trade(2, Buy, "ENEL.MI", 1, 6, 0),
		trade(3, Sell, "AAPL", 1, 110, 0),
	)
	got := ledger.Symbols()
	want := []string{"AAPL", "ENEL.MI"}
	if len(got) != len(want) {
		t.Fatalf("Symbols() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
