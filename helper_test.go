package portfolio

import (
	"math"
	"testing"
	"time"
)

// approx fails the test when got is not within tol of want.
func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// day is a helper to build deterministic trade timestamps.
func day(n int) time.Time {
	return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// trade is a helper to build a BUY or SELL transaction on day n.
func trade(n int, side Side, symbol string, qty, price, commission float64) Transaction {
	return Transaction{
		Symbol:     symbol,
		Side:       side,
		Quantity:   qty,
		Price:      Amt(price),
		Commission: commission,
		Currency:   "USD",
		Time:       day(n),
	}
}
