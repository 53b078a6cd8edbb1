package portfolio

import "testing"

func TestValuate(t *testing.T) {
	book := Reconcile(NewLedger(
		trade(1, Buy, "AAPL", 10, 100, 0), // USD
		Transaction{Symbol: "ENEL.MI", Side: Buy, Quantity: 100, Price: Amt(6), Currency: "EUR", Time: day(2)},
		Transaction{Symbol: "ENEL.MI", Side: Dividend, Amount: Amt(11.6), Currency: "EUR", Time: day(3)},
	))
	pricing := Pricing{
		Quotes: map[string]Quote{
			"AAPL":    {Price: 110, Currency: "USD", Available: true},
			"ENEL.MI": {Price: 6.5, Currency: "EUR", Available: true},
		},
		EURPerUSD: 0.9,
		At:        day(4),
	}

	s := Valuate(book, pricing, "EUR")

	if len(s.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(s.Positions))
	}
	// Sorted by symbol: AAPL first.
	aapl, enel := s.Positions[0], s.Positions[1]

	approx(t, "AAPL market value", aapl.MarketValue, 1100, 1e-9)
	approx(t, "AAPL unrealized", aapl.UnrealizedPnL, 100, 1e-9)
	approx(t, "AAPL return pct", aapl.ReturnPct, 10, 1e-9)
	approx(t, "AAPL market value EUR", aapl.MarketValueBase, 990, 1e-9)

	approx(t, "ENEL market value", enel.MarketValue, 650, 1e-9)
	approx(t, "ENEL market value EUR", enel.MarketValueBase, 650, 1e-9)

	approx(t, "total market value", s.TotalMarketValue, 990+650, 1e-9)
	approx(t, "total unrealized", s.TotalUnrealizedPnL, 90+50, 1e-9)
	approx(t, "dividends", s.Dividends, 11.6, 1e-9)
	approx(t, "invested", s.TotalInvested(), s.TotalMarketValue-s.TotalUnrealizedPnL, 1e-9)

	if len(s.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", s.Warnings)
	}
}

func TestValuateMissingQuote(t *testing.T) {
	book := Reconcile(NewLedger(
		trade(1, Buy, "AAPL", 10, 100, 0),
		trade(2, Buy, "GHOST", 5, 20, 0),
	))
	pricing := Pricing{
		Quotes: map[string]Quote{
			"AAPL":  {Price: 110, Currency: "USD", Available: true},
			"GHOST": {Available: false},
		},
		EURPerUSD: 1,
		At:        day(3),
	}

	s := Valuate(book, pricing, "USD")

	var ghost *PositionValue
	for i := range s.Positions {
		if s.Positions[i].Symbol == "GHOST" {
			ghost = &s.Positions[i]
		}
	}
	if ghost == nil {
		t.Fatal("unquoted position dropped from snapshot")
	}
	// Valued at zero, not at a fabricated price.
	approx(t, "market value", ghost.MarketValue, 0, 0)
	approx(t, "total", s.TotalMarketValue, 1100, 1e-9)

	found := false
	for _, w := range s.Warnings {
		if w.Code == WarnNoQuote && w.Symbol == "GHOST" {
			found = true
		}
	}
	if !found {
		t.Errorf("no-quote warning missing: %v", s.Warnings)
	}
}

func TestValuateConvertsAggregatesToBase(t *testing.T) {
	book := Reconcile(NewLedger(
		trade(1, Buy, "AAPL", 10, 100, 0),
		trade(2, Sell, "AAPL", 10, 110, 0), // realized +100 USD
		Transaction{Side: Fee, Amount: Amt(-10), Currency: "USD", Time: day(3)},
		Transaction{Symbol: "AAPL", Side: Tax, Amount: Amt(-15), Currency: "USD", Time: day(3)},
	))
	pricing := Pricing{Quotes: map[string]Quote{}, EURPerUSD: 0.8, At: day(4)}

	s := Valuate(book, pricing, "EUR")
	approx(t, "realized EUR", s.RealizedPnL, 80, 1e-9)
	approx(t, "fees EUR", s.Fees, -8, 1e-9)
	approx(t, "taxes EUR", s.Taxes, -12, 1e-9)
}

func TestFiscal(t *testing.T) {
	s := &Snapshot{
		RealizedPnL:        100,
		TotalUnrealizedPnL: 50,
		Dividends:          20,
		Fees:               -10,
		Taxes:              -15,
	}

	est := s.Fiscal(0.19)
	approx(t, "gross", est.GrossProfit, 145, 1e-9)
	approx(t, "tax", est.EstimatedTax, 145*0.19, 1e-9)
	approx(t, "net", est.NetProfit, 145*0.81, 1e-9)

	t.Run("loss owes nothing", func(t *testing.T) {
		loss := &Snapshot{RealizedPnL: -100}
		est := loss.Fiscal(0.19)
		approx(t, "tax", est.EstimatedTax, 0, 0)
		approx(t, "net", est.NetProfit, -100, 1e-9)
	})
}
