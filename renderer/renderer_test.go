package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/iaduartec/portfolio"
)

func TestFormatMoney(t *testing.T) {
	testCases := []struct {
		value    float64
		code     string
		contains string
	}{
		{value: 1234.56, code: "USD", contains: "1,234.56"},
		{value: 1234.56, code: "EUR", contains: "1.234,56"},
		{value: 10, code: "XXX?", contains: "10.00 XXX?"},
	}
	for _, tc := range testCases {
		got := FormatMoney(tc.value, tc.code)
		if !strings.Contains(got, tc.contains) {
			t.Errorf("FormatMoney(%v, %q) = %q, want it to contain %q", tc.value, tc.code, got, tc.contains)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{in: 10, want: "10"},
		{in: 0.5, want: "0.5"},
		{in: 1.2345, want: "1.2345"},
		{in: 6.10, want: "6.1"},
	}
	for _, tc := range testCases {
		if got := FormatQuantity(tc.in); got != tc.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func sampleSnapshot() *portfolio.Snapshot {
	return &portfolio.Snapshot{
		Time:         time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		BaseCurrency: "EUR",
		Positions: []portfolio.PositionValue{
			{
				Position: portfolio.Position{
					Symbol: "AAPL", Currency: "USD", Quantity: 6, CostBasis: 600.6,
				},
				LastPrice: 110, MarketValue: 660, UnrealizedPnL: 59.4, ReturnPct: 9.89,
				MarketValueBase: 594, UnrealizedPnLBase: 53.46,
			},
		},
		TotalMarketValue:   594,
		TotalUnrealizedPnL: 53.46,
		RealizedPnL:        70.74,
		Dividends:          10.44,
	}
}

func TestRenderHoldings(t *testing.T) {
	h := BuildHoldings(sampleSnapshot(), map[string]string{"AAPL": "Apple Inc."})
	out := RenderHoldings(h)

	for _, want := range []string{
		"# Holdings as of 2024-06-28",
		"| AAPL | Apple Inc. | 6 |",
		"**Market value**:",
		"(EUR)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("holdings report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warnings") {
		t.Error("warning block rendered without warnings")
	}
}

func TestRenderHoldingsWarnings(t *testing.T) {
	s := sampleSnapshot()
	s.Warnings = append(s.Warnings, portfolio.Warning{
		Code: portfolio.WarnNoQuote, Symbol: "GHOST", Message: "no market price available",
	})
	out := RenderHoldings(BuildHoldings(s, nil))
	if !strings.Contains(out, "GHOST") {
		t.Errorf("warning not surfaced in report:\n%s", out)
	}
}

func TestRenderRisk(t *testing.T) {
	r := BuildRisk(&portfolio.PerformanceResult{
		Metrics: portfolio.Metrics{
			AnnualVolatility: 0.251,
			AnnualReturn:     0.08,
			SharpeRatio:      0.32,
			MaxDrawdown:      -0.02,
		},
		DailyReturns: make([]float64, 250),
		Weights:      map[string]float64{"AAPL": 0.6, "ENEL.MI": 0.4},
	})
	out := RenderRisk(r)

	for _, want := range []string{
		"250 daily observations",
		"| Annual volatility | 25.10% |",
		"| Max drawdown | -2.00% |",
		"| AAPL | 60.0% |",
		"| ENEL.MI | 40.0% |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("risk report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSimulation(t *testing.T) {
	s := BuildSimulation(portfolio.SimulationStats{
		Mean: 1.08, Median: 1.06, P05: 0.85, P95: 1.35, Worst: 0.60, Best: 1.80,
	}, 252, 1000, 10000, "EUR")
	out := RenderSimulation(s)

	for _, want := range []string{
		"1000 paths over 252 trading days",
		"+8.00%",  // mean
		"-15.00%", // p05
	} {
		if !strings.Contains(out, want) {
			t.Errorf("simulation report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFiscal(t *testing.T) {
	snap := sampleSnapshot()
	out := RenderFiscal(BuildFiscal(snap, snap.Fiscal(0.19)))

	for _, want := range []string{
		"# Fiscal estimate as of 2024-06-28",
		"Estimated tax (19%)",
		"not a tax computation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fiscal report missing %q:\n%s", want, out)
		}
	}
}
