package portfolio

import (
	"errors"
	"math"
	"testing"
	"time"
)

func panelOf(t *testing.T, closes map[string][]float64) *Panel {
	t.Helper()
	var n int
	for _, series := range closes {
		n = len(series)
		break
	}
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = day(i)
	}
	return &Panel{Dates: dates, Closes: closes}
}

func snapshotOf(values map[string]float64) *Snapshot {
	s := &Snapshot{BaseCurrency: "EUR"}
	for symbol, mv := range values {
		s.Positions = append(s.Positions, PositionValue{
			Position:        Position{Symbol: symbol, Currency: "EUR", Quantity: 1},
			MarketValueBase: mv,
		})
		s.TotalMarketValue += mv
	}
	return s
}

func TestMetricsDeterministicSeries(t *testing.T) {
	// [0.01, -0.01, 0.02, -0.02, 0.0] has zero mean, sample variance
	// 0.00025, and its deepest peak-to-trough decline is the -0.02 day.
	m := computeMetrics([]float64{0.01, -0.01, 0.02, -0.02, 0.0}, 0)

	approx(t, "AnnualVolatility", m.AnnualVolatility, math.Sqrt(0.063), 1e-6)
	approx(t, "AnnualReturn", m.AnnualReturn, 0, 1e-6)
	approx(t, "SharpeRatio", m.SharpeRatio, 0, 1e-6)
	approx(t, "MaxDrawdown", m.MaxDrawdown, -0.02, 1e-6)
}

func TestMetricsZeroVolatilitySharpe(t *testing.T) {
	// A constant series has no deviation; Sharpe is reported as 0, not
	// a division blow-up.
	m := computeMetrics([]float64{0.01, 0.01, 0.01}, 0.05)
	approx(t, "AnnualVolatility", m.AnnualVolatility, 0, 1e-12)
	approx(t, "SharpeRatio", m.SharpeRatio, 0, 1e-12)
	approx(t, "AnnualReturn", m.AnnualReturn, 2.52, 1e-9)
}

func TestMetricsSingleObservation(t *testing.T) {
	m := computeMetrics([]float64{0.01}, 0)
	if math.IsNaN(m.AnnualVolatility) || math.IsNaN(m.SharpeRatio) {
		t.Errorf("single observation leaked NaN: %+v", m)
	}
}

func TestMetricsOpeningLossIsDrawdown(t *testing.T) {
	// A series that opens with a loss measures drawdown from its own
	// first peak.
	m := computeMetrics([]float64{-0.05, 0.10}, 0)
	approx(t, "MaxDrawdown", m.MaxDrawdown, 0, 1e-9)

	m = computeMetrics([]float64{0.10, -0.05}, 0)
	approx(t, "MaxDrawdown", m.MaxDrawdown, -0.05, 1e-9)
}

func TestPerformanceSingleSymbol(t *testing.T) {
	s := snapshotOf(map[string]float64{"AAPL": 1000})
	panel := panelOf(t, map[string][]float64{
		"AAPL": {100, 101, 99.99, 101.9898, 99.950004, 99.950004},
	})

	result, err := Performance(s, panel, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.DailyReturns) != 5 {
		t.Fatalf("DailyReturns length = %d, want 5", len(result.DailyReturns))
	}
	approx(t, "weight", result.Weights["AAPL"], 1, 1e-9)
	approx(t, "AnnualVolatility", result.Metrics.AnnualVolatility, math.Sqrt(0.063), 1e-6)
	approx(t, "MaxDrawdown", result.Metrics.MaxDrawdown, -0.02, 1e-6)
}

func TestPerformanceMissingHistoryExcluded(t *testing.T) {
	s := snapshotOf(map[string]float64{"AAPL": 600, "OBSCURE": 400})
	panel := panelOf(t, map[string][]float64{
		"AAPL": {100, 101, 102},
	})

	result, err := Performance(s, panel, 0)
	if err != nil {
		t.Fatal(err)
	}

	// The uncovered symbol drops out without renormalizing the survivor.
	approx(t, "weight", result.Weights["AAPL"], 0.6, 1e-9)
	if _, ok := result.Weights["OBSCURE"]; ok {
		t.Error("symbol without history kept a weight")
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != WarnNoHistory {
		t.Errorf("expected a no-history warning, got %v", result.Warnings)
	}
}

func TestPerformanceSkipsIncompleteDays(t *testing.T) {
	s := snapshotOf(map[string]float64{"AAPL": 500, "ENEL.MI": 500})
	panel := panelOf(t, map[string][]float64{
		"AAPL":    {100, 101, 102, 103},
		"ENEL.MI": {math.NaN(), math.NaN(), 6, 6.1},
	})

	result, err := Performance(s, panel, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Only the last day has a defined change for both symbols.
	if len(result.DailyReturns) != 1 {
		t.Fatalf("DailyReturns = %v, want a single complete observation", result.DailyReturns)
	}
	want := 0.5*(103.0-102.0)/102.0 + 0.5*(6.1-6.0)/6.0
	approx(t, "daily return", result.DailyReturns[0], want, 1e-9)
}

func TestPerformanceSeriesBitReproducible(t *testing.T) {
	// The weighted sum runs over symbols in a fixed order, so repeated
	// computations of the same inputs agree to the last bit, not just to
	// a tolerance.
	s := snapshotOf(map[string]float64{"AAPL": 300, "ENEL.MI": 250, "GRF.MC": 250, "KO": 200})
	closes := map[string][]float64{
		"AAPL":    {100, 101.3, 99.7, 102.11, 101.09},
		"ENEL.MI": {6, 6.07, 5.93, 6.11, 6.02},
		"GRF.MC":  {9.2, 9.31, 9.17, 9.4, 9.33},
		"KO":      {58, 58.31, 57.9, 58.72, 58.4},
	}

	first, err := Performance(s, panelOf(t, closes), 0)
	if err != nil {
		t.Fatal(err)
	}
	for run := 0; run < 10; run++ {
		again, err := Performance(s, panelOf(t, closes), 0)
		if err != nil {
			t.Fatal(err)
		}
		for i := range first.DailyReturns {
			if again.DailyReturns[i] != first.DailyReturns[i] {
				t.Fatalf("run %d: DailyReturns[%d] = %v, want exactly %v",
					run, i, again.DailyReturns[i], first.DailyReturns[i])
			}
		}
	}
}

func TestPerformanceNoData(t *testing.T) {
	panel := panelOf(t, map[string][]float64{"AAPL": {100, 101}})

	testCases := []struct {
		name  string
		s     *Snapshot
		panel *Panel
	}{
		{name: "nil snapshot", s: nil, panel: panel},
		{name: "no positions", s: &Snapshot{}, panel: panel},
		{name: "nil panel", s: snapshotOf(map[string]float64{"AAPL": 1}), panel: nil},
		{name: "single-row panel", s: snapshotOf(map[string]float64{"AAPL": 1}),
			panel: panelOf(t, map[string][]float64{"AAPL": {100}})},
		{name: "zero market value", s: snapshotOf(map[string]float64{"AAPL": 0}), panel: panel},
		{name: "all excluded", s: snapshotOf(map[string]float64{"OBSCURE": 1}), panel: panel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Performance(tc.s, tc.panel, 0); !errors.Is(err, ErrNoMetrics) {
				t.Errorf("err = %v, want ErrNoMetrics", err)
			}
		})
	}
}
