package portfolio

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// tradingDays is the annualization factor for daily return series.
const tradingDays = 252

// ErrNoMetrics is returned when a return series cannot be derived at all:
// no open positions, no historical data, or every weighted symbol excluded.
// It distinguishes "no data" from a legitimately flat portfolio.
var ErrNoMetrics = errors.New("portfolio: no metrics available")

// Panel is an aligned historical close-price panel: one series per symbol,
// all of equal length over the same dates. Series that start later than the
// panel (or have gaps) carry NaN for the missing days.
type Panel struct {
	Dates  []time.Time
	Closes map[string][]float64
}

// Empty reports whether the panel carries no usable data.
func (p *Panel) Empty() bool {
	return p == nil || len(p.Dates) < 2 || len(p.Closes) == 0
}

// Metrics is the annualized risk profile of a daily return series.
type Metrics struct {
	AnnualVolatility float64 // stdev(daily) * sqrt(252)
	AnnualReturn     float64 // mean(daily) * 252
	SharpeRatio      float64 // 0 when volatility is 0, never a fault
	MaxDrawdown      float64 // most negative peak-to-trough decline
}

// PerformanceResult couples the derived metrics with the daily return
// series they were computed from, so the same series can seed a forward
// simulation.
type PerformanceResult struct {
	Metrics      Metrics
	DailyReturns []float64
	// Weights are the snapshot weights actually applied, keyed by symbol.
	// Symbols excluded for lack of history are absent here and flagged in
	// Warnings.
	Weights  map[string]float64
	Warnings []Warning
}

// Performance derives the portfolio's daily return series and annualized
// risk metrics from the current snapshot weights and a historical panel.
//
// The series applies today's weights to every historical day. That is a
// static-weight approximation of the portfolio's history, not a rebalanced
// back-test: it answers "how would my current mix have behaved", nothing
// more. Weighted symbols missing from the panel are excluded from the
// weighted sum (without renormalizing), so the series is approximate
// whenever a WarnNoHistory warning is present.
func Performance(s *Snapshot, panel *Panel, riskFreeRate float64) (*PerformanceResult, error) {
	if s == nil || len(s.Positions) == 0 || panel.Empty() {
		return nil, ErrNoMetrics
	}
	if s.TotalMarketValue == 0 {
		return nil, ErrNoMetrics
	}

	result := &PerformanceResult{Weights: make(map[string]float64)}
	for _, pv := range s.Positions {
		if _, ok := panel.Closes[pv.Symbol]; !ok {
			result.Warnings = append(result.Warnings, Warning{
				Code:    WarnNoHistory,
				Symbol:  pv.Symbol,
				Message: "no historical series, excluded from weighted return",
			})
			continue
		}
		result.Weights[pv.Symbol] = pv.MarketValueBase / s.TotalMarketValue
	}
	if len(result.Weights) == 0 {
		return nil, ErrNoMetrics
	}

	result.DailyReturns = weightedReturns(panel, result.Weights)
	if len(result.DailyReturns) == 0 {
		return nil, ErrNoMetrics
	}
	result.Metrics = computeMetrics(result.DailyReturns, riskFreeRate)
	return result, nil
}

// weightedReturns computes the static-weight portfolio daily return series.
// The first panel row has no defined return and is dropped. A day is
// skipped entirely when any included symbol has no usable price change on
// it (NaN or zero previous close), matching a row-wise drop of incomplete
// observations. Symbols are summed in sorted order so the floating-point
// series is identical across runs.
func weightedReturns(panel *Panel, weights map[string]float64) []float64 {
	symbols := make([]string, 0, len(weights))
	for symbol := range weights {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var series []float64
	for t := 1; t < len(panel.Dates); t++ {
		var dayReturn float64
		usable := true
		for _, symbol := range symbols {
			weight := weights[symbol]
			closes := panel.Closes[symbol]
			prev, cur := closes[t-1], closes[t]
			if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
				usable = false
				break
			}
			dayReturn += weight * (cur - prev) / prev
		}
		if usable {
			series = append(series, dayReturn)
		}
	}
	return series
}

func computeMetrics(daily []float64, riskFreeRate float64) Metrics {
	m := Metrics{
		AnnualVolatility: stat.StdDev(daily, nil) * math.Sqrt(tradingDays),
		AnnualReturn:     stat.Mean(daily, nil) * tradingDays,
	}
	if math.IsNaN(m.AnnualVolatility) {
		// A single observation has no sample deviation.
		m.AnnualVolatility = 0
	}
	if m.AnnualVolatility != 0 {
		m.SharpeRatio = (m.AnnualReturn - riskFreeRate) / m.AnnualVolatility
	}

	// The peak tracks the running maximum of the cumulative product
	// itself, so a series that opens with losses is not in drawdown
	// against a fictional 1.0 start.
	cumulative, peak := 1.0, math.Inf(-1)
	for _, r := range daily {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := cumulative/peak - 1; dd < m.MaxDrawdown {
			m.MaxDrawdown = dd
		}
	}
	return m
}
