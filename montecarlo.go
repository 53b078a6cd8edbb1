package portfolio

import (
	"math"

	"github.com/montanaflynn/stats"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimulationResult is a matrix of forward portfolio value paths. Steps[d][n]
// is path n's relative value at day d (1.0 = today's value): days rows,
// one column per simulation. Values are multiplicative ratios, not
// currency; callers scale by the current portfolio value.
type SimulationResult struct {
	Steps [][]float64
}

// Empty reports whether the simulation produced no paths at all.
func (r *SimulationResult) Empty() bool { return r == nil || len(r.Steps) == 0 }

// Terminal returns the terminal-day cross-section: every path's value on
// the final simulated day.
func (r *SimulationResult) Terminal() []float64 {
	if r.Empty() {
		return nil
	}
	return r.Steps[len(r.Steps)-1]
}

// SimulationStats are percentile statistics of the terminal-day
// cross-section only; intermediate days are not summarized.
type SimulationStats struct {
	Mean   float64
	Median float64
	P05    float64
	P95    float64
	Worst  float64
	Best   float64
}

// Simulate runs a geometric-Brownian Monte Carlo projection of the
// portfolio from a historical daily-return series.
//
// Each return r is converted to a log return ln(1+r); the series' mean u
// and sample variance var give drift = u - var/2, and its standard
// deviation gives the daily volatility. Every simulated day multiplies the
// path by exp(drift + vol*Z) for a fresh standard-normal Z, with each path
// anchored at 1.0 before day one.
//
// The generator is seeded explicitly so runs are reproducible; no state is
// shared across calls. An empty return series yields an empty result — a
// simulation with no information is no simulation, not a flat one.
func Simulate(dailyReturns []float64, numSimulations, days int, seed uint64) *SimulationResult {
	if numSimulations <= 0 || days <= 0 {
		return &SimulationResult{}
	}
	logReturns := make([]float64, 0, len(dailyReturns))
	for _, r := range dailyReturns {
		if r <= -1 {
			// A total-loss day has no finite log return; drop the
			// observation rather than poison the moments.
			continue
		}
		logReturns = append(logReturns, math.Log(1+r))
	}
	if len(logReturns) == 0 {
		return &SimulationResult{}
	}

	u := stat.Mean(logReturns, nil)
	variance := stat.Variance(logReturns, nil)
	if math.IsNaN(variance) {
		variance = 0
	}
	drift := u - 0.5*variance
	vol := math.Sqrt(variance)

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}

	steps := make([][]float64, days)
	for d := range steps {
		steps[d] = make([]float64, numSimulations)
	}
	for n := 0; n < numSimulations; n++ {
		value := 1.0
		for d := 0; d < days; d++ {
			value *= math.Exp(drift + vol*normal.Rand())
			steps[d][n] = value
		}
	}
	return &SimulationResult{Steps: steps}
}

// Stats summarizes the terminal-day cross-section of a simulation. It
// returns ok=false for an empty result so callers can tell "no projection"
// from a projection of zero.
func Stats(r *SimulationResult) (SimulationStats, bool) {
	terminal := r.Terminal()
	if len(terminal) == 0 {
		return SimulationStats{}, false
	}
	// The stats helpers only error on empty input, which is excluded above.
	mean, _ := stats.Mean(terminal)
	median, _ := stats.Median(terminal)
	p05, _ := stats.Percentile(terminal, 5)
	p95, _ := stats.Percentile(terminal, 95)
	worst, _ := stats.Min(terminal)
	best, _ := stats.Max(terminal)
	return SimulationStats{
		Mean:   mean,
		Median: median,
		P05:    p05,
		P95:    p95,
		Worst:  worst,
		Best:   best,
	}, true
}
