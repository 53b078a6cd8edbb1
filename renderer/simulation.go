package renderer

import (
	"fmt"

	"github.com/iaduartec/portfolio"
)

// Simulation is the projection report data. Ratios from the simulation
// are scaled by the current portfolio value so the report reads in
// money, not multipliers.
type Simulation struct {
	Days        int
	Simulations int
	Current     string
	Mean        string
	Median      string
	P05         string
	P95         string
	Worst       string
	Best        string
}

// BuildSimulation shapes terminal statistics into the projection report.
func BuildSimulation(stats portfolio.SimulationStats, days, numSimulations int, currentValue float64, currency string) *Simulation {
	scale := func(ratio float64) string {
		return fmt.Sprintf("%s (%s)", FormatMoney(ratio*currentValue, currency), FormatPercent((ratio-1)*100))
	}
	return &Simulation{
		Days:        days,
		Simulations: numSimulations,
		Current:     FormatMoney(currentValue, currency),
		Mean:        scale(stats.Mean),
		Median:      scale(stats.Median),
		P05:         scale(stats.P05),
		P95:         scale(stats.P95),
		Worst:       scale(stats.Worst),
		Best:        scale(stats.Best),
	}
}

// RenderSimulation renders the projection report to markdown.
func RenderSimulation(s *Simulation) string {
	return renderTemplate("simulation", "simulation.md", nil, s)
}
