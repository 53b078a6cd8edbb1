package renderer

import (
	"fmt"
	"sort"

	"github.com/iaduartec/portfolio"
)

// RiskWeight is one symbol's share of the portfolio, preformatted.
type RiskWeight struct {
	Symbol string
	Weight string
}

// Risk is the risk report data.
type Risk struct {
	AnnualVolatility string
	AnnualReturn     string
	SharpeRatio      string
	MaxDrawdown      string
	Observations     int
	Weights          []RiskWeight
	Warnings         []string
}

// BuildRisk shapes a performance result into the risk report.
func BuildRisk(r *portfolio.PerformanceResult) *Risk {
	report := &Risk{
		AnnualVolatility: fmt.Sprintf("%.2f%%", r.Metrics.AnnualVolatility*100),
		AnnualReturn:     FormatPercent(r.Metrics.AnnualReturn * 100),
		SharpeRatio:      fmt.Sprintf("%.2f", r.Metrics.SharpeRatio),
		MaxDrawdown:      fmt.Sprintf("%.2f%%", r.Metrics.MaxDrawdown*100),
		Observations:     len(r.DailyReturns),
	}
	for symbol, weight := range r.Weights {
		report.Weights = append(report.Weights, RiskWeight{
			Symbol: symbol,
			Weight: fmt.Sprintf("%.1f%%", weight*100),
		})
	}
	sort.Slice(report.Weights, func(i, j int) bool { return report.Weights[i].Symbol < report.Weights[j].Symbol })
	for _, w := range r.Warnings {
		report.Warnings = append(report.Warnings, w.String())
	}
	return report
}

// RenderRisk renders the risk report to markdown.
func RenderRisk(r *Risk) string {
	return renderTemplate("risk", "risk.md", nil, r)
}
