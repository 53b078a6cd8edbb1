package renderer

import (
	"fmt"

	"github.com/iaduartec/portfolio"
)

// Fiscal is the fiscal estimate report data.
type Fiscal struct {
	Date         string
	RealizedPnL  string
	Unrealized   string
	Dividends    string
	Fees         string
	Taxes        string
	GrossProfit  string
	TaxRate      string
	EstimatedTax string
	NetProfit    string
}

// BuildFiscal shapes a snapshot and its fiscal estimate into the report.
func BuildFiscal(s *portfolio.Snapshot, est portfolio.FiscalEstimate) *Fiscal {
	cur := s.BaseCurrency
	return &Fiscal{
		Date:         s.Time.Format("2006-01-02"),
		RealizedPnL:  FormatMoney(s.RealizedPnL, cur),
		Unrealized:   FormatMoney(s.TotalUnrealizedPnL, cur),
		Dividends:    FormatMoney(s.Dividends, cur),
		Fees:         FormatMoney(s.Fees, cur),
		Taxes:        FormatMoney(s.Taxes, cur),
		GrossProfit:  FormatMoney(est.GrossProfit, cur),
		TaxRate:      fmt.Sprintf("%.0f%%", est.TaxRate*100),
		EstimatedTax: FormatMoney(est.EstimatedTax, cur),
		NetProfit:    FormatMoney(est.NetProfit, cur),
	}
}

// RenderFiscal renders the fiscal estimate to markdown.
func RenderFiscal(f *Fiscal) string {
	return renderTemplate("fiscal", "fiscal.md", nil, f)
}
