package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders a float amount in a currency's display convention,
// including its symbol and fraction digits. Unknown currency codes fall
// back to a plain two-decimal rendering.
func FormatMoney(value float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%.2f %s", value, code)
	}
	units := decimal.NewFromFloat(value).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(units, code).Display()
}

// FormatPercent renders a ratio-style percentage with a stable sign.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

// FormatQuantity trims a share count to a readable precision, dropping
// the decimals for whole quantities.
func FormatQuantity(qty float64) string {
	s := fmt.Sprintf("%.4f", qty)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
