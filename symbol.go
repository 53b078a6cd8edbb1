package portfolio

import "strings"

// exchangeRule maps an exchange code (the prefix of an "EXCHANGE:TICKER"
// symbol) to the market-data suffix and the currency implied by that venue.
type exchangeRule struct {
	Suffix   string
	Currency string
}

// exchangeRules is a closed table. Exchanges not listed here pass the ticker
// through unchanged with the account's default currency; they are not
// guessed. Suffix probing against a live provider is the market-data
// collaborator's job, not the resolver's.
var exchangeRules = map[string]exchangeRule{
	"MIL":    {Suffix: ".MI", Currency: "EUR"}, // Borsa Italiana
	"BME":    {Suffix: ".MC", Currency: "EUR"}, // Bolsa de Madrid
	"NASDAQ": {Suffix: "", Currency: "USD"},
	"NYSE":   {Suffix: "", Currency: "USD"},
}

// symbolOverrides maps broker-internal codes to their canonical market
// symbol. These are codes the exchange-rule table cannot derive.
var symbolOverrides = map[string]resolvedSymbol{
	"ENL":  {Symbol: "ENEL.MI", Currency: "EUR"}, // Enel (Milan)
	"41L":  {Symbol: "ROVI.MC", Currency: "EUR"}, // Rovi (Madrid)
	"AJ3":  {Symbol: "ANA.MC", Currency: "EUR"},  // Acciona (Madrid)
	"OZTA": {Symbol: "GRF.MC", Currency: "EUR"},  // Grifols (Madrid)
	"VHM":  {Symbol: "SCYR.MC", Currency: "EUR"}, // Sacyr (Madrid)
}

type resolvedSymbol struct {
	Symbol   string
	Currency string
}

// ResolveSymbol maps a raw broker symbol to a canonical market symbol and
// its implied trading currency. Resolution order: exact override table,
// then exchange-code rule for "EXCHANGE:TICKER" forms, then literal
// pass-through with the default currency. ResolveSymbol is a pure function;
// it never touches the network.
func ResolveSymbol(raw, defaultCurrency string) (symbol, currency string) {
	raw = strings.TrimSpace(raw)
	if r, ok := symbolOverrides[raw]; ok {
		return r.Symbol, r.Currency
	}
	if exchange, ticker, ok := strings.Cut(raw, ":"); ok && ticker != "" {
		if rule, ok := exchangeRules[exchange]; ok {
			return ticker + rule.Suffix, rule.Currency
		}
		return ticker, defaultCurrency
	}
	return raw, defaultCurrency
}
