// Package yahoo fetches quotes, FX and historical closes from the public
// Yahoo Finance chart API and shapes them into the pricing structures the
// valuation and risk layers consume.
package yahoo

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/iaduartec/portfolio"
	"github.com/rs/zerolog"
)

// fxSymbol is the Yahoo ticker quoting EUR bought by one USD.
const fxSymbol = "EUR=X"

// suffixGuesses are the listing suffixes tried, in order, for a bare
// ticker that Yahoo does not know under its plain name.
var suffixGuesses = []string{"", ".DE", ".MC", ".MI", ".PA", ".L"}

// Client queries the Yahoo Finance endpoints. Responses are cached on
// disk for the day, so repeated report runs do not hammer the API.
type Client struct {
	http    *http.Client
	baseURL string
	log     zerolog.Logger
}

// New returns a Yahoo client with a daily-expiring disk cache.
func New(log zerolog.Logger) *Client {
	return &Client{
		http:    newDailyCachingClient(),
		baseURL: "https://query1.finance.yahoo.com",
		log:     log.With().Str("provider", "yahoo").Logger(),
	}
}

// candidates lists the tickers to try for a symbol. A symbol that already
// carries a listing suffix is taken as-is.
func candidates(symbol string) []string {
	if strings.Contains(symbol, ".") || strings.Contains(symbol, "=") {
		return []string{symbol}
	}
	out := make([]string, 0, len(suffixGuesses))
	for _, suffix := range suffixGuesses {
		out = append(out, symbol+suffix)
	}
	return out
}

// chartResponse is the payload of the v8 chart endpoint. Only the fields
// this package reads are declared.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// series is one resolved symbol's historical closes keyed by trading day.
type series struct {
	currency string
	last     float64
	closes   map[time.Time]float64
}

// fetchChart queries the chart endpoint for one exact ticker.
func (c *Client) fetchChart(ticker, rng, interval string) (*series, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(ticker), rng, interval)

	var payload chartResponse
	if err := jwget(c.http, addr, &payload); err != nil {
		return nil, err
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart %q: %s: %s", ticker, payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %q: empty result", ticker)
	}

	result := payload.Chart.Result[0]
	s := &series{
		currency: result.Meta.Currency,
		last:     result.Meta.RegularMarketPrice,
		closes:   make(map[time.Time]float64),
	}
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i, ts := range result.Timestamp {
			if i >= len(closes) || closes[i] == nil {
				continue
			}
			day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
			s.closes[day] = *closes[i]
		}
	}
	return s, nil
}

// resolve finds the first candidate ticker Yahoo answers for. It returns
// the series together with the ticker that worked, so callers can reuse
// it without guessing again.
func (c *Client) resolve(symbol, rng, interval string) (string, *series, error) {
	var lastErr error
	for _, ticker := range candidates(symbol) {
		s, err := c.fetchChart(ticker, rng, interval)
		if err != nil {
			lastErr = err
			continue
		}
		if s.last > 0 || len(s.closes) > 0 {
			if ticker != symbol {
				c.log.Debug().Str("symbol", symbol).Str("ticker", ticker).Msg("resolved via listing suffix")
			}
			return ticker, s, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate ticker for %q", symbol)
	}
	return "", nil, lastErr
}

// EURPerUSD returns the current EUR/USD scalar.
func (c *Client) EURPerUSD() (float64, error) {
	s, err := c.fetchChart(fxSymbol, "1d", "1d")
	if err != nil {
		return math.NaN(), fmt.Errorf("cannot fetch EUR/USD rate: %w", err)
	}
	if s.last <= 0 {
		return math.NaN(), fmt.Errorf("EUR/USD rate unavailable")
	}
	return s.last, nil
}

// Pricing captures one atomic market view for the given symbols: every
// quote plus the FX rate, fetched together. Symbols Yahoo does not know
// are carried as unavailable quotes rather than dropped; a missing FX
// rate is an error because every base conversion depends on it.
func (c *Client) Pricing(symbols []string) (portfolio.Pricing, error) {
	rate, err := c.EURPerUSD()
	if err != nil {
		return portfolio.Pricing{}, err
	}

	pricing := portfolio.Pricing{
		Quotes:    make(map[string]portfolio.Quote, len(symbols)),
		EURPerUSD: rate,
		At:        time.Now(),
	}
	for _, symbol := range symbols {
		_, s, err := c.resolve(symbol, "2d", "1d")
		if err != nil {
			c.log.Warn().Str("symbol", symbol).Err(err).Msg("no quote")
			pricing.Quotes[symbol] = portfolio.Quote{}
			continue
		}
		price := s.last
		if price <= 0 {
			// Off-hours chart metas can be empty, fall back to the
			// close of the most recent trading day.
			var lastDay time.Time
			for day, close := range s.closes {
				if day.After(lastDay) {
					lastDay, price = day, close
				}
			}
		}
		pricing.Quotes[symbol] = portfolio.Quote{
			Price:     price,
			Currency:  s.currency,
			Available: price > 0,
		}
	}
	return pricing, nil
}

// History fetches one year of daily closes for the given symbols and
// aligns them on the union of trading days. Days a symbol did not trade
// carry NaN, which the return computation skips row-wise.
func (c *Client) History(symbols []string) (*portfolio.Panel, error) {
	fetched := make(map[string]map[time.Time]float64, len(symbols))
	dateSet := make(map[time.Time]struct{})

	for _, symbol := range symbols {
		_, s, err := c.resolve(symbol, "1y", "1d")
		if err != nil {
			c.log.Warn().Str("symbol", symbol).Err(err).Msg("no history")
			continue
		}
		fetched[symbol] = s.closes
		for day := range s.closes {
			dateSet[day] = struct{}{}
		}
	}
	if len(fetched) == 0 {
		return nil, fmt.Errorf("no historical data for any of %d symbols", len(symbols))
	}

	panel := &portfolio.Panel{Closes: make(map[string][]float64, len(fetched))}
	for day := range dateSet {
		panel.Dates = append(panel.Dates, day)
	}
	sort.Slice(panel.Dates, func(i, j int) bool { return panel.Dates[i].Before(panel.Dates[j]) })

	for symbol, closes := range fetched {
		aligned := make([]float64, len(panel.Dates))
		for i, day := range panel.Dates {
			if v, ok := closes[day]; ok {
				aligned[i] = v
			} else {
				aligned[i] = math.NaN()
			}
		}
		panel.Closes[symbol] = aligned
	}
	return panel, nil
}
