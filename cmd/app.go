// Package cmd implements the CLI application to inspect a portfolio:
// reconciled holdings, fiscal estimates, risk metrics and Monte Carlo
// projections over broker CSV exports.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/iaduartec/portfolio"
	"github.com/iaduartec/portfolio/yahoo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&fiscalCmd{}, "reports")
	c.Register(&riskCmd{}, "analysis")
	c.Register(&simulateCmd{}, "analysis")
	c.Register(&assistCmd{}, "assistant")
}

// As a CLI application it is short lived, globals are fine here.

var (
	csvDir          = flag.String("csv-dir", ".", "Directory holding the broker CSV exports")
	baseCurrency    = flag.String("base", "EUR", "Base currency for report totals")
	defaultCurrency = flag.String("default-currency", "USD", "Currency assumed for unmapped symbols")
	verbose         = flag.Bool("v", false, "Enable debug logging")
)

// Setup loads the environment and configures logging. Called once by the
// main package before Execute.
func Setup() {
	godotenv.Load()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// loadBook imports every export in the csv directory and reconciles it.
func loadBook() (*portfolio.Ledger, *portfolio.Book, error) {
	ledger, err := portfolio.ImportDir(*csvDir, *defaultCurrency)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("transactions", ledger.Len()).Str("dir", *csvDir).Msg("ledger imported")
	return ledger, portfolio.Reconcile(ledger), nil
}

// openSymbols lists the symbols of the open positions, sorted.
func openSymbols(book *portfolio.Book) []string {
	var symbols []string
	for _, pos := range book.OpenPositions() {
		symbols = append(symbols, pos.Symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// loadSnapshot imports, reconciles and values the portfolio at current
// market prices.
func loadSnapshot(client *yahoo.Client) (*portfolio.Book, *portfolio.Snapshot, error) {
	_, book, err := loadBook()
	if err != nil {
		return nil, nil, err
	}
	pricing, err := client.Pricing(openSymbols(book))
	if err != nil {
		return nil, nil, err
	}
	return book, portfolio.Valuate(book, pricing, *baseCurrency), nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the terminal renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
