package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/iaduartec/portfolio"
	"github.com/iaduartec/portfolio/renderer"
	"github.com/iaduartec/portfolio/yahoo"
	"github.com/rs/zerolog/log"
)

// riskCmd holds the flags for the 'risk' subcommand.
type riskCmd struct {
	riskFree float64
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "annualized volatility, Sharpe and max drawdown" }
func (*riskCmd) Usage() string {
	return `pfs risk [-rf <rate>]

  Derives the portfolio's daily return series from one year of history
  under the current position weights and reports the annualized metrics.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.riskFree, "rf", 0, "annual risk-free rate used by the Sharpe ratio")
}

func (c *riskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := yahoo.New(log.Logger)
	book, snapshot, err := loadSnapshot(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	panel, err := client.History(openSymbols(book))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching history: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := portfolio.Performance(snapshot, panel, c.riskFree)
	if errors.Is(err, portfolio.ErrNoMetrics) {
		fmt.Fprintln(os.Stderr, "Not enough data to compute risk metrics.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing metrics: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderRisk(renderer.BuildRisk(result)))
	return subcommands.ExitSuccess
}
