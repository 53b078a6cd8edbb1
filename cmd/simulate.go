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

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	days int
	sims int
	seed uint64
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "Monte Carlo projection of the portfolio value" }
func (*simulateCmd) Usage() string {
	return `pfs simulate [-days <n>] [-sims <n>] [-seed <n>]

  Projects the portfolio value forward with a geometric-Brownian Monte
  Carlo seeded by the historical daily return series, and reports the
  terminal distribution.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 252, "trading days to project")
	f.IntVar(&c.sims, "sims", 1000, "number of simulated paths")
	f.Uint64Var(&c.seed, "seed", 42, "random seed, same seed same paths")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	result, err := portfolio.Performance(snapshot, panel, 0)
	if errors.Is(err, portfolio.ErrNoMetrics) {
		fmt.Fprintln(os.Stderr, "Not enough data to seed a simulation.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}

	sim := portfolio.Simulate(result.DailyReturns, c.sims, c.days, c.seed)
	stats, ok := portfolio.Stats(sim)
	if !ok {
		fmt.Fprintln(os.Stderr, "Simulation produced no paths.")
		return subcommands.ExitFailure
	}

	report := renderer.BuildSimulation(stats, c.days, c.sims, snapshot.TotalMarketValue, snapshot.BaseCurrency)
	printMarkdown(renderer.RenderSimulation(report))
	return subcommands.ExitSuccess
}
