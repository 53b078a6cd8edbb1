package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/iaduartec/portfolio"
	"github.com/iaduartec/portfolio/agent"
	"github.com/iaduartec/portfolio/renderer"
	"github.com/iaduartec/portfolio/yahoo"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `pfs assist [question...]

  Start an interactive session with the AI assistant. The assistant can
  read the holdings, risk and projection reports, and search the web for
  market context.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	strategist := agent.NewStrategist()
	analyst := agent.NewAnalyst(&cliReports{yahoo.New(log.Logger)})
	a := agent.New(os.Stdout, os.Stdin, strategist, analyst)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// cliReports serves the assistant the exact markdown reports the CLI
// prints, built fresh on each call.
type cliReports struct {
	client *yahoo.Client
}

func (r *cliReports) Holdings() (string, error) {
	_, snapshot, err := loadSnapshot(r.client)
	if err != nil {
		return "", err
	}
	return renderer.RenderHoldings(renderer.BuildHoldings(snapshot, nil)), nil
}

func (r *cliReports) Risk() (string, error) {
	book, snapshot, err := loadSnapshot(r.client)
	if err != nil {
		return "", err
	}
	panel, err := r.client.History(openSymbols(book))
	if err != nil {
		return "", err
	}
	result, err := portfolio.Performance(snapshot, panel, 0)
	if err != nil {
		return "", err
	}
	return renderer.RenderRisk(renderer.BuildRisk(result)), nil
}

func (r *cliReports) Simulation(days, numSimulations int) (string, error) {
	book, snapshot, err := loadSnapshot(r.client)
	if err != nil {
		return "", err
	}
	panel, err := r.client.History(openSymbols(book))
	if err != nil {
		return "", err
	}
	result, err := portfolio.Performance(snapshot, panel, 0)
	if err != nil {
		return "", err
	}
	sim := portfolio.Simulate(result.DailyReturns, numSimulations, days, 42)
	stats, ok := portfolio.Stats(sim)
	if !ok {
		return "", fmt.Errorf("simulation produced no paths")
	}
	report := renderer.BuildSimulation(stats, days, numSimulations, snapshot.TotalMarketValue, snapshot.BaseCurrency)
	return renderer.RenderSimulation(report), nil
}
