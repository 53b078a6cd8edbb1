package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/iaduartec/portfolio/renderer"
	"github.com/iaduartec/portfolio/yahoo"
	"github.com/rs/zerolog/log"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	names bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the reconciled holdings at current prices" }
func (*reportCmd) Usage() string {
	return `pfs report [-names]

  Imports the broker CSV exports, reconciles every position at average
  cost and values them at current market prices.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.names, "names", false, "resolve company names for the holdings table")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := yahoo.New(log.Logger)
	book, snapshot, err := loadSnapshot(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	names := map[string]string{}
	if c.names {
		for _, symbol := range openSymbols(book) {
			names[symbol] = client.Metadata(symbol).Name
		}
	}

	printMarkdown(renderer.RenderHoldings(renderer.BuildHoldings(snapshot, names)))
	return subcommands.ExitSuccess
}
