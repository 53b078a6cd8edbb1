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

// fiscalCmd holds the flags for the 'fiscal' subcommand.
type fiscalCmd struct {
	taxRate float64
}

func (*fiscalCmd) Name() string     { return "fiscal" }
func (*fiscalCmd) Synopsis() string { return "estimate the net profit after a flat tax rate" }
func (*fiscalCmd) Usage() string {
	return `pfs fiscal [-rate <rate>]

  Estimates gross profit (realized, unrealized, dividends, net of fees
  and withholdings) and the net after a flat tax rate. Orientation only.
`
}

func (c *fiscalCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.taxRate, "rate", 0.19, "flat tax rate applied to the gross profit")
}

func (c *fiscalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := yahoo.New(log.Logger)
	_, snapshot, err := loadSnapshot(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	est := snapshot.Fiscal(c.taxRate)
	printMarkdown(renderer.RenderFiscal(renderer.BuildFiscal(snapshot, est)))
	return subcommands.ExitSuccess
}
