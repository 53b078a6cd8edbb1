package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/iaduartec/portfolio/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. It runs before flag
// parsing and exits when invoked by the shell.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"csv-dir":          predict.Dirs("*"),
		"base":             predict.Set{"EUR", "USD"},
		"default-currency": predict.Set{"EUR", "USD"},
		"v":                predict.Nothing,
	},
	Sub: map[string]*complete.Command{
		"report": {Flags: map[string]complete.Predictor{"names": predict.Nothing}},
		"fiscal": {Flags: map[string]complete.Predictor{"rate": predict.Something}},
		"risk":   {Flags: map[string]complete.Predictor{"rf": predict.Something}},
		"simulate": {Flags: map[string]complete.Predictor{
			"days": predict.Something,
			"sims": predict.Something,
			"seed": predict.Something,
		}},
		"assist": {},
	},
}

func main() {
	completion.Complete("pfs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}
