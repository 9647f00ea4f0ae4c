// Command cfo tracks a crypto portfolio and its zakat.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/cryptofolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"data": predict.Files("*.csv"),
		"env":  predict.Files("*"),
	},
	Sub: map[string]*complete.Command{
		"update": {Flags: map[string]complete.Predictor{
			"w":    predict.Nothing,
			"html": predict.Nothing,
		}},
		"report": {Flags: map[string]complete.Predictor{
			"html": predict.Nothing,
		}},
		"history": {Flags: map[string]complete.Predictor{
			"p":    predict.Set{"day", "week", "month", "quarter", "year"},
			"d":    predict.Nothing,
			"html": predict.Nothing,
		}},
		"check":  {},
		"assist": {},
		"topic":  {Args: predict.Set{"zakat", "history", "dates", "configuration"}},
		"help":   {},
	},
}

func main() {
	// exits when invoked by the shell to complete the command line.
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
