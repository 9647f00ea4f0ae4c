package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type updateCmd struct {
	every int
	html  bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch all assets, record them and display the dashboard" }
func (*updateCmd) Usage() string {
	return `update [-w <seconds>] [-html]

  Runs an evaluation cycle: fetches every asset, appends the snapshot to the
  history and displays the dashboard.
  With -w, runs a cycle every <seconds> until interrupted.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.every, "w", 0, "re-run every `seconds`, 0 runs once")
	f.BoolVar(&c.html, "html", false, "print a standalone html page instead of the terminal dashboard")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.every < 0 {
		fmt.Fprintln(os.Stderr, "-w must be positive")
		return subcommands.ExitUsageError
	}
	a, err := newApp(ctx, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	for {
		r, err := a.tracker.Evaluate(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := output("Crypto Portfolio", renderer.RenderDashboard(r), c.html); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.every == 0 {
			return subcommands.ExitSuccess
		}
		log.Printf("next update in %ds", c.every)
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-time.After(time.Duration(c.every) * time.Second):
		}
	}
}
