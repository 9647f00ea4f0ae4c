package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptofolio/date"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	period string
	day    string
	html   bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily closing totals over a period" }
func (*historyCmd) Usage() string {
	return `history [-p <period>] [-d <date>] [-html]

  Displays the last total recorded each day of the period containing <date>.
  Periods are day, week, month, quarter and year.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "period: day, week, month, quarter, year")
	f.StringVar(&c.day, "d", "", "a date in the period (YYYY-MM-DD), default is today")
	f.BoolVar(&c.html, "html", false, "print a standalone html page instead of the terminal table")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	day := date.Today()
	if c.day != "" {
		if day, err = date.Parse(c.day); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	a, err := newApp(ctx, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	h, rowErrors, err := a.tracker.Store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, e := range rowErrors {
		fmt.Fprintf(os.Stderr, "skipped %v\n", e)
	}
	r := date.NewRange(day, p)
	md := renderer.RenderHistory(r, date.Daily, h.Closes(r, date.Daily))
	if err := output("Portfolio History", md, c.html); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
