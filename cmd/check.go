package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/notify"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "run an evaluation cycle and email an alert when zakat is due" }
func (*checkCmd) Usage() string {
	return `check

  Cron entry point. Runs an evaluation cycle and sends the zakat alert by
  email when it is due. Cycles on the reference snapshot never alert.
  Exits with 1 only when the alert could not be sent.
`
}

func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(ctx, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	r, err := a.tracker.Evaluate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return alert(ctx, notify.New(a.cfg.SMTP), r)
}

type sender interface {
	Send(ctx context.Context, subject, body string) error
	Recipient() string
}

// alert sends the zakat alert of r when it is due.
func alert(ctx context.Context, m sender, r *cryptofolio.Report) subcommands.ExitStatus {
	switch {
	case r.Fallback():
		log.Printf("[cycle %s] reference snapshot in use, alert skipped", r.CycleID[:8])
		return subcommands.ExitSuccess
	case r.Zakat.Status != cryptofolio.Due:
		fmt.Fprintf(stdout, "%s: %s (%d days, %d to go)\n", r.Zakat.Status, r.Zakat.Status.Message(), r.Zakat.Days, r.Zakat.DaysUntilDue())
		return subcommands.ExitSuccess
	}
	subject, body := renderer.AlertMessage(r)
	if err := m.Send(ctx, subject, body); err != nil {
		fmt.Fprintf(os.Stderr, "Error: alert not sent: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "alert sent to %s\n", m.Recipient())
	return subcommands.ExitSuccess
}
