package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/cryptofolio"
	"github.com/google/subcommands"
)

// setup points the commands to a fresh history file and captures their output.
func setup(t *testing.T) (path string, out *bytes.Buffer) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "data_crypto.csv")
	out = new(bytes.Buffer)
	oldData, oldOut := *dataFile, stdout
	*dataFile, stdout = path, out
	t.Cleanup(func() { *dataFile, stdout = oldData, oldOut })
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ETH_RPC_URL", "")
	return path, out
}

func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func record(t *testing.T, path string, values ...float64) {
	t.Helper()
	s := cryptofolio.NewStore(path)
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	for i, v := range values {
		snap := &cryptofolio.Snapshot{Positions: []cryptofolio.Position{{Asset: "ETH", Value: v, Price: cryptofolio.NA, MarketCap: cryptofolio.NA}}}
		if _, err := s.Append(snap, day.AddDate(0, 0, i)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHistory(t *testing.T) {
	path, out := setup(t)
	record(t, path, 100, 150, 120)

	if got := execute(t, &historyCmd{}, "-p", "month", "-d", "2025-03-01", "-html"); got != subcommands.ExitSuccess {
		t.Fatalf("history exit = %v", got)
	}
	for _, want := range []string{"<html", "2025-03-10", "2025-03-12", "+50.00%", "-20.00%"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("history output does not contain %q:\n%s", want, out)
		}
	}
}

func TestHistory_Usage(t *testing.T) {
	setup(t)
	if got := execute(t, &historyCmd{}, "-p", "decade"); got != subcommands.ExitUsageError {
		t.Errorf("history -p decade exit = %v, want usage error", got)
	}
	if got := execute(t, &historyCmd{}, "-d", "soon"); got != subcommands.ExitUsageError {
		t.Errorf("history -d soon exit = %v, want usage error", got)
	}
}

func TestReport(t *testing.T) {
	path, out := setup(t)
	record(t, path, 100, 150)

	if got := execute(t, &reportCmd{}, "-html"); got != subcommands.ExitSuccess {
		t.Fatalf("report exit = %v", got)
	}
	if !strings.Contains(out.String(), "ETH") {
		t.Errorf("report output does not show ETH:\n%s", out)
	}
}

func TestCheck_Fallback(t *testing.T) {
	path, _ := setup(t)

	if got := execute(t, &checkCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("check exit = %v, want success", got)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("reference snapshot has been recorded: %v", err)
	}
}

func TestUpdate_Fallback(t *testing.T) {
	_, out := setup(t)

	if got := execute(t, &updateCmd{}, "-html"); got != subcommands.ExitSuccess {
		t.Fatalf("update exit = %v", got)
	}
	if !strings.Contains(out.String(), "GALA") {
		t.Errorf("update output does not show the reference snapshot:\n%s", out)
	}
}

type fakeSender struct {
	err     error
	subject string
}

func (s *fakeSender) Send(_ context.Context, subject, _ string) error {
	s.subject = subject
	return s.err
}
func (*fakeSender) Recipient() string { return "me@example.com" }

func TestAlert(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	report := func(fallback bool, status cryptofolio.Status) *cryptofolio.Report {
		return &cryptofolio.Report{
			CycleID:  "0123456789abcdef",
			Time:     now,
			Snapshot: &cryptofolio.Snapshot{Fallback: fallback},
			Zakat:    cryptofolio.ZakatState{Status: status, Days: 365},
		}
	}
	tests := []struct {
		name    string
		report  *cryptofolio.Report
		err     error
		want    subcommands.ExitStatus
		subject string
	}{
		{"fallback", report(true, cryptofolio.Due), nil, subcommands.ExitSuccess, ""},
		{"not due", report(false, cryptofolio.NotDue), nil, subcommands.ExitSuccess, ""},
		{"sent", report(false, cryptofolio.Due), nil, subcommands.ExitSuccess, "[Zakat Alert] Zakat payment due - 2025-06-01"},
		{"failed", report(false, cryptofolio.Due), errors.New("connection refused"), subcommands.ExitFailure, "[Zakat Alert] Zakat payment due - 2025-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout = new(bytes.Buffer)
			t.Cleanup(func() { stdout = os.Stdout })
			s := &fakeSender{err: tt.err}
			if got := alert(context.Background(), s, tt.report); got != tt.want {
				t.Errorf("alert() = %v, want %v", got, tt.want)
			}
			if s.subject != tt.subject {
				t.Errorf("alert() sent %q, want %q", s.subject, tt.subject)
			}
		})
	}
}
