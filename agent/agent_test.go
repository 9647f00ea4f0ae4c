package agent

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/cryptofolio"
	"google.golang.org/genai"
)

func newTracker(t *testing.T) *cryptofolio.Tracker {
	t.Helper()
	store := cryptofolio.NewStore(t.TempDir() + "/data_crypto.csv")
	store.Location = time.UTC
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, v := range []float64{1000, 1100, 1210} {
		snap := &cryptofolio.Snapshot{Positions: []cryptofolio.Position{
			{Asset: "ETH", Value: v, Price: cryptofolio.NA, MarketCap: cryptofolio.NA},
			{Asset: "XRP", Value: 100, Price: cryptofolio.NA, MarketCap: cryptofolio.NA},
		}}
		if _, err := store.Append(snap, day.AddDate(0, 0, i)); err != nil {
			t.Fatal(err)
		}
	}
	return &cryptofolio.Tracker{
		Store: store,
		Gold:  cryptofolio.StaticGold(50),
		Now:   func() time.Time { return day.AddDate(0, 0, 2).Add(time.Hour) },
	}
}

func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("%s response is for %s/%s", name, resp.ID, resp.Name)
	}
	return resp.Response
}

func TestTreasury(t *testing.T) {
	lib := NewLibrary(Treasury(newTracker(t)))

	status := call(t, lib, "portfolio_status", nil)
	out, ok := status["output"].(string)
	if !ok {
		t.Fatalf("portfolio_status = %v, want a markdown output", status)
	}
	for _, want := range []string{"ETH", "XRP", "$1,310.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("portfolio_status does not contain %q:\n%s", want, out)
		}
	}

	history := call(t, lib, "portfolio_history", map[string]any{"period": "month", "date": "2025-03-15"})
	out, _ = history["output"].(string)
	for _, want := range []string{"2025-03-10", "2025-03-12", "+9.09%"} {
		if !strings.Contains(out, want) {
			t.Errorf("portfolio_history does not contain %q:\n%s", want, out)
		}
	}

	zakat := call(t, lib, "zakat_status", nil)
	out2, ok := zakat["output"].(map[string]any)
	if !ok {
		t.Fatalf("zakat_status = %v, want an object", zakat)
	}
	if got, want := out2["status"], "NOT_DUE"; got != want {
		t.Errorf("zakat_status status = %v, want %v", got, want)
	}
	if got, want := out2["nisab"], "$4,450.00"; got != want {
		t.Errorf("zakat_status nisab = %v, want %v", got, want)
	}
}

func TestTreasury_InvalidArgs(t *testing.T) {
	lib := NewLibrary(Treasury(newTracker(t)))
	tests := []map[string]any{
		{"period": "decade"},
		{"period": 3},
		{"date": "yesterday"},
	}
	for _, args := range tests {
		resp := call(t, lib, "portfolio_history", args)
		if _, ok := resp["error"].(string); !ok {
			t.Errorf("portfolio_history(%v) = %v, want an error", args, resp)
		}
	}
}

func TestLibrary_Unknown(t *testing.T) {
	lib := NewLibrary([]*Func{})
	resp := call(t, lib, "nope", nil)
	if got, want := resp["error"], "unknown function nope"; got != want {
		t.Errorf("unknown function error = %v, want %v", got, want)
	}
}

func TestFunc_Error(t *testing.T) {
	f := &Func{
		Decl: &genai.FunctionDeclaration{Name: "boom"},
		Func: func(context.Context, map[string]any) (any, error) { return nil, errors.New("exploded") },
	}
	resp := f.Call(context.Background(), "7", nil)
	if got, want := resp.Response["error"], "exploded"; got != want {
		t.Errorf("Call() error = %v, want %v", got, want)
	}
}

func TestExpert_CallInvalidQuestion(t *testing.T) {
	e := NewScholar()
	resp := e.Call(context.Background(), "1", map[string]any{"question": 42})
	if _, ok := resp.Response["error"].(string); !ok {
		t.Errorf("Call() = %v, want an error", resp.Response)
	}
	if d := e.Declaration(); d.Name != "Scholar" || d.Parameters.Required[0] != "question" {
		t.Errorf("Declaration() = %+v", d)
	}
}

func TestAgent_Bye(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader(""), NewScholar())
	a.Facilitator.chat = &genai.Chat{} // skip Start.
	if err := a.Run(context.Background(), nil, "bye"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Welcome to cfo assist") {
		t.Errorf("Run() output = %q", out.String())
	}
}
