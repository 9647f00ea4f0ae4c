package cryptofolio

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingGold struct{}

func (failingGold) PricePerGram(context.Context) (float64, error) { return 0, errors.New("quota exceeded") }

func TestTracker_Evaluate(t *testing.T) {
	store := newTestStore(t)
	start := at(t, "2024-01-01 09:00:00")
	// below the nisab once, then above for 365 days.
	if _, err := store.Append(snapshot("ETH", 1000.0), start); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Append(snapshot("ETH", 9000.0), start.AddDate(0, 0, 1)); err != nil {
		t.Fatal(err)
	}
	now := start.Add(365 * 24 * time.Hour)

	tr := &Tracker{
		Aggregator: &Aggregator{Sources: []Source{newMockSource("ETH", "", 9500)}},
		Store:      store,
		Gold:       StaticGold(50),
		Now:        func() time.Time { return now },
	}
	r, err := tr.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !r.Recorded || r.Fallback() {
		t.Errorf("Evaluate() recorded = %v, fallback = %v, want a recorded live snapshot", r.Recorded, r.Fallback())
	}
	if r.CycleID == "" {
		t.Error("Evaluate() has no cycle id")
	}
	if got, want := r.Zakat.Days, 365; got != want {
		t.Errorf("Zakat.Days = %d, want %d", got, want)
	}
	if r.Zakat.Status != Due {
		t.Errorf("Zakat.Status = %v, want DUE", r.Zakat.Status)
	}
	if got, want := r.Zakat.Amount.Decimal().String(), "237.5"; got != want {
		t.Errorf("Zakat.Amount = %s, want %s", got, want)
	}
	if !r.Crossing.Equal(start) {
		t.Errorf("Crossing = %v, want %v", r.Crossing, start)
	}
	if !r.LastUpdate.Equal(now) {
		t.Errorf("LastUpdate = %v, want %v", r.LastUpdate, now)
	}

	h, _, _ := store.Load()
	if last, _ := h.Last(); !last.Equal(now) {
		t.Errorf("last recorded batch at %v, want %v", last, now)
	}
}

func TestTracker_FallbackIsNotRecorded(t *testing.T) {
	store := newTestStore(t)
	tr := &Tracker{
		Aggregator: &Aggregator{UseFallback: true},
		Store:      store,
		Gold:       StaticGold(100),
	}
	r, err := tr.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if r.Recorded || !r.Fallback() {
		t.Errorf("Evaluate() recorded = %v, fallback = %v, want an unrecorded fallback", r.Recorded, r.Fallback())
	}
	if r.Zakat.GoldPrice != ReferenceGoldPrice {
		t.Errorf("GoldPrice = %v, want the reference price with reference data", r.Zakat.GoldPrice)
	}
	if h, _, _ := store.Load(); h.Len() != 0 {
		t.Errorf("history has %d records, want none", h.Len())
	}
}

func TestTracker_GoldFailure(t *testing.T) {
	tr := &Tracker{
		Aggregator: &Aggregator{Sources: []Source{newMockSource("ETH", "", 1)}},
		Store:      newTestStore(t),
		Gold:       failingGold{},
	}
	r, err := tr.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if r.Zakat.GoldPrice != ReferenceGoldPrice {
		t.Errorf("GoldPrice = %v, want %v", r.Zakat.GoldPrice, ReferenceGoldPrice)
	}
}

func TestTracker_Inspect(t *testing.T) {
	store := newTestStore(t)
	first := at(t, "2024-01-01 09:00:00")
	store.Append(snapshot("ETH", 100.0, "XRP", 50.0), first)
	store.Append(snapshot("ETH", 150.0), first.Add(time.Hour))

	tr := &Tracker{Store: store, Now: func() time.Time { return first.Add(2 * time.Hour) }}
	r, err := tr.Inspect(context.Background())
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if got, want := r.Total(), 200.0; got != want {
		t.Errorf("Total() = %v, want %v", got, want)
	}
	if !r.LastUpdate.Equal(first.Add(time.Hour)) {
		t.Errorf("LastUpdate = %v, want the last record time", r.LastUpdate)
	}
	if got := r.Evolution["ETH"]; !nearly(got, 50) {
		t.Errorf("Evolution[ETH] = %v, want 50%%", got)
	}
}
