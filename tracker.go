package cryptofolio

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// GoldSource provides the price of one gram of gold in USD.
type GoldSource interface {
	PricePerGram(ctx context.Context) (float64, error)
}

// StaticGold is a fixed gold price.
type StaticGold float64

func (g StaticGold) PricePerGram(context.Context) (float64, error) { return float64(g), nil }

// Tracker runs evaluation cycles: aggregate, record, then derive evolution and
// zakat from the recorded history.
//
// A Tracker holds no state between cycles, everything a cycle computes is in
// its Report.
type Tracker struct {
	Aggregator *Aggregator
	Store      *Store
	Gold       GoldSource       // nil means ReferenceGoldPrice
	Now        func() time.Time // nil means time.Now
}

// Report is the outcome of one evaluation cycle.
type Report struct {
	CycleID  string
	Time     time.Time // evaluation instant, to the second.
	Snapshot *Snapshot
	// Recorded is set when the snapshot has been appended to the history.
	Recorded bool
	// LastUpdate is the time of the data displayed.
	LastUpdate time.Time
	Evolution  map[string]Percent
	Zakat      ZakatState
	// Crossing is the most recent time the total was below the nisab, zero if never.
	Crossing  time.Time
	RowErrors []RowError
}

// Total returns the snapshot total.
func (r *Report) Total() float64 { return r.Snapshot.Total() }

// Fallback reports whether the report is built from the reference snapshot.
func (r *Report) Fallback() bool { return r.Snapshot.Fallback }

func (t *Tracker) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

// Evaluate runs a full cycle: live aggregation, recording, and evaluation.
func (t *Tracker) Evaluate(ctx context.Context) (*Report, error) {
	id := uuid.NewString()
	logger := log.New(log.Writer(), fmt.Sprintf("[cycle %s] ", id[:8]), log.Flags()|log.Lmsgprefix)

	agg := *t.Aggregator
	agg.Log = logger
	snap := agg.Aggregate(ctx)

	now := t.now().Truncate(time.Second)
	recorded, err := t.Store.Append(snap, now)
	if err != nil {
		return nil, fmt.Errorf("cannot record snapshot: %w", err)
	}
	if recorded {
		logger.Printf("recorded %d positions in %s", len(snap.Positions), t.Store.Path())
	}

	gold := ReferenceGoldPrice
	if !snap.Fallback {
		gold = t.goldPrice(ctx, logger)
	}
	r, err := t.evaluate(id, now, snap, gold, logger)
	if err != nil {
		return nil, err
	}
	r.Recorded = recorded
	r.LastUpdate = now
	return r, nil
}

// Inspect evaluates the recorded history as of now, without fetching any asset.
// The snapshot is made of the latest value of each asset.
func (t *Tracker) Inspect(ctx context.Context) (*Report, error) {
	id := uuid.NewString()
	logger := log.New(log.Writer(), fmt.Sprintf("[cycle %s] ", id[:8]), log.Flags()|log.Lmsgprefix)
	now := t.now().Truncate(time.Second)

	h, _, err := t.Store.Load()
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	var last time.Time
	latest := h.LatestPerAsset(now)
	for _, asset := range h.Assets() {
		l, ok := latest[asset]
		if !ok {
			continue
		}
		snap.Positions = append(snap.Positions, Position{Asset: asset, Value: l.Value, Price: NA, MarketCap: NA})
		if l.Time.After(last) {
			last = l.Time
		}
	}
	r, err := t.evaluate(id, now, snap, t.goldPrice(ctx, logger), logger)
	if err != nil {
		return nil, err
	}
	r.LastUpdate = last
	return r, nil
}

func (t *Tracker) evaluate(id string, now time.Time, snap *Snapshot, gold float64, logger *log.Logger) (*Report, error) {
	h, rowErrs, err := t.Store.Load()
	if err != nil {
		return nil, err
	}
	for _, e := range rowErrs {
		logger.Printf("skipping history %v", e)
	}
	r := &Report{
		CycleID:   id,
		Time:      now,
		Snapshot:  snap,
		Evolution: Evolution(h, now),
		RowErrors: rowErrs,
	}
	days := 0
	if crossing, ok := CrossingPoint(h, gold); ok {
		r.Crossing = crossing
		days = elapsedDays(crossing, now)
	}
	r.Zakat = Evaluate(snap.Total(), days, gold)
	return r, nil
}

func (t *Tracker) goldPrice(ctx context.Context, logger *log.Logger) float64 {
	if t.Gold == nil {
		return ReferenceGoldPrice
	}
	p, err := t.Gold.PricePerGram(ctx)
	if err != nil || p <= 0 {
		logger.Printf("gold price unavailable, using %v: %v", ReferenceGoldPrice, err)
		return ReferenceGoldPrice
	}
	return p
}
