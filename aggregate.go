package cryptofolio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	// DefaultPacing is the minimum delay between two calls to the same provider.
	DefaultPacing = 250 * time.Millisecond
	// DefaultTimeout bounds every single fetch.
	DefaultTimeout = 8 * time.Second
	// DefaultWorkers is the number of providers queried concurrently.
	DefaultWorkers = 4
)

// ErrAllSourcesFailed is returned when not a single source could be fetched.
var ErrAllSourcesFailed = errors.New("all sources failed")

// Source provides the position of a single asset.
type Source interface {
	// Asset is the asset identifier, like "ETH".
	Asset() string
	// Provider names the rate limited service behind the source. Sources sharing
	// a provider are fetched one after the other. An empty provider means the
	// source is independent.
	Provider() string
	// Fetch returns the current position of the asset.
	Fetch(ctx context.Context) (Position, error)
}

// Aggregator collects a Snapshot from a list of sources.
//
// A failing source is degraded to a zero position. The reference snapshot is
// returned when UseFallback is set, when every source failed, or when a source
// panicked.
type Aggregator struct {
	Sources     []Source
	UseFallback bool
	Pacing      time.Duration // 0 means DefaultPacing
	Timeout     time.Duration // 0 means DefaultTimeout
	Workers     int           // 0 means DefaultWorkers
	Log         *log.Logger   // nil means the standard logger
}

// Aggregate returns the current snapshot. It never fails.
func (a *Aggregator) Aggregate(ctx context.Context) (snap *Snapshot) {
	if a.UseFallback {
		a.logf("static data requested, using reference snapshot")
		return ReferenceSnapshot()
	}
	defer func() {
		if r := recover(); r != nil {
			a.logf("aggregation failed, using reference snapshot: %v", r)
			snap = ReferenceSnapshot()
		}
	}()

	positions, err := a.collect(ctx)
	if err != nil {
		a.logf("aggregation failed, using reference snapshot: %v", err)
		return ReferenceSnapshot()
	}
	return &Snapshot{Positions: positions}
}

// collect fetches every source. Positions are in the Sources order.
func (a *Aggregator) collect(ctx context.Context) ([]Position, error) {
	positions := make([]Position, len(a.Sources))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		panicked error
	)
	sem := make(chan struct{}, a.workers())
	for _, group := range a.groups() {
		wg.Add(1)
		go func(group []int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					panicked = fmt.Errorf("source panicked: %v", r)
					mu.Unlock()
				}
			}()
			for n, i := range group {
				if n > 0 {
					a.pause(ctx)
				}
				positions[i] = a.fetch(ctx, a.Sources[i])
			}
		}(group)
	}
	wg.Wait()

	if panicked != nil {
		return nil, panicked
	}
	failed := 0
	for _, p := range positions {
		if p.IsDegraded() {
			failed++
		}
	}
	if len(positions) > 0 && failed == len(positions) {
		return nil, ErrAllSourcesFailed
	}
	return positions, nil
}

// groups returns the indexes of sources, grouped by provider, in the Sources order.
func (a *Aggregator) groups() [][]int {
	var groups [][]int
	byProvider := make(map[string]int)
	for i, src := range a.Sources {
		p := src.Provider()
		if p == "" {
			groups = append(groups, []int{i})
			continue
		}
		g, exists := byProvider[p]
		if !exists {
			g = len(groups)
			byProvider[p] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func (a *Aggregator) fetch(ctx context.Context, src Source) Position {
	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()
	start := time.Now()
	p, err := src.Fetch(ctx)
	if err != nil {
		a.logf("%s degraded to zero after %v: %v", src.Asset(), time.Since(start).Round(time.Millisecond), err)
		return Degraded(src.Asset(), err)
	}
	if p.Value < 0 {
		err := fmt.Errorf("negative value %v", p.Value)
		a.logf("%s degraded to zero: %v", src.Asset(), err)
		return Degraded(src.Asset(), err)
	}
	p.Asset = src.Asset()
	return p
}

func (a *Aggregator) pause(ctx context.Context) {
	t := time.NewTimer(a.pacing())
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (a *Aggregator) pacing() time.Duration {
	if a.Pacing <= 0 {
		return DefaultPacing
	}
	return a.Pacing
}

func (a *Aggregator) timeout() time.Duration {
	if a.Timeout <= 0 {
		return DefaultTimeout
	}
	return a.Timeout
}

func (a *Aggregator) workers() int {
	if a.Workers <= 0 {
		return DefaultWorkers
	}
	return a.Workers
}

func (a *Aggregator) logf(format string, args ...any) {
	if a.Log != nil {
		a.Log.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
