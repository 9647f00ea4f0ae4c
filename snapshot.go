package cryptofolio

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceGoldPrice is the gold price per gram, in USD, used when no live
// price is available.
const ReferenceGoldPrice = 69.28

// Position is the valuation of one asset in a snapshot.
type Position struct {
	Asset     string
	Value     float64 // USD, never negative.
	Price     Figure  // unit price in USD
	MarketCap Figure
	// Err is the reason why the position has been degraded to zero.
	Err error
}

// Degraded returns the zero valued position of an asset that could not be fetched.
func Degraded(asset string, err error) Position {
	return Position{Asset: asset, Err: err}
}

// IsDegraded reports whether the position replaces a failed fetch.
func (p Position) IsDegraded() bool { return p.Err != nil }

// Snapshot is the result of one aggregation: one position per tracked asset.
type Snapshot struct {
	Positions []Position
	// Fallback is set when the snapshot is the reference snapshot and not live data.
	// Fallback snapshots are never recorded.
	Fallback bool
}

// Total returns the sum of all the positions.
func (s *Snapshot) Total() float64 {
	sum := decimal.Zero
	for _, p := range s.Positions {
		sum = sum.Add(decimal.NewFromFloat(p.Value))
	}
	return sum.InexactFloat64()
}

// Get returns the position of asset.
func (s *Snapshot) Get(asset string) (Position, bool) {
	i := slices.IndexFunc(s.Positions, func(p Position) bool { return p.Asset == asset })
	if i < 0 {
		return Position{}, false
	}
	return s.Positions[i], true
}

func (s *Snapshot) Values() map[string]float64 {
	res := make(map[string]float64, len(s.Positions))
	for _, p := range s.Positions {
		res[p.Asset] = p.Value
	}
	return res
}

func (s *Snapshot) Prices() map[string]Figure {
	res := make(map[string]Figure, len(s.Positions))
	for _, p := range s.Positions {
		res[p.Asset] = p.Price
	}
	return res
}

func (s *Snapshot) MarketCaps() map[string]Figure {
	res := make(map[string]Figure, len(s.Positions))
	for _, p := range s.Positions {
		res[p.Asset] = p.MarketCap
	}
	return res
}

// Degraded returns the positions that failed.
func (s *Snapshot) Degraded() []Position {
	var res []Position
	for _, p := range s.Positions {
		if p.IsDegraded() {
			res = append(res, p)
		}
	}
	return res
}

// Records returns the snapshot as a batch of records at t.
func (s *Snapshot) Records(t time.Time) []Record {
	res := make([]Record, 0, len(s.Positions))
	for _, p := range s.Positions {
		res = append(res, Record{Time: t, Asset: p.Asset, Value: p.Value})
	}
	return res
}

// ReferenceSnapshot returns the static snapshot used in place of live data.
func ReferenceSnapshot() *Snapshot {
	pos := func(asset string, value, price float64) Position {
		return Position{Asset: asset, Value: value, Price: Known(price), MarketCap: NA}
	}
	return &Snapshot{
		Fallback: true,
		Positions: []Position{
			pos("ETH", 1240.50, 3100),
			pos("FET", 430.25, 1.42),
			pos("GALA", 87.40, 0.029),
			pos("ESX", 65.10, 0.41),
			pos("USD", 520.00, 1),
			pos("XRP", 301.75, 0.62),
			pos("ACTIVE", 190.00, 1),
		},
	}
}
