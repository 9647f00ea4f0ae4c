package cryptofolio

import "time"

// EvolutionWindow is the trailing window used by Evolution.
const EvolutionWindow = 24 * time.Hour

// Evolution returns, for each asset, the change of its value between the
// earliest record within (asOf-24h, asOf] and its most recent record at or
// before asOf.
//
// Assets without a record in the window, or whose earliest value in the window
// is zero, are omitted.
func Evolution(h *History, asOf time.Time) map[string]Percent {
	start := asOf.Add(-EvolutionWindow)
	baseline := make(map[string]float64)
	latest := make(map[string]float64)
	for _, r := range h.records {
		if r.Time.After(asOf) {
			break
		}
		latest[r.Asset] = r.Value
		if !r.Time.After(start) {
			continue
		}
		if _, exists := baseline[r.Asset]; !exists {
			baseline[r.Asset] = r.Value
		}
	}

	res := make(map[string]Percent, len(baseline))
	for asset, base := range baseline {
		if c, ok := Change(base, latest[asset]); ok {
			res[asset] = c
		}
	}
	return res
}
