package cryptofolio

import "time"

// NisabMultiplier is the nisab expressed in grams of gold.
const NisabMultiplier = 89

// Nisab returns the threshold, in USD, for a gold price per gram.
func Nisab(goldPrice float64) float64 { return goldPrice * NisabMultiplier }

// CrossingPoint returns the time of the most recent batch whose total was
// below the nisab. It returns false if no batch ever was.
func CrossingPoint(h *History, goldPrice float64) (time.Time, bool) {
	nisab := Nisab(goldPrice)
	totals := h.Totals()
	for i := len(totals) - 1; i >= 0; i-- {
		if totals[i].Value < nisab {
			return totals[i].Time, true
		}
	}
	return time.Time{}, false
}

// DaysSinceThreshold returns the number of whole days elapsed between the
// crossing point and now. It is 0 when there is no crossing point.
func DaysSinceThreshold(h *History, goldPrice float64, now time.Time) int {
	t, ok := CrossingPoint(h, goldPrice)
	if !ok {
		return 0
	}
	return elapsedDays(t, now)
}

// elapsedDays returns the number of whole days between from and to, never negative.
func elapsedDays(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
