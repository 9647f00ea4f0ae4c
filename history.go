package cryptofolio

import (
	"slices"
	"sort"
	"time"

	"github.com/etnz/cryptofolio/date"
	"github.com/shopspring/decimal"
)

// History is an ordered list of records.
//
// Records are sorted by time. Records with the same time keep the order in
// which they were written.
type History struct {
	records []Record
}

// NewHistory returns the history of records, in any order.
func NewHistory(records ...Record) *History {
	h := &History{records: slices.Clone(records)}
	slices.SortStableFunc(h.records, func(a, b Record) int { return a.Time.Compare(b.Time) })
	return h
}

// Len returns the number of records.
func (h *History) Len() int { return len(h.records) }

// Records returns a copy of all the records.
func (h *History) Records() []Record { return slices.Clone(h.records) }

// First returns the time of the oldest record.
func (h *History) First() (time.Time, bool) {
	if len(h.records) == 0 {
		return time.Time{}, false
	}
	return h.records[0].Time, true
}

// Last returns the time of the most recent record.
func (h *History) Last() (time.Time, bool) {
	if len(h.records) == 0 {
		return time.Time{}, false
	}
	return h.records[len(h.records)-1].Time, true
}

// Window returns the records whose time is within [start, end].
func (h *History) Window(start, end time.Time) []Record {
	i := sort.Search(len(h.records), func(i int) bool { return !h.records[i].Time.Before(start) })
	var res []Record
	for ; i < len(h.records) && !h.records[i].Time.After(end); i++ {
		res = append(res, h.records[i])
	}
	return res
}

// LatestPerAsset returns, for each asset, the most recent record at or before now.
func (h *History) LatestPerAsset(now time.Time) map[string]Latest {
	res := make(map[string]Latest)
	for _, r := range h.records {
		if r.Time.After(now) {
			break
		}
		res[r.Asset] = Latest{Time: r.Time, Value: r.Value}
	}
	return res
}

// Assets returns the sorted list of assets ever recorded.
func (h *History) Assets() []string {
	var res []string
	for _, r := range h.records {
		res = append(res, r.Asset)
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// Totals returns the portfolio total of each batch, in chronological order.
func (h *History) Totals() []Total {
	var res []Total
	sum := decimal.Zero
	for i, r := range h.records {
		sum = sum.Add(decimal.NewFromFloat(r.Value))
		if i == len(h.records)-1 || !h.records[i+1].Time.Equal(r.Time) {
			res = append(res, Total{Time: r.Time, Value: sum.InexactFloat64()})
			sum = decimal.Zero
		}
	}
	return res
}

// DailyTotals returns the last total recorded on each day.
func (h *History) DailyTotals() *date.History[float64] {
	res := new(date.History[float64])
	for _, t := range h.Totals() {
		res.Set(date.Of(t.Time), t.Value)
	}
	return res
}

// Close is the last total of a period.
type Close struct {
	Period date.Range
	Value  float64
}

// Closes returns, for each period of kind p overlapping r, the last total
// recorded in that period within r. Periods with no record are omitted.
func (h *History) Closes(r date.Range, p date.Period) []Close {
	var res []Close
	for day, v := range h.DailyTotals().Within(r) {
		period := date.NewRange(day, p)
		if n := len(res); n > 0 && res[n-1].Period == period {
			res[n-1].Value = v
			continue
		}
		res = append(res, Close{Period: period, Value: v})
	}
	return res
}
