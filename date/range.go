package date

import (
	"iter"
	"time"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the period p that contains d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Contains return true if the date is included in the range (boundaries included).
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Days returns an iterator over every day of the range.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Bounds returns the instants [start, end) covering the range in loc.
func (r Range) Bounds(loc *time.Location) (start, end time.Time) {
	start = time.Date(r.From.y, r.From.m, r.From.d, 0, 0, 0, 0, loc)
	end = time.Date(r.To.y, r.To.m, r.To.d+1, 0, 0, 0, 0, loc)
	return start, end
}

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
