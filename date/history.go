package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of daily values.
// Days are unique and always sorted.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

func compare(a, b Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Len returns the number of days in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, value
	}
	return h.days[last], h.values[last]
}

// Set records the value of a day. A value already recorded for that day is
// replaced: when samples are set in chronological order, the history keeps
// the closing value of each day.
func (h *History[T]) Set(on Date, v T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, compare)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	var zero T
	i, found := slices.BinarySearchFunc(h.days, day, compare)
	if !found {
		return zero, false
	}
	return h.values[i], true
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	var zero T
	i, found := slices.BinarySearchFunc(h.days, day, compare)
	if found {
		return h.values[i], true
	}
	// i is where day would be inserted, the previous entry is the last one before it.
	if i == 0 {
		return zero, false
	}
	return h.values[i-1], true
}

// Values returns an iterator over all date/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Within returns an iterator over the date/value pairs inside r.
func (h *History[T]) Within(r Range) iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for on, v := range h.Values() {
			if on.After(r.To) {
				return
			}
			if r.Contains(on) && !yield(on, v) {
				return
			}
		}
	}
}
