package date

import (
	"testing"
	"time"
)

func TestSet(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Set two values in reverse order and check the history stays sorted.
	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Set(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Set(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Set(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Set(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}
}

func TestSetKeepsLastValueOfTheDay(t *testing.T) {
	h := new(History[float64])
	on := New(2025, time.March, 3)
	h.Set(on, 100).Set(on, 120).Set(on, 90)

	if h.Len() != 1 {
		t.Fatalf("Len() = %v want 1", h.Len())
	}
	if v, _ := h.Get(on); v != 90 {
		t.Errorf("Get(%v) = %v want 90", on, v)
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Set(New(2025, 1, 10), 10)
	h.Set(New(2025, 1, 20), 20)

	testCases := []struct {
		on     Date
		want   float64
		wantOK bool
	}{
		{New(2025, 1, 1), 0, false},
		{New(2025, 1, 10), 10, true},
		{New(2025, 1, 15), 10, true},
		{New(2025, 1, 20), 20, true},
		{New(2025, 2, 1), 20, true},
	}
	for _, tc := range testCases {
		got, ok := h.ValueAsOf(tc.on)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestWithin(t *testing.T) {
	h := new(History[float64])
	for i := 1; i <= 31; i++ {
		h.Set(New(2025, time.January, i), float64(i))
	}
	h.Set(New(2025, time.February, 1), 32)

	r := NewRange(New(2025, time.January, 10), Weekly)
	var got []float64
	for _, v := range h.Within(r) {
		got = append(got, v)
	}
	// 2025-01-10 is a Friday, the week runs from Monday the 6th to Sunday the 12th.
	want := []float64{6, 7, 8, 9, 10, 11, 12}
	if len(got) != len(want) {
		t.Fatalf("Within(%v) = %v want %v", r, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Within(%v)[%d] = %v want %v", r, i, got[i], want[i])
		}
	}
}
