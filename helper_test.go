package cryptofolio

import (
	"math"
	"testing"
	"time"
)

// at parses a history timestamp in UTC.
func at(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("invalid test time %q: %v", s, err)
	}
	return v
}

// batch returns the records of a single batch.
func batch(t time.Time, values map[string]float64) []Record {
	var res []Record
	for asset, v := range values {
		res = append(res, Record{Time: t, Asset: asset, Value: v})
	}
	return res
}

// snapshot returns a live snapshot with the given values.
func snapshot(values ...any) *Snapshot {
	s := &Snapshot{}
	for i := 0; i+1 < len(values); i += 2 {
		s.Positions = append(s.Positions, Position{Asset: values[i].(string), Value: values[i+1].(float64), Price: NA, MarketCap: NA})
	}
	return s
}

// dailyHistory returns a history with one record per day, starting at start.
func dailyHistory(start time.Time, values ...float64) *History {
	var records []Record
	for i, v := range values {
		records = append(records, Record{Time: start.AddDate(0, 0, i), Asset: "ETH", Value: v})
	}
	return NewHistory(records...)
}

// nearly compares percentages with a precision of 1e-4.
func nearly(p, q Percent) bool { return math.Abs(float64(p-q)) < 1e-4 }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir() + "/static/data_crypto.csv")
	s.Location = time.UTC
	return s
}
