package cryptofolio

import (
	"testing"
	"time"
)

func TestEvolution(t *testing.T) {
	asOf := at(t, "2025-06-10 12:00:00")
	var records []Record
	add := func(ago time.Duration, values map[string]float64) {
		records = append(records, batch(asOf.Add(-ago), values)...)
	}
	add(30*time.Hour, map[string]float64{"ETH": 100, "XRP": 10})
	add(24*time.Hour, map[string]float64{"ETH": 150, "XRP": 10}) // window is open on this side
	add(20*time.Hour, map[string]float64{"ETH": 200, "GALA": 0})
	add(1*time.Hour, map[string]float64{"ETH": 300, "GALA": 5, "FET": 40})
	add(-1*time.Hour, map[string]float64{"ETH": 900, "FET": 80}) // after asOf

	got := Evolution(NewHistory(records...), asOf)

	want := map[string]Percent{
		"ETH": 50, // (300-200)/200
		"FET": 0,
	}
	if len(got) != len(want) {
		t.Fatalf("Evolution() = %v, want %v", got, want)
	}
	for asset, p := range want {
		if !nearly(got[asset], p) {
			t.Errorf("Evolution()[%s] = %v, want %v", asset, got[asset], p)
		}
	}
	if _, exists := got["XRP"]; exists {
		t.Error("XRP has no record in the window and must be omitted")
	}
	if _, exists := got["GALA"]; exists {
		t.Error("GALA has a zero baseline and must be omitted")
	}
}

func TestEvolution_EmptyHistory(t *testing.T) {
	if got := Evolution(NewHistory(), time.Now()); len(got) != 0 {
		t.Errorf("Evolution() = %v, want empty", got)
	}
}
