package cryptofolio

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Figure is a number that a source may not be able to provide, like the unit
// price of an asset whose quote failed or the market cap of a stablecoin
// balance.
type Figure struct {
	value float64
	known bool
}

// NA is the unavailable Figure.
var NA Figure

// Known returns an available Figure. NaN and infinities are not available.
func Known(v float64) Figure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	return Figure{value: v, known: true}
}

// Value returns the figure and whether it is available.
func (f Figure) Value() (float64, bool) { return f.value, f.known }

// IsKnown reports whether the figure is available.
func (f Figure) IsKnown() bool { return f.known }

// Or returns the figure, or def when unavailable.
func (f Figure) Or(def float64) float64 {
	if !f.known {
		return def
	}
	return f.value
}

func (f Figure) String() string {
	if !f.known {
		return "N/A"
	}
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

// Compact formats the figure like FormatCompact, or "N/A".
func (f Figure) Compact() string {
	if !f.known {
		return "N/A"
	}
	return FormatCompact(f.value)
}

// MarshalJSON encodes an unavailable figure as null.
func (f Figure) MarshalJSON() ([]byte, error) {
	if !f.known {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// FormatCompact formats large numbers with a B, M or K suffix and two decimals.
func FormatCompact(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case a >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case a >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
