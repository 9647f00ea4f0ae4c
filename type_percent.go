package cryptofolio

import "fmt"

// Percent is a percentage, 12.5 means 12.5%.
type Percent float64

// Change returns the relative change from base to v.
// It is not defined for a zero base.
func Change(base, v float64) (Percent, bool) {
	if base == 0 {
		return 0, false
	}
	return Percent((v - base) / base * 100), true
}

// Share returns the part of v in total, 0 for a zero total.
func Share(v, total float64) Percent {
	if total == 0 {
		return 0
	}
	return Percent(v / total * 100)
}

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// SignedString renders a change: "+1.50%", "-0.25%", or "-" when it rounds to zero.
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", float64(p))
	if s[1:] == "0.00%" {
		return "-"
	}
	return s
}
