package cryptofolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// HawlDays is the length of the zakat year, in days.
const HawlDays = 365

// ZakatRate is the share of the portfolio due as zakat.
var ZakatRate = decimal.RequireFromString("0.025")

// Status tells whether zakat is due.
type Status int

const (
	NotDue Status = iota
	Due
)

func (s Status) String() string {
	switch s {
	case Due:
		return "DUE"
	case NotDue:
		return "NOT_DUE"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Message is the human message attached to the status.
func (s Status) Message() string {
	if s == Due {
		return "Pay now"
	}
	return "Not yet time to pay"
}

// ZakatState is the zakat evaluation of a portfolio total.
type ZakatState struct {
	GoldPrice float64 // USD per gram
	Nisab     float64 // USD
	Amount    Money   // 2.5% of the total, rounded to the cent.
	Days      int     // whole days since the crossing point.
	Status    Status
}

// IsDue reports whether zakat is due after days since the crossing point.
//
// It is due on each exact multiple of HawlDays, and only then: a day without
// evaluation misses that year's due day.
func IsDue(days int) bool { return days > 0 && days%HawlDays == 0 }

// Evaluate returns the zakat state of total after days since the crossing point.
func Evaluate(total float64, days int, goldPrice float64) ZakatState {
	z := ZakatState{
		GoldPrice: goldPrice,
		Nisab:     Nisab(goldPrice),
		Amount:    USD(total).Mul(ZakatRate).Round(2),
		Days:      days,
		Status:    NotDue,
	}
	if IsDue(days) {
		z.Status = Due
	}
	return z
}

// DaysUntilDue returns the number of days before the next due day, 0 if due today.
func (z ZakatState) DaysUntilDue() int {
	if z.Status == Due {
		return 0
	}
	return HawlDays - z.Days%HawlDays
}
