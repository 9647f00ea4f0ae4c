package cryptofolio

import "testing"

func TestIsDue(t *testing.T) {
	tests := []struct {
		days int
		want bool
	}{
		{0, false},
		{1, false},
		{364, false},
		{365, true},
		{366, false},
		{730, true},
		{-365, false},
	}
	for _, tt := range tests {
		if got := IsDue(tt.days); got != tt.want {
			t.Errorf("IsDue(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		total  float64
		days   int
		amount string
		status Status
	}{
		{2835, 0, "70.88", NotDue},   // 70.875 is rounded away from zero
		{10000, 365, "250", Due},
		{1234.56, 100, "30.86", NotDue},
	}
	for _, tt := range tests {
		z := Evaluate(tt.total, tt.days, ReferenceGoldPrice)
		if got := z.Amount.Decimal().String(); got != tt.amount {
			t.Errorf("Evaluate(%v).Amount = %s, want %s", tt.total, got, tt.amount)
		}
		if z.Status != tt.status {
			t.Errorf("Evaluate(%v, %d).Status = %v, want %v", tt.total, tt.days, z.Status, tt.status)
		}
		if z.Nisab != ReferenceGoldPrice*NisabMultiplier {
			t.Errorf("Evaluate().Nisab = %v, want %v", z.Nisab, ReferenceGoldPrice*NisabMultiplier)
		}
	}
}

func TestZakatState_DaysUntilDue(t *testing.T) {
	tests := []struct {
		days, want int
	}{
		{0, 365},
		{100, 265},
		{365, 0},
		{400, 330},
	}
	for _, tt := range tests {
		if got := Evaluate(1, tt.days, 1).DaysUntilDue(); got != tt.want {
			t.Errorf("DaysUntilDue() after %d days = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestStatus_String(t *testing.T) {
	if Due.String() != "DUE" || NotDue.String() != "NOT_DUE" {
		t.Errorf("Status strings = %q, %q", Due, NotDue)
	}
}
