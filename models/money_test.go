package models

import (
	"math"
	"testing"
)

func TestCentsFromAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    int64
		wantErr bool
	}{
		{"whole", 100, 10000, false},
		{"two decimals", 42.50, 4250, false},
		{"rounds up", 0.005, 1, false},
		{"sub cent rounds", 10.004, 1000, false},
		{"zero", 0, 0, true},
		{"negative", -5, 0, true},
		{"nan", math.NaN(), 0, true},
		{"inf", math.Inf(1), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CentsFromAmount(tt.amount)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v, got %d", tt.amount, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d cents, got %d", tt.want, got)
			}
		})
	}
}

func TestAmountFromCents(t *testing.T) {
	if got := AmountFromCents(4250); got != 42.50 {
		t.Errorf("expected 42.50, got %v", got)
	}
	if got := AmountFromCents(-500); got != -5 {
		t.Errorf("expected -5, got %v", got)
	}
}
