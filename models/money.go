package models

import (
	"errors"
	"math"
)

// ErrInvalidAmount is returned for amounts that cannot be represented as a
// positive number of cents.
var ErrInvalidAmount = errors.New("invalid amount")

// Amounts are stored as integer cents so that the balance projection stays
// exactly equal to the signed sum of the log. JSON carries decimals.

const maxAmountCents = int64(1) << 50

// CentsFromAmount converts a decimal amount to cents with half-away-from-zero
// rounding. Only positive amounts are accepted.
func CentsFromAmount(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	cents := int64(math.Round(amount * 100))
	if cents <= 0 || cents > maxAmountCents {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// AmountFromCents converts stored cents back to the decimal the API speaks.
func AmountFromCents(cents int64) float64 {
	return float64(cents) / 100
}
