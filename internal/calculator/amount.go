package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of fractional digits in a settled amount.
const CurrencyPlaces int32 = 2

// Limits on a single entry amount.
const (
	MaxIntegerDigits  = 15
	MaxFractionDigits = 4
)

var (
	// Tolerance is half a minor unit: the most a rounded total may differ
	// from the exact one, and the most credits and debts may disagree.
	Tolerance = decimal.New(5, -3)

	// MinorUnit is the smallest transferable amount.
	MinorUnit = decimal.New(1, -CurrencyPlaces)
)

// ParseAmount parses a user supplied amount such as "12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	return checkAmount(d)
}

// AmountFromFloat converts a float amount, rejecting NaN, ±Inf and negatives.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v is not finite", ErrInvalidAmount, f)
	}
	if f < 0 {
		return decimal.Zero, fmt.Errorf("%w: %v is negative", ErrInvalidAmount, f)
	}
	return checkAmount(decimal.NewFromFloat(f))
}

// checkAmount rejects negative amounts and amounts too large or too precise
// to be money. The exponent is checked first so that nothing is rescaled
// before it is known to be small.
func checkAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, d)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	if exp := d.Exponent(); exp > MaxIntegerDigits || exp < -(MaxIntegerDigits+MaxFractionDigits) {
		return decimal.Zero, fmt.Errorf("%w: exponent %d is out of range", ErrInvalidAmount, exp)
	}
	if d.GreaterThanOrEqual(decimal.New(1, MaxIntegerDigits)) {
		return decimal.Zero, fmt.Errorf("%w: more than %d integer digits", ErrInvalidAmount, MaxIntegerDigits)
	}
	if !d.Equal(d.Truncate(MaxFractionDigits)) {
		return decimal.Zero, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, MaxFractionDigits)
	}
	return d, nil
}
