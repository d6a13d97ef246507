// Package money holds the exact-decimal arithmetic shared by the ledger,
// budget and health calculations. Everything rounds HALF_UP; binary floats
// never enter these paths.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned by Ratio when the denominator is zero.
// Callers are expected to special-case the zero denominator before calling
// instead of treating this as a normal outcome.
var ErrDivisionByZero = errors.New("division by zero")

var hundred = decimal.NewFromInt(100)

// Ratio divides num by den rounded half-up to the given scale.
func Ratio(num, den decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if den.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return num.DivRound(den, scale), nil
}

// Percentage computes part/whole*100 rounded half-up to the given scale.
// A zero whole yields ErrDivisionByZero, same as Ratio.
func Percentage(part, whole decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if whole.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return part.Mul(hundred).DivRound(whole, scale), nil
}

// Clamp returns v bounded below by floor.
func Clamp(v, floor decimal.Decimal) decimal.Decimal {
	if v.LessThan(floor) {
		return floor
	}
	return v
}

// Format renders an amount as fixed two-decimal currency text.
func Format(v decimal.Decimal) string {
	return v.StringFixed(2)
}
