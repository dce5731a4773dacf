// Package money provides fixed-point currency arithmetic in integer cents.
//
// All intermediate sums in the order pipeline are carried as Cents so that
// per-item totals and the order total reconcile exactly regardless of how
// many items are accumulated. Float values appear only at the transport
// boundary, with two fractional digits.
package money

import "math"

// Cents is a currency amount expressed in integer cents.
type Cents int64

// ToCents converts a decimal price to integer cents, rounding half away
// from zero. ToCents(29.99) == 2999.
func ToCents(price float64) Cents {
	return Cents(math.Round(price * 100))
}

// Float converts the amount back to a decimal with two fractional digits.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// Mul scales the amount by an integer quantity.
func (c Cents) Mul(quantity int) Cents {
	return c * Cents(quantity)
}
