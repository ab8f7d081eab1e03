// Package money provides the monetary rounding and formatting rules shared by
// the fiscal tag encoder and the cash-drawer reconciliation.
//
// Every monetary value that crosses a component boundary is rounded to exactly
// two decimal places (half-up at the cent). Intermediate accumulation may use
// full float precision, but anything stored, returned, or encoded goes through
// Round2 or Format so that displayed components always add up to displayed
// totals.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to two decimal places, half away from zero.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// Format renders an amount as a fixed two-decimal string, e.g. "143.75".
// No thousands separator, '.' as the decimal point.
func Format(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2)
}

// Sum2 adds amounts and rounds the result to two decimal places.
func Sum2(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// IsValidAmount reports whether v is a usable non-negative monetary input.
// NaN and infinities come back false, as do negative values.
func IsValidAmount(v float64) bool {
	if v != v { // NaN
		return false
	}
	if v > 1e15 || v < 0 {
		return false
	}
	return true
}
