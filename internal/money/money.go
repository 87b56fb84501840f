// Package money provides minor-unit rounding for currency arithmetic.
package money

import "math"

// RoundToMinorUnit truncates x to 2 decimal places by flooring the value
// scaled by 100. Note this is truncation, not round-half-up: 3.337 becomes
// 3.33. The allocator relies on this direction so that every non-final
// share rounds down and the final participant's share absorbs the whole
// remainder, keeping the column sum exactly equal to the expense amount.
func RoundToMinorUnit(x float64) float64 {
	return math.Floor(x*100) / 100
}

// SameAmount reports whether a and b represent the same amount at
// minor-unit precision. Comparing scaled integers sidesteps float noise
// accumulated by summing shares.
func SameAmount(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}
