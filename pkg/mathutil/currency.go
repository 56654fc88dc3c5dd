// Package mathutil provides common mathematical utility functions.
package mathutil

import "github.com/iwvelando/mortgage-simulator/pkg/constants"

// ToPercent converts a decimal rate to a percentage.
func ToPercent(rate float64) float64 {
	return rate * constants.PercentageMultiplier
}

// FromPercent converts a percentage to a decimal rate.
func FromPercent(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// Clamp bounds n to the closed range [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
