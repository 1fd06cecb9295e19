// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
)

// RoundTo rounds val to the given number of fraction digits, half away from zero.
func RoundTo(val float64, digits int) float64 {
	if digits <= 0 {
		return math.Round(val)
	}
	scale := math.Pow(10, float64(digits))
	return math.Round(val*scale) / scale
}

// RoundToInt rounds half away from zero and converts to int.
// The result is undefined for NaN or values outside the int range.
func RoundToInt(val float64) int {
	return int(math.Round(val))
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values. NaN propagates.
func Min(a, b float64) float64 {
	return min(a, b)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
