package util

import "math"

// Coerce returns value limited to the range [min..max]
func Coerce(value float64, min float64, max float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// CoerceInt returns value limited to the range [min..max]
func CoerceInt(value int, min int, max int) int {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// IsFinite reports whether value is neither NaN nor infinite.
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// IsIntegral reports whether value is a finite number without a fractional part.
func IsIntegral(value float64) bool {
	return IsFinite(value) && value == math.Trunc(value)
}
