package utils

import "math"

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CeilAboveEps rounds v up to an integer, forgiving floating point noise just
// above a whole number: CeilAboveEps(2.0000000001, 1e-6) == 2.
func CeilAboveEps(v, eps float64) int {
	if v <= eps {
		return 0
	}
	return int(math.Ceil(v - eps))
}
