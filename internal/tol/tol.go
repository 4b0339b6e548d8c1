// Package tol compares floating-point values with a tolerance.
package tol

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Equal reports whether a and b are within eps of each other, either
// absolutely or relative to the larger magnitude. NaNs are equal to each
// other, and infinities are only equal to themselves.
func Equal[T constraints.Float](a, b, eps T) bool {
	if a == b {
		return true
	}
	fa, fb := float64(a), float64(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return math.IsNaN(fa) && math.IsNaN(fb)
	}
	if math.IsInf(fa, 0) || math.IsInf(fb, 0) {
		return false
	}
	d := math.Abs(fa - fb)
	if d <= float64(eps) {
		return true
	}
	return d <= float64(eps)*math.Max(math.Abs(fa), math.Abs(fb))
}

// Ulps reports whether b is at most n representable float64 steps away
// from a.
func Ulps[T constraints.Float](a, b T, n int) bool {
	fa, fb := float64(a), float64(b)
	if fa == fb {
		return true
	}
	if math.IsNaN(fa) || math.IsNaN(fb) || math.IsInf(fa, 0) || math.IsInf(fb, 0) {
		return false
	}
	for i := 0; i < n; i++ {
		fa = math.Nextafter(fa, fb)
		if fa == fb {
			return true
		}
	}
	return false
}
