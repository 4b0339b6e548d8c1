package frac

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Int26_6 returns x as a 26.6 fixed-point value, rounded according to mode.
// Values outside the range of fixed.Int26_6, including the infinities,
// saturate to its bounds. NaN converts to 0.
func (x Frac) Int26_6(mode RoundMode) fixed.Int26_6 {
	if x.IsNaN() {
		return 0
	}
	return fixed.Int26_6(clamp32(MultLong(1<<6, x.num, x.den, mode)))
}

// Int52_12 returns x as a 52.12 fixed-point value, rounded according to mode.
// Values outside the range of fixed.Int52_12, including the infinities,
// saturate to its bounds. NaN converts to 0.
func (x Frac) Int52_12(mode RoundMode) fixed.Int52_12 {
	if x.IsNaN() {
		return 0
	}
	return fixed.Int52_12(MultLong(1<<12, x.num, x.den, mode))
}

// Scale26_6 multiplies v by x, rounding according to mode and saturating to
// the range of fixed.Int26_6. It is meant for rescaling lengths such as
// glyph advances by a ratio. Scaling by NaN gives 0.
func (x Frac) Scale26_6(v fixed.Int26_6, mode RoundMode) fixed.Int26_6 {
	if x.IsNaN() {
		return 0
	}
	return fixed.Int26_6(clamp32(MultLong(int64(v), x.num, x.den, mode)))
}

// FromInt26_6 returns v as a Frac. Every 26.6 value fits within
// MaxMagnitude, so the conversion is exact.
func FromInt26_6(v fixed.Int26_6) Frac {
	z, _ := Reduce(int64(v), 1<<6, MaxMagnitude)
	return z
}

// FromInt52_12 returns v as a Frac within MaxMagnitude, along with whether
// the conversion is exact.
func FromInt52_12(v fixed.Int52_12) (Frac, bool) {
	return Reduce(int64(v), 1<<12, MaxMagnitude)
}

// clamp32 saturates v to the int32 range.
func clamp32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
