package frac

import (
	"fmt"
	"math"
	"math/bits"
)

// RoundMode selects how MultLong and the fixed-point conversions round a
// quotient that has a non-zero remainder.
//
// Exactly one of the base modes must be given. RoundPassMinMax may be OR-ed
// into any of them.
type RoundMode int

const (
	// RoundZero truncates toward zero.
	RoundZero RoundMode = iota
	// RoundInf rounds away from zero.
	RoundInf
	// RoundDown rounds toward negative infinity (floor).
	RoundDown
	// RoundUp rounds toward positive infinity (ceiling).
	RoundUp
	// RoundNearInf rounds to nearest, with exact ties rounded away from zero.
	RoundNearInf

	// RoundPassMinMax makes MultLong return an operand that already equals
	// math.MinInt64 or math.MaxInt64 unchanged instead of rescaling it.
	RoundPassMinMax RoundMode = 1 << 8

	roundBaseMask RoundMode = RoundPassMinMax - 1
)

var roundModeNames = [...]string{
	RoundZero:    "RoundZero",
	RoundInf:     "RoundInf",
	RoundDown:    "RoundDown",
	RoundUp:      "RoundUp",
	RoundNearInf: "RoundNearInf",
}

// Base returns mode without the RoundPassMinMax flag.
func (mode RoundMode) Base() RoundMode {
	return mode & roundBaseMask
}

// IsValid reports whether mode names exactly one base mode plus optional flags.
func (mode RoundMode) IsValid() bool {
	if mode&^(roundBaseMask|RoundPassMinMax) != 0 {
		return false
	}
	return mode.Base() <= RoundNearInf
}

// String returns the Go name of mode, e.g. "RoundNearInf|RoundPassMinMax".
func (mode RoundMode) String() string {
	if !mode.IsValid() {
		return fmt.Sprintf("RoundMode(%d)", int(mode))
	}
	s := roundModeNames[mode.Base()]
	if mode&RoundPassMinMax != 0 {
		s += "|RoundPassMinMax"
	}
	return s
}

// MultLong returns a*b/c rounded according to mode, as though the product a*b
// had been computed with unbounded precision. The result saturates to
// [math.MinInt64, math.MaxInt64] instead of wrapping.
//
// If a or b is zero, the result is zero. Otherwise, if c is zero, the result
// is math.MaxInt64 or math.MinInt64 according to the sign of a*b.
//
// MultLong panics with ErrRoundMode if mode is not valid.
func MultLong(a, b, c int64, mode RoundMode) int64 {
	if !mode.IsValid() {
		panic(fmt.Errorf("%w: %d", ErrRoundMode, int(mode)))
	}
	if mode&RoundPassMinMax != 0 && (a == math.MinInt64 || a == math.MaxInt64) {
		return a
	}
	if a == 0 || b == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0)
	if c == 0 {
		return saturate64(neg)
	}
	if c < 0 {
		neg = !neg
	}

	// From here on we work with magnitudes only. The product of two 64-bit
	// magnitudes always fits in 128 bits (hi:lo). If hi >= c, the quotient
	// needs more than 64 bits and so is out of range no matter the sign; this
	// is also the precondition bits.Div64 places on its arguments.
	ua, ub, uc := abs64u(a), abs64u(b), abs64u(c)
	hi, lo := bits.Mul64(ua, ub)
	if hi >= uc {
		return saturate64(neg)
	}
	q, r := bits.Div64(hi, lo, uc)

	if r != 0 && roundsAway(mode.Base(), neg, r, uc) {
		if q == math.MaxUint64 {
			return saturate64(neg)
		}
		q++
	}

	if neg {
		// 1<<63 is the one magnitude that is only representable as a negative
		// value; int64(q) wraps to math.MinInt64 and negating it is a no-op.
		if q > 1<<63 {
			return math.MinInt64
		}
		return -int64(q)
	}
	if q > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(q)
}

// roundsAway reports whether a truncated quotient with sign neg and non-zero
// remainder r (of divisor c) must be moved one unit away from zero.
func roundsAway(mode RoundMode, neg bool, r, c uint64) bool {
	switch mode {
	case RoundZero:
		return false
	case RoundInf:
		return true
	case RoundDown:
		return neg
	case RoundUp:
		return !neg
	case RoundNearInf:
		// 2r >= c, written so 2r cannot overflow
		return r >= c-r
	}
	panic(fmt.Errorf("%w: %d", ErrRoundMode, int(mode)))
}

// saturate64 returns the int64 bound in the direction given by neg.
func saturate64(neg bool) int64 {
	if neg {
		return math.MinInt64
	}
	return math.MaxInt64
}
