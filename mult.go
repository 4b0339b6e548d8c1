package frac

import (
	"math"
	"math/bits"
)

// Mult computes (numA/denA) * (numB/denB) and returns it in canonical form
// within MaxMagnitude. The bool result is true if the returned value is exact.
//
// A zero denominator on either side makes the result a special value whose
// sign is the product of the operand signs. So infinities multiply like
// signed infinities, and 0*Inf or NaN*x give NaN without any extra checks.
func Mult(numA, denA, numB, denB int64) (Frac, bool) {
	if denA == 0 || denB == 0 {
		sgn := sgn64(numA) * sgn64(numB)
		if (denA < 0) != (denB < 0) {
			sgn = -sgn
		}
		return Frac{sgn, 0}, true
	}

	// Terms equal to math.MinInt64 have no int64 magnitude; an exact
	// reduction gets rid of them (or, failing that, of one bit).
	exact := true
	if hasMinInt64(numA, denA) {
		x, ok := Reduce(numA, denA, math.MaxInt64)
		numA, denA, exact = x.num, x.den, exact && ok
	}
	if hasMinInt64(numB, denB) {
		x, ok := Reduce(numB, denB, math.MaxInt64)
		numB, denB, exact = x.num, x.den, exact && ok
	}

	sgn := sgn64(numA) * sgn64(denA) * sgn64(numB) * sgn64(denB)
	if sgn == 0 {
		return Frac{0, 1}, exact
	}
	ma, na := abs64(numA), abs64(denA)
	mb, nb := abs64(numB), abs64(denB)

	// The result is (ma*mb)/(na*nb), so GCD(ma, nb) and GCD(mb, na) can be
	// divided out up front to keep the products small.
	if d := GCD(ma, nb); d > 1 {
		ma, nb = ma/d, nb/d
	}
	if d := GCD(mb, na); d > 1 {
		mb, na = mb/d, na/d
	}

	mh, ml := bits.Mul64(uint64(ma), uint64(mb))
	nh, nl := bits.Mul64(uint64(na), uint64(nb))
	if mh == 0 && nh == 0 && ml <= math.MaxInt64 && nl <= math.MaxInt64 {
		z, ok := Reduce(sgn*int64(ml), int64(nl), MaxMagnitude)
		return z, exact && ok
	}

	// At least one product needs more than 63 bits. Scale both down by the
	// same power of two so they fit, which keeps the ratio to within rounding
	// error, and let Reduce approximate the scaled ratio. The rounding can
	// move the result off the closest fraction in budget to a near neighbor.
	shift := uint(max64i(bitLen128(mh, ml), bitLen128(nh, nl)) - 62)
	m := scaleDown(ma, mb, shift)
	n := scaleDown(na, nb, shift)
	if n == 0 {
		// ma*mb/(na*nb) >= 2^61, far beyond MaxMagnitude
		n = 1
	}
	z, _ := Reduce(sgn*m, n, MaxMagnitude)
	return z, false
}

// Mul multiplies x and y and returns the result, along with whether it is
// exact. See Mult.
func (x Frac) Mul(y Frac) (Frac, bool) {
	return Mult(x.num, x.den, y.num, y.den)
}

// Div divides x by y and returns the result, along with whether it is exact.
// The following are equivalent:
//
//	x.Div(y) == x.Mul(y.Inv())
func (x Frac) Div(y Frac) (Frac, bool) {
	return x.Mul(y.Inv())
}

// scaleDown returns round(a*b / 2^shift) for non-negative a and b whose
// product is below 2^(62+shift), so the result always fits in 62 bits.
func scaleDown(a, b int64, shift uint) int64 {
	// MultLong takes an int64 divisor, so at most 2^62 per step.
	if shift > 62 {
		a = MultLong(a, 1, 1<<(shift-62), RoundNearInf)
		shift = 62
	}
	return MultLong(a, b, 1<<shift, RoundNearInf)
}

// bitLen128 returns the number of bits needed to represent hi:lo.
func bitLen128(hi, lo uint64) int {
	if hi != 0 {
		return 64 + bits.Len64(hi)
	}
	return bits.Len64(lo)
}

func hasMinInt64(num, den int64) bool {
	return num == math.MinInt64 || den == math.MinInt64
}

func max64i(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// abs64 returns the absolute value of x.
func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
