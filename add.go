package frac

import (
	"math"
	"math/bits"
)

// Add adds x and y and returns the result in canonical form within
// MaxMagnitude, along with whether it is exact. Both values must be
// canonical.
//
// NaN plus anything is NaN, and so is the sum of opposite infinities. An
// infinity plus anything else is that infinity.
func (x Frac) Add(y Frac) (Frac, bool) {
	if x.den == 0 || y.den == 0 {
		switch {
		case x.IsNaN() || y.IsNaN():
			return NaN, true
		case x.den != 0:
			return y, true
		case y.den != 0 || x.num == y.num:
			return x, true
		}
		return NaN, true
	}
	mx, nx := x.num, x.den
	my, ny := y.num, y.den

	// Use naive arithmetic if we can.
	if abs64u(mx) < math.MaxInt32 && abs64u(my) < math.MaxInt32 && nx < math.MaxInt32 && ny < math.MaxInt32 {
		// Every term has at most 31 bits, so each cross product has at most
		// 62 and their sum at most 63. The denominator has at most 62.
		return Reduce(mx*ny+my*nx, nx*ny, MaxMagnitude)
	}

	s1, s2 := sgn64(mx), sgn64(my)
	if s1 == 0 {
		return Reduce(my, ny, MaxMagnitude)
	} else if s2 == 0 {
		return Reduce(mx, nx, MaxMagnitude)
	}

	// The result is (mx*(ny/d) + my*(nx/d)) / (nx*(ny/d)) for d = GCD(nx, ny).
	// Every factor is below 2^63 here, so each 128-bit product is below 2^126
	// and the sum cannot carry out of the high word.
	d := uint64(GCD(nx, ny))
	nxd, nyd := uint64(nx)/d, uint64(ny)/d
	m1h, m1l := bits.Mul64(abs64u(mx), nyd)
	m2h, m2l := bits.Mul64(abs64u(my), nxd)
	nh, nl := bits.Mul64(uint64(nx), nyd)

	// With equal signs the magnitudes add. Otherwise the smaller magnitude is
	// subtracted from the larger, and the result takes the larger one's sign.
	var mh, ml uint64
	sgn := s1
	if s1 == s2 {
		var c uint64
		ml, c = bits.Add64(m1l, m2l, 0)
		mh, _ = bits.Add64(m1h, m2h, c)
	} else {
		if m2h > m1h || (m2h == m1h && m2l > m1l) {
			m1h, m2h = m2h, m1h
			m1l, m2l = m2l, m1l
			sgn = s2
		}
		var b uint64
		ml, b = bits.Sub64(m1l, m2l, 0)
		mh, _ = bits.Sub64(m1h, m2h, b)
	}
	if mh == 0 && ml == 0 {
		return Frac{0, 1}, true
	}

	if mh == 0 && nh == 0 && ml <= math.MaxInt64 && nl <= math.MaxInt64 {
		return Reduce(sgn*int64(ml), int64(nl), MaxMagnitude)
	}

	// Scale both terms down by the same power of two, as Mult does. As there,
	// the result is near the sum but not always the closest fraction in budget.
	shift := uint(max64i(bitLen128(mh, ml), bitLen128(nh, nl)) - 62)
	m := shr128(mh, ml, shift)
	n := shr128(nh, nl, shift)
	if n == 0 {
		n = 1
	}
	z, _ := Reduce(sgn*int64(m), int64(n), MaxMagnitude)
	return z, false
}

// Sub subtracts y from x and returns the result, along with whether it is
// exact. The following are equivalent:
//
//	x.Sub(y) == x.Add(y.Neg())
func (x Frac) Sub(y Frac) (Frac, bool) {
	return x.Add(y.Neg())
}

// shr128 returns hi:lo / 2^shift rounded to nearest, with ties rounded up.
// It requires 0 < shift < 128 and hi:lo < 2^127.
func shr128(hi, lo uint64, shift uint) uint64 {
	// add half of the divisor before truncating
	var c uint64
	if shift-1 < 64 {
		lo, c = bits.Add64(lo, 1<<(shift-1), 0)
		hi += c
	} else {
		hi += 1 << (shift - 65)
	}
	if shift >= 64 {
		return hi >> (shift - 64)
	}
	return hi<<(64-shift) | lo>>shift
}
