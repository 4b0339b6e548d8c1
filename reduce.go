package frac

import (
	"math"
	"math/bits"
)

// Reduce returns num/den in canonical form with both terms no larger than
// maxMagnitude in absolute value. The bool result is true if the returned
// value is exactly equal to num/den.
//
// When the value in lowest terms does not fit the budget, Reduce returns the
// closest fraction that does, and false. Values whose integer part alone
// exceeds the budget saturate to ±maxMagnitude/1.
//
// A zero denominator yields one of the special values: 0/0 gives NaN (0/0),
// and any other numerator gives an infinity (1/0 or -1/0). These are exact.
// A maxMagnitude below 1 is treated as 1.
func Reduce(num, den, maxMagnitude int64) (Frac, bool) {
	limit := uint64(1)
	if maxMagnitude > 1 {
		limit = uint64(maxMagnitude)
	}
	if z, ok := reduceExact(num, den); ok && abs64u(z.num) <= limit && uint64(z.den) <= limit {
		return z, true
	}

	// Either the terms in lowest terms exceed the budget, or the value needs
	// a numerator of magnitude 2^63 to carry a sign moved off the
	// denominator. Both cases are approximated.
	neg := (num < 0) != (den < 0)

	// GCD reports 1<<63 as math.MinInt64, which is exactly what we want once
	// the bits are read back as a uint64.
	d := uint64(GCD(num, den))
	m, n := approximate(abs64u(num)/d, abs64u(den)/d, limit)
	if m == 0 {
		return Frac{0, 1}, false
	}
	if neg {
		return Frac{-int64(m), int64(n)}, false
	}
	return Frac{int64(m), int64(n)}, false
}

// reduceExact returns num/den in lowest terms with a non-negative
// denominator, without any budget. It reports false only when moving the
// sign off the denominator would need a term of magnitude 2^63.
func reduceExact(num, den int64) (Frac, bool) {
	if den == 0 {
		return Frac{sgn64(num), 0}, true
	}
	if num == 0 {
		return Frac{0, 1}, true
	}
	// d is positive, or math.MinInt64 when num == den == math.MinInt64
	if d := GCD(num, den); d != 1 {
		num, den = num/d, den/d
	}
	if den < 0 {
		if num == math.MinInt64 || den == math.MinInt64 {
			return Frac{}, false
		}
		num, den = -num, -den
	}
	return Frac{num, den}, true
}

// approximate returns the best approximation p/q of m/n with p, q <= limit.
// It requires m, n >= 1 and limit >= 1.
//
// This walks the continued fraction of m/n. Each step tries to take the full
// partial quotient; when the budget runs out part-way through one, the best
// candidate is either the last convergent or the largest semiconvergent that
// still fits, so we compare their errors exactly and stop.
func approximate(m, n, limit uint64) (p, q uint64) {
	// (p0/q0, p1/q1) are the two most recent convergents, seeded with the
	// conventional 0/1 and 1/0.
	return approximateFrom(m, n, limit, 0, 1, 1, 0)
}

// approximatePow2 returns the best approximation p/q of m/2^k with
// p, q <= limit, for odd m and m < 2^k. Unlike approximate, 2^k may exceed
// 64 bits. It requires 1 <= limit < 1<<62.
func approximatePow2(m uint64, k uint, limit uint64) (p, q uint64) {
	// The integer part is 0, which leaves 0/1 and 1/0 as the convergents.
	// The next partial quotient is a = 2^k/m, and if that needs 63 bits or
	// more then m/2^k < 1/(2*limit) and 0 is closest.
	if int(k)-bits.Len64(m) >= 63 {
		return 0, 1
	}
	var hi, lo uint64
	if k >= 64 {
		hi = 1 << (k - 64)
	} else {
		lo = 1 << k
	}
	// hi < m since 2^k < 2^63*m, so Div64 cannot overflow
	a, r := bits.Div64(hi, lo, m)
	if a > limit {
		// The candidates are 0/1 and 1/limit; the latter is closer when
		// 2^k < 2*limit*m, i.e. when a < 2*limit. Ties favor 0/1.
		if a < 2*limit {
			return 1, limit
		}
		return 0, 1
	}
	if r == 0 {
		return 1, a
	}
	return approximateFrom(m, r, limit, 0, 1, 1, a)
}

// approximateFrom continues the walk of approximate from the convergents
// p0/q0 and p1/q1, with m and n the Euclid remainders reached alongside them.
func approximateFrom(m, n, limit, p0, q0, p1, q1 uint64) (p, q uint64) {
	for {
		a, r := m/n, m%n

		// largest k <= a with p0+k*p1 and q0+k*q1 within the limit
		k := a
		if p1 != 0 {
			k = min64u(k, (limit-p0)/p1)
		}
		if q1 != 0 {
			k = min64u(k, (limit-q0)/q1)
		}

		if k == a {
			p0, q0, p1, q1 = p1, q1, p0+a*p1, q0+a*q1
			if r == 0 {
				return p1, q1
			}
			m, n = n, r
			continue
		}

		ps, qs := p0+k*p1, q0+k*q1
		if q1 == 0 {
			// still on the integer part, which is too large: the previous
			// "convergent" is 1/0, so the semiconvergent is all we have
			return ps, qs
		}
		if k == 0 {
			return p1, q1
		}

		// Let D be the original denominator. The error of p1/q1 is
		// n/(D*q1) and the error of ps/qs is (m-k*n)/(D*qs), where m and n
		// are the current Euclid remainders. Cross-multiplying removes D.
		// Ties favor the convergent, which has the smaller terms.
		sh, sl := bits.Mul64(m-k*n, q1)
		ch, cl := bits.Mul64(n, qs)
		if sh < ch || (sh == ch && sl < cl) {
			return ps, qs
		}
		return p1, q1
	}
}

func min64u(x, y uint64) uint64 {
	if x < y {
		return x
	}
	return y
}

// sgn64 returns -1 if x < 0, 0 if x == 0, and 1 if x > 0.
func sgn64(x int64) int64 {
	if x == 0 {
		return 0
	}
	if x < 0 {
		return -1
	}
	return 1
}
