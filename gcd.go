package frac

// GCD returns the greatest common divisor (GCD) of a and b as a magnitude.
// The GCD is the largest integer that divides both a and b, and GCD(a, 0) is
// the magnitude of a.
//
// The magnitude of math.MinInt64 does not fit in an int64, so any result of
// 1<<63 comes back as math.MinInt64. The bits are still correct when read as
// a uint64, which is how Reduce consumes them:
//
//	GCD(math.MinInt64, math.MinInt64) == math.MinInt64
//	GCD(2, math.MinInt64) == 2
func GCD(a, b int64) int64 {
	return int64(gcdU64(abs64u(a), abs64u(b)))
}

// gcdU64 is Euclid's algorithm on magnitudes.
func gcdU64(m, n uint64) uint64 {
	for n != 0 {
		m, n = n, m%n
	}
	return m
}

// abs64u returns the magnitude of x; abs64u(math.MinInt64) is 1<<63.
func abs64u(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}
