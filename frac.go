// Package frac provides bounded rational numbers and overflow-safe scaled
// integer arithmetic. See the Frac type and the MultLong function for details.
package frac

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

// Common errors returned by functions in this package.
var (
	ErrFmtInvalid  = errors.New("invalid number format")
	ErrDenOverflow = errors.New("denominator overflow")
	ErrRoundMode   = errors.New("invalid rounding mode")
)

// MaxMagnitude is the largest numerator or denominator produced by Mult,
// FromFloat64 and the fixed-point conversions, so that their results can be
// packed into 32-bit fields.
const MaxMagnitude = math.MaxInt32

// Frac is a rational number with a 64-bit numerator and denominator.
//
// A canonical Frac is in lowest terms with a positive denominator; the sign
// is always carried by the numerator. Three values with a zero denominator
// are reserved:
//   - 0/0 is not a number (NaN)
//   - 1/0 is positive infinity
//   - -1/0 is negative infinity
//
// Every function in this package that returns a Frac returns it canonical.
// New does not, so that arbitrary pairs can be represented and checked with
// IsCanonical. The zero value of Frac is 0/0, i.e. NaN.
//
// Frac has proper value semantics and its values can be freely copied.
// Two values of Frac can be compared using the == and != operators.
type Frac struct {
	num int64
	den int64
}

// Common special values.
var (
	NaN    = Frac{0, 0}
	PosInf = Frac{1, 0}
	NegInf = Frac{-1, 0}
)

// New returns num/den exactly as given, without reducing it.
// Use Reduce to obtain a canonical value.
func New(num, den int64) Frac {
	return Frac{num, den}
}

// Int returns v/1.
func Int(v int64) Frac {
	return Frac{v, 1}
}

// Num returns the numerator of x.
func (x Frac) Num() int64 {
	return x.num
}

// Den returns the denominator of x.
func (x Frac) Den() int64 {
	return x.den
}

// IsCanonical returns true if x is in canonical form: one of the three
// special values, or in lowest terms with a positive denominator.
func (x Frac) IsCanonical() bool {
	if x.den == 0 {
		return x.num >= -1 && x.num <= 1
	}
	return x.den > 0 && GCD(x.num, x.den) == 1
}

// Equal reports whether x and y have identical numerators and denominators.
// For canonical values this is the same as numeric equality, except that NaN
// is equal to itself.
func (x Frac) Equal(y Frac) bool {
	return x == y
}

// IsNaN returns true if x has a zero numerator and denominator.
func (x Frac) IsNaN() bool {
	return x.num == 0 && x.den == 0
}

// IsInf reports whether x is an infinity, according to sign.
// If sign > 0, IsInf reports whether x is positive infinity.
// If sign < 0, IsInf reports whether x is negative infinity.
// If sign == 0, IsInf reports whether x is either infinity.
func (x Frac) IsInf(sign int) bool {
	if x.den != 0 || x.num == 0 {
		return false
	}
	return sign == 0 || (sign > 0) == (x.num > 0)
}

// Sign returns the sign of x: -1 if x < 0, 0 if x == 0 or x is NaN, and 1
// if x > 0. x must be canonical.
func (x Frac) Sign() int {
	return int(sgn64(x.num))
}

// Neg returns the negation of x, -x. Negating a numerator of math.MinInt64
// is not representable, so that case is approximated.
func (x Frac) Neg() Frac {
	if x.num == math.MinInt64 {
		z, _ := Reduce(math.MaxInt64, x.den, math.MaxInt64)
		return z
	}
	return Frac{-x.num, x.den}
}

// Abs returns the absolute value of x, |x|.
func (x Frac) Abs() Frac {
	if x.num < 0 {
		return x.Neg()
	}
	return x
}

// Inv returns the inverse of x, 1/x. The inverse of zero is positive
// infinity, the inverse of either infinity is zero, and the inverse of NaN
// is NaN.
func (x Frac) Inv() Frac {
	switch {
	case x.den == 0 && x.num == 0:
		return NaN
	case x.den == 0:
		return Frac{0, 1}
	case x.num == 0:
		return PosInf
	}
	z, _ := Reduce(x.den, x.num, math.MaxInt64)
	return z
}

// Cmp returns -1 if x < y, 0 if x == y, and 1 if x > y. The bool result is
// false if either value is NaN, in which case the order is undefined and the
// int result is 0. Both values must be canonical.
func (x Frac) Cmp(y Frac) (int, bool) {
	if x.IsNaN() || y.IsNaN() {
		return 0, false
	}
	if x == y {
		return 0, true
	}
	sx, sy := x.Sign(), y.Sign()
	if sx != sy {
		if sx < sy {
			return -1, true
		}
		return 1, true
	}
	// same sign, at least one finite; infinities beat every finite value
	if x.den == 0 {
		return sx, true
	}
	if y.den == 0 {
		return -sy, true
	}

	// compare |x.num|*y.den against |y.num|*x.den with 128-bit products
	lh, ll := bits.Mul64(abs64u(x.num), uint64(y.den))
	rh, rl := bits.Mul64(abs64u(y.num), uint64(x.den))
	c := 0
	switch {
	case lh < rh || (lh == rh && ll < rl):
		c = -1
	case lh > rh || (lh == rh && ll > rl):
		c = 1
	}
	if sx < 0 {
		c = -c
	}
	return c, true
}

// MulInt scales a by x and rounds the result according to mode. It is
// equivalent to:
//
//	MultLong(a, x.Num(), x.Den(), mode)
func (x Frac) MulInt(a int64, mode RoundMode) int64 {
	return MultLong(a, x.num, x.den, mode)
}

// FromFloat64 returns the closest Frac to v whose terms are within
// MaxMagnitude. The bool result is true if the returned value is exactly
// equal to v.
//
// NaN maps to 0/0, the infinities to 1/0 and -1/0, and both zeroes to 0/1.
// Finite values beyond ±MaxMagnitude saturate to ±MaxMagnitude/1.
func FromFloat64(v float64) (Frac, bool) {
	switch {
	case math.IsNaN(v):
		return NaN, true
	case math.IsInf(v, 1):
		return PosInf, true
	case math.IsInf(v, -1):
		return NegInf, true
	case v == 0:
		return Frac{0, 1}, true
	}

	// decompose v such that v = f*2^e with abs(f) in [0.5, 1)
	f, e := math.Frexp(v)

	// convert f to an integer in [2^52, 2^53); m is this integer and
	// s is its original sign
	s := int64(1)
	if f < 0 {
		s = -1
		f = -f
	}
	m := int64(f * 0x1p53)
	e -= 53

	// remove trailing zeros from m so that v = m*2^e with m odd
	tz := bits.TrailingZeros64(uint64(m))
	m >>= tz
	e += tz

	if e >= 0 {
		// v is an integer; anything needing more than 31 bits is out of
		// budget and Reduce only needs to see that it is large
		if e+bits.Len64(uint64(m)) > 62 {
			return Frac{s * MaxMagnitude, 1}, false
		}
		return Reduce(s*(m<<e), 1, MaxMagnitude)
	}

	// v is not an integer; the denominator is 2^-e
	if -e <= 62 {
		return Reduce(s*m, 1<<-e, MaxMagnitude)
	}
	// the denominator needs more than 62 bits, and v is below 1 in magnitude
	p, q := approximatePow2(uint64(m), uint(-e), MaxMagnitude)
	if p == 0 {
		return Frac{0, 1}, false
	}
	return Frac{s * int64(p), int64(q)}, false
}

// Float64 returns the floating-point equivalent of x: NaN or an infinity for
// the special values, and the nearest float64 to num/den otherwise.
func (x Frac) Float64() float64 {
	if x.den == 0 {
		switch {
		case x.num > 0:
			return math.Inf(1)
		case x.num < 0:
			return math.Inf(-1)
		}
		return math.NaN()
	}
	return float64(x.num) / float64(x.den)
}

// Parse parses a string representation of a rational number in the form
// "m/n", where m and n are base 10 integers that fit in an int64. Either may
// be negative. The result is canonical, so "2/-4" gives -1/2 and "5/0" gives
// positive infinity. It is exact unless the canonical form would need a term
// of magnitude 2^63, as for "-9223372036854775808/-1", which is approximated.
func Parse(s string) (Frac, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 {
		return Frac{}, ErrFmtInvalid
	}
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Frac{}, fmt.Errorf("parsing numerator: %w", err)
	}
	den, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Frac{}, fmt.Errorf("parsing denominator: %w", err)
	}
	z, ok := reduceExact(num, den)
	if !ok {
		z, _ = Reduce(num, den, math.MaxInt64)
	}
	return z, nil
}

// ParseDecimal parses a string representation of a decimal number as a
// rational number. The string must be in the form "A", "A.B", or ".B" where
// A is an integer that may have leading zeroes and may be negative (indicated
// with leading hyphen) and B is an integer that may have trailing zeroes.
// The concatenation of A without leading zeroes and B without trailing zeroes
// must fit in an int64, and B without trailing zeroes may have at most 18
// digits. The result is always exact.
func ParseDecimal(s string) (Frac, error) {
	neg := false
	dotIndex := -1
	digits := 0
	for i, r := range s {
		switch r {
		case '-':
			if i != 0 {
				return Frac{}, ErrFmtInvalid
			}
			neg = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			digits++
		case '.':
			if dotIndex >= 0 {
				return Frac{}, ErrFmtInvalid
			}
			dotIndex = i
		default:
			return Frac{}, ErrFmtInvalid
		}
	}
	if digits == 0 {
		return Frac{}, ErrFmtInvalid
	}
	intPart, fracPart := s, ""
	if dotIndex >= 0 {
		intPart, fracPart = s[:dotIndex], s[dotIndex+1:]
	}
	if neg {
		intPart = intPart[1:]
	}
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > 18 {
		return Frac{}, fmt.Errorf("%w: %d fractional digits", ErrDenOverflow, len(fracPart))
	}
	var m int64
	if sig := strings.TrimLeft(intPart+fracPart, "0"); sig != "" {
		if neg {
			sig = "-" + sig
		}
		var err error
		m, err = strconv.ParseInt(sig, 10, 64)
		if err != nil {
			return Frac{}, fmt.Errorf("parsing digits: %w", err)
		}
	}
	n := int64(1)
	for i := 0; i < len(fracPart); i++ {
		n *= 10
	}
	z, _ := reduceExact(m, n)
	return z, nil
}

// String returns a string representation of x, as m/n.
func (x Frac) String() string {
	return fmt.Sprintf("%d/%d", x.num, x.den)
}

// MarshalText implements encoding.TextMarshaler using the m/n form.
func (x Frac) MarshalText() ([]byte, error) {
	b := strconv.AppendInt(nil, x.num, 10)
	b = append(b, '/')
	return strconv.AppendInt(b, x.den, 10), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. See Parse.
func (x *Frac) UnmarshalText(text []byte) error {
	z, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = z
	return nil
}

// DecimalString returns a string representation of x, as a decimal number
// to the given number of digits after the decimal point.
// The last digit is rounded to nearest, with ties rounded away from zero.
// If prec <= 0, the decimal point is omitted from the string.
// The special values are written as "NaN", "+Inf" and "-Inf".
//
// For finite canonical x the following relation holds:
//
//	x.DecimalString(prec) == x.BigRat().FloatString(prec)
func (x Frac) DecimalString(prec int) string {
	if x.den == 0 {
		switch {
		case x.num > 0:
			return "+Inf"
		case x.num < 0:
			return "-Inf"
		}
		return "NaN"
	}
	if prec < 0 {
		prec = 0
	}
	var buf strings.Builder
	if x.num < 0 {
		buf.WriteByte('-')
	}
	m, n := abs64u(x.num), uint64(x.den)
	// start with empty digit to hold carryover from rounding
	digits := []byte{'0'}
	q, r := m/n, m%n
	digits = strconv.AppendUint(digits, q, 10)
	for i := 0; i <= prec; i++ {
		rh, rl := bits.Mul64(r, 10)
		// r < n, so the quotient is below 10 and Div64 cannot overflow
		q, r = bits.Div64(rh, rl, n)
		digits = append(digits, byte(q)+'0')
	}
	// use digit in last position to round
	if k := len(digits) - 1; digits[k] >= '5' {
		digits[k-1]++
		for i := k - 1; i > 0; i-- {
			if digits[i] <= '9' {
				break
			}
			digits[i] = '0'
			digits[i-1]++
		}
	}
	start := 0
	end := len(digits) - 1
	if digits[0] == '0' {
		start = 1
	}
	if prec > 0 {
		dotIndex := len(digits) - prec - 1
		for i := len(digits) - 1; i > dotIndex; i-- {
			digits[i] = digits[i-1]
		}
		digits[dotIndex] = '.'
		end = len(digits)
	}
	buf.Write(digits[start:end])
	// this may return "-0" etc. which could be filtered out but agrees with
	// the output of big.Rat.FloatString
	return buf.String()
}

// BigRat converts x to a new big.Rat. It returns nil for the special values,
// which big.Rat cannot represent.
func (x Frac) BigRat() *big.Rat {
	if x.den == 0 {
		return nil
	}
	return new(big.Rat).SetFrac(big.NewInt(x.num), big.NewInt(x.den))
}

// FromBigRat returns the closest Frac to r whose terms are within
// maxMagnitude, and whether it is exact. A nil r gives NaN.
func FromBigRat(r *big.Rat, maxMagnitude int64) (Frac, bool) {
	if r == nil {
		return NaN, true
	}
	num, den := r.Num(), r.Denom()
	if num.IsInt64() && den.IsInt64() {
		return Reduce(num.Int64(), den.Int64(), maxMagnitude)
	}
	// too wide for Reduce; shift both terms down to 62 bits first
	shift := num.BitLen()
	if den.BitLen() > shift {
		shift = den.BitLen()
	}
	shift -= 62
	m := new(big.Int).Abs(num)
	m.Rsh(m, uint(shift))
	if num.Sign() < 0 {
		m.Neg(m)
	}
	n := new(big.Int).Rsh(den, uint(shift))
	if n.Sign() == 0 {
		n.SetInt64(1)
	}
	z, _ := Reduce(m.Int64(), n.Int64(), maxMagnitude)
	return z, false
}
