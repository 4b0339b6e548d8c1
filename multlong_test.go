package frac_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbolino/frac"
)

var RoundModes = []frac.RoundMode{
	frac.RoundZero,
	frac.RoundInf,
	frac.RoundDown,
	frac.RoundUp,
	frac.RoundNearInf,
}

type MultLongCase struct {
	A, B, C int64
	Mode    frac.RoundMode
	Z       int64
}

func TestMultLong(t *testing.T) {
	cases := []MultLongCase{
		{0, 1, 1, frac.RoundNearInf, 0},
		{1, 0, 1, frac.RoundNearInf, 0},
		{0, 1, 0, frac.RoundNearInf, 0},
		{1, 1, 0, frac.RoundNearInf, math.MaxInt64},
		{-1, 1, 0, frac.RoundNearInf, math.MinInt64},
		{1, -1, 0, frac.RoundNearInf, math.MinInt64},
		{-1, -1, 0, frac.RoundNearInf, math.MaxInt64},

		{7, 3, 2, frac.RoundZero, 10},
		{-7, 3, 2, frac.RoundZero, -10},
		{7, 3, 2, frac.RoundInf, 11},
		{-7, 3, 2, frac.RoundInf, -11},
		{7, 3, 2, frac.RoundDown, 10},
		{-7, 3, 2, frac.RoundDown, -11},
		{7, 3, 2, frac.RoundUp, 11},
		{-7, 3, 2, frac.RoundUp, -10},
		{7, 3, 2, frac.RoundNearInf, 11},
		{-7, 3, 2, frac.RoundNearInf, -11},
		{7, -3, -2, frac.RoundNearInf, 11},
		{1, 1, 3, frac.RoundNearInf, 0},
		{2, 1, 3, frac.RoundNearInf, 1},
		{-1, 1, 3, frac.RoundNearInf, 0},
		{-2, 1, 3, frac.RoundNearInf, -1},
		{1, 1, 3, frac.RoundDown, 0},
		{-1, 1, 3, frac.RoundDown, -1},
		{1, 1, 3, frac.RoundUp, 1},
		{-1, 1, 3, frac.RoundUp, 0},

		// exact results are never rounded
		{6, 5, 3, frac.RoundInf, 10},
		{-6, 5, 3, frac.RoundDown, -10},

		// the product needs more than 64 bits, the quotient does not
		{math.MaxInt64, math.MaxInt32, math.MaxInt32, frac.RoundZero, math.MaxInt64},
		{math.MinInt64, math.MaxInt32, math.MaxInt32, frac.RoundZero, math.MinInt64},
		{math.MaxInt64, 1 << 20, 1 << 21, frac.RoundZero, math.MaxInt64 >> 1},
		{math.MaxInt64, 1 << 20, 1 << 21, frac.RoundNearInf, 1 << 62},
		{math.MinInt64, 3, 4, frac.RoundZero, -(1 << 61) * 3},
		{math.MinInt64, -1, 2, frac.RoundZero, 1 << 62},

		// saturation
		{math.MaxInt64, math.MaxInt32, 1, frac.RoundZero, math.MaxInt64},
		{math.MaxInt64, math.MinInt32, 1, frac.RoundZero, math.MinInt64},
		{math.MinInt64, -1, 1, frac.RoundZero, math.MaxInt64},
		{math.MinInt64, 1, -1, frac.RoundZero, math.MaxInt64},
		{math.MinInt64, 1, 1, frac.RoundInf, math.MinInt64},
		{math.MaxInt64, 2, 2, frac.RoundNearInf, math.MaxInt64},
		{math.MinInt64, 2, 2, frac.RoundNearInf, math.MinInt64},
		{math.MaxInt64, 3, 2, frac.RoundDown, math.MaxInt64},

		// boundary identities
		{math.MinInt64, 100, 100, frac.RoundNearInf | frac.RoundPassMinMax, math.MinInt64},
		{math.MaxInt64, 100, 100, frac.RoundNearInf | frac.RoundPassMinMax, math.MaxInt64},
		{math.MaxInt64, -1, 1, frac.RoundZero | frac.RoundPassMinMax, math.MaxInt64},
		{math.MinInt64, 0, 1, frac.RoundUp | frac.RoundPassMinMax, math.MinInt64},
		{math.MaxInt64, -1, 1, frac.RoundZero, -math.MaxInt64},
		{math.MaxInt64 - 1, 1, 2, frac.RoundZero | frac.RoundPassMinMax, math.MaxInt64 >> 1},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("MultLong(%d,%d,%d,%v)", c.A, c.B, c.C, c.Mode), func(t *testing.T) {
			if z := frac.MultLong(c.A, c.B, c.C, c.Mode); z != c.Z {
				t.Errorf("got %d, want %d", z, c.Z)
			}
		})
	}
}

func TestMultLong_DivByZero(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	for i := 0; i < 1000; i++ {
		a, b := randInt64(rng), randInt64(rng)
		if a == 0 || b == 0 {
			continue
		}
		want := int64(math.MaxInt64)
		if (a < 0) != (b < 0) {
			want = math.MinInt64
		}
		for _, mode := range RoundModes {
			require.Equal(t, want, frac.MultLong(a, b, 0, mode), "MultLong(%d, %d, 0, %v)", a, b, mode)
		}
	}
}

// TestMultLong_BigInt cross-checks MultLong against big.Int, with 32-bit b and
// c as well as full-width ones.
func TestMultLong_BigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	for i := 0; i < 20000; i++ {
		a := randInt64(rng)
		var b, c int64
		switch i / 3 % 3 {
		case 0:
			b, c = int64(int32(rng.Uint32())), int64(int32(rng.Uint32()))
		case 1:
			b, c = int64(int16(rng.Uint32())), int64(int16(rng.Uint32()))
		default:
			b, c = randInt64(rng), randInt64(rng)
		}
		if c == 0 {
			continue
		}
		mode := RoundModes[rng.Intn(len(RoundModes))]
		want := bigMultLong(a, b, c, mode)
		require.Equal(t, want, frac.MultLong(a, b, c, mode), "MultLong(%d, %d, %d, %v)", a, b, c, mode)
	}
}

func TestMultLong_Boundaries(t *testing.T) {
	for _, a := range Boundaries {
		for _, b := range Boundaries {
			for _, c := range Boundaries {
				if c == 0 {
					continue
				}
				for _, mode := range RoundModes {
					want := bigMultLong(a, b, c, mode)
					got := frac.MultLong(a, b, c, mode)
					if got != want {
						t.Errorf("MultLong(%d, %d, %d, %v) == %d != %d", a, b, c, mode, got, want)
					}
				}
			}
		}
	}
}

func TestMultLong_InvalidMode(t *testing.T) {
	for _, mode := range []frac.RoundMode{-1, frac.RoundNearInf + 1, 1 << 9, frac.RoundPassMinMax | 7} {
		t.Run(mode.String(), func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, frac.ErrRoundMode))
			}()
			frac.MultLong(1, 1, 1, mode)
		})
	}
}

func TestRoundMode_String(t *testing.T) {
	assert.Equal(t, "RoundZero", frac.RoundZero.String())
	assert.Equal(t, "RoundNearInf|RoundPassMinMax", (frac.RoundNearInf | frac.RoundPassMinMax).String())
	assert.Equal(t, "RoundMode(5)", frac.RoundMode(5).String())
	assert.Equal(t, frac.RoundUp, (frac.RoundUp | frac.RoundPassMinMax).Base())
	assert.True(t, frac.RoundPassMinMax.IsValid())
}

var (
	bigMinInt64 = big.NewInt(math.MinInt64)
	bigMaxInt64 = big.NewInt(math.MaxInt64)
)

// bigMultLong is the reference for MultLong: a*b/c rounded per mode, then
// clamped to the int64 range.
func bigMultLong(a, b, c int64, mode frac.RoundMode) int64 {
	p := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	if p.Sign() == 0 {
		return 0
	}
	q, r := new(big.Int).QuoRem(p, big.NewInt(c), new(big.Int))
	if r.Sign() != 0 {
		neg := p.Sign() != big.NewInt(c).Sign()
		away := false
		switch mode {
		case frac.RoundInf:
			away = true
		case frac.RoundDown:
			away = neg
		case frac.RoundUp:
			away = !neg
		case frac.RoundNearInf:
			twice := new(big.Int).Lsh(new(big.Int).Abs(r), 1)
			away = twice.Cmp(absBig(c)) >= 0
		}
		if away && neg {
			q.Sub(q, big.NewInt(1))
		} else if away {
			q.Add(q, big.NewInt(1))
		}
	}
	switch {
	case q.Cmp(bigMinInt64) < 0:
		return math.MinInt64
	case q.Cmp(bigMaxInt64) > 0:
		return math.MaxInt64
	}
	return q.Int64()
}
