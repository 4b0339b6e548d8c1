package frac_test

import (
	"fmt"
	"testing"

	"github.com/kbolino/frac"
)

func BenchmarkGCD(b *testing.B) {
	for _, c := range GCDCases {
		b.Run(fmt.Sprintf("GCD(%d,%d)", c.M, c.N), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				frac.GCD(c.M, c.N)
			}
		})
	}
}
