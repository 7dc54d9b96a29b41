package fft

import (
	"strconv"
	"testing"
)

func BenchmarkForward(b *testing.B) {
	for _, n := range []int{64, 122, 128, 256} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			src := make([]complex128, n)
			dst := make([]complex128, n)
			for i := range src {
				src[i] = complex(float64(i), 0)
			}

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Forward(dst, src)
			}
		})
	}
}
