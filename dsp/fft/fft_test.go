package fft

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{1, 2, 8, 64, 122, 128, 250} {
		src := make([]complex128, n)
		for i := range src {
			src[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}

		spec := make([]complex128, n)
		if err := Forward(spec, src); err != nil {
			t.Fatalf("n=%d forward: %v", n, err)
		}

		back := make([]complex128, n)
		if err := Inverse(back, spec); err != nil {
			t.Fatalf("n=%d inverse: %v", n, err)
		}

		for i := range src {
			if cmplx.Abs(back[i]-src[i]) > 1e-9 {
				t.Fatalf("n=%d index %d: got %v want %v", n, i, back[i], src[i])
			}
		}
	}
}

func TestForwardMatchesDirectDFT(t *testing.T) {
	for _, n := range []int{16, 122} {
		src := make([]complex128, n)
		for i := range src {
			src[i] = complex(math.Sin(0.3*float64(i)), math.Cos(0.11*float64(i)))
		}

		got := make([]complex128, n)
		if err := Forward(got, src); err != nil {
			t.Fatalf("forward: %v", err)
		}

		want := directDFT(src)
		for k := range want {
			if cmplx.Abs(got[k]-want[k]) > 1e-8 {
				t.Fatalf("n=%d bin %d: got %v want %v", n, k, got[k], want[k])
			}
		}
	}
}

func TestForwardInPlace(t *testing.T) {
	buf := []complex128{1, 0, 0, 0, 0, 0}
	if err := Forward(buf, buf); err != nil {
		t.Fatalf("forward: %v", err)
	}

	for i, v := range buf {
		if cmplx.Abs(v-1) > 1e-12 {
			t.Fatalf("impulse bin %d = %v, want 1", i, v)
		}
	}
}

func TestPlanErrors(t *testing.T) {
	if _, err := NewPlan(0); !errors.Is(err, ErrLength) {
		t.Fatalf("NewPlan(0) err=%v, want ErrLength", err)
	}

	p, err := NewPlan(8)
	if err != nil {
		t.Fatalf("NewPlan(8): %v", err)
	}

	if err := p.Forward(make([]complex128, 8), make([]complex128, 4)); !errors.Is(err, ErrSize) {
		t.Fatalf("size mismatch err=%v, want ErrSize", err)
	}
}

func TestConcurrentForward(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src := make([]complex128, 122)
			src[1] = 1
			dst := make([]complex128, 122)
			for i := 0; i < 50; i++ {
				if err := Forward(dst, src); err != nil {
					t.Errorf("forward: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestShift(t *testing.T) {
	tests := []struct {
		in   []int
		want []int
	}{
		{in: []int{0, 1, 2, 3}, want: []int{2, 3, 0, 1}},
		{in: []int{0, 1, 2, 3, 4}, want: []int{3, 4, 0, 1, 2}},
		{in: []int{7}, want: []int{7}},
	}

	for _, tt := range tests {
		got := append([]int(nil), tt.in...)
		Shift(got)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("Shift(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}

		InverseShift(got)
		if diff := cmp.Diff(tt.in, got); diff != "" {
			t.Fatalf("InverseShift mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFrequencies(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	got := Frequencies(5, 0.1)
	want := []float64{0, 2, 4, -4, -2}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("Frequencies(5) mismatch (-want +got):\n%s", diff)
	}

	got = ShiftedFrequencies(4, 1)
	want = []float64{-0.5, -0.25, 0, 0.25}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("ShiftedFrequencies(4) mismatch (-want +got):\n%s", diff)
	}
}

func directDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		var sum complex128
		for i, v := range x {
			phase := -2 * math.Pi * float64(k*i) / float64(n)
			sum += v * cmplx.Exp(complex(0, phase))
		}
		out[k] = sum
	}
	return out
}
