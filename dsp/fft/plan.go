package fft

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan is a reusable complex transform of a fixed length.
type Plan struct {
	n       int
	fast    *algofft.Plan[complex128]
	slow    *fourier.CmplxFFT
	scratch []complex128
}

// NewPlan prepares a transform of length n.
func NewPlan(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}

	p := &Plan{n: n, scratch: make([]complex128, n)}

	fast, err := algofft.NewPlan64(n)
	if err == nil {
		p.fast = fast
		return p, nil
	}

	p.slow = fourier.NewCmplxFFT(n)
	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Accelerated reports whether the plan is served by algo-fft.
func (p *Plan) Accelerated() bool { return p.fast != nil }

// Forward computes the unnormalised DFT of src into dst. dst and src may alias.
func (p *Plan) Forward(dst, src []complex128) error {
	in, err := p.prepare(dst, src)
	if err != nil {
		return err
	}

	if p.fast != nil {
		return p.fast.Forward(dst, in)
	}

	p.slow.Coefficients(dst, in)
	return nil
}

// Inverse computes the 1/N-normalised inverse DFT of src into dst.
func (p *Plan) Inverse(dst, src []complex128) error {
	in, err := p.prepare(dst, src)
	if err != nil {
		return err
	}

	if p.fast != nil {
		return p.fast.Inverse(dst, in)
	}

	p.slow.Sequence(dst, in)

	scale := complex(1/float64(p.n), 0)
	for i := range dst {
		dst[i] *= scale
	}

	return nil
}

// prepare validates lengths and copies src aside when it aliases dst.
func (p *Plan) prepare(dst, src []complex128) ([]complex128, error) {
	if len(dst) != p.n || len(src) != p.n {
		return nil, fmt.Errorf("%w: plan=%d dst=%d src=%d", ErrSize, p.n, len(dst), len(src))
	}

	if &dst[0] == &src[0] {
		copy(p.scratch, src)
		return p.scratch, nil
	}

	return src, nil
}

var pools sync.Map // int -> *sync.Pool

func poolFor(n int) *sync.Pool {
	if v, ok := pools.Load(n); ok {
		return v.(*sync.Pool)
	}

	v, _ := pools.LoadOrStore(n, &sync.Pool{})
	return v.(*sync.Pool)
}

// Acquire returns a pooled plan of length n. Return it with [Release].
func Acquire(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}

	if p, ok := poolFor(n).Get().(*Plan); ok {
		return p, nil
	}

	return NewPlan(n)
}

// Release returns p to the pool for its length.
func Release(p *Plan) {
	if p == nil {
		return
	}
	poolFor(p.n).Put(p)
}

// Forward transforms src into dst using a pooled plan of len(src).
func Forward(dst, src []complex128) error {
	p, err := Acquire(len(src))
	if err != nil {
		return err
	}
	defer Release(p)

	return p.Forward(dst, src)
}

// Inverse inverse-transforms src into dst using a pooled plan of len(src).
func Inverse(dst, src []complex128) error {
	p, err := Acquire(len(src))
	if err != nil {
		return err
	}
	defer Release(p)

	return p.Inverse(dst, src)
}
