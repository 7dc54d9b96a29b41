package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/arvindsr33/mm-radar/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// DefaultFloor is added to magnitudes before taking a logarithm so empty bins
// map to a finite value.
const DefaultFloor = 1e-4

type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// split copies bins into pooled real and imaginary slices.
func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	n := len(in)
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)
	re, im = buf.data[:n], buf.data[n:2*n]

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im, buf
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// MagnitudeInto writes |X[k]| into dst, which must be at least len(in) long.
func MagnitudeInto(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}

	re, im, buf := split(in)
	vecmath.Magnitude(dst[:len(in)], re, im)
	scratchPool.Put(buf)
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	PowerInto(out, in)
	return out
}

// PowerInto writes |X[k]|^2 into dst, which must be at least len(in) long.
func PowerInto(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}

	re, im, buf := split(in)
	vecmath.Power(dst[:len(in)], re, im)
	scratchPool.Put(buf)
}

// LogScale describes the floored logarithm applied to magnitudes.
type LogScale struct {
	Base  float64
	Floor float64
}

// DefaultLogScale is log10(|x| + 1e-4).
var DefaultLogScale = LogScale{Base: 10, Floor: DefaultFloor}

// Validate reports whether the scale produces finite output for all inputs.
func (s LogScale) Validate() error {
	if s.Base <= 0 || s.Base == 1 || !core.IsFinite(s.Base) {
		return fmt.Errorf("spectrum: log base must be positive and != 1: %v", s.Base)
	}
	if s.Floor <= 0 || !core.IsFinite(s.Floor) {
		return fmt.Errorf("spectrum: magnitude floor must be > 0: %v", s.Floor)
	}
	return nil
}

// Apply returns log_base(mag + floor).
func (s LogScale) Apply(mag float64) float64 {
	return core.FlooredLog(mag, s.Floor, s.Base)
}

// LogMagnitudeInto writes log_base(|X[k]| + floor) into dst.
func LogMagnitudeInto(dst []float64, in []complex128, scale LogScale) {
	MagnitudeInto(dst, in)
	for i := range in {
		dst[i] = scale.Apply(dst[i])
	}
}

// AccumulateLogMagnitude adds log_base(|X[k]| + floor) onto acc.
func AccumulateLogMagnitude(acc []float64, in []complex128, scale LogScale) {
	for i, c := range in {
		acc[i] += scale.Apply(cmplx.Abs(c))
	}
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// PeakIndex returns the index of the largest value in mag, or -1 if empty.
func PeakIndex(mag []float64) int {
	best := -1
	bestVal := math.Inf(-1)
	for i, v := range mag {
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	return best
}
