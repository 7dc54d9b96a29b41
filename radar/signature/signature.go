// Package signature extracts per-frame features from a micro-Doppler
// spectrogram: the strongest Doppler component, the power-weighted centroid
// and spread, the percentile envelope and the 3 dB bandwidth around the peak.
//
// Spectrogram values are logarithmic (see spectrum.LogScale). They are
// converted back to linear magnitude with the same base before weighting.
package signature

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrAxis is returned when the axis does not match the column length.
var ErrAxis = errors.New("signature: axis length does not match bins")

// DefaultEnvelope is the energy fraction cut from each side of a column to
// find its lower and upper envelope.
const DefaultEnvelope = 0.05

// Features describes one spectrogram column. All values are in axis units.
type Features struct {
	PeakBin   int
	Peak      float64
	Centroid  float64
	Spread    float64
	Lower     float64
	Upper     float64
	Bandwidth float64
}

// Extractor converts columns to [Features].
type Extractor struct {
	base     float64
	envelope float64
	axis     []float64
	linear   []float64
}

// NewExtractor returns an Extractor for columns whose bin i sits at axis[i]
// and whose values are log_base magnitudes.
func NewExtractor(axis []float64, base, envelope float64) (*Extractor, error) {
	if len(axis) == 0 {
		return nil, fmt.Errorf("%w: empty axis", ErrAxis)
	}
	if base <= 1 {
		return nil, fmt.Errorf("signature: log base %v must be > 1", base)
	}
	if envelope <= 0 || envelope >= 0.5 {
		return nil, fmt.Errorf("signature: envelope fraction %v must be in (0, 0.5)", envelope)
	}
	return &Extractor{
		base:     base,
		envelope: envelope,
		axis:     axis,
		linear:   make([]float64, len(axis)),
	}, nil
}

// Column extracts the features of one column.
func (e *Extractor) Column(col []float64) (Features, error) {
	if len(col) != len(e.axis) {
		return Features{}, fmt.Errorf("%w: %d bins, axis has %d", ErrAxis, len(col), len(e.axis))
	}

	// Shift by the column maximum so that large log sums stay finite.
	top := floats.Max(col)
	for i, v := range col {
		e.linear[i] = math.Pow(e.base, v-top)
	}

	var f Features
	f.PeakBin = floats.MaxIdx(e.linear)
	f.Peak = e.axis[f.PeakBin]

	sum := floats.Sum(e.linear)
	f.Centroid = floats.Dot(e.axis, e.linear) / sum

	var sq float64
	for i, w := range e.linear {
		d := e.axis[i] - f.Centroid
		sq += d * d * w
	}
	f.Spread = math.Sqrt(sq / sum)

	f.Lower, f.Upper = e.envelopes()
	f.Bandwidth = e.bandwidth(f.PeakBin)
	return f, nil
}

// Image extracts the features of every column of img, indexed [bin][column].
func (e *Extractor) Image(img [][]float64) ([]Features, error) {
	if len(img) != len(e.axis) {
		return nil, fmt.Errorf("%w: %d bins, axis has %d", ErrAxis, len(img), len(e.axis))
	}
	if len(img) == 0 {
		return nil, nil
	}

	cols := len(img[0])
	out := make([]Features, cols)
	col := make([]float64, len(img))
	for c := range cols {
		for r := range img {
			col[r] = img[r][c]
		}
		f, err := e.Column(col)
		if err != nil {
			return nil, err
		}
		out[c] = f
	}
	return out, nil
}

// envelopes returns the axis values where the cumulative energy from each end
// first reaches the envelope fraction.
func (e *Extractor) envelopes() (lower, upper float64) {
	var total float64
	for _, w := range e.linear {
		total += w * w
	}
	threshold := e.envelope * total

	n := len(e.linear)
	lower, upper = e.axis[0], e.axis[n-1]

	var acc float64
	for i, w := range e.linear {
		acc += w * w
		if acc >= threshold {
			lower = e.axis[i]
			break
		}
	}

	acc = 0
	for i := n - 1; i >= 0; i-- {
		w := e.linear[i]
		acc += w * w
		if acc >= threshold {
			upper = e.axis[i]
			break
		}
	}
	return lower, upper
}

// bandwidth is the half-power width around peak, interpolating linearly
// between the bins that straddle the threshold.
func (e *Extractor) bandwidth(peak int) float64 {
	n := len(e.linear)
	if n < 2 {
		return 0
	}
	threshold := e.linear[peak] / math.Sqrt2

	lower := e.axis[0]
	for i := peak; i >= 1; i-- {
		if e.linear[i-1] <= threshold && e.linear[i] > threshold {
			lower = e.crossing(i-1, i, threshold)
			break
		}
	}

	upper := e.axis[n-1]
	for i := peak; i < n-1; i++ {
		if e.linear[i+1] <= threshold && e.linear[i] > threshold {
			upper = e.crossing(i, i+1, threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

func (e *Extractor) crossing(lo, hi int, threshold float64) float64 {
	a, b := e.axis[lo], e.axis[hi]
	d := e.linear[hi] - e.linear[lo]
	if d == 0 {
		return (a + b) / 2
	}
	t := (threshold - e.linear[lo]) / d
	return a + t*(b-a)
}

// Header names the columns of [Table].
var Header = []string{"time", "peak", "centroid", "spread", "lower", "upper", "bandwidth"}

// Table lays out features as rows of [Header] values.
func Table(times []float64, fs []Features) [][]float64 {
	rows := make([][]float64, len(fs))
	for i, f := range fs {
		var t float64
		if i < len(times) {
			t = times[i]
		}
		rows[i] = []float64{t, f.Peak, f.Centroid, f.Spread, f.Lower, f.Upper, f.Bandwidth}
	}
	return rows
}
