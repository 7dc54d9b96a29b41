package window

import "math"

// Analysis holds numerically measured spectral properties of a window at a
// given length, as reported by the rdcube windows command.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// FirstNullBins is the position of the first spectral null in bins.
	FirstNullBins float64
	// HighestSidelobedB is the highest sidelobe level relative to DC in dB.
	HighestSidelobedB float64
	// ScallopLossdB is the response half a bin away from DC.
	ScallopLossdB float64
}

// gridDensity is the number of evaluation points per bin.
const gridDensity = 16

// Analyze measures the response of a window of type t and length n on a
// dense frequency grid from DC to Nyquist.
func Analyze(t Type, n int) Analysis {
	coeffs := Generate(t, n)
	if len(coeffs) == 0 {
		return Analysis{}
	}

	sum, sumSq := 0.0, 0.0
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}
	if sum == 0 {
		return Analysis{}
	}

	nf := float64(n)
	dc := sum * sum
	res := Analysis{
		CoherentGain:  sum / nf,
		ENBW:          nf * sumSq / dc,
		ScallopLossdB: 10 * math.Log10(responseAt(coeffs, 0.5/nf)/dc),
	}

	points := n * gridDensity / 2
	prev := 1.0
	halfPowerFound := false
	falling := true
	peak := 0.0
	for i := 1; i <= points; i++ {
		bins := float64(i) / gridDensity
		rel := responseAt(coeffs, bins/nf) / dc

		if !halfPowerFound && rel <= 0.5 {
			// Interpolate between the previous and current grid point.
			prevBins := float64(i-1) / gridDensity
			frac := (prev - 0.5) / (prev - rel)
			res.Bandwidth3dB = 2 * (prevBins + frac/gridDensity)
			halfPowerFound = true
		}

		switch {
		case falling && rel > prev && prev < 0.1:
			falling = false
			res.FirstNullBins = float64(i-1) / gridDensity
			peak = rel
		case !falling && rel > peak:
			peak = rel
		}
		prev = rel
	}

	if falling || peak <= 0 {
		res.HighestSidelobedB = math.Inf(-1)
	} else {
		res.HighestSidelobedB = 10 * math.Log10(peak)
	}

	return res
}

// responseAt evaluates |DFT(freq)|^2 at a normalised frequency in cycles/sample.
func responseAt(coeffs []float64, freq float64) float64 {
	re, im := 0.0, 0.0
	w := 2 * math.Pi * freq
	for k, c := range coeffs {
		phase := w * float64(k)
		re += c * math.Cos(phase)
		im -= c * math.Sin(phase)
	}
	return re*re + im*im
}
