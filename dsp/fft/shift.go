package fft

// Shift rotates x in place so the zero-frequency bin moves to index len(x)/2.
// For odd lengths the result matches numpy.fft.fftshift.
func Shift[T any](x []T) {
	n := len(x)
	if n < 2 {
		return
	}
	rotateRight(x, n/2)
}

// InverseShift undoes [Shift].
func InverseShift[T any](x []T) {
	n := len(x)
	if n < 2 {
		return
	}
	rotateRight(x, n-n/2)
}

func rotateRight[T any](x []T, k int) {
	n := len(x)
	k %= n
	if k == 0 {
		return
	}
	reverse(x)
	reverse(x[:k])
	reverse(x[k:])
}

func reverse[T any](x []T) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// Frequencies returns the bin centre frequencies of an n-point DFT with sample
// spacing d, in standard (unshifted) order.
func Frequencies(n int, d float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	scale := 1 / (float64(n) * d)
	half := (n - 1) / 2

	for i := range out {
		k := i
		if i > half {
			k = i - n
		}
		out[i] = float64(k) * scale
	}

	return out
}

// ShiftedFrequencies returns [Frequencies] reordered to match [Shift].
func ShiftedFrequencies(n int, d float64) []float64 {
	out := Frequencies(n, d)
	Shift(out)
	return out
}
