package window

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function applied along one cube axis before an FFT.
type Type int

const (
	// TypeNone leaves the line untouched (rectangular window).
	TypeNone Type = iota
	TypeBartlett
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeCosine
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
	CoherentGain    float64
}

var metadataByType = map[Type]Metadata{
	TypeNone:           {Name: "none", ENBW: 1.0, HighestSidelobe: -13.26, CoherentGain: 1.0},
	TypeBartlett:       {Name: "bartlett", ENBW: 1.3333, HighestSidelobe: -26.52, CoherentGain: 0.5},
	TypeHann:           {Name: "hann", ENBW: 1.5, HighestSidelobe: -31.47, CoherentGain: 0.5},
	TypeHamming:        {Name: "hamming", ENBW: 1.3628, HighestSidelobe: -42.68, CoherentGain: 0.54},
	TypeBlackman:       {Name: "blackman", ENBW: 1.7268, HighestSidelobe: -58.11, CoherentGain: 0.42},
	TypeBlackmanHarris: {Name: "blackman-harris", ENBW: 2.0044, HighestSidelobe: -92.0, CoherentGain: 0.35875},
	TypeCosine:         {Name: "cosine", ENBW: 1.2337, HighestSidelobe: -23.0, CoherentGain: 0.6366},
}

var (
	hannCoeffs           = []float64{0.5, -0.5}
	hammingCoeffs        = []float64{0.54, -0.46}
	blackmanCoeffs       = []float64{0.42, -0.5, 0.08}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
)

// Types lists every supported window in declaration order.
func Types() []Type {
	return []Type{TypeNone, TypeBartlett, TypeHann, TypeHamming, TypeBlackman, TypeBlackmanHarris, TypeCosine}
}

// String returns the canonical lower-case name of the window.
func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return m.Name
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType resolves a window name as used in profiles and on the command
// line. Matching is case-insensitive; "rectangular" and "" are aliases for none.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "rectangular", "rect":
		return TypeNone, nil
	case "hanning":
		return TypeHann, nil
	case "blackmanharris", "blackman-harris-4t":
		return TypeBlackmanHarris, nil
	}
	for _, t := range Types() {
		if t.String() == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if _, ok := metadataByType[t]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

type cacheKey struct {
	t Type
	n int
}

var coeffCache sync.Map // cacheKey -> []float64

// Coefficients returns cached symmetric coefficients for (t, length).
// The returned slice is shared and must not be modified.
func Coefficients(t Type, length int) []float64 {
	key := cacheKey{t: t, n: length}
	if v, ok := coeffCache.Load(key); ok {
		return v.([]float64)
	}
	v, _ := coeffCache.LoadOrStore(key, Generate(t, length))
	return v.([]float64)
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64) {
	if len(buf) == 0 || t == TypeNone {
		return
	}

	vecmath.MulBlockInPlace(buf, Coefficients(t, len(buf)))
}

// ApplyComplex multiplies both parts of every sample in line by the window.
func ApplyComplex(t Type, line []complex128) {
	if len(line) == 0 || t == TypeNone {
		return
	}

	coeffs := Coefficients(t, len(line))
	for i, w := range coeffs {
		line[i] = complex(real(line[i])*w, imag(line[i])*w)
	}
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	case TypeBartlett:
		return 1 - math.Abs(2*x-1)
	case TypeCosine:
		return math.Sin(math.Pi * x)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
