package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if !almostEqual(v, w[len(w)-1-i], 1e-12) {
					t.Fatalf("coefficient[%d]=%v not symmetric with %v", i, v, w[len(w)-1-i])
				}
			}
		})
	}
}

func TestGenerateNonPositiveLength(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for zero length")
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeNone, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("none should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestApplyComplexScalesBothParts(t *testing.T) {
	line := []complex128{1 + 2i, 1 + 2i, 1 + 2i, 1 + 2i, 1 + 2i}
	ApplyComplex(TypeHamming, line)

	w := Generate(TypeHamming, 5)
	for i, v := range line {
		if !almostEqual(real(v), w[i], 1e-12) || !almostEqual(imag(v), 2*w[i], 1e-12) {
			t.Fatalf("line[%d]=%v, want (%v,%v)", i, v, w[i], 2*w[i])
		}
	}
}

func TestCoefficientsCached(t *testing.T) {
	a := Coefficients(TypeBlackman, 32)
	b := Coefficients(TypeBlackman, 32)
	if &a[0] != &b[0] {
		t.Fatal("expected cached coefficient slice to be reused")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{in: "", want: TypeNone},
		{in: "Rectangular", want: TypeNone},
		{in: "bartlett", want: TypeBartlett},
		{in: "HANNING", want: TypeHann},
		{in: "hamming", want: TypeHamming},
		{in: "blackman", want: TypeBlackman},
		{in: "blackman-harris", want: TypeBlackmanHarris},
		{in: " cosine ", want: TypeCosine},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil {
			t.Fatalf("ParseType(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unsupported window")
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		text, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", typ, err)
		}
		var got Type
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != typ {
			t.Fatalf("round trip %v -> %q -> %v", typ, text, got)
		}
	}
}

func TestMetadataAndENBW(t *testing.T) {
	m := Info(TypeHann)
	if m.Name != "hann" {
		t.Fatalf("name=%q", m.Name)
	}

	w := Generate(TypeHann, 2048)

	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatalf("EquivalentNoiseBandwidth error: %v", err)
	}

	if !almostEqual(enbw, m.ENBW, 0.01) {
		t.Fatalf("hann ENBW=%v, want ~%v", enbw, m.ENBW)
	}

	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}
	bartlettExpected := []float64{0, 0.5, 1, 0.5, 0}

	checkGolden(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	checkGolden(t, Generate(TypeHamming, 8), hammingExpected, 1e-10)
	checkGolden(t, Generate(TypeBartlett, 5), bartlettExpected, 1e-12)
}

func TestAnalyzeMatchesMetadata(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman} {
		a := Analyze(typ, 256)
		m := Info(typ)
		if !almostEqual(a.ENBW, m.ENBW, 0.02) {
			t.Fatalf("%v ENBW=%v, want ~%v", typ, a.ENBW, m.ENBW)
		}
		if !almostEqual(a.CoherentGain, m.CoherentGain, 0.01) {
			t.Fatalf("%v coherent gain=%v, want ~%v", typ, a.CoherentGain, m.CoherentGain)
		}
		if math.Abs(a.HighestSidelobedB-m.HighestSidelobe) > 2 {
			t.Fatalf("%v sidelobe=%v dB, want ~%v dB", typ, a.HighestSidelobedB, m.HighestSidelobe)
		}
	}
}

func TestAnalyzeHannMainLobe(t *testing.T) {
	a := Analyze(TypeHann, 512)
	if !almostEqual(a.FirstNullBins, 2, 0.1) {
		t.Fatalf("first null=%v bins, want ~2", a.FirstNullBins)
	}
	if !almostEqual(a.Bandwidth3dB, 1.44, 0.05) {
		t.Fatalf("3dB bandwidth=%v bins, want ~1.44", a.Bandwidth3dB)
	}
	if !almostEqual(a.ScallopLossdB, -1.42, 0.05) {
		t.Fatalf("scallop=%v dB, want ~-1.42", a.ScallopLossdB)
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%0.16f want=%0.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
