package testutil

import (
	"testing"

	"github.com/arvindsr33/mm-radar/radar/capture"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}

	d, err = MaxAbsDiff([]complex128{3 + 4i}, []complex128{0})
	if err != nil {
		t.Fatal(err)
	}
	if d != 5 {
		t.Fatalf("complex MaxAbsDiff = %v, want 5", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestCaptureLayout(t *testing.T) {
	g := capture.Geometry{NumSamples: 4, NumChirps: 2, NumRx: 2, HeaderWords: 3, IQFactor: 2}
	words := Capture(g, 3, 1)
	if len(words) != 3*g.FrameLen() {
		t.Fatalf("len = %d, want %d", len(words), 3*g.FrameLen())
	}

	header := Header(3)
	for p := range 3 * g.NumChirps {
		for i, h := range header {
			if words[p*g.PacketLen()+i] != h {
				t.Fatalf("packet %d header word %d = %d, want %d", p, i, words[p*g.PacketLen()+i], h)
			}
		}
	}
}

func TestSplit(t *testing.T) {
	parts := Split([]int16{1, 2, 3, 4, 5}, 2, 2, 4)
	if len(parts) != 4 || len(parts[0]) != 2 || len(parts[1]) != 0 || len(parts[2]) != 2 || len(parts[3]) != 1 {
		t.Fatalf("unexpected split: %v", parts)
	}
}
