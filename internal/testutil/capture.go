package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/arvindsr33/mm-radar/radar/capture"
	"github.com/arvindsr33/mm-radar/radar/cube"
)

// Header returns a deterministic HSI-like header of n words.
func Header(n int) []int16 {
	h := make([]int16, n)
	for i := range h {
		h[i] = int16(0x0a0a + 17*i)
	}
	return h
}

// Capture returns the raw word stream of frames complete frames with random
// I/Q payloads and the reference header before every packet.
func Capture(g capture.Geometry, frames int, seed int64) []int16 {
	rng := rand.New(rand.NewSource(seed))
	header := Header(g.HeaderWords)
	out := make([]int16, 0, frames*g.FrameLen())

	payload := g.PacketLen() - g.HeaderWords
	for range frames * g.NumChirps {
		out = append(out, header...)
		for range payload {
			out = append(out, int16(rng.Intn(4096)-2048))
		}
	}
	return out
}

// Split cuts words at the given ascending positions.
func Split(words []int16, cuts ...int) [][]int16 {
	parts := make([][]int16, 0, len(cuts)+1)
	prev := 0
	for _, c := range cuts {
		parts = append(parts, words[prev:c])
		prev = c
	}
	return append(parts, words[prev:])
}

// WriteSession writes parts as capture files named like the capture card
// does and returns the directory.
func WriteSession(t testing.TB, parts [][]int16) string {
	t.Helper()
	dir := t.TempDir()
	for i, p := range parts {
		name := "datacard_record_hdr_0ADC.bin"
		if i > 0 {
			name = fmt.Sprintf("datacard_record_hdr_0ADC_%d.bin", i)
		}
		if err := capture.WriteWordsFile(filepath.Join(dir, name), p); err != nil {
			t.Fatalf("write session file: %v", err)
		}
	}
	return dir
}

// Target describes a point reflector for [TargetCube].
type Target struct {
	// RangeBin is the fast-time frequency in FFT bins.
	RangeBin float64
	// DopplerBin is the slow-time frequency in FFT bins, before shifting.
	DopplerBin float64
	Amplitude  float64
}

// TargetCube builds a noise-free cube with axes (FastTime, SlowTime,
// Channel, Frame) holding the sum of the given targets plus a static offset
// on every channel.
func TargetCube(t testing.TB, g capture.Geometry, frames int, static complex128, targets ...Target) *cube.Cube {
	t.Helper()
	c, err := cube.New[complex128](cube.RadarAxes, []int{g.NumSamples, g.NumChirps, g.NumRx, frames})
	if err != nil {
		t.Fatalf("target cube: %v", err)
	}

	ns, nc := float64(g.NumSamples), float64(g.NumChirps)
	for s := range g.NumSamples {
		for ch := range g.NumChirps {
			var v complex128
			for _, tg := range targets {
				phase := 2 * math.Pi * (tg.RangeBin*float64(s)/ns + tg.DopplerBin*float64(ch)/nc)
				v += complex(tg.Amplitude, 0) * cmplx.Exp(complex(0, phase))
			}
			for rx := range g.NumRx {
				for f := range frames {
					c.Set(v+static, s, ch, rx, f)
				}
			}
		}
	}
	return c
}
