package doppler

import (
	"testing"

	"github.com/arvindsr33/mm-radar/internal/testutil"
	"github.com/arvindsr33/mm-radar/radar/capture"
)

func BenchmarkRangeDopplerMaps(b *testing.B) {
	g := capture.Geometry{NumSamples: 128, NumChirps: 64, NumRx: 4, HeaderWords: 32, IQFactor: 2}
	c := testutil.TargetCube(b, g, 4, 0, testutil.Target{RangeBin: 20, DopplerBin: 3, Amplitude: 100})
	p, err := New(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := p.RangeDopplerMaps(c); err != nil {
			b.Fatal(err)
		}
	}
}
