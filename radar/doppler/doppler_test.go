package doppler

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/arvindsr33/mm-radar/dsp/spectrum"
	"github.com/arvindsr33/mm-radar/dsp/window"
	"github.com/arvindsr33/mm-radar/internal/testutil"
	"github.com/arvindsr33/mm-radar/radar/capture"
	"github.com/arvindsr33/mm-radar/radar/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var geom = capture.Geometry{NumSamples: 16, NumChirps: 8, NumRx: 2, HeaderWords: 2, IQFactor: 2}

func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.ClutterRemoval = false
	cfg.Window = window.TypeNone
	cfg.RangeWindow = window.TypeNone
	return cfg
}

func newProcessor(t *testing.T, cfg Config) *Processor {
	t.Helper()
	p, err := New(cfg)
	require.NoError(t, err)
	return p
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "interp", mutate: func(c *Config) { c.InterpolationFactor = 0 }},
		{name: "log base", mutate: func(c *Config) { c.LogBase = math.E }},
		{name: "floor", mutate: func(c *Config) { c.MagnitudeFloor = 0 }},
		{name: "workers", mutate: func(c *Config) { c.Workers = -1 }},
		{name: "window", mutate: func(c *Config) { c.Window = window.Type(99) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}

func peak2D(t *testing.T, m Map) (int, int) {
	t.Helper()
	i := spectrum.PeakIndex(m.Data)
	require.GreaterOrEqual(t, i, 0)
	return i / m.Cols, i % m.Cols
}

func TestRangeFFTPeak(t *testing.T) {
	p := newProcessor(t, plainConfig())
	c := testutil.TargetCube(t, geom, 1, 0, testutil.Target{RangeBin: 5, Amplitude: 1})

	r, err := p.Range(c)
	require.NoError(t, err)
	assert.Equal(t, c.Shape(), r.Shape())

	line, err := cube.Line(r, cube.FastTime, 3, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, spectrum.PeakIndex(spectrum.Magnitude(line)))
	assert.InDelta(t, float64(geom.NumSamples), cmplx.Abs(line[5]), 1e-9)
}

func TestRangeDopplerMapPeak(t *testing.T) {
	for _, interp := range []int{1, 2} {
		cfg := plainConfig()
		cfg.InterpolationFactor = interp
		p := newProcessor(t, cfg)

		c := testutil.TargetCube(t, geom, 3, 0, testutil.Target{RangeBin: 4, DopplerBin: 2, Amplitude: 1})
		maps, err := p.RangeDopplerMaps(c)
		require.NoError(t, err)
		require.Len(t, maps, 3)

		for f, m := range maps {
			assert.Equal(t, f, m.Frame)
			assert.Equal(t, geom.NumChirps*interp, m.Rows)
			assert.Equal(t, geom.NumSamples, m.Cols)

			row, col := peak2D(t, m)
			assert.Equal(t, 4, col, "interp %d", interp)
			assert.Equal(t, m.Rows/2+2*interp, row, "interp %d", interp)
			assert.Equal(t, m.At(row, col), m.Row(row)[col])
		}
	}
}

func TestDopplerInverseRecoversInput(t *testing.T) {
	for _, interp := range []int{1, 3} {
		cfg := plainConfig()
		cfg.InterpolationFactor = interp
		cfg.Workers = 3
		p := newProcessor(t, cfg)

		c := testutil.TargetCube(t, geom, 2, 0.5+0.25i,
			testutil.Target{RangeBin: 3, DopplerBin: 1.3, Amplitude: 2},
			testutil.Target{RangeBin: 7, DopplerBin: -2, Amplitude: 1})

		d, err := p.Doppler(c, cube.SlowTime)
		require.NoError(t, err)
		assert.Equal(t, geom.NumChirps*interp, d.Len(cube.SlowTime))

		back, err := p.InverseDoppler(d, cube.SlowTime)
		require.NoError(t, err)
		testutil.RequireComplexNearlyEqual(t, back.Data(), c.Data(), 1e-9)
	}
}

func TestClutterRemovalIdempotent(t *testing.T) {
	c := testutil.TargetCube(t, geom, 2, 3-1i, testutil.Target{RangeBin: 2, DopplerBin: 1.5, Amplitude: 1})

	once, err := ClutterRemoval(c, cube.SlowTime)
	require.NoError(t, err)
	twice, err := ClutterRemoval(once, cube.SlowTime)
	require.NoError(t, err)

	testutil.RequireComplexNearlyEqual(t, twice.Data(), once.Data(), 1e-12)

	for s := range geom.NumSamples {
		line, err := cube.Line(once, cube.SlowTime, s, 0, 1)
		require.NoError(t, err)
		assert.InDelta(t, 0, cmplx.Abs(cube.Sum(line)), 1e-9)
	}
}

func TestClutterRemovalSuppressesStaticReturns(t *testing.T) {
	cfg := plainConfig()
	cfg.ClutterRemoval = true
	p := newProcessor(t, cfg)

	c := testutil.TargetCube(t, geom, 1, 10+10i)
	d, err := p.Doppler(c, cube.SlowTime)
	require.NoError(t, err)

	for _, v := range d.Data() {
		require.InDelta(t, 0, cmplx.Abs(v), 1e-9)
	}
}

func TestDopplerOnReducedCube(t *testing.T) {
	p := newProcessor(t, plainConfig())
	c := testutil.TargetCube(t, geom, 4, 0, testutil.Target{RangeBin: 0, DopplerBin: -3, Amplitude: 1})

	summed, err := cube.SumAxis(c, cube.FastTime)
	require.NoError(t, err)
	d, err := p.Doppler(summed, cube.SlowTime)
	require.NoError(t, err)
	assert.Equal(t, []cube.Axis{cube.SlowTime, cube.Channel, cube.Frame}, d.Axes())

	line, err := cube.Line(d, cube.SlowTime, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, geom.NumChirps/2-3, spectrum.PeakIndex(spectrum.Magnitude(line)))
}

func TestReduceModes(t *testing.T) {
	cfg := plainConfig()
	cfg.LogBase = 2
	cfg.MagnitudeFloor = 1
	p := newProcessor(t, cfg)

	// Two channels with magnitudes 1 and 3 everywhere.
	c, err := cube.New[complex128]([]cube.Axis{cube.SlowTime, cube.Channel}, []int{3, 2})
	require.NoError(t, err)
	for r := range 3 {
		c.Set(1i, r, 0)
		c.Set(-3, r, 1)
	}

	sum, err := p.Reduce(c, ReduceLogSum)
	require.NoError(t, err)
	assert.Equal(t, []cube.Axis{cube.SlowTime}, sum.Axes())
	testutil.RequireSliceNearlyEqual(t, sum.Data(), []float64{3, 3, 3}, 1e-12)

	sel, err := p.Reduce(c, ReduceSelect)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, sel.Data(), []float64{1, 1, 1}, 1e-12)

	logSel, err := p.Reduce(c, ReduceLogSelect)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, logSel.Data(), []float64{1, 1, 1}, 1e-12)

	none, err := p.Reduce(c, ReduceNone)
	require.NoError(t, err)
	assert.Equal(t, c.Shape(), none.Shape())
	assert.Equal(t, 3.0, none.At(0, 1))

	_, err = p.Reduce(c, ReduceMode(42))
	require.ErrorIs(t, err, ErrReduceMode)

	noChannel, err := cube.New[complex128]([]cube.Axis{cube.SlowTime}, []int{3})
	require.NoError(t, err)
	_, err = p.Reduce(noChannel, ReduceLogSum)
	require.ErrorIs(t, err, cube.ErrAxis)
}

func TestAccumulatePicksMode(t *testing.T) {
	c := testutil.TargetCube(t, geom, 1, 0, testutil.Target{RangeBin: 1, Amplitude: 1})

	cfg := plainConfig()
	acc := newProcessor(t, cfg)
	got, err := acc.Accumulate(c)
	require.NoError(t, err)
	want, err := acc.Reduce(c, ReduceLogSum)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	cfg.AccumulateChannels = false
	sel := newProcessor(t, cfg)
	got, err = sel.Accumulate(c)
	require.NoError(t, err)
	want, err = sel.Reduce(c, ReduceSelect)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestLogSumFiniteAtZero(t *testing.T) {
	p := newProcessor(t, DefaultConfig())
	c, err := cube.New[complex128](cube.RadarAxes, []int{4, 4, 2, 1})
	require.NoError(t, err)

	maps, err := p.RangeDopplerMaps(c)
	require.NoError(t, err)
	require.Len(t, maps, 1)
	testutil.RequireFinite(t, maps[0].Data)
	assert.InDelta(t, 2*math.Log10(spectrum.DefaultFloor), maps[0].Data[0], 1e-12)
}

func TestWorkersDoNotChangeResult(t *testing.T) {
	c := testutil.TargetCube(t, geom, 5, 1, testutil.Target{RangeBin: 6, DopplerBin: 1, Amplitude: 1})

	cfg := DefaultConfig()
	cfg.Workers = 1
	serial, err := newProcessor(t, cfg).RangeDoppler(c)
	require.NoError(t, err)

	cfg.Workers = 7
	parallel, err := newProcessor(t, cfg).RangeDoppler(c)
	require.NoError(t, err)

	assert.True(t, serial.Equal(parallel))
}

func TestEmptyFrameAxis(t *testing.T) {
	p := newProcessor(t, DefaultConfig())
	c, err := cube.New[complex128](cube.RadarAxes, []int{geom.NumSamples, geom.NumChirps, geom.NumRx, 0})
	require.NoError(t, err)

	maps, err := p.RangeDopplerMaps(c)
	require.NoError(t, err)
	assert.Empty(t, maps)
}
