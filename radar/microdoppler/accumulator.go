package microdoppler

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arvindsr33/mm-radar/radar/cube"
	"github.com/arvindsr33/mm-radar/radar/doppler"
	"go.uber.org/zap"
)

// ErrBins is returned when a cube yields a different number of Doppler bins
// than the columns already accumulated.
var ErrBins = errors.New("microdoppler: doppler bin count changed")

// Option configures an [Accumulator].
type Option func(*Accumulator)

// WithPowerAccumulation sums the squared range spectrum over range bins
// instead of the spectrum itself.
func WithPowerAccumulation() Option {
	return func(a *Accumulator) {
		a.power = true
	}
}

// WithCarrier sets the carrier frequency in Hz used for axis conversion.
func WithCarrier(hz float64) Option {
	return func(a *Accumulator) {
		if hz > 0 {
			a.carrier = hz
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Accumulator) {
		if l != nil {
			a.logger = l
		}
	}
}

// Accumulator builds the spectrogram. It is not safe for concurrent use.
type Accumulator struct {
	proc    *doppler.Processor
	power   bool
	carrier float64
	logger  *zap.Logger

	bins    int
	columns [][]float64
}

// New returns an empty Accumulator using p for the FFT stages.
func New(p *doppler.Processor, opts ...Option) *Accumulator {
	a := &Accumulator{proc: p, carrier: DefaultCarrier, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Add processes one cube with axes (FastTime, SlowTime, Channel, Frame) and
// appends one column per frame.
func (a *Accumulator) Add(c *cube.Cube) error {
	r, err := a.proc.Range(c)
	if err != nil {
		return err
	}
	if a.power {
		r = cube.Map(r, func(v complex128) complex128 { return v * v })
	}

	summed, err := cube.SumAxis(r, cube.FastTime)
	if err != nil {
		return fmt.Errorf("microdoppler: range accumulation: %w", err)
	}

	d, err := a.proc.Doppler(summed, cube.SlowTime)
	if err != nil {
		return err
	}

	mode := doppler.ReduceLogSelect
	if a.proc.Config().AccumulateChannels {
		mode = doppler.ReduceLogSum
	}
	red, err := a.proc.Reduce(d, mode)
	if err != nil {
		return err
	}

	cols, err := cube.Permute(red, cube.Frame, cube.SlowTime)
	if err != nil {
		return fmt.Errorf("microdoppler: %w", err)
	}

	bins := cols.Len(cube.SlowTime)
	if len(a.columns) > 0 && bins != a.bins {
		return fmt.Errorf("%w: have %d, cube gives %d", ErrBins, a.bins, bins)
	}
	a.bins = bins

	data := cols.Data()
	for f := range cols.Len(cube.Frame) {
		a.columns = append(a.columns, slices.Clone(data[f*bins:(f+1)*bins]))
	}

	a.logger.Debug("spectrogram columns added",
		zap.Int("frames", cols.Len(cube.Frame)),
		zap.Int("columns", len(a.columns)))
	return nil
}

// Columns returns the number of accumulated columns (frames).
func (a *Accumulator) Columns() int { return len(a.columns) }

// Bins returns the number of Doppler bins per column, or 0 before the first
// non-empty cube.
func (a *Accumulator) Bins() int { return a.bins }

// Column returns a copy of column i.
func (a *Accumulator) Column(i int) []float64 { return slices.Clone(a.columns[i]) }

// Image returns the spectrogram as rows of Doppler bins by columns of time.
func (a *Accumulator) Image() [][]float64 {
	img := make([][]float64, a.bins)
	for b := range img {
		row := make([]float64, len(a.columns))
		for t, col := range a.columns {
			row[t] = col[b]
		}
		img[b] = row
	}
	return img
}

// Reset drops every accumulated column.
func (a *Accumulator) Reset() {
	a.columns = nil
	a.bins = 0
}
