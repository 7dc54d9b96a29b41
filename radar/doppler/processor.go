package doppler

import (
	"fmt"
	"slices"

	"github.com/arvindsr33/mm-radar/dsp/fft"
	"github.com/arvindsr33/mm-radar/dsp/window"
	"github.com/arvindsr33/mm-radar/radar/cube"
	"go.uber.org/zap"
)

// Processor runs the range and Doppler stages. It holds no mutable state and
// is safe for concurrent use.
type Processor struct {
	cfg    Config
	logger *zap.Logger
}

// Option configures a [Processor].
type Option func(*Processor)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// New validates cfg and returns a Processor.
func New(cfg Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Processor{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Config returns the processor configuration.
func (p *Processor) Config() Config { return p.cfg }

// Range windows each fast-time line and replaces it by its FFT. The range
// axis is one-sided, so no shift is applied.
func (p *Processor) Range(c *cube.Cube) (*cube.Cube, error) {
	n := c.Len(cube.FastTime)
	out, err := cube.Transform(c, cube.FastTime, n, p.cfg.Workers, func(dst, src []complex128) error {
		copy(dst, src)
		window.ApplyComplex(p.cfg.RangeWindow, dst)
		return fft.Forward(dst, dst)
	})
	if err != nil {
		return nil, fmt.Errorf("doppler: range fft: %w", err)
	}
	return out, nil
}

// DopplerLen returns the Doppler FFT length for an axis of n samples.
func (p *Processor) DopplerLen(n int) int { return n * p.cfg.InterpolationFactor }

// Doppler transforms every line along axis: optional clutter removal,
// window, zero-padded FFT of length len(axis)*InterpolationFactor and a
// shift that moves zero Doppler to the centre bin.
func (p *Processor) Doppler(c *cube.Cube, axis cube.Axis) (*cube.Cube, error) {
	n := c.Len(axis)
	out, err := cube.Transform(c, axis, p.DopplerLen(n), p.cfg.Workers, func(dst, src []complex128) error {
		line := dst[:len(src)]
		copy(line, src)
		if p.cfg.ClutterRemoval {
			subtractMean(line)
		}
		window.ApplyComplex(p.cfg.Window, line)

		if err := fft.Forward(dst, dst); err != nil {
			return err
		}
		fft.Shift(dst)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("doppler: %v fft: %w", axis, err)
	}
	return out, nil
}

// InverseDoppler undoes the shift and FFT of [Processor.Doppler] and drops
// the zero padding, returning the windowed, clutter-removed input lines.
func (p *Processor) InverseDoppler(c *cube.Cube, axis cube.Axis) (*cube.Cube, error) {
	padded := c.Len(axis)
	if padded%p.cfg.InterpolationFactor != 0 {
		return nil, fmt.Errorf("%w: %v length %d is not a multiple of %d",
			ErrConfig, axis, padded, p.cfg.InterpolationFactor)
	}

	return cube.Transform(c, axis, padded/p.cfg.InterpolationFactor, p.cfg.Workers, func(dst, src []complex128) error {
		line := slices.Clone(src)
		fft.InverseShift(line)
		if err := fft.Inverse(line, line); err != nil {
			return err
		}
		copy(dst, line)
		return nil
	})
}

// ClutterRemoval subtracts the mean of every line along axis, suppressing
// returns that do not change along it. Applying it twice is idempotent.
func ClutterRemoval(c *cube.Cube, axis cube.Axis) (*cube.Cube, error) {
	return cube.Transform(c, axis, c.Len(axis), 1, func(dst, src []complex128) error {
		copy(dst, src)
		subtractMean(dst)
		return nil
	})
}

func subtractMean(line []complex128) {
	if len(line) == 0 {
		return
	}
	mean := cube.Sum(line) / complex(float64(len(line)), 0)
	for i := range line {
		line[i] -= mean
	}
}
