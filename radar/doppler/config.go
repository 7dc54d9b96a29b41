package doppler

import (
	"fmt"

	"github.com/arvindsr33/mm-radar/dsp/spectrum"
	"github.com/arvindsr33/mm-radar/dsp/window"
)

// Config parameterises every stage of the pipeline.
type Config struct {
	// ClutterRemoval subtracts the per-line mean before the Doppler FFT.
	ClutterRemoval bool `toml:"clutter_removal"`
	// Window is applied along the Doppler axis.
	Window window.Type `toml:"window"`
	// RangeWindow is applied along fast-time before the range FFT.
	RangeWindow window.Type `toml:"range_window"`
	// AccumulateChannels sums log magnitudes over receivers instead of
	// selecting channel 0.
	AccumulateChannels bool `toml:"accumulate_channels"`
	// InterpolationFactor zero-pads the Doppler FFT to len(axis)*factor.
	InterpolationFactor int `toml:"interpolation_factor"`
	// LogBase is 2 or 10.
	LogBase float64 `toml:"log_base"`
	// MagnitudeFloor is added to every magnitude before a logarithm.
	MagnitudeFloor float64 `toml:"magnitude_floor"`
	// Workers bounds per-line FFT parallelism; 0 uses GOMAXPROCS.
	Workers int `toml:"workers"`
}

// DefaultConfig returns clutter removal, a Hann Doppler window, a Hamming
// range window, channel accumulation and log10(|x| + 1e-4).
func DefaultConfig() Config {
	return Config{
		ClutterRemoval:      true,
		Window:              window.TypeHann,
		RangeWindow:         window.TypeHamming,
		AccumulateChannels:  true,
		InterpolationFactor: 1,
		LogBase:             10,
		MagnitudeFloor:      spectrum.DefaultFloor,
	}
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.InterpolationFactor < 1 {
		return fmt.Errorf("%w: interpolation_factor=%d", ErrConfig, c.InterpolationFactor)
	}
	if c.LogBase != 2 && c.LogBase != 10 {
		return fmt.Errorf("%w: log_base=%v, want 2 or 10", ErrConfig, c.LogBase)
	}
	if err := c.LogScale().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers=%d", ErrConfig, c.Workers)
	}
	for _, w := range []window.Type{c.Window, c.RangeWindow} {
		if _, err := w.MarshalText(); err != nil {
			return fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}
	return nil
}

// LogScale returns the floored logarithm used by the reductions.
func (c Config) LogScale() spectrum.LogScale {
	return spectrum.LogScale{Base: c.LogBase, Floor: c.MagnitudeFloor}
}
