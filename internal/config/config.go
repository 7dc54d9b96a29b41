// Package config loads processing profiles for the rdcube tool.
//
// A profile is a TOML file with [geometry], [doppler], [microdoppler] and
// [output] tables. Keys that are absent keep their defaults; unknown keys
// are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/arvindsr33/mm-radar/radar/capture"
	"github.com/arvindsr33/mm-radar/radar/doppler"
	"github.com/arvindsr33/mm-radar/radar/microdoppler"
	"github.com/pelletier/go-toml/v2"
)

// ErrProfile is wrapped by every profile validation error.
var ErrProfile = errors.New("config: invalid profile")

// Profile is a complete processing configuration.
type Profile struct {
	Debug        bool               `toml:"debug"`
	Geometry     capture.Geometry   `toml:"geometry"`
	Doppler      doppler.Config     `toml:"doppler"`
	MicroDoppler MicroDopplerConfig `toml:"microdoppler"`
	Output       OutputConfig       `toml:"output"`
}

// MicroDopplerConfig holds spectrogram settings.
type MicroDopplerConfig struct {
	PowerAccumulation bool               `toml:"power_accumulation" comment:"sum squared range bins instead of the range spectrum"`
	Units             microdoppler.Units `toml:"units" comment:"velocity or frequency"`
	MaxVelocity       float64            `toml:"max_velocity" comment:"m/s spanned by the Doppler axis"`
	CarrierHz         float64            `toml:"carrier_hz"`
}

// OutputConfig controls what the CLI writes.
type OutputConfig struct {
	Dir     string `toml:"dir"`
	Frames  bool   `toml:"frames" comment:"write one PNG per range-Doppler frame"`
	Heatmap bool   `toml:"heatmap" comment:"write the micro-Doppler heatmap PNG"`
	CSV     bool   `toml:"csv" comment:"write the raw spectrogram as CSV"`
}

// Default returns the profile used when no file is given.
func Default() Profile {
	return Profile{
		Geometry: capture.DefaultGeometry(),
		Doppler:  doppler.DefaultConfig(),
		MicroDoppler: MicroDopplerConfig{
			Units:       microdoppler.UnitsVelocity,
			MaxVelocity: 2,
			CarrierHz:   microdoppler.DefaultCarrier,
		},
		Output: OutputConfig{
			Dir:     ".",
			Frames:  true,
			Heatmap: true,
			CSV:     true,
		},
	}
}

// Parse decodes a profile on top of [Default] and verifies it.
func Parse(data []byte) (*Profile, error) {
	p := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrProfile, strict.String())
		}
		return nil, fmt.Errorf("%w: %v", ErrProfile, err)
	}

	if err := p.Verify(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Verify checks every section.
func (p *Profile) Verify() error {
	if err := p.Geometry.Validate(); err != nil {
		return fmt.Errorf("%w: [geometry] %v", ErrProfile, err)
	}
	if err := p.Doppler.Validate(); err != nil {
		return fmt.Errorf("%w: [doppler] %v", ErrProfile, err)
	}
	if p.MicroDoppler.MaxVelocity <= 0 {
		return fmt.Errorf("%w: [microdoppler] max_velocity must be > 0", ErrProfile)
	}
	if p.MicroDoppler.CarrierHz <= 0 {
		return fmt.Errorf("%w: [microdoppler] carrier_hz must be > 0", ErrProfile)
	}
	if p.Output.Dir == "" {
		return fmt.Errorf("%w: [output] dir must not be empty", ErrProfile)
	}
	return nil
}

// Marshal encodes the profile as TOML.
func (p *Profile) Marshal() ([]byte, error) {
	return toml.Marshal(p)
}
