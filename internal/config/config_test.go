package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arvindsr33/mm-radar/dsp/window"
	"github.com/arvindsr33/mm-radar/radar/microdoppler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVerifies(t *testing.T) {
	p := Default()
	require.NoError(t, p.Verify())
}

func TestParseOverridesDefaults(t *testing.T) {
	p, err := Parse([]byte(`
debug = true

[geometry]
num_samples = 256
num_rx = 2
fps = 20

[doppler]
window = "blackman"
interpolation_factor = 2
log_base = 2

[microdoppler]
units = "frequency"
max_velocity = 5
`))
	require.NoError(t, err)

	assert.True(t, p.Debug)
	assert.Equal(t, 256, p.Geometry.NumSamples)
	assert.Equal(t, 64, p.Geometry.NumChirps)
	assert.Equal(t, 2, p.Geometry.NumRx)
	assert.Equal(t, 20.0, p.Geometry.FPS)
	assert.Equal(t, window.TypeBlackman, p.Doppler.Window)
	assert.Equal(t, window.TypeHamming, p.Doppler.RangeWindow)
	assert.Equal(t, 2, p.Doppler.InterpolationFactor)
	assert.Equal(t, 2.0, p.Doppler.LogBase)
	assert.True(t, p.Doppler.ClutterRemoval)
	assert.Equal(t, microdoppler.UnitsFrequency, p.MicroDoppler.Units)
	assert.Equal(t, 5.0, p.MicroDoppler.MaxVelocity)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "[geometry]\nnum_sample = 3\n"},
		{name: "bad window", doc: "[doppler]\nwindow = \"kaiser\"\n"},
		{name: "bad log base", doc: "[doppler]\nlog_base = 3\n"},
		{name: "bad geometry", doc: "[geometry]\nnum_chirps = 0\n"},
		{name: "bad velocity", doc: "[microdoppler]\nmax_velocity = -1\n"},
		{name: "empty dir", doc: "[output]\ndir = \"\"\n"},
		{name: "syntax", doc: "[geometry\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrProfile)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	p := Default()
	p.Doppler.Window = window.TypeBlackmanHarris
	p.MicroDoppler.Units = microdoppler.UnitsFrequency

	data, err := p.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
