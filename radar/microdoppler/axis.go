package microdoppler

import "fmt"

const (
	// SpeedOfLight in m/s, rounded as in the capture tooling.
	SpeedOfLight = 3e8
	// DefaultCarrier is the 77 GHz start frequency of the radar.
	DefaultCarrier = 77e9
)

// Units selects the vertical axis of the spectrogram.
type Units int

const (
	// UnitsVelocity labels bins in m/s.
	UnitsVelocity Units = iota
	// UnitsFrequency labels bins in Hz of Doppler shift.
	UnitsFrequency
)

func (u Units) String() string {
	switch u {
	case UnitsVelocity:
		return "velocity"
	case UnitsFrequency:
		return "frequency"
	default:
		return fmt.Sprintf("units(%d)", int(u))
	}
}

// ParseUnits accepts "velocity" or "frequency".
func ParseUnits(s string) (Units, error) {
	switch s {
	case "velocity", "":
		return UnitsVelocity, nil
	case "frequency":
		return UnitsFrequency, nil
	}
	return 0, fmt.Errorf("microdoppler: unknown axis units %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Units) UnmarshalText(text []byte) error {
	v, err := ParseUnits(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u Units) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// Wavelength returns the carrier wavelength in metres.
func (a *Accumulator) Wavelength() float64 { return SpeedOfLight / a.carrier }

// Axis returns the centre value of every Doppler bin. Bins span
// [-maxVelocity, maxVelocity) with zero at Bins()/2; frequency units use
// f = v / (wavelength/2).
func (a *Accumulator) Axis(units Units, maxVelocity float64) []float64 {
	n := a.bins
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	scale := 1.0
	if units == UnitsFrequency {
		scale = 1 / (a.Wavelength() / 2)
	}

	step := 2 * maxVelocity / float64(n)
	for i := range out {
		out[i] = float64(i-n/2) * step * scale
	}
	return out
}

// TimeAxis returns the start time in seconds of every column.
func (a *Accumulator) TimeAxis(fps float64) []float64 {
	out := make([]float64, len(a.columns))
	if fps <= 0 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / fps
	}
	return out
}
