package cube

import "fmt"

// Axis names one dimension of a radar cube.
type Axis int

const (
	// FastTime is the sample axis within one chirp (range after the FFT).
	FastTime Axis = iota
	// SlowTime is the chirp axis within one frame (Doppler after the FFT).
	SlowTime
	// Channel is the receive antenna axis.
	Channel
	// Frame is the frame index axis.
	Frame
)

// RadarAxes is the public axis order of a reconstructed cube.
var RadarAxes = []Axis{FastTime, SlowTime, Channel, Frame}

func (a Axis) String() string {
	switch a {
	case FastTime:
		return "fast-time"
	case SlowTime:
		return "slow-time"
	case Channel:
		return "channel"
	case Frame:
		return "frame"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}
