package capture

import (
	"fmt"
	"time"
)

// DefaultHeaderWords is the HSI header size of the capture card, in words.
const DefaultHeaderWords = 32

// Geometry is the packet and frame layout of one capture session.
type Geometry struct {
	NumSamples  int `toml:"num_samples"`
	NumChirps   int `toml:"num_chirps"`
	NumTx       int `toml:"num_tx"`
	NumRx       int `toml:"num_rx"`
	HeaderWords int `toml:"header_words"`
	// IQFactor is the number of words per complex sample and must be 2.
	IQFactor int `toml:"iq_factor"`
	// FPS is the frame rate, used only for time axes. Zero means unknown.
	FPS   float64 `toml:"fps"`
	Label string  `toml:"label"`
}

// DefaultGeometry returns the layout used by the capture card when nothing
// else is known: 128 samples, 64 chirps, 1 transmitter, 4 receivers.
func DefaultGeometry() Geometry {
	return Geometry{
		NumSamples:  128,
		NumChirps:   64,
		NumTx:       1,
		NumRx:       4,
		HeaderWords: DefaultHeaderWords,
		IQFactor:    2,
	}
}

// PacketLen is the length of one chirp packet in words, header included.
func (g Geometry) PacketLen() int {
	return g.NumSamples*g.NumRx*g.IQFactor + g.HeaderWords
}

// FrameLen is the length of one frame in words.
func (g Geometry) FrameLen() int {
	return g.PacketLen() * g.NumChirps
}

// Validate rejects geometries that cannot describe a capture.
func (g Geometry) Validate() error {
	switch {
	case g.NumSamples <= 0:
		return fmt.Errorf("%w: num_samples=%d", ErrGeometry, g.NumSamples)
	case g.NumChirps <= 0:
		return fmt.Errorf("%w: num_chirps=%d", ErrGeometry, g.NumChirps)
	case g.NumRx <= 0:
		return fmt.Errorf("%w: num_rx=%d", ErrGeometry, g.NumRx)
	case g.NumTx < 0:
		return fmt.Errorf("%w: num_tx=%d", ErrGeometry, g.NumTx)
	case g.HeaderWords < 0:
		return fmt.Errorf("%w: header_words=%d", ErrGeometry, g.HeaderWords)
	case g.IQFactor != 2:
		return fmt.Errorf("%w: iq_factor=%d, only interleaved I/Q pairs are supported", ErrGeometry, g.IQFactor)
	case g.FPS < 0:
		return fmt.Errorf("%w: fps=%v", ErrGeometry, g.FPS)
	}
	return nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%d samples x %d chirps x %d rx (tx=%d, header=%d words)",
		g.NumSamples, g.NumChirps, g.NumRx, g.NumTx, g.HeaderWords)
}

// Duration estimates the captured time span for a frame count.
func (g Geometry) Duration(frames int64) time.Duration {
	if g.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / g.FPS * float64(time.Second))
}
