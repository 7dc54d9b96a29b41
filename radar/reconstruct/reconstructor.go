package reconstruct

import (
	"fmt"
	"slices"

	"github.com/arvindsr33/mm-radar/radar/capture"
	"github.com/arvindsr33/mm-radar/radar/cube"
	"go.uber.org/zap"
)

// Stats are the word accounting counters of a Reconstructor. After every
// successful call FramesEmitted*FrameLen + Carryover == WordsConsumed.
type Stats struct {
	Files         int
	WordsConsumed int64
	FramesEmitted int64
	Carryover     int
}

// Reconstructor assembles cubes from consecutive capture files. It is not
// safe for concurrent use; files must be fed strictly in order.
type Reconstructor struct {
	geom   capture.Geometry
	logger *zap.Logger
	header []int16
	carry  []int16
	stats  Stats
}

// New returns a Reconstructor for geometry g.
func New(g capture.Geometry, opts ...Option) (*Reconstructor, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	if o.header != nil && len(o.header) != g.HeaderWords {
		return nil, &capture.ConfigError{
			Detail: fmt.Sprintf("reference header has %d words, geometry expects %d", len(o.header), g.HeaderWords),
		}
	}

	return &Reconstructor{geom: g, logger: o.logger, header: o.header}, nil
}

// Geometry returns the capture geometry.
func (r *Reconstructor) Geometry() capture.Geometry { return r.geom }

// ReferenceHeader returns a copy of the reference header, or nil before the
// first file.
func (r *Reconstructor) ReferenceHeader() []int16 { return slices.Clone(r.header) }

// Stats returns the current counters.
func (r *Reconstructor) Stats() Stats {
	s := r.stats
	s.Carryover = len(r.carry)
	return s
}

// Next consumes the words of one file and returns the cube of all frames
// completed by it. The frame axis may have length zero. On error the file is
// not consumed and the carryover is unchanged.
func (r *Reconstructor) Next(name string, words []int16) (*cube.Cube, error) {
	g := r.geom

	if r.header == nil {
		if len(words) < g.HeaderWords {
			return nil, &capture.GeometryMismatchError{
				File:   name,
				Words:  int64(len(words)),
				Detail: fmt.Sprintf("first file shorter than the %d word header", g.HeaderWords),
			}
		}
		r.header = slices.Clone(words[:g.HeaderWords])
	}

	combined := make([]int16, 0, len(r.carry)+len(words))
	combined = append(combined, r.carry...)
	combined = append(combined, words...)

	for _, off := range []int{0, g.PacketLen()} {
		if !r.headerAt(combined, off) {
			return nil, &capture.FramingError{File: name, Offset: int64(2 * off)}
		}
	}

	frameLen := g.FrameLen()
	complete := len(combined) / frameLen
	r.carry = slices.Clone(combined[complete*frameLen:])

	r.stats.Files++
	r.stats.WordsConsumed += int64(len(words))
	r.stats.FramesEmitted += int64(complete)

	c, err := r.unpack(combined[:complete*frameLen], complete)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("reconstructed cube",
		zap.String("file", name),
		zap.Int("words", len(words)),
		zap.Stringer("shape", c),
		zap.Int("carryover", len(r.carry)))

	return c, nil
}

// headerAt compares the reference header with the stream at off. Offsets
// past the end are not checked; a header cut off by the end of the stream is
// compared over the available words.
func (r *Reconstructor) headerAt(stream []int16, off int) bool {
	if off >= len(stream) {
		return true
	}
	end := min(off+len(r.header), len(stream))
	return slices.Equal(stream[off:end], r.header[:end-off])
}

// unpack strips packet headers, pairs I/Q words and lays out the cube.
func (r *Reconstructor) unpack(words []int16, frames int) (*cube.Cube, error) {
	g := r.geom
	packets := frames * g.NumChirps
	perPacket := g.NumRx * g.NumSamples
	data := make([]complex128, packets*perPacket)

	for p := range packets {
		payload := words[p*g.PacketLen()+g.HeaderWords : (p+1)*g.PacketLen()]
		out := data[p*perPacket : (p+1)*perPacket]
		for k := range out {
			out[k] = complex(float64(payload[2*k]), float64(payload[2*k+1]))
		}
	}

	raw, err := cube.FromData(
		[]cube.Axis{cube.Frame, cube.SlowTime, cube.Channel, cube.FastTime},
		[]int{frames, g.NumChirps, g.NumRx, g.NumSamples},
		data)
	if err != nil {
		return nil, err
	}
	return cube.Permute(raw, cube.RadarAxes...)
}

// Finish reports the number of carryover words that never completed a frame.
// A non-zero count is logged as a warning.
func (r *Reconstructor) Finish() int {
	trailing := len(r.carry)
	if trailing > 0 {
		r.logger.Warn("trailing data does not complete a frame",
			zap.Int("words", trailing),
			zap.Int("frame_len", r.geom.FrameLen()),
			zap.Int64("frames", r.stats.FramesEmitted))
	}
	return trailing
}

// Flatten writes c back into the raw word layout, inserting header before
// every packet. c must carry exactly the axes FastTime, SlowTime, Channel and
// Frame, with integral I/Q values.
func Flatten(c *cube.Cube, header []int16) ([]int16, error) {
	ordered, err := cube.Permute(c, cube.Frame, cube.SlowTime, cube.Channel, cube.FastTime)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: flatten: %w", err)
	}

	perPacket := c.Len(cube.Channel) * c.Len(cube.FastTime)
	packets := c.Len(cube.Frame) * c.Len(cube.SlowTime)
	out := make([]int16, 0, packets*(len(header)+2*perPacket))

	data := ordered.Data()
	for p := range packets {
		out = append(out, header...)
		for _, v := range data[p*perPacket : (p+1)*perPacket] {
			out = append(out, int16(real(v)), int16(imag(v)))
		}
	}
	return out, nil
}
