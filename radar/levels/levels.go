// Package levels measures raw ADC levels per receive channel while a session
// streams past, to spot DC offsets, I/Q imbalance and clipping before the
// Doppler stages.
package levels

import (
	"fmt"
	"math"

	"github.com/arvindsr33/mm-radar/radar/cube"
)

// FullScale is the largest magnitude a signed 16-bit ADC word can take.
const FullScale = math.MaxInt16

// Level summarises one receive channel.
type Level struct {
	Channel int
	Samples int
	MeanI   float64
	MeanQ   float64
	StdI    float64
	StdQ    float64
	// Peak is the largest |I| or |Q|.
	Peak float64
	// Clipped counts samples with |I| or |Q| at or beyond FullScale.
	Clipped int
	// ImbalancedB is 20*log10(StdI/StdQ). Zero when either part is constant.
	ImbalancedB float64
}

// moments is a Welford accumulator for one real sequence.
type moments struct {
	n    int
	mean float64
	m2   float64
}

func (m *moments) add(x float64) {
	m.n++
	delta := x - m.mean
	m.mean += delta / float64(m.n)
	m.m2 += delta * (x - m.mean)
}

func (m *moments) std() float64 {
	if m.n == 0 {
		return 0
	}
	return math.Sqrt(m.m2 / float64(m.n))
}

type channel struct {
	i, q    moments
	peak    float64
	clipped int
}

// Meter accumulates levels across cubes. It is not safe for concurrent use.
type Meter struct {
	channels []channel
}

// NewMeter returns an empty Meter.
func NewMeter() *Meter { return &Meter{} }

// Update adds every sample of c, which must have a Channel axis.
func (m *Meter) Update(c *cube.Cube) error {
	if !c.Has(cube.Channel) {
		return fmt.Errorf("levels: %w: cube has no channel axis", cube.ErrAxis)
	}

	n := c.Len(cube.Channel)
	if len(m.channels) == 0 {
		m.channels = make([]channel, n)
	} else if len(m.channels) != n {
		return fmt.Errorf("levels: %w: %d channels, meter has %d", cube.ErrShape, n, len(m.channels))
	}

	for rx := range n {
		sel, err := cube.Select(c, cube.Channel, rx)
		if err != nil {
			return err
		}
		ch := &m.channels[rx]
		for _, v := range sel.Data() {
			re, im := real(v), imag(v)
			ch.i.add(re)
			ch.q.add(im)

			p := max(math.Abs(re), math.Abs(im))
			ch.peak = max(ch.peak, p)
			if p >= FullScale {
				ch.clipped++
			}
		}
	}
	return nil
}

// Result returns one Level per channel in channel order.
func (m *Meter) Result() []Level {
	out := make([]Level, len(m.channels))
	for rx, ch := range m.channels {
		l := Level{
			Channel: rx,
			Samples: ch.i.n,
			MeanI:   ch.i.mean,
			MeanQ:   ch.q.mean,
			StdI:    ch.i.std(),
			StdQ:    ch.q.std(),
			Peak:    ch.peak,
			Clipped: ch.clipped,
		}
		if l.StdI > 0 && l.StdQ > 0 {
			l.ImbalancedB = 20 * math.Log10(l.StdI/l.StdQ)
		}
		out[rx] = l
	}
	return out
}

// Reset clears the meter.
func (m *Meter) Reset() { m.channels = nil }
