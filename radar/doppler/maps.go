package doppler

import (
	"fmt"

	"github.com/arvindsr33/mm-radar/radar/cube"
	"go.uber.org/zap"
)

// Map is one range-Doppler frame laid out row-major with Doppler bins as
// rows (zero Doppler at Rows/2) and range bins as columns.
type Map struct {
	Frame int
	Rows  int
	Cols  int
	Data  []float64
}

// At returns the value at Doppler bin r and range bin c.
func (m Map) At(r, c int) float64 { return m.Data[r*m.Cols+c] }

// Row returns Doppler bin r across all range bins.
func (m Map) Row(r int) []float64 { return m.Data[r*m.Cols : (r+1)*m.Cols] }

// RangeDoppler runs the range FFT, the Doppler FFT along slow-time and the
// configured channel reduction, returning a real array with axes
// (FastTime, SlowTime, Frame).
func (p *Processor) RangeDoppler(c *cube.Cube) (*cube.Real, error) {
	r, err := p.Range(c)
	if err != nil {
		return nil, err
	}
	d, err := p.Doppler(r, cube.SlowTime)
	if err != nil {
		return nil, err
	}
	return p.Accumulate(d)
}

// RangeDopplerMaps returns one [Map] per frame of c, in frame order.
func (p *Processor) RangeDopplerMaps(c *cube.Cube) ([]Map, error) {
	red, err := p.RangeDoppler(c)
	if err != nil {
		return nil, err
	}

	ordered, err := cube.Permute(red, cube.Frame, cube.SlowTime, cube.FastTime)
	if err != nil {
		return nil, fmt.Errorf("doppler: range-doppler maps: %w", err)
	}

	frames := ordered.Len(cube.Frame)
	rows, cols := ordered.Len(cube.SlowTime), ordered.Len(cube.FastTime)
	data := ordered.Data()

	maps := make([]Map, frames)
	for f := range maps {
		maps[f] = Map{
			Frame: f,
			Rows:  rows,
			Cols:  cols,
			Data:  data[f*rows*cols : (f+1)*rows*cols],
		}
	}

	p.logger.Debug("range-doppler maps", zap.Int("frames", frames), zap.Int("rows", rows), zap.Int("cols", cols))
	return maps, nil
}
