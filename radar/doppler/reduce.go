package doppler

import (
	"fmt"
	"slices"

	"github.com/arvindsr33/mm-radar/dsp/spectrum"
	"github.com/arvindsr33/mm-radar/radar/cube"
	"github.com/cwbudde/algo-vecmath"
)

// ReduceMode selects how the channel axis is reduced.
type ReduceMode int

const (
	// ReduceNone keeps every channel and returns |x|.
	ReduceNone ReduceMode = iota
	// ReduceSelect returns |x| of channel 0.
	ReduceSelect
	// ReduceLogSum returns sum over channels of log_base(|x| + floor).
	ReduceLogSum
	// ReduceLogSelect returns log_base(|x| + floor) of channel 0.
	ReduceLogSelect
)

func (m ReduceMode) String() string {
	switch m {
	case ReduceNone:
		return "none"
	case ReduceSelect:
		return "select"
	case ReduceLogSum:
		return "log-sum"
	case ReduceLogSelect:
		return "log-select"
	default:
		return fmt.Sprintf("reduce(%d)", int(m))
	}
}

// Reduce converts c to real values according to mode. Every mode except
// ReduceNone drops the Channel axis.
func (p *Processor) Reduce(c *cube.Cube, mode ReduceMode) (*cube.Real, error) {
	switch mode {
	case ReduceNone:
		out, err := cube.New[float64](c.Axes(), c.Shape())
		if err != nil {
			return nil, err
		}
		spectrum.MagnitudeInto(out.Data(), c.Data())
		return out, nil

	case ReduceSelect, ReduceLogSelect:
		sel, err := cube.Select(c, cube.Channel, 0)
		if err != nil {
			return nil, fmt.Errorf("doppler: reduce %v: %w", mode, err)
		}
		out, err := cube.New[float64](sel.Axes(), sel.Shape())
		if err != nil {
			return nil, err
		}
		if mode == ReduceSelect {
			spectrum.MagnitudeInto(out.Data(), sel.Data())
		} else {
			spectrum.LogMagnitudeInto(out.Data(), sel.Data(), p.cfg.LogScale())
		}
		return out, nil

	case ReduceLogSum:
		return p.logSum(c)

	default:
		return nil, fmt.Errorf("%w: %d", ErrReduceMode, int(mode))
	}
}

// Accumulate reduces the channel axis with ReduceLogSum when the config
// accumulates channels and with ReduceSelect otherwise.
func (p *Processor) Accumulate(c *cube.Cube) (*cube.Real, error) {
	if p.cfg.AccumulateChannels {
		return p.Reduce(c, ReduceLogSum)
	}
	return p.Reduce(c, ReduceSelect)
}

// logSum moves Channel to the outermost axis so each receiver is one
// contiguous block, then adds the per-receiver log magnitudes.
func (p *Processor) logSum(c *cube.Cube) (*cube.Real, error) {
	if !c.Has(cube.Channel) || c.Rank() < 2 {
		return nil, fmt.Errorf("doppler: reduce %v: %w: need a channel axis and one other", ReduceLogSum, cube.ErrAxis)
	}

	rest := slices.DeleteFunc(c.Axes(), func(a cube.Axis) bool { return a == cube.Channel })
	ordered, err := cube.Permute(c, append([]cube.Axis{cube.Channel}, rest...)...)
	if err != nil {
		return nil, err
	}

	shape := ordered.Shape()[1:]
	out, err := cube.New[float64](rest, shape)
	if err != nil {
		return nil, err
	}

	block := out.Size()
	acc := out.Data()
	tmp := make([]float64, block)
	scale := p.cfg.LogScale()
	data := ordered.Data()

	for ch := range c.Len(cube.Channel) {
		spectrum.LogMagnitudeInto(tmp, data[ch*block:(ch+1)*block], scale)
		vecmath.AddBlockInPlace(acc, tmp)
	}
	return out, nil
}
