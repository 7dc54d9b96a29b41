package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/arvindsr33/mm-radar/dsp/spectrum"
	"github.com/arvindsr33/mm-radar/radar/microdoppler"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Spectrogram is a time-Doppler image with its axes.
type Spectrogram struct {
	// Image is indexed [bin][column].
	Image [][]float64
	Times []float64
	Bins  []float64
	Units microdoppler.Units
}

// Dims implements plotter.GridXYZ.
func (s Spectrogram) Dims() (c, r int) {
	if len(s.Image) == 0 {
		return 0, 0
	}
	return len(s.Image[0]), len(s.Image)
}

// Z implements plotter.GridXYZ.
func (s Spectrogram) Z(c, r int) float64 { return s.Image[r][c] }

// X implements plotter.GridXYZ.
func (s Spectrogram) X(c int) float64 { return s.Times[c] }

// Y implements plotter.GridXYZ. Frequencies are shown in kHz.
func (s Spectrogram) Y(r int) float64 {
	if s.Units == microdoppler.UnitsFrequency {
		return s.Bins[r] / 1e3
	}
	return s.Bins[r]
}

// PeakTrack returns the axis value of the strongest bin of every column.
func (s Spectrogram) PeakTrack() plotter.XYs {
	cols, rows := s.Dims()
	pts := make(plotter.XYs, cols)
	col := make([]float64, rows)
	for c := range cols {
		for r := range rows {
			col[r] = s.Image[r][c]
		}
		pts[c] = plotter.XY{X: s.X(c), Y: s.Y(spectrum.PeakIndex(col))}
	}
	return pts
}

func (s Spectrogram) validate() error {
	cols, rows := s.Dims()
	if cols < 2 || rows < 2 {
		return fmt.Errorf("render: spectrogram needs at least 2x2 cells, have %dx%d", rows, cols)
	}
	if len(s.Times) != cols || len(s.Bins) != rows {
		return fmt.Errorf("render: axis lengths %d/%d do not match %dx%d image", len(s.Bins), len(s.Times), rows, cols)
	}
	return nil
}

// Heatmap draws s with the peak Doppler track overlaid and saves it; the
// format follows the extension of path.
func Heatmap(path, title string, s Spectrogram) error {
	if err := s.validate(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time [s]"
	if s.Units == microdoppler.UnitsFrequency {
		p.Y.Label.Text = "frequency [kHz]"
	} else {
		p.Y.Label.Text = "velocity [m/s]"
	}

	hm := plotter.NewHeatMap(s, palette.Heat(256, 1))
	p.Add(hm)

	track, err := plotter.NewLine(s.PeakTrack())
	if err != nil {
		return fmt.Errorf("render: peak track: %w", err)
	}
	track.Width = vg.Points(1)
	p.Add(track)

	cols, rows := s.Dims()
	width := max(6*vg.Inch, vg.Length(cols)*vg.Points(2))
	height := max(4*vg.Inch, vg.Length(rows)*vg.Points(2))
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes img one row per Doppler bin, one column per frame.
func WriteCSV(w io.Writer, img [][]float64) error {
	return WriteTable(w, nil, img)
}

// WriteTable writes rows as CSV, preceded by header when it is not empty.
func WriteTable(w io.Writer, header []string, rows [][]float64) error {
	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("render: csv: %w", err)
		}
	}

	record := []string{}
	for _, row := range rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("render: csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("render: csv: %w", err)
	}
	return nil
}
