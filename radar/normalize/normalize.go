// Package normalize maps real-valued frames onto the 0..255 range consumed
// by image and video encoders.
package normalize

import (
	"image"
	"math"

	"github.com/arvindsr33/mm-radar/dsp/core"
	"github.com/arvindsr33/mm-radar/radar/doppler"
	"gonum.org/v1/gonum/floats"
)

// MidScale is written for every element of a frame without dynamic range.
const MidScale uint8 = 128

// Frame returns round(255 * clamp((x-min)/(max-min), 0, 1)) for every value,
// with min and max taken over values. A constant frame, or one whose range
// is not finite, maps to [MidScale].
func Frame(values []float64) []uint8 {
	out := make([]uint8, len(values))
	FrameInto(out, values)
	return out
}

// FrameInto is [Frame] writing into dst, which must be len(values) long.
func FrameInto(dst []uint8, values []float64) {
	if len(values) == 0 {
		return
	}

	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if !(span > 0) || !core.IsFinite(span) {
		for i := range dst[:len(values)] {
			dst[i] = MidScale
		}
		return
	}

	for i, v := range values {
		x := core.Clamp((v-lo)/span, 0, 1)
		if math.IsNaN(x) {
			x = 0
		}
		dst[i] = uint8(math.Round(255 * x))
	}
}

// Columns normalizes every column of img independently. img is indexed
// [row][column] and must be rectangular.
func Columns(img [][]float64) [][]uint8 {
	out := make([][]uint8, len(img))
	if len(img) == 0 {
		return out
	}

	cols := len(img[0])
	for r := range out {
		out[r] = make([]uint8, cols)
	}

	col := make([]float64, len(img))
	norm := make([]uint8, len(img))
	for c := range cols {
		for r := range img {
			col[r] = img[r][c]
		}
		FrameInto(norm, col)
		for r := range img {
			out[r][c] = norm[r]
		}
	}
	return out
}

// Image normalizes a range-Doppler map into a grayscale image with Doppler
// bins as rows and range bins as columns.
func Image(m doppler.Map) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Cols, m.Rows))
	norm := Frame(m.Data)
	for r := range m.Rows {
		copy(img.Pix[r*img.Stride:r*img.Stride+m.Cols], norm[r*m.Cols:(r+1)*m.Cols])
	}
	return img
}

// ColumnsImage is [Columns] rendered as a grayscale image with rows as
// Doppler bins and columns as frames.
func ColumnsImage(img [][]float64) *image.Gray {
	rows := Columns(img)
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	out := image.NewGray(image.Rect(0, 0, cols, len(rows)))
	for r, row := range rows {
		copy(out.Pix[r*out.Stride:r*out.Stride+cols], row)
	}
	return out
}
