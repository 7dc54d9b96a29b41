package cube

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/arvindsr33/mm-radar/dsp/buffer"
	"golang.org/x/sync/errgroup"
)

// LineFunc maps one input line to one output line. dst is zeroed on entry.
type LineFunc[T, U Element] func(dst []U, src []T) error

// ReduceFunc maps one input line to a single value.
type ReduceFunc[T, U Element] func(src []T) U

// maxPooledLine bounds the line buffers kept between transforms.
const maxPooledLine = 1 << 16

var (
	realLines    = buffer.NewPool[float64](maxPooledLine)
	complexLines = buffer.NewPool[complex128](maxPooledLine)
)

// getLine returns a zeroed pooled line buffer of length n.
func getLine[T Element](n int) *buffer.Buffer[T] {
	if p, ok := any(complexLines).(*buffer.Pool[T]); ok {
		return p.Get(n)
	}
	if p, ok := any(realLines).(*buffer.Pool[T]); ok {
		return p.Get(n)
	}
	return buffer.New[T](n)
}

func putLine[T Element](b *buffer.Buffer[T]) {
	if p, ok := any(complexLines).(*buffer.Pool[T]); ok {
		p.Put(b)
		return
	}
	if p, ok := any(realLines).(*buffer.Pool[T]); ok {
		p.Put(b)
	}
}

// lines enumerates the 1-D lines of a layout along one dimension.
type lines struct {
	dims    []int
	strides []int
	count   int
}

func linesAlong(shape, strides []int, skip int) lines {
	l := lines{count: 1}
	for d := range shape {
		if d == skip {
			continue
		}
		l.dims = append(l.dims, shape[d])
		l.strides = append(l.strides, strides[d])
		l.count *= shape[d]
	}
	return l
}

// base returns the offset of the first element of line i.
func (l lines) base(i int) int {
	off := 0
	for k := len(l.dims) - 1; k >= 0; k-- {
		off += (i % l.dims[k]) * l.strides[k]
		i /= l.dims[k]
	}
	return off
}

// chunks splits n lines into at most workers contiguous ranges.
func chunks(n, workers int) [][2]int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	if workers <= 0 {
		return nil
	}

	out := make([][2]int, 0, workers)
	step := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += step {
		out = append(out, [2]int{lo, min(lo+step, n)})
	}
	return out
}

// Transform applies fn to every line of src along axis, producing an array
// with the same axes where axis has length outLen. Lines are processed by up
// to workers goroutines; workers <= 0 uses GOMAXPROCS.
func Transform[T, U Element](src *Array[T], axis Axis, outLen, workers int, fn LineFunc[T, U]) (*Array[U], error) {
	d, err := src.dim(axis)
	if err != nil {
		return nil, err
	}
	if outLen < 0 {
		return nil, fmt.Errorf("%w: output length %d", ErrShape, outLen)
	}

	shape := slices.Clone(src.shape)
	shape[d] = outLen
	dst, err := New[U](src.axes, shape)
	if err != nil {
		return nil, err
	}

	inLines := linesAlong(src.shape, src.strides, d)
	outLines := linesAlong(dst.shape, dst.strides, d)
	inLen, inStride, outStride := src.shape[d], src.strides[d], dst.strides[d]

	if outLen == 0 {
		return dst, nil
	}

	var g errgroup.Group
	for _, c := range chunks(inLines.count, workers) {
		g.Go(func() error {
			in, out := getLine[T](inLen), getLine[U](outLen)
			defer putLine(in)
			defer putLine(out)

			for line := c[0]; line < c[1]; line++ {
				in.Gather(src.data, inLines.base(line), inStride)
				out.Zero()
				if err := fn(out.Samples(), in.Samples()); err != nil {
					return fmt.Errorf("cube: %v line %d: %w", axis, line, err)
				}
				out.Scatter(dst.data, outLines.base(line), outStride)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// Collapse reduces every line of src along axis to one value and drops the
// axis. Reducing the only axis of a rank-1 array is an error.
func Collapse[T, U Element](src *Array[T], axis Axis, workers int, fn ReduceFunc[T, U]) (*Array[U], error) {
	d, err := src.dim(axis)
	if err != nil {
		return nil, err
	}
	if src.Rank() == 1 {
		return nil, fmt.Errorf("%w: cannot drop the only axis %v", ErrAxis, axis)
	}

	dst, err := New[U](slices.Delete(slices.Clone(src.axes), d, d+1), slices.Delete(slices.Clone(src.shape), d, d+1))
	if err != nil {
		return nil, err
	}

	// Lines of src along axis enumerate dst elements in row-major order.
	inLines := linesAlong(src.shape, src.strides, d)
	inLen, inStride := src.shape[d], src.strides[d]

	var g errgroup.Group
	for _, c := range chunks(inLines.count, workers) {
		g.Go(func() error {
			in := getLine[T](inLen)
			defer putLine(in)
			for line := c[0]; line < c[1]; line++ {
				in.Gather(src.data, inLines.base(line), inStride)
				dst.data[line] = fn(in.Samples())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// Sum adds all values of a line.
func Sum[T Element](line []T) T {
	var s T
	for _, v := range line {
		s += v
	}
	return s
}

// SumAxis sums src along axis and drops it.
func SumAxis[T Element](src *Array[T], axis Axis) (*Array[T], error) {
	return Collapse(src, axis, 1, Sum[T])
}

// Map applies fn elementwise.
func Map[T, U Element](src *Array[T], fn func(T) U) *Array[U] {
	out := make([]U, len(src.data))
	for i, v := range src.data {
		out[i] = fn(v)
	}
	return build(src.axes, src.shape, out)
}

// Select takes index i along axis and drops the axis.
func Select[T Element](src *Array[T], axis Axis, i int) (*Array[T], error) {
	d, err := src.dim(axis)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= src.shape[d] {
		return nil, fmt.Errorf("%w: %v index %d of %d", ErrIndex, axis, i, src.shape[d])
	}

	return Collapse(src, axis, 1, func(line []T) T { return line[i] })
}

// Permute returns a contiguous copy of src with its axes in the given order.
// order must be a permutation of src's axes.
func Permute[T Element](src *Array[T], order ...Axis) (*Array[T], error) {
	if len(order) != src.Rank() {
		return nil, fmt.Errorf("%w: permutation %v of %v", ErrAxis, order, src.axes)
	}

	shape := make([]int, len(order))
	srcStrides := make([]int, len(order))
	for k, ax := range order {
		d, err := src.dim(ax)
		if err != nil {
			return nil, err
		}
		shape[k] = src.shape[d]
		srcStrides[k] = src.strides[d]
	}

	dst, err := New[T](order, shape)
	if err != nil {
		return nil, err
	}
	if dst.Size() == 0 {
		return dst, nil
	}

	idx := make([]int, len(shape))
	off := 0
	for i := range dst.data {
		dst.data[i] = src.data[off]

		// Advance the odometer over dst's shape, tracking the src offset.
		for k := len(idx) - 1; k >= 0; k-- {
			idx[k]++
			off += srcStrides[k]
			if idx[k] < shape[k] {
				break
			}
			off -= idx[k] * srcStrides[k]
			idx[k] = 0
		}
	}

	return dst, nil
}

// Line copies the line along axis that passes through the given fixed
// indices (one per other axis, in axis order) into a new slice.
func Line[T Element](src *Array[T], axis Axis, fixed ...int) ([]T, error) {
	d, err := src.dim(axis)
	if err != nil {
		return nil, err
	}
	if len(fixed) != src.Rank()-1 {
		return nil, fmt.Errorf("%w: %d fixed indices for rank %d", ErrIndex, len(fixed), src.Rank())
	}

	idx := slices.Insert(slices.Clone(fixed), d, 0)
	off, err := src.Offset(idx...)
	if err != nil && src.shape[d] > 0 {
		return nil, err
	}

	out := make([]T, src.shape[d])
	for i := range out {
		out[i] = src.data[off+i*src.strides[d]]
	}
	return out, nil
}
