package cube

import (
	"fmt"
	"slices"
)

// Element is the set of value types an [Array] may hold.
type Element interface {
	~float64 | ~complex128
}

// Array is a dense row-major N-dimensional array with named axes.
type Array[T Element] struct {
	axes    []Axis
	shape   []int
	strides []int
	data    []T
}

// Cube holds complex baseband or spectral samples.
type Cube = Array[complex128]

// Real holds magnitudes, log magnitudes or powers.
type Real = Array[float64]

// New allocates a zeroed array. Dimensions may be zero.
func New[T Element](axes []Axis, shape []int) (*Array[T], error) {
	size, err := checkLayout(axes, shape)
	if err != nil {
		return nil, err
	}
	return build(axes, shape, make([]T, size)), nil
}

// FromData wraps data, which must hold exactly prod(shape) elements laid out
// row-major in axes order. The array takes ownership of data.
func FromData[T Element](axes []Axis, shape []int, data []T) (*Array[T], error) {
	size, err := checkLayout(axes, shape)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrShape, len(data), shape)
	}
	return build(axes, shape, data), nil
}

func checkLayout(axes []Axis, shape []int) (int, error) {
	if len(axes) != len(shape) || len(axes) == 0 {
		return 0, fmt.Errorf("%w: %d axes for %d dimensions", ErrShape, len(axes), len(shape))
	}

	size := 1
	for i, a := range axes {
		if a < FastTime || a > Frame {
			return 0, fmt.Errorf("%w: %v", ErrAxis, a)
		}
		if slices.Index(axes, a) != i {
			return 0, fmt.Errorf("%w: duplicate %v", ErrAxis, a)
		}
		if shape[i] < 0 {
			return 0, fmt.Errorf("%w: %v has length %d", ErrShape, a, shape[i])
		}
		size *= shape[i]
	}

	return size, nil
}

func build[T Element](axes []Axis, shape []int, data []T) *Array[T] {
	a := &Array[T]{
		axes:    slices.Clone(axes),
		shape:   slices.Clone(shape),
		strides: make([]int, len(shape)),
		data:    data,
	}

	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		a.strides[i] = stride
		stride *= shape[i]
	}

	return a
}

// Axes returns the axis order of the array.
func (a *Array[T]) Axes() []Axis { return slices.Clone(a.axes) }

// Shape returns the dimension lengths in axis order.
func (a *Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Rank returns the number of axes.
func (a *Array[T]) Rank() int { return len(a.axes) }

// Size returns the total number of elements.
func (a *Array[T]) Size() int { return len(a.data) }

// Data returns the backing slice. Writes through it are visible in the array.
func (a *Array[T]) Data() []T { return a.data }

// Has reports whether the array carries axis.
func (a *Array[T]) Has(axis Axis) bool { return slices.Contains(a.axes, axis) }

// Len returns the length of axis, or 0 when the array does not carry it.
func (a *Array[T]) Len(axis Axis) int {
	if d := slices.Index(a.axes, axis); d >= 0 {
		return a.shape[d]
	}
	return 0
}

func (a *Array[T]) dim(axis Axis) (int, error) {
	d := slices.Index(a.axes, axis)
	if d < 0 {
		return 0, fmt.Errorf("%w: %v not in %v", ErrAxis, axis, a.axes)
	}
	return d, nil
}

// Offset returns the linear offset of the element at idx, given in axis order.
func (a *Array[T]) Offset(idx ...int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d indices for rank %d", ErrIndex, len(idx), len(a.shape))
	}

	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			return 0, fmt.Errorf("%w: %v index %d of %d", ErrIndex, a.axes[d], i, a.shape[d])
		}
		off += i * a.strides[d]
	}

	return off, nil
}

// At returns the element at idx, given in axis order. It panics on a bad index.
func (a *Array[T]) At(idx ...int) T {
	off, err := a.Offset(idx...)
	if err != nil {
		panic(err)
	}
	return a.data[off]
}

// Set stores v at idx, given in axis order. It panics on a bad index.
func (a *Array[T]) Set(v T, idx ...int) {
	off, err := a.Offset(idx...)
	if err != nil {
		panic(err)
	}
	a.data[off] = v
}

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	return build(a.axes, a.shape, slices.Clone(a.data))
}

// Equal reports whether b has the same axes, shape and elements.
func (a *Array[T]) Equal(b *Array[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.Equal(a.axes, b.axes) && slices.Equal(a.shape, b.shape) && slices.Equal(a.data, b.data)
}

func (a *Array[T]) String() string {
	parts := make([]string, len(a.axes))
	for i, ax := range a.axes {
		parts[i] = fmt.Sprintf("%v=%d", ax, a.shape[i])
	}
	return fmt.Sprintf("cube%v", parts)
}
