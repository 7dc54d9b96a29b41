package buffer

// Sample is the element type a Buffer can hold.
type Sample interface {
	~float64 | ~complex128
}

// Buffer holds one contiguous line gathered from a strided array.
type Buffer[T Sample] struct {
	samples []T
}

// New returns a zero-filled Buffer of the given length.
func New[T Sample](length int) *Buffer[T] {
	return &Buffer[T]{samples: make([]T, max(length, 0))}
}

// Samples returns the underlying slice.
func (b *Buffer[T]) Samples() []T {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer[T]) Len() int {
	return len(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Elements exposed by growing are zeroed.
func (b *Buffer[T]) Resize(n int) {
	n = max(n, 0)
	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]T, n)
		copy(s, b.samples)
		b.samples = s
	}
	if n > oldLen {
		clear(b.samples[oldLen:n])
	}
}

// Zero sets all samples to 0.
func (b *Buffer[T]) Zero() {
	clear(b.samples)
}

// Gather fills the buffer with src[base], src[base+stride], ... .
func (b *Buffer[T]) Gather(src []T, base, stride int) {
	if len(b.samples) == 0 {
		return
	}
	if stride == 1 {
		copy(b.samples, src[base:base+len(b.samples)])
		return
	}
	for i := range b.samples {
		b.samples[i] = src[base+i*stride]
	}
}

// Scatter writes the buffer to dst[base], dst[base+stride], ... .
func (b *Buffer[T]) Scatter(dst []T, base, stride int) {
	if len(b.samples) == 0 {
		return
	}
	if stride == 1 {
		copy(dst[base:base+len(b.samples)], b.samples)
		return
	}
	for i, v := range b.samples {
		dst[base+i*stride] = v
	}
}
