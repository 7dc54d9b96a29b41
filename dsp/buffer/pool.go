package buffer

import "sync"

// Pool recycles line buffers between transform workers.
type Pool[T Sample] struct {
	pool   sync.Pool
	maxCap int
}

// NewPool returns a Pool. Buffers whose capacity exceeds maxCap samples are
// not retained by Put; maxCap <= 0 retains every buffer.
func NewPool[T Sample](maxCap int) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return &Buffer[T]{}
			},
		},
		maxCap: maxCap,
	}
}

// Get returns a zeroed Buffer of the requested length. Return it with Put.
func (p *Pool[T]) Get(length int) *Buffer[T] {
	b := p.pool.Get().(*Buffer[T])
	b.Resize(length)
	b.Zero()
	return b
}

// Put hands b back to the pool. b must not be used afterwards.
func (p *Pool[T]) Put(b *Buffer[T]) {
	if b == nil {
		return
	}
	if p.maxCap > 0 && cap(b.samples) > p.maxCap {
		return
	}
	p.pool.Put(b)
}
