// Package pool provides dense, grow-only storage for one payload type,
// addressed directly by entity index.
package pool

import "github.com/mixecs/mix/internal/core/assert"

// Base is the type-erased view shared by every Pool so that pools of
// different payload types can live in one slice.
type Base interface {
	Resize(n int)
	Clear()
	Len() int
}

const (
	PageBits = 8
	PageSize = 1 << PageBits
	pageMask = PageSize - 1
)

// Pool stores T in fixed-size pages. Growing the pool appends pages and never
// moves a slot, so a pointer from Get stays valid for the life of the pool.
// Slots beyond the live population hold zero values or stale data; presence
// is tracked elsewhere.
type Pool[T any] struct {
	pages [][]T
	size  int
}

// New returns a pool with size zero-valued slots.
func New[T any](size int) *Pool[T] {
	p := &Pool[T]{}
	p.Resize(size)
	return p
}

// Resize grows the pool to at least n slots. It never shrinks.
func (p *Pool[T]) Resize(n int) {
	if n <= p.size {
		return
	}
	for len(p.pages)*PageSize < n {
		p.pages = append(p.pages, make([]T, PageSize))
	}
	p.size = n
}

func (p *Pool[T]) Len() int { return p.size }

func (p *Pool[T]) Empty() bool { return p.size == 0 }

func (p *Pool[T]) slot(i int) *T { return &p.pages[i>>PageBits][i&pageMask] }

// Get returns a pointer to slot i.
func (p *Pool[T]) Get(i int) *T {
	assert.That(i >= 0 && i < p.size, "pool: index %d out of range [0,%d)", i, p.size)
	return p.slot(i)
}

// Set overwrites slot i.
func (p *Pool[T]) Set(i int, v T) {
	assert.That(i >= 0 && i < p.size, "pool: index %d out of range [0,%d)", i, p.size)
	*p.slot(i) = v
}

// Add appends v. Event queues use this; component storage never does.
func (p *Pool[T]) Add(v T) {
	p.Resize(p.size + 1)
	*p.slot(p.size - 1) = v
}

// Clear zeroes the live slots and sets the size to 0. Pages are kept for reuse.
func (p *Pool[T]) Clear() {
	for i, page := range p.pages {
		if i*PageSize >= p.size {
			break
		}
		clear(page)
	}
	p.size = 0
}

// Values returns a copy of the pool contents.
func (p *Pool[T]) Values() []T {
	out := make([]T, p.size)
	for i := range out {
		out[i] = *p.slot(i)
	}
	return out
}
