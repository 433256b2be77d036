package pools

import (
	"sync"
)

// Slice size classes, in elements.
const (
	SmallSize  = 64
	MediumSize = 1024
	LargeSize  = 16384
	MaxPool    = 1 << 20 // Don't pool slices larger than this
)

// SlicePool pools slices of T by size class.
type SlicePool[T any] struct {
	small  sync.Pool // <= SmallSize elements
	medium sync.Pool // <= MediumSize elements
	large  sync.Pool // <= LargeSize elements
}

// NewSlicePool creates a new slice pool.
func NewSlicePool[T any]() *SlicePool[T] {
	newClass := func(size int) sync.Pool {
		return sync.Pool{
			New: func() any {
				s := make([]T, 0, size)
				return &s
			},
		}
	}
	return &SlicePool[T]{
		small:  newClass(SmallSize),
		medium: newClass(MediumSize),
		large:  newClass(LargeSize),
	}
}

func (p *SlicePool[T]) class(c int) *sync.Pool {
	switch {
	case c <= SmallSize:
		return &p.small
	case c <= MediumSize:
		return &p.medium
	case c <= LargeSize:
		return &p.large
	default:
		return nil
	}
}

// Get returns a zeroed slice of length size.
func (p *SlicePool[T]) Get(size int) []T {
	pool := p.class(size)
	if pool == nil {
		return make([]T, size)
	}

	sp, ok := pool.Get().(*[]T)
	if !ok || cap(*sp) < size {
		return make([]T, size)
	}
	s := (*sp)[:size]
	clear(s)
	return s
}

// Put returns a slice to the pool.
func (p *SlicePool[T]) Put(s []T) {
	c := cap(s)
	if c == 0 || c > MaxPool {
		return
	}

	// A slice goes back to the largest class it can fully serve.
	var pool *sync.Pool
	switch {
	case c >= LargeSize:
		pool = &p.large
	case c >= MediumSize:
		pool = &p.medium
	case c >= SmallSize:
		pool = &p.small
	default:
		return
	}

	s = s[:0]
	pool.Put(&s)
}

// Default global pools
var (
	defaultWordPool = NewSlicePool[uint64]()
	defaultNodePool = NewSlicePool[int32]()
)

// GetWords returns a zeroed uint64 slice from the default pool.
func GetWords(size int) []uint64 {
	return defaultWordPool.Get(size)
}

// PutWords returns a uint64 slice to the default pool.
func PutWords(s []uint64) {
	defaultWordPool.Put(s)
}

// GetNodes returns a zeroed int32 slice from the default pool.
func GetNodes(size int) []int32 {
	return defaultNodePool.Get(size)
}

// PutNodes returns an int32 slice to the default pool.
func PutNodes(s []int32) {
	defaultNodePool.Put(s)
}
