package geoimage

import (
	"sync"

	"github.com/paulmach/orb"
)

// Pools for the coordinate grids built on every reprojection.

const (
	smallGridSize = 256 * 256   // a 256x256 tile
	largeGridSize = 1024 * 1024 // a 1024x1024 image
)

// slicePool pools slices in two size classes. Larger requests are
// allocated directly and never pooled.
type slicePool[T any] struct {
	small sync.Pool
	large sync.Pool
}

func newSlicePool[T any]() *slicePool[T] {
	return &slicePool[T]{
		small: sync.Pool{
			New: func() any {
				buf := make([]T, smallGridSize)
				return &buf
			},
		},
		large: sync.Pool{
			New: func() any {
				buf := make([]T, largeGridSize)
				return &buf
			},
		},
	}
}

// get returns a slice of length n. Its contents are not cleared.
func (p *slicePool[T]) get(n int) []T {
	if n <= smallGridSize {
		bufPtr := p.small.Get().(*[]T)
		return (*bufPtr)[:n]
	}
	if n <= largeGridSize {
		bufPtr := p.large.Get().(*[]T)
		return (*bufPtr)[:n]
	}
	return make([]T, n)
}

// put returns buf to the pool. buf must not be used afterwards.
func (p *slicePool[T]) put(buf []T) {
	c := cap(buf)
	buf = buf[:c]
	switch c {
	case smallGridSize:
		p.small.Put(&buf)
	case largeGridSize:
		p.large.Put(&buf)
	}
}

var (
	pointPool = newSlicePool[orb.Point]()
	floatPool = newSlicePool[float64]()
)
