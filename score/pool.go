// SPDX-License-Identifier: MIT

package score

import (
	"sync"
	"sync/atomic"
)

// buffers is the recyclable part of a Grid.
type buffers struct {
	data  []int
	ready []atomic.Bool
}

var bufPool = sync.Pool{New: func() any { return &buffers{} }}

// acquireBuffers returns zeroed storage for n cells, reusing pooled capacity.
func acquireBuffers(n int) *buffers {
	b := bufPool.Get().(*buffers)
	if cap(b.data) < n {
		b.data = make([]int, n)
		b.ready = make([]atomic.Bool, n)

		return b
	}
	b.data = b.data[:n]
	b.ready = b.ready[:n]
	for idx := range b.data {
		b.data[idx] = 0
		b.ready[idx].Store(false)
	}

	return b
}

func releaseBuffers(b *buffers) {
	bufPool.Put(b)
}
