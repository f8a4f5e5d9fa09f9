// Package scratch manages reusable float64 work arrays for the convolution
// kernels: a size-classed Pool shared process-wide and per-goroutine Arenas
// that hand their buffers back to the pool in one Cleanup call.
package scratch

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

// Pool sizing constants.
const (
	// MaxPooledSize is the largest array length the pool retains.
	// Larger requests are always freshly allocated and never cached.
	MaxPooledSize = 1024

	// DefaultMaxPerSize caps how many arrays one size class keeps.
	DefaultMaxPerSize = 16

	// numSizeClasses covers lengths 1, 2, 4, ..., MaxPooledSize.
	numSizeClasses = 11
)

// Allocator hands out zero-filled scratch arrays.
// Both Pool and Arena implement it so kernels do not care which one backs them.
type Allocator interface {
	Borrow(size int) []float64
	Release(buf []float64)
}

// PoolStats reports cumulative pool activity.
type PoolStats struct {
	Hits     uint64 // Borrow served from a cached array
	Misses   uint64 // Borrow that had to allocate
	Releases uint64 // arrays accepted back into the pool
	Drops    uint64 // arrays rejected (oversized, odd capacity, class full, duplicate)
}

// Pool is a concurrency-safe cache of float64 arrays bucketed by
// power-of-two capacity. Borrowed arrays are always zero-filled.
type Pool struct {
	mu         sync.Mutex
	classes    [numSizeClasses][][]float64
	maxPerSize int

	hits     atomic.Uint64
	misses   atomic.Uint64
	releases atomic.Uint64
	drops    atomic.Uint64
}

// Default is the process-wide pool used when callers do not supply one.
var Default = NewPool(DefaultMaxPerSize)

// NewPool creates a pool keeping at most maxPerSize arrays per size class.
// A non-positive maxPerSize selects DefaultMaxPerSize.
func NewPool(maxPerSize int) *Pool {
	if maxPerSize <= 0 {
		maxPerSize = DefaultMaxPerSize
	}
	return &Pool{maxPerSize: maxPerSize}
}

// sizeClass returns the bucket index for a length in [1, MaxPooledSize].
// Bucket i holds arrays of capacity 1<<i.
func sizeClass(size int) int {
	return bits.Len(uint(size - 1))
}

// Borrow returns a zero-filled array of length size.
// The array's capacity is the next power of two when size fits the pool.
func (p *Pool) Borrow(size int) []float64 {
	if size <= 0 {
		return []float64{}
	}
	if size > MaxPooledSize {
		p.misses.Add(1)
		return make([]float64, size)
	}

	class := sizeClass(size)
	p.mu.Lock()
	bucket := p.classes[class]
	var buf []float64
	if n := len(bucket); n > 0 {
		buf = bucket[n-1]
		bucket[n-1] = nil
		p.classes[class] = bucket[:n-1]
	}
	p.mu.Unlock()

	if buf == nil {
		p.misses.Add(1)
		return make([]float64, size, 1<<class)
	}
	p.hits.Add(1)
	buf = buf[:size]
	clear(buf)
	return buf
}

// Release returns buf to the pool. Nil, oversized and non power-of-two
// capacity arrays are ignored, as are arrays already held by the pool.
func (p *Pool) Release(buf []float64) {
	if buf == nil {
		return
	}
	c := cap(buf)
	if c == 0 || c > MaxPooledSize || c&(c-1) != 0 {
		p.drops.Add(1)
		return
	}

	full := buf[:c]
	class := sizeClass(c)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.classes[class]
	if len(bucket) >= p.maxPerSize {
		p.drops.Add(1)
		return
	}
	for _, held := range bucket {
		if &held[0] == &full[0] {
			p.drops.Add(1)
			return
		}
	}
	p.classes[class] = append(bucket, full)
	p.releases.Add(1)
}

// Len reports how many arrays are cached for the size class serving size.
func (p *Pool) Len(size int) int {
	if size <= 0 || size > MaxPooledSize {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.classes[sizeClass(size)])
}

// Clear drops every cached array.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.classes {
		clear(p.classes[i])
		p.classes[i] = nil
	}
}

// MaxPerSize returns the per-class capacity limit.
func (p *Pool) MaxPerSize() int {
	return p.maxPerSize
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Hits:     p.hits.Load(),
		Misses:   p.misses.Load(),
		Releases: p.releases.Load(),
		Drops:    p.drops.Load(),
	}
}
