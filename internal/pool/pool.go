// Package pool provides a bucketed allocator for the activation arrays that
// back engine instances, so the evolutionary loop can construct and
// dispose millions of engines without handing the garbage collector a
// fresh slice per engine.
package pool

import "sync"

// Disposer is the optional capability an engine exposes when its backing
// storage came from a pooled allocator: Dispose returns it to the pool.
// Dispose must be called exactly once; calling it again, or using the
// engine afterward, is undefined behavior.
type Disposer interface {
	Dispose()
}

// ArrayPool hands out float64 slices sized to the caller's request, bucketed
// by size so that engines of a common shape (same totalNodeCount) reuse
// each other's backing arrays.
type ArrayPool struct {
	buckets sync.Map // int size -> *sync.Pool
}

// NewArrayPool returns an empty pool. The zero value is also usable; this
// constructor exists for symmetry with the rest of the package.
func NewArrayPool() *ArrayPool {
	return &ArrayPool{}
}

// Acquire returns a zeroed float64 slice of the requested size, drawn from
// the pool if a previously disposed slice of that size is available.
func (p *ArrayPool) Acquire(size int) []float64 {
	bucket, _ := p.buckets.LoadOrStore(size, &sync.Pool{
		New: func() any { return make([]float64, size) },
	})
	buf := bucket.(*sync.Pool).Get().([]float64)
	clear(buf)
	return buf
}

// Release returns buf to the bucket matching its length, making it
// available to a future Acquire of the same size. Releasing a slice whose
// size was never acquired from this pool is a silent no-op.
func (p *ArrayPool) Release(buf []float64) {
	bucket, ok := p.buckets.Load(len(buf))
	if !ok {
		return
	}
	bucket.(*sync.Pool).Put(buf)
}

// Handle binds a pooled slice to the pool it came from and implements
// Disposer. Engines that draw their activation storage through a Handle get
// Dispose for free instead of hand-rolling the pool call at every
// construction site.
type Handle struct {
	buf  []float64
	pool *ArrayPool
}

// AcquireHandle is Acquire plus the bookkeeping needed to implement Disposer.
func (p *ArrayPool) AcquireHandle(size int) *Handle {
	return &Handle{buf: p.Acquire(size), pool: p}
}

// Slice returns the backing array. It is valid until Dispose is called.
func (h *Handle) Slice() []float64 {
	return h.buf
}

// Dispose returns the backing array to its pool.
func (h *Handle) Dispose() {
	h.pool.Release(h.buf)
	h.buf = nil
}
