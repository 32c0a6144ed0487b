// Package bufpools implements pools of byte buffers bucketed by
// capacity, for scratch space whose contents do not escape the caller.
package bufpools

import (
	"math/bits"
	"sync"
)

const (
	minPooledShift = 12 // minimum shift size of buffer to pool
	numPools       = bits.UintSize - minPooledShift
)

// You cannot put a []byte into a sync.Pool without allocating a slice
// header every time, so a second pool caches the headers themselves.
var sliceHeaderPool = sync.Pool{New: func() any { return new([]byte) }}

// bufferPools is a list of buffer pools, where pool index i manages
// buffers of capacity within [1<<(minPooledShift+i) : 2<<(minPooledShift+i)).
var bufferPools [numPools]sync.Pool

// Get acquires an empty buffer with enough capacity to hold n bytes.
// The unused buffer content is not guaranteed to be zeroed.
func Get(n int) []byte {
	if n < 1<<minPooledShift {
		n = 1 << minPooledShift
	}
	shift := bits.Len(uint(n - 1))
	if p, _ := bufferPools[shift-minPooledShift].Get().(*[]byte); p != nil {
		b := (*p)[:0]
		*p = nil
		sliceHeaderPool.Put(p)
		return b
	}
	return make([]byte, 0, 1<<shift)
}

// Put releases a buffer back to the pools.
// The slice need not be originally retrieved by Get,
// but the caller must relinquish ownership of the slice.
func Put(b []byte) {
	if cap(b) < 1<<minPooledShift {
		return
	}
	p := sliceHeaderPool.Get().(*[]byte)
	*p = b
	shift := bits.Len(uint(cap(b)) - 1)
	bufferPools[shift-minPooledShift].Put(p)
}
