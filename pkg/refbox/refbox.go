// Package refbox implements the reference-counted box the shared wrappers
// build their lock and value handles from.
//
// A Box owns one payload and an optional release function. Retain and
// Release mutate the count atomically and are safe under concurrent use;
// the release function runs exactly once, on whichever Release drops the
// count to zero. The box synchronizes nothing but its own count — guarding
// access to the payload is the caller's job.
package refbox

import "sync/atomic"

// Box is an atomically reference-counted owner of a single payload.
type Box[T any] struct {
	refs    atomic.Int64
	payload T
	release func(T)
}

// New builds a box around payload with a count of one. A nil release
// function means the payload needs no teardown beyond garbage collection.
func New[T any](payload T, release func(T)) *Box[T] {
	b := &Box[T]{payload: payload, release: release}
	b.refs.Store(1)
	return b
}

// Retain adds an owner and returns the box for chaining. Retaining a box
// whose count already reached zero is a use-after-free and panics.
func (b *Box[T]) Retain() *Box[T] {
	if b.refs.Add(1) <= 1 {
		panic("refbox: retain after final release")
	}
	return b
}

// Release drops one owner. The owner that brings the count to zero runs the
// release function and gets true back; everyone else gets false. Releasing
// past zero panics.
func (b *Box[T]) Release() bool {
	n := b.refs.Add(-1)
	switch {
	case n > 0:
		return false
	case n == 0:
		if b.release != nil {
			b.release(b.payload)
		}
		return true
	default:
		panic("refbox: release past zero")
	}
}

// Get returns the payload without touching the count.
func (b *Box[T]) Get() T {
	return b.payload
}

// Refs reports the current owner count. Diagnostic only: the value may be
// stale by the time the caller looks at it.
func (b *Box[T]) Refs() int64 {
	return b.refs.Load()
}
