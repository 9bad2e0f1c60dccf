package guarded

import (
	"github.com/go-faster/errors"

	"lockbox/pkg/locking"
)

// Unique owns exactly one value behind exactly one lock. The lock is
// created with the wrapper and never replaced or nil, so explicit
// Lock/Unlock bracketing is always meaningful, even on an empty wrapper.
//
// Unique has no copy operation. Use the pointer form everywhere and
// transfer ownership with [UniqueFrom] or [Unique.TakeFrom]; the embedded
// noCopy makes accidental struct copies visible to go vet.
type Unique[T any] struct {
	_       noCopy
	lk      locking.Locker
	value   *T
	release func(*T)
}

// NewUnique wraps v behind a fresh lock. A nil v builds an empty wrapper.
func NewUnique[T any](v *T, opts ...Option) *Unique[T] {
	return NewUniqueFunc(v, nil, opts...)
}

// NewUniqueFunc wraps v with a custom release function, invoked whenever
// ownership of a value ends inside the wrapper (Reset, TakeFrom over an
// owned value, Close). A nil release means the value needs no teardown
// beyond garbage collection.
func NewUniqueFunc[T any](v *T, release func(*T), opts ...Option) *Unique[T] {
	o := buildOptions(opts)
	return &Unique[T]{
		lk:      o.newLock(),
		value:   v,
		release: release,
	}
}

// UniqueFrom move-constructs a wrapper from src: src's lock is held while
// the value and release function transfer, so no goroutine can observe a
// half-moved state. src is left empty, with its own lock and release
// function intact.
func UniqueFrom[T any](src *Unique[T], opts ...Option) *Unique[T] {
	dst := NewUniqueFunc[T](nil, nil, opts...)
	src.lk.Lock()
	dst.value, dst.release = src.value, src.release
	src.value = nil
	src.lk.Unlock()
	return dst
}

// TakeFrom move-assigns src's value into u. Both locks are taken as one
// atomic step, u's previously owned value is released through its release
// function, and src is left empty. u.TakeFrom(u) is a no-op.
func (u *Unique[T]) TakeFrom(src *Unique[T]) {
	if u == src {
		return
	}
	locking.AcquireAll(u.lk, src.lk)
	u.releaseValueLocked()
	u.value, u.release = src.value, src.release
	src.value = nil
	locking.ReleaseAll(u.lk, src.lk)
}

// Get returns the raw value view without synchronization. It is safe only
// inside an explicit Lock/Unlock bracket; the locked accessors use it
// internally.
func (u *Unique[T]) Get() *T {
	return u.value
}

// Detach unbinds the managed value and returns it; the wrapper is left
// empty and the caller assumes ownership, release function not invoked.
func (u *Unique[T]) Detach() *T {
	u.lk.Lock()
	v := u.value
	u.value = nil
	u.lk.Unlock()
	return v
}

// Reset releases the currently owned value and adopts v; nil leaves the
// wrapper empty. The wrapper's lock and release function are unchanged —
// a Unique has no family to detach from.
func (u *Unique[T]) Reset(v *T) {
	u.lk.Lock()
	u.releaseValueLocked()
	u.value = v
	u.lk.Unlock()
}

// HasValue reports, under the lock, whether a value is owned. It is also
// the nil-literal comparison: w.HasValue() == false is w == nil in spirit.
func (u *Unique[T]) HasValue() bool {
	u.lk.Lock()
	ok := u.value != nil
	u.lk.Unlock()
	return ok
}

// Borrow acquires the lock and returns the accessor holding it. The caller
// must Release the accessor at the end of the enclosing statement block.
func (u *Unique[T]) Borrow() *Access[T] {
	u.lk.Lock()
	return newAccess(u.value, u.lk.Unlock)
}

// Update runs fn on the managed value under the lock: the execute-around
// form of Borrow for single-step mutations. An empty wrapper yields the
// accessor's null-access error under the default policy.
func (u *Unique[T]) Update(fn func(*T) error) error {
	a := u.Borrow()
	defer a.Release()
	v, err := a.Value()
	if err != nil {
		return err
	}
	if err := fn(v); err != nil {
		return errors.Wrap(err, "update")
	}
	return nil
}

// Lock blocks until the wrapper's lock is held. Together with Unlock it
// brackets multi-step sequences that must not interleave; the locked
// accessors protect only a single access each.
func (u *Unique[T]) Lock() { u.lk.Lock() }

// Unlock releases the wrapper's lock.
func (u *Unique[T]) Unlock() { u.lk.Unlock() }

// TryLock attempts the lock without blocking.
func (u *Unique[T]) TryLock() bool { return u.lk.TryLock() }

// Close releases the owned value through its release function and empties
// the wrapper. Idempotent. The wrapper remains usable (it keeps its lock);
// Close is the deterministic stand-in for destruction.
func (u *Unique[T]) Close() {
	u.lk.Lock()
	u.releaseValueLocked()
	u.lk.Unlock()
}

func (u *Unique[T]) releaseValueLocked() {
	if u.value != nil && u.release != nil {
		u.release(u.value)
	}
	u.value = nil
}
