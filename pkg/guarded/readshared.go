package guarded

import (
	"github.com/go-faster/errors"

	"lockbox/pkg/locking"
	"lockbox/pkg/refbox"
)

// ReadShared is the read-only-typed member of a shared family, produced by
// [Shared.ReadOnly] or [Shared.IntoReadOnly]. Its surface only ever reads
// the managed value; mutating through a view obtained from it is a
// contract violation the type system cannot see.
//
// When the family lock supports shared locking, every access through a
// ReadShared takes the lock in shared mode, so read-only members proceed in
// parallel with each other while any exclusive access excludes them all.
// With an exclusive-only lock the wrapper behaves identically but takes the
// exclusive lock — correct, just without the parallelism.
type ReadShared[T any] struct {
	_    noCopy
	lock *refbox.Box[locking.Locker]
	data *refbox.Box[*T]

	// rw is the family lock's shared-mode view, probed once at projection
	// time; nil means the lock is exclusive-only.
	rw locking.RWLocker
}

func newReadShared[T any](lock *refbox.Box[locking.Locker], data *refbox.Box[*T]) *ReadShared[T] {
	r := &ReadShared[T]{lock: lock, data: data}
	if rw, ok := locking.AsRW(lock.Get()); ok {
		r.rw = rw
	}
	return r
}

// Clone copy-constructs another read-only member of the family.
func (r *ReadShared[T]) Clone() *ReadShared[T] {
	r.RLock()
	out := newReadShared(r.lock.Retain(), r.data.Retain())
	r.RUnlock()
	return out
}

// Get returns the raw value view without synchronization. Safe only inside
// an explicit lock bracket (shared or exclusive).
func (r *ReadShared[T]) Get() *T {
	return r.data.Get()
}

// HasValue reports, under a shared hold of the family lock, whether a value
// is owned.
func (r *ReadShared[T]) HasValue() bool {
	r.RLock()
	ok := r.data.Get() != nil
	r.RUnlock()
	return ok
}

// Borrow acquires the family lock — in shared mode when the lock supports
// it — and returns the accessor holding it.
func (r *ReadShared[T]) Borrow() *Access[T] {
	if r.rw != nil {
		r.rw.RLock()
		return newAccess(r.data.Get(), r.rw.RUnlock)
	}
	lk := r.lock.Get()
	lk.Lock()
	return newAccess(r.data.Get(), lk.Unlock)
}

// View runs fn on a read-only view of the managed value, under a shared
// hold when the family lock supports it. fn must not mutate the value.
func (r *ReadShared[T]) View(fn func(*T) error) error {
	a := r.Borrow()
	defer a.Release()
	v, err := a.Value()
	if err != nil {
		return err
	}
	if err := fn(v); err != nil {
		return errors.Wrap(err, "view")
	}
	return nil
}

// Lock takes the family lock exclusively. Even a read-only member may need
// the exclusive bracket, e.g. around a comparison helper.
func (r *ReadShared[T]) Lock() { r.lock.Get().Lock() }

// Unlock releases an exclusive hold.
func (r *ReadShared[T]) Unlock() { r.lock.Get().Unlock() }

// TryLock attempts the exclusive lock without blocking.
func (r *ReadShared[T]) TryLock() bool { return r.lock.Get().TryLock() }

// RLock takes the family lock in shared mode, falling back to the
// exclusive lock when the primitive has no shared support.
func (r *ReadShared[T]) RLock() {
	if r.rw != nil {
		r.rw.RLock()
		return
	}
	r.lock.Get().Lock()
}

// RUnlock releases the hold taken by RLock.
func (r *ReadShared[T]) RUnlock() {
	if r.rw != nil {
		r.rw.RUnlock()
		return
	}
	r.lock.Get().Unlock()
}

// TryRLock attempts the shared lock without blocking, falling back to
// TryLock on an exclusive-only primitive.
func (r *ReadShared[T]) TryRLock() bool {
	if r.rw != nil {
		return r.rw.TryRLock()
	}
	return r.lock.Get().TryLock()
}

// Close drops this member's ownership of both handles, value handle first.
// The last family member to close releases the managed value. Idempotent;
// any other use of a closed wrapper panics.
func (r *ReadShared[T]) Close() {
	if r.lock == nil {
		return
	}
	r.data.Release()
	r.lock.Release()
	r.lock, r.data = nil, nil
}
