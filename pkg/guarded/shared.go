package guarded

import (
	"sync/atomic"

	"github.com/go-faster/errors"

	"lockbox/pkg/locking"
	"lockbox/pkg/refbox"
)

// Shared retains thread-safe shared ownership of a value. Wrappers related
// by Clone, CopyFrom, TakeFrom, or read-only projection form a family: they
// observe one lock and one value, each held through its own
// reference-counted box. The two boxes are counted independently — that is
// what lets Reset move one member onto a fresh lock while the siblings keep
// the old pair untouched.
//
// Distinct instances of one family are safe to use from any number of
// goroutines, including lifecycle operations racing in opposite directions
// (a.CopyFrom(b) against b.CopyFrom(a)). The handle fields are atomic and
// every operation re-validates them after taking the family lock, so an
// operation that loses a race simply retries against the wrapper's new
// lock. Close and the detaching moves (SharedFrom, TakeFrom's source,
// IntoReadOnly) leave an instance without handles, so racing them against
// other operations on that same instance is a caller error, as with any Go
// value.
type Shared[T any] struct {
	_    noCopy
	lock atomic.Pointer[refbox.Box[locking.Locker]]
	data atomic.Pointer[refbox.Box[*T]]

	// newLock and release are fixed at construction: the lock factory used
	// by Reset, and the release function wrapped around values this
	// instance introduces.
	newLock func() locking.Locker
	release func(*T)
}

// NewShared wraps v behind a fresh lock as a new single-member family. A
// nil v builds an empty wrapper; clones of it still share the family lock.
func NewShared[T any](v *T, opts ...Option) *Shared[T] {
	return NewSharedFunc(v, nil, opts...)
}

// NewSharedFunc wraps v with a custom release function, invoked exactly
// once — when the last family member closes or resets away from the value.
func NewSharedFunc[T any](v *T, release func(*T), opts ...Option) *Shared[T] {
	o := buildOptions(opts)
	s := &Shared[T]{newLock: o.newLock, release: release}
	s.lock.Store(refbox.New[locking.Locker](o.newLock(), nil))
	s.data.Store(newDataBox(v, release))
	return s
}

// newDataBox builds a value handle. The box-level release func skips nil
// payloads so empty wrappers release nothing.
func newDataBox[T any](v *T, release func(*T)) *refbox.Box[*T] {
	if release == nil {
		return refbox.New(v, nil)
	}
	return refbox.New(v, func(p *T) {
		if p != nil {
			release(p)
		}
	})
}

// acquire takes the current family lock and returns the stable handle
// pair. If another member re-bound this instance between the handle load
// and the acquisition (an opposing assignment), the stale lock is dropped
// and the acquisition retried.
func (s *Shared[T]) acquire() (*refbox.Box[locking.Locker], *refbox.Box[*T]) {
	for {
		lb := s.lock.Load()
		lk := lb.Get()
		lk.Lock()
		if s.lock.Load() == lb {
			return lb, s.data.Load()
		}
		lk.Unlock()
	}
}

// acquireWith takes s's family lock and one extra lock as a single atomic
// step, re-validating s's binding afterwards.
func (s *Shared[T]) acquireWith(extra locking.Locker) (*refbox.Box[locking.Locker], *refbox.Box[*T]) {
	for {
		lb := s.lock.Load()
		lk := lb.Get()
		locking.AcquireAll(lk, extra)
		if s.lock.Load() == lb {
			return lb, s.data.Load()
		}
		locking.ReleaseAll(lk, extra)
	}
}

// acquireBoth takes both wrappers' family locks as a single atomic step,
// re-validating both bindings afterwards.
func acquireBoth[T any](a, b *Shared[T]) (la *refbox.Box[locking.Locker], lb *refbox.Box[locking.Locker]) {
	for {
		la, lb = a.lock.Load(), b.lock.Load()
		ha, hb := la.Get(), lb.Get()
		locking.AcquireAll(ha, hb)
		if a.lock.Load() == la && b.lock.Load() == lb {
			return la, lb
		}
		locking.ReleaseAll(ha, hb)
	}
}

// Clone copy-constructs a sibling. The family lock is held while both
// handles are adopted by refcount increment, so a clone can never observe
// a half-reset source.
func (s *Shared[T]) Clone() *Shared[T] {
	lb, db := s.acquire()
	out := &Shared[T]{newLock: s.newLock, release: s.release}
	out.lock.Store(lb.Retain())
	out.data.Store(db.Retain())
	lb.Get().Unlock()
	return out
}

// SharedFrom move-constructs a wrapper from src: src's lock is held while
// both handles transfer. src is left detached from the family — only
// Reset or Close are meaningful on it afterwards.
func SharedFrom[T any](src *Shared[T]) *Shared[T] {
	lb, db := src.acquire()
	out := &Shared[T]{newLock: src.newLock, release: src.release}
	out.lock.Store(lb)
	out.data.Store(db)
	src.lock.Store(nil)
	src.data.Store(nil)
	lb.Get().Unlock()
	return out
}

// CopyFrom copy-assigns src's family into s: both family locks are taken
// as one atomic step, src's handles are adopted by refcount increment, and
// s's previous handles are released. s.CopyFrom(s) is a no-op.
func (s *Shared[T]) CopyFrom(src *Shared[T]) {
	if s == src {
		return
	}
	la, lb := acquireBoth(s, src)
	oldData := s.data.Load()
	s.lock.Store(lb.Retain())
	s.data.Store(src.data.Load().Retain())
	locking.ReleaseAll(la.Get(), lb.Get())
	oldData.Release()
	la.Release()
}

// TakeFrom move-assigns src's family into s under both locks, releasing
// s's previous handles and leaving src detached. s.TakeFrom(s) is a no-op.
func (s *Shared[T]) TakeFrom(src *Shared[T]) {
	if s == src {
		return
	}
	la, lb := acquireBoth(s, src)
	oldData := s.data.Load()
	s.lock.Store(lb)
	s.data.Store(src.data.Load())
	src.lock.Store(nil)
	src.data.Store(nil)
	locking.ReleaseAll(la.Get(), lb.Get())
	oldData.Release()
	la.Release()
}

// Reset detaches s from its family: a brand-new lock is allocated, both the
// current and the new lock are held exclusively as one atomic step, and s
// swaps onto the new lock with a fresh value handle around v (nil leaves s
// empty). Siblings keep the old lock and value untouched; if s was the
// last member, the old value is released here.
//
// Reset also restores a wrapper left detached by a move.
func (s *Shared[T]) Reset(v *T) {
	lockBox := refbox.New[locking.Locker](s.newLock(), nil)
	nl := lockBox.Get()

	if s.lock.Load() == nil {
		nl.Lock()
		s.lock.Store(lockBox)
		s.data.Store(newDataBox(v, s.release))
		nl.Unlock()
		return
	}

	oldLock, oldData := s.acquireWith(nl)
	s.lock.Store(lockBox)
	s.data.Store(newDataBox(v, s.release))
	locking.ReleaseAll(oldLock.Get(), nl)
	oldData.Release()
	oldLock.Release()
}

// Get returns the raw value view without synchronization. Safe only inside
// an explicit Lock/Unlock bracket.
func (s *Shared[T]) Get() *T {
	return s.data.Load().Get()
}

// HasValue reports, under the family lock, whether a value is owned.
func (s *Shared[T]) HasValue() bool {
	lb, db := s.acquire()
	ok := db.Get() != nil
	lb.Get().Unlock()
	return ok
}

// Borrow acquires the family lock exclusively and returns the accessor
// holding it.
func (s *Shared[T]) Borrow() *Access[T] {
	lb, db := s.acquire()
	return newAccess(db.Get(), lb.Get().Unlock)
}

// Update runs fn on the managed value under the exclusive family lock.
func (s *Shared[T]) Update(fn func(*T) error) error {
	a := s.Borrow()
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

// Lock blocks until the family lock is held exclusively. With Unlock it
// brackets multi-step sequences; see the package comment on API races.
// While the bracket is held the wrapper cannot be re-bound, so Unlock
// releases the same lock.
func (s *Shared[T]) Lock() {
	s.acquire()
}

// Unlock releases the family lock.
func (s *Shared[T]) Unlock() { s.lock.Load().Get().Unlock() }

// TryLock attempts the family lock without blocking.
func (s *Shared[T]) TryLock() bool {
	lb := s.lock.Load()
	if !lb.Get().TryLock() {
		return false
	}
	if s.lock.Load() != lb {
		// Lost a race against an opposing assignment; the caller can retry.
		lb.Get().Unlock()
		return false
	}
	return true
}

// ReadOnly copy-projects s into a read-only-typed member of the same
// family. The handles are adopted under the family lock; the projection
// probes the lock's shared-mode capability once, here.
func (s *Shared[T]) ReadOnly() *ReadShared[T] {
	lb, db := s.acquire()
	out := newReadShared(lb.Retain(), db.Retain())
	lb.Get().Unlock()
	return out
}

// IntoReadOnly move-projects s into a read-only-typed member, leaving s
// detached from the family.
func (s *Shared[T]) IntoReadOnly() *ReadShared[T] {
	lb, db := s.acquire()
	out := newReadShared(lb, db)
	s.lock.Store(nil)
	s.data.Store(nil)
	lb.Get().Unlock()
	return out
}

// Close drops s's ownership of both handles: the value handle first, then
// the lock handle. The last family member to close releases the managed
// value exactly once. Idempotent; any other use of a closed wrapper
// panics.
func (s *Shared[T]) Close() {
	db := s.data.Swap(nil)
	if db == nil {
		s.lock.Store(nil)
		return
	}
	lb := s.lock.Swap(nil)
	db.Release()
	if lb != nil {
		lb.Release()
	}
}
