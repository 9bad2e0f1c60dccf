package guarded

import (
	"unsafe"

	"lockbox/pkg/locking"
	"lockbox/pkg/refbox"
)

// Comparisons take both operands' locks as one atomic step and look only at
// the raw value views — for the shared wrappers, lock identity never
// participates. Passing the same wrapper on both sides collapses to a
// single lock acquisition, so a == a cannot deadlock on a non-reentrant
// lock.

// Member is any member of a shared family — *Shared or *ReadShared — as
// accepted by the shared comparison helpers.
type Member[T any] interface {
	lockHandle() *refbox.Box[locking.Locker]
	rawView() *T
}

func (s *Shared[T]) lockHandle() *refbox.Box[locking.Locker] { return s.lock.Load() }
func (s *Shared[T]) rawView() *T                             { return s.data.Load().Get() }

func (r *ReadShared[T]) lockHandle() *refbox.Box[locking.Locker] { return r.lock }
func (r *ReadShared[T]) rawView() *T                             { return r.data.Get() }

// acquireMembers takes both members' family locks as one atomic step,
// re-validating each member's lock binding after the acquisition in case an
// opposing assignment re-bound it in between.
func acquireMembers[T any](a, b Member[T]) (la, lb *refbox.Box[locking.Locker]) {
	for {
		la, lb = a.lockHandle(), b.lockHandle()
		ha, hb := la.Get(), lb.Get()
		locking.AcquireAll(ha, hb)
		if a.lockHandle() == la && b.lockHandle() == lb {
			return la, lb
		}
		locking.ReleaseAll(ha, hb)
	}
}

// UniqueEqual reports whether a and b manage the same raw value.
func UniqueEqual[T any](a, b *Unique[T]) bool {
	locking.AcquireAll(a.lk, b.lk)
	eq := a.value == b.value
	locking.ReleaseAll(a.lk, b.lk)
	return eq
}

// UniqueCompare three-way-compares the raw values of a and b by pointer
// identity: -1, 0, or +1. It induces the full ordering set (<, <=, >, >=),
// consistent within a process run.
func UniqueCompare[T any](a, b *Unique[T]) int {
	locking.AcquireAll(a.lk, b.lk)
	c := comparePointers(a.value, b.value)
	locking.ReleaseAll(a.lk, b.lk)
	return c
}

// UniqueSwap exchanges the managed values (and release functions) of a and
// b under both locks. a and b keep their own locks.
func UniqueSwap[T any](a, b *Unique[T]) {
	if a == b {
		return
	}
	locking.AcquireAll(a.lk, b.lk)
	a.value, b.value = b.value, a.value
	a.release, b.release = b.release, a.release
	locking.ReleaseAll(a.lk, b.lk)
}

// SharedEqual reports whether two family members — read-only or mutable,
// same family or not — manage the same raw value.
func SharedEqual[T any](a, b Member[T]) bool {
	la, lb := acquireMembers(a, b)
	eq := a.rawView() == b.rawView()
	locking.ReleaseAll(la.Get(), lb.Get())
	return eq
}

// SharedCompare three-way-compares the raw values of two family members by
// pointer identity.
func SharedCompare[T any](a, b Member[T]) int {
	la, lb := acquireMembers(a, b)
	c := comparePointers(a.rawView(), b.rawView())
	locking.ReleaseAll(la.Get(), lb.Get())
	return c
}

// SharedSwap exchanges the handle pairs of a and b under both family locks:
// each wrapper switches families. The construction-time lock factory and
// release function stay with their wrapper.
func SharedSwap[T any](a, b *Shared[T]) {
	if a == b {
		return
	}
	la, lb := acquireBoth(a, b)
	da, db := a.data.Load(), b.data.Load()
	a.lock.Store(lb)
	b.lock.Store(la)
	a.data.Store(db)
	b.data.Store(da)
	locking.ReleaseAll(la.Get(), lb.Get())
}

// comparePointers orders raw views by address, matching pointer comparison
// in the sense of ==; the relative order of distinct values is arbitrary
// but stable.
func comparePointers[T any](x, y *T) int {
	px, py := uintptr(unsafe.Pointer(x)), uintptr(unsafe.Pointer(y))
	switch {
	case px < py:
		return -1
	case px > py:
		return 1
	default:
		return 0
	}
}
