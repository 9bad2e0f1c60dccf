// Package locking defines the lock primitives that guarded wrappers are
// built on, and the multi-lock acquisition protocol they share.
//
// # Primitives
//
// Every wrapper synchronizes through a [Locker]: exclusive Lock/Unlock plus
// a non-blocking TryLock. A primitive may additionally support shared
// (reader) acquisition, expressed by [RWLocker]. Whether a given lock has
// shared support is a capability, not an assumption: callers probe it once
// with [AsRW] at construction time and branch on the stored result, never
// per access.
//
// The package ships two concrete primitives, [Mutex] and [RWMutex]. By
// default they are thin wrappers over the sync package. Building with
// -tags=deadlock swaps in github.com/sasha-s/go-deadlock equivalents that
// report lock-order inversions and long waits during development; the
// [DeadlockEnabled] constant tells tests which build they are in.
//
// # Multi-lock acquisition
//
// Operations that span two wrappers (assignment, comparison, swap) or a
// wrapper plus a freshly allocated lock (reset) must hold every involved
// lock at once. Acquiring them in argument order deadlocks as soon as two
// goroutines name the same locks in opposite order, so [AcquireAll]
// implements acquire-all-or-back-off: block on one lock, try-lock the rest,
// and on contention release everything, move the blocking position to the
// contended lock, and retry after an exponentially growing delay. Identical
// lockers in the argument list are collapsed to a single acquisition, which
// is what makes self-assignment and self-comparison safe on a
// non-reentrant lock.
//
// AcquireAll blocks indefinitely; there is no timeout or cancellation,
// matching the blocking contract of the wrappers themselves.
package locking
