package locking

// Locker is the exclusive lock contract every guarded wrapper relies on.
// Lock blocks until the lock is available; TryLock returns immediately with
// a success flag and is the only bounded-wait escape hatch.
type Locker interface {
	Lock()
	Unlock()
	TryLock() bool
}

// RWLocker extends Locker with shared (reader) acquisition. Multiple
// readers may hold the lock at once; writers exclude everyone.
type RWLocker interface {
	Locker
	RLock()
	RUnlock()
	TryRLock() bool
}

// AsRW reports whether l supports shared locking, returning the shared view
// when it does. Probe once when a wrapper or projection is built and keep
// the result; the answer never changes for a given lock.
func AsRW(l Locker) (RWLocker, bool) {
	rw, ok := l.(RWLocker)
	return rw, ok
}
