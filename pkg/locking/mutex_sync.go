//go:build !deadlock

package locking

import "sync"

// DeadlockEnabled is true if the deadlock detector is enabled.
const DeadlockEnabled = false

// A Mutex is a mutual exclusion lock.
type Mutex struct {
	sync.Mutex
}

// An RWMutex is a reader/writer mutual exclusion lock.
type RWMutex struct {
	sync.RWMutex
}

var (
	_ Locker   = (*Mutex)(nil)
	_ RWLocker = (*RWMutex)(nil)
)
