//go:build deadlock

package locking

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"

	"lockbox/pkg/logging"
)

// DeadlockEnabled is true if the deadlock detector is enabled.
const DeadlockEnabled = true

func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
	logging.Get().Info("lock deadlock detector enabled",
		"timeout", deadlock.Opts.DeadlockTimeout)
}

// A Mutex is a mutual exclusion lock with deadlock detection.
type Mutex struct {
	deadlock.Mutex
}

// An RWMutex is a reader/writer mutual exclusion lock with deadlock detection.
type RWMutex struct {
	deadlock.RWMutex
}

var (
	_ Locker   = (*Mutex)(nil)
	_ RWLocker = (*RWMutex)(nil)
)
