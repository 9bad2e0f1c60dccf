package locking

import (
	"time"

	"lockbox/pkg/logging"
)

const (
	initialRetryDelay = 10 * time.Microsecond
	maxRetryDelay     = time.Millisecond

	// After this many failed rounds the acquisition is worth a debug line:
	// a goroutine is likely sitting on one of the locks for a long time.
	noisyRetryRounds = 1000
)

// AcquireAll locks every distinct locker in locks as one atomic step.
// Duplicate and nil entries are collapsed, so passing the same lock twice
// (self-assignment, self-comparison) acquires it exactly once.
//
// The protocol blocks on one lock, try-locks the rest, and on contention
// releases everything and retries with the contended lock as the new
// blocking position. Two goroutines acquiring the same pair in opposite
// order therefore cannot deadlock. The call blocks until every lock is
// held.
func AcquireAll(locks ...Locker) {
	held := distinct(locks)
	switch len(held) {
	case 0:
		return
	case 1:
		held[0].Lock()
		return
	}

	first := 0
	delay := initialRetryDelay
	for round := 0; ; round++ {
		held[first].Lock()

		contended := -1
		for i := range held {
			if i == first {
				continue
			}
			if !held[i].TryLock() {
				contended = i
				break
			}
		}
		if contended < 0 {
			return
		}

		// Roll back everything taken this round, in reverse order.
		for i := contended - 1; i >= 0; i-- {
			if i == first {
				continue
			}
			held[i].Unlock()
		}
		held[first].Unlock()

		if round == noisyRetryRounds {
			logging.Get().Debug("multi-lock acquisition retrying",
				"locks", len(held), "rounds", round)
		}

		first = contended
		time.Sleep(delay)
		delay = nextRetryDelay(delay)
	}
}

// ReleaseAll unlocks every distinct locker in locks, in reverse order of
// the AcquireAll argument list.
func ReleaseAll(locks ...Locker) {
	held := distinct(locks)
	for i := len(held) - 1; i >= 0; i-- {
		held[i].Unlock()
	}
}

func nextRetryDelay(d time.Duration) time.Duration {
	d *= 2
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

// distinct drops nil entries and collapses lockers that compare identical,
// preserving first-seen order. The argument lists here are tiny (two or
// three locks), so the quadratic scan is fine.
func distinct(locks []Locker) []Locker {
	out := make([]Locker, 0, len(locks))
	for _, l := range locks {
		if l == nil {
			continue
		}
		seen := false
		for _, have := range out {
			if have == l {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, l)
		}
	}
	return out
}
