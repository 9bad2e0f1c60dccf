package guarded

import "lockbox/pkg/locking"

// An Option adjusts how a wrapper is constructed.
type Option func(*options)

type options struct {
	newLock func() locking.Locker
}

// WithLock selects the lock primitive a wrapper is built on. The factory
// runs once per Unique wrapper or per Shared family — and again on
// Shared.Reset, which detaches onto a brand-new lock of the same kind. The
// default is an exclusive locking.Mutex.
func WithLock(factory func() locking.Locker) Option {
	return func(o *options) {
		o.newLock = factory
	}
}

// WithRWLock is shorthand for building on a locking.RWMutex, enabling
// shared-mode access through read-only projections.
func WithRWLock() Option {
	return WithLock(func() locking.Locker { return new(locking.RWMutex) })
}

func buildOptions(opts []Option) options {
	o := options{
		newLock: func() locking.Locker { return new(locking.Mutex) },
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
