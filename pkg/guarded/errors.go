package guarded

import "github.com/go-faster/errors"

// ErrNilAccess matches any null-access failure raised by a lock-scoped
// accessor, for errors.Is checks.
var ErrNilAccess = errors.New("guarded: nil value access")

// NilAccessError reports a dereference of an empty wrapper through a
// lock-scoped accessor. Raised only in builds with the nil-check policy
// enabled (the default).
type NilAccessError struct {
	// Op names the failing access, e.g. "dereference" or "index".
	Op string
}

func (e *NilAccessError) Error() string {
	return "guarded: " + e.Op + " through an empty wrapper"
}

func (e *NilAccessError) Is(target error) bool {
	return target == ErrNilAccess
}
