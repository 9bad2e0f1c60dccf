package guarded

// noCopy may be embedded into structs which must not be copied after first
// use. go vet's copylocks check reports violations.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Access is a lock-scoped view of a wrapper's managed value. It is produced
// holding the wrapper's lock (exclusive, or shared for a capable read-only
// wrapper) and keeps it until Release. Accessors are produced only by the
// wrappers' Borrow methods and must not be copied or outlive the statement
// block they serve.
type Access[T any] struct {
	_      noCopy
	value  *T
	unlock func()
}

func newAccess[T any](value *T, unlock func()) *Access[T] {
	return &Access[T]{value: value, unlock: unlock}
}

// Value returns the managed value view. With the nil-check policy enabled
// an empty wrapper yields a NilAccessError; in guardednonilcheck builds the
// possibly-nil pointer comes back unchecked.
//
// The pointer is only valid while the accessor is unreleased. Keeping it
// longer is an undetected caller error.
func (a *Access[T]) Value() (*T, error) {
	if nilCheckEnabled && a.value == nil {
		return nil, &NilAccessError{Op: "dereference"}
	}
	return a.value, nil
}

// Release drops the lock. Idempotent; every Borrow must be paired with
// exactly one effective Release.
func (a *Access[T]) Release() {
	if a.unlock != nil {
		a.unlock()
		a.unlock = nil
	}
}

// At returns a view of element i of a slice-valued accessor, the subscript
// counterpart of [Access.Value]. An empty wrapper or nil slice yields a
// NilAccessError under the default policy; out-of-range i panics as any
// slice index does.
func At[E any](a *Access[[]E], i int) (*E, error) {
	if nilCheckEnabled && (a.value == nil || *a.value == nil) {
		return nil, &NilAccessError{Op: "index"}
	}
	return &(*a.value)[i], nil
}
