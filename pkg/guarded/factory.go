package guarded

// Construct-in-place factories. These allocate the value and wrap it in one
// step, so no raw pointer ever exists outside a wrapper.

// MakeUnique allocates a value initialized to v and wraps it.
func MakeUnique[T any](v T, opts ...Option) *Unique[T] {
	return NewUnique(&v, opts...)
}

// MakeUniqueSlice allocates a zeroed slice of n elements and wraps it.
// Element access goes through [At] on a borrowed accessor.
func MakeUniqueSlice[E any](n int, opts ...Option) *Unique[[]E] {
	s := make([]E, n)
	return NewUnique(&s, opts...)
}

// MakeShared allocates a value initialized to v and wraps it as a new
// single-member family.
func MakeShared[T any](v T, opts ...Option) *Shared[T] {
	return NewShared(&v, opts...)
}

// MakeSharedSlice allocates a zeroed slice of n elements and wraps it as a
// new single-member family.
func MakeSharedSlice[E any](n int, opts ...Option) *Shared[[]E] {
	s := make([]E, n)
	return NewShared(&s, opts...)
}
