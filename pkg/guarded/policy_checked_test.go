//go:build !guardednonilcheck

package guarded

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Default-policy behavior: dereferencing an empty wrapper through an
// accessor raises ErrNilAccess instead of handing out a nil view.

func TestValueOnEmptyWrapper(t *testing.T) {
	u := NewUnique[int](nil)

	a := u.Borrow()
	defer a.Release()
	_, err := a.Value()
	require.ErrorIs(t, err, ErrNilAccess)

	var nilErr *NilAccessError
	require.ErrorAs(t, err, &nilErr)
	require.Equal(t, "dereference", nilErr.Op)
}

func TestUniqueUpdateOnEmpty(t *testing.T) {
	u := NewUnique[int](nil)
	err := u.Update(func(*int) error { return nil })
	require.ErrorIs(t, err, ErrNilAccess)
}

func TestSharedUpdateOnEmpty(t *testing.T) {
	s := NewShared[int](nil)
	err := s.Update(func(*int) error { return nil })
	require.ErrorIs(t, err, ErrNilAccess)
	s.Close()
}

func TestReadOnlyViewOnEmpty(t *testing.T) {
	s := NewShared[int](nil, WithRWLock())
	ro := s.ReadOnly()

	err := ro.View(func(*int) error { return nil })
	require.ErrorIs(t, err, ErrNilAccess)

	ro.Close()
	s.Close()
}

func TestAtOnEmptyWrapper(t *testing.T) {
	u := NewUnique[[]int](nil)
	defer u.Close()

	a := u.Borrow()
	defer a.Release()

	_, err := At(a, 0)
	require.ErrorIs(t, err, ErrNilAccess)
	var nilErr *NilAccessError
	require.ErrorAs(t, err, &nilErr)
	require.Equal(t, "index", nilErr.Op)
}

func TestAtOnNilSliceValue(t *testing.T) {
	var s []int
	u := NewUnique(&s) // wrapper owns a value, the slice itself is nil
	defer u.Close()

	a := u.Borrow()
	defer a.Release()

	_, err := At(a, 0)
	require.ErrorIs(t, err, ErrNilAccess)
}
