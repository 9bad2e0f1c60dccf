package guarded

import (
	"fmt"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"
)

func TestUniqueConcurrentMapInsert(t *testing.T) {
	const (
		writers = 8
		perGoro = 200
	)
	u := MakeUnique(map[string]int{})
	defer u.Close()

	var wg conc.WaitGroup
	for g := 0; g < writers; g++ {
		g := g
		wg.Go(func() {
			for i := 0; i < perGoro; i++ {
				key := fmt.Sprintf("w%d-%d", g, i)
				_ = u.Update(func(m *map[string]int) error {
					(*m)[key] = i
					return nil
				})
			}
		})
	}
	wg.Wait()

	require.NoError(t, u.Update(func(m *map[string]int) error {
		require.Len(t, *m, writers*perGoro)
		return nil
	}))
}

// Half of the goroutines increment every slice element, the other half
// decrement; element access goes through a borrowed accessor and At, one
// element per lock hold. Everything must net out to zero.
func TestUniqueSliceCounters(t *testing.T) {
	const (
		elems  = 10
		goros  = 8
		rounds = 100
	)
	u := MakeUniqueSlice[int](elems)
	defer u.Close()

	var wg conc.WaitGroup
	for g := 0; g < goros; g++ {
		delta := 1
		if g%2 == 1 {
			delta = -1
		}
		wg.Go(func() {
			for r := 0; r < rounds; r++ {
				for i := 0; i < elems; i++ {
					a := u.Borrow()
					p, err := At(a, i)
					if err == nil {
						*p += delta
					}
					a.Release()
				}
			}
		})
	}
	wg.Wait()

	require.NoError(t, u.Update(func(s *[]int) error {
		for i, v := range *s {
			require.Zerof(t, v, "element %d", i)
		}
		return nil
	}))
}

// A producer appends batches into a slice-backed queue while a consumer
// drains it. Each multi-step sequence (inspect length, then mutate) runs
// inside one explicit Lock/Unlock bracket around Get, so the check and the
// mutation observe the same state.
func TestUniqueExplicitBracketQueue(t *testing.T) {
	const total = 500
	q := MakeUniqueSlice[int](0)
	defer q.Close()

	var wg conc.WaitGroup
	wg.Go(func() {
		for i := 0; i < total; i++ {
			q.Lock()
			s := q.Get()
			*s = append(*s, i)
			q.Unlock()
		}
	})

	var drained []int
	wg.Go(func() {
		for len(drained) < total {
			q.Lock()
			s := q.Get()
			if len(*s) > 0 {
				drained = append(drained, (*s)...)
				*s = (*s)[:0]
			}
			q.Unlock()
		}
	})
	wg.Wait()

	require.Len(t, drained, total)
	for i, v := range drained {
		require.Equal(t, i, v, "queue must preserve insertion order")
	}
}

func TestSharedConcurrentFamilyCounter(t *testing.T) {
	const (
		members = 6
		perGoro = 250
	)
	root := MakeShared(0)

	var wg conc.WaitGroup
	for m := 0; m < members; m++ {
		c := root.Clone()
		wg.Go(func() {
			defer c.Close()
			for i := 0; i < perGoro; i++ {
				_ = c.Update(func(n *int) error {
					*n++
					return nil
				})
			}
		})
	}
	wg.Wait()

	root.Lock()
	require.Equal(t, members*perGoro, *root.Get())
	root.Unlock()
	root.Close()
}

// Clones spawn and close concurrently with reads on other members; the
// release function must still run exactly once, after the last member is
// gone.
func TestSharedConcurrentCloneClose(t *testing.T) {
	n, release := releaseCounter()
	root := NewSharedFunc(&tracked{id: 1}, release)

	var wg conc.WaitGroup
	for g := 0; g < 8; g++ {
		c := root.Clone()
		wg.Go(func() {
			for i := 0; i < 100; i++ {
				cc := c.Clone()
				require.True(t, cc.HasValue())
				cc.Close()
			}
			c.Close()
		})
	}
	wg.Wait()

	require.Equal(t, int32(0), n.Load(), "root still holds the value")
	root.Close()
	require.Equal(t, int32(1), n.Load())
}

// Read-only members read in parallel while mutable members write; the
// element sum observed under a shared hold must always be a multiple of
// the write quantum.
func TestSharedReadersWithWriter(t *testing.T) {
	const writes = 300
	root := MakeSharedSlice[int](4, WithRWLock())
	ro := root.ReadOnly()

	var wg conc.WaitGroup
	wg.Go(func() {
		for i := 0; i < writes; i++ {
			_ = root.Update(func(s *[]int) error {
				for j := range *s {
					(*s)[j]++
				}
				return nil
			})
		}
	})
	for r := 0; r < 4; r++ {
		reader := ro.Clone()
		wg.Go(func() {
			defer reader.Close()
			for i := 0; i < writes; i++ {
				_ = reader.View(func(s *[]int) error {
					sum := 0
					for _, v := range *s {
						sum += v
					}
					require.Zero(t, sum%len(*s), "writes must never be seen half-applied")
					return nil
				})
			}
		})
	}
	wg.Wait()

	ro.Close()
	root.Lock()
	require.Equal(t, []int{writes, writes, writes, writes}, *root.Get())
	root.Unlock()
	root.Close()
}
