// Package guarded provides ownership wrappers whose every value access is
// mutually excluded, without the caller managing a lock.
//
// # Overview
//
// A bare pointer — even a carefully owned one — gives no protection against
// concurrent mutation, and bolting a mutex on next to it is where bugs live:
// the lock gets forgotten, held at the wrong granularity, or acquired in an
// order that deadlocks. The wrappers here bundle the lock with the handle
// and acquire and release it around each access automatically.
//
// Two wrappers are provided:
//
//   - [Unique]     — exclusive ownership: one lock, one value, no copies.
//     Ownership moves with [UniqueFrom] and [Unique.TakeFrom].
//   - [Shared]     — shared ownership: the lock handle and the value handle
//     are independently reference-counted, so wrappers related by
//     [Shared.Clone], [Shared.CopyFrom], or projection form a family that
//     observes one lock and one value. [Shared.Reset] detaches a member
//     from its family onto a fresh lock without disturbing the siblings.
//
// [ReadShared] is the read-only-typed member of a family, produced by
// [Shared.ReadOnly] or [Shared.IntoReadOnly]. When the family's lock
// supports shared (reader) locking, every access through a ReadShared
// takes the lock in shared mode, so read-only views proceed in parallel.
// The capability is probed once at projection time ([locking.AsRW]), not
// per access; with an exclusive-only lock the projection still works and
// simply keeps taking the exclusive lock.
//
// # Lock-scoped access
//
// [Unique.Borrow] and friends return an [Access]: a short-lived object that
// holds the lock from the moment it is produced until [Access.Release].
// Callers that only need one step use the execute-around forms
// ([Unique.Update], [Shared.Update], [ReadShared.View]) and never see the
// lock at all:
//
//	q := guarded.MakeUnique([]int{})
//	_ = q.Update(func(v *[]int) error {
//		*v = append(*v, 13)
//		return nil
//	})
//
// For slice-valued wrappers, [At] gives element access through a held
// accessor.
//
// An accessor protects exactly one access. A sequence of individually
// locked calls can still interleave with other goroutines — the API race —
// and the only remedy is explicit bracketing with the wrapper's
// Lock/Unlock (plus the unsynchronized Get while the bracket is held):
//
//	q.Lock()
//	if n := len(*q.Get()); n > 0 {
//		*q.Get() = (*q.Get())[1:]
//	}
//	q.Unlock()
//
// Keeping a pointer obtained from an accessor alive after Release is a
// caller error the library cannot detect.
//
// # Two-wrapper operations
//
// Assignment, comparison, and swap touch two wrappers at once and take both
// locks as a single atomic step through [locking.AcquireAll], so concurrent
// mirror-image calls (compare(a,b) racing compare(b,a)) cannot deadlock.
// The same-instance and same-family cases collapse to a single acquisition.
// Comparisons order raw value views only; lock identity never participates.
//
// # Null access
//
// Dereferencing an empty wrapper through an accessor returns a
// [NilAccessError] in the default build. Building with
// -tags=guardednonilcheck removes the check and the pointer comes back
// unchecked; there is no runtime toggle.
package guarded
