//go:build guardednonilcheck

package guarded

// nilCheckEnabled selects the null-access policy at build time. In this
// build, accessor dereference of an empty wrapper is unchecked and the
// possibly-nil view is the caller's risk.
const nilCheckEnabled = false
