//go:build !guardednonilcheck

package guarded

// nilCheckEnabled selects the null-access policy at build time. In this
// default build, accessor dereference of an empty wrapper returns a
// NilAccessError.
const nilCheckEnabled = true
