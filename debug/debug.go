// Package debug contains helpers for checking internal invariants.
package debug

// Enabled controls whether assertions are checked.
const Enabled = true

// Assert panics if b is false.
func Assert(b bool) {
	if Enabled && !b {
		panic("assertion failed")
	}
}

// Assertf panics with msg if b is false.
func Assertf(b bool, msg string) {
	if Enabled && !b {
		panic("assertion failed: " + msg)
	}
}
