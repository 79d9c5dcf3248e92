//go:build !release

// Package assert checks internal invariants of the entity store. A failed check is a bug in this
// module, never a user error, so it panics with the formatted message. Release builds compile the
// checks away.
package assert

import "fmt"

// That panics when cond is false.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
