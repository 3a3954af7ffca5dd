// Package assert holds the defensive checks used by the core runtime.
// A failed check is a programming error in the caller, so it panics.
package assert

import "github.com/rotisserie/eris"

// That panics with an eris error built from format and args when cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(eris.Errorf(format, args...))
	}
}
