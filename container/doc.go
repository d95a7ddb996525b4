// Package container implements the transactional substrate described in
// spec §4.1: a versioned List (indexed sequence with commit/rollback), a
// versioned Dict (string -> index map with commit/rollback), and
// Elements[T], a typed indexed container combining the two that
// enforces type preservation on updates.
//
// Every mutating operation goes to an overlay; commit folds the overlay
// into the base, rollback drops it. This is what lets a failing REPL
// line leave the session untouched.
package container
