package container

import (
	"github.com/wippyai/wasmrepl/errors"
)

// List is an indexed sequence with a committed base and a pending
// overlay: a pending growth count plus a sparse map of pending writes
// by absolute index (spec §3 "Versioned List").
type List[T any] struct {
	base          []T
	pendingLen    int
	pendingWrites map[int]T
}

// NewList returns an empty versioned list.
func NewList[T any]() *List[T] {
	return &List[T]{pendingWrites: make(map[int]T)}
}

// Len returns the length including pending growth.
func (l *List[T]) Len() int {
	return len(l.base) + l.pendingLen
}

// Grow appends v and returns its index. The index equals
// base.len + pending_len at the time of the call, so that a grow
// immediately following a rollback reuses the index the rolled-back
// grow would have taken (spec §9 open question).
func (l *List[T]) Grow(v T) int {
	idx := len(l.base) + l.pendingLen
	l.pendingLen++
	l.pendingWrites[idx] = v
	return idx
}

// Get reads the overlay if present for i, else the committed base.
func (l *List[T]) Get(i int) (T, error) {
	var zero T
	if v, ok := l.pendingWrites[i]; ok {
		return v, nil
	}
	if i >= 0 && i < len(l.base) {
		return l.base[i], nil
	}
	return zero, errors.New(errors.PhaseExec, errors.KindIndexOutOfBounds).
		Detail("index %d out of bounds (length %d)", i, l.Len()).Build()
}

// Set requires i < Len(); it fails IndexOutOfBounds otherwise.
func (l *List[T]) Set(i int, v T) error {
	if i < 0 || i >= l.Len() {
		return errors.New(errors.PhaseExec, errors.KindIndexOutOfBounds).
			Detail("index %d out of bounds (length %d)", i, l.Len()).Build()
	}
	l.pendingWrites[i] = v
	return nil
}

// Commit pads the base with zero values up to the pending length,
// applies pending writes, then clears the overlay.
func (l *List[T]) Commit() {
	newLen := len(l.base) + l.pendingLen
	if newLen > len(l.base) {
		var zero T
		grown := make([]T, newLen-len(l.base))
		for i := range grown {
			grown[i] = zero
		}
		l.base = append(l.base, grown...)
	}
	for idx, v := range l.pendingWrites {
		if idx < len(l.base) {
			l.base[idx] = v
		}
	}
	l.pendingLen = 0
	l.pendingWrites = make(map[int]T)
}

// Rollback clears the pending growth count and writes; the base is
// unchanged.
func (l *List[T]) Rollback() {
	l.pendingLen = 0
	l.pendingWrites = make(map[int]T)
}
