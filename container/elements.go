package container

import (
	"github.com/wippyai/wasmrepl/errors"
)

// Elements is the atomic typed indexed container of spec §3: a List
// combined with a Dict, enforcing that identifiers refer to existing
// positions and that Set preserves whatever "same type" means for T
// (invariants (a)/(b)). sameType may be nil when T has no notion of
// type to preserve (e.g. a function table, where entries are immutable
// once grown).
type Elements[T any] struct {
	list     *List[T]
	dict     *Dict
	sameType func(current, next T) bool
}

// NewElements returns an empty typed container. Pass nil for sameType
// when Set is never used (e.g. append-only tables).
func NewElements[T any](sameType func(current, next T) bool) *Elements[T] {
	return &Elements[T]{list: NewList[T](), dict: NewDict(), sameType: sameType}
}

// Len returns the number of positions, including pending growth.
func (e *Elements[T]) Len() int {
	return e.list.Len()
}

// Grow appends v at a fresh position with no identifier.
func (e *Elements[T]) Grow(v T) int {
	return e.list.Grow(v)
}

// GrowById appends v and binds id to its position. Fails DuplicateId if
// id already exists in either the pending or committed dict.
func (e *Elements[T]) GrowById(id string, v T) (int, error) {
	if e.dict.Has(id) {
		return 0, errors.New(errors.PhaseExec, errors.KindDuplicateId).
			Detail("identifier %q already declared", id).Build()
	}
	idx := e.list.Grow(v)
	e.dict.Set(id, idx)
	return idx, nil
}

// Get reads the value at position i.
func (e *Elements[T]) Get(i int) (T, error) {
	return e.list.Get(i)
}

// GetById resolves id to a position and reads it. Fails KeyNotFound if
// id is unknown.
func (e *Elements[T]) GetById(id string) (T, error) {
	idx, ok := e.dict.Get(id)
	if !ok {
		var zero T
		return zero, errors.New(errors.PhaseResolve, errors.KindKeyNotFound).
			Detail("identifier %q not found", id).Build()
	}
	return e.list.Get(idx)
}

// IndexOf resolves id to its position. Fails KeyNotFound if unknown.
func (e *Elements[T]) IndexOf(id string) (int, error) {
	idx, ok := e.dict.Get(id)
	if !ok {
		return 0, errors.New(errors.PhaseResolve, errors.KindKeyNotFound).
			Detail("identifier %q not found", id).Build()
	}
	return idx, nil
}

// Set overwrites position i with v, enforcing type preservation when a
// sameType predicate was supplied. Fails IndexOutOfBounds or
// TypeMismatch.
func (e *Elements[T]) Set(i int, v T) error {
	cur, err := e.list.Get(i)
	if err != nil {
		return err
	}
	if e.sameType != nil && !e.sameType(cur, v) {
		return errors.New(errors.PhaseExec, errors.KindTypeMismatch).
			Detail("type mismatch writing position %d", i).Build()
	}
	return e.list.Set(i, v)
}

// Commit folds the pending list growth/writes and dict bindings into
// the committed state.
func (e *Elements[T]) Commit() {
	e.list.Commit()
	e.dict.Commit()
}

// Rollback drops all pending growth, writes, and dict bindings.
func (e *Elements[T]) Rollback() {
	e.list.Rollback()
	e.dict.Rollback()
}
