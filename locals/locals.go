// Package locals specializes container.Elements to typed values:
// identifier-addressed and position-addressed locals belonging to a
// single function frame (spec §2 "Locals").
package locals

import (
	"github.com/wippyai/wasmrepl/container"
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/wasm"
)

// Locals holds one function frame's local variables.
type Locals struct {
	elems *container.Elements[wasm.Value]
}

// New returns an empty locals table.
func New() *Locals {
	return &Locals{elems: container.NewElements[wasm.Value](wasm.Value.SameType)}
}

// Grow appends an unnamed local holding v.
func (l *Locals) Grow(v wasm.Value) int {
	return l.elems.Grow(v)
}

// GrowById appends a named local holding v. Fails DuplicateId if id is
// already declared in this frame.
func (l *Locals) GrowById(id string, v wasm.Value) (int, error) {
	return l.elems.GrowById(id, v)
}

// Get reads the local at position i.
func (l *Locals) Get(i int) (wasm.Value, error) {
	return l.elems.Get(i)
}

// Resolve reads the local addressed by idx, whether numeric or
// identifier-based.
func (l *Locals) Resolve(idx wasm.Index) (wasm.Value, error) {
	if idx.IsId() {
		return l.elems.GetById(idx.Id())
	}
	return l.elems.Get(int(idx.Num()))
}

// Set overwrites the local at position i; v must share the type tag of
// the value currently at i.
func (l *Locals) Set(i int, v wasm.Value) error {
	return l.elems.Set(i, v)
}

// SetResolved writes v into the local addressed by idx, whether numeric
// or identifier-based.
func (l *Locals) SetResolved(idx wasm.Index, v wasm.Value) error {
	i, err := l.resolveIndex(idx)
	if err != nil {
		return err
	}
	return l.elems.Set(i, v)
}

func (l *Locals) resolveIndex(idx wasm.Index) (int, error) {
	if idx.IsId() {
		return l.elems.IndexOf(idx.Id())
	}
	i := int(idx.Num())
	if i < 0 || i >= l.elems.Len() {
		return 0, errors.New(errors.PhaseExec, errors.KindIndexOutOfBounds).
			Detail("local index %d out of bounds", i).Build()
	}
	return i, nil
}

// Len reports the number of declared locals, including pending growth.
func (l *Locals) Len() int {
	return l.elems.Len()
}

// All returns every local's current value, position order, for display
// purposes; it performs no bounds checking beyond what Len reports.
func (l *Locals) All() []wasm.Value {
	out := make([]wasm.Value, 0, l.elems.Len())
	for i := 0; i < l.elems.Len(); i++ {
		v, err := l.elems.Get(i)
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// Commit folds pending growth and writes into the committed state.
func (l *Locals) Commit() {
	l.elems.Commit()
}

// Rollback discards pending growth and writes.
func (l *Locals) Rollback() {
	l.elems.Rollback()
}
