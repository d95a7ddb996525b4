// Package functable implements the Function Table of spec §4.7: an
// append-only registry of immutable functions, addressable by numeric
// index or identifier.
package functable

import (
	"github.com/wippyai/wasmrepl/container"
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/wasm"
)

// Table is the registry of functions known to the session.
type Table struct {
	elems *container.Elements[wasm.Function]
}

// New returns an empty function table.
func New() *Table {
	return &Table{elems: container.NewElements[wasm.Function](nil)}
}

// Register grows the table by one, binding fn.Id to the new position if
// present. Fails DuplicateId on id collision.
func (t *Table) Register(fn wasm.Function) (int, error) {
	if fn.Id != "" {
		return t.elems.GrowById(fn.Id, fn)
	}
	return t.elems.Grow(fn), nil
}

// Resolve looks up a function by numeric index or identifier. Fails
// FuncNotFound if idx does not name a registered function.
func (t *Table) Resolve(idx wasm.Index) (wasm.Function, error) {
	var fn wasm.Function
	var err error
	if idx.IsId() {
		fn, err = t.elems.GetById(idx.Id())
	} else {
		fn, err = t.elems.Get(int(idx.Num()))
	}
	if err != nil {
		return wasm.Function{}, errors.New(errors.PhaseResolve, errors.KindFuncNotFound).
			Detail("function %q not found", idx).Build()
	}
	return fn, nil
}

// All returns every registered function, position order, for display
// purposes.
func (t *Table) All() []wasm.Function {
	out := make([]wasm.Function, 0, t.elems.Len())
	for i := 0; i < t.elems.Len(); i++ {
		fn, err := t.elems.Get(i)
		if err != nil {
			break
		}
		out = append(out, fn)
	}
	return out
}

// Commit folds pending registrations into the committed table.
func (t *Table) Commit() {
	t.elems.Commit()
}

// Rollback discards pending (uncommitted) registrations.
func (t *Table) Rollback() {
	t.elems.Rollback()
}

// Len reports the number of registered functions, including pending.
func (t *Table) Len() int {
	return t.elems.Len()
}
