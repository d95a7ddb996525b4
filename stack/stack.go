// Package stack implements the LIFO value stack with a transactional
// overlay described in spec §4.2: O(1) amortized commit/rollback
// without cloning the committed base.
package stack

import (
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/wasm"
)

// ValueStack is a LIFO stack of typed values. Pushes go to a pending
// slice; pops come from pending if non-empty, else increase a shrink
// counter against the committed base. Commit/rollback settle or discard
// the overlay in O(len(pending)) time.
type ValueStack struct {
	base     []wasm.Value
	pending  []wasm.Value
	shrinkBy int
}

// New returns an empty value stack.
func New() *ValueStack {
	return &ValueStack{}
}

// Push adds v to the pending overlay.
func (s *ValueStack) Push(v wasm.Value) {
	s.pending = append(s.pending, v)
}

// Pop removes and returns the top value. It fails StackUnderflow if the
// stack (committed plus pending) is empty.
func (s *ValueStack) Pop() (wasm.Value, error) {
	if n := len(s.pending); n > 0 {
		v := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return v, nil
	}
	if s.shrinkBy >= len(s.base) {
		return wasm.Value{}, errors.New(errors.PhaseExec, errors.KindStackUnderflow).
			Detail("pop from empty stack").Build()
	}
	s.shrinkBy++
	return s.base[len(s.base)-s.shrinkBy], nil
}

// Peek returns the top value without removing it.
func (s *ValueStack) Peek() (wasm.Value, error) {
	if n := len(s.pending); n > 0 {
		return s.pending[n-1], nil
	}
	if s.shrinkBy >= len(s.base) {
		return wasm.Value{}, errors.New(errors.PhaseExec, errors.KindStackUnderflow).
			Detail("peek on empty stack").Build()
	}
	return s.base[len(s.base)-s.shrinkBy-1], nil
}

// Len returns the current observable depth (base minus shrunk, plus
// pending).
func (s *ValueStack) Len() int {
	return len(s.base) - s.shrinkBy + len(s.pending)
}

// Commit truncates the base by shrinkBy, appends the pending values,
// and resets the overlay.
func (s *ValueStack) Commit() error {
	if s.shrinkBy > len(s.base) {
		return errors.New(errors.PhaseExec, errors.KindStackUnderflow).
			Detail("commit would underflow stack").Build()
	}
	s.base = append(s.base[:len(s.base)-s.shrinkBy], s.pending...)
	s.shrinkBy = 0
	s.pending = nil
	return nil
}

// Rollback resets shrinkBy to 0 and clears the pending overlay; the
// committed base is untouched.
func (s *ValueStack) Rollback() {
	s.shrinkBy = 0
	s.pending = nil
}

// Values returns the stack's current contents bottom-to-top, as
// observed through the overlay — used for rendering (spec §6.2).
func (s *ValueStack) Values() []wasm.Value {
	committed := s.base[:len(s.base)-s.shrinkBy]
	out := make([]wasm.Value, 0, len(committed)+len(s.pending))
	out = append(out, committed...)
	out = append(out, s.pending...)
	return out
}
