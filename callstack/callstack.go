// Package callstack implements the Call Stack of spec §3/§4.3: a
// non-empty sequence of function frames, with add_func/remove_func and
// add_block/remove_block enforcing signatures at entry and exit.
package callstack

import (
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/frame"
	"github.com/wippyai/wasmrepl/wasm"
)

// DefaultMaxDepth is the frame-depth cap used unless overridden; spec
// §4.3 requires this be at least 256.
const DefaultMaxDepth = 512

// CallStack is a non-empty stack of function frames. The bottom frame
// is the caller's session frame, pushed once at startup and never
// popped by AddFunc/RemoveFunc.
type CallStack struct {
	frames   []*frame.Function
	maxDepth int
}

// New returns a call stack with the session's bottom frame already
// pushed, using DefaultMaxDepth.
func New(sessionSig wasm.FuncType) *CallStack {
	return NewWithDepth(sessionSig, DefaultMaxDepth)
}

// NewWithDepth is New with an explicit frame-depth cap.
func NewWithDepth(sessionSig wasm.FuncType, maxDepth int) *CallStack {
	cs := &CallStack{maxDepth: maxDepth}
	fn := frame.NewFunction(sessionSig)
	fn.PushBlock(frame.NewBlock(sessionSig))
	cs.frames = []*frame.Function{fn}
	return cs
}

// Top returns the innermost (currently executing) function frame.
func (cs *CallStack) Top() *frame.Function {
	return cs.frames[len(cs.frames)-1]
}

// Depth returns the number of function frames on the stack, including
// the session frame.
func (cs *CallStack) Depth() int {
	return len(cs.frames)
}

// AddFunc pops |sig.Params| values from the caller's top block
// (rightmost param binds to the topmost value), type-checks them
// against sig, and pushes a new function frame whose locals are grown
// from those values. Fails TypeMismatch, DuplicateId, or — if the
// depth cap would be exceeded — StackOverflow.
func (cs *CallStack) AddFunc(sig wasm.FuncType) error {
	if len(cs.frames) >= cs.maxDepth {
		return errors.New(errors.PhaseExec, errors.KindStackOverflow).
			Detail("call stack exceeded depth %d", cs.maxDepth).Build()
	}

	top := cs.Top().Top()
	popped, err := popTyped(top, paramTypes(sig.Params))
	if err != nil {
		return err
	}

	fn := frame.NewFunction(sig)
	for i, p := range sig.Params {
		if p.Id != "" {
			if _, err := fn.Locals.GrowById(p.Id, popped[i]); err != nil {
				return err
			}
		} else {
			fn.Locals.Grow(popped[i])
		}
	}
	fn.PushBlock(frame.NewBlock(sig))
	cs.frames = append(cs.frames, fn)
	return nil
}

// RemoveFunc pops |sig.Results| values from the callee's top block,
// fails TooManyReturns if requiresEmpty and the block retains extra
// values, pops the function frame, and pushes the results onto the new
// top frame's top block.
func (cs *CallStack) RemoveFunc(sig wasm.FuncType, requiresEmpty bool) error {
	if len(cs.frames) < 2 {
		return errors.New(errors.PhaseExec, errors.KindStackUnderflow).
			Detail("cannot remove the session's bottom function frame").Build()
	}

	callee := cs.Top()
	body := callee.Top()
	results, err := popTyped(body, sig.Results)
	if err != nil {
		return err
	}
	if requiresEmpty && body.Stack.Len() > 0 {
		return errors.New(errors.PhaseExec, errors.KindTooManyReturns).
			Detail("function body left %d extra value(s) on the stack", body.Stack.Len()).Build()
	}

	cs.frames = cs.frames[:len(cs.frames)-1]
	caller := cs.Top().Top()
	for _, v := range results {
		caller.Stack.Push(v)
	}
	return nil
}

// AddBlock pops |sig.Params| values from the current top block,
// type-checks them, and pushes a new block frame within the current
// function frame whose stack is pre-seeded with those values in order.
func (cs *CallStack) AddBlock(sig wasm.FuncType) error {
	fn := cs.Top()
	top := fn.Top()
	popped, err := popTyped(top, paramTypes(sig.Params))
	if err != nil {
		return err
	}

	b := frame.NewBlock(sig)
	for _, v := range popped {
		b.Stack.Push(v)
	}
	fn.PushBlock(b)
	return nil
}

// RemoveBlock pops |sig.Results| values from the top block, fails
// TooManyReturns if requiresEmpty and values remain, pops the block
// frame, and pushes the results onto the new top block.
func (cs *CallStack) RemoveBlock(sig wasm.FuncType, requiresEmpty bool) error {
	fn := cs.Top()
	if fn.Depth() < 2 {
		return errors.New(errors.PhaseExec, errors.KindStackUnderflow).
			Detail("cannot remove a function frame's outermost block").Build()
	}

	top := fn.Top()
	results, err := popTyped(top, sig.Results)
	if err != nil {
		return err
	}
	if requiresEmpty && top.Stack.Len() > 0 {
		return errors.New(errors.PhaseExec, errors.KindTooManyReturns).
			Detail("block left %d extra value(s) on the stack", top.Stack.Len()).Build()
	}

	fn.PopBlock()
	caller := fn.Top()
	for _, v := range results {
		caller.Stack.Push(v)
	}
	return nil
}

// Commit folds the session frame's uncommitted stack and locals growth
// into committed state. Call once a line has executed successfully.
func (cs *CallStack) Commit() {
	session := cs.frames[0]
	session.Top().Stack.Commit()
	session.Locals.Commit()
}

// Rollback discards the session frame's uncommitted stack and locals
// growth, and forcibly truncates the call stack back down to just the
// session frame with its outermost block. The latter is needed because
// AddFunc/AddBlock push plain frame/block slices that aren't part of
// the versioned overlay: a line that fails partway through a nested
// call or block leaves those pushes behind unless discarded explicitly
// here.
func (cs *CallStack) Rollback() {
	session := cs.frames[0]
	session.Blocks = session.Blocks[:1]
	session.Top().Stack.Rollback()
	session.Locals.Rollback()
	cs.frames = cs.frames[:1]
}

func paramTypes(params []wasm.Local) []wasm.ValType {
	out := make([]wasm.ValType, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// popTyped pops len(types) values off b, reverse-iterating so the
// rightmost type binds to the topmost popped value, and returns them
// in declaration order. Fails StackUnderflow or TypeMismatch.
func popTyped(b *frame.Block, types []wasm.ValType) ([]wasm.Value, error) {
	out := make([]wasm.Value, len(types))
	for i := len(types) - 1; i >= 0; i-- {
		v, err := b.Stack.Pop()
		if err != nil {
			return nil, err
		}
		if v.Type != types[i] {
			return nil, errors.New(errors.PhaseExec, errors.KindTypeMismatch).
				Detail("expected %s, got %s", types[i], v.Type).Build()
		}
		out[i] = v
	}
	return out, nil
}
