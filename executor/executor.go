package executor

import (
	"fmt"

	"github.com/wippyai/wasmrepl/callstack"
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/functable"
	"github.com/wippyai/wasmrepl/frame"
	"github.com/wippyai/wasmrepl/group"
	"github.com/wippyai/wasmrepl/handler"
	"github.com/wippyai/wasmrepl/wasm"
)

// Executor ties a call stack and function table together and walks
// grouped expressions against them, per spec §4.6.
type Executor struct {
	Stack *callstack.CallStack
	Funcs *functable.Table
}

// New returns an executor over a fresh session call stack and an empty
// function table.
func New() *Executor {
	return &Executor{
		Stack: callstack.New(wasm.FuncType{}),
		Funcs: functable.New(),
	}
}

// ExecuteLine runs one parsed REPL line to completion, committing its
// effects on success and rolling them back entirely on any failure.
func (e *Executor) ExecuteLine(line Line) (string, error) {
	if line.Func != nil {
		return e.executeFuncLine(line)
	}
	return e.executeExprLine(line)
}

func (e *Executor) executeFuncLine(line Line) (string, error) {
	body, err := group.Group(line.Body)
	if err != nil {
		return "", err
	}
	fn := wasm.Function{Id: line.Func.Id, Sig: line.Func.Sig, Locals: line.Locals, Body: body}

	idx, err := e.Funcs.Register(fn)
	if err != nil {
		e.Funcs.Rollback()
		return "", err
	}
	e.Funcs.Commit()
	return indexMessage("func", idx, line.Func.Id), nil
}

func (e *Executor) executeExprLine(line Line) (string, error) {
	session := e.Stack.Top()

	resp := NewResponse()
	for _, l := range line.Locals {
		i, err := e.growLocal(session, l)
		if err != nil {
			e.Stack.Rollback()
			return "", err
		}
		resp.AddMessage(indexMessage("local", i, l.Id))
	}

	body, err := group.Group(line.Body)
	if err != nil {
		e.Stack.Rollback()
		return "", err
	}

	out, err := e.executeExpression(body)
	if err != nil {
		e.Stack.Rollback()
		return "", err
	}
	if out.Control != ControlNone {
		e.Stack.Rollback()
		return "", errors.New(errors.PhaseExec, errors.KindBranchTooOuter).
			Detail("control signal escaped the session frame").Build()
	}

	e.Stack.Commit()
	resp.Extend(out)
	resp.AddMessage(renderStack(session.Top()))
	return resp.Message(), nil
}

func (e *Executor) growLocal(fn *frame.Function, l wasm.Local) (int, error) {
	zero := wasm.Zero(l.Type)
	if l.Id != "" {
		return fn.Locals.GrowById(l.Id, zero)
	}
	return fn.Locals.Grow(zero), nil
}

// executeExpression walks expr's instructions in order against the
// current top function frame, stopping early and returning a non-None
// Response if a leaf return/br is reached.
func (e *Executor) executeExpression(expr wasm.Expr) (*Response, error) {
	for _, instr := range expr {
		switch instr.Op {
		case wasm.OpBlock:
			resp, err := e.execBlock(instr.Imm.(wasm.BlockImm))
			if err != nil {
				return nil, err
			}
			if resp.Control != ControlNone {
				return resp, nil
			}

		case wasm.OpIf:
			resp, err := e.execIf(instr.Imm.(wasm.IfImm))
			if err != nil {
				return nil, err
			}
			if resp.Control != ControlNone {
				return resp, nil
			}

		case wasm.OpCall:
			resp, err := e.execCall(instr.Imm.(wasm.CallImm).Index)
			if err != nil {
				return nil, err
			}
			if resp.Control != ControlNone {
				return resp, nil
			}

		case wasm.OpReturn:
			return NewReturnResponse(), nil

		case wasm.OpBr:
			return NewBranchResponse(instr.Imm.(wasm.BranchImm).Index), nil

		default:
			if err := handler.Execute(instr, e.Stack.Top()); err != nil {
				return nil, err
			}
		}
	}
	return NewResponse(), nil
}

// execBlock enters a structured block, recurses into its body, and
// absorbs a branch targeting this block as a normal exit.
func (e *Executor) execBlock(imm wasm.BlockImm) (*Response, error) {
	if err := e.Stack.AddBlock(imm.Sig); err != nil {
		return nil, err
	}
	resp, err := e.executeExpression(imm.Body)
	if err != nil {
		return nil, err
	}

	if resp.Control == ControlBranch && targetsBlock(resp.Target, imm.Label) {
		if err := e.Stack.RemoveBlock(imm.Sig, false); err != nil {
			return nil, err
		}
		return NewResponse(), nil
	}

	if err := e.Stack.RemoveBlock(imm.Sig, resp.RequiresEmpty); err != nil {
		return nil, err
	}
	if resp.Control == ControlBranch {
		resp.Target = outward(resp.Target)
	}
	return resp, nil
}

// execIf pops the i32 condition, then behaves exactly like execBlock
// over whichever of Then/Else was selected.
func (e *Executor) execIf(imm wasm.IfImm) (*Response, error) {
	top := e.Stack.Top().Top()
	cond, err := top.Stack.Pop()
	if err != nil {
		return nil, err
	}
	if cond.Type != wasm.I32 {
		return nil, errors.New(errors.PhaseExec, errors.KindTypeMismatch).
			Detail("if condition must be i32, got %s", cond.Type).Build()
	}

	body := imm.Else
	if cond.I32() != 0 {
		body = imm.Then
	}
	return e.execBlock(wasm.BlockImm{Sig: imm.Sig, Body: body, Label: imm.Label})
}

// execCall enters the called function's frame, runs its body, absorbs
// a trailing return, and pops the frame back to the caller. A branch
// that reaches here has escaped the function's outermost block without
// being absorbed, and fails BranchTooOuter.
func (e *Executor) execCall(idx wasm.Index) (*Response, error) {
	fn, err := e.Funcs.Resolve(idx)
	if err != nil {
		return nil, err
	}
	if err := e.Stack.AddFunc(fn.Sig); err != nil {
		return nil, err
	}
	callee := e.Stack.Top()
	for _, l := range fn.Locals {
		if _, err := e.growLocal(callee, l); err != nil {
			return nil, err
		}
	}

	resp, err := e.executeExpression(fn.Body)
	if err != nil {
		return nil, err
	}

	switch resp.Control {
	case ControlBranch:
		return nil, errors.New(errors.PhaseExec, errors.KindBranchTooOuter).
			Detail("branch escaped function %q with no matching block", idx).Build()
	default:
		if err := e.Stack.RemoveFunc(fn.Sig, resp.RequiresEmpty); err != nil {
			return nil, err
		}
	}
	return NewResponse(), nil
}

// targetsBlock reports whether a branch targets the block it was just
// raised out of: numeric index 0, or an identifier matching the
// block's own label.
func targetsBlock(target wasm.Index, label string) bool {
	if target.IsId() {
		return label != "" && target.Id() == label
	}
	return target.Num() == 0
}

// outward decrements a numeric branch index by one as it crosses an
// enclosing block that did not absorb it; identifier targets pass
// through unchanged since labels match by name, not depth.
func outward(target wasm.Index) wasm.Index {
	if target.IsId() {
		return target
	}
	return wasm.NumIndex(target.Num() - 1)
}

func indexMessage(kind string, i int, id string) string {
	if id == "" {
		return fmt.Sprintf("%s ;%d;", kind, i)
	}
	return fmt.Sprintf("%s ;%d; %s", kind, i, id)
}

func renderStack(b *frame.Block) string {
	values := b.Stack.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	s := "["
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + "]"
}
