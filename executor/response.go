// Package executor walks a grouped expression tree against a call
// stack, per spec §4.6.
package executor

import (
	"strings"

	"github.com/wippyai/wasmrepl/wasm"
)

// Control is the non-local control signal an expression's execution can
// produce in place of falling off its end normally.
type Control int

const (
	// ControlNone means the expression ran to completion; no signal to
	// propagate.
	ControlNone Control = iota
	// ControlBranch means a br is unwinding toward an enclosing block;
	// Target names which one.
	ControlBranch
	// ControlReturn means a return is unwinding toward the nearest
	// enclosing call.
	ControlReturn
)

// Response is the result of executing an expression: a control signal
// plus any diagnostic messages accumulated along the way (spec's
// per-line message accumulation, e.g. "local ;0; $x" for a local
// declared on an expression line).
type Response struct {
	Control       Control
	Target        wasm.Index // valid when Control == ControlBranch
	RequiresEmpty bool
	messages      []string
}

// NewResponse returns a normal-completion response that requires an
// empty stack on exit.
func NewResponse() *Response {
	return &Response{Control: ControlNone, RequiresEmpty: true}
}

// NewBranchResponse returns a response carrying a branch signal
// targeting idx. A branch never requires the exited block's stack to
// be empty.
func NewBranchResponse(idx wasm.Index) *Response {
	return &Response{Control: ControlBranch, Target: idx, RequiresEmpty: false}
}

// NewReturnResponse returns a response carrying a return signal. A
// return never requires the exited frame's stack to be empty.
func NewReturnResponse() *Response {
	return &Response{Control: ControlReturn, RequiresEmpty: false}
}

// AddMessage appends one diagnostic line.
func (r *Response) AddMessage(msg string) {
	r.messages = append(r.messages, msg)
}

// Message joins the accumulated diagnostic lines.
func (r *Response) Message() string {
	return strings.Join(r.messages, "\n")
}

// Extend appends other's messages onto r and adopts other's control
// state, mirroring a nested execution's outcome bubbling up to its
// caller.
func (r *Response) Extend(other *Response) {
	r.messages = append(r.messages, other.messages...)
	r.Control = other.Control
	r.Target = other.Target
	r.RequiresEmpty = other.RequiresEmpty
}
