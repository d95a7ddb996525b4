// Package errors provides the structured error type used throughout the
// interpreter core, instead of bare fmt.Errorf/errors.New.
package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which component of the interpreter raised the error.
type Phase string

const (
	PhaseParse   Phase = "parse"   // tokenizing/parsing a REPL line
	PhaseGroup   Phase = "group"   // flat instruction stream -> nested expression
	PhaseExec    Phase = "exec"    // execute_line / execute_expression
	PhaseResolve Phase = "resolve" // index/identifier resolution
)

// Kind categorizes the error, mirroring the taxonomy of spec §7.
type Kind string

const (
	KindStackUnderflow        Kind = "stack_underflow"
	KindStackOverflow         Kind = "stack_overflow"
	KindTypeMismatch          Kind = "type_mismatch"
	KindIndexOutOfBounds      Kind = "index_out_of_bounds"
	KindKeyNotFound           Kind = "key_not_found"
	KindDuplicateId           Kind = "duplicate_id"
	KindDivideByZero          Kind = "divide_by_zero"
	KindIntegerOverflow       Kind = "integer_overflow"
	KindTooManyReturns        Kind = "too_many_returns"
	KindUnsupportedInstr      Kind = "unsupported_instruction"
	KindUnexpectedEnd         Kind = "unexpected_end"
	KindUnexpectedElse        Kind = "unexpected_else"
	KindBranchTooOuter        Kind = "branch_too_outer"
	KindFuncNotFound          Kind = "func_not_found"
	KindInvalidData           Kind = "invalid_data"
)

// Error is the structured error type returned by every core component.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's Phase and Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder for the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}
