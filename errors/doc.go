// Package errors provides the structured error type used throughout the
// interpreter core, instead of bare fmt.Errorf/errors.New.
//
// Errors are categorized by Phase (which component raised the error) and
// Kind (the taxonomy of spec failure modes — stack underflow, type
// mismatch, duplicate id, and so on). Use the Builder for construction:
//
//	err := errors.New(errors.PhaseExec, errors.KindTypeMismatch).
//		Detail("expected %s, got %s", want, got).
//		Build()
//
// All errors implement the standard error interface and support
// errors.Is/errors.Unwrap via the wrapped Cause.
package errors
