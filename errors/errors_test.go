package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wasmrepl/errors"
)

func TestErrorFormatting(t *testing.T) {
	err := errors.New(errors.PhaseExec, errors.KindDivideByZero).
		Detail("i32.div_s by zero").
		Build()

	want := "[exec] divide_by_zero: i32.div_s by zero"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorIs(t *testing.T) {
	a := errors.New(errors.PhaseExec, errors.KindStackUnderflow).Build()
	b := errors.New(errors.PhaseExec, errors.KindStackUnderflow).Build()
	c := errors.New(errors.PhaseExec, errors.KindStackOverflow).Build()

	if !stderrors.Is(a, b) {
		t.Errorf("expected a.Is(b) to hold for same phase/kind")
	}
	if stderrors.Is(a, c) {
		t.Errorf("expected a.Is(c) to fail for different kind")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := errors.New(errors.PhaseParse, errors.KindInvalidData).Cause(cause).Build()

	if stderrors.Unwrap(err) != cause {
		t.Errorf("Unwrap() did not return the wrapped cause")
	}
}
