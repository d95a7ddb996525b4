package numeric_test

import (
	"math"
	"testing"

	"github.com/wippyai/wasmrepl/numeric"
	"github.com/wippyai/wasmrepl/wasm"
)

func TestMinWithNaN(t *testing.T) {
	v := numeric.Min(wasm.F64Val(math.NaN()), wasm.F64Val(1.0))
	if !math.IsNaN(v.F64()) {
		t.Errorf("Min(NaN, 1.0) should be NaN")
	}
}

func TestMinZeroTieBreak(t *testing.T) {
	negZero := wasm.F64Val(math.Copysign(0, -1))
	posZero := wasm.F64Val(0)
	v := numeric.Min(posZero, negZero)
	if !math.Signbit(v.F64()) {
		t.Errorf("Min(+0, -0) should be -0")
	}
}

func TestCopysign(t *testing.T) {
	v := numeric.Copysign(wasm.F64Val(-1.0), wasm.F64Val(2.0))
	if v.F64() != 1.0 {
		t.Errorf("Copysign(-1.0, +2.0) = %v, want 1.0", v.F64())
	}
}

func TestNearestTiesToEven(t *testing.T) {
	if numeric.Nearest(wasm.F64Val(2.5)).F64() != 2.0 {
		t.Errorf("Nearest(2.5) should round to even (2.0)")
	}
	if numeric.Nearest(wasm.F64Val(3.5)).F64() != 4.0 {
		t.Errorf("Nearest(3.5) should round to even (4.0)")
	}
}

func TestSqrt(t *testing.T) {
	if numeric.Sqrt(wasm.F64Val(4.0)).F64() != 2.0 {
		t.Errorf("Sqrt(4.0) should be 2.0")
	}
}

func TestFDivByZero(t *testing.T) {
	v := numeric.FDiv(wasm.F64Val(1.0), wasm.F64Val(0.0))
	if !math.IsInf(v.F64(), 1) {
		t.Errorf("1.0/0.0 should be +Inf")
	}
}
