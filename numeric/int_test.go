package numeric_test

import (
	"math"
	"testing"

	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/numeric"
	"github.com/wippyai/wasmrepl/wasm"
)

func TestDivSOverflow(t *testing.T) {
	_, err := numeric.DivS(wasm.I32Val(math.MinInt32), wasm.I32Val(-1))
	if err == nil {
		t.Fatal("expected IntegerOverflow error")
	}
	var e *errors.Error
	if !okAs(err, &e) || e.Kind != errors.KindIntegerOverflow {
		t.Errorf("got %v, want IntegerOverflow", err)
	}
}

func TestDivUOfMinOverNegOneSucceeds(t *testing.T) {
	v, err := numeric.DivU(wasm.I32Val(math.MinInt32), wasm.I32Val(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I32() != 0 {
		t.Errorf("DivU(MIN, -1) = %d, want 0", v.I32())
	}
}

func TestRemSMinByNegOneIsZero(t *testing.T) {
	v, err := numeric.RemS(wasm.I32Val(math.MinInt32), wasm.I32Val(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I32() != 0 {
		t.Errorf("RemS(MIN, -1) = %d, want 0", v.I32())
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := numeric.DivS(wasm.I32Val(1), wasm.I32Val(0)); err == nil {
		t.Error("expected DivideByZero for DivS")
	}
	if _, err := numeric.DivU(wasm.I32Val(1), wasm.I32Val(0)); err == nil {
		t.Error("expected DivideByZero for DivU")
	}
	if _, err := numeric.RemS(wasm.I32Val(1), wasm.I32Val(0)); err == nil {
		t.Error("expected DivideByZero for RemS")
	}
	if _, err := numeric.RemU(wasm.I32Val(1), wasm.I32Val(0)); err == nil {
		t.Error("expected DivideByZero for RemU")
	}
}

func TestShlModuloWidth(t *testing.T) {
	a := wasm.I32Val(1)
	shiftBy0 := numeric.Shl(a, wasm.I32Val(0))
	shiftBy32 := numeric.Shl(a, wasm.I32Val(32))
	if shiftBy0.I32() != shiftBy32.I32() {
		t.Errorf("Shl by 32 (i32) should behave as Shl by 0: got %d vs %d", shiftBy32.I32(), shiftBy0.I32())
	}
}

func TestClzCtzOfZero(t *testing.T) {
	if numeric.Clz(wasm.I32Val(0)).I32() != 32 {
		t.Error("Clz(0) for i32 should be 32")
	}
	if numeric.Ctz(wasm.I32Val(0)).I32() != 32 {
		t.Error("Ctz(0) for i32 should be 32")
	}
	if numeric.Clz(wasm.I64Val(0)).I64() != 64 {
		t.Error("Clz(0) for i64 should be 64")
	}
}

func TestPopcnt(t *testing.T) {
	if numeric.Popcnt(wasm.I32Val(0b1011)).I32() != 3 {
		t.Error("Popcnt(0b1011) should be 3")
	}
}

func TestRotlRotrInverse(t *testing.T) {
	v := wasm.I32Val(0x12345678)
	shift := wasm.I32Val(7)
	rotated := numeric.Rotl(v, shift)
	back := numeric.Rotr(rotated, shift)
	if back.I32() != v.I32() {
		t.Errorf("Rotr(Rotl(v, 7), 7) = %x, want %x", back.U32(), v.U32())
	}
}

func TestWrappingAdd(t *testing.T) {
	v := numeric.Add(wasm.I32Val(math.MaxInt32), wasm.I32Val(1))
	if v.I32() != math.MinInt32 {
		t.Errorf("wrapping Add overflow = %d, want %d", v.I32(), math.MinInt32)
	}
}

func okAs(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}
