package wasm_test

import (
	"math"
	"testing"

	"github.com/wippyai/wasmrepl/wasm"
)

func TestValueRoundTrip(t *testing.T) {
	v := wasm.I32Val(-42)
	if v.I32() != -42 {
		t.Errorf("I32() = %d, want -42", v.I32())
	}
	if v.String() != "-42" {
		t.Errorf("String() = %q, want -42", v.String())
	}
}

func TestValueSameType(t *testing.T) {
	a := wasm.I32Val(1)
	b := wasm.I32Val(2)
	c := wasm.I64Val(1)

	if !a.SameType(b) {
		t.Errorf("expected same type for two i32 values")
	}
	if a.SameType(c) {
		t.Errorf("expected different type for i32 vs i64")
	}
}

func TestFloatBitPreservation(t *testing.T) {
	nan := math.Float64bits(math.NaN())
	v := wasm.F64FromBits(nan)
	if v.Bits64() != nan {
		t.Errorf("NaN payload not preserved through F64FromBits/Bits64")
	}
}

func TestZero(t *testing.T) {
	if wasm.Zero(wasm.I32).I32() != 0 {
		t.Errorf("Zero(I32) != 0")
	}
	if wasm.Zero(wasm.F64).F64() != 0.0 {
		t.Errorf("Zero(F64) != 0.0")
	}
}

func TestIndex(t *testing.T) {
	n := wasm.NumIndex(3)
	if n.IsId() || n.Num() != 3 {
		t.Errorf("NumIndex did not round-trip")
	}
	id := wasm.IdIndex("$x")
	if !id.IsId() || id.Id() != "$x" {
		t.Errorf("IdIndex did not round-trip")
	}
}
