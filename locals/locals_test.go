package locals_test

import (
	"testing"

	"github.com/wippyai/wasmrepl/locals"
	"github.com/wippyai/wasmrepl/wasm"
)

func TestGrowAndResolveByPosition(t *testing.T) {
	l := locals.New()
	i := l.Grow(wasm.I32Val(7))
	l.Commit()

	v, err := l.Resolve(wasm.NumIndex(uint32(i)))
	if err != nil || v.I32() != 7 {
		t.Fatalf("Resolve(%d) = %v,%v, want 7,nil", i, v, err)
	}
}

func TestGrowByIdAndResolveByIdentifier(t *testing.T) {
	l := locals.New()
	if _, err := l.GrowById("$n", wasm.I64Val(42)); err != nil {
		t.Fatalf("GrowById: %v", err)
	}
	l.Commit()

	v, err := l.Resolve(wasm.IdIndex("$n"))
	if err != nil || v.I64() != 42 {
		t.Fatalf("Resolve($n) = %v,%v, want 42,nil", v, err)
	}
}

func TestSetResolvedRejectsTypeMismatch(t *testing.T) {
	l := locals.New()
	_, _ = l.GrowById("$n", wasm.I32Val(1))
	l.Commit()

	if err := l.SetResolved(wasm.IdIndex("$n"), wasm.F64Val(1.5)); err == nil {
		t.Error("expected TypeMismatch writing f64 over i32 local")
	}
}

func TestDuplicateIdRejected(t *testing.T) {
	l := locals.New()
	if _, err := l.GrowById("$x", wasm.I32Val(0)); err != nil {
		t.Fatalf("first GrowById: %v", err)
	}
	if _, err := l.GrowById("$x", wasm.I32Val(1)); err == nil {
		t.Error("expected DuplicateId on second GrowById with same id")
	}
}

func TestResolveUnknownIdentifierFails(t *testing.T) {
	l := locals.New()
	if _, err := l.Resolve(wasm.IdIndex("$missing")); err == nil {
		t.Error("expected KeyNotFound for unknown identifier")
	}
}

func TestRollbackDiscardsUncommittedGrowth(t *testing.T) {
	l := locals.New()
	l.Grow(wasm.I32Val(1))
	l.Commit()

	l.Grow(wasm.I32Val(2))
	l.Rollback()

	if _, err := l.Get(1); err == nil {
		t.Error("expected IndexOutOfBounds after rollback of uncommitted growth")
	}
}
