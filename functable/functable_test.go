package functable_test

import (
	"testing"

	"github.com/wippyai/wasmrepl/functable"
	"github.com/wippyai/wasmrepl/wasm"
)

func TestRegisterAndResolveByNumber(t *testing.T) {
	tbl := functable.New()
	idx, err := tbl.Register(wasm.Function{Sig: wasm.FuncType{}})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	tbl.Commit()

	fn, err := tbl.Resolve(wasm.NumIndex(uint32(idx)))
	if err != nil {
		t.Fatalf("Resolve(%d): %v", idx, err)
	}
	if fn.Id != "" {
		t.Errorf("fn.Id = %q, want empty", fn.Id)
	}
}

func TestRegisterAndResolveById(t *testing.T) {
	tbl := functable.New()
	if _, err := tbl.Register(wasm.Function{Id: "$add", Sig: wasm.FuncType{}}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tbl.Commit()

	fn, err := tbl.Resolve(wasm.IdIndex("$add"))
	if err != nil || fn.Id != "$add" {
		t.Errorf("Resolve($add) = %v,%v, want $add,nil", fn, err)
	}
}

func TestRegisterDuplicateId(t *testing.T) {
	tbl := functable.New()
	if _, err := tbl.Register(wasm.Function{Id: "$f"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := tbl.Register(wasm.Function{Id: "$f"}); err == nil {
		t.Error("expected DuplicateId on second Register with same id")
	}
}

func TestResolveUnknownFails(t *testing.T) {
	tbl := functable.New()
	if _, err := tbl.Resolve(wasm.IdIndex("$missing")); err == nil {
		t.Error("expected FuncNotFound for unknown identifier")
	}
	if _, err := tbl.Resolve(wasm.NumIndex(5)); err == nil {
		t.Error("expected FuncNotFound for out-of-range index")
	}
}

func TestRollbackDiscardsPendingRegistration(t *testing.T) {
	tbl := functable.New()
	if _, err := tbl.Register(wasm.Function{Id: "$tmp"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tbl.Rollback()

	if _, err := tbl.Resolve(wasm.IdIndex("$tmp")); err == nil {
		t.Error("expected $tmp to be gone after rollback")
	}
}
