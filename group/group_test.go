package group_test

import (
	"testing"

	"github.com/wippyai/wasmrepl/group"
	"github.com/wippyai/wasmrepl/wasm"
)

func leaf(op wasm.Op) wasm.RawInstr {
	return wasm.RawInstr{Kind: wasm.RawLeaf, Leaf: wasm.Instr{Op: op}}
}

func TestGroupFlatSequence(t *testing.T) {
	raw := []wasm.RawInstr{leaf(wasm.OpI32Const), leaf(wasm.OpI32Const), leaf(wasm.OpI32Add)}
	expr, err := group.Group(raw)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(expr) != 3 {
		t.Fatalf("len(expr) = %d, want 3", len(expr))
	}
}

func TestGroupIfWithoutElseYieldsEmptyElse(t *testing.T) {
	raw := []wasm.RawInstr{
		{Kind: wasm.RawIf, Sig: wasm.FuncType{}},
		leaf(wasm.OpI32Add),
		{Kind: wasm.RawEnd},
	}
	expr, err := group.Group(raw)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	ifImm := expr[0].Imm.(wasm.IfImm)
	if len(ifImm.Then) != 1 || len(ifImm.Else) != 0 {
		t.Errorf("IfImm = %+v, want Then len 1, Else empty", ifImm)
	}
}

func TestGroupIfWithElse(t *testing.T) {
	raw := []wasm.RawInstr{
		{Kind: wasm.RawIf, Sig: wasm.FuncType{}},
		leaf(wasm.OpI32Add),
		{Kind: wasm.RawElse},
		leaf(wasm.OpI32Sub),
		{Kind: wasm.RawEnd},
	}
	expr, err := group.Group(raw)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	ifImm := expr[0].Imm.(wasm.IfImm)
	if len(ifImm.Then) != 1 || len(ifImm.Else) != 1 {
		t.Errorf("IfImm = %+v, want Then/Else len 1 each", ifImm)
	}
}

func TestGroupNestedBlocks(t *testing.T) {
	raw := []wasm.RawInstr{
		{Kind: wasm.RawBlock, Sig: wasm.FuncType{}},
		leaf(wasm.OpI32Const),
		{Kind: wasm.RawBlock, Sig: wasm.FuncType{}},
		leaf(wasm.OpI32Const),
		{Kind: wasm.RawEnd},
		leaf(wasm.OpI32Const),
		{Kind: wasm.RawEnd},
	}
	expr, err := group.Group(raw)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	outer := expr[0].Imm.(wasm.BlockImm)
	if len(outer.Body) != 3 {
		t.Fatalf("outer.Body len = %d, want 3", len(outer.Body))
	}
	inner := outer.Body[1].Imm.(wasm.BlockImm)
	if len(inner.Body) != 1 {
		t.Errorf("inner.Body len = %d, want 1", len(inner.Body))
	}
}

func TestGroupStrayEndFails(t *testing.T) {
	raw := []wasm.RawInstr{{Kind: wasm.RawEnd}}
	if _, err := group.Group(raw); err == nil {
		t.Error("expected UnexpectedEnd for a stray end")
	}
}

func TestGroupStrayElseFails(t *testing.T) {
	raw := []wasm.RawInstr{{Kind: wasm.RawElse}}
	if _, err := group.Group(raw); err == nil {
		t.Error("expected UnexpectedElse for a stray else")
	}
}

func TestGroupBlockContainingElseFails(t *testing.T) {
	raw := []wasm.RawInstr{
		{Kind: wasm.RawBlock, Sig: wasm.FuncType{}},
		leaf(wasm.OpI32Const),
		{Kind: wasm.RawElse},
		{Kind: wasm.RawEnd},
	}
	if _, err := group.Group(raw); err == nil {
		t.Error("expected UnexpectedElse for else inside a block")
	}
}

func TestGroupUnterminatedIfFails(t *testing.T) {
	raw := []wasm.RawInstr{{Kind: wasm.RawIf, Sig: wasm.FuncType{}}, leaf(wasm.OpI32Const)}
	if _, err := group.Group(raw); err == nil {
		t.Error("expected UnexpectedEnd for an if missing its end")
	}
}
