package callstack_test

import (
	"testing"

	"github.com/wippyai/wasmrepl/callstack"
	"github.com/wippyai/wasmrepl/wasm"
)

func sessionSig() wasm.FuncType { return wasm.FuncType{} }

func TestAddFuncBindsParamsAsLocals(t *testing.T) {
	cs := callstack.New(sessionSig())
	cs.Top().Top().Stack.Push(wasm.I32Val(3))
	cs.Top().Top().Stack.Push(wasm.I32Val(4))

	sig := wasm.FuncType{
		Params:  []wasm.Local{{Id: "$a", Type: wasm.I32}, {Id: "$b", Type: wasm.I32}},
		Results: []wasm.ValType{wasm.I32},
	}
	if err := cs.AddFunc(sig); err != nil {
		t.Fatalf("AddFunc: %v", err)
	}

	a, err := cs.Top().Locals.Resolve(wasm.IdIndex("$a"))
	if err != nil || a.I32() != 3 {
		t.Errorf("$a = %v,%v, want 3,nil", a, err)
	}
	b, err := cs.Top().Locals.Resolve(wasm.IdIndex("$b"))
	if err != nil || b.I32() != 4 {
		t.Errorf("$b = %v,%v, want 4,nil", b, err)
	}
}

func TestAddFuncTypeMismatch(t *testing.T) {
	cs := callstack.New(sessionSig())
	cs.Top().Top().Stack.Push(wasm.F64Val(1.0))

	sig := wasm.FuncType{Params: []wasm.Local{{Type: wasm.I32}}}
	if err := cs.AddFunc(sig); err == nil {
		t.Error("expected TypeMismatch binding f64 value to i32 param")
	}
}

func TestRemoveFuncPushesResultsToCaller(t *testing.T) {
	cs := callstack.New(sessionSig())
	sig := wasm.FuncType{Results: []wasm.ValType{wasm.I32}}
	if err := cs.AddFunc(sig); err != nil {
		t.Fatalf("AddFunc: %v", err)
	}
	cs.Top().Top().Stack.Push(wasm.I32Val(99))

	if err := cs.RemoveFunc(sig, true); err != nil {
		t.Fatalf("RemoveFunc: %v", err)
	}
	if cs.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", cs.Depth())
	}
	v, err := cs.Top().Top().Stack.Pop()
	if err != nil || v.I32() != 99 {
		t.Errorf("caller stack top = %v,%v, want 99,nil", v, err)
	}
}

func TestRemoveFuncTooManyReturns(t *testing.T) {
	cs := callstack.New(sessionSig())
	sig := wasm.FuncType{Results: []wasm.ValType{wasm.I32}}
	if err := cs.AddFunc(sig); err != nil {
		t.Fatalf("AddFunc: %v", err)
	}
	cs.Top().Top().Stack.Push(wasm.I32Val(1))
	cs.Top().Top().Stack.Push(wasm.I32Val(2))

	if err := cs.RemoveFunc(sig, true); err == nil {
		t.Error("expected TooManyReturns with an extra value left on the stack")
	}
}

func TestAddBlockSeedsStackWithParams(t *testing.T) {
	cs := callstack.New(sessionSig())
	cs.Top().Top().Stack.Push(wasm.I32Val(5))

	sig := wasm.FuncType{Params: []wasm.Local{{Type: wasm.I32}}, Results: []wasm.ValType{wasm.I32}}
	if err := cs.AddBlock(sig); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	if cs.Top().Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", cs.Top().Depth())
	}
	v, err := cs.Top().Top().Stack.Peek()
	if err != nil || v.I32() != 5 {
		t.Errorf("seeded block top = %v,%v, want 5,nil", v, err)
	}
}

func TestRemoveBlockPushesResultsToEnclosingBlock(t *testing.T) {
	cs := callstack.New(sessionSig())
	sig := wasm.FuncType{Results: []wasm.ValType{wasm.I32}}
	if err := cs.AddBlock(sig); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	cs.Top().Top().Stack.Push(wasm.I32Val(7))

	if err := cs.RemoveBlock(sig, true); err != nil {
		t.Fatalf("RemoveBlock: %v", err)
	}
	if cs.Top().Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", cs.Top().Depth())
	}
	v, err := cs.Top().Top().Stack.Peek()
	if err != nil || v.I32() != 7 {
		t.Errorf("caller block top = %v,%v, want 7,nil", v, err)
	}
}

func TestAddFuncStackOverflow(t *testing.T) {
	cs := callstack.NewWithDepth(sessionSig(), 2)
	noop := wasm.FuncType{}
	if err := cs.AddFunc(noop); err != nil {
		t.Fatalf("first AddFunc: %v", err)
	}
	if err := cs.AddFunc(noop); err == nil {
		t.Error("expected StackOverflow exceeding depth cap")
	}
}
