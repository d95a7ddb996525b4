package stack_test

import (
	"testing"

	"github.com/wippyai/wasmrepl/stack"
	"github.com/wippyai/wasmrepl/wasm"
)

func TestPushPopFreshStack(t *testing.T) {
	s := stack.New()
	s.Push(wasm.I32Val(5))
	v, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if v.I32() != 5 {
		t.Errorf("Pop() = %d, want 5", v.I32())
	}
}

func TestPopUnderflow(t *testing.T) {
	s := stack.New()
	if _, err := s.Pop(); err == nil {
		t.Error("expected StackUnderflow on empty stack")
	}
}

func TestCommitThenRollbackIsNoop(t *testing.T) {
	s := stack.New()
	s.Push(wasm.I32Val(1))
	s.Push(wasm.I32Val(2))
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	s.Push(wasm.I32Val(3))
	_, _ = s.Pop()
	_, _ = s.Pop()
	s.Rollback()

	vals := s.Values()
	if len(vals) != 2 || vals[0].I32() != 1 || vals[1].I32() != 2 {
		t.Errorf("Values() after rollback = %v, want [1 2]", vals)
	}
}

func TestCommitAppliesShrinkAndGrowth(t *testing.T) {
	s := stack.New()
	s.Push(wasm.I32Val(1))
	s.Push(wasm.I32Val(2))
	s.Push(wasm.I32Val(3))
	_ = s.Commit()

	_, _ = s.Pop() // shrink by 1 (removes 3)
	s.Push(wasm.I32Val(4))
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	vals := s.Values()
	want := []int32{1, 2, 4}
	if len(vals) != len(want) {
		t.Fatalf("Values() = %v, want %v", vals, want)
	}
	for i, w := range want {
		if vals[i].I32() != w {
			t.Errorf("Values()[%d] = %d, want %d", i, vals[i].I32(), w)
		}
	}
}

func TestPeekDoesNotMutate(t *testing.T) {
	s := stack.New()
	s.Push(wasm.I32Val(7))
	v, err := s.Peek()
	if err != nil || v.I32() != 7 {
		t.Fatalf("Peek() = %v, %v", v, err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() after Peek = %d, want 1", s.Len())
	}
}
