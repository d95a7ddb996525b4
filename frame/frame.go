// Package frame implements the Block Frame and Function Frame of spec
// §3: a block's value stack plus signature, and a function's locals
// plus its non-empty stack of block frames.
package frame

import (
	"github.com/wippyai/wasmrepl/locals"
	"github.com/wippyai/wasmrepl/stack"
	"github.com/wippyai/wasmrepl/wasm"
)

// Block is one structured-control-flow scope: a value stack seeded with
// the block's params, plus the signature that governs its exit.
type Block struct {
	Stack *stack.ValueStack
	Sig   wasm.FuncType
}

// NewBlock returns a block frame with an empty stack for sig.
func NewBlock(sig wasm.FuncType) *Block {
	return &Block{Stack: stack.New(), Sig: sig}
}

// Function is one call's activation record: its locals and a non-empty
// stack of block frames, the bottommost of which is the function body.
type Function struct {
	Locals *locals.Locals
	Blocks []*Block
	Sig    wasm.FuncType
}

// NewFunction returns a function frame whose outermost block is sig's
// body, not yet populated with params — callers grow Locals and push
// the first Block themselves (see callstack.AddFunc).
func NewFunction(sig wasm.FuncType) *Function {
	return &Function{Locals: locals.New(), Sig: sig}
}

// Top returns the innermost (currently active) block frame.
func (f *Function) Top() *Block {
	return f.Blocks[len(f.Blocks)-1]
}

// PushBlock adds a new innermost block frame.
func (f *Function) PushBlock(b *Block) {
	f.Blocks = append(f.Blocks, b)
}

// PopBlock removes and returns the innermost block frame. It must never
// be called on the outermost (body) block.
func (f *Function) PopBlock() *Block {
	n := len(f.Blocks)
	b := f.Blocks[n-1]
	f.Blocks = f.Blocks[:n-1]
	return b
}

// Depth returns the number of block frames currently nested in this
// function frame.
func (f *Function) Depth() int {
	return len(f.Blocks)
}
