// Package handler dispatches a single leaf instruction against the
// current top block frame of a function frame, per spec §4.5. Control
// instructions (Block, If, Br, Return, Call) are not handled here — the
// executor interprets those directly since they carry non-local control
// effects.
package handler

import (
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/frame"
	"github.com/wippyai/wasmrepl/numeric"
	"github.com/wippyai/wasmrepl/wasm"
)

// Execute runs one leaf instruction against fn's current block frame.
func Execute(instr wasm.Instr, fn *frame.Function) error {
	block := fn.Top()

	switch instr.Op {
	case wasm.OpI32Const, wasm.OpI64Const, wasm.OpF32Const, wasm.OpF64Const:
		block.Stack.Push(instr.Imm.(wasm.ConstImm).Value)
		return nil

	case wasm.OpDrop:
		_, err := block.Stack.Pop()
		return err

	case wasm.OpLocalGet:
		idx := instr.Imm.(wasm.LocalImm).Index
		v, err := fn.Locals.Resolve(idx)
		if err != nil {
			return err
		}
		block.Stack.Push(v)
		return nil

	case wasm.OpLocalSet:
		idx := instr.Imm.(wasm.LocalImm).Index
		v, err := block.Stack.Pop()
		if err != nil {
			return err
		}
		return fn.Locals.SetResolved(idx, v)

	case wasm.OpLocalTee:
		idx := instr.Imm.(wasm.LocalImm).Index
		v, err := block.Stack.Pop()
		if err != nil {
			return err
		}
		if err := fn.Locals.SetResolved(idx, v); err != nil {
			return err
		}
		block.Stack.Push(v)
		return nil
	}

	if kind, ok := intWidths[instr.Op]; ok {
		return execIntOp(instr.Op, kind, block)
	}
	if ok := floatOps[instr.Op]; ok {
		return execFloatOp(instr.Op, block)
	}

	return errors.New(errors.PhaseExec, errors.KindUnsupportedInstr).
		Detail("unsupported instruction %s", instr.Op).Build()
}

// intWidths maps every integer opcode to the width it operates over.
var intWidths = map[wasm.Op]wasm.ValType{
	wasm.OpI32Clz: wasm.I32, wasm.OpI32Ctz: wasm.I32, wasm.OpI32Popcnt: wasm.I32,
	wasm.OpI32Add: wasm.I32, wasm.OpI32Sub: wasm.I32, wasm.OpI32Mul: wasm.I32,
	wasm.OpI32DivS: wasm.I32, wasm.OpI32DivU: wasm.I32,
	wasm.OpI32RemS: wasm.I32, wasm.OpI32RemU: wasm.I32,
	wasm.OpI32And: wasm.I32, wasm.OpI32Or: wasm.I32, wasm.OpI32Xor: wasm.I32,
	wasm.OpI32Shl: wasm.I32, wasm.OpI32ShrS: wasm.I32, wasm.OpI32ShrU: wasm.I32,
	wasm.OpI32Rotl: wasm.I32, wasm.OpI32Rotr: wasm.I32,

	wasm.OpI64Clz: wasm.I64, wasm.OpI64Ctz: wasm.I64, wasm.OpI64Popcnt: wasm.I64,
	wasm.OpI64Add: wasm.I64, wasm.OpI64Sub: wasm.I64, wasm.OpI64Mul: wasm.I64,
	wasm.OpI64DivS: wasm.I64, wasm.OpI64DivU: wasm.I64,
	wasm.OpI64RemS: wasm.I64, wasm.OpI64RemU: wasm.I64,
	wasm.OpI64And: wasm.I64, wasm.OpI64Or: wasm.I64, wasm.OpI64Xor: wasm.I64,
	wasm.OpI64Shl: wasm.I64, wasm.OpI64ShrS: wasm.I64, wasm.OpI64ShrU: wasm.I64,
	wasm.OpI64Rotl: wasm.I64, wasm.OpI64Rotr: wasm.I64,
}

var intUnary = map[wasm.Op]bool{
	wasm.OpI32Clz: true, wasm.OpI32Ctz: true, wasm.OpI32Popcnt: true,
	wasm.OpI64Clz: true, wasm.OpI64Ctz: true, wasm.OpI64Popcnt: true,
}

// floatOps is the set of float opcodes, unary and binary alike; the
// dispatch inside execFloatOp tells them apart by arity.
var floatOps = map[wasm.Op]bool{
	wasm.OpF32Abs: true, wasm.OpF32Neg: true, wasm.OpF32Ceil: true, wasm.OpF32Floor: true,
	wasm.OpF32Trunc: true, wasm.OpF32Nearest: true, wasm.OpF32Sqrt: true,
	wasm.OpF32Add: true, wasm.OpF32Sub: true, wasm.OpF32Mul: true, wasm.OpF32Div: true,
	wasm.OpF32Min: true, wasm.OpF32Max: true, wasm.OpF32Copysign: true,

	wasm.OpF64Abs: true, wasm.OpF64Neg: true, wasm.OpF64Ceil: true, wasm.OpF64Floor: true,
	wasm.OpF64Trunc: true, wasm.OpF64Nearest: true, wasm.OpF64Sqrt: true,
	wasm.OpF64Add: true, wasm.OpF64Sub: true, wasm.OpF64Mul: true, wasm.OpF64Div: true,
	wasm.OpF64Min: true, wasm.OpF64Max: true, wasm.OpF64Copysign: true,
}

var floatUnary = map[wasm.Op]bool{
	wasm.OpF32Abs: true, wasm.OpF32Neg: true, wasm.OpF32Ceil: true, wasm.OpF32Floor: true,
	wasm.OpF32Trunc: true, wasm.OpF32Nearest: true, wasm.OpF32Sqrt: true,
	wasm.OpF64Abs: true, wasm.OpF64Neg: true, wasm.OpF64Ceil: true, wasm.OpF64Floor: true,
	wasm.OpF64Trunc: true, wasm.OpF64Nearest: true, wasm.OpF64Sqrt: true,
}

func floatWidth(op wasm.Op) wasm.ValType {
	if op >= wasm.OpF32Abs && op <= wasm.OpF32Copysign {
		return wasm.F32
	}
	return wasm.F64
}

func execIntOp(op wasm.Op, width wasm.ValType, block *frame.Block) error {
	if intUnary[op] {
		v, err := popTyped(block, width)
		if err != nil {
			return err
		}
		return pushResult(block, unaryIntFn(op)(v))
	}

	rhs, lhs, err := popBinaryTyped(block, width)
	if err != nil {
		return err
	}
	if fn, ok := binaryIntFn(op); ok {
		return pushResult(block, fn(lhs, rhs))
	}
	fn := binaryIntErrFn(op)
	v, err := fn(lhs, rhs)
	if err != nil {
		return err
	}
	return pushResult(block, v)
}

func execFloatOp(op wasm.Op, block *frame.Block) error {
	width := floatWidth(op)
	if floatUnary[op] {
		v, err := popTyped(block, width)
		if err != nil {
			return err
		}
		return pushResult(block, unaryFloatFn(op)(v))
	}

	rhs, lhs, err := popBinaryTyped(block, width)
	if err != nil {
		return err
	}
	return pushResult(block, binaryFloatFn(op)(lhs, rhs))
}

func popTyped(block *frame.Block, want wasm.ValType) (wasm.Value, error) {
	v, err := block.Stack.Pop()
	if err != nil {
		return wasm.Value{}, err
	}
	if v.Type != want {
		return wasm.Value{}, errors.New(errors.PhaseExec, errors.KindTypeMismatch).
			Detail("expected %s operand, got %s", want, v.Type).Build()
	}
	return v, nil
}

// popBinaryTyped pops the RHS (top of stack) then the LHS, per spec
// §4.5's stack-order rule, checking both against want.
func popBinaryTyped(block *frame.Block, want wasm.ValType) (rhs, lhs wasm.Value, err error) {
	rhs, err = popTyped(block, want)
	if err != nil {
		return wasm.Value{}, wasm.Value{}, err
	}
	lhs, err = popTyped(block, want)
	if err != nil {
		return wasm.Value{}, wasm.Value{}, err
	}
	return rhs, lhs, nil
}

func pushResult(block *frame.Block, v wasm.Value) error {
	block.Stack.Push(v)
	return nil
}

func unaryIntFn(op wasm.Op) func(wasm.Value) wasm.Value {
	switch op {
	case wasm.OpI32Clz, wasm.OpI64Clz:
		return numeric.Clz
	case wasm.OpI32Ctz, wasm.OpI64Ctz:
		return numeric.Ctz
	default:
		return numeric.Popcnt
	}
}

func binaryIntFn(op wasm.Op) (func(lhs, rhs wasm.Value) wasm.Value, bool) {
	switch op {
	case wasm.OpI32Add, wasm.OpI64Add:
		return numeric.Add, true
	case wasm.OpI32Sub, wasm.OpI64Sub:
		return numeric.Sub, true
	case wasm.OpI32Mul, wasm.OpI64Mul:
		return numeric.Mul, true
	case wasm.OpI32And, wasm.OpI64And:
		return numeric.And, true
	case wasm.OpI32Or, wasm.OpI64Or:
		return numeric.Or, true
	case wasm.OpI32Xor, wasm.OpI64Xor:
		return numeric.Xor, true
	case wasm.OpI32Shl, wasm.OpI64Shl:
		return numeric.Shl, true
	case wasm.OpI32ShrS, wasm.OpI64ShrS:
		return numeric.ShrS, true
	case wasm.OpI32ShrU, wasm.OpI64ShrU:
		return numeric.ShrU, true
	case wasm.OpI32Rotl, wasm.OpI64Rotl:
		return numeric.Rotl, true
	case wasm.OpI32Rotr, wasm.OpI64Rotr:
		return numeric.Rotr, true
	}
	return nil, false
}

func binaryIntErrFn(op wasm.Op) func(lhs, rhs wasm.Value) (wasm.Value, error) {
	switch op {
	case wasm.OpI32DivS, wasm.OpI64DivS:
		return numeric.DivS
	case wasm.OpI32DivU, wasm.OpI64DivU:
		return numeric.DivU
	case wasm.OpI32RemS, wasm.OpI64RemS:
		return numeric.RemS
	default:
		return numeric.RemU
	}
}

func unaryFloatFn(op wasm.Op) func(wasm.Value) wasm.Value {
	switch op {
	case wasm.OpF32Abs, wasm.OpF64Abs:
		return numeric.Abs
	case wasm.OpF32Neg, wasm.OpF64Neg:
		return numeric.Neg
	case wasm.OpF32Ceil, wasm.OpF64Ceil:
		return numeric.Ceil
	case wasm.OpF32Floor, wasm.OpF64Floor:
		return numeric.Floor
	case wasm.OpF32Trunc, wasm.OpF64Trunc:
		return numeric.Trunc
	case wasm.OpF32Nearest, wasm.OpF64Nearest:
		return numeric.Nearest
	default:
		return numeric.Sqrt
	}
}

func binaryFloatFn(op wasm.Op) func(lhs, rhs wasm.Value) wasm.Value {
	switch op {
	case wasm.OpF32Add, wasm.OpF64Add:
		return numeric.FAdd
	case wasm.OpF32Sub, wasm.OpF64Sub:
		return numeric.FSub
	case wasm.OpF32Mul, wasm.OpF64Mul:
		return numeric.FMul
	case wasm.OpF32Div, wasm.OpF64Div:
		return numeric.FDiv
	case wasm.OpF32Min, wasm.OpF64Min:
		return numeric.Min
	case wasm.OpF32Max, wasm.OpF64Max:
		return numeric.Max
	default:
		return numeric.Copysign
	}
}
