package wasm

// Op identifies an instruction. Names follow the WebAssembly mnemonic
// convention (OpI32Add, OpF64Sqrt, ...), restricted to the subset
// enumerated in spec §6.3.
type Op int

const (
	OpI32Const Op = iota
	OpI64Const
	OpF32Const
	OpF64Const

	OpDrop

	OpLocalGet
	OpLocalSet
	OpLocalTee

	OpI32Clz
	OpI32Ctz
	OpI32Popcnt
	OpI32Add
	OpI32Sub
	OpI32Mul
	OpI32DivS
	OpI32DivU
	OpI32RemS
	OpI32RemU
	OpI32And
	OpI32Or
	OpI32Xor
	OpI32Shl
	OpI32ShrS
	OpI32ShrU
	OpI32Rotl
	OpI32Rotr

	OpI64Clz
	OpI64Ctz
	OpI64Popcnt
	OpI64Add
	OpI64Sub
	OpI64Mul
	OpI64DivS
	OpI64DivU
	OpI64RemS
	OpI64RemU
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64Shl
	OpI64ShrS
	OpI64ShrU
	OpI64Rotl
	OpI64Rotr

	OpF32Abs
	OpF32Neg
	OpF32Ceil
	OpF32Floor
	OpF32Trunc
	OpF32Nearest
	OpF32Sqrt
	OpF32Add
	OpF32Sub
	OpF32Mul
	OpF32Div
	OpF32Min
	OpF32Max
	OpF32Copysign

	OpF64Abs
	OpF64Neg
	OpF64Ceil
	OpF64Floor
	OpF64Trunc
	OpF64Nearest
	OpF64Sqrt
	OpF64Add
	OpF64Sub
	OpF64Mul
	OpF64Div
	OpF64Min
	OpF64Max
	OpF64Copysign

	// Structured / non-local control. Block and If appear only after
	// grouping (package group); Br/Return/Call are leaf instructions
	// with non-local control effect.
	OpBlock
	OpIf
	OpBr
	OpReturn
	OpCall
)

var opNames = map[Op]string{
	OpI32Const: "i32.const", OpI64Const: "i64.const",
	OpF32Const: "f32.const", OpF64Const: "f64.const",
	OpDrop: "drop",
	OpLocalGet: "local.get", OpLocalSet: "local.set", OpLocalTee: "local.tee",

	OpI32Clz: "i32.clz", OpI32Ctz: "i32.ctz", OpI32Popcnt: "i32.popcnt",
	OpI32Add: "i32.add", OpI32Sub: "i32.sub", OpI32Mul: "i32.mul",
	OpI32DivS: "i32.div_s", OpI32DivU: "i32.div_u",
	OpI32RemS: "i32.rem_s", OpI32RemU: "i32.rem_u",
	OpI32And: "i32.and", OpI32Or: "i32.or", OpI32Xor: "i32.xor",
	OpI32Shl: "i32.shl", OpI32ShrS: "i32.shr_s", OpI32ShrU: "i32.shr_u",
	OpI32Rotl: "i32.rotl", OpI32Rotr: "i32.rotr",

	OpI64Clz: "i64.clz", OpI64Ctz: "i64.ctz", OpI64Popcnt: "i64.popcnt",
	OpI64Add: "i64.add", OpI64Sub: "i64.sub", OpI64Mul: "i64.mul",
	OpI64DivS: "i64.div_s", OpI64DivU: "i64.div_u",
	OpI64RemS: "i64.rem_s", OpI64RemU: "i64.rem_u",
	OpI64And: "i64.and", OpI64Or: "i64.or", OpI64Xor: "i64.xor",
	OpI64Shl: "i64.shl", OpI64ShrS: "i64.shr_s", OpI64ShrU: "i64.shr_u",
	OpI64Rotl: "i64.rotl", OpI64Rotr: "i64.rotr",

	OpF32Abs: "f32.abs", OpF32Neg: "f32.neg", OpF32Ceil: "f32.ceil",
	OpF32Floor: "f32.floor", OpF32Trunc: "f32.trunc", OpF32Nearest: "f32.nearest",
	OpF32Sqrt: "f32.sqrt", OpF32Add: "f32.add", OpF32Sub: "f32.sub",
	OpF32Mul: "f32.mul", OpF32Div: "f32.div", OpF32Min: "f32.min",
	OpF32Max: "f32.max", OpF32Copysign: "f32.copysign",

	OpF64Abs: "f64.abs", OpF64Neg: "f64.neg", OpF64Ceil: "f64.ceil",
	OpF64Floor: "f64.floor", OpF64Trunc: "f64.trunc", OpF64Nearest: "f64.nearest",
	OpF64Sqrt: "f64.sqrt", OpF64Add: "f64.add", OpF64Sub: "f64.sub",
	OpF64Mul: "f64.mul", OpF64Div: "f64.div", OpF64Min: "f64.min",
	OpF64Max: "f64.max", OpF64Copysign: "f64.copysign",

	OpBlock: "block", OpIf: "if", OpBr: "br", OpReturn: "return", OpCall: "call",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "unknown"
}

// Expr is an ordered sequence of instructions, possibly containing
// nested structured instructions after grouping (spec §3 Expression).
type Expr []Instr

// Instr is one instruction. Leaf instructions carry a typed immediate in
// Imm (ConstImm, LocalImm, BranchImm, CallImm, or nil); structured
// instructions carry IfImm/BlockImm, which hold nested Expr bodies.
type Instr struct {
	Op  Op
	Imm any
}

// ConstImm is the immediate of a *.const instruction.
type ConstImm struct {
	Value Value
}

// LocalImm is the immediate of local.get/local.set/local.tee.
type LocalImm struct {
	Index Index
}

// BranchImm is the immediate of br.
type BranchImm struct {
	Index Index
}

// CallImm is the immediate of call.
type CallImm struct {
	Index Index
}

// IfImm is the immediate of a grouped if instruction. Label is the
// branch target name, if the source gave the if a label; empty
// otherwise.
type IfImm struct {
	Sig   FuncType
	Then  Expr
	Else  Expr
	Label string
}

// BlockImm is the immediate of a grouped block instruction. Label is
// the branch target name, if the source gave the block a label; empty
// otherwise.
type BlockImm struct {
	Sig   FuncType
	Body  Expr
	Label string
}
