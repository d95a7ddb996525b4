package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/wasmrepl/wasm"
)

// mnemonics maps a bare opcode name to its wasm.Op for every instruction
// that carries no immediate. Instructions with immediates (consts, local
// ops, br, call) are handled by parseMnemonic below, and
// block/if/then/else/end are handled structurally, not through this
// table.
var mnemonics = map[string]wasm.Op{
	"drop":    wasm.OpDrop,
	"return":  wasm.OpReturn,
	"i32.clz": wasm.OpI32Clz, "i32.ctz": wasm.OpI32Ctz, "i32.popcnt": wasm.OpI32Popcnt,
	"i32.add": wasm.OpI32Add, "i32.sub": wasm.OpI32Sub, "i32.mul": wasm.OpI32Mul,
	"i32.div_s": wasm.OpI32DivS, "i32.div_u": wasm.OpI32DivU,
	"i32.rem_s": wasm.OpI32RemS, "i32.rem_u": wasm.OpI32RemU,
	"i32.and": wasm.OpI32And, "i32.or": wasm.OpI32Or, "i32.xor": wasm.OpI32Xor,
	"i32.shl": wasm.OpI32Shl, "i32.shr_s": wasm.OpI32ShrS, "i32.shr_u": wasm.OpI32ShrU,
	"i32.rotl": wasm.OpI32Rotl, "i32.rotr": wasm.OpI32Rotr,

	"i64.clz": wasm.OpI64Clz, "i64.ctz": wasm.OpI64Ctz, "i64.popcnt": wasm.OpI64Popcnt,
	"i64.add": wasm.OpI64Add, "i64.sub": wasm.OpI64Sub, "i64.mul": wasm.OpI64Mul,
	"i64.div_s": wasm.OpI64DivS, "i64.div_u": wasm.OpI64DivU,
	"i64.rem_s": wasm.OpI64RemS, "i64.rem_u": wasm.OpI64RemU,
	"i64.and": wasm.OpI64And, "i64.or": wasm.OpI64Or, "i64.xor": wasm.OpI64Xor,
	"i64.shl": wasm.OpI64Shl, "i64.shr_s": wasm.OpI64ShrS, "i64.shr_u": wasm.OpI64ShrU,
	"i64.rotl": wasm.OpI64Rotl, "i64.rotr": wasm.OpI64Rotr,

	"f32.abs": wasm.OpF32Abs, "f32.neg": wasm.OpF32Neg, "f32.ceil": wasm.OpF32Ceil,
	"f32.floor": wasm.OpF32Floor, "f32.trunc": wasm.OpF32Trunc, "f32.nearest": wasm.OpF32Nearest,
	"f32.sqrt": wasm.OpF32Sqrt, "f32.add": wasm.OpF32Add, "f32.sub": wasm.OpF32Sub,
	"f32.mul": wasm.OpF32Mul, "f32.div": wasm.OpF32Div, "f32.min": wasm.OpF32Min,
	"f32.max": wasm.OpF32Max, "f32.copysign": wasm.OpF32Copysign,

	"f64.abs": wasm.OpF64Abs, "f64.neg": wasm.OpF64Neg, "f64.ceil": wasm.OpF64Ceil,
	"f64.floor": wasm.OpF64Floor, "f64.trunc": wasm.OpF64Trunc, "f64.nearest": wasm.OpF64Nearest,
	"f64.sqrt": wasm.OpF64Sqrt, "f64.add": wasm.OpF64Add, "f64.sub": wasm.OpF64Sub,
	"f64.mul": wasm.OpF64Mul, "f64.div": wasm.OpF64Div, "f64.min": wasm.OpF64Min,
	"f64.max": wasm.OpF64Max, "f64.copysign": wasm.OpF64Copysign,
}

// parseOneInstr parses one instruction, bare or parenthesized, returning
// the raw instructions it expands to (more than one for block/if, since
// grouping expects explicit end/else markers in the flat stream).
func (c *cursor) parseOneInstr() ([]wasm.RawInstr, error) {
	t := c.peek()
	if t == nil {
		return nil, parseErr("unexpected end of input")
	}
	if t.typ == tokLParen {
		return c.parseFolded()
	}
	if t.typ == tokIdent {
		c.next()
		instr, err := c.parseMnemonic(t.value)
		if err != nil {
			return nil, err
		}
		return []wasm.RawInstr{instr}, nil
	}
	return nil, parseErr("unexpected token %q", t.value)
}

func (c *cursor) parseFolded() ([]wasm.RawInstr, error) {
	c.next() // (
	kw, err := c.expect(tokIdent)
	if err != nil {
		return nil, err
	}

	switch kw.value {
	case "block":
		return c.parseFoldedBlock()
	case "if":
		return c.parseFoldedIf()
	}

	instr, err := c.parseMnemonic(kw.value)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(tokRParen); err != nil {
		return nil, err
	}
	return []wasm.RawInstr{instr}, nil
}

func (c *cursor) parseLabel() string {
	if t := c.peek(); t != nil && t.typ == tokIdent && strings.HasPrefix(t.value, "$") {
		c.next()
		return t.value
	}
	return ""
}

func (c *cursor) parseFoldedBlock() ([]wasm.RawInstr, error) {
	label := c.parseLabel()
	sig, err := c.parseSigPrefix()
	if err != nil {
		return nil, err
	}

	var body []wasm.RawInstr
	for {
		t := c.peek()
		if t == nil {
			return nil, parseErr("block is missing a closing paren")
		}
		if t.typ == tokRParen {
			c.next()
			break
		}
		instrs, err := c.parseOneInstr()
		if err != nil {
			return nil, err
		}
		body = append(body, instrs...)
	}

	out := append([]wasm.RawInstr{{Kind: wasm.RawBlock, Sig: sig, Label: label}}, body...)
	return append(out, wasm.RawInstr{Kind: wasm.RawEnd}), nil
}

func (c *cursor) parseFoldedIf() ([]wasm.RawInstr, error) {
	label := c.parseLabel()
	sig, err := c.parseSigPrefix()
	if err != nil {
		return nil, err
	}

	thenBody, err := c.parseFoldedArm("then")
	if err != nil {
		return nil, err
	}

	var elseBody []wasm.RawInstr
	if t := c.peek(); t != nil && t.typ == tokLParen {
		save := c.pos
		c.next()
		if kw := c.peek(); kw != nil && kw.typ == tokIdent && kw.value == "else" {
			c.next()
			elseBody, err = c.parseFoldedArmBody()
			if err != nil {
				return nil, err
			}
		} else {
			c.pos = save
		}
	}

	if _, err := c.expect(tokRParen); err != nil {
		return nil, err
	}

	out := append([]wasm.RawInstr{{Kind: wasm.RawIf, Sig: sig, Label: label}}, thenBody...)
	if elseBody != nil {
		out = append(out, wasm.RawInstr{Kind: wasm.RawElse})
		out = append(out, elseBody...)
	}
	return append(out, wasm.RawInstr{Kind: wasm.RawEnd}), nil
}

// parseFoldedArm expects "(kw instr*)" and returns the body.
func (c *cursor) parseFoldedArm(kw string) ([]wasm.RawInstr, error) {
	if _, err := c.expect(tokLParen); err != nil {
		return nil, err
	}
	t, err := c.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if t.value != kw {
		return nil, parseErr("want %q, got %q", kw, t.value)
	}
	return c.parseFoldedArmBody()
}

func (c *cursor) parseFoldedArmBody() ([]wasm.RawInstr, error) {
	var body []wasm.RawInstr
	for {
		t := c.peek()
		if t == nil {
			return nil, parseErr("arm is missing a closing paren")
		}
		if t.typ == tokRParen {
			c.next()
			break
		}
		instrs, err := c.parseOneInstr()
		if err != nil {
			return nil, err
		}
		body = append(body, instrs...)
	}
	return body, nil
}

// parseMnemonic parses one non-structural instruction's immediate (if
// any), given its mnemonic has already been consumed.
func (c *cursor) parseMnemonic(name string) (wasm.RawInstr, error) {
	switch name {
	case "i32.const", "i64.const", "f32.const", "f64.const":
		return c.parseConst(name)
	case "local.get", "local.set", "local.tee":
		return c.parseLocalOp(name)
	case "br":
		idx, err := c.parseIdx()
		if err != nil {
			return wasm.RawInstr{}, err
		}
		return leaf(wasm.OpBr, wasm.BranchImm{Index: idx}), nil
	case "call":
		idx, err := c.parseIdx()
		if err != nil {
			return wasm.RawInstr{}, err
		}
		return leaf(wasm.OpCall, wasm.CallImm{Index: idx}), nil
	}

	op, ok := mnemonics[name]
	if !ok {
		return wasm.RawInstr{}, parseErr("unknown instruction %q", name)
	}
	return leaf(op, nil), nil
}

func leaf(op wasm.Op, imm any) wasm.RawInstr {
	return wasm.RawInstr{Kind: wasm.RawLeaf, Leaf: wasm.Instr{Op: op, Imm: imm}}
}

func (c *cursor) parseIdx() (wasm.Index, error) {
	t := c.next()
	if t == nil {
		return wasm.Index{}, parseErr("expected an index, got end of input")
	}
	if t.typ == tokIdent && strings.HasPrefix(t.value, "$") {
		return wasm.IdIndex(t.value), nil
	}
	if t.typ == tokNumber {
		n, err := strconv.ParseUint(t.value, 0, 32)
		if err != nil {
			return wasm.Index{}, parseErr("invalid index %q: %v", t.value, err)
		}
		return wasm.NumIndex(uint32(n)), nil
	}
	return wasm.Index{}, parseErr("expected an index, got %q", t.value)
}

func (c *cursor) parseLocalOp(name string) (wasm.RawInstr, error) {
	idx, err := c.parseIdx()
	if err != nil {
		return wasm.RawInstr{}, err
	}
	var op wasm.Op
	switch name {
	case "local.get":
		op = wasm.OpLocalGet
	case "local.set":
		op = wasm.OpLocalSet
	case "local.tee":
		op = wasm.OpLocalTee
	}
	return leaf(op, wasm.LocalImm{Index: idx}), nil
}

func (c *cursor) parseConst(name string) (wasm.RawInstr, error) {
	t := c.next()
	if t == nil || t.typ != tokNumber {
		return wasm.RawInstr{}, parseErr("%s requires a numeric literal", name)
	}

	var op wasm.Op
	var val wasm.Value
	var err error
	switch name {
	case "i32.const":
		op = wasm.OpI32Const
		var bits uint64
		bits, err = parseIntLiteral(t.value, 32)
		val = wasm.I32Val(int32(uint32(bits)))
	case "i64.const":
		op = wasm.OpI64Const
		var bits uint64
		bits, err = parseIntLiteral(t.value, 64)
		val = wasm.I64Val(int64(bits))
	case "f32.const":
		op = wasm.OpF32Const
		var f float64
		f, err = parseFloatLiteral(t.value)
		val = wasm.F32Val(float32(f))
	case "f64.const":
		op = wasm.OpF64Const
		var f float64
		f, err = parseFloatLiteral(t.value)
		val = wasm.F64Val(f)
	}
	if err != nil {
		return wasm.RawInstr{}, parseErr("invalid %s literal %q: %v", name, t.value, err)
	}
	return leaf(op, wasm.ConstImm{Value: val}), nil
}

// parseIntLiteral accepts signed or unsigned decimal/hex literals and
// returns their two's-complement bit pattern truncated to width bits.
func parseIntLiteral(s string, width int) (uint64, error) {
	if v, err := strconv.ParseInt(s, 0, width); err == nil {
		if width == 32 {
			return uint64(uint32(v)), nil
		}
		return uint64(v), nil
	}
	v, err := strconv.ParseUint(s, 0, width)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// parseFloatLiteral handles WAT-style special tokens (inf/nan) on top of
// ordinary decimal/hex-float syntax. NaN payload bits are not preserved
// through this literal form; use f32/f64 value construction in code for
// exact payloads.
func parseFloatLiteral(s string) (float64, error) {
	switch s {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	if s == "nan" || strings.HasSuffix(s, "nan") ||
		strings.Contains(s, "nan:") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
