package parser

import (
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/executor"
	"github.com/wippyai/wasmrepl/wasm"
)

type cursor struct {
	tokens []token
	pos    int
}

func (c *cursor) peek() *token {
	if c.pos >= len(c.tokens) {
		return nil
	}
	return &c.tokens[c.pos]
}

func (c *cursor) next() *token {
	if c.pos >= len(c.tokens) {
		return nil
	}
	t := &c.tokens[c.pos]
	c.pos++
	return t
}

func (c *cursor) expect(typ tokenType) (*token, error) {
	t := c.next()
	if t == nil {
		return nil, parseErr("unexpected end of input, want %s", typ)
	}
	if t.typ != typ {
		return nil, parseErr("want %s, got %q", typ, t.value)
	}
	return t, nil
}

func parseErr(format string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidData).
		Detail(format, args...).Build()
}

// ParseLine parses one REPL input line into an executor.Line: either a
// function definition or a bare expression, per SPEC_FULL.md §4.8.
func ParseLine(src string) (executor.Line, error) {
	c := &cursor{tokens: tokenize(src)}

	if t := c.peek(); t != nil && t.typ == tokLParen {
		save := c.pos
		c.next()
		if kw := c.peek(); kw != nil && kw.typ == tokIdent && kw.value == "func" {
			c.next()
			return c.parseFuncLine()
		}
		c.pos = save
	}

	return c.parseExprLine()
}

func (c *cursor) parseExprLine() (executor.Line, error) {
	var locals []wasm.Local
	var body []wasm.RawInstr

	for c.peek() != nil {
		if decl, ok, err := c.tryParseLocalDecl(); err != nil {
			return executor.Line{}, err
		} else if ok {
			locals = append(locals, decl)
			continue
		}
		instrs, err := c.parseOneInstr()
		if err != nil {
			return executor.Line{}, err
		}
		body = append(body, instrs...)
	}

	return executor.Line{Locals: locals, Body: body}, nil
}

// tryParseLocalDecl consumes a leading "(local [$id] type)" form if
// present and reports whether one was found.
func (c *cursor) tryParseLocalDecl() (wasm.Local, bool, error) {
	t := c.peek()
	if t == nil || t.typ != tokLParen {
		return wasm.Local{}, false, nil
	}
	next := c.pos + 1
	if next >= len(c.tokens) || c.tokens[next].typ != tokIdent || c.tokens[next].value != "local" {
		return wasm.Local{}, false, nil
	}
	c.next() // (
	c.next() // local

	var id string
	if t := c.peek(); t != nil && t.typ == tokIdent && len(t.value) > 0 && t.value[0] == '$' {
		id = t.value
		c.next()
	}
	vt, err := c.parseValType()
	if err != nil {
		return wasm.Local{}, false, err
	}
	if _, err := c.expect(tokRParen); err != nil {
		return wasm.Local{}, false, err
	}
	return wasm.Local{Id: id, Type: vt}, true, nil
}

func (c *cursor) parseValType() (wasm.ValType, error) {
	t, err := c.expect(tokIdent)
	if err != nil {
		return 0, err
	}
	switch t.value {
	case "i32":
		return wasm.I32, nil
	case "i64":
		return wasm.I64, nil
	case "f32":
		return wasm.F32, nil
	case "f64":
		return wasm.F64, nil
	}
	return 0, parseErr("unknown value type %q", t.value)
}

func (c *cursor) parseFuncLine() (executor.Line, error) {
	var id string
	if t := c.peek(); t != nil && t.typ == tokIdent && len(t.value) > 0 && t.value[0] == '$' {
		id = t.value
		c.next()
	}

	sig := wasm.FuncType{}
	var locals []wasm.Local
	var body []wasm.RawInstr

	for {
		t := c.peek()
		if t == nil {
			return executor.Line{}, parseErr("unterminated func definition")
		}
		if t.typ == tokRParen {
			c.next()
			break
		}

		if decl, ok, err := c.tryParseLocalDecl(); err != nil {
			return executor.Line{}, err
		} else if ok {
			locals = append(locals, decl)
			continue
		}
		if params, ok, err := c.tryParseParam(); err != nil {
			return executor.Line{}, err
		} else if ok {
			sig.Params = append(sig.Params, params...)
			continue
		}
		if results, ok, err := c.tryParseResult(); err != nil {
			return executor.Line{}, err
		} else if ok {
			sig.Results = append(sig.Results, results...)
			continue
		}

		instrs, err := c.parseOneInstr()
		if err != nil {
			return executor.Line{}, err
		}
		body = append(body, instrs...)
	}

	return executor.Line{
		Func:   &executor.FuncDecl{Id: id, Sig: sig},
		Locals: locals,
		Body:   body,
	}, nil
}

// tryParseParam consumes a "(param $id type)" or "(param type*)" form if
// present and reports whether one was found.
func (c *cursor) tryParseParam() ([]wasm.Local, bool, error) {
	t := c.peek()
	if t == nil || t.typ != tokLParen {
		return nil, false, nil
	}
	next := c.pos + 1
	if next >= len(c.tokens) || c.tokens[next].typ != tokIdent || c.tokens[next].value != "param" {
		return nil, false, nil
	}
	c.next() // (
	c.next() // param

	if t := c.peek(); t != nil && t.typ == tokIdent && len(t.value) > 0 && t.value[0] == '$' {
		c.next()
		vt, err := c.parseValType()
		if err != nil {
			return nil, false, err
		}
		if _, err := c.expect(tokRParen); err != nil {
			return nil, false, err
		}
		return []wasm.Local{{Id: t.value, Type: vt}}, true, nil
	}
	var out []wasm.Local
	for t := c.peek(); t == nil || t.typ != tokRParen; t = c.peek() {
		vt, err := c.parseValType()
		if err != nil {
			return nil, false, err
		}
		out = append(out, wasm.Local{Type: vt})
	}
	c.next() // )
	return out, true, nil
}

// parseSigPrefix consumes a run of leading "(param ...)"/"(result ...)"
// forms, as used by folded block/if headers.
func (c *cursor) parseSigPrefix() (wasm.FuncType, error) {
	var sig wasm.FuncType
	for {
		if params, ok, err := c.tryParseParam(); err != nil {
			return sig, err
		} else if ok {
			sig.Params = append(sig.Params, params...)
			continue
		}
		if results, ok, err := c.tryParseResult(); err != nil {
			return sig, err
		} else if ok {
			sig.Results = append(sig.Results, results...)
			continue
		}
		break
	}
	return sig, nil
}

func (c *cursor) tryParseResult() ([]wasm.ValType, bool, error) {
	t := c.peek()
	if t == nil || t.typ != tokLParen {
		return nil, false, nil
	}
	next := c.pos + 1
	if next >= len(c.tokens) || c.tokens[next].typ != tokIdent || c.tokens[next].value != "result" {
		return nil, false, nil
	}
	c.next() // (
	c.next() // result

	var out []wasm.ValType
	for {
		t := c.peek()
		if t == nil {
			return nil, false, parseErr("unterminated result form")
		}
		if t.typ == tokRParen {
			c.next()
			break
		}
		vt, err := c.parseValType()
		if err != nil {
			return nil, false, err
		}
		out = append(out, vt)
	}
	return out, true, nil
}
