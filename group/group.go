// Package group implements the instruction grouping pass of spec §4.4:
// a single linear, recursive pass over the parser's flat instruction
// stream that turns If/Else/End/Block markers into a nested tree of
// wasm.Expr. Grouping enforces bracket balance only; it performs no
// type checking.
package group

import (
	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/wasm"
)

// terminator records how a recursive parse of a sub-expression ended.
type terminator int

const (
	termEOF terminator = iota
	termEnd
	termElse
)

// Group converts a flat instruction stream into a nested expression
// tree. A stray End or Else at the top level fails UnexpectedEnd or
// UnexpectedElse respectively.
func Group(raw []wasm.RawInstr) (wasm.Expr, error) {
	g := &grouper{raw: raw}
	expr, term, err := g.parseUntil()
	if err != nil {
		return nil, err
	}
	switch term {
	case termEnd:
		return nil, errors.New(errors.PhaseGroup, errors.KindUnexpectedEnd).
			Detail("stray end with no matching if/block").Build()
	case termElse:
		return nil, errors.New(errors.PhaseGroup, errors.KindUnexpectedElse).
			Detail("stray else with no matching if").Build()
	}
	return expr, nil
}

type grouper struct {
	raw []wasm.RawInstr
	pos int
}

func (g *grouper) parseUntil() (wasm.Expr, terminator, error) {
	var expr wasm.Expr
	for g.pos < len(g.raw) {
		ri := g.raw[g.pos]
		switch ri.Kind {
		case wasm.RawLeaf:
			expr = append(expr, ri.Leaf)
			g.pos++

		case wasm.RawEnd:
			g.pos++
			return expr, termEnd, nil

		case wasm.RawElse:
			g.pos++
			return expr, termElse, nil

		case wasm.RawIf:
			g.pos++
			ifInstr, err := g.parseIf(ri.Sig, ri.Label)
			if err != nil {
				return nil, 0, err
			}
			expr = append(expr, ifInstr)

		case wasm.RawBlock:
			g.pos++
			blockInstr, err := g.parseBlock(ri.Sig, ri.Label)
			if err != nil {
				return nil, 0, err
			}
			expr = append(expr, blockInstr)
		}
	}
	return expr, termEOF, nil
}

func (g *grouper) parseIf(sig wasm.FuncType, label string) (wasm.Instr, error) {
	then, term, err := g.parseUntil()
	if err != nil {
		return wasm.Instr{}, err
	}

	var elseBody wasm.Expr
	switch term {
	case termEnd:
		elseBody = wasm.Expr{}
	case termElse:
		body, term2, err := g.parseUntil()
		if err != nil {
			return wasm.Instr{}, err
		}
		if term2 == termElse {
			return wasm.Instr{}, errors.New(errors.PhaseGroup, errors.KindUnexpectedElse).
				Detail("if has more than one else branch").Build()
		}
		if term2 == termEOF {
			return wasm.Instr{}, errors.New(errors.PhaseGroup, errors.KindUnexpectedEnd).
				Detail("if's else branch is missing a matching end").Build()
		}
		elseBody = body
	case termEOF:
		return wasm.Instr{}, errors.New(errors.PhaseGroup, errors.KindUnexpectedEnd).
			Detail("if is missing a matching end").Build()
	}

	return wasm.Instr{Op: wasm.OpIf, Imm: wasm.IfImm{Sig: sig, Then: then, Else: elseBody, Label: label}}, nil
}

func (g *grouper) parseBlock(sig wasm.FuncType, label string) (wasm.Instr, error) {
	body, term, err := g.parseUntil()
	if err != nil {
		return wasm.Instr{}, err
	}
	switch term {
	case termElse:
		return wasm.Instr{}, errors.New(errors.PhaseGroup, errors.KindUnexpectedElse).
			Detail("block body may not contain an else").Build()
	case termEOF:
		return wasm.Instr{}, errors.New(errors.PhaseGroup, errors.KindUnexpectedEnd).
			Detail("block is missing a matching end").Build()
	}
	return wasm.Instr{Op: wasm.OpBlock, Imm: wasm.BlockImm{Sig: sig, Body: body, Label: label}}, nil
}
