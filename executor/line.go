package executor

import "github.com/wippyai/wasmrepl/wasm"

// FuncDecl carries a function definition line's id and signature; the
// declared locals and raw body ride along on the enclosing Line.
type FuncDecl struct {
	Id  string
	Sig wasm.FuncType
}

// Line is one parsed REPL input: either a bare expression (Func == nil)
// or a function definition (Func != nil), per spec §3 Line. Locals
// declares new variables: for an expression line they grow the session
// frame immediately; for a function definition they are the function's
// own body locals, grown into its frame at call time.
type Line struct {
	Func   *FuncDecl
	Locals []wasm.Local
	Body   []wasm.RawInstr
}
