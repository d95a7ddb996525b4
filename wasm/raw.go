package wasm

// RawKind tags a flat, pre-grouping instruction as an ordinary leaf, or
// as one of the structural markers the parser emits for if/else/end/
// block (spec §4.4).
type RawKind int

const (
	RawLeaf RawKind = iota
	RawIf
	RawElse
	RawEnd
	RawBlock
)

// RawInstr is one element of the flat instruction stream the parser
// produces. Grouping (package group) consumes a []RawInstr and produces
// an Expr with If/Block nodes holding nested, already-grouped bodies.
type RawInstr struct {
	Kind  RawKind
	Leaf  Instr    // valid when Kind == RawLeaf
	Sig   FuncType // valid when Kind == RawIf or RawBlock
	Label string   // branch target name, if the source gave one; valid when Kind == RawIf or RawBlock
}
