// Package wasmrepl implements a REPL core for a stack-based, WebAssembly-
// flavored instruction language: parse one input line, execute it against
// a transactional call stack, and render the resulting state.
//
// # Architecture Overview
//
// The module is organized by concern, one package per moving part:
//
//	wasm/        Instruction, value, and function-signature types shared by every layer
//	container/   Versioned List/Dict/Elements: the commit/rollback overlay primitive
//	locals/      A function frame's locals, built on container.Elements
//	stack/       A block frame's value stack, built on the same overlay discipline
//	frame/       Block Frame and Function Frame: stack/locals plus a signature
//	callstack/   The Call Stack: add_func/remove_func, add_block/remove_block
//	functable/   The append-only function registry, addressable by index or id
//	group/       Flat instruction stream -> nested if/block expression tree
//	handler/     Leaf instruction execution (arithmetic, local access, drop)
//	executor/    The tree-walking executor tying call stack, functable, and handler together
//	parser/      Tokenizes and parses one REPL line into an executor.Line
//	engine/      Ambient facilities (structured logging) shared by core and front-end
//	errors/      The structured error type used throughout
//	cmd/repl/    The REPL front-end: non-interactive replay, stdin loop, and bubbletea TUI
//
// # Execution Model
//
// A line is parsed, grouped into a nested expression tree, and walked by
// the executor against the session's call stack. Leaf instructions touch
// only the current block's value stack or the current frame's locals;
// structured instructions (block, if) push a new block frame and recurse;
// call pushes a new function frame. On success the session frame's
// pending growth is committed; on any failure, everything the line did is
// rolled back in full, leaving prior state untouched.
package wasmrepl
