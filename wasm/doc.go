// Package wasm defines the value, type, and instruction model shared by
// the interpreter core: value types, locals, function signatures, and
// the instruction tree produced by the grouping pass (package group).
//
// This package does not encode or decode WebAssembly binaries — the
// interpreter works directly over an in-memory instruction tree built
// from REPL lines, never over compiled modules.
package wasm
