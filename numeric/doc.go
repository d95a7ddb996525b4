// Package numeric implements the integer and floating-point operation
// kernels used by package handler: wrapping arithmetic, signed/unsigned
// division and remainder, bit counting, shifts, rotations, and IEEE-754
// unary/binary operations (spec §4.5, §9 "Numeric semantics").
//
// Kernels are separated from value dispatch: callers (package handler)
// pop operands off the current block's stack, pass them here, and push
// the result — this package never touches a stack or frame.
package numeric
