package numeric

import (
	"math"
	"math/bits"

	"github.com/wippyai/wasmrepl/errors"
	"github.com/wippyai/wasmrepl/wasm"
)

// Clz returns the count of leading zero bits of v's unsigned
// representation; the full width if v is zero.
func Clz(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.I32:
		return wasm.I32Val(int32(bits.LeadingZeros32(v.U32())))
	case wasm.I64:
		return wasm.I64Val(int64(bits.LeadingZeros64(v.U64())))
	default:
		panic("numeric: Clz on non-integer value")
	}
}

// Ctz returns the count of trailing zero bits of v's unsigned
// representation; the full width if v is zero.
func Ctz(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.I32:
		return wasm.I32Val(int32(bits.TrailingZeros32(v.U32())))
	case wasm.I64:
		return wasm.I64Val(int64(bits.TrailingZeros64(v.U64())))
	default:
		panic("numeric: Ctz on non-integer value")
	}
}

// Popcnt returns the count of 1 bits in v.
func Popcnt(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.I32:
		return wasm.I32Val(int32(bits.OnesCount32(v.U32())))
	case wasm.I64:
		return wasm.I64Val(int64(bits.OnesCount64(v.U64())))
	default:
		panic("numeric: Popcnt on non-integer value")
	}
}

// Add computes lhs + rhs with two's-complement wrapping.
func Add(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		return wasm.I32Val(lhs.I32() + rhs.I32())
	case wasm.I64:
		return wasm.I64Val(lhs.I64() + rhs.I64())
	default:
		panic("numeric: Add on non-integer value")
	}
}

// Sub computes lhs - rhs with two's-complement wrapping.
func Sub(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		return wasm.I32Val(lhs.I32() - rhs.I32())
	case wasm.I64:
		return wasm.I64Val(lhs.I64() - rhs.I64())
	default:
		panic("numeric: Sub on non-integer value")
	}
}

// Mul computes lhs * rhs with two's-complement wrapping.
func Mul(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		return wasm.I32Val(lhs.I32() * rhs.I32())
	case wasm.I64:
		return wasm.I64Val(lhs.I64() * rhs.I64())
	default:
		panic("numeric: Mul on non-integer value")
	}
}

func divByZero() error {
	return errors.New(errors.PhaseExec, errors.KindDivideByZero).Detail("division by zero").Build()
}

func intOverflow() error {
	return errors.New(errors.PhaseExec, errors.KindIntegerOverflow).Detail("signed division overflow").Build()
}

// DivS computes signed lhs / rhs. Division by zero fails DivideByZero;
// MIN / -1 fails IntegerOverflow.
func DivS(lhs, rhs wasm.Value) (wasm.Value, error) {
	switch lhs.Type {
	case wasm.I32:
		a, b := lhs.I32(), rhs.I32()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		if a == math.MinInt32 && b == -1 {
			return wasm.Value{}, intOverflow()
		}
		return wasm.I32Val(a / b), nil
	case wasm.I64:
		a, b := lhs.I64(), rhs.I64()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		if a == math.MinInt64 && b == -1 {
			return wasm.Value{}, intOverflow()
		}
		return wasm.I64Val(a / b), nil
	default:
		panic("numeric: DivS on non-integer value")
	}
}

// RemS computes the signed remainder of lhs / rhs. Division by zero
// fails DivideByZero; MIN rem -1 yields 0 (not an error).
func RemS(lhs, rhs wasm.Value) (wasm.Value, error) {
	switch lhs.Type {
	case wasm.I32:
		a, b := lhs.I32(), rhs.I32()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		if a == math.MinInt32 && b == -1 {
			return wasm.I32Val(0), nil
		}
		return wasm.I32Val(a % b), nil
	case wasm.I64:
		a, b := lhs.I64(), rhs.I64()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		if a == math.MinInt64 && b == -1 {
			return wasm.I64Val(0), nil
		}
		return wasm.I64Val(a % b), nil
	default:
		panic("numeric: RemS on non-integer value")
	}
}

// DivU computes unsigned lhs / rhs (both operands reinterpreted as
// unsigned). Division by zero fails DivideByZero.
func DivU(lhs, rhs wasm.Value) (wasm.Value, error) {
	switch lhs.Type {
	case wasm.I32:
		a, b := lhs.U32(), rhs.U32()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		return wasm.I32Val(int32(a / b)), nil
	case wasm.I64:
		a, b := lhs.U64(), rhs.U64()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		return wasm.I64Val(int64(a / b)), nil
	default:
		panic("numeric: DivU on non-integer value")
	}
}

// RemU computes the unsigned remainder of lhs / rhs. Division by zero
// fails DivideByZero.
func RemU(lhs, rhs wasm.Value) (wasm.Value, error) {
	switch lhs.Type {
	case wasm.I32:
		a, b := lhs.U32(), rhs.U32()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		return wasm.I32Val(int32(a % b)), nil
	case wasm.I64:
		a, b := lhs.U64(), rhs.U64()
		if b == 0 {
			return wasm.Value{}, divByZero()
		}
		return wasm.I64Val(int64(a % b)), nil
	default:
		panic("numeric: RemU on non-integer value")
	}
}

// And computes the bitwise AND of lhs and rhs.
func And(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		return wasm.I32Val(int32(lhs.U32() & rhs.U32()))
	case wasm.I64:
		return wasm.I64Val(int64(lhs.U64() & rhs.U64()))
	default:
		panic("numeric: And on non-integer value")
	}
}

// Or computes the bitwise OR of lhs and rhs.
func Or(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		return wasm.I32Val(int32(lhs.U32() | rhs.U32()))
	case wasm.I64:
		return wasm.I64Val(int64(lhs.U64() | rhs.U64()))
	default:
		panic("numeric: Or on non-integer value")
	}
}

// Xor computes the bitwise XOR of lhs and rhs.
func Xor(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		return wasm.I32Val(int32(lhs.U32() ^ rhs.U32()))
	case wasm.I64:
		return wasm.I64Val(int64(lhs.U64() ^ rhs.U64()))
	default:
		panic("numeric: Xor on non-integer value")
	}
}

// Shl computes lhs << (rhs mod width).
func Shl(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		amt := rhs.U32() % 32
		return wasm.I32Val(int32(lhs.U32() << amt))
	case wasm.I64:
		amt := rhs.U64() % 64
		return wasm.I64Val(int64(lhs.U64() << amt))
	default:
		panic("numeric: Shl on non-integer value")
	}
}

// ShrS computes the arithmetic (sign-extending) right shift of lhs by
// (rhs mod width).
func ShrS(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		amt := rhs.U32() % 32
		return wasm.I32Val(lhs.I32() >> amt)
	case wasm.I64:
		amt := rhs.U64() % 64
		return wasm.I64Val(lhs.I64() >> amt)
	default:
		panic("numeric: ShrS on non-integer value")
	}
}

// ShrU computes the logical (zero-filling) right shift of lhs by
// (rhs mod width).
func ShrU(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		amt := rhs.U32() % 32
		return wasm.I32Val(int32(lhs.U32() >> amt))
	case wasm.I64:
		amt := rhs.U64() % 64
		return wasm.I64Val(int64(lhs.U64() >> amt))
	default:
		panic("numeric: ShrU on non-integer value")
	}
}

// Rotl rotates lhs left by (rhs mod width) bits.
func Rotl(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		amt := int(rhs.U32() % 32)
		return wasm.I32Val(int32(bits.RotateLeft32(lhs.U32(), amt)))
	case wasm.I64:
		amt := int(rhs.U64() % 64)
		return wasm.I64Val(int64(bits.RotateLeft64(lhs.U64(), amt)))
	default:
		panic("numeric: Rotl on non-integer value")
	}
}

// Rotr rotates lhs right by (rhs mod width) bits.
func Rotr(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.I32:
		amt := int(rhs.U32() % 32)
		return wasm.I32Val(int32(bits.RotateLeft32(lhs.U32(), -amt)))
	case wasm.I64:
		amt := int(rhs.U64() % 64)
		return wasm.I64Val(int64(bits.RotateLeft64(lhs.U64(), -amt)))
	default:
		panic("numeric: Rotr on non-integer value")
	}
}
