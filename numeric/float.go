package numeric

import (
	"math"

	"github.com/wippyai/wasmrepl/wasm"
)

// Abs clears the sign bit.
func Abs(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.F32:
		return wasm.F32Val(float32(math.Abs(float64(v.F32()))))
	case wasm.F64:
		return wasm.F64Val(math.Abs(v.F64()))
	default:
		panic("numeric: Abs on non-float value")
	}
}

// Neg flips the sign bit.
func Neg(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.F32:
		return wasm.F32Val(-v.F32())
	case wasm.F64:
		return wasm.F64Val(-v.F64())
	default:
		panic("numeric: Neg on non-float value")
	}
}

// Ceil rounds toward +infinity.
func Ceil(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.F32:
		return wasm.F32Val(float32(math.Ceil(float64(v.F32()))))
	case wasm.F64:
		return wasm.F64Val(math.Ceil(v.F64()))
	default:
		panic("numeric: Ceil on non-float value")
	}
}

// Floor rounds toward -infinity.
func Floor(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.F32:
		return wasm.F32Val(float32(math.Floor(float64(v.F32()))))
	case wasm.F64:
		return wasm.F64Val(math.Floor(v.F64()))
	default:
		panic("numeric: Floor on non-float value")
	}
}

// Trunc rounds toward zero.
func Trunc(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.F32:
		return wasm.F32Val(float32(math.Trunc(float64(v.F32()))))
	case wasm.F64:
		return wasm.F64Val(math.Trunc(v.F64()))
	default:
		panic("numeric: Trunc on non-float value")
	}
}

// Nearest rounds to the nearest integer, ties to even.
func Nearest(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.F32:
		return wasm.F32Val(float32(math.RoundToEven(float64(v.F32()))))
	case wasm.F64:
		return wasm.F64Val(math.RoundToEven(v.F64()))
	default:
		panic("numeric: Nearest on non-float value")
	}
}

// Sqrt computes the IEEE-754 square root.
func Sqrt(v wasm.Value) wasm.Value {
	switch v.Type {
	case wasm.F32:
		return wasm.F32Val(float32(math.Sqrt(float64(v.F32()))))
	case wasm.F64:
		return wasm.F64Val(math.Sqrt(v.F64()))
	default:
		panic("numeric: Sqrt on non-float value")
	}
}

// FAdd computes lhs + rhs.
func FAdd(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.F32:
		return wasm.F32Val(lhs.F32() + rhs.F32())
	case wasm.F64:
		return wasm.F64Val(lhs.F64() + rhs.F64())
	default:
		panic("numeric: FAdd on non-float value")
	}
}

// FSub computes lhs - rhs.
func FSub(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.F32:
		return wasm.F32Val(lhs.F32() - rhs.F32())
	case wasm.F64:
		return wasm.F64Val(lhs.F64() - rhs.F64())
	default:
		panic("numeric: FSub on non-float value")
	}
}

// FMul computes lhs * rhs.
func FMul(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.F32:
		return wasm.F32Val(lhs.F32() * rhs.F32())
	case wasm.F64:
		return wasm.F64Val(lhs.F64() * rhs.F64())
	default:
		panic("numeric: FMul on non-float value")
	}
}

// FDiv computes lhs / rhs. Division by zero yields ±Inf or NaN per
// IEEE-754, never an error.
func FDiv(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.F32:
		return wasm.F32Val(lhs.F32() / rhs.F32())
	case wasm.F64:
		return wasm.F64Val(lhs.F64() / rhs.F64())
	default:
		panic("numeric: FDiv on non-float value")
	}
}

// Min returns NaN if either operand is NaN; otherwise the numeric
// minimum, with -0.0 < +0.0 for tie-breaking.
func Min(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.F32:
		a, b := lhs.F32(), rhs.F32()
		if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
			return wasm.F32Val(float32(math.NaN()))
		}
		if a == 0 && b == 0 {
			if math.Signbit(float64(a)) {
				return lhs
			}
			return rhs
		}
		if a < b {
			return lhs
		}
		return rhs
	case wasm.F64:
		a, b := lhs.F64(), rhs.F64()
		if math.IsNaN(a) || math.IsNaN(b) {
			return wasm.F64Val(math.NaN())
		}
		if a == 0 && b == 0 {
			if math.Signbit(a) {
				return lhs
			}
			return rhs
		}
		if a < b {
			return lhs
		}
		return rhs
	default:
		panic("numeric: Min on non-float value")
	}
}

// Max returns NaN if either operand is NaN; otherwise the numeric
// maximum, with -0.0 < +0.0 for tie-breaking.
func Max(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.F32:
		a, b := lhs.F32(), rhs.F32()
		if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
			return wasm.F32Val(float32(math.NaN()))
		}
		if a == 0 && b == 0 {
			if math.Signbit(float64(a)) {
				return rhs
			}
			return lhs
		}
		if a > b {
			return lhs
		}
		return rhs
	case wasm.F64:
		a, b := lhs.F64(), rhs.F64()
		if math.IsNaN(a) || math.IsNaN(b) {
			return wasm.F64Val(math.NaN())
		}
		if a == 0 && b == 0 {
			if math.Signbit(a) {
				return rhs
			}
			return lhs
		}
		if a > b {
			return lhs
		}
		return rhs
	default:
		panic("numeric: Max on non-float value")
	}
}

// Copysign returns a value with the magnitude of lhs and the sign of rhs.
func Copysign(lhs, rhs wasm.Value) wasm.Value {
	switch lhs.Type {
	case wasm.F32:
		return wasm.F32Val(float32(math.Copysign(float64(lhs.F32()), float64(rhs.F32()))))
	case wasm.F64:
		return wasm.F64Val(math.Copysign(lhs.F64(), rhs.F64()))
	default:
		panic("numeric: Copysign on non-float value")
	}
}
