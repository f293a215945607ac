// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fold

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/gx-org/slir/internal/f16"
	"github.com/gx-org/slir/ir"
)

// Float kernels. Each is written once and instantiated at float32 and
// float64 by the dispatcher; computing at the operand width (not in a
// wider type with a final truncation) keeps rounding identical to the
// runtime instruction.

func fadd[T constraints.Float](x, y T) T { return x + y }

func fsub[T constraints.Float](x, y T) T { return x - y }

func fmul[T constraints.Float](x, y T) T { return x * y }

// fdiv relies on IEEE division for the zero divisor: the result is
// +-Inf or NaN, never a trap.
func fdiv[T constraints.Float](x, y T) T { return x / y }

func frcp[T constraints.Float](x T) T { return 1 / x }

func frsq[T constraints.Float](x T) T { return 1 / fsqrt(x) }

func fsqrt[T constraints.Float](x T) T { return T(math.Sqrt(float64(x))) }

func ffma[T constraints.Float](x, y, z T) T { return T(math.FMA(float64(x), float64(y), float64(z))) }

// fmod is the floored modulo of the shading language (the result takes
// the sign of y), computed by the literal formula rather than an exact
// remainder so that rounding matches the runtime instruction.
func fmod[T constraints.Float](x, y T) T { return x - y*ffloor(x/y) }

// frem is the C-style remainder: the result takes the sign of x.
func frem[T constraints.Float](x, y T) T { return x - y*ftrunc(x/y) }

func fneg[T constraints.Float](x T) T { return -x }

func fabs[T constraints.Float](x T) T { return T(math.Abs(float64(x))) }

func fsat[T constraints.Float](x T) T { return fmin(fmax(x, 0), 1) }

// fsign returns -1 for NaN: the comparisons below are both false, which
// is the committed behavior of the reference instruction.
func fsign[T constraints.Float](x T) T {
	if x == 0 {
		return 0
	}
	if x > 0 {
		return 1
	}
	return -1
}

// fmin and fmax return the other operand when one is NaN, matching
// fminf/fmaxf rather than a NaN-propagating minimum.
func fmin[T constraints.Float](x, y T) T {
	if x != x {
		return y
	}
	if y != y {
		return x
	}
	if x < y {
		return x
	}
	return y
}

func fmax[T constraints.Float](x, y T) T {
	if x != x {
		return y
	}
	if y != y {
		return x
	}
	if x > y {
		return x
	}
	return y
}

func ffloor[T constraints.Float](x T) T { return T(math.Floor(float64(x))) }

func fceil[T constraints.Float](x T) T { return T(math.Ceil(float64(x))) }

func ftrunc[T constraints.Float](x T) T { return T(math.Trunc(float64(x))) }

func froundEven[T constraints.Float](x T) T { return T(math.RoundToEven(float64(x))) }

func ffract[T constraints.Float](x T) T { return x - ffloor(x) }

func fexp2[T constraints.Float](x T) T { return T(math.Exp2(float64(x))) }

func flog2[T constraints.Float](x T) T { return T(math.Log2(float64(x))) }

func fpow[T constraints.Float](x, y T) T { return T(math.Pow(float64(x), float64(y))) }

func fsin[T constraints.Float](x T) T { return T(math.Sin(float64(x))) }

func fcos[T constraints.Float](x T) T { return T(math.Cos(float64(x))) }

// The legacy set ops compare at 32 bits and encode the outcome as
// 1.0/0.0 floats.

func slt(x, y float32) float32 { return b2f32(x < y) }

func sge(x, y float32) float32 { return b2f32(x >= y) }

func seq(x, y float32) float32 { return b2f32(x == y) }

func sne(x, y float32) float32 { return b2f32(x != y) }

func b2f32(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// evalLdexp scales src0 by two to the power of the 32-bit integer lane
// of src1. Scaling in float64 is exact over the float32 range, so the
// single rounding on write-back matches ldexpf.
func evalLdexp(dst *ir.Vector, nc int, w ir.BitWidth, s, e *ir.Vector) {
	switch w {
	case ir.Width16, ir.Width32:
		for i := 0; i < nc; i++ {
			exp := int(e[i].Int(ir.Width32))
			dst[i].SetFloat32(w, float32(math.Ldexp(float64(s[i].Float32(w)), exp)))
		}
	case ir.Width64:
		for i := 0; i < nc; i++ {
			exp := int(e[i].Int(ir.Width32))
			dst[i].SetFloat64(math.Ldexp(s[i].Float64(), exp))
		}
	default:
		panic(badWidth(w))
	}
}

// evalFQuantize2F16 simulates a round trip through binary16: values too
// small for a normal binary16 flush to signed zero, everything else takes
// the binary16 rounding.
func evalFQuantize2F16(dst *ir.Vector, nc int, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		x := s[i].Float32(ir.Width32)
		if math.Abs(float64(x)) < 1.0/(1<<14) {
			dst[i].SetFloat32(ir.Width32, float32(math.Copysign(0, float64(x))))
			continue
		}
		dst[i].SetFloat32(ir.Width32, f16.ToFloat32(f16.FromFloat32(x)))
	}
}

func evalFrexpExp(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		var exp int
		switch w {
		case ir.Width16, ir.Width32:
			_, exp = math.Frexp(float64(s[i].Float32(w)))
		case ir.Width64:
			_, exp = math.Frexp(s[i].Float64())
		default:
			panic(badWidth(w))
		}
		dst[i].SetInt(ir.Width32, int64(exp))
	}
}

func evalFrexpSig(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector) {
	switch w {
	case ir.Width16, ir.Width32:
		for i := 0; i < nc; i++ {
			sig, _ := math.Frexp(float64(s[i].Float32(w)))
			dst[i].SetFloat32(w, float32(sig))
		}
	case ir.Width64:
		for i := 0; i < nc; i++ {
			sig, _ := math.Frexp(s[i].Float64())
			dst[i].SetFloat64(sig)
		}
	default:
		panic(badWidth(w))
	}
}
