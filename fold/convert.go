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

	"github.com/gx-org/slir/ir"
)

// Conversion evaluators. The opcode fixes the destination width; the
// invocation bit width is the source width. Float to integer conversion
// truncates toward zero and clamps to the destination range, with NaN
// converting to zero, so the folded constant never depends on the host's
// out-of-range conversion behavior.

// readFloat widens a lane to float64 without rounding; float32 and
// binary16 both embed exactly.
func readFloat(v ir.Value, w ir.BitWidth) float64 {
	switch w {
	case ir.Width16, ir.Width32:
		return float64(v.Float32(w))
	case ir.Width64:
		return v.Float64()
	}
	panic(badWidth(w))
}

func writeFloat(v *ir.Value, w ir.BitWidth, x float64) {
	if w == ir.Width64 {
		v.SetFloat64(x)
		return
	}
	v.SetFloat32(w, float32(x))
}

// evalF2F narrows in two steps for float64 to binary16, rounding through
// float32 first.
func evalF2F(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, wdst ir.BitWidth) {
	for i := 0; i < nc; i++ {
		writeFloat(&dst[i], wdst, readFloat(s[i], w))
	}
}

func evalF2I(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, wdst ir.BitWidth) {
	bound := math.Ldexp(1, int(wdst)-1)
	for i := 0; i < nc; i++ {
		x := readFloat(s[i], w)
		switch t := math.Trunc(x); {
		case math.IsNaN(x):
			dst[i].SetInt(wdst, 0)
		case t < -bound:
			dst[i].SetInt(wdst, minInt(wdst))
		case t >= bound:
			dst[i].SetInt(wdst, maxInt(wdst))
		default:
			dst[i].SetInt(wdst, int64(t))
		}
	}
}

func evalF2U(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, wdst ir.BitWidth) {
	bound := math.Ldexp(1, int(wdst))
	for i := 0; i < nc; i++ {
		x := readFloat(s[i], w)
		switch t := math.Trunc(x); {
		case math.IsNaN(x), t <= 0:
			dst[i].SetUint(wdst, 0)
		case t >= bound:
			dst[i].SetUint(wdst, maxUint(wdst))
		default:
			dst[i].SetUint(wdst, uint64(t))
		}
	}
}

// Integers bound for a binary16 destination pass through float32; every
// integer small enough to stay finite in binary16 is exact in float32, so
// only one rounding takes effect.

func evalI2F(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, wdst ir.BitWidth) {
	for i := 0; i < nc; i++ {
		v := s[i].Int(w)
		if wdst == ir.Width64 {
			dst[i].SetFloat64(float64(v))
			continue
		}
		dst[i].SetFloat32(wdst, float32(v))
	}
}

func evalU2F(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, wdst ir.BitWidth) {
	for i := 0; i < nc; i++ {
		v := s[i].Uint(w)
		if wdst == ir.Width64 {
			dst[i].SetFloat64(float64(v))
			continue
		}
		dst[i].SetFloat32(wdst, float32(v))
	}
}

// evalI2I sign-extends through the 64-bit read; widening fills with the
// sign bit and narrowing truncates.
func evalI2I(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, wdst ir.BitWidth) {
	for i := 0; i < nc; i++ {
		dst[i].SetInt(wdst, s[i].Int(w))
	}
}

func evalU2U(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, wdst ir.BitWidth) {
	for i := 0; i < nc; i++ {
		dst[i].SetUint(wdst, s[i].Uint(w))
	}
}

func evalB2F(dst *ir.Vector, nc int, s *ir.Vector, wdst ir.BitWidth) {
	for i := 0; i < nc; i++ {
		var x float64
		if s[i].Bool() {
			x = 1
		}
		writeFloat(&dst[i], wdst, x)
	}
}

func evalB2I(dst *ir.Vector, nc int, s *ir.Vector, wdst ir.BitWidth) {
	for i := 0; i < nc; i++ {
		var v int64
		if s[i].Bool() {
			v = 1
		}
		dst[i].SetInt(wdst, v)
	}
}

// evalF2B maps every non-zero value, NaN included, to true.
func evalF2B(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		dst[i].SetBool(ir.Width1, readFloat(s[i], w) != 0)
	}
}
