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

import "github.com/gx-org/slir/ir"

// Vector reductions read a fixed number of source lanes (independent of
// the invocation's component count) and write destination lane 0 only;
// the replicated variants broadcast the scalar into lanes 0..3. The
// combining never short-circuits, matching the runtime instruction which
// evaluates every lane.

func evalBAllIEqual(dst *ir.Vector, w ir.BitWidth, a, b *ir.Vector, n int) {
	all := true
	for i := 0; i < n; i++ {
		all = all && a[i].Uint(w) == b[i].Uint(w)
	}
	dst[0].SetBool(w, all)
}

func evalBAnyINequal(dst *ir.Vector, w ir.BitWidth, a, b *ir.Vector, n int) {
	any := false
	for i := 0; i < n; i++ {
		any = any || a[i].Uint(w) != b[i].Uint(w)
	}
	dst[0].SetBool(w, any)
}

func fequalLane(w ir.BitWidth, a, b ir.Value) bool {
	switch w {
	case ir.Width16, ir.Width32:
		return a.Float32(w) == b.Float32(w)
	case ir.Width64:
		return a.Float64() == b.Float64()
	}
	panic(badWidth(w))
}

func evalBAllFEqual(dst *ir.Vector, w ir.BitWidth, a, b *ir.Vector, n int) {
	all := true
	for i := 0; i < n; i++ {
		all = all && fequalLane(w, a[i], b[i])
	}
	dst[0].SetBool(w, all)
}

func evalBAnyFNequal(dst *ir.Vector, w ir.BitWidth, a, b *ir.Vector, n int) {
	any := false
	for i := 0; i < n; i++ {
		any = any || !fequalLane(w, a[i], b[i])
	}
	dst[0].SetBool(w, any)
}

// fall_equal and fany_nequal are the 32-bit-only variants producing
// 1.0/0.0 floats instead of canonical booleans.

func evalFAllEqual(dst *ir.Vector, a, b *ir.Vector, n int) {
	all := true
	for i := 0; i < n; i++ {
		all = all && a[i].Float32(ir.Width32) == b[i].Float32(ir.Width32)
	}
	dst[0].SetFloat32(ir.Width32, b2f32(all))
}

func evalFAnyNequal(dst *ir.Vector, a, b *ir.Vector, n int) {
	any := false
	for i := 0; i < n; i++ {
		any = any || a[i].Float32(ir.Width32) != b[i].Float32(ir.Width32)
	}
	dst[0].SetFloat32(ir.Width32, b2f32(any))
}

// evalFDot accumulates the sum of products at the operand precision:
// float32 for 16- and 32-bit invocations, float64 for 64-bit.
func evalFDot(dst *ir.Vector, w ir.BitWidth, a, b *ir.Vector, n int, replicate bool) {
	switch w {
	case ir.Width16, ir.Width32:
		var sum float32
		for i := 0; i < n; i++ {
			sum += a[i].Float32(w) * b[i].Float32(w)
		}
		writeScalarFloat32(dst, w, sum, replicate)
	case ir.Width64:
		var sum float64
		for i := 0; i < n; i++ {
			sum += a[i].Float64() * b[i].Float64()
		}
		writeScalarFloat64(dst, sum, replicate)
	default:
		panic(badWidth(w))
	}
}

// evalFDph is the homogeneous dot product: src0.xyz . src1.xyz + src1.w.
func evalFDph(dst *ir.Vector, w ir.BitWidth, a, b *ir.Vector, replicate bool) {
	switch w {
	case ir.Width16, ir.Width32:
		var sum float32
		for i := 0; i < 3; i++ {
			sum += a[i].Float32(w) * b[i].Float32(w)
		}
		sum += b[3].Float32(w)
		writeScalarFloat32(dst, w, sum, replicate)
	case ir.Width64:
		var sum float64
		for i := 0; i < 3; i++ {
			sum += a[i].Float64() * b[i].Float64()
		}
		sum += b[3].Float64()
		writeScalarFloat64(dst, sum, replicate)
	default:
		panic(badWidth(w))
	}
}

func writeScalarFloat32(dst *ir.Vector, w ir.BitWidth, v float32, replicate bool) {
	dst[0].SetFloat32(w, v)
	if !replicate {
		return
	}
	for i := 1; i < len(dst); i++ {
		dst[i] = dst[0]
	}
}

func writeScalarFloat64(dst *ir.Vector, v float64, replicate bool) {
	dst[0].SetFloat64(v)
	if !replicate {
		return
	}
	for i := 1; i < len(dst); i++ {
		dst[i] = dst[0]
	}
}
