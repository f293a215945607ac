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
	"fmt"

	"github.com/gx-org/slir/ir"
)

// Lane drivers: each applies a scalar kernel across the destination
// lanes, branching once on the invocation bit width. Float kernels are
// written once as generic functions and instantiated at float32 and
// float64; 16-bit lanes are decoded to float32 before the kernel runs and
// re-encoded afterwards, never computed at 16 bits. Integer kernels
// compute on sign- or zero-extended 64-bit values; the write-back
// truncation to the invocation width supplies two's-complement
// wraparound.

func badWidth(w ir.BitWidth) string {
	return fmt.Sprintf("fold: unsupported bit width %d", w)
}

func setFloat(v *ir.Value, w ir.BitWidth, f32 float32, f64 float64) {
	switch w {
	case ir.Width16, ir.Width32:
		v.SetFloat32(w, f32)
	case ir.Width64:
		v.SetFloat64(f64)
	default:
		panic(badWidth(w))
	}
}

func lanewiseFloat1(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, f32 func(float32) float32, f64 func(float64) float64) {
	switch w {
	case ir.Width16, ir.Width32:
		for i := 0; i < nc; i++ {
			dst[i].SetFloat32(w, f32(s[i].Float32(w)))
		}
	case ir.Width64:
		for i := 0; i < nc; i++ {
			dst[i].SetFloat64(f64(s[i].Float64()))
		}
	default:
		panic(badWidth(w))
	}
}

func lanewiseFloat2(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, f32 func(x, y float32) float32, f64 func(x, y float64) float64) {
	switch w {
	case ir.Width16, ir.Width32:
		for i := 0; i < nc; i++ {
			dst[i].SetFloat32(w, f32(a[i].Float32(w), b[i].Float32(w)))
		}
	case ir.Width64:
		for i := 0; i < nc; i++ {
			dst[i].SetFloat64(f64(a[i].Float64(), b[i].Float64()))
		}
	default:
		panic(badWidth(w))
	}
}

func lanewiseFloat3(dst *ir.Vector, nc int, w ir.BitWidth, a, b, c *ir.Vector, f32 func(x, y, z float32) float32, f64 func(x, y, z float64) float64) {
	switch w {
	case ir.Width16, ir.Width32:
		for i := 0; i < nc; i++ {
			dst[i].SetFloat32(w, f32(a[i].Float32(w), b[i].Float32(w), c[i].Float32(w)))
		}
	case ir.Width64:
		for i := 0; i < nc; i++ {
			dst[i].SetFloat64(f64(a[i].Float64(), b[i].Float64(), c[i].Float64()))
		}
	default:
		panic(badWidth(w))
	}
}

// lanewiseFloat32Bin drives the opcodes pinned to 32-bit floats (the
// legacy set ops and fcsel).
func lanewiseFloat32Bin(dst *ir.Vector, nc int, a, b *ir.Vector, fn func(x, y float32) float32) {
	for i := 0; i < nc; i++ {
		dst[i].SetFloat32(ir.Width32, fn(a[i].Float32(ir.Width32), b[i].Float32(ir.Width32)))
	}
}

func lanewiseInt1(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, fn func(a int64) int64) {
	for i := 0; i < nc; i++ {
		dst[i].SetInt(w, fn(s[i].Int(w)))
	}
}

func lanewiseInt2(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, fn func(x, y int64) int64) {
	for i := 0; i < nc; i++ {
		dst[i].SetInt(w, fn(a[i].Int(w), b[i].Int(w)))
	}
}

// lanewiseIntW2 passes the invocation width through to kernels that need
// the representable range or a shift mask.
func lanewiseIntW2(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, fn func(x, y int64, w ir.BitWidth) int64) {
	for i := 0; i < nc; i++ {
		dst[i].SetInt(w, fn(a[i].Int(w), b[i].Int(w), w))
	}
}

func lanewiseUint1(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector, fn func(a uint64) uint64) {
	for i := 0; i < nc; i++ {
		dst[i].SetUint(w, fn(s[i].Uint(w)))
	}
}

func lanewiseUint2(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, fn func(x, y uint64) uint64) {
	for i := 0; i < nc; i++ {
		dst[i].SetUint(w, fn(a[i].Uint(w), b[i].Uint(w)))
	}
}

func lanewiseUintW2(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, fn func(x, y uint64, w ir.BitWidth) uint64) {
	for i := 0; i < nc; i++ {
		dst[i].SetUint(w, fn(a[i].Uint(w), b[i].Uint(w), w))
	}
}

func lanewiseCmpFloat(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, c32 func(x, y float32) bool, c64 func(x, y float64) bool) {
	switch w {
	case ir.Width16, ir.Width32:
		for i := 0; i < nc; i++ {
			dst[i].SetBool(w, c32(a[i].Float32(w), b[i].Float32(w)))
		}
	case ir.Width64:
		for i := 0; i < nc; i++ {
			dst[i].SetBool(w, c64(a[i].Float64(), b[i].Float64()))
		}
	default:
		panic(badWidth(w))
	}
}

func lanewiseCmpInt(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, fn func(x, y int64) bool) {
	for i := 0; i < nc; i++ {
		dst[i].SetBool(w, fn(a[i].Int(w), b[i].Int(w)))
	}
}

func lanewiseCmpUint(dst *ir.Vector, nc int, w ir.BitWidth, a, b *ir.Vector, fn func(x, y uint64) bool) {
	for i := 0; i < nc; i++ {
		dst[i].SetBool(w, fn(a[i].Uint(w), b[i].Uint(w)))
	}
}
