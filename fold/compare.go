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
	"golang.org/x/exp/constraints"

	"github.com/gx-org/slir/ir"
)

// Comparison kernels. The drivers store the outcome in the canonical
// boolean encoding for the invocation width (bit 0 at width 1,
// all-zero/all-one otherwise). IEEE comparison semantics apply: any
// comparison with NaN except fneu is false.

func flt[T constraints.Float](x, y T) bool { return x < y }

func fge[T constraints.Float](x, y T) bool { return x >= y }

func feq[T constraints.Float](x, y T) bool { return x == y }

func fneu[T constraints.Float](x, y T) bool { return x != y }

// evalBCSel selects lane-wise on the canonical boolean in src0. The
// selected operand is moved as raw bits: bcsel is type-agnostic.
func evalBCSel(dst *ir.Vector, nc int, w ir.BitWidth, c, a, b *ir.Vector) {
	for i := 0; i < nc; i++ {
		if c[i].Uint(w) != 0 {
			dst[i].SetUint(w, a[i].Uint(w))
		} else {
			dst[i].SetUint(w, b[i].Uint(w))
		}
	}
}

// evalFCSel selects on a 32-bit float condition: any non-zero value,
// including NaN, picks the first operand.
func evalFCSel(dst *ir.Vector, nc int, c, a, b *ir.Vector) {
	for i := 0; i < nc; i++ {
		if c[i].Float32(ir.Width32) != 0 {
			dst[i].SetUint(ir.Width32, a[i].Uint(ir.Width32))
		} else {
			dst[i].SetUint(ir.Width32, b[i].Uint(ir.Width32))
		}
	}
}
