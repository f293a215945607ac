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
	"math/bits"

	"github.com/gx-org/slir/ir"
)

// Integer kernels. Operands arrive sign- or zero-extended to 64 bits;
// the driver's write-back truncation to the invocation width provides
// modular wraparound for the non-saturating ops. Kernels that need the
// representable range of the invocation width (saturation, shifts,
// high multiplies) receive the width explicitly.

// minInt and maxInt are the bounds of the signed range at width w.
// At width 1 the range is {-1, 0}: the single bit is the sign bit.
func minInt(w ir.BitWidth) int64 {
	return -1 << (w - 1)
}

func maxInt(w ir.BitWidth) int64 {
	return 1<<(w-1) - 1
}

func maxUint(w ir.BitWidth) uint64 {
	if w == ir.Width64 {
		return ^uint64(0)
	}
	return 1<<w - 1
}

func iadd(x, y int64) int64 { return x + y }

func isub(x, y int64) int64 { return x - y }

func imul(x, y int64) int64 { return x * y }

func ineg(x int64) int64 { return -x }

func iabs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func isign(x int64) int64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// Integer division and modulo by zero folds to 0: the evaluator must
// always terminate with a usable constant.

func idiv(x, y int64) int64 {
	if y == 0 {
		return 0
	}
	return x / y
}

func udiv(x, y uint64) uint64 {
	if y == 0 {
		return 0
	}
	return x / y
}

// imod follows the sign of the divisor (shading-language modulo);
// irem follows the sign of the dividend (C remainder).
func imod(x, y int64) int64 {
	if y == 0 {
		return 0
	}
	r := x % y
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

func umod(x, y uint64) uint64 {
	if y == 0 {
		return 0
	}
	return x % y
}

func irem(x, y int64) int64 {
	if y == 0 {
		return 0
	}
	return x % y
}

func imin(x, y int64) int64 {
	if x < y {
		return x
	}
	return y
}

func imax(x, y int64) int64 {
	if x > y {
		return x
	}
	return y
}

func umin(x, y uint64) uint64 {
	if x < y {
		return x
	}
	return y
}

func umax(x, y uint64) uint64 {
	if x > y {
		return x
	}
	return y
}

func iand(x, y uint64) uint64 { return x & y }

func ior(x, y uint64) uint64 { return x | y }

func ixor(x, y uint64) uint64 { return x ^ y }

func inot(x uint64) uint64 { return ^x }

// Shift counts are masked by w-1, as the runtime instruction masks them.
func ishl(x, y uint64, w ir.BitWidth) uint64 {
	return x << (y & uint64(w-1))
}

func ishr(x, y int64, w ir.BitWidth) int64 {
	return x >> (uint64(y) & uint64(w-1))
}

func ushr(x, y uint64, w ir.BitWidth) uint64 {
	return x >> (y & uint64(w-1))
}

// Saturation detects wraparound at the operand width instead of widening
// and re-truncating, so the same kernel is exact at all five widths
// including 64.

func iaddSat(x, y int64, w ir.BitWidth) int64 {
	if y > 0 {
		if x > maxInt(w)-y {
			return maxInt(w)
		}
	} else if x < minInt(w)-y {
		return minInt(w)
	}
	return x + y
}

func uaddSat(x, y uint64, w ir.BitWidth) uint64 {
	if x > maxUint(w)-y {
		return maxUint(w)
	}
	return x + y
}

func isubSat(x, y int64, w ir.BitWidth) int64 {
	if y < 0 {
		if x > maxInt(w)+y {
			return maxInt(w)
		}
	} else if x < minInt(w)+y {
		return minInt(w)
	}
	return x - y
}

func usubSat(x, y uint64) uint64 {
	if y > x {
		return 0
	}
	return x - y
}

func uaddCarry(x, y uint64, w ir.BitWidth) uint64 {
	if x > maxUint(w)-y {
		return 1
	}
	return 0
}

func usubBorrow(x, y uint64) uint64 {
	if y > x {
		return 1
	}
	return 0
}

// Halving adds use the overflow-free identities
// (x&y) + ((x^y)>>1) and (x|y) - ((x^y)>>1).

func ihadd(x, y int64) int64 { return (x & y) + ((x ^ y) >> 1) }

func uhadd(x, y uint64) uint64 { return (x & y) + ((x ^ y) >> 1) }

func irhadd(x, y int64) int64 { return (x | y) - ((x ^ y) >> 1) }

func urhadd(x, y uint64) uint64 { return (x | y) - ((x ^ y) >> 1) }

// imulHigh and umulHigh return the high half of the double-width
// product. Widths up to 32 fit a 64-bit product; width 64 goes through a
// 128-bit intermediate built from two 64-bit halves, with the sign of
// each operand folded into the high half.

func imulHigh(x, y int64, w ir.BitWidth) int64 {
	if w == ir.Width64 {
		hi, _ := bits.Mul64(uint64(x), uint64(y))
		if x < 0 {
			hi -= uint64(y)
		}
		if y < 0 {
			hi -= uint64(x)
		}
		return int64(hi)
	}
	return (x * y) >> w
}

func umulHigh(x, y uint64, w ir.BitWidth) uint64 {
	if w == ir.Width64 {
		hi, _ := bits.Mul64(x, y)
		return hi
	}
	return (x * y) >> w
}

func ilt(x, y int64) bool { return x < y }

func ige(x, y int64) bool { return x >= y }

func ieq(x, y int64) bool { return x == y }

func ine(x, y int64) bool { return x != y }

func ult(x, y uint64) bool { return x < y }

func uge(x, y uint64) bool { return x >= y }
