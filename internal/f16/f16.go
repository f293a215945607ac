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

// Package f16 converts between IEEE binary16 bit patterns and float32.
//
// The host has no native 16-bit float type, so binary16 lanes are stored
// as their raw encoding and promoted to float32 for arithmetic. Demotion
// rounds to nearest, ties to even; out-of-range values overflow to
// infinity.
package f16

import "math"

// ToFloat32 widens a binary16 bit pattern to float32. The conversion is
// exact: every binary16 value is representable as a float32.
func ToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	man := uint32(h & 0x3ff)
	switch exp {
	case 0:
		if man == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: man * 2^-24, exact in float32.
		f := float32(man) / (1 << 24)
		if sign != 0 {
			f = -f
		}
		return f
	case 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | man<<13)
	}
	return math.Float32frombits(sign | (exp+112)<<23 | man<<13)
}

// FromFloat32 narrows a float32 to a binary16 bit pattern, rounding to
// nearest-even. NaN becomes a quiet NaN preserving the sign; values too
// large for binary16 become infinity.
func FromFloat32(f float32) uint16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int32(b>>23) & 0xff
	man := b & 0x7fffff
	if exp == 0xff {
		if man != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	}
	e := exp - 127 + 15
	if e >= 0x1f {
		return sign | 0x7c00
	}
	if e <= 0 {
		if e < -10 {
			// Too small for a binary16 subnormal; rounds to zero.
			return sign
		}
		man |= 0x800000
		shift := uint32(14 - e)
		half := man >> shift
		rem := man & (1<<shift - 1)
		mid := uint32(1) << (shift - 1)
		if rem > mid || (rem == mid && half&1 == 1) {
			half++
		}
		return sign | uint16(half)
	}
	half := man >> 13
	rem := man & 0x1fff
	h := sign | uint16(e)<<10 | uint16(half)
	if rem > 0x1000 || (rem == 0x1000 && half&1 == 1) {
		// Mantissa carry may overflow into the exponent; the bit
		// layout makes the increment produce the correctly rounded
		// result, including overflow to infinity.
		h++
	}
	return h
}
