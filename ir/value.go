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

package ir

import (
	"fmt"
	"math"

	"github.com/gx-org/slir/internal/f16"
)

// Value is one constant scalar lane. The storage is a raw 64-bit pattern
// reinterpreted per call through the typed accessors below; the component
// count and bit width are attributes of the operation invocation, not of
// the value.
type Value struct {
	bits uint64
}

// Vector is a constant SSA value of up to four lanes (x, y, z, w).
// Lanes beyond the invocation's component count stay zero.
type Vector [4]Value

func mask(w BitWidth) uint64 {
	switch w {
	case Width1:
		return 1
	case Width8:
		return math.MaxUint8
	case Width16:
		return math.MaxUint16
	case Width32:
		return math.MaxUint32
	case Width64:
		return math.MaxUint64
	}
	panic(fmt.Sprintf("ir: invalid bit width %d", w))
}

// Bits returns the raw stored pattern.
func (v Value) Bits() uint64 {
	return v.bits
}

// SetBits stores a raw pattern without truncation.
func (v *Value) SetBits(b uint64) {
	v.bits = b
}

// Uint reads the lane as an unsigned integer of the given width.
// A 1-bit lane yields 0 or 1.
func (v Value) Uint(w BitWidth) uint64 {
	return v.bits & mask(w)
}

// Int reads the lane as a signed integer of the given width, sign-extended
// to 64 bits. A 1-bit lane yields 0 or -1: the single stored bit is the
// sign bit, so the two's-complement values at width 1 are 0 and -1.
func (v Value) Int(w BitWidth) int64 {
	switch w {
	case Width1:
		if v.bits&1 != 0 {
			return -1
		}
		return 0
	case Width8:
		return int64(int8(v.bits))
	case Width16:
		return int64(int16(v.bits))
	case Width32:
		return int64(int32(v.bits))
	case Width64:
		return int64(v.bits)
	}
	panic(fmt.Sprintf("ir: invalid bit width %d", w))
}

// Bool reads bit 0 of the lane.
func (v Value) Bool() bool {
	return v.bits&1 != 0
}

// Float32 reads a 16- or 32-bit float lane as a float32. Binary16 lanes
// are decoded; arithmetic on them always happens at 32 bits or wider.
func (v Value) Float32(w BitWidth) float32 {
	switch w {
	case Width16:
		return f16.ToFloat32(uint16(v.bits))
	case Width32:
		return math.Float32frombits(uint32(v.bits))
	}
	panic(fmt.Sprintf("ir: invalid float32 bit width %d", w))
}

// Float64 reads a 64-bit float lane.
func (v Value) Float64() float64 {
	return math.Float64frombits(v.bits)
}

// SetUint stores an unsigned integer truncated to the given width.
// At width 1 only bit 0 is kept.
func (v *Value) SetUint(w BitWidth, u uint64) {
	v.bits = u & mask(w)
}

// SetInt stores a signed integer truncated to the given width. Values out
// of range wrap modulo 2^w; this is the defined behavior of every
// non-saturating integer opcode.
func (v *Value) SetInt(w BitWidth, i int64) {
	v.bits = uint64(i) & mask(w)
}

// SetBool stores the canonical boolean encoding for the given width:
// bit 0 at width 1, all-zero/all-one bits at widths 8 to 64.
func (v *Value) SetBool(w BitWidth, b bool) {
	if !b {
		v.bits = 0
		return
	}
	if w == Width1 {
		v.bits = 1
		return
	}
	v.bits = mask(w)
}

// SetFloat32 stores a float32 into a 16- or 32-bit float lane. Storing at
// width 16 re-encodes to binary16 with round-to-nearest-even.
func (v *Value) SetFloat32(w BitWidth, f float32) {
	switch w {
	case Width16:
		v.bits = uint64(f16.FromFloat32(f))
	case Width32:
		v.bits = uint64(math.Float32bits(f))
	default:
		panic(fmt.Sprintf("ir: invalid float32 bit width %d", w))
	}
}

// SetFloat64 stores a 64-bit float lane.
func (v *Value) SetFloat64(f float64) {
	v.bits = math.Float64bits(f)
}

func (v Value) String() string {
	return fmt.Sprintf("%#x", v.bits)
}
