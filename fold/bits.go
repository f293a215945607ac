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

// Bit manipulation evaluators. The scan and count ops read at the
// invocation width but always produce a 32-bit result. The bitfield ops
// are pinned to 32 bits and fold every out-of-range field to zero so that
// folding never depends on a host shift of 32 or more.

func evalBitCount(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		dst[i].SetUint(ir.Width32, uint64(bits.OnesCount64(s[i].Uint(w))))
	}
}

func evalBitfieldReverse(dst *ir.Vector, nc int, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		dst[i].SetUint(ir.Width32, uint64(bits.Reverse32(uint32(s[i].Uint(ir.Width32)))))
	}
}

func evalFindLsb(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		v := s[i].Uint(w)
		if v == 0 {
			dst[i].SetInt(ir.Width32, -1)
			continue
		}
		dst[i].SetInt(ir.Width32, int64(bits.TrailingZeros64(v)))
	}
}

func findMsb64(v uint64) int64 {
	if v == 0 {
		return -1
	}
	return int64(63 - bits.LeadingZeros64(v))
}

func evalUFindMsb(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		dst[i].SetInt(ir.Width32, findMsb64(s[i].Uint(w)))
	}
}

// evalIFindMsb scans for the highest bit differing from the sign bit, so
// a negative input searches its complement. -1 and 0 have no such bit.
func evalIFindMsb(dst *ir.Vector, nc int, w ir.BitWidth, s *ir.Vector) {
	for i := 0; i < nc; i++ {
		x := s[i].Int(w)
		if x < 0 {
			x = ^x
		}
		dst[i].SetInt(ir.Width32, findMsb64(uint64(x)))
	}
}

// bitfieldRange reports whether [offset, offset+bits) is a valid field of
// a 32-bit word. Both counts are read as signed so that huge unsigned
// encodings reject instead of wrapping.
func bitfieldRange(offset, fieldBits int32) bool {
	return offset >= 0 && fieldBits >= 0 && offset+fieldBits <= 32
}

func evalUBitfieldExtract(dst *ir.Vector, nc int, value, offset, count *ir.Vector) {
	for i := 0; i < nc; i++ {
		off := int32(offset[i].Int(ir.Width32))
		n := int32(count[i].Int(ir.Width32))
		if n == 0 || !bitfieldRange(off, n) {
			dst[i].SetUint(ir.Width32, 0)
			continue
		}
		v := value[i].Uint(ir.Width32) >> uint(off)
		dst[i].SetUint(ir.Width32, v&(1<<uint(n)-1))
	}
}

func evalIBitfieldExtract(dst *ir.Vector, nc int, value, offset, count *ir.Vector) {
	for i := 0; i < nc; i++ {
		off := int32(offset[i].Int(ir.Width32))
		n := int32(count[i].Int(ir.Width32))
		if n == 0 || !bitfieldRange(off, n) {
			dst[i].SetInt(ir.Width32, 0)
			continue
		}
		v := uint32(value[i].Uint(ir.Width32)) << uint(32-n-off)
		dst[i].SetInt(ir.Width32, int64(int32(v)>>uint(32-n)))
	}
}

func evalBitfieldInsert(dst *ir.Vector, nc int, base, insert, offset, count *ir.Vector) {
	for i := 0; i < nc; i++ {
		b := base[i].Uint(ir.Width32)
		off := int32(offset[i].Int(ir.Width32))
		n := int32(count[i].Int(ir.Width32))
		if n == 0 {
			dst[i].SetUint(ir.Width32, b)
			continue
		}
		if !bitfieldRange(off, n) {
			dst[i].SetUint(ir.Width32, 0)
			continue
		}
		mask := (uint64(1)<<uint(n) - 1) << uint(off)
		ins := insert[i].Uint(ir.Width32) << uint(off)
		dst[i].SetUint(ir.Width32, b&^mask|ins&mask)
	}
}

func evalBitfieldSelect(dst *ir.Vector, nc int, w ir.BitWidth, mask, a, b *ir.Vector) {
	for i := 0; i < nc; i++ {
		m := mask[i].Uint(w)
		dst[i].SetUint(w, m&a[i].Uint(w)|^m&b[i].Uint(w))
	}
}

// evalExtract pulls field number src1 of fieldBits bits out of src0. A
// field index past the invocation width reads as zero.
func evalExtract(dst *ir.Vector, nc int, w ir.BitWidth, s0, s1 *ir.Vector, fieldBits uint, signed bool) {
	for i := 0; i < nc; i++ {
		shift := s1[i].Uint(w) * uint64(fieldBits)
		var field uint64
		if shift < 64 {
			field = s0[i].Uint(w) >> shift & (1<<fieldBits - 1)
		}
		if !signed {
			dst[i].SetUint(w, field)
			continue
		}
		sx := int64(field<<(64-fieldBits)) >> (64 - fieldBits)
		dst[i].SetInt(w, sx)
	}
}

// evalInsert places the low fieldBits bits of src0 at field number src1;
// the write-back truncation discards fields past the invocation width.
func evalInsert(dst *ir.Vector, nc int, w ir.BitWidth, s0, s1 *ir.Vector, fieldBits uint) {
	for i := 0; i < nc; i++ {
		shift := s1[i].Uint(w) * uint64(fieldBits)
		var v uint64
		if shift < 64 {
			v = (s0[i].Uint(w) & (1<<fieldBits - 1)) << shift
		}
		dst[i].SetUint(w, v)
	}
}
