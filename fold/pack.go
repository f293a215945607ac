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

	"github.com/gx-org/slir/internal/f16"
	"github.com/gx-org/slir/ir"
)

// Packing evaluators. The normalized packs clamp, scale, and round to
// even before casting through a signed integer; NaN lanes pack as zero.
// The bit-level packs and unpacks move raw lane bits only.

func packSnorm(x float32, scale float32) uint64 {
	if x != x {
		return 0
	}
	return uint64(int64(math.RoundToEven(float64(fmin(fmax(x, -1), 1) * scale))))
}

func packUnorm(x float32, scale float32) uint64 {
	if x != x {
		return 0
	}
	return uint64(int64(math.RoundToEven(float64(fsat(x) * scale))))
}

func evalPackSnorm2x16(dst *ir.Vector, s *ir.Vector) {
	var u uint64
	for i := 0; i < 2; i++ {
		u |= packSnorm(s[i].Float32(ir.Width32), 32767) & 0xffff << (16 * uint(i))
	}
	dst[0].SetUint(ir.Width32, u)
}

func evalPackSnorm4x8(dst *ir.Vector, s *ir.Vector) {
	var u uint64
	for i := 0; i < 4; i++ {
		u |= packSnorm(s[i].Float32(ir.Width32), 127) & 0xff << (8 * uint(i))
	}
	dst[0].SetUint(ir.Width32, u)
}

func evalPackUnorm2x16(dst *ir.Vector, s *ir.Vector) {
	var u uint64
	for i := 0; i < 2; i++ {
		u |= packUnorm(s[i].Float32(ir.Width32), 65535) & 0xffff << (16 * uint(i))
	}
	dst[0].SetUint(ir.Width32, u)
}

func evalPackUnorm4x8(dst *ir.Vector, s *ir.Vector) {
	var u uint64
	for i := 0; i < 4; i++ {
		u |= packUnorm(s[i].Float32(ir.Width32), 255) & 0xff << (8 * uint(i))
	}
	dst[0].SetUint(ir.Width32, u)
}

func evalPackHalf2x16(dst *ir.Vector, x, y ir.Value) {
	lo := uint64(f16.FromFloat32(x.Float32(ir.Width32)))
	hi := uint64(f16.FromFloat32(y.Float32(ir.Width32)))
	dst[0].SetUint(ir.Width32, lo|hi<<16)
}

func evalPack32_2x16(dst *ir.Vector, x, y ir.Value) {
	dst[0].SetUint(ir.Width32, x.Uint(ir.Width16)|y.Uint(ir.Width16)<<16)
}

func evalPack64_2x32(dst *ir.Vector, x, y ir.Value) {
	dst[0].SetUint(ir.Width64, x.Uint(ir.Width32)|y.Uint(ir.Width32)<<32)
}

func evalPack64_4x16(dst *ir.Vector, s *ir.Vector) {
	var u uint64
	for i := 0; i < 4; i++ {
		u |= s[i].Uint(ir.Width16) << (16 * uint(i))
	}
	dst[0].SetUint(ir.Width64, u)
}

// unpackSnorm maps the signed field back to [-1, 1]; the extra low value
// of two's complement clamps with fmax so both encodings of -1 decode
// identically.
func unpackSnorm(v int64, scale float32) float32 {
	return fmax(float32(v)/scale, -1)
}

func evalUnpackSnorm2x16(dst *ir.Vector, v ir.Value) {
	u := uint32(v.Uint(ir.Width32))
	for i := 0; i < 2; i++ {
		dst[i].SetFloat32(ir.Width32, unpackSnorm(int64(int16(u>>(16*uint(i)))), 32767))
	}
}

func evalUnpackSnorm4x8(dst *ir.Vector, v ir.Value) {
	u := uint32(v.Uint(ir.Width32))
	for i := 0; i < 4; i++ {
		dst[i].SetFloat32(ir.Width32, unpackSnorm(int64(int8(u>>(8*uint(i)))), 127))
	}
}

func evalUnpackUnorm2x16(dst *ir.Vector, v ir.Value) {
	u := uint32(v.Uint(ir.Width32))
	for i := 0; i < 2; i++ {
		dst[i].SetFloat32(ir.Width32, float32(uint16(u>>(16*uint(i))))/65535)
	}
}

func evalUnpackUnorm4x8(dst *ir.Vector, v ir.Value) {
	u := uint32(v.Uint(ir.Width32))
	for i := 0; i < 4; i++ {
		dst[i].SetFloat32(ir.Width32, float32(uint8(u>>(8*uint(i))))/255)
	}
}

func halfLow(v ir.Value) float32 {
	return f16.ToFloat32(uint16(v.Uint(ir.Width32)))
}

func halfHigh(v ir.Value) float32 {
	return f16.ToFloat32(uint16(v.Uint(ir.Width32) >> 16))
}

func evalUnpackHalf2x16(dst *ir.Vector, v ir.Value) {
	dst[0].SetFloat32(ir.Width32, halfLow(v))
	dst[1].SetFloat32(ir.Width32, halfHigh(v))
}
