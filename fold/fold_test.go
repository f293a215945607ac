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

package fold_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/slir/fold"
	"github.com/gx-org/slir/ir"
)

func vec(bits ...uint64) *ir.Vector {
	v := &ir.Vector{}
	for i, b := range bits {
		v[i].SetBits(b)
	}
	return v
}

func vecF32(fs ...float32) *ir.Vector {
	v := &ir.Vector{}
	for i, f := range fs {
		v[i].SetFloat32(ir.Width32, f)
	}
	return v
}

func lanes(v *ir.Vector, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = v[i].Bits()
	}
	return out
}

func eval(t *testing.T, op ir.Opcode, nc int, w ir.BitWidth, srcs ...*ir.Vector) *ir.Vector {
	t.Helper()
	if err := ir.CheckInvocation(op, nc, w, srcs); err != nil {
		t.Fatalf("CheckInvocation(%s): %v", op, err)
	}
	dst := &ir.Vector{}
	fold.Evaluate(op, dst, nc, w, srcs)
	return dst
}

func TestIAddWrapsAtWidth(t *testing.T) {
	dst := eval(t, ir.OpIAdd, 1, ir.Width8, vec(0x7f), vec(0x01))
	if got := dst[0].Int(ir.Width8); got != -128 {
		t.Errorf("iadd.w8 127+1 = %d, want -128", got)
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   ir.Opcode
		w    ir.BitWidth
		a, b uint64
		want uint64
	}{
		{"uadd_sat clamps", ir.OpUAddSat, ir.Width8, 250, 10, 255},
		{"uadd_sat exact", ir.OpUAddSat, ir.Width8, 250, 5, 255},
		{"uadd_sat under", ir.OpUAddSat, ir.Width8, 250, 4, 254},
		{"uadd_sat w64", ir.OpUAddSat, ir.Width64, math.MaxUint64, 1, math.MaxUint64},
		{"iadd_sat high", ir.OpIAddSat, ir.Width16, 0x7fff, 1, 0x7fff},
		{"iadd_sat low", ir.OpIAddSat, ir.Width16, 0x8000, 0xffff, 0x8000},
		{"iadd_sat plain", ir.OpIAddSat, ir.Width16, 5, 0xffff, 4},
		{"isub_sat low", ir.OpISubSat, ir.Width8, 0x80, 1, 0x80},
		{"isub_sat high", ir.OpISubSat, ir.Width8, 0x7f, 0xff, 0x7f},
		{"usub_sat floor", ir.OpUSubSat, ir.Width32, 3, 5, 0},
		{"uadd_carry set", ir.OpUAddCarry, ir.Width8, 0xff, 1, 1},
		{"uadd_carry clear", ir.OpUAddCarry, ir.Width8, 0xfe, 1, 0},
		{"usub_borrow set", ir.OpUSubBorrow, ir.Width8, 0, 1, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dst := eval(t, test.op, 1, test.w, vec(test.a), vec(test.b))
			if got := dst[0].Bits(); got != test.want {
				t.Errorf("%s(%#x, %#x) = %#x, want %#x", test.op, test.a, test.b, got, test.want)
			}
		})
	}
}

func TestDivisionByZeroFoldsToZero(t *testing.T) {
	for _, op := range []ir.Opcode{ir.OpIDiv, ir.OpUDiv, ir.OpIMod, ir.OpUMod, ir.OpIRem} {
		dst := eval(t, op, 1, ir.Width32, vec(7), vec(0))
		if got := dst[0].Bits(); got != 0 {
			t.Errorf("%s by zero = %#x, want 0", op, got)
		}
	}
}

func TestModuloSigns(t *testing.T) {
	// imod follows the divisor, irem the dividend.
	negSeven := vec(uint64(0xfffffff9))
	if got := eval(t, ir.OpIMod, 1, ir.Width32, negSeven, vec(3))[0].Int(ir.Width32); got != 2 {
		t.Errorf("imod(-7, 3) = %d, want 2", got)
	}
	if got := eval(t, ir.OpIRem, 1, ir.Width32, negSeven, vec(3))[0].Int(ir.Width32); got != -1 {
		t.Errorf("irem(-7, 3) = %d, want -1", got)
	}
}

func TestShiftCountMasking(t *testing.T) {
	if got := eval(t, ir.OpIShl, 1, ir.Width32, vec(1), vec(33))[0].Bits(); got != 2 {
		t.Errorf("ishl.w32(1, 33) = %#x, want 2", got)
	}
	if got := eval(t, ir.OpUShr, 1, ir.Width8, vec(0x80), vec(9))[0].Bits(); got != 0x40 {
		t.Errorf("ushr.w8(0x80, 9) = %#x, want 0x40", got)
	}
	if got := eval(t, ir.OpIShr, 1, ir.Width8, vec(0x80), vec(7))[0].Int(ir.Width8); got != -1 {
		t.Errorf("ishr.w8(0x80, 7) = %d, want -1", got)
	}
}

func TestMulHigh(t *testing.T) {
	if got := eval(t, ir.OpIMulHigh, 1, ir.Width32, vec(0x80000000), vec(0x80000000))[0].Bits(); got != 0x40000000 {
		t.Errorf("imul_high.w32(min, min) = %#x, want 0x40000000", got)
	}
	if got := eval(t, ir.OpIMulHigh, 1, ir.Width64, vec(math.MaxUint64), vec(math.MaxUint64))[0].Bits(); got != 0 {
		t.Errorf("imul_high.w64(-1, -1) = %#x, want 0", got)
	}
	if got := eval(t, ir.OpUMulHigh, 1, ir.Width64, vec(1<<32), vec(1<<32))[0].Bits(); got != 1 {
		t.Errorf("umul_high.w64(2^32, 2^32) = %#x, want 1", got)
	}
}

func TestComparisonEncoding(t *testing.T) {
	dst := eval(t, ir.OpFLt, 2, ir.Width32, vecF32(1, 3), vecF32(2, 2))
	want := []uint64{0xffffffff, 0}
	if diff := cmp.Diff(want, lanes(dst, 2)); diff != "" {
		t.Errorf("flt lanes mismatch (-want +got):\n%s", diff)
	}
	if got := eval(t, ir.OpILt, 1, ir.Width1, vec(1), vec(0))[0].Bits(); got != 1 {
		t.Errorf("ilt.w1(-1, 0) = %#x, want 1", got)
	}
}

func TestNaNComparisons(t *testing.T) {
	nan := vec(uint64(math.Float32bits(float32(math.NaN()))))
	if got := eval(t, ir.OpFEq, 1, ir.Width32, nan, nan)[0].Bits(); got != 0 {
		t.Errorf("feq(NaN, NaN) = %#x, want false", got)
	}
	if got := eval(t, ir.OpFNeu, 1, ir.Width32, nan, nan)[0].Bits(); got != 0xffffffff {
		t.Errorf("fneu(NaN, NaN) = %#x, want true", got)
	}
	if got := eval(t, ir.OpFMax, 1, ir.Width32, nan, vecF32(2))[0].Float32(ir.Width32); got != 2 {
		t.Errorf("fmax(NaN, 2) = %v, want 2", got)
	}
	if got := eval(t, ir.OpFSign, 1, ir.Width32, nan)[0].Float32(ir.Width32); got != -1 {
		t.Errorf("fsign(NaN) = %v, want -1", got)
	}
}

func TestFloat16Arithmetic(t *testing.T) {
	// 1.0 + (1+2^-10): the float32 sum 2+2^-10 is a binary16 tie and
	// rounds to even.
	dst := eval(t, ir.OpFAdd, 1, ir.Width16, vec(0x3c00), vec(0x3c01))
	if got := dst[0].Bits(); got != 0x4000 {
		t.Errorf("fadd.w16(0x3c00, 0x3c01) = %#x, want 0x4000", got)
	}
}

func TestBoolReductionWritesLaneZeroOnly(t *testing.T) {
	srcs := []*ir.Vector{vec(1, 2, 3, 4), vec(1, 2, 3, 4)}
	dst := vec(0xdead, 0xdead, 0xdead, 0xdead)
	fold.Evaluate(ir.OpBAllIEqual4, dst, 1, ir.Width32, srcs)
	want := []uint64{0xffffffff, 0xdead, 0xdead, 0xdead}
	if diff := cmp.Diff(want, lanes(dst, 4)); diff != "" {
		t.Errorf("ball_iequal4 lanes mismatch (-want +got):\n%s", diff)
	}
	fold.Evaluate(ir.OpBAllIEqual4, dst, 1, ir.Width32, []*ir.Vector{vec(1, 2, 3, 4), vec(1, 2, 3, 5)})
	if got := dst[0].Bits(); got != 0 {
		t.Errorf("ball_iequal4 with a differing lane = %#x, want 0", got)
	}
}

func TestReplicatedDotBroadcasts(t *testing.T) {
	dst := eval(t, ir.OpFDotReplicated2, 1, ir.Width32, vecF32(1, 2), vecF32(3, 4))
	f11 := uint64(math.Float32bits(11))
	want := []uint64{f11, f11, f11, f11}
	if diff := cmp.Diff(want, lanes(dst, 4)); diff != "" {
		t.Errorf("fdot_replicated2 lanes mismatch (-want +got):\n%s", diff)
	}
}

func TestFDph(t *testing.T) {
	dst := eval(t, ir.OpFDph, 1, ir.Width32, vecF32(1, 2, 3), vecF32(4, 5, 6, 7))
	if got := dst[0].Float32(ir.Width32); got != 39 {
		t.Errorf("fdph = %v, want 39", got)
	}
}

func TestBCSel(t *testing.T) {
	dst := eval(t, ir.OpBCSel, 2, ir.Width32, vec(0xffffffff, 0), vec(0xaa, 0xaa), vec(0xbb, 0xbb))
	if diff := cmp.Diff([]uint64{0xaa, 0xbb}, lanes(dst, 2)); diff != "" {
		t.Errorf("bcsel lanes mismatch (-want +got):\n%s", diff)
	}
}

func TestVecCompose(t *testing.T) {
	dst := eval(t, ir.OpVec4, 4, ir.Width16, vec(1), vec(2), vec(3), vec(0x12345))
	if diff := cmp.Diff([]uint64{1, 2, 3, 0x2345}, lanes(dst, 4)); diff != "" {
		t.Errorf("vec4 lanes mismatch (-want +got):\n%s", diff)
	}
}

func TestBitfieldExtractOutOfRange(t *testing.T) {
	if got := eval(t, ir.OpUBitfieldExtract, 1, ir.Width32, vec(0xffffffff), vec(30), vec(8))[0].Bits(); got != 0 {
		t.Errorf("ubitfield_extract(offset 30, bits 8) = %#x, want 0", got)
	}
	if got := eval(t, ir.OpUBitfieldExtract, 1, ir.Width32, vec(0xabcd), vec(4), vec(8))[0].Bits(); got != 0xbc {
		t.Errorf("ubitfield_extract(0xabcd, 4, 8) = %#x, want 0xbc", got)
	}
	if got := eval(t, ir.OpIBitfieldExtract, 1, ir.Width32, vec(0xf0), vec(4), vec(4))[0].Int(ir.Width32); got != -1 {
		t.Errorf("ibitfield_extract(0xf0, 4, 4) = %d, want -1", got)
	}
}

func TestBitfieldInsert(t *testing.T) {
	if got := eval(t, ir.OpBitfieldInsert, 1, ir.Width32, vec(0xffff), vec(0), vec(4), vec(8))[0].Bits(); got != 0xf00f {
		t.Errorf("bitfield_insert = %#x, want 0xf00f", got)
	}
	// Zero bits keeps the base; an out-of-range field folds to zero.
	if got := eval(t, ir.OpBitfieldInsert, 1, ir.Width32, vec(0x1234), vec(0xff), vec(8), vec(0))[0].Bits(); got != 0x1234 {
		t.Errorf("bitfield_insert(bits 0) = %#x, want 0x1234", got)
	}
	if got := eval(t, ir.OpBitfieldInsert, 1, ir.Width32, vec(0x1234), vec(0xff), vec(30), vec(8))[0].Bits(); got != 0 {
		t.Errorf("bitfield_insert(offset 30, bits 8) = %#x, want 0", got)
	}
}

func TestExtractField(t *testing.T) {
	if got := eval(t, ir.OpExtractU16, 1, ir.Width32, vec(0xdeadbeef), vec(1))[0].Bits(); got != 0xdead {
		t.Errorf("extract_u16(0xdeadbeef, 1) = %#x, want 0xdead", got)
	}
	if got := eval(t, ir.OpExtractI8, 1, ir.Width32, vec(0xff123456), vec(3))[0].Int(ir.Width32); got != -1 {
		t.Errorf("extract_i8(0xff123456, 3) = %d, want -1", got)
	}
	// A field index past the value reads as zero.
	if got := eval(t, ir.OpExtractU8, 1, ir.Width32, vec(0xffffffff), vec(7))[0].Bits(); got != 0 {
		t.Errorf("extract_u8(field 7) = %#x, want 0", got)
	}
	if got := eval(t, ir.OpInsertU8, 1, ir.Width32, vec(0x1ab), vec(2))[0].Bits(); got != 0xab0000 {
		t.Errorf("insert_u8(0x1ab, 2) = %#x, want 0xab0000", got)
	}
}

func TestConversionClamping(t *testing.T) {
	tests := []struct {
		name string
		op   ir.Opcode
		src  float32
		want uint64
	}{
		{"f2i8 high", ir.OpF2I8, 300, 0x7f},
		{"f2i8 low", ir.OpF2I8, -300, 0x80},
		{"f2i8 nan", ir.OpF2I8, float32(math.NaN()), 0},
		{"f2i32 trunc", ir.OpF2I32, 3.7, 3},
		{"f2i32 trunc neg", ir.OpF2I32, -3.7, 0xfffffffd},
		{"f2u8 neg", ir.OpF2U8, -5, 0},
		{"f2u8 high", ir.OpF2U8, 300, 0xff},
		{"f2u32 inf", ir.OpF2U32, float32(math.Inf(1)), 0xffffffff},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dst := eval(t, test.op, 1, ir.Width32, vecF32(test.src))
			if got := dst[0].Bits(); got != test.want {
				t.Errorf("%s(%v) = %#x, want %#x", test.op, test.src, got, test.want)
			}
		})
	}
}

func TestConversionRoundTripWidths(t *testing.T) {
	// i2i16 from width 8 sign-extends, u2u16 zero-extends.
	if got := eval(t, ir.OpI2I16, 1, ir.Width8, vec(0x80))[0].Bits(); got != 0xff80 {
		t.Errorf("i2i16.w8(0x80) = %#x, want 0xff80", got)
	}
	if got := eval(t, ir.OpU2U16, 1, ir.Width8, vec(0x80))[0].Bits(); got != 0x80 {
		t.Errorf("u2u16.w8(0x80) = %#x, want 0x80", got)
	}
	if got := eval(t, ir.OpI2B1, 1, ir.Width32, vec(5))[0].Bits(); got != 1 {
		t.Errorf("i2b1(5) = %#x, want 1", got)
	}
	if got := eval(t, ir.OpB2I32, 1, ir.Width32, vec(0xffffffff))[0].Bits(); got != 1 {
		t.Errorf("b2i32(true) = %#x, want 1", got)
	}
	if got := eval(t, ir.OpB2F32, 1, ir.Width1, vec(1))[0].Float32(ir.Width32); got != 1 {
		t.Errorf("b2f32(true) = %v, want 1", got)
	}
}

func TestPackSnorm4x8(t *testing.T) {
	dst := eval(t, ir.OpPackSnorm4x8, 1, ir.Width32, vecF32(1, -1, 0, 0.5))
	if got := dst[0].Bits(); got != 0x4000817f {
		t.Errorf("pack_snorm_4x8(1, -1, 0, 0.5) = %#x, want 0x4000817f", got)
	}
}

func TestUnpackSnormWithinTolerance(t *testing.T) {
	dst := eval(t, ir.OpUnpackSnorm4x8, 1, ir.Width32, vec(0x4000817f))
	want := []float32{1, -1, 0, 64.0 / 127}
	for i, w := range want {
		got := dst[i].Float32(ir.Width32)
		if diff := math.Abs(float64(got - w)); diff > 1.0/127 {
			t.Errorf("unpack_snorm_4x8 lane %d = %v, want %v within 1/127", i, got, w)
		}
	}
	// Both encodings of -1 decode identically.
	a := eval(t, ir.OpUnpackSnorm4x8, 1, ir.Width32, vec(0x80))[0].Float32(ir.Width32)
	b := eval(t, ir.OpUnpackSnorm4x8, 1, ir.Width32, vec(0x81))[0].Float32(ir.Width32)
	if a != -1 || b != -1 {
		t.Errorf("unpack_snorm_4x8 of 0x80, 0x81 = %v, %v; want -1, -1", a, b)
	}
}

func TestPackHalfRoundTrip(t *testing.T) {
	dst := eval(t, ir.OpPackHalf2x16, 1, ir.Width32, vecF32(1, -2))
	if got := dst[0].Bits(); got != 0xc0003c00 {
		t.Errorf("pack_half_2x16(1, -2) = %#x, want 0xc0003c00", got)
	}
	back := eval(t, ir.OpUnpackHalf2x16, 1, ir.Width32, vec(0xc0003c00))
	if x, y := back[0].Float32(ir.Width32), back[1].Float32(ir.Width32); x != 1 || y != -2 {
		t.Errorf("unpack_half_2x16 = %v, %v; want 1, -2", x, y)
	}
}

func TestFQuantize2F16FlushesSubnormals(t *testing.T) {
	dst := eval(t, ir.OpFQuantize2F16, 1, ir.Width32, vecF32(-1e-5))
	if got := dst[0].Bits(); got != 0x80000000 {
		t.Errorf("fquantize2f16(-1e-5) = %#x, want negative zero", got)
	}
	dst = eval(t, ir.OpFQuantize2F16, 1, ir.Width32, vecF32(1.0/3))
	want := uint64(0x3eaaa000) // 1/3 after a binary16 round trip
	if got := dst[0].Bits(); got != want {
		t.Errorf("fquantize2f16(1/3) = %#x, want %#x", got, want)
	}
}

func TestCubeFace(t *testing.T) {
	tests := []struct {
		name      string
		dir       []float32
		wantFace  float32
		wantCoord []float32
	}{
		{"+x", []float32{2, 1, 0}, 0, []float32{0.5, 0.25}},
		{"-y", []float32{0, -2, 0}, 3, []float32{0.5, 0.5}},
		{"+z", []float32{1, 1, 2}, 4, []float32{0.75, 0.25}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			idx := eval(t, ir.OpCubeFaceIndex, 1, ir.Width32, vecF32(test.dir...))
			if got := idx[0].Float32(ir.Width32); got != test.wantFace {
				t.Errorf("cube_face_index = %v, want %v", got, test.wantFace)
			}
			coord := eval(t, ir.OpCubeFaceCoord, 1, ir.Width32, vecF32(test.dir...))
			got := []float32{coord[0].Float32(ir.Width32), coord[1].Float32(ir.Width32)}
			if diff := cmp.Diff(test.wantCoord, got); diff != "" {
				t.Errorf("cube_face_coord mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDerivativesFoldToZero(t *testing.T) {
	for _, op := range []ir.Opcode{ir.OpFddx, ir.OpFddyCoarse, ir.OpFNoise} {
		srcs := make([]*ir.Vector, op.Info().Arity())
		for i := range srcs {
			srcs[i] = vecF32(42, 42)
		}
		dst := eval(t, op, 2, ir.Width32, srcs...)
		if diff := cmp.Diff([]uint64{0, 0}, lanes(dst, 2)); diff != "" {
			t.Errorf("%s lanes mismatch (-want +got):\n%s", op, diff)
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	srcs := []*ir.Vector{vecF32(0.1, 0.2, 0.3, 0.4), vecF32(4, 3, 2, 1)}
	a := eval(t, ir.OpFPow, 4, ir.Width32, srcs...)
	b := eval(t, ir.OpFPow, 4, ir.Width32, srcs...)
	if diff := cmp.Diff(lanes(a, 4), lanes(b, 4)); diff != "" {
		t.Errorf("fpow not deterministic (-first +second):\n%s", diff)
	}
}

// TestEvaluateAllOpcodes drives every opcode at every legal width with
// zero-filled operands; the evaluator must produce a value for each
// without panicking.
func TestEvaluateAllOpcodes(t *testing.T) {
	for op := range ir.Opcodes() {
		info := op.Info()
		srcs := make([]*ir.Vector, info.Arity())
		for i := range srcs {
			srcs[i] = &ir.Vector{}
		}
		for _, w := range info.Widths.Widths() {
			dst := &ir.Vector{}
			if err := ir.CheckInvocation(op, 1, w, srcs); err != nil {
				t.Fatalf("CheckInvocation(%s, w%d): %v", info.Name, w, err)
			}
			fold.Evaluate(op, dst, 1, w, srcs)
		}
	}
}

func TestEvaluatePanicsOnBadWidth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Evaluate(fadd, width 8) did not panic")
		}
	}()
	fold.Evaluate(ir.OpFAdd, &ir.Vector{}, 1, ir.Width8, []*ir.Vector{{}, {}})
}

func TestEvaluatePanicsOnUnknownOpcode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Evaluate(invalid opcode) did not panic")
		}
	}()
	fold.Evaluate(ir.Opcode(0x7fff), &ir.Vector{}, 1, ir.Width32, nil)
}
