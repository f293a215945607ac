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

	"github.com/gx-org/slir/base/ordered"
)

// Opcode identifies one ALU instruction of the IR.
type Opcode uint16

// The opcode enumeration. Names follow the textual IR (lower case with
// underscores, see Info.Name). The evaluator's dispatch table is kept in
// lock-step with this list; an opcode without a dispatch entry is a
// compiler bug, not a recoverable condition.
const (
	OpInvalid Opcode = iota

	// Float arithmetic.
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRcp
	OpFRsq
	OpFSqrt
	OpFFma
	OpFMod
	OpFRem
	OpFNeg
	OpFAbs
	OpFSat
	OpFSign
	OpFMin
	OpFMax
	OpFFloor
	OpFCeil
	OpFTrunc
	OpFRoundEven
	OpFFract
	OpFExp2
	OpFLog2
	OpFPow
	OpFSin
	OpFCos
	OpLdexp
	OpFQuantize2F16
	OpFrexpExp
	OpFrexpSig

	// Integer arithmetic and bitwise logic.
	OpIAdd
	OpISub
	OpIMul
	OpINeg
	OpIAbs
	OpISign
	OpIDiv
	OpUDiv
	OpIMod
	OpUMod
	OpIRem
	OpIMin
	OpIMax
	OpUMin
	OpUMax
	OpIAnd
	OpIOr
	OpIXor
	OpINot
	OpIShl
	OpIShr
	OpUShr

	// Saturating, carry and averaging arithmetic.
	OpIAddSat
	OpUAddSat
	OpISubSat
	OpUSubSat
	OpUAddCarry
	OpUSubBorrow
	OpIHadd
	OpUHadd
	OpIRhadd
	OpURhadd

	// Multi-precision multiplies.
	OpIMulHigh
	OpUMulHigh
	OpIMul2x3264
	OpUMul2x3264

	// Comparisons producing canonical booleans, and the legacy float
	// set ops producing 1.0/0.0.
	OpFLt
	OpFGe
	OpFEq
	OpFNeu
	OpILt
	OpIGe
	OpIEq
	OpINe
	OpULt
	OpUGe
	OpSLt
	OpSGe
	OpSEq
	OpSNe

	// Selection and movement.
	OpBCSel
	OpFCSel
	OpMov
	OpVec2
	OpVec3
	OpVec4

	// Vector reductions. Only destination lane 0 is written, except for
	// the replicated variants which broadcast into lanes 0..3.
	OpBAllIEqual2
	OpBAllIEqual3
	OpBAllIEqual4
	OpBAnyINequal2
	OpBAnyINequal3
	OpBAnyINequal4
	OpBAllFEqual2
	OpBAllFEqual3
	OpBAllFEqual4
	OpBAnyFNequal2
	OpBAnyFNequal3
	OpBAnyFNequal4
	OpFAllEqual2
	OpFAllEqual3
	OpFAllEqual4
	OpFAnyNequal2
	OpFAnyNequal3
	OpFAnyNequal4
	OpFDot2
	OpFDot3
	OpFDot4
	OpFDph
	OpFDotReplicated2
	OpFDotReplicated3
	OpFDotReplicated4
	OpFDphReplicated

	// Bit manipulation.
	OpBitCount
	OpBitfieldReverse
	OpFindLsb
	OpUFindMsb
	OpIFindMsb
	OpUBitfieldExtract
	OpIBitfieldExtract
	OpBitfieldInsert
	OpBitfieldSelect
	OpExtractU8
	OpExtractI8
	OpExtractU16
	OpExtractI16
	OpInsertU8
	OpInsertU16

	// Type conversions. The opcode fixes the destination width; the
	// invocation bit width is the source width.
	OpF2F16
	OpF2F32
	OpF2F64
	OpF2I8
	OpF2I16
	OpF2I32
	OpF2I64
	OpF2U8
	OpF2U16
	OpF2U32
	OpF2U64
	OpI2F16
	OpI2F32
	OpI2F64
	OpU2F16
	OpU2F32
	OpU2F64
	OpI2I8
	OpI2I16
	OpI2I32
	OpI2I64
	OpU2U8
	OpU2U16
	OpU2U32
	OpU2U64
	OpB2F16
	OpB2F32
	OpB2F64
	OpB2I8
	OpB2I16
	OpB2I32
	OpB2I64
	OpI2B1
	OpF2B1

	// Packing and unpacking.
	OpPackSnorm2x16
	OpPackSnorm4x8
	OpPackUnorm2x16
	OpPackUnorm4x8
	OpPackHalf2x16
	OpPackHalf2x16Split
	OpPack32_2x16
	OpPack32_2x16Split
	OpPack64_2x32
	OpPack64_2x32Split
	OpPack64_4x16
	OpUnpackSnorm2x16
	OpUnpackSnorm4x8
	OpUnpackUnorm2x16
	OpUnpackUnorm4x8
	OpUnpackHalf2x16
	OpUnpackHalf2x16SplitX
	OpUnpackHalf2x16SplitY
	OpUnpack32_2x16
	OpUnpack32_2x16SplitX
	OpUnpack32_2x16SplitY
	OpUnpack64_2x32
	OpUnpack64_2x32SplitX
	OpUnpack64_2x32SplitY
	OpUnpack64_4x16

	// Cube-map helpers.
	OpCubeFaceIndex
	OpCubeFaceCoord

	// Derivative and noise placeholders; they have no compile-time
	// value and fold to zero.
	OpFddx
	OpFddy
	OpFddxFine
	OpFddyFine
	OpFddxCoarse
	OpFddyCoarse
	OpFNoise

	numOpcodes
)

// OperandInfo describes one source or destination slot of an opcode.
type OperandInfo struct {
	Kind Kind
	// Size is the fixed component count of the slot, or 0 if the slot
	// follows the invocation's component count.
	Size uint8
	// Width is the fixed bit width of the slot, or 0 if the slot uses
	// the invocation's bit width.
	Width BitWidth
}

// Info is the static metadata of an opcode.
type Info struct {
	Name string
	Srcs []OperandInfo
	Dst  OperandInfo
	// Widths is the set of invocation bit widths the opcode accepts.
	Widths WidthSet
	// Replicate marks reductions that broadcast their scalar result
	// into destination lanes 0..3.
	Replicate bool
}

// Arity returns the number of source operands.
func (i Info) Arity() int {
	return len(i.Srcs)
}

func operand(k Kind) OperandInfo {
	return OperandInfo{Kind: k}
}

func sized(k Kind, size uint8, w BitWidth) OperandInfo {
	return OperandInfo{Kind: k, Size: size, Width: w}
}

func opcode(name string, widths WidthSet, dst OperandInfo, srcs ...OperandInfo) Info {
	return Info{Name: name, Srcs: srcs, Dst: dst, Widths: widths}
}

func unaryOp(name string, widths WidthSet, k Kind) Info {
	return opcode(name, widths, operand(k), operand(k))
}

func binaryOp(name string, widths WidthSet, k Kind) Info {
	return opcode(name, widths, operand(k), operand(k), operand(k))
}

func compareOp(name string, widths WidthSet, k Kind) Info {
	return opcode(name, widths, operand(KindBool), operand(k), operand(k))
}

// reduceOp reads n lanes from each source and writes destination lane 0.
func reduceOp(name string, widths WidthSet, dst, src Kind, n uint8) Info {
	return opcode(name, widths, sized(dst, 1, 0), sized(src, n, 0), sized(src, n, 0))
}

// convertOp fixes the destination width; the invocation width is the
// source width.
func convertOp(name string, widths WidthSet, dst Kind, dstWidth BitWidth, src Kind) Info {
	return opcode(name, widths, sized(dst, 0, dstWidth), operand(src))
}

var opInfo = [numOpcodes]Info{
	OpFAdd:  binaryOp("fadd", FloatWidths, KindFloat),
	OpFSub:  binaryOp("fsub", FloatWidths, KindFloat),
	OpFMul:  binaryOp("fmul", FloatWidths, KindFloat),
	OpFDiv:  binaryOp("fdiv", FloatWidths, KindFloat),
	OpFRcp:  unaryOp("frcp", FloatWidths, KindFloat),
	OpFRsq:  unaryOp("frsq", FloatWidths, KindFloat),
	OpFSqrt: unaryOp("fsqrt", FloatWidths, KindFloat),
	OpFFma: opcode("ffma", FloatWidths, operand(KindFloat),
		operand(KindFloat), operand(KindFloat), operand(KindFloat)),
	OpFMod:       binaryOp("fmod", FloatWidths, KindFloat),
	OpFRem:       binaryOp("frem", FloatWidths, KindFloat),
	OpFNeg:       unaryOp("fneg", FloatWidths, KindFloat),
	OpFAbs:       unaryOp("fabs", FloatWidths, KindFloat),
	OpFSat:       unaryOp("fsat", FloatWidths, KindFloat),
	OpFSign:      unaryOp("fsign", FloatWidths, KindFloat),
	OpFMin:       binaryOp("fmin", FloatWidths, KindFloat),
	OpFMax:       binaryOp("fmax", FloatWidths, KindFloat),
	OpFFloor:     unaryOp("ffloor", FloatWidths, KindFloat),
	OpFCeil:      unaryOp("fceil", FloatWidths, KindFloat),
	OpFTrunc:     unaryOp("ftrunc", FloatWidths, KindFloat),
	OpFRoundEven: unaryOp("fround_even", FloatWidths, KindFloat),
	OpFFract:     unaryOp("ffract", FloatWidths, KindFloat),
	OpFExp2:      unaryOp("fexp2", FloatWidths, KindFloat),
	OpFLog2:      unaryOp("flog2", FloatWidths, KindFloat),
	OpFPow:       binaryOp("fpow", FloatWidths, KindFloat),
	OpFSin:       unaryOp("fsin", FloatWidths, KindFloat),
	OpFCos:       unaryOp("fcos", FloatWidths, KindFloat),
	OpLdexp: opcode("ldexp", FloatWidths, operand(KindFloat),
		operand(KindFloat), sized(KindInt, 0, Width32)),
	OpFQuantize2F16: unaryOp("fquantize2f16", Only32, KindFloat),
	OpFrexpExp:      opcode("frexp_exp", FloatWidths, sized(KindInt, 0, Width32), operand(KindFloat)),
	OpFrexpSig:      unaryOp("frexp_sig", FloatWidths, KindFloat),

	OpIAdd:  binaryOp("iadd", IntWidths, KindInt),
	OpISub:  binaryOp("isub", IntWidths, KindInt),
	OpIMul:  binaryOp("imul", IntWidths, KindInt),
	OpINeg:  unaryOp("ineg", IntWidths, KindInt),
	OpIAbs:  unaryOp("iabs", IntWidths, KindInt),
	OpISign: unaryOp("isign", IntWidths, KindInt),
	OpIDiv:  binaryOp("idiv", IntWidths, KindInt),
	OpUDiv:  binaryOp("udiv", IntWidths, KindUint),
	OpIMod:  binaryOp("imod", IntWidths, KindInt),
	OpUMod:  binaryOp("umod", IntWidths, KindUint),
	OpIRem:  binaryOp("irem", IntWidths, KindInt),
	OpIMin:  binaryOp("imin", IntWidths, KindInt),
	OpIMax:  binaryOp("imax", IntWidths, KindInt),
	OpUMin:  binaryOp("umin", IntWidths, KindUint),
	OpUMax:  binaryOp("umax", IntWidths, KindUint),
	OpIAnd:  binaryOp("iand", IntWidths, KindUint),
	OpIOr:   binaryOp("ior", IntWidths, KindUint),
	OpIXor:  binaryOp("ixor", IntWidths, KindUint),
	OpINot:  unaryOp("inot", IntWidths, KindUint),
	OpIShl:  binaryOp("ishl", IntWidths, KindUint),
	OpIShr:  binaryOp("ishr", IntWidths, KindInt),
	OpUShr:  binaryOp("ushr", IntWidths, KindUint),

	OpIAddSat:    binaryOp("iadd_sat", IntWidths, KindInt),
	OpUAddSat:    binaryOp("uadd_sat", IntWidths, KindUint),
	OpISubSat:    binaryOp("isub_sat", IntWidths, KindInt),
	OpUSubSat:    binaryOp("usub_sat", IntWidths, KindUint),
	OpUAddCarry:  binaryOp("uadd_carry", IntWidths, KindUint),
	OpUSubBorrow: binaryOp("usub_borrow", IntWidths, KindUint),
	OpIHadd:      binaryOp("ihadd", IntWidths, KindInt),
	OpUHadd:      binaryOp("uhadd", IntWidths, KindUint),
	OpIRhadd:     binaryOp("irhadd", IntWidths, KindInt),
	OpURhadd:     binaryOp("urhadd", IntWidths, KindUint),

	OpIMulHigh: binaryOp("imul_high", IntWidths, KindInt),
	OpUMulHigh: binaryOp("umul_high", IntWidths, KindUint),
	OpIMul2x3264: opcode("imul_2x32_64", Only32, sized(KindInt, 0, Width64),
		sized(KindInt, 0, Width32), sized(KindInt, 0, Width32)),
	OpUMul2x3264: opcode("umul_2x32_64", Only32, sized(KindUint, 0, Width64),
		sized(KindUint, 0, Width32), sized(KindUint, 0, Width32)),

	OpFLt:  compareOp("flt", FloatWidths, KindFloat),
	OpFGe:  compareOp("fge", FloatWidths, KindFloat),
	OpFEq:  compareOp("feq", FloatWidths, KindFloat),
	OpFNeu: compareOp("fneu", FloatWidths, KindFloat),
	OpILt:  compareOp("ilt", IntWidths, KindInt),
	OpIGe:  compareOp("ige", IntWidths, KindInt),
	OpIEq:  compareOp("ieq", IntWidths, KindInt),
	OpINe:  compareOp("ine", IntWidths, KindInt),
	OpULt:  compareOp("ult", IntWidths, KindUint),
	OpUGe:  compareOp("uge", IntWidths, KindUint),
	OpSLt:  binaryOp("slt", Only32, KindFloat),
	OpSGe:  binaryOp("sge", Only32, KindFloat),
	OpSEq:  binaryOp("seq", Only32, KindFloat),
	OpSNe:  binaryOp("sne", Only32, KindFloat),

	OpBCSel: opcode("bcsel", IntWidths, operand(KindUint),
		operand(KindBool), operand(KindUint), operand(KindUint)),
	OpFCSel: opcode("fcsel", Only32, operand(KindFloat),
		operand(KindFloat), operand(KindFloat), operand(KindFloat)),
	OpMov: unaryOp("mov", IntWidths, KindUint),
	OpVec2: opcode("vec2", IntWidths, sized(KindUint, 2, 0),
		sized(KindUint, 1, 0), sized(KindUint, 1, 0)),
	OpVec3: opcode("vec3", IntWidths, sized(KindUint, 3, 0),
		sized(KindUint, 1, 0), sized(KindUint, 1, 0), sized(KindUint, 1, 0)),
	OpVec4: opcode("vec4", IntWidths, sized(KindUint, 4, 0),
		sized(KindUint, 1, 0), sized(KindUint, 1, 0), sized(KindUint, 1, 0), sized(KindUint, 1, 0)),

	OpBAllIEqual2:  reduceOp("ball_iequal2", IntWidths, KindBool, KindInt, 2),
	OpBAllIEqual3:  reduceOp("ball_iequal3", IntWidths, KindBool, KindInt, 3),
	OpBAllIEqual4:  reduceOp("ball_iequal4", IntWidths, KindBool, KindInt, 4),
	OpBAnyINequal2: reduceOp("bany_inequal2", IntWidths, KindBool, KindInt, 2),
	OpBAnyINequal3: reduceOp("bany_inequal3", IntWidths, KindBool, KindInt, 3),
	OpBAnyINequal4: reduceOp("bany_inequal4", IntWidths, KindBool, KindInt, 4),
	OpBAllFEqual2:  reduceOp("ball_fequal2", FloatWidths, KindBool, KindFloat, 2),
	OpBAllFEqual3:  reduceOp("ball_fequal3", FloatWidths, KindBool, KindFloat, 3),
	OpBAllFEqual4:  reduceOp("ball_fequal4", FloatWidths, KindBool, KindFloat, 4),
	OpBAnyFNequal2: reduceOp("bany_fnequal2", FloatWidths, KindBool, KindFloat, 2),
	OpBAnyFNequal3: reduceOp("bany_fnequal3", FloatWidths, KindBool, KindFloat, 3),
	OpBAnyFNequal4: reduceOp("bany_fnequal4", FloatWidths, KindBool, KindFloat, 4),
	OpFAllEqual2:   reduceOp("fall_equal2", Only32, KindFloat, KindFloat, 2),
	OpFAllEqual3:   reduceOp("fall_equal3", Only32, KindFloat, KindFloat, 3),
	OpFAllEqual4:   reduceOp("fall_equal4", Only32, KindFloat, KindFloat, 4),
	OpFAnyNequal2:  reduceOp("fany_nequal2", Only32, KindFloat, KindFloat, 2),
	OpFAnyNequal3:  reduceOp("fany_nequal3", Only32, KindFloat, KindFloat, 3),
	OpFAnyNequal4:  reduceOp("fany_nequal4", Only32, KindFloat, KindFloat, 4),
	OpFDot2:        reduceOp("fdot2", FloatWidths, KindFloat, KindFloat, 2),
	OpFDot3:        reduceOp("fdot3", FloatWidths, KindFloat, KindFloat, 3),
	OpFDot4:        reduceOp("fdot4", FloatWidths, KindFloat, KindFloat, 4),
	OpFDph: opcode("fdph", FloatWidths, sized(KindFloat, 1, 0),
		sized(KindFloat, 3, 0), sized(KindFloat, 4, 0)),
	OpFDotReplicated2: replicated(reduceOp("fdot_replicated2", FloatWidths, KindFloat, KindFloat, 2)),
	OpFDotReplicated3: replicated(reduceOp("fdot_replicated3", FloatWidths, KindFloat, KindFloat, 3)),
	OpFDotReplicated4: replicated(reduceOp("fdot_replicated4", FloatWidths, KindFloat, KindFloat, 4)),
	OpFDphReplicated: replicated(opcode("fdph_replicated", FloatWidths, sized(KindFloat, 1, 0),
		sized(KindFloat, 3, 0), sized(KindFloat, 4, 0))),

	OpBitCount:        opcode("bit_count", IntWidths, sized(KindInt, 0, Width32), operand(KindUint)),
	OpBitfieldReverse: unaryOp("bitfield_reverse", Only32, KindUint),
	OpFindLsb:         opcode("find_lsb", IntWidths, sized(KindInt, 0, Width32), operand(KindInt)),
	OpUFindMsb:        opcode("ufind_msb", IntWidths, sized(KindInt, 0, Width32), operand(KindUint)),
	OpIFindMsb:        opcode("ifind_msb", IntWidths, sized(KindInt, 0, Width32), operand(KindInt)),
	OpUBitfieldExtract: opcode("ubitfield_extract", Only32, operand(KindUint),
		operand(KindUint), sized(KindInt, 0, Width32), sized(KindInt, 0, Width32)),
	OpIBitfieldExtract: opcode("ibitfield_extract", Only32, operand(KindInt),
		operand(KindInt), sized(KindInt, 0, Width32), sized(KindInt, 0, Width32)),
	OpBitfieldInsert: opcode("bitfield_insert", Only32, operand(KindUint),
		operand(KindUint), operand(KindUint), sized(KindInt, 0, Width32), sized(KindInt, 0, Width32)),
	OpBitfieldSelect: opcode("bitfield_select", IntWidths, operand(KindUint),
		operand(KindUint), operand(KindUint), operand(KindUint)),
	OpExtractU8:  extractOp("extract_u8", KindUint),
	OpExtractI8:  extractOp("extract_i8", KindInt),
	OpExtractU16: extractOp("extract_u16", KindUint),
	OpExtractI16: extractOp("extract_i16", KindInt),
	OpInsertU8:   extractOp("insert_u8", KindUint),
	OpInsertU16:  extractOp("insert_u16", KindUint),

	OpF2F16: convertOp("f2f16", w32|w64, KindFloat, Width16, KindFloat),
	OpF2F32: convertOp("f2f32", w16|w64, KindFloat, Width32, KindFloat),
	OpF2F64: convertOp("f2f64", w16|w32, KindFloat, Width64, KindFloat),
	OpF2I8:  convertOp("f2i8", FloatWidths, KindInt, Width8, KindFloat),
	OpF2I16: convertOp("f2i16", FloatWidths, KindInt, Width16, KindFloat),
	OpF2I32: convertOp("f2i32", FloatWidths, KindInt, Width32, KindFloat),
	OpF2I64: convertOp("f2i64", FloatWidths, KindInt, Width64, KindFloat),
	OpF2U8:  convertOp("f2u8", FloatWidths, KindUint, Width8, KindFloat),
	OpF2U16: convertOp("f2u16", FloatWidths, KindUint, Width16, KindFloat),
	OpF2U32: convertOp("f2u32", FloatWidths, KindUint, Width32, KindFloat),
	OpF2U64: convertOp("f2u64", FloatWidths, KindUint, Width64, KindFloat),
	OpI2F16: convertOp("i2f16", IntWidths, KindFloat, Width16, KindInt),
	OpI2F32: convertOp("i2f32", IntWidths, KindFloat, Width32, KindInt),
	OpI2F64: convertOp("i2f64", IntWidths, KindFloat, Width64, KindInt),
	OpU2F16: convertOp("u2f16", IntWidths, KindFloat, Width16, KindUint),
	OpU2F32: convertOp("u2f32", IntWidths, KindFloat, Width32, KindUint),
	OpU2F64: convertOp("u2f64", IntWidths, KindFloat, Width64, KindUint),
	OpI2I8:  convertOp("i2i8", IntWidths, KindInt, Width8, KindInt),
	OpI2I16: convertOp("i2i16", IntWidths, KindInt, Width16, KindInt),
	OpI2I32: convertOp("i2i32", IntWidths, KindInt, Width32, KindInt),
	OpI2I64: convertOp("i2i64", IntWidths, KindInt, Width64, KindInt),
	OpU2U8:  convertOp("u2u8", IntWidths, KindUint, Width8, KindUint),
	OpU2U16: convertOp("u2u16", IntWidths, KindUint, Width16, KindUint),
	OpU2U32: convertOp("u2u32", IntWidths, KindUint, Width32, KindUint),
	OpU2U64: convertOp("u2u64", IntWidths, KindUint, Width64, KindUint),
	OpB2F16: convertOp("b2f16", IntWidths, KindFloat, Width16, KindBool),
	OpB2F32: convertOp("b2f32", IntWidths, KindFloat, Width32, KindBool),
	OpB2F64: convertOp("b2f64", IntWidths, KindFloat, Width64, KindBool),
	OpB2I8:  convertOp("b2i8", IntWidths, KindInt, Width8, KindBool),
	OpB2I16: convertOp("b2i16", IntWidths, KindInt, Width16, KindBool),
	OpB2I32: convertOp("b2i32", IntWidths, KindInt, Width32, KindBool),
	OpB2I64: convertOp("b2i64", IntWidths, KindInt, Width64, KindBool),
	OpI2B1:  convertOp("i2b1", IntWidths, KindBool, Width1, KindInt),
	OpF2B1:  convertOp("f2b1", FloatWidths, KindBool, Width1, KindFloat),

	OpPackSnorm2x16:     packOp("pack_snorm_2x16", Only32, KindFloat, 2, Width32),
	OpPackSnorm4x8:      packOp("pack_snorm_4x8", Only32, KindFloat, 4, Width32),
	OpPackUnorm2x16:     packOp("pack_unorm_2x16", Only32, KindFloat, 2, Width32),
	OpPackUnorm4x8:      packOp("pack_unorm_4x8", Only32, KindFloat, 4, Width32),
	OpPackHalf2x16:      packOp("pack_half_2x16", Only32, KindFloat, 2, Width32),
	OpPackHalf2x16Split: splitPackOp("pack_half_2x16_split", Only32, KindFloat, Width32),
	OpPack32_2x16:       packOp("pack_32_2x16", w16, KindUint, 2, Width16),
	OpPack32_2x16Split:  splitPackOp("pack_32_2x16_split", w16, KindUint, Width16),
	OpPack64_2x32: opcode("pack_64_2x32", Only32, sized(KindUint, 1, Width64),
		sized(KindUint, 2, Width32)),
	OpPack64_2x32Split: opcode("pack_64_2x32_split", Only32, sized(KindUint, 1, Width64),
		sized(KindUint, 1, Width32), sized(KindUint, 1, Width32)),
	OpPack64_4x16: opcode("pack_64_4x16", w16, sized(KindUint, 1, Width64),
		sized(KindUint, 4, Width16)),
	OpUnpackSnorm2x16: unpackOp("unpack_snorm_2x16", Only32, KindFloat, 2, Width32),
	OpUnpackSnorm4x8:  unpackOp("unpack_snorm_4x8", Only32, KindFloat, 4, Width32),
	OpUnpackUnorm2x16: unpackOp("unpack_unorm_2x16", Only32, KindFloat, 2, Width32),
	OpUnpackUnorm4x8:  unpackOp("unpack_unorm_4x8", Only32, KindFloat, 4, Width32),
	OpUnpackHalf2x16:  unpackOp("unpack_half_2x16", Only32, KindFloat, 2, Width32),
	OpUnpackHalf2x16SplitX: opcode("unpack_half_2x16_split_x", Only32,
		sized(KindFloat, 1, Width32), sized(KindUint, 1, Width32)),
	OpUnpackHalf2x16SplitY: opcode("unpack_half_2x16_split_y", Only32,
		sized(KindFloat, 1, Width32), sized(KindUint, 1, Width32)),
	OpUnpack32_2x16: opcode("unpack_32_2x16", Only32, sized(KindUint, 2, Width16),
		sized(KindUint, 1, Width32)),
	OpUnpack32_2x16SplitX: opcode("unpack_32_2x16_split_x", Only32,
		sized(KindUint, 1, Width16), sized(KindUint, 1, Width32)),
	OpUnpack32_2x16SplitY: opcode("unpack_32_2x16_split_y", Only32,
		sized(KindUint, 1, Width16), sized(KindUint, 1, Width32)),
	OpUnpack64_2x32: opcode("unpack_64_2x32", Only64, sized(KindUint, 2, Width32),
		sized(KindUint, 1, Width64)),
	OpUnpack64_2x32SplitX: opcode("unpack_64_2x32_split_x", Only64,
		sized(KindUint, 1, Width32), sized(KindUint, 1, Width64)),
	OpUnpack64_2x32SplitY: opcode("unpack_64_2x32_split_y", Only64,
		sized(KindUint, 1, Width32), sized(KindUint, 1, Width64)),
	OpUnpack64_4x16: opcode("unpack_64_4x16", Only64, sized(KindUint, 4, Width16),
		sized(KindUint, 1, Width64)),

	OpCubeFaceIndex: opcode("cube_face_index", Only32, sized(KindFloat, 1, Width32),
		sized(KindFloat, 3, Width32)),
	OpCubeFaceCoord: opcode("cube_face_coord", Only32, sized(KindFloat, 2, Width32),
		sized(KindFloat, 3, Width32)),

	OpFddx:       unaryOp("fddx", FloatWidths, KindFloat),
	OpFddy:       unaryOp("fddy", FloatWidths, KindFloat),
	OpFddxFine:   unaryOp("fddx_fine", FloatWidths, KindFloat),
	OpFddyFine:   unaryOp("fddy_fine", FloatWidths, KindFloat),
	OpFddxCoarse: unaryOp("fddx_coarse", FloatWidths, KindFloat),
	OpFddyCoarse: unaryOp("fddy_coarse", FloatWidths, KindFloat),
	OpFNoise:     opcode("fnoise", FloatWidths, operand(KindFloat)),
}

func replicated(i Info) Info {
	i.Dst.Size = 4
	i.Replicate = true
	return i
}

func extractOp(name string, k Kind) Info {
	return opcode(name, IntWidths, operand(k), operand(k), sized(KindInt, 0, Width32))
}

func packOp(name string, widths WidthSet, src Kind, n uint8, srcWidth BitWidth) Info {
	return opcode(name, widths, sized(KindUint, 1, Width32), sized(src, n, srcWidth))
}

func splitPackOp(name string, widths WidthSet, src Kind, srcWidth BitWidth) Info {
	return opcode(name, widths, sized(KindUint, 1, Width32),
		sized(src, 1, srcWidth), sized(src, 1, srcWidth))
}

func unpackOp(name string, widths WidthSet, dst Kind, n uint8, dstWidth BitWidth) Info {
	return opcode(name, widths, sized(dst, n, dstWidth), sized(KindUint, 1, Width32))
}

var opcodeByName = func() *ordered.Map[string, Opcode] {
	m := ordered.NewMap[string, Opcode]()
	for op := OpInvalid + 1; op < numOpcodes; op++ {
		info := opInfo[op]
		if info.Name == "" {
			panic(fmt.Sprintf("ir: opcode %d has no metadata", uint16(op)))
		}
		if _, dup := m.Load(info.Name); dup {
			panic(fmt.Sprintf("ir: duplicate opcode name %q", info.Name))
		}
		m.Store(info.Name, op)
	}
	return m
}()

// NumOpcodes is the number of valid opcodes.
const NumOpcodes = int(numOpcodes) - 1

// Valid reports whether op is a member of the enumeration.
func (op Opcode) Valid() bool {
	return op > OpInvalid && op < numOpcodes
}

// Info returns the static metadata of the opcode.
func (op Opcode) Info() Info {
	if !op.Valid() {
		panic(fmt.Sprintf("ir: invalid opcode %d", uint16(op)))
	}
	return opInfo[op]
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("opcode(%d)", uint16(op))
	}
	return opInfo[op].Name
}

// Lookup resolves a textual opcode name.
func Lookup(name string) (Opcode, bool) {
	return opcodeByName.Load(name)
}

// Names returns an iterator over the textual opcode names in declaration
// order.
func Names() func(func(string) bool) {
	return opcodeByName.Keys()
}

// Opcodes returns an iterator over all valid opcodes in declaration order.
func Opcodes() func(func(Opcode) bool) {
	return func(yield func(Opcode) bool) {
		for op := OpInvalid + 1; op < numOpcodes; op++ {
			if !yield(op) {
				break
			}
		}
	}
}
