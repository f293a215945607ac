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

// Package fold evaluates ALU instructions over compile-time constant
// operands, reproducing the exact lane-wise semantics of the runtime
// instruction set: two's-complement wraparound, saturation bounds,
// canonical 0/-1 boolean encoding, binary16 promotion, and the committed
// values for the edge cases the source language leaves undefined.
//
// Every evaluator is a pure function of its parameter list. Evaluate may
// be called concurrently on disjoint destinations.
package fold

import (
	"fmt"

	"github.com/gx-org/slir/ir"
)

// Evaluate computes the constant result of one instruction. It writes
// destination lanes 0..numComponents-1 (reductions write lane 0 only;
// replicated reductions write lanes 0..3) and touches nothing else.
//
// The caller guarantees the invocation is well-formed (see
// ir.CheckInvocation): an unknown opcode or a bit width outside the
// opcode's legal set is a compiler-internal error and panics.
func Evaluate(op ir.Opcode, dst *ir.Vector, numComponents int, w ir.BitWidth, src []*ir.Vector) {
	nc := numComponents
	switch op {
	// Float arithmetic.
	case ir.OpFAdd:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fadd[float32], fadd[float64])
	case ir.OpFSub:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fsub[float32], fsub[float64])
	case ir.OpFMul:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fmul[float32], fmul[float64])
	case ir.OpFDiv:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fdiv[float32], fdiv[float64])
	case ir.OpFRcp:
		lanewiseFloat1(dst, nc, w, src[0], frcp[float32], frcp[float64])
	case ir.OpFRsq:
		lanewiseFloat1(dst, nc, w, src[0], frsq[float32], frsq[float64])
	case ir.OpFSqrt:
		lanewiseFloat1(dst, nc, w, src[0], fsqrt[float32], fsqrt[float64])
	case ir.OpFFma:
		lanewiseFloat3(dst, nc, w, src[0], src[1], src[2], ffma[float32], ffma[float64])
	case ir.OpFMod:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fmod[float32], fmod[float64])
	case ir.OpFRem:
		lanewiseFloat2(dst, nc, w, src[0], src[1], frem[float32], frem[float64])
	case ir.OpFNeg:
		lanewiseFloat1(dst, nc, w, src[0], fneg[float32], fneg[float64])
	case ir.OpFAbs:
		lanewiseFloat1(dst, nc, w, src[0], fabs[float32], fabs[float64])
	case ir.OpFSat:
		lanewiseFloat1(dst, nc, w, src[0], fsat[float32], fsat[float64])
	case ir.OpFSign:
		lanewiseFloat1(dst, nc, w, src[0], fsign[float32], fsign[float64])
	case ir.OpFMin:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fmin[float32], fmin[float64])
	case ir.OpFMax:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fmax[float32], fmax[float64])
	case ir.OpFFloor:
		lanewiseFloat1(dst, nc, w, src[0], ffloor[float32], ffloor[float64])
	case ir.OpFCeil:
		lanewiseFloat1(dst, nc, w, src[0], fceil[float32], fceil[float64])
	case ir.OpFTrunc:
		lanewiseFloat1(dst, nc, w, src[0], ftrunc[float32], ftrunc[float64])
	case ir.OpFRoundEven:
		lanewiseFloat1(dst, nc, w, src[0], froundEven[float32], froundEven[float64])
	case ir.OpFFract:
		lanewiseFloat1(dst, nc, w, src[0], ffract[float32], ffract[float64])
	case ir.OpFExp2:
		lanewiseFloat1(dst, nc, w, src[0], fexp2[float32], fexp2[float64])
	case ir.OpFLog2:
		lanewiseFloat1(dst, nc, w, src[0], flog2[float32], flog2[float64])
	case ir.OpFPow:
		lanewiseFloat2(dst, nc, w, src[0], src[1], fpow[float32], fpow[float64])
	case ir.OpFSin:
		lanewiseFloat1(dst, nc, w, src[0], fsin[float32], fsin[float64])
	case ir.OpFCos:
		lanewiseFloat1(dst, nc, w, src[0], fcos[float32], fcos[float64])
	case ir.OpLdexp:
		evalLdexp(dst, nc, w, src[0], src[1])
	case ir.OpFQuantize2F16:
		evalFQuantize2F16(dst, nc, src[0])
	case ir.OpFrexpExp:
		evalFrexpExp(dst, nc, w, src[0])
	case ir.OpFrexpSig:
		evalFrexpSig(dst, nc, w, src[0])

	// Integer arithmetic and bitwise logic.
	case ir.OpIAdd:
		lanewiseInt2(dst, nc, w, src[0], src[1], iadd)
	case ir.OpISub:
		lanewiseInt2(dst, nc, w, src[0], src[1], isub)
	case ir.OpIMul:
		lanewiseInt2(dst, nc, w, src[0], src[1], imul)
	case ir.OpINeg:
		lanewiseInt1(dst, nc, w, src[0], ineg)
	case ir.OpIAbs:
		lanewiseInt1(dst, nc, w, src[0], iabs)
	case ir.OpISign:
		lanewiseInt1(dst, nc, w, src[0], isign)
	case ir.OpIDiv:
		lanewiseInt2(dst, nc, w, src[0], src[1], idiv)
	case ir.OpUDiv:
		lanewiseUint2(dst, nc, w, src[0], src[1], udiv)
	case ir.OpIMod:
		lanewiseInt2(dst, nc, w, src[0], src[1], imod)
	case ir.OpUMod:
		lanewiseUint2(dst, nc, w, src[0], src[1], umod)
	case ir.OpIRem:
		lanewiseInt2(dst, nc, w, src[0], src[1], irem)
	case ir.OpIMin:
		lanewiseInt2(dst, nc, w, src[0], src[1], imin)
	case ir.OpIMax:
		lanewiseInt2(dst, nc, w, src[0], src[1], imax)
	case ir.OpUMin:
		lanewiseUint2(dst, nc, w, src[0], src[1], umin)
	case ir.OpUMax:
		lanewiseUint2(dst, nc, w, src[0], src[1], umax)
	case ir.OpIAnd:
		lanewiseUint2(dst, nc, w, src[0], src[1], iand)
	case ir.OpIOr:
		lanewiseUint2(dst, nc, w, src[0], src[1], ior)
	case ir.OpIXor:
		lanewiseUint2(dst, nc, w, src[0], src[1], ixor)
	case ir.OpINot:
		lanewiseUint1(dst, nc, w, src[0], inot)
	case ir.OpIShl:
		lanewiseUintW2(dst, nc, w, src[0], src[1], ishl)
	case ir.OpIShr:
		lanewiseIntW2(dst, nc, w, src[0], src[1], ishr)
	case ir.OpUShr:
		lanewiseUintW2(dst, nc, w, src[0], src[1], ushr)

	// Saturating, carry and averaging arithmetic.
	case ir.OpIAddSat:
		lanewiseIntW2(dst, nc, w, src[0], src[1], iaddSat)
	case ir.OpUAddSat:
		lanewiseUintW2(dst, nc, w, src[0], src[1], uaddSat)
	case ir.OpISubSat:
		lanewiseIntW2(dst, nc, w, src[0], src[1], isubSat)
	case ir.OpUSubSat:
		lanewiseUint2(dst, nc, w, src[0], src[1], usubSat)
	case ir.OpUAddCarry:
		lanewiseUintW2(dst, nc, w, src[0], src[1], uaddCarry)
	case ir.OpUSubBorrow:
		lanewiseUint2(dst, nc, w, src[0], src[1], usubBorrow)
	case ir.OpIHadd:
		lanewiseInt2(dst, nc, w, src[0], src[1], ihadd)
	case ir.OpUHadd:
		lanewiseUint2(dst, nc, w, src[0], src[1], uhadd)
	case ir.OpIRhadd:
		lanewiseInt2(dst, nc, w, src[0], src[1], irhadd)
	case ir.OpURhadd:
		lanewiseUint2(dst, nc, w, src[0], src[1], urhadd)

	// Multi-precision multiplies.
	case ir.OpIMulHigh:
		lanewiseIntW2(dst, nc, w, src[0], src[1], imulHigh)
	case ir.OpUMulHigh:
		lanewiseUintW2(dst, nc, w, src[0], src[1], umulHigh)
	case ir.OpIMul2x3264:
		for i := 0; i < nc; i++ {
			dst[i].SetInt(ir.Width64, src[0][i].Int(ir.Width32)*src[1][i].Int(ir.Width32))
		}
	case ir.OpUMul2x3264:
		for i := 0; i < nc; i++ {
			dst[i].SetUint(ir.Width64, src[0][i].Uint(ir.Width32)*src[1][i].Uint(ir.Width32))
		}

	// Comparisons.
	case ir.OpFLt:
		lanewiseCmpFloat(dst, nc, w, src[0], src[1], flt[float32], flt[float64])
	case ir.OpFGe:
		lanewiseCmpFloat(dst, nc, w, src[0], src[1], fge[float32], fge[float64])
	case ir.OpFEq:
		lanewiseCmpFloat(dst, nc, w, src[0], src[1], feq[float32], feq[float64])
	case ir.OpFNeu:
		lanewiseCmpFloat(dst, nc, w, src[0], src[1], fneu[float32], fneu[float64])
	case ir.OpILt:
		lanewiseCmpInt(dst, nc, w, src[0], src[1], ilt)
	case ir.OpIGe:
		lanewiseCmpInt(dst, nc, w, src[0], src[1], ige)
	case ir.OpIEq:
		lanewiseCmpInt(dst, nc, w, src[0], src[1], ieq)
	case ir.OpINe:
		lanewiseCmpInt(dst, nc, w, src[0], src[1], ine)
	case ir.OpULt:
		lanewiseCmpUint(dst, nc, w, src[0], src[1], ult)
	case ir.OpUGe:
		lanewiseCmpUint(dst, nc, w, src[0], src[1], uge)
	case ir.OpSLt:
		lanewiseFloat32Bin(dst, nc, src[0], src[1], slt)
	case ir.OpSGe:
		lanewiseFloat32Bin(dst, nc, src[0], src[1], sge)
	case ir.OpSEq:
		lanewiseFloat32Bin(dst, nc, src[0], src[1], seq)
	case ir.OpSNe:
		lanewiseFloat32Bin(dst, nc, src[0], src[1], sne)

	// Selection and movement.
	case ir.OpBCSel:
		evalBCSel(dst, nc, w, src[0], src[1], src[2])
	case ir.OpFCSel:
		evalFCSel(dst, nc, src[0], src[1], src[2])
	case ir.OpMov:
		for i := 0; i < nc; i++ {
			dst[i].SetUint(w, src[0][i].Uint(w))
		}
	case ir.OpVec2, ir.OpVec3, ir.OpVec4:
		for i := range src {
			dst[i].SetUint(w, src[i][0].Uint(w))
		}

	// Reductions.
	case ir.OpBAllIEqual2:
		evalBAllIEqual(dst, w, src[0], src[1], 2)
	case ir.OpBAllIEqual3:
		evalBAllIEqual(dst, w, src[0], src[1], 3)
	case ir.OpBAllIEqual4:
		evalBAllIEqual(dst, w, src[0], src[1], 4)
	case ir.OpBAnyINequal2:
		evalBAnyINequal(dst, w, src[0], src[1], 2)
	case ir.OpBAnyINequal3:
		evalBAnyINequal(dst, w, src[0], src[1], 3)
	case ir.OpBAnyINequal4:
		evalBAnyINequal(dst, w, src[0], src[1], 4)
	case ir.OpBAllFEqual2:
		evalBAllFEqual(dst, w, src[0], src[1], 2)
	case ir.OpBAllFEqual3:
		evalBAllFEqual(dst, w, src[0], src[1], 3)
	case ir.OpBAllFEqual4:
		evalBAllFEqual(dst, w, src[0], src[1], 4)
	case ir.OpBAnyFNequal2:
		evalBAnyFNequal(dst, w, src[0], src[1], 2)
	case ir.OpBAnyFNequal3:
		evalBAnyFNequal(dst, w, src[0], src[1], 3)
	case ir.OpBAnyFNequal4:
		evalBAnyFNequal(dst, w, src[0], src[1], 4)
	case ir.OpFAllEqual2:
		evalFAllEqual(dst, src[0], src[1], 2)
	case ir.OpFAllEqual3:
		evalFAllEqual(dst, src[0], src[1], 3)
	case ir.OpFAllEqual4:
		evalFAllEqual(dst, src[0], src[1], 4)
	case ir.OpFAnyNequal2:
		evalFAnyNequal(dst, src[0], src[1], 2)
	case ir.OpFAnyNequal3:
		evalFAnyNequal(dst, src[0], src[1], 3)
	case ir.OpFAnyNequal4:
		evalFAnyNequal(dst, src[0], src[1], 4)
	case ir.OpFDot2:
		evalFDot(dst, w, src[0], src[1], 2, false)
	case ir.OpFDot3:
		evalFDot(dst, w, src[0], src[1], 3, false)
	case ir.OpFDot4:
		evalFDot(dst, w, src[0], src[1], 4, false)
	case ir.OpFDph:
		evalFDph(dst, w, src[0], src[1], false)
	case ir.OpFDotReplicated2:
		evalFDot(dst, w, src[0], src[1], 2, true)
	case ir.OpFDotReplicated3:
		evalFDot(dst, w, src[0], src[1], 3, true)
	case ir.OpFDotReplicated4:
		evalFDot(dst, w, src[0], src[1], 4, true)
	case ir.OpFDphReplicated:
		evalFDph(dst, w, src[0], src[1], true)

	// Bit manipulation.
	case ir.OpBitCount:
		evalBitCount(dst, nc, w, src[0])
	case ir.OpBitfieldReverse:
		evalBitfieldReverse(dst, nc, src[0])
	case ir.OpFindLsb:
		evalFindLsb(dst, nc, w, src[0])
	case ir.OpUFindMsb:
		evalUFindMsb(dst, nc, w, src[0])
	case ir.OpIFindMsb:
		evalIFindMsb(dst, nc, w, src[0])
	case ir.OpUBitfieldExtract:
		evalUBitfieldExtract(dst, nc, src[0], src[1], src[2])
	case ir.OpIBitfieldExtract:
		evalIBitfieldExtract(dst, nc, src[0], src[1], src[2])
	case ir.OpBitfieldInsert:
		evalBitfieldInsert(dst, nc, src[0], src[1], src[2], src[3])
	case ir.OpBitfieldSelect:
		evalBitfieldSelect(dst, nc, w, src[0], src[1], src[2])
	case ir.OpExtractU8:
		evalExtract(dst, nc, w, src[0], src[1], 8, false)
	case ir.OpExtractI8:
		evalExtract(dst, nc, w, src[0], src[1], 8, true)
	case ir.OpExtractU16:
		evalExtract(dst, nc, w, src[0], src[1], 16, false)
	case ir.OpExtractI16:
		evalExtract(dst, nc, w, src[0], src[1], 16, true)
	case ir.OpInsertU8:
		evalInsert(dst, nc, w, src[0], src[1], 8)
	case ir.OpInsertU16:
		evalInsert(dst, nc, w, src[0], src[1], 16)

	// Type conversions.
	case ir.OpF2F16:
		evalF2F(dst, nc, w, src[0], ir.Width16)
	case ir.OpF2F32:
		evalF2F(dst, nc, w, src[0], ir.Width32)
	case ir.OpF2F64:
		evalF2F(dst, nc, w, src[0], ir.Width64)
	case ir.OpF2I8:
		evalF2I(dst, nc, w, src[0], ir.Width8)
	case ir.OpF2I16:
		evalF2I(dst, nc, w, src[0], ir.Width16)
	case ir.OpF2I32:
		evalF2I(dst, nc, w, src[0], ir.Width32)
	case ir.OpF2I64:
		evalF2I(dst, nc, w, src[0], ir.Width64)
	case ir.OpF2U8:
		evalF2U(dst, nc, w, src[0], ir.Width8)
	case ir.OpF2U16:
		evalF2U(dst, nc, w, src[0], ir.Width16)
	case ir.OpF2U32:
		evalF2U(dst, nc, w, src[0], ir.Width32)
	case ir.OpF2U64:
		evalF2U(dst, nc, w, src[0], ir.Width64)
	case ir.OpI2F16:
		evalI2F(dst, nc, w, src[0], ir.Width16)
	case ir.OpI2F32:
		evalI2F(dst, nc, w, src[0], ir.Width32)
	case ir.OpI2F64:
		evalI2F(dst, nc, w, src[0], ir.Width64)
	case ir.OpU2F16:
		evalU2F(dst, nc, w, src[0], ir.Width16)
	case ir.OpU2F32:
		evalU2F(dst, nc, w, src[0], ir.Width32)
	case ir.OpU2F64:
		evalU2F(dst, nc, w, src[0], ir.Width64)
	case ir.OpI2I8:
		evalI2I(dst, nc, w, src[0], ir.Width8)
	case ir.OpI2I16:
		evalI2I(dst, nc, w, src[0], ir.Width16)
	case ir.OpI2I32:
		evalI2I(dst, nc, w, src[0], ir.Width32)
	case ir.OpI2I64:
		evalI2I(dst, nc, w, src[0], ir.Width64)
	case ir.OpU2U8:
		evalU2U(dst, nc, w, src[0], ir.Width8)
	case ir.OpU2U16:
		evalU2U(dst, nc, w, src[0], ir.Width16)
	case ir.OpU2U32:
		evalU2U(dst, nc, w, src[0], ir.Width32)
	case ir.OpU2U64:
		evalU2U(dst, nc, w, src[0], ir.Width64)
	case ir.OpB2F16:
		evalB2F(dst, nc, src[0], ir.Width16)
	case ir.OpB2F32:
		evalB2F(dst, nc, src[0], ir.Width32)
	case ir.OpB2F64:
		evalB2F(dst, nc, src[0], ir.Width64)
	case ir.OpB2I8:
		evalB2I(dst, nc, src[0], ir.Width8)
	case ir.OpB2I16:
		evalB2I(dst, nc, src[0], ir.Width16)
	case ir.OpB2I32:
		evalB2I(dst, nc, src[0], ir.Width32)
	case ir.OpB2I64:
		evalB2I(dst, nc, src[0], ir.Width64)
	case ir.OpI2B1:
		for i := 0; i < nc; i++ {
			dst[i].SetBool(ir.Width1, src[0][i].Uint(w) != 0)
		}
	case ir.OpF2B1:
		evalF2B(dst, nc, w, src[0])

	// Packing and unpacking.
	case ir.OpPackSnorm2x16:
		evalPackSnorm2x16(dst, src[0])
	case ir.OpPackSnorm4x8:
		evalPackSnorm4x8(dst, src[0])
	case ir.OpPackUnorm2x16:
		evalPackUnorm2x16(dst, src[0])
	case ir.OpPackUnorm4x8:
		evalPackUnorm4x8(dst, src[0])
	case ir.OpPackHalf2x16:
		evalPackHalf2x16(dst, src[0][0], src[0][1])
	case ir.OpPackHalf2x16Split:
		evalPackHalf2x16(dst, src[0][0], src[1][0])
	case ir.OpPack32_2x16:
		evalPack32_2x16(dst, src[0][0], src[0][1])
	case ir.OpPack32_2x16Split:
		evalPack32_2x16(dst, src[0][0], src[1][0])
	case ir.OpPack64_2x32:
		evalPack64_2x32(dst, src[0][0], src[0][1])
	case ir.OpPack64_2x32Split:
		evalPack64_2x32(dst, src[0][0], src[1][0])
	case ir.OpPack64_4x16:
		evalPack64_4x16(dst, src[0])
	case ir.OpUnpackSnorm2x16:
		evalUnpackSnorm2x16(dst, src[0][0])
	case ir.OpUnpackSnorm4x8:
		evalUnpackSnorm4x8(dst, src[0][0])
	case ir.OpUnpackUnorm2x16:
		evalUnpackUnorm2x16(dst, src[0][0])
	case ir.OpUnpackUnorm4x8:
		evalUnpackUnorm4x8(dst, src[0][0])
	case ir.OpUnpackHalf2x16:
		evalUnpackHalf2x16(dst, src[0][0])
	case ir.OpUnpackHalf2x16SplitX:
		dst[0].SetFloat32(ir.Width32, halfLow(src[0][0]))
	case ir.OpUnpackHalf2x16SplitY:
		dst[0].SetFloat32(ir.Width32, halfHigh(src[0][0]))
	case ir.OpUnpack32_2x16:
		v := src[0][0].Uint(ir.Width32)
		dst[0].SetUint(ir.Width16, v)
		dst[1].SetUint(ir.Width16, v>>16)
	case ir.OpUnpack32_2x16SplitX:
		dst[0].SetUint(ir.Width16, src[0][0].Uint(ir.Width32))
	case ir.OpUnpack32_2x16SplitY:
		dst[0].SetUint(ir.Width16, src[0][0].Uint(ir.Width32)>>16)
	case ir.OpUnpack64_2x32:
		v := src[0][0].Uint(ir.Width64)
		dst[0].SetUint(ir.Width32, v)
		dst[1].SetUint(ir.Width32, v>>32)
	case ir.OpUnpack64_2x32SplitX:
		dst[0].SetUint(ir.Width32, src[0][0].Uint(ir.Width64))
	case ir.OpUnpack64_2x32SplitY:
		dst[0].SetUint(ir.Width32, src[0][0].Uint(ir.Width64)>>32)
	case ir.OpUnpack64_4x16:
		v := src[0][0].Uint(ir.Width64)
		for i := 0; i < 4; i++ {
			dst[i].SetUint(ir.Width16, v>>(16*uint(i)))
		}

	// Cube-map helpers.
	case ir.OpCubeFaceIndex:
		evalCubeFaceIndex(dst, src[0])
	case ir.OpCubeFaceCoord:
		evalCubeFaceCoord(dst, src[0])

	// Derivatives and noise have no compile-time value and fold to
	// zero at the invocation width.
	case ir.OpFddx, ir.OpFddy, ir.OpFddxFine, ir.OpFddyFine,
		ir.OpFddxCoarse, ir.OpFddyCoarse, ir.OpFNoise:
		for i := 0; i < nc; i++ {
			setFloat(&dst[i], w, 0, 0)
		}

	default:
		panic(fmt.Sprintf("fold: no evaluator for opcode %s", op))
	}
}
