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

// Package ir defines the scalar/vector ALU surface of the SLIR shader
// intermediate representation: the opcode enumeration, per-opcode metadata,
// and the constant value storage that the folding evaluator reads and writes.
package ir

import (
	"fmt"
	"slices"

	"github.com/gx-org/slir/base/stringseq"
)

// BitWidth is the storage size in bits of one scalar lane.
// Integer and boolean lanes support 1, 8, 16, 32 and 64 bits;
// float lanes support 16, 32 and 64 bits.
type BitWidth uint8

const (
	Width1  BitWidth = 1
	Width8  BitWidth = 8
	Width16 BitWidth = 16
	Width32 BitWidth = 32
	Width64 BitWidth = 64
)

func (w BitWidth) String() string {
	return fmt.Sprintf("%d", uint8(w))
}

// Kind is the type category of an operand or result lane.
type Kind uint8

const (
	// KindFloat lanes hold IEEE binary16/32/64 values. A 16-bit lane
	// stores the raw binary16 encoding; arithmetic never happens at
	// 16 bits (see Value.Float32).
	KindFloat Kind = iota
	// KindInt lanes hold two's-complement signed integers. A 1-bit
	// signed lane reads back as 0 or -1.
	KindInt
	// KindUint lanes hold unsigned integers. Opcodes that only move
	// bits around (mov, bcsel, vec2..4) declare their operands as
	// KindUint regardless of how the program typed them.
	KindUint
	// KindBool lanes hold the canonical boolean encoding: bit 0 at
	// width 1, all-zero/all-one at widths 8 to 64.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// WidthSet is a set of bit widths, one bit per legal width.
type WidthSet uint8

const (
	w1 WidthSet = 1 << iota
	w8
	w16
	w32
	w64
)

// Width sets shared by most opcodes. A handful of opcodes are pinned to
// a single width (e.g. the 32-bit bitfield operations).
const (
	IntWidths   = w1 | w8 | w16 | w32 | w64
	FloatWidths = w16 | w32 | w64
	Only32      = w32
	Only64      = w64
)

func widthBit(w BitWidth) WidthSet {
	switch w {
	case Width1:
		return w1
	case Width8:
		return w8
	case Width16:
		return w16
	case Width32:
		return w32
	case Width64:
		return w64
	}
	return 0
}

// Has reports whether w belongs to the set.
func (s WidthSet) Has(w BitWidth) bool {
	return s&widthBit(w) != 0
}

// Widths returns the widths in the set, smallest first.
func (s WidthSet) Widths() []BitWidth {
	var out []BitWidth
	for _, w := range []BitWidth{Width1, Width8, Width16, Width32, Width64} {
		if s.Has(w) {
			out = append(out, w)
		}
	}
	return out
}

func (s WidthSet) String() string {
	return "{" + stringseq.JoinStringer(slices.Values(s.Widths()), ", ") + "}"
}
