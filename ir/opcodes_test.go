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

package ir_test

import (
	"testing"

	"github.com/gx-org/slir/ir"
)

func TestOpcodeTable(t *testing.T) {
	count := 0
	for op := range ir.Opcodes() {
		count++
		info := op.Info()
		if info.Name == "" {
			t.Fatalf("opcode %d has no name", op)
		}
		if op.String() != info.Name {
			t.Errorf("%s: String() = %q", info.Name, op.String())
		}
		if len(info.Widths.Widths()) == 0 {
			t.Errorf("%s: no legal bit widths", info.Name)
		}
		if info.Arity() > 4 {
			t.Errorf("%s: arity %d out of range", info.Name, info.Arity())
		}
		got, ok := ir.Lookup(info.Name)
		if !ok || got != op {
			t.Errorf("Lookup(%q) = %v, %t; want %v", info.Name, got, ok, op)
		}
	}
	if count != ir.NumOpcodes {
		t.Errorf("iterated %d opcodes, want %d", count, ir.NumOpcodes)
	}
}

func TestLookupUnknown(t *testing.T) {
	if op, ok := ir.Lookup("fnord"); ok {
		t.Errorf("Lookup(fnord) = %v, want not found", op)
	}
}

func TestOpcodeValid(t *testing.T) {
	if ir.OpInvalid.Valid() {
		t.Error("OpInvalid reports valid")
	}
	if !ir.OpFAdd.Valid() {
		t.Error("OpFAdd reports invalid")
	}
	if ir.Opcode(0xffff).Valid() {
		t.Error("out-of-range opcode reports valid")
	}
}

func TestReplicatedReductions(t *testing.T) {
	for _, op := range []ir.Opcode{
		ir.OpFDotReplicated2, ir.OpFDotReplicated3, ir.OpFDotReplicated4, ir.OpFDphReplicated,
	} {
		info := op.Info()
		if !info.Replicate {
			t.Errorf("%s: Replicate not set", info.Name)
		}
		if info.Dst.Size != 4 {
			t.Errorf("%s: destination size %d, want 4", info.Name, info.Dst.Size)
		}
	}
	if ir.OpFDot2.Info().Replicate {
		t.Error("fdot2: Replicate set")
	}
}

func TestWidthSet(t *testing.T) {
	if !ir.FloatWidths.Has(ir.Width16) || ir.FloatWidths.Has(ir.Width8) {
		t.Errorf("FloatWidths = %v, want {16, 32, 64}", ir.FloatWidths.Widths())
	}
	want := []ir.BitWidth{ir.Width1, ir.Width8, ir.Width16, ir.Width32, ir.Width64}
	got := ir.IntWidths.Widths()
	if len(got) != len(want) {
		t.Fatalf("IntWidths.Widths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IntWidths.Widths() = %v, want %v", got, want)
		}
	}
}
