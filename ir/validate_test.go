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
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/gx-org/slir/ir"
)

func TestCheckInvocation(t *testing.T) {
	two := []*ir.Vector{{}, {}}
	tests := []struct {
		name     string
		op       ir.Opcode
		nc       int
		w        ir.BitWidth
		srcs     []*ir.Vector
		wantErrs int
		wantMsg  string
	}{
		{
			name: "valid",
			op:   ir.OpIAdd, nc: 4, w: ir.Width8, srcs: two,
		},
		{
			name: "unknown opcode",
			op:   ir.Opcode(0x7fff), nc: 1, w: ir.Width32, srcs: nil,
			wantErrs: 1, wantMsg: "unknown opcode",
		},
		{
			name: "component count",
			op:   ir.OpIAdd, nc: 5, w: ir.Width8, srcs: two,
			wantErrs: 1, wantMsg: "component count",
		},
		{
			name: "float op at integer width",
			op:   ir.OpFAdd, nc: 1, w: ir.Width8, srcs: two,
			wantErrs: 1, wantMsg: "bit width",
		},
		{
			name: "arity",
			op:   ir.OpFAdd, nc: 1, w: ir.Width32, srcs: two[:1],
			wantErrs: 1, wantMsg: "source operands",
		},
		{
			name: "nil source",
			op:   ir.OpFAdd, nc: 1, w: ir.Width32, srcs: []*ir.Vector{{}, nil},
			wantErrs: 1, wantMsg: "is nil",
		},
		{
			name: "multiple defects reported together",
			op:   ir.OpFAdd, nc: 0, w: ir.Width1, srcs: nil,
			wantErrs: 3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ir.CheckInvocation(test.op, test.nc, test.w, test.srcs)
			if test.wantErrs == 0 {
				if err != nil {
					t.Fatalf("CheckInvocation: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("CheckInvocation returned nil")
			}
			if got := len(multierr.Errors(err)); got != test.wantErrs {
				t.Errorf("got %d errors (%v), want %d", got, err, test.wantErrs)
			}
			if test.wantMsg != "" && !strings.Contains(err.Error(), test.wantMsg) {
				t.Errorf("error %q does not mention %q", err, test.wantMsg)
			}
		})
	}
}
