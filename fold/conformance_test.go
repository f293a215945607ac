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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"sigs.k8s.io/yaml"

	"github.com/gx-org/slir/fold"
	"github.com/gx-org/slir/ir"
)

type conformanceCase struct {
	Name string `json:"name"`
	Op   string `json:"op"`
	// Width is the invocation bit width; Components defaults to 1.
	Width      uint8      `json:"width"`
	Components int        `json:"components,omitempty"`
	Srcs       [][]uint64 `json:"srcs"`
	Want       []uint64   `json:"want"`
}

type conformanceFile struct {
	Cases []conformanceCase `json:"cases"`
}

// TestConformance replays the bit-exact witnesses in testdata. Each case
// pins down one committed behavior: wraparound, saturation bounds,
// boolean encoding, rounding, or an edge case folded to a fixed value.
func TestConformance(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "conformance.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var file conformanceFile
	if err := yaml.UnmarshalStrict(raw, &file); err != nil {
		t.Fatal(err)
	}
	if len(file.Cases) == 0 {
		t.Fatal("no conformance cases")
	}
	for _, c := range file.Cases {
		t.Run(c.Name, func(t *testing.T) {
			op, ok := ir.Lookup(c.Op)
			if !ok {
				t.Fatalf("unknown opcode %q", c.Op)
			}
			nc := c.Components
			if nc == 0 {
				nc = 1
			}
			srcs := make([]*ir.Vector, len(c.Srcs))
			for i, s := range c.Srcs {
				srcs[i] = &ir.Vector{}
				for j, b := range s {
					srcs[i][j].SetBits(b)
				}
			}
			if err := ir.CheckInvocation(op, nc, ir.BitWidth(c.Width), srcs); err != nil {
				t.Fatalf("CheckInvocation: %v", err)
			}
			dst := &ir.Vector{}
			fold.Evaluate(op, dst, nc, ir.BitWidth(c.Width), srcs)
			got := make([]uint64, len(c.Want))
			for i := range got {
				got[i] = dst[i].Bits()
			}
			if diff := cmp.Diff(c.Want, got); diff != "" {
				t.Errorf("%s lanes mismatch (-want +got):\n%s", c.Op, diff)
			}
		})
	}
}
