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

func TestIntSignExtension(t *testing.T) {
	tests := []struct {
		bits uint64
		w    ir.BitWidth
		want int64
	}{
		{0x0, ir.Width1, 0},
		{0x1, ir.Width1, -1},
		{0x7f, ir.Width8, 127},
		{0x80, ir.Width8, -128},
		{0xff, ir.Width8, -1},
		{0x8000, ir.Width16, -32768},
		{0xffffffff, ir.Width32, -1},
		{0x80000000, ir.Width32, -2147483648},
		{0xffffffffffffffff, ir.Width64, -1},
	}
	for _, test := range tests {
		var v ir.Value
		v.SetBits(test.bits)
		if got := v.Int(test.w); got != test.want {
			t.Errorf("Int(%d) of %#x = %d, want %d", test.w, test.bits, got, test.want)
		}
	}
}

func TestSetIntTruncates(t *testing.T) {
	tests := []struct {
		w    ir.BitWidth
		in   int64
		want uint64
	}{
		{ir.Width8, 300, 0x2c},
		{ir.Width8, -1, 0xff},
		{ir.Width16, -32768, 0x8000},
		{ir.Width1, -1, 0x1},
		{ir.Width1, 2, 0x0},
		{ir.Width32, 1 << 40, 0x0},
	}
	for _, test := range tests {
		var v ir.Value
		v.SetInt(test.w, test.in)
		if got := v.Bits(); got != test.want {
			t.Errorf("SetInt(%d, %d) stored %#x, want %#x", test.w, test.in, got, test.want)
		}
	}
}

func TestSetUintTruncates(t *testing.T) {
	var v ir.Value
	v.SetUint(ir.Width16, 0x12345)
	if got := v.Bits(); got != 0x2345 {
		t.Errorf("SetUint(16, 0x12345) stored %#x, want 0x2345", got)
	}
}

func TestSetBoolCanonicalEncoding(t *testing.T) {
	tests := []struct {
		w    ir.BitWidth
		want uint64
	}{
		{ir.Width1, 0x1},
		{ir.Width8, 0xff},
		{ir.Width16, 0xffff},
		{ir.Width32, 0xffffffff},
		{ir.Width64, 0xffffffffffffffff},
	}
	for _, test := range tests {
		var v ir.Value
		v.SetBool(test.w, true)
		if got := v.Bits(); got != test.want {
			t.Errorf("SetBool(%d, true) stored %#x, want %#x", test.w, got, test.want)
		}
		v.SetBool(test.w, false)
		if got := v.Bits(); got != 0 {
			t.Errorf("SetBool(%d, false) stored %#x, want 0", test.w, got)
		}
	}
}

func TestFloat16Lane(t *testing.T) {
	var v ir.Value
	v.SetFloat32(ir.Width16, 1.5)
	if got := v.Bits(); got != 0x3e00 {
		t.Errorf("SetFloat32(16, 1.5) stored %#x, want 0x3e00", got)
	}
	if got := v.Float32(ir.Width16); got != 1.5 {
		t.Errorf("Float32(16) = %v, want 1.5", got)
	}
	// The 16-bit store rounds to nearest even.
	v.SetFloat32(ir.Width16, 1+1.0/(1<<11))
	if got := v.Bits(); got != 0x3c00 {
		t.Errorf("SetFloat32(16, 1+2^-11) stored %#x, want 0x3c00", got)
	}
}

func TestFloat64Lane(t *testing.T) {
	var v ir.Value
	v.SetFloat64(-0.25)
	if got := v.Float64(); got != -0.25 {
		t.Errorf("Float64() = %v, want -0.25", got)
	}
}
