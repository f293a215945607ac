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

package f16_test

import (
	"math"
	"testing"

	"github.com/gx-org/slir/internal/f16"
)

func TestToFloat32(t *testing.T) {
	tests := []struct {
		h    uint16
		want float32
	}{
		{0x0000, 0},
		{0x3c00, 1},
		{0x3c01, 1.0009765625},
		{0xc000, -2},
		{0x3800, 0.5},
		{0x7bff, 65504},
		{0x0001, 1.0 / (1 << 24)},
		{0x03ff, 1023.0 / (1 << 24)},
		{0x0400, 1.0 / (1 << 14)},
		{0x7c00, float32(math.Inf(1))},
		{0xfc00, float32(math.Inf(-1))},
	}
	for _, test := range tests {
		if got := f16.ToFloat32(test.h); got != test.want {
			t.Errorf("ToFloat32(%#04x) = %v, want %v", test.h, got, test.want)
		}
	}
}

func TestToFloat32SignedZeroAndNaN(t *testing.T) {
	if bits := math.Float32bits(f16.ToFloat32(0x8000)); bits != 0x80000000 {
		t.Errorf("ToFloat32(0x8000) = %#08x, want negative zero", bits)
	}
	if f := f16.ToFloat32(0x7e00); f == f {
		t.Errorf("ToFloat32(0x7e00) = %v, want NaN", f)
	}
}

func TestFromFloat32(t *testing.T) {
	tests := []struct {
		f    float32
		want uint16
	}{
		{0, 0x0000},
		{1, 0x3c00},
		{-2, 0xc000},
		{0.5, 0x3800},
		{65504, 0x7bff},
		// Halfway to the next representable value, which is infinity.
		{65520, 0x7c00},
		{65519, 0x7bff},
		{float32(math.Inf(1)), 0x7c00},
		{float32(math.Inf(-1)), 0xfc00},
		{1.0 / 3, 0x3555},
		// Smallest subnormal and the rounding boundary below it.
		{1.0 / (1 << 24), 0x0001},
		{1.0 / (1 << 25), 0x0000},
		{3.0 / (1 << 25), 0x0002},
		// Ties round to even at both mantissa parities.
		{1 + 1.0/(1<<11), 0x3c00},
		{1 + 3.0/(1<<11), 0x3c02},
	}
	for _, test := range tests {
		if got := f16.FromFloat32(test.f); got != test.want {
			t.Errorf("FromFloat32(%v) = %#04x, want %#04x", test.f, got, test.want)
		}
	}
}

func TestFromFloat32NaN(t *testing.T) {
	if got := f16.FromFloat32(float32(math.NaN())); got&0x7c00 != 0x7c00 || got&0x3ff == 0 {
		t.Errorf("FromFloat32(NaN) = %#04x, want a NaN pattern", got)
	}
	neg := math.Float32frombits(0xffc00000)
	if got := f16.FromFloat32(neg); got&0x8000 == 0 {
		t.Errorf("FromFloat32(-NaN) = %#04x, want sign preserved", got)
	}
}

// TestRoundTrip widens every binary16 pattern and narrows it back. The
// conversion to float32 is exact, so every non-NaN pattern must survive
// unchanged; NaN payloads collapse to the canonical quiet NaN.
func TestRoundTrip(t *testing.T) {
	for h := 0; h <= 0xffff; h++ {
		in := uint16(h)
		f := f16.ToFloat32(in)
		got := f16.FromFloat32(f)
		if in&0x7c00 == 0x7c00 && in&0x3ff != 0 {
			if got&0x7c00 != 0x7c00 || got&0x3ff == 0 || got&0x8000 != in&0x8000 {
				t.Fatalf("FromFloat32(ToFloat32(%#04x)) = %#04x, want a NaN with the same sign", in, got)
			}
			continue
		}
		if got != in {
			t.Fatalf("FromFloat32(ToFloat32(%#04x)) = %#04x", in, got)
		}
	}
}
