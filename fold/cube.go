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

	"github.com/gx-org/slir/ir"
)

// Cube map face selection. Both ops pick the major axis with the same
// tie order (x, then y, then z) so a folded index and coordinate pair
// always describe the same face.

func cubeMajorAxis(x, y, z float32) int {
	ax := float32(math.Abs(float64(x)))
	ay := float32(math.Abs(float64(y)))
	az := float32(math.Abs(float64(z)))
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

// evalCubeFaceIndex returns the face number as a float: +x=0, -x=1,
// +y=2, -y=3, +z=4, -z=5.
func evalCubeFaceIndex(dst *ir.Vector, s *ir.Vector) {
	x := s[0].Float32(ir.Width32)
	y := s[1].Float32(ir.Width32)
	z := s[2].Float32(ir.Width32)
	axis := cubeMajorAxis(x, y, z)
	face := 2 * axis
	neg := [3]bool{x < 0, y < 0, z < 0}
	if neg[axis] {
		face++
	}
	dst[0].SetFloat32(ir.Width32, float32(face))
}

// evalCubeFaceCoord projects the direction onto the selected face and
// remaps the in-face coordinates to [0, 1].
func evalCubeFaceCoord(dst *ir.Vector, s *ir.Vector) {
	x := s[0].Float32(ir.Width32)
	y := s[1].Float32(ir.Width32)
	z := s[2].Float32(ir.Width32)
	var ma, sc, tc float32
	switch cubeMajorAxis(x, y, z) {
	case 0:
		ma, sc, tc = 2*x, -z, -y
		if x < 0 {
			sc = z
		}
	case 1:
		ma, sc, tc = 2*y, x, z
		if y < 0 {
			tc = -z
		}
	case 2:
		ma, sc, tc = 2*z, x, -y
		if z < 0 {
			sc = -x
		}
	}
	dst[0].SetFloat32(ir.Width32, sc/ma+0.5)
	dst[1].SetFloat32(ir.Width32, tc/ma+0.5)
}
