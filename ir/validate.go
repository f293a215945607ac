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
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// MaxComponents is the widest vector the IR supports.
const MaxComponents = 4

// CheckInvocation verifies that an evaluator invocation is well-formed:
// known opcode, component count in 1..4, a bit width the opcode accepts,
// and one source vector per operand slot. The evaluator itself does not
// run these checks (a malformed invocation from the optimizer is a
// compiler bug and panics); they are for callers handling untrusted
// input, such as the IR text reader and the folding CLI.
func CheckInvocation(op Opcode, numComponents int, w BitWidth, srcs []*Vector) error {
	if !op.Valid() {
		return errors.Errorf("unknown opcode %d", uint16(op))
	}
	info := opInfo[op]
	var errs error
	if numComponents < 1 || numComponents > MaxComponents {
		errs = multierr.Append(errs, errors.Errorf("%s: component count %d out of range 1..%d", info.Name, numComponents, MaxComponents))
	}
	if !info.Widths.Has(w) {
		errs = multierr.Append(errs, errors.Errorf("%s: bit width %d not supported (legal: %s)", info.Name, w, info.Widths))
	}
	if len(srcs) != info.Arity() {
		errs = multierr.Append(errs, errors.Errorf("%s: got %d source operands but want %d", info.Name, len(srcs), info.Arity()))
	}
	for i, s := range srcs {
		if s == nil {
			errs = multierr.Append(errs, errors.Errorf("%s: source operand %d is nil", info.Name, i))
		}
	}
	return errs
}
