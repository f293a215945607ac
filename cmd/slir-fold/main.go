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

// slir-fold evaluates constant ALU instructions from the command line.
//
// A single invocation takes the opcode, bit width, component count and
// lane values from flags:
//
//	slir-fold -op fadd -width 32 -n 2 -src "1.5,2 ; 0.5,0.25"
//
// Operands are separated by ";", lanes by ",". Each lane is parsed
// according to the operand kind of the opcode: floats in decimal,
// integers in decimal or 0x hex, booleans as 0/1.
//
// A YAML batch (the conformance testdata schema, raw bit patterns per
// lane) replays many invocations and verifies expected lanes:
//
//	slir-fold -batch cases.yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/gx-org/slir/fold"
	"github.com/gx-org/slir/ir"
)

func main() {
	var (
		opName  = flag.String("op", "", "Opcode name (see -list)")
		width   = flag.Int("width", 32, "Invocation bit width (1, 8, 16, 32, 64)")
		nc      = flag.Int("n", 1, "Component count (1..4)")
		src     = flag.String("src", "", "Source lanes: operands separated by ';', lanes by ','")
		batch   = flag.String("batch", "", "YAML file of invocations to replay")
		list    = flag.Bool("list", false, "List the opcode table and exit")
		verbose = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = dev
	}
	defer logger.Sync()

	switch {
	case *list:
		listOpcodes()
	case *batch != "":
		if err := runBatch(logger, *batch); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *opName != "":
		if err := runOne(logger, *opName, *width, *nc, *src); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "Usage: slir-fold -op <name> -width <bits> [-n count] -src \"lanes ; lanes\"")
		fmt.Fprintln(os.Stderr, "       slir-fold -batch <file.yaml>")
		fmt.Fprintln(os.Stderr, "       slir-fold -list")
		os.Exit(1)
	}
}

func listOpcodes() {
	for name := range ir.Names() {
		op, _ := ir.Lookup(name)
		info := op.Info()
		kinds := make([]string, 0, len(info.Srcs))
		for _, s := range info.Srcs {
			kinds = append(kinds, s.Kind.String())
		}
		fmt.Printf("%-24s srcs(%s) -> %s  widths %s\n",
			name, strings.Join(kinds, ", "), info.Dst.Kind, info.Widths)
	}
}

func runOne(logger *zap.Logger, opName string, width, nc int, src string) error {
	op, ok := ir.Lookup(opName)
	if !ok {
		return errors.Errorf("unknown opcode %q (see -list)", opName)
	}
	info := op.Info()
	w := ir.BitWidth(width)
	srcs, err := parseSources(info, nc, w, src)
	if err != nil {
		return err
	}
	if err := ir.CheckInvocation(op, nc, w, srcs); err != nil {
		return err
	}
	logger.Debug("evaluating",
		zap.String("op", opName), zap.Int("width", width), zap.Int("components", nc))
	dst := &ir.Vector{}
	fold.Evaluate(op, dst, nc, w, srcs)
	fmt.Println(formatLanes(info.Dst, nc, w, dst))
	return nil
}

// parseSources splits "1.5,2 ; 0.5,0.25" into one vector per operand,
// parsing each lane according to the operand kind and effective width.
func parseSources(info ir.Info, nc int, w ir.BitWidth, src string) ([]*ir.Vector, error) {
	var groups []string
	if strings.TrimSpace(src) != "" {
		groups = strings.Split(src, ";")
	}
	if len(groups) != info.Arity() {
		return nil, errors.Errorf("%s: got %d operands but want %d", info.Name, len(groups), info.Arity())
	}
	srcs := make([]*ir.Vector, len(groups))
	for i, group := range groups {
		operand := info.Srcs[i]
		ow := operand.Width
		if ow == 0 {
			ow = w
		}
		n := int(operand.Size)
		if n == 0 {
			n = nc
		}
		lanes := strings.Split(group, ",")
		if len(lanes) != n {
			return nil, errors.Errorf("%s: operand %d has %d lanes but want %d", info.Name, i, len(lanes), n)
		}
		v := &ir.Vector{}
		for j, lane := range lanes {
			if err := parseLane(&v[j], operand.Kind, ow, strings.TrimSpace(lane)); err != nil {
				return nil, errors.Wrapf(err, "%s: operand %d lane %d", info.Name, i, j)
			}
		}
		srcs[i] = v
	}
	return srcs, nil
}

func parseLane(v *ir.Value, k ir.Kind, w ir.BitWidth, s string) error {
	switch k {
	case ir.KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		if w == ir.Width64 {
			v.SetFloat64(f)
		} else {
			v.SetFloat32(w, float32(f))
		}
	case ir.KindInt:
		i, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return err
		}
		v.SetInt(w, i)
	case ir.KindUint:
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}
		v.SetUint(w, u)
	case ir.KindBool:
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}
		v.SetBool(w, u != 0)
	default:
		return errors.Errorf("unsupported operand kind %v", k)
	}
	return nil
}

func formatLanes(dst ir.OperandInfo, nc int, w ir.BitWidth, v *ir.Vector) string {
	ow := dst.Width
	if ow == 0 {
		ow = w
	}
	n := int(dst.Size)
	if n == 0 {
		n = nc
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		switch dst.Kind {
		case ir.KindFloat:
			if ow == ir.Width64 {
				out[i] = strconv.FormatFloat(v[i].Float64(), 'g', -1, 64)
			} else {
				out[i] = strconv.FormatFloat(float64(v[i].Float32(ow)), 'g', -1, 32)
			}
		case ir.KindInt:
			out[i] = strconv.FormatInt(v[i].Int(ow), 10)
		case ir.KindBool:
			out[i] = strconv.FormatBool(v[i].Uint(ow) != 0)
		default:
			out[i] = fmt.Sprintf("%#x", v[i].Uint(ow))
		}
	}
	return strings.Join(out, ", ")
}

type batchCase struct {
	Name       string     `json:"name"`
	Op         string     `json:"op"`
	Width      uint8      `json:"width"`
	Components int        `json:"components,omitempty"`
	Srcs       [][]uint64 `json:"srcs"`
	Want       []uint64   `json:"want,omitempty"`
}

type batchFile struct {
	Cases []batchCase `json:"cases"`
}

// runBatch replays a YAML case list. Lanes are raw bit patterns at the
// invocation width. Cases with a want clause are verified; the first
// mismatch is reported and the run exits non-zero after finishing.
func runBatch(logger *zap.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read batch")
	}
	var file batchFile
	if err := yaml.UnmarshalStrict(raw, &file); err != nil {
		return errors.Wrap(err, "parse batch")
	}
	failed := 0
	for _, c := range file.Cases {
		if err := runBatchCase(logger, c); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", c.Name, err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d cases failed", failed, len(file.Cases))
	}
	logger.Info("batch passed", zap.Int("cases", len(file.Cases)))
	return nil
}

func runBatchCase(logger *zap.Logger, c batchCase) error {
	op, ok := ir.Lookup(c.Op)
	if !ok {
		return errors.Errorf("unknown opcode %q", c.Op)
	}
	nc := c.Components
	if nc == 0 {
		nc = 1
	}
	w := ir.BitWidth(c.Width)
	srcs := make([]*ir.Vector, len(c.Srcs))
	for i, s := range c.Srcs {
		srcs[i] = &ir.Vector{}
		for j, b := range s {
			srcs[i][j].SetBits(b)
		}
	}
	if err := ir.CheckInvocation(op, nc, w, srcs); err != nil {
		return err
	}
	dst := &ir.Vector{}
	fold.Evaluate(op, dst, nc, w, srcs)
	logger.Debug("case evaluated", zap.String("name", c.Name), zap.String("op", c.Op))
	for i, want := range c.Want {
		if got := dst[i].Bits(); got != want {
			return errors.Errorf("lane %d: got %#x, want %#x", i, got, want)
		}
	}
	if len(c.Want) == 0 {
		fmt.Printf("%s: %s\n", c.Name, formatLanes(op.Info().Dst, nc, w, dst))
	}
	return nil
}
