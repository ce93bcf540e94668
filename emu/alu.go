// Package emu provides functional Duck Machine emulation.
package emu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/ducksim/insts"
)

// ErrUnsupportedOp reports an operation code with no ALU function. The
// dispatch table is closed: a code outside it is rejected, never
// silently defaulted.
var ErrUnsupportedOp = errors.New("unsupported operation")

// aluOps is the closed dispatch table from operation code to function.
// LOAD and STORE route through the table for address arithmetic; HALT
// computes nothing.
var aluOps = map[insts.Op]func(x, y int32) int32{
	insts.OpADD:   func(x, y int32) int32 { return x + y },
	insts.OpSUB:   func(x, y int32) int32 { return x - y },
	insts.OpMUL:   func(x, y int32) int32 { return x * y },
	insts.OpDIV:   floorDiv,
	insts.OpLOAD:  func(x, y int32) int32 { return x + y },
	insts.OpSTORE: func(x, y int32) int32 { return x + y },
	insts.OpHALT:  func(x, y int32) int32 { return 0 },
}

// The table must cover every defined operation code; a missing entry is
// an initialization error, not a runtime surprise.
func init() {
	for op := insts.Op(0); op < insts.NumOps; op++ {
		if _, ok := aluOps[op]; !ok {
			panic(fmt.Sprintf("emu: ALU table missing entry for %v", op))
		}
	}
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(x, y int32) int32 {
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

// ALU executes one operation at a time and holds no state.
type ALU struct{}

// NewALU creates a new arithmetic/logic unit.
func NewALU() *ALU {
	return &ALU{}
}

// Execute applies the function selected by op to the operands and
// classifies the result: zero yields CondZ, negative CondM, positive
// CondP. Division by zero is not an error; it yields (0, CondV) and
// execution continues. An operation code outside the dispatch table
// fails with ErrUnsupportedOp.
func (a *ALU) Execute(op insts.Op, in1, in2 int32) (int32, insts.CondFlag, error) {
	fn, ok := aluOps[op]
	if !ok {
		return 0, insts.CondNever, fmt.Errorf("%w: %v", ErrUnsupportedOp, op)
	}

	if op == insts.OpDIV && in2 == 0 {
		return 0, insts.CondV, nil
	}

	result := fn(in1, in2)
	switch {
	case result == 0:
		return result, insts.CondZ, nil
	case result < 0:
		return result, insts.CondM, nil
	default:
		return result, insts.CondP, nil
	}
}
