// Package insts provides Duck Machine instruction definitions and decoding.
package insts

import "fmt"

// Op represents a Duck Machine operation code.
type Op uint8

// Duck Machine operation codes. The numeric values are part of the
// instruction word encoding and must not be reordered.
const (
	OpHALT Op = iota
	OpLOAD
	OpSTORE
	OpADD
	OpSUB
	OpMUL
	OpDIV

	// NumOps is the number of defined operation codes. Opcode field
	// values at or above this decode to ErrMalformedWord.
	NumOps
)

var opNames = [NumOps]string{
	OpHALT:  "HALT",
	OpLOAD:  "LOAD",
	OpSTORE: "STORE",
	OpADD:   "ADD",
	OpSUB:   "SUB",
	OpMUL:   "MUL",
	OpDIV:   "DIV",
}

// String returns the assembler mnemonic for the operation code.
func (op Op) String() string {
	if op >= NumOps {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return opNames[op]
}

// OpByName maps assembler mnemonics to operation codes.
var OpByName = map[string]Op{
	"HALT":  OpHALT,
	"LOAD":  OpLOAD,
	"STORE": OpSTORE,
	"ADD":   OpADD,
	"SUB":   OpSUB,
	"MUL":   OpMUL,
	"DIV":   OpDIV,
}

// CondFlag classifies an ALU result and doubles as a predication mask:
// an instruction executes iff its Cond field intersects the CPU's
// current flag.
type CondFlag uint8

// Condition flag bits.
const (
	// CondNever matches no flag; an instruction predicated on it is
	// always skipped.
	CondNever CondFlag = 0b0000

	// CondM is the current flag when the most recent ALU result was
	// negative (minus).
	CondM CondFlag = 0b0001

	// CondZ is the current flag when the most recent ALU result was zero.
	CondZ CondFlag = 0b0010

	// CondP is the current flag when the most recent ALU result was
	// positive.
	CondP CondFlag = 0b0100

	// CondV is the current flag after an invalid ALU result
	// (division by zero).
	CondV CondFlag = 0b1000

	// CondAlways matches every flag; it is both the default predication
	// mask and the CPU's condition state before any flag-setting
	// instruction has executed.
	CondAlways = CondM | CondZ | CondP | CondV
)

// Matches reports whether the flag, used as a predication mask,
// intersects the current condition.
func (c CondFlag) Matches(current CondFlag) bool {
	return c&current != 0
}

// String renders the flag in assembler notation, e.g. "Z", "MZ", "ALWAYS".
func (c CondFlag) String() string {
	switch c {
	case CondNever:
		return "NEVER"
	case CondAlways:
		return "ALWAYS"
	}
	s := ""
	if c&CondM != 0 {
		s += "M"
	}
	if c&CondZ != 0 {
		s += "Z"
	}
	if c&CondP != 0 {
		s += "P"
	}
	if c&CondV != 0 {
		s += "V"
	}
	return s
}

// CondByName maps assembler predicate names to condition masks.
var CondByName = map[string]CondFlag{
	"M":      CondM,
	"Z":      CondZ,
	"P":      CondP,
	"V":      CondV,
	"NEVER":  CondNever,
	"ALWAYS": CondAlways,
}

// Instruction represents a decoded Duck Machine instruction. Instances
// are immutable once produced by the decoder.
type Instruction struct {
	Op   Op       // Operation code
	Cond CondFlag // Predication mask

	Target uint8 // Target register index
	Src1   uint8 // First source register index
	Src2   uint8 // Second source register index

	// Offset is added to the value of Src2 before the ALU runs.
	// The encoded field is 10 bits, two's complement: -512..511.
	Offset int16
}

// String renders the instruction in assembler notation.
func (i Instruction) String() string {
	if i.Op == OpHALT {
		return fmt.Sprintf("HALT/%v", i.Cond)
	}
	return fmt.Sprintf("%v/%v r%d,r%d,r%d[%d]",
		i.Op, i.Cond, i.Target, i.Src1, i.Src2, i.Offset)
}
