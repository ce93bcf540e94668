// Package insts provides Duck Machine instruction definitions and decoding.
package insts

import (
	"errors"
	"fmt"
)

// Instruction word layout (32 bits):
//
//	bit  31     reserved, must be zero
//	bits 26-30  operation code
//	bits 22-25  condition mask
//	bits 18-21  target register
//	bits 14-17  source register 1
//	bits 10-13  source register 2
//	bits 0-9    offset, two's complement (-512..511)
const (
	opShift     = 26
	condShift   = 22
	targetShift = 18
	src1Shift   = 14
	src2Shift   = 10

	opMask     = 0x1F
	fieldMask  = 0xF
	offsetMask = 0x3FF

	// MinOffset and MaxOffset bound the encodable offset field.
	MinOffset = -512
	MaxOffset = 511
)

// ErrMalformedWord reports an instruction word that uses a reserved bit
// pattern. It is unrecoverable: the CPU aborts the cycle before any
// state mutation.
var ErrMalformedWord = errors.New("malformed instruction word")

// Decoder decodes Duck Machine instruction words.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit Duck Machine instruction word. Words with the
// reserved high bit set or an operation code outside the defined table
// fail with ErrMalformedWord.
func (d *Decoder) Decode(word uint32) (Instruction, error) {
	if word>>31 != 0 {
		return Instruction{}, fmt.Errorf(
			"%w: reserved bit set in 0x%08X", ErrMalformedWord, word)
	}

	op := Op((word >> opShift) & opMask)
	if op >= NumOps {
		return Instruction{}, fmt.Errorf(
			"%w: reserved opcode %d in 0x%08X", ErrMalformedWord, op, word)
	}

	offset := int16(word & offsetMask)
	if offset&0x200 != 0 {
		offset |= ^int16(offsetMask) // sign extend from 10 bits
	}

	return Instruction{
		Op:     op,
		Cond:   CondFlag((word >> condShift) & fieldMask),
		Target: uint8((word >> targetShift) & fieldMask),
		Src1:   uint8((word >> src1Shift) & fieldMask),
		Src2:   uint8((word >> src2Shift) & fieldMask),
		Offset: offset,
	}, nil
}

// Encode packs an instruction into a 32-bit word. It is the inverse of
// Decode for instructions whose fields are in range: a defined Op,
// register indices 0..15, and offset within MinOffset..MaxOffset.
// Out-of-range fields are truncated to their field width.
func Encode(inst Instruction) uint32 {
	return uint32(inst.Op&opMask)<<opShift |
		uint32(inst.Cond&fieldMask)<<condShift |
		uint32(inst.Target&fieldMask)<<targetShift |
		uint32(inst.Src1&fieldMask)<<src1Shift |
		uint32(inst.Src2&fieldMask)<<src2Shift |
		uint32(uint16(inst.Offset))&offsetMask
}
