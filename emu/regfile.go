// Package emu provides functional Duck Machine emulation.
package emu

// Register file geometry.
const (
	// NumRegs is the number of registers in the file.
	NumRegs = 16

	// ZeroReg is the index of the constant-zero register.
	ZeroReg = 0

	// PCReg is the index of the register conventionally holding the
	// program counter. Mechanically it is an ordinary register; the
	// CPU's step routine is what gives it its role.
	PCReg = 15
)

// Register is a single storage cell holding one machine word.
type Register interface {
	// Get returns the stored value.
	Get() int32

	// Put overwrites the stored value.
	Put(value int32)
}

// register is a plain mutable cell.
type register struct {
	value int32
}

func (r *register) Get() int32 {
	return r.value
}

func (r *register) Put(value int32) {
	r.value = value
}

// zeroRegister always reads as zero. Writes are accepted and discarded;
// they are not an error.
type zeroRegister struct{}

func (zeroRegister) Get() int32 {
	return 0
}

func (zeroRegister) Put(int32) {
}

// RegFile represents the Duck Machine register file: r0 is the
// constant-zero register, r1-r14 are general purpose, and r15 holds the
// program counter. The variant of each slot is fixed at construction so
// execution never branches on register index.
type RegFile struct {
	regs [NumRegs]Register
}

// NewRegFile creates a register file with all general-purpose registers
// initialized to zero.
func NewRegFile() *RegFile {
	rf := &RegFile{}
	rf.regs[ZeroReg] = zeroRegister{}
	for i := ZeroReg + 1; i < NumRegs; i++ {
		rf.regs[i] = &register{}
	}
	return rf
}

// Reg returns the register at the given slot.
func (rf *RegFile) Reg(index uint8) Register {
	return rf.regs[index]
}

// PC returns the program counter register.
func (rf *RegFile) PC() Register {
	return rf.regs[PCReg]
}
