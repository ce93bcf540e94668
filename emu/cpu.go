// Package emu provides functional Duck Machine emulation.
package emu

import (
	"errors"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/ducksim/insts"
)

// ErrStepLimit reports that the CPU hit its configured step limit
// before executing a HALT.
var ErrStepLimit = errors.New("step limit reached")

// HookPosCPUStep is invoked once per step, after fetch and decode but
// before any machine state mutates. The hook item is a CPUStep.
var HookPosCPUStep = &sim.HookPos{Name: "CPUStep"}

// CPUStep describes the instruction a CPU is about to execute. It is
// delivered to hooks at HookPosCPUStep and reflects pre-execution state.
type CPUStep struct {
	// PC is the program-counter address the word was fetched from.
	PC int32

	// Word is the raw instruction word.
	Word uint32

	// Inst is the decoded instruction.
	Inst insts.Instruction
}

// CPU is the Duck Machine central processing unit. It owns a register
// file, the current condition flag, and the halted flag, and holds a
// reference to a memory it does not own. One CPU drives one memory;
// nothing here is safe for concurrent use.
//
// The CPU is hookable: observers registered with AcceptHook receive a
// CPUStep at the start of every cycle. Hooks are one-way notifications
// and must not be used to alter machine state.
type CPU struct {
	*sim.HookableBase

	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder
	alu     *ALU

	condition insts.CondFlag
	halted    bool

	stepCount uint64
	maxSteps  uint64 // 0 means no limit
	pause     func(step uint64)
}

// CPUOption is a functional option for configuring the CPU.
type CPUOption func(*CPU)

// WithMaxSteps bounds the number of steps a single Run may execute.
// A value of 0 means no limit.
func WithMaxSteps(max uint64) CPUOption {
	return func(c *CPU) {
		c.maxSteps = max
	}
}

// WithStepPause installs a single-step acknowledgment: Run calls pause
// before every step. The callback sees no machine state and must not
// mutate any; it exists only to block until the operator is ready.
func WithStepPause(pause func(step uint64)) CPUOption {
	return func(c *CPU) {
		c.pause = pause
	}
}

// NewCPU creates a CPU connected to the given memory.
func NewCPU(memory *Memory, opts ...CPUOption) *CPU {
	c := &CPU{
		HookableBase: sim.NewHookableBase(),
		regFile:      NewRegFile(),
		memory:       memory,
		decoder:      insts.NewDecoder(),
		alu:          NewALU(),
		condition:    insts.CondAlways,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RegFile returns the CPU's register file.
func (c *CPU) RegFile() *RegFile {
	return c.regFile
}

// Memory returns the memory the CPU is connected to.
func (c *CPU) Memory() *Memory {
	return c.memory
}

// Condition returns the current condition flag.
func (c *CPU) Condition() insts.CondFlag {
	return c.condition
}

// Halted reports whether the CPU has executed a HALT.
func (c *CPU) Halted() bool {
	return c.halted
}

// StepCount returns the number of steps executed.
func (c *CPU) StepCount() uint64 {
	return c.stepCount
}

// Reset returns the CPU to its initial state. The connected memory is
// left untouched.
func (c *CPU) Reset() {
	c.regFile = NewRegFile()
	c.condition = insts.CondAlways
	c.halted = false
	c.stepCount = 0
}

// Step executes one fetch-decode-execute cycle.
//
// A predicated skip (condition mask not matching the current flag)
// advances the PC by one and changes nothing else. When the condition
// is satisfied, the PC is incremented before the ALU runs; an
// instruction that targets r15 therefore overrides the auto-increment,
// which is what makes jumps work. Reordering that increment breaks
// branch semantics.
//
// Any returned error is a *Fault and is unrecoverable; it is produced
// before the cycle's state mutation wherever the taxonomy allows.
func (c *CPU) Step() error {
	// Fetch
	pc := c.regFile.PC()
	address := pc.Get()
	raw, err := c.memory.Get(address)
	if err != nil {
		return &Fault{PC: address, Err: err}
	}
	word := uint32(raw)

	// Decode
	inst, err := c.decoder.Decode(word)
	if err != nil {
		return &Fault{PC: address, Word: word, Err: err}
	}

	// Observers see the machine before it mutates.
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosCPUStep,
		Item:   CPUStep{PC: address, Word: word, Inst: inst},
	})

	c.stepCount++

	// Condition test: a non-matching mask is a normal skip.
	if !inst.Cond.Matches(c.condition) {
		pc.Put(address + 1)
		return nil
	}

	// Execute
	left := c.regFile.Reg(inst.Src1).Get()
	right := c.regFile.Reg(inst.Src2).Get() + int32(inst.Offset)

	// PC advances before the ALU runs; see the method comment.
	pc.Put(pc.Get() + 1)

	value, flag, err := c.alu.Execute(inst.Op, left, right)
	if err != nil {
		return &Fault{PC: address, Word: word, Err: err}
	}

	switch inst.Op {
	case insts.OpADD, insts.OpSUB, insts.OpMUL, insts.OpDIV:
		c.regFile.Reg(inst.Target).Put(value)
		c.condition = flag
	case insts.OpSTORE:
		// The ALU result is the destination address; the stored value
		// is the target register's current content. Asymmetric with
		// LOAD, and deliberate.
		if err := c.memory.Put(c.regFile.Reg(inst.Target).Get(), value); err != nil {
			return &Fault{PC: address, Word: word, Err: err}
		}
		c.condition = flag
	case insts.OpLOAD:
		loaded, err := c.memory.Get(value)
		if err != nil {
			return &Fault{PC: address, Word: word, Err: err}
		}
		c.regFile.Reg(inst.Target).Put(loaded)
		c.condition = flag
	case insts.OpHALT:
		c.halted = true
	}

	return nil
}

// Run clears the halted flag, sets the PC to fromAddress, and steps
// until a HALT executes. A step-pause callback, when configured, is
// awaited before every step. Returns the first fatal fault, or
// ErrStepLimit when a step limit is configured and reached.
func (c *CPU) Run(fromAddress int32) error {
	c.halted = false
	c.regFile.PC().Put(fromAddress)

	for !c.halted {
		if c.maxSteps > 0 && c.stepCount >= c.maxSteps {
			return &Fault{PC: c.regFile.PC().Get(), Err: ErrStepLimit}
		}
		if c.pause != nil {
			c.pause(c.stepCount)
		}
		if err := c.Step(); err != nil {
			return err
		}
	}

	return nil
}
