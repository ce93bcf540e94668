// Package main provides the entry point for the Duck Machine simulator.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/ducksim/emu"
	"github.com/sarchlab/ducksim/loader"
)

var (
	start   = flag.Int("start", 0, "Address execution starts from")
	memSize = flag.Int("mem", emu.DefaultMemSize, "Memory size in words")
	trace   = flag.Bool("trace", false, "Print each instruction before it executes")
	step    = flag.Bool("step", false, "Single-step: wait for enter before each instruction")
	limit   = flag.Uint64("limit", 0, "Abort after this many steps (0 = no limit)")
	verbose = flag.Bool("v", false, "Verbose output")
)

// traceHook prints each CPUStep event as it is delivered.
type traceHook struct {
	w io.Writer
}

func (h traceHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != emu.HookPosCPUStep {
		return
	}
	s, ok := ctx.Item.(emu.CPUStep)
	if !ok {
		return
	}
	_, _ = fmt.Fprintf(h.w, "%5d: %-10d %v\n", s.PC, int32(s.Word), s.Inst)
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: ducksim [options] <program.obj>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		logrus.WithError(err).Error("Cannot load program")
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s (%d words)\n", programPath, len(prog.Words))
	}

	memory := emu.NewMemory(*memSize)
	if err := memory.LoadProgram(0, prog.Words); err != nil {
		logrus.WithError(err).Error("Program does not fit in memory")
		os.Exit(1)
	}

	var opts []emu.CPUOption
	if *limit > 0 {
		opts = append(opts, emu.WithMaxSteps(*limit))
	}
	if *step {
		stdin := bufio.NewReader(os.Stdin)
		opts = append(opts, emu.WithStepPause(func(n uint64) {
			fmt.Printf("Step %d; press enter", n)
			_, _ = stdin.ReadString('\n')
		}))
	}

	cpu := emu.NewCPU(memory, opts...)
	if *trace {
		cpu.AcceptHook(traceHook{w: os.Stdout})
	}

	if err := cpu.Run(int32(*start)); err != nil {
		logFault(err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Halted after %d steps\n", cpu.StepCount())
	}
	printState(cpu)
}

// logFault reports a fatal simulation error with the failing address,
// the raw word, and the fault cause as structured fields.
func logFault(err error) {
	var fault *emu.Fault
	if errors.As(err, &fault) {
		logrus.WithFields(logrus.Fields{
			"pc":   fault.PC,
			"word": fmt.Sprintf("0x%08X", fault.Word),
		}).Errorf("Simulation aborted: %v", fault.Err)
		return
	}
	logrus.WithError(err).Error("Simulation aborted")
}

func printState(cpu *emu.CPU) {
	for i := uint8(0); i < emu.NumRegs; i++ {
		fmt.Printf("r%-2d = %d\n", i, cpu.RegFile().Reg(i).Get())
	}
	fmt.Printf("condition = %v\n", cpu.Condition())
}
