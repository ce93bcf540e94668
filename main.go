// Package main provides the entry point for Ducksim.
// Ducksim is a Duck Machine DM2020 instruction-set simulator.
//
// For the full CLI, use: go run ./cmd/ducksim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("Ducksim - Duck Machine Simulator")
	fmt.Println("")
	fmt.Println("Usage: ducksim [options] <program.obj>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -start     Address execution starts from")
	fmt.Println("  -mem       Memory size in words")
	fmt.Println("  -trace     Print each instruction before it executes")
	fmt.Println("  -step      Wait for enter before each instruction")
	fmt.Println("  -limit     Abort after this many steps")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/ducksim' for the simulator CLI,")
	fmt.Println("or 'go run ./cmd/duckasm' for the assembler.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/ducksim' instead.")
	}
}
