// Package main provides the Duck Machine assembler CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/ducksim/asm"
)

var output = flag.String("o", "", "Output object file (default: stdout)")

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: duckasm [options] <program.asm>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	sourcePath := flag.Arg(0)

	src, err := os.Open(sourcePath)
	if err != nil {
		logrus.WithError(err).Error("Cannot open source")
		os.Exit(1)
	}
	defer func() { _ = src.Close() }()

	prog, err := asm.Assemble(src)
	if err != nil {
		logrus.WithField("source", sourcePath).Errorf("Assembly failed: %v", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "" {
		out, err = os.Create(*output)
		if err != nil {
			logrus.WithError(err).Error("Cannot create output")
			os.Exit(1)
		}
		defer func() { _ = out.Close() }()
	}

	if err := prog.Write(out); err != nil {
		logrus.WithError(err).Error("Cannot write object file")
		os.Exit(1)
	}
}
