// Package loader reads Duck Machine object files.
//
// An object file is plain text: one decimal word per line, in the range
// of a signed 32-bit integer. Blank lines are ignored and '#' starts a
// comment that runs to the end of the line.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Program is a loaded object file ready to be copied into memory.
type Program struct {
	// Words are the program's memory words, in address order from the
	// load address.
	Words []int32
}

// Load reads an object file from disk.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open object file: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// Read parses an object file from r.
func Read(r io.Reader) (*Program, error) {
	prog := &Program{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		word, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q is not a machine word", lineNo, line)
		}
		prog.Words = append(prog.Words, int32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read object file: %w", err)
	}

	return prog, nil
}

// Write emits the program in object-file form.
func (p *Program) Write(w io.Writer) error {
	for _, word := range p.Words {
		if _, err := fmt.Fprintf(w, "%d\n", word); err != nil {
			return err
		}
	}
	return nil
}
