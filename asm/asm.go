// Package asm implements a two-pass assembler for Duck Machine
// assembly source.
//
// Each line holds an optional label, then an optional instruction or
// directive, then an optional '#' comment:
//
//	loop:   SUB/P  r1,r1,r0[1]    # decrement while positive
//	        JUMP/P loop
//	        HALT
//	count:  DATA   10
//
// Full instruction form is OP[/COND] rT,rS1,rS2[offset]. LOAD and
// STORE also accept "OP rT,symbol", which assembles with both source
// registers zero and the symbol's address as the offset. JUMP is sugar
// for an ADD targeting the program counter.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sarchlab/ducksim/emu"
	"github.com/sarchlab/ducksim/insts"
	"github.com/sarchlab/ducksim/loader"
)

// ErrSyntax reports a malformed source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (e ErrSyntax) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.LineNo, e.Line, e.Err)
}

func (e ErrSyntax) Unwrap() error {
	return e.Err
}

// ErrUnknownLabel reports a reference to a label that is never defined.
type ErrUnknownLabel string

func (e ErrUnknownLabel) Error() string {
	return fmt.Sprintf("label %q is not defined", string(e))
}

var (
	labelRe   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):`)
	regRe     = regexp.MustCompile(`^[rR]([0-9]|1[0-5])$`)
	regDispRe = regexp.MustCompile(`^[rR]([0-9]|1[0-5])\[(-?[0-9]+)\]$`)
)

// sourceLine is one line of input after lexing.
type sourceLine struct {
	lineNo  int
	text    string
	label   string
	mnem    string // uppercased, predicate stripped
	cond    insts.CondFlag
	hasCond bool
	args    []string
}

// Assemble translates assembly source into an object program.
func Assemble(r io.Reader) (*loader.Program, error) {
	lines, err := lex(r)
	if err != nil {
		return nil, err
	}

	symbols, err := collectSymbols(lines)
	if err != nil {
		return nil, err
	}

	prog := &loader.Program{}
	for _, ln := range lines {
		if ln.mnem == "" {
			continue
		}
		word, err := encodeLine(ln, symbols)
		if err != nil {
			return nil, ErrSyntax{LineNo: ln.lineNo, Line: ln.text, Err: err}
		}
		prog.Words = append(prog.Words, word)
	}

	return prog, nil
}

// lex splits the source into labeled, tokenized lines.
func lex(r io.Reader) ([]sourceLine, error) {
	var lines []sourceLine
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		text := raw
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		ln := sourceLine{lineNo: lineNo, text: strings.TrimSpace(raw)}
		if m := labelRe.FindStringSubmatch(text); m != nil {
			ln.label = m[1]
			text = strings.TrimSpace(text[len(m[0]):])
		}

		if text != "" {
			fields := strings.Fields(text)
			mnem := strings.ToUpper(fields[0])
			if op, pred, ok := strings.Cut(mnem, "/"); ok {
				cond, known := insts.CondByName[pred]
				if !known {
					return nil, ErrSyntax{
						LineNo: ln.lineNo, Line: ln.text,
						Err: fmt.Errorf("unknown predicate %q", pred),
					}
				}
				ln.mnem = op
				ln.cond = cond
				ln.hasCond = true
			} else {
				ln.mnem = mnem
				ln.cond = insts.CondAlways
			}
			if len(fields) > 1 {
				rest := strings.Join(fields[1:], "")
				ln.args = strings.Split(rest, ",")
			}
		}

		lines = append(lines, ln)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return lines, nil
}

// collectSymbols is the first pass: assign an address to every label.
// Labels on bare lines bind to the next emitted word.
func collectSymbols(lines []sourceLine) (map[string]int32, error) {
	symbols := make(map[string]int32)
	addr := int32(0)

	for _, ln := range lines {
		if ln.label != "" {
			if _, dup := symbols[ln.label]; dup {
				return nil, ErrSyntax{
					LineNo: ln.lineNo, Line: ln.text,
					Err: fmt.Errorf("label %q already defined", ln.label),
				}
			}
			symbols[ln.label] = addr
		}
		if ln.mnem != "" {
			addr++
		}
	}

	return symbols, nil
}

// encodeLine is the second pass for one line: resolve symbols and pack
// the instruction word.
func encodeLine(ln sourceLine, symbols map[string]int32) (int32, error) {
	switch ln.mnem {
	case "DATA":
		if ln.hasCond {
			return 0, fmt.Errorf("DATA takes no predicate")
		}
		if len(ln.args) != 1 {
			return 0, fmt.Errorf("DATA takes one value")
		}
		v, err := strconv.ParseInt(ln.args[0], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%q is not a machine word", ln.args[0])
		}
		return int32(v), nil

	case "HALT":
		if len(ln.args) != 0 {
			return 0, fmt.Errorf("HALT takes no operands")
		}
		return int32(insts.Encode(insts.Instruction{Op: insts.OpHALT, Cond: ln.cond})), nil

	case "JUMP":
		if len(ln.args) != 1 {
			return 0, fmt.Errorf("JUMP takes one target")
		}
		addr, err := resolveValue(ln.args[0], symbols)
		if err != nil {
			return 0, err
		}
		offset, err := checkOffset(addr)
		if err != nil {
			return 0, err
		}
		inst := insts.Instruction{
			Op:     insts.OpADD,
			Cond:   ln.cond,
			Target: emu.PCReg,
			Offset: offset,
		}
		return int32(insts.Encode(inst)), nil
	}

	op, ok := insts.OpByName[ln.mnem]
	if !ok {
		return 0, fmt.Errorf("unknown opcode %q", ln.mnem)
	}

	inst := insts.Instruction{Op: op, Cond: ln.cond}

	// LOAD/STORE symbol sugar: rT,symbol
	if (op == insts.OpLOAD || op == insts.OpSTORE) && len(ln.args) == 2 {
		if _, isReg := parseReg(ln.args[1]); !isReg {
			target, ok := parseReg(ln.args[0])
			if !ok {
				return 0, fmt.Errorf("%q is not a register", ln.args[0])
			}
			addr, err := resolveValue(ln.args[1], symbols)
			if err != nil {
				return 0, err
			}
			offset, err := checkOffset(addr)
			if err != nil {
				return 0, err
			}
			inst.Target = target
			inst.Offset = offset
			return int32(insts.Encode(inst)), nil
		}
	}

	if len(ln.args) != 3 {
		return 0, fmt.Errorf("%v takes three operands", op)
	}

	target, ok := parseReg(ln.args[0])
	if !ok {
		return 0, fmt.Errorf("%q is not a register", ln.args[0])
	}
	src1, ok := parseReg(ln.args[1])
	if !ok {
		return 0, fmt.Errorf("%q is not a register", ln.args[1])
	}
	src2, offset, err := parseRegDisp(ln.args[2])
	if err != nil {
		return 0, err
	}

	inst.Target = target
	inst.Src1 = src1
	inst.Src2 = src2
	inst.Offset = offset
	return int32(insts.Encode(inst)), nil
}

// parseReg parses "rN" with N in 0..15.
func parseReg(s string) (uint8, bool) {
	m := regRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	return uint8(n), true
}

// parseRegDisp parses "rN" or "rN[offset]".
func parseRegDisp(s string) (uint8, int16, error) {
	if reg, ok := parseReg(s); ok {
		return reg, 0, nil
	}
	m := regDispRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%q is not a register or register[offset]", s)
	}
	n, _ := strconv.Atoi(m[1])
	disp, err := strconv.ParseInt(m[2], 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("offset in %q out of range", s)
	}
	offset, err := checkOffset(int32(disp))
	if err != nil {
		return 0, 0, err
	}
	return uint8(n), offset, nil
}

// resolveValue resolves a symbol or numeric literal.
func resolveValue(s string, symbols map[string]int32) (int32, error) {
	if addr, ok := symbols[s]; ok {
		return addr, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, ErrUnknownLabel(s)
	}
	return int32(v), nil
}

// checkOffset verifies the value fits the 10-bit offset field.
func checkOffset(v int32) (int16, error) {
	if v < insts.MinOffset || v > insts.MaxOffset {
		return 0, fmt.Errorf("offset %d outside %d..%d",
			v, insts.MinOffset, insts.MaxOffset)
	}
	return int16(v), nil
}
