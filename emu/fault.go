// Package emu provides functional Duck Machine emulation.
package emu

import "fmt"

// Fault is an unrecoverable simulation error. It records where the
// machine was when the cycle failed: the program-counter address at
// fetch time and the raw instruction word (zero when the fault occurred
// during fetch itself).
type Fault struct {
	// PC is the program-counter address at fetch time.
	PC int32

	// Word is the raw instruction word, when the fetch succeeded.
	Word uint32

	// Err is the underlying cause, e.g. ErrUnsupportedOp,
	// ErrAddressOutOfRange, or insts.ErrMalformedWord.
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at PC=%d (word 0x%08X): %v", f.PC, f.Word, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
