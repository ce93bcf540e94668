// Package emu provides functional Duck Machine emulation.
package emu

import (
	"errors"
	"fmt"
)

// ErrAddressOutOfRange reports a memory access outside the configured
// address space. Addressing faults are unrecoverable; the machine never
// wraps or clamps an address.
var ErrAddressOutOfRange = errors.New("address out of range")

// DefaultMemSize is the default number of words in main memory.
const DefaultMemSize = 4096

// Memory is a flat store of machine words addressed by non-negative
// index. The CPU holds a reference to it but does not own it.
type Memory struct {
	words []int32
}

// NewMemory creates a zero-filled memory of size words.
func NewMemory(size int) *Memory {
	return &Memory{words: make([]int32, size)}
}

// Size returns the number of addressable words.
func (m *Memory) Size() int {
	return len(m.words)
}

// Get returns the word at the given address.
func (m *Memory) Get(address int32) (int32, error) {
	if address < 0 || int(address) >= len(m.words) {
		return 0, fmt.Errorf("%w: read at %d (size %d)",
			ErrAddressOutOfRange, address, len(m.words))
	}
	return m.words[address], nil
}

// Put stores value at the given address.
func (m *Memory) Put(value, address int32) error {
	if address < 0 || int(address) >= len(m.words) {
		return fmt.Errorf("%w: write at %d (size %d)",
			ErrAddressOutOfRange, address, len(m.words))
	}
	m.words[address] = value
	return nil
}

// LoadProgram copies words into memory starting at the given address.
func (m *Memory) LoadProgram(start int32, words []int32) error {
	for i, w := range words {
		if err := m.Put(w, start+int32(i)); err != nil {
			return err
		}
	}
	return nil
}
