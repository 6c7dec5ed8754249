// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

// MaxMemory is the number of addressable words. Addresses at or past it
// are rejected instead of grown into.
const MaxMemory = 1 << 28

// checkAddress validates an address before memory grows to it
func checkAddress(addr int64) error {
	if addr < 0 {
		return ErrNegativeAddress
	}
	if addr >= MaxMemory {
		return ErrAddressOutOfRange
	}
	return nil
}

// Memory is the zero-indexed, auto-growing word store of a VM
type Memory struct {
	cells []int64
}

func newMemory(words []int64) *Memory {
	cells := make([]int64, len(words))
	copy(cells, words)
	return &Memory{cells: cells}
}

// Len returns the current length of memory
func (m *Memory) Len() int {
	return len(m.cells)
}

// Read returns the word at addr, growing memory with zeros if addr is past the end
func (m *Memory) Read(addr int64) (int64, error) {
	if err := checkAddress(addr); err != nil {
		return 0, err
	}
	m.grow(addr)
	return m.cells[addr], nil
}

// Write stores v at addr, growing memory with zeros if addr is past the end
func (m *Memory) Write(addr, v int64) error {
	if err := checkAddress(addr); err != nil {
		return err
	}
	m.grow(addr)
	m.cells[addr] = v
	return nil
}

// Cells returns a copy of the memory contents
func (m *Memory) Cells() []int64 {
	cells := make([]int64, len(m.cells))
	copy(cells, m.cells)
	return cells
}

func (m *Memory) grow(addr int64) {
	if addr < int64(len(m.cells)) {
		return
	}
	if addr < int64(cap(m.cells)) {
		n := len(m.cells)
		m.cells = m.cells[:addr+1]
		for i := n; i < len(m.cells); i++ {
			m.cells[i] = 0
		}
		return
	}
	size := 2 * len(m.cells)
	if int64(size) < addr+1 {
		size = int(addr + 1)
	}
	if size > MaxMemory {
		size = MaxMemory
	}
	cells := make([]int64, addr+1, size)
	copy(cells, m.cells)
	m.cells = cells
}

func (m *Memory) clone() *Memory {
	return newMemory(m.cells)
}
