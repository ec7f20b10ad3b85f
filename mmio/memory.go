// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mmio

import "sync"

// Memory is a simulated flat address space.
//
// All words read as zero until written.  Individual loads and stores are
// atomic, so a Memory may be shared between goroutines, but it places no
// constraint on the interleaving of separate accesses.
type Memory struct {
	mu    sync.Mutex
	words map[uintptr]uint32
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{words: make(map[uintptr]uint32)}
}

// Load32 returns the word at addr.
func (m *Memory) Load32(addr uintptr) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.words[addr]
}

// Store32 replaces the word at addr with v.
func (m *Memory) Store32(addr uintptr, v uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.words == nil {
		m.words = make(map[uintptr]uint32)
	}
	if v == 0 {
		delete(m.words, addr)
		return
	}
	m.words[addr] = v
}
