// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build linux

package mmio

import (
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Mapping is a Bus backed by a window of physical memory mapped into the
// process.
//
// Addresses passed to Load32 and Store32 are physical addresses within the
// window [Base, Base+Len).  Accesses are performed with sync/atomic so each is
// a single 32-bit access that neither the compiler nor the CPU elides or
// reorders relative to other accesses through the Mapping.
type Mapping struct {
	base  uintptr
	mem8  []byte
	words []uint32
}

// DefaultMemPath is the device providing access to physical memory.
const DefaultMemPath = "/dev/mem"

// Map maps length bytes of physical memory starting at base from the device
// at path, typically DefaultMemPath.
//
// The base must be page aligned.  Mapping requires appropriate permissions,
// typically root.
func Map(path string, base uintptr, length int) (*Mapping, error) {
	if base%uintptr(os.Getpagesize()) != 0 {
		return nil, errors.Errorf("base 0x%x is not page aligned", base)
	}
	if length <= 0 || length%4 != 0 {
		return nil, errors.Errorf("invalid length: %d", length)
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer unix.Close(fd)

	mem8, err := unix.Mmap(fd, int64(base), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s at 0x%x", path, base)
	}
	words := unsafe.Slice((*uint32)(unsafe.Pointer(&mem8[0])), len(mem8)/4)
	return &Mapping{base: base, mem8: mem8, words: words}, nil
}

// Base returns the physical address of the start of the window.
func (m *Mapping) Base() uintptr {
	return m.base
}

// Len returns the size of the window in bytes.
func (m *Mapping) Len() int {
	return len(m.mem8)
}

// Load32 loads the word at the physical address addr.
func (m *Mapping) Load32(addr uintptr) uint32 {
	return atomic.LoadUint32(&m.words[(addr-m.base)/4])
}

// Store32 stores v to the physical address addr.
func (m *Mapping) Store32(addr uintptr, v uint32) {
	atomic.StoreUint32(&m.words[(addr-m.base)/4], v)
}

// Close unmaps the window.
//
// The Mapping must not be used after Close.
func (m *Mapping) Close() error {
	m.words = nil
	mem8 := m.mem8
	m.mem8 = nil
	return unix.Munmap(mem8)
}
