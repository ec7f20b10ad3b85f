// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package mmio provides 32-bit access to memory mapped registers.
//
// All access is performed through a [Bus], the capability to load and store
// naturally aligned 32-bit words in some address space.  On a target that
// space is the hardware itself, typically mapped via [Map].  In tests it is a
// [Memory] or a device simulator built on one.
//
// Loads and stores are single bus operations and so are atomic with respect
// to other loads and stores of the same word.  [ReadModifyWrite32] is two bus
// operations and is not.
//
// There is no validation.  Misaligned or unmapped addresses are undefined
// behaviour of the underlying bus.
package mmio

import "sync"

// Bus is a 32-bit register address space.
//
// Each Load32 and Store32 must be a single, non-elided access to the given
// address, ordered with respect to other accesses through the Bus.
type Bus interface {
	Load32(addr uintptr) uint32
	Store32(addr uintptr, v uint32)
}

// Exclusive is a Bus that provides mutual exclusion for read-modify-write
// sequences.
//
// ReadModifyWrite32 runs the sequence within Exclusive if the Bus provides it.
type Exclusive interface {
	Bus
	Exclusive(fn func())
}

// Read32 performs a single 32-bit load from addr.
func Read32(b Bus, addr uintptr) uint32 {
	return b.Load32(addr)
}

// Write32 performs a single 32-bit store of v to addr.
//
// The whole register is replaced.
func Write32(b Bus, addr uintptr, v uint32) {
	b.Store32(addr, v)
}

// ReadModifyWrite32 loads the word at addr, clears the bits in clear, sets the
// bits in set, and stores the result back to addr.
//
// The set bits are applied after the clear, so bits in both are set.
//
// This is NOT atomic.  The load and the store are separate bus operations and
// a store to addr by another party between the two is lost.  Callers that may
// be preempted, or that share the register with other cores, must provide
// their own exclusion, e.g. by using a Bus returned by WithLock.
func ReadModifyWrite32(b Bus, addr uintptr, clear, set uint32) {
	if x, ok := b.(Exclusive); ok {
		x.Exclusive(func() {
			rmw(x, addr, clear, set)
		})
		return
	}
	rmw(b, addr, clear, set)
}

func rmw(b Bus, addr uintptr, clear, set uint32) {
	v := b.Load32(addr)
	v &^= clear
	v |= set
	b.Store32(addr, v)
}

// WithLock returns a Bus that performs read-modify-write sequences while
// holding l.
//
// Individual loads and stores do not take the lock.
// Only ReadModifyWrite32 sequences are serialised, and only with other
// sequences performed through a Bus sharing the same lock.
func WithLock(b Bus, l sync.Locker) Exclusive {
	return &lockedBus{Bus: b, l: l}
}

type lockedBus struct {
	Bus
	l sync.Locker
}

func (b *lockedBus) Exclusive(fn func()) {
	b.l.Lock()
	defer b.l.Unlock()
	fn()
}
