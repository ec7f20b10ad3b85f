// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package nrfgpio

import "github.com/warthog618/go-nrfgpio/mmio"

// Port identifies a bank of up to 32 pins sharing a set of port-wide
// registers.
//
// A Port is a descriptor, not an owner.  Ports may be freely copied and any
// number of Ports may refer to the same hardware.  The layout is captured
// when the Port is constructed, so Ports with the same bus, base and layout
// compare equal.
type Port struct {
	bus    mmio.Bus
	base   uintptr
	layout Layout
}

// NewPort returns a Port accessing the registers at base on the bus.
//
// The available option is [WithLayout].
func NewPort(bus mmio.Bus, base uintptr, options ...PortOption) Port {
	p := Port{bus: bus, base: base, layout: NRF52832}
	for _, o := range options {
		o.applyPortOption(&p)
	}
	return p
}

// Base returns the base address of the port.
func (p Port) Base() uintptr {
	return p.base
}

// Bus returns the bus the port is accessed through.
func (p Port) Bus() mmio.Bus {
	return p.bus
}

// Layout returns the register layout of the port.
func (p Port) Layout() Layout {
	return p.layout
}

// Pin returns the pin at the given index in the port.
//
// The index must be in the range 0..NumPins-1.  This is not checked.
func (p Port) Pin(index int) Pin {
	return Pin{port: p, index: uint8(index)}
}

// Latch returns the whole Latch register.
//
// Bit n is set if pin n has met its sense criteria since the bit was last
// cleared.
func (p Port) Latch() uint32 {
	return p.read(p.layout.Latch)
}

// DetectMode returns the port detect mode.
func (p Port) DetectMode() DetectMode {
	return DetectMode{p.read(p.layout.DetectMode) & 1}
}

// SetDetectMode sets the port detect mode.
func (p Port) SetDetectMode(m DetectMode) {
	p.write(p.layout.DetectMode, m.v)
}

func (p Port) addr(offset uint32) uintptr {
	return p.base + uintptr(offset)
}

func (p Port) read(offset uint32) uint32 {
	return mmio.Read32(p.bus, p.addr(offset))
}

func (p Port) write(offset uint32, v uint32) {
	mmio.Write32(p.bus, p.addr(offset), v)
}
