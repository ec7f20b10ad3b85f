// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package nrfgpio

import (
	"fmt"

	"github.com/warthog618/go-nrfgpio/mmio"
)

// Pin identifies a single pin in a Port.
//
// A Pin is a coordinate, not an owner.  Pins referring to the same port and
// index are interchangeable and their effects alias.
//
// Methods documented as atomic perform a single bus access.  Methods
// documented as NOT atomic perform a read-modify-write of the configuration
// word and may lose, or be lost to, a concurrent update of the same pin's
// configuration.  Use Configure, or a Port on a bus returned by mmio.WithLock,
// where that matters.
type Pin struct {
	port  Port
	index uint8
}

// NewPin returns the pin at index in the port at base on the bus, using the
// NRF52832 layout.
func NewPin(bus mmio.Bus, base uintptr, index int) Pin {
	return NewPort(bus, base).Pin(index)
}

// Port returns the port containing the pin.
func (p Pin) Port() Port {
	return p.port
}

// Index returns the index of the pin within its port.
func (p Pin) Index() int {
	return int(p.index)
}

func (p Pin) String() string {
	return fmt.Sprintf("P0x%08x.%02d", p.port.base, p.index)
}

func (p Pin) mask() uint32 {
	return 1 << p.index
}

func (p Pin) test(offset uint32) bool {
	return p.port.read(offset)&p.mask() != 0
}

// Level returns the level of the pin as read from the In register.
//
// The input buffer must be connected for the level to be meaningful.
//
// Atomic.
func (p Pin) Level() bool {
	return p.test(p.port.layout.In)
}

// Output returns the output state of the pin as read from the Out register.
//
// Atomic.
func (p Pin) Output() bool {
	return p.test(p.port.layout.Out)
}

// Set sets the output state of the pin high.
//
// Atomic.
func (p Pin) Set() {
	p.port.write(p.port.layout.OutSet, p.mask())
}

// Clear sets the output state of the pin low.
//
// Atomic.
func (p Pin) Clear() {
	p.port.write(p.port.layout.OutClr, p.mask())
}

// Write sets the output state of the pin high if state is true, else low.
//
// Atomic.
func (p Pin) Write(state bool) {
	if state {
		p.Set()
	} else {
		p.Clear()
	}
}

// Direction returns the direction of the pin from the Dir register.
//
// On the nRF52832 the Dir register is a view of the direction field of the
// pin configuration words.  Use ConfigDirection to read the field itself.
//
// Atomic.
func (p Pin) Direction() Direction {
	if p.test(p.port.layout.Dir) {
		return Output
	}
	return Input
}

// IsInput returns true if the pin is an input.
//
// Atomic.
func (p Pin) IsInput() bool {
	return !p.test(p.port.layout.Dir)
}

// IsOutput returns true if the pin is an output.
//
// Atomic.
func (p Pin) IsOutput() bool {
	return p.test(p.port.layout.Dir)
}

// SetDirection sets the direction of the pin via the DirSet or DirClr
// register.
//
// Atomic.
func (p Pin) SetDirection(d Direction) {
	if d == Output {
		p.port.write(p.port.layout.DirSet, p.mask())
	} else {
		p.port.write(p.port.layout.DirClr, p.mask())
	}
}

// Latched returns true if the pin has met its sense criteria since the latch
// was last cleared.
//
// Atomic.
func (p Pin) Latched() bool {
	return p.test(p.port.layout.Latch)
}

// ClearLatch clears the latch of the pin.
//
// Only the latch of this pin is cleared.
//
// Atomic.
func (p Pin) ClearLatch() {
	p.port.write(p.port.layout.Latch, p.mask())
}

func (p Pin) cnfAddr() uintptr {
	return p.port.addr(p.port.layout.PinCnfAddr(int(p.index)))
}

// ConfigWord returns the raw configuration word of the pin.
//
// Atomic.
func (p Pin) ConfigWord() uint32 {
	return mmio.Read32(p.port.bus, p.cnfAddr())
}

// Config returns the configuration of the pin.
//
// Atomic.
func (p Pin) Config() Config {
	return Unpack(p.ConfigWord())
}

// Configure replaces the whole configuration of the pin.
//
// Every field is written, so fields that are not intended to change must
// hold their current value.
//
// Atomic.
func (p Pin) Configure(c Config) {
	mmio.Write32(p.port.bus, p.cnfAddr(), c.Pack())
}

// Update replaces the fields of the pin configuration selected by mask with
// the corresponding fields from c.
//
// Fields outside the mask retain their current value.
//
// NOT atomic.
func (p Pin) Update(c Config, mask Mask) {
	mmio.ReadModifyWrite32(p.port.bus, p.cnfAddr(), uint32(mask), c.Pack()&uint32(mask))
}

func (p Pin) field(mask Mask, pos uint) uint32 {
	return mask.field(p.ConfigWord(), pos)
}

// ConfigDirection returns the direction field of the pin configuration.
//
// Atomic.
func (p Pin) ConfigDirection() Direction {
	return Direction{p.field(DirectionMask, directionPos)}
}

// SetConfigDirection sets the direction field of the pin configuration.
//
// NOT atomic.
func (p Pin) SetConfigDirection(d Direction) {
	p.Update(Config{Direction: d}, DirectionMask)
}

// InputBuffer returns the input buffer state of the pin.
//
// Atomic.
func (p Pin) InputBuffer() InputBuffer {
	return InputBuffer{p.field(InputBufferMask, inputBufferPos)}
}

// SetInputBuffer sets the input buffer state of the pin.
//
// NOT atomic.
func (p Pin) SetInputBuffer(b InputBuffer) {
	p.Update(Config{InputBuffer: b}, InputBufferMask)
}

// Pull returns the pull of the pin.
//
// Atomic.
func (p Pin) Pull() Pull {
	return Pull{p.field(PullMask, pullPos)}
}

// SetPull sets the pull of the pin.
//
// NOT atomic.
func (p Pin) SetPull(pull Pull) {
	p.Update(Config{Pull: pull}, PullMask)
}

// Drive returns the drive strength of the pin.
//
// Atomic.
func (p Pin) Drive() Drive {
	return Drive{p.field(DriveMask, drivePos)}
}

// SetDrive sets the drive strength of the pin.
//
// NOT atomic.
func (p Pin) SetDrive(d Drive) {
	p.Update(Config{Drive: d}, DriveMask)
}

// Sense returns the sense criteria of the pin.
//
// Atomic.
func (p Pin) Sense() Sense {
	return Sense{p.field(SenseMask, sensePos)}
}

// SetSense sets the sense criteria of the pin.
//
// NOT atomic.
func (p Pin) SetSense(s Sense) {
	p.Update(Config{Sense: s}, SenseMask)
}
