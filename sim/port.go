// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package sim

import (
	"sync"

	nrfgpio "github.com/warthog618/go-nrfgpio"
	"github.com/warthog618/go-nrfgpio/mmio"
)

// Port provides a simulated GPIO port.
//
// Lines are identified by offset into the port, with offsets being in the
// range 0..nrfgpio.NumPins-1.
//
// Each Load32 and Store32 is atomic, so the Port may be shared between
// goroutines, e.g. between the code under test and a handler applying pulls.
type Port struct {
	mu sync.Mutex

	// The base address of the port registers.
	base uintptr

	// The register layout of the port.
	layout nrfgpio.Layout

	// The size of the port register block, up to and including the highest
	// register in the layout.
	span uint32

	// Backing for addresses outside the port registers.
	mem *mmio.Memory

	out    uint32
	latch  uint32
	detect uint32
	cnf    [nrfgpio.NumPins]uint32

	// Lines with a pull applied from the test side, and the level of those
	// pulls.
	pulled uint32
	pulls  uint32

	handlers []*OutputHandler
}

const (
	// Line is inactive.
	LevelInactive int = iota

	// Line is active.
	LevelActive
)

// ResetPinCnf is the reset value of the pin configuration words.
const ResetPinCnf uint32 = 0x2

// NewPort constructs a simulated Port in its reset state.
//
// The available options are [WithBase], [WithLayout], [WithPulledLine] and
// [WithOutputHandler].
func NewPort(options ...Option) *Port {
	p := &Port{
		base:   nrfgpio.P0,
		layout: nrfgpio.NRF52832,
		mem:    mmio.NewMemory(),
	}
	for i := range p.cnf {
		p.cnf[i] = ResetPinCnf
	}
	for _, o := range options {
		o.applyOption(p)
	}
	p.span = span(p.layout)
	p.sense()
	return p
}

// Base returns the base address of the port registers.
func (p *Port) Base() uintptr {
	return p.base
}

// Layout returns the register layout of the port.
func (p *Port) Layout() nrfgpio.Layout {
	return p.layout
}

// Load32 returns the word at addr as seen by software.
func (p *Port) Load32(addr uintptr) uint32 {
	off, ok := p.offset(addr)
	if !ok {
		return p.mem.Load32(addr)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	l := &p.layout
	switch off {
	case l.Out, l.OutSet, l.OutClr:
		return p.out
	case l.In:
		return p.in()
	case l.Dir, l.DirSet, l.DirClr:
		return p.dir()
	case l.Latch:
		return p.latch
	case l.DetectMode:
		return p.detect
	}
	if pin, ok := p.cnfPin(off); ok {
		return p.cnf[pin]
	}
	return p.mem.Load32(addr)
}

// Store32 writes v to addr as software would.
func (p *Port) Store32(addr uintptr, v uint32) {
	off, ok := p.offset(addr)
	if !ok {
		p.mem.Store32(addr, v)
		return
	}
	p.mu.Lock()
	prev := p.out
	l := &p.layout
	switch off {
	case l.Out:
		p.out = v
	case l.OutSet:
		p.out |= v
	case l.OutClr:
		p.out &^= v
	case l.In:
		// read-only
	case l.Dir:
		p.setDir(^uint32(0), false)
		p.setDir(v, true)
	case l.DirSet:
		p.setDir(v, true)
	case l.DirClr:
		p.setDir(v, false)
	case l.Latch:
		p.latch &^= v
	case l.DetectMode:
		p.detect = v & 1
	default:
		if pin, ok := p.cnfPin(off); ok {
			p.cnf[pin] = v
		} else {
			p.mem.Store32(addr, v)
		}
	}
	p.sense()
	changed, out := prev^p.out, p.out
	handlers := p.handlers
	p.mu.Unlock()
	p.notify(handlers, changed, out)
}

// Level returns the level of the simulated pad.
//
// For output lines this is the level software is driving the line to.
// For input lines it is the level of the applied pull, if any, else the level
// set by the pull resistor configured for the pin.
func (p *Port) Level(offset int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level(offset)
}

// Pull returns the pull applied to the given line.
//
// Lines with no pull applied return LevelInactive.
func (p *Port) Pull(offset int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return bit(p.pulls, offset)
}

// Pulldown sets the pull of the given line to pull-down.
func (p *Port) Pulldown(offset int) {
	p.SetPull(offset, LevelInactive)
}

// Pullup sets the pull of the given line to pull-up.
func (p *Port) Pullup(offset int) {
	p.SetPull(offset, LevelActive)
}

// SetPull sets the pull of the given line.
//
// The pull only determines the level of the line while it is an input.
func (p *Port) SetPull(offset int, level int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setPull(offset, level)
	p.sense()
}

// Release removes any pull applied to the given line.
//
// The line then floats to the level set by its configured pull resistor.
func (p *Port) Release(offset int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m := uint32(1) << offset
	p.pulled &^= m
	p.pulls &^= m
	p.sense()
}

// Toggle flips the pull of the given line.
//
// If it was pull-up it becomes pull-down, and vice versa.
func (p *Port) Toggle(offset int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l := LevelActive
	if bit(p.pulls, offset) == LevelActive {
		l = LevelInactive
	}
	p.setPull(offset, l)
	p.sense()
}

// Watch adds a handler for changes to the Out register.
//
// The returned function removes the handler.
func (p *Port) Watch(h func(offset int, level int)) func() {
	oh := OutputHandler(h)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, &oh)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		handlers := make([]*OutputHandler, 0, len(p.handlers))
		for _, x := range p.handlers {
			if x != &oh {
				handlers = append(handlers, x)
			}
		}
		p.handlers = handlers
	}
}

// offset returns the offset of addr within the port register block.
func (p *Port) offset(addr uintptr) (uint32, bool) {
	if addr < p.base || addr-p.base >= uintptr(p.span) {
		return 0, false
	}
	return uint32(addr - p.base), true
}

// cnfPin returns the pin whose configuration word is at the offset.
func (p *Port) cnfPin(off uint32) (int, bool) {
	if off < p.layout.PinCnf || off%4 != 0 {
		return 0, false
	}
	pin := int((off - p.layout.PinCnf) / 4)
	return pin, pin < nrfgpio.NumPins
}

// span returns the size of the register block described by the layout.
func span(l nrfgpio.Layout) uint32 {
	offsets := []uint32{
		l.Out, l.OutSet, l.OutClr, l.In, l.Dir, l.DirSet, l.DirClr,
		l.Latch, l.DetectMode, l.PinCnfAddr(nrfgpio.NumPins - 1),
	}
	var hi uint32
	for _, o := range offsets {
		if o > hi {
			hi = o
		}
	}
	return hi + 4
}

func (p *Port) dir() uint32 {
	var d uint32
	for i, c := range p.cnf {
		d |= (c & 1) << i
	}
	return d
}

func (p *Port) setDir(mask uint32, output bool) {
	for i := range p.cnf {
		if mask&(1<<i) == 0 {
			continue
		}
		if output {
			p.cnf[i] |= uint32(nrfgpio.DirectionMask)
		} else {
			p.cnf[i] &^= uint32(nrfgpio.DirectionMask)
		}
	}
}

func (p *Port) setPull(offset int, level int) {
	m := uint32(1) << offset
	p.pulled |= m
	if level == LevelActive {
		p.pulls |= m
	} else {
		p.pulls &^= m
	}
}

func (p *Port) level(offset int) int {
	c := nrfgpio.Unpack(p.cnf[offset])
	if c.Direction == nrfgpio.Output {
		return bit(p.out, offset)
	}
	if bit(p.pulled, offset) == LevelActive {
		return bit(p.pulls, offset)
	}
	if c.Pull == nrfgpio.PullUp {
		return LevelActive
	}
	return LevelInactive
}

func (p *Port) in() uint32 {
	var v uint32
	for i := range p.cnf {
		c := nrfgpio.Unpack(p.cnf[i])
		if c.InputBuffer == nrfgpio.Connected && p.level(i) == LevelActive {
			v |= 1 << i
		}
	}
	return v
}

// sense latches any lines meeting their sense criteria.
func (p *Port) sense() {
	for i := range p.cnf {
		switch nrfgpio.Unpack(p.cnf[i]).Sense {
		case nrfgpio.SenseHigh:
			if p.level(i) == LevelActive {
				p.latch |= 1 << i
			}
		case nrfgpio.SenseLow:
			if p.level(i) == LevelInactive {
				p.latch |= 1 << i
			}
		}
	}
}

func (p *Port) notify(handlers []*OutputHandler, changed, out uint32) {
	if changed == 0 {
		return
	}
	for i := 0; i < nrfgpio.NumPins; i++ {
		if bit(changed, i) == LevelInactive {
			continue
		}
		for _, h := range handlers {
			(*h)(i, bit(out, i))
		}
	}
}

func bit(v uint32, offset int) int {
	return int((v >> offset) & 1)
}
