// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package sim

import nrfgpio "github.com/warthog618/go-nrfgpio"

// Option defines the interface required to provide an option to NewPort.
type Option interface {
	applyOption(*Port)
}

// BaseOption defines the base address of a simulated Port.
type BaseOption uintptr

// WithBase returns an option that defines the base address of the Port.
//
// The default is nrfgpio.P0.
func WithBase(base uintptr) BaseOption {
	return BaseOption(base)
}

func (o BaseOption) applyOption(p *Port) {
	p.base = uintptr(o)
}

// LayoutOption defines the register layout of a simulated Port.
type LayoutOption struct {
	layout nrfgpio.Layout
}

// WithLayout returns an option that defines the register layout of the Port.
//
// The default is nrfgpio.NRF52832.
func WithLayout(l nrfgpio.Layout) LayoutOption {
	return LayoutOption{l}
}

func (o LayoutOption) applyOption(p *Port) {
	p.layout = o.layout
}

// PulledLine is an option that applies an initial pull to a line.
type PulledLine struct {
	Offset int
	Level  int
}

// WithPulledLine returns an option that applies an initial pull to a
// simulated line.
func WithPulledLine(offset int, level int) PulledLine {
	return PulledLine{offset, level}
}

func (o PulledLine) applyOption(p *Port) {
	p.setPull(o.Offset, o.Level)
}

// OutputHandler receives changes to the output state of a simulated line.
type OutputHandler func(offset int, level int)

// WithOutputHandler returns an option that adds a handler for changes to the
// Out register.
//
// The handler is called after the store that changed the output, outside any
// lock held by the Port, once for each line that changed, in offset order.
func WithOutputHandler(h func(offset int, level int)) OutputHandler {
	return OutputHandler(h)
}

func (o OutputHandler) applyOption(p *Port) {
	p.handlers = append(p.handlers, &o)
}
