// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package sim

import nrfgpio "github.com/warthog618/go-nrfgpio"

// Simpleton is a simulated Port at nrfgpio.P0 with the nrfgpio.NRF52832
// layout, along with the nrfgpio.Port that accesses it.
type Simpleton struct {
	*Port
	gpio nrfgpio.Port
}

// NewSimpleton constructs a Simpleton in its reset state.
//
// The available options are [WithPulledLine] and [WithOutputHandler].
func NewSimpleton(options ...Option) *Simpleton {
	p := NewPort(options...)
	return &Simpleton{p, nrfgpio.NewPort(p, p.base, nrfgpio.WithLayout(p.layout))}
}

// GPIO returns the nrfgpio.Port accessing the simulated port.
func (s *Simpleton) GPIO() nrfgpio.Port {
	return s.gpio
}

// Pin returns the nrfgpio.Pin at the given offset in the simulated port.
func (s *Simpleton) Pin(offset int) nrfgpio.Pin {
	return s.gpio.Pin(offset)
}

// Register returns the word at the given offset from the port base, as seen
// by software.
func (s *Simpleton) Register(offset uint32) uint32 {
	return s.Load32(s.base + uintptr(offset))
}
