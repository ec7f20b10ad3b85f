// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package sim provides a simulated nRF52832 GPIO port for testing users of the
nrfgpio package without hardware.

A simulated [Port] is an [mmio.Bus] that models the register file of one GPIO
port.  It behaves as the hardware does rather than as plain memory:

  - the OutSet, OutClr, DirSet and DirClr aliases set or clear the bits written
    as 1, and read back as Out and Dir respectively,
  - the Dir register is a view of the direction bit of each pin
    configuration word,
  - the In register is read-only and reflects the level of each pad, or 0
    if the pin input buffer is disconnected,
  - Latch bits are set when a pin meets its sense criteria and are cleared
    by writing 1, but are immediately set again if the pin still meets its
    criteria,
  - the pin configuration words reset to 0x2, i.e. input buffer
    disconnected.

Addresses outside the port registers behave as plain memory.

The level of an input pad is controlled from the test side.  Applying a pull
using [Port.SetPull], or related methods, drives the level of the simulated
pad.  Without an applied pull the pad follows the pull resistor configured
for the pin, or floats low if none.  For output pins the pad follows the Out
register, and [Port.Level] returns the level the pin is being driven to.

For tests that only require a single port at the standard address, the
[Simpleton] provides a slightly simpler interface.

# Example Usage

	s := sim.NewSimpleton()
	btn := s.Pin(13)
	btn.Configure(nrfgpio.Config{InputBuffer: nrfgpio.Connected})
	s.Pullup(13)
	level := btn.Level() // true

	led := s.Pin(17)
	led.SetDirection(nrfgpio.Output)
	led.Set()
	v := s.Level(17) // sim.LevelActive
*/
package sim
