// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package nrfgpio provides typed access to the registers of the nRF52832 GPIO
port.

A [Port] names a bank of 32 pins by its base address on an [mmio.Bus], and a
[Pin] names a single pin within a Port.  Neither owns anything; both are
small values that may be copied and compared freely, and any number of them
may refer to the same hardware.

Port-wide state (output, input, direction and latch) is accessed via single
loads and stores, using the set and clear alias registers where the hardware
provides them, so each of those operations is atomic.

Each pin also has a configuration word holding its direction, input buffer,
pull, drive and sense fields.  The fields are represented by [Config], which
packs to and unpacks from the word.  [Pin.Configure] writes the whole word
in a single store and is atomic.  [Pin.Update] and the per-field setters,
such as [Pin.SetPull], read, modify and write the word and are NOT atomic.
Where a configuration word may be updated from more than one goroutine the
caller must provide exclusion, e.g. with [mmio.WithLock].

The field types are closed, so reserved encodings, such as a pull of 2,
cannot be constructed.  They may still be read back from hardware that has
been written to directly, in which case they report false from Valid.

There is no validation.  Pin indices outside 0..31 and misaligned addresses
are undefined behaviour.

# Example Usage

Configure a button with a pull-up and copy its level to an LED:

	bus, err := mmio.Map(mmio.DefaultMemPath, nrfgpio.P0, 0x1000)
	port := nrfgpio.NewPort(bus, nrfgpio.P0)
	btn := port.Pin(13)
	led := port.Pin(17)
	btn.Configure(nrfgpio.Config{Direction: nrfgpio.Input, Pull: nrfgpio.PullUp})
	led.SetDirection(nrfgpio.Output)
	led.Write(btn.Level())

In tests the bus may be a simulated port from the sim package:

	s := sim.NewSimpleton()
	btn := s.Pin(13)
	s.Pulldown(13)
	level := btn.Level()
*/
package nrfgpio
