// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package nrfgpio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	nrfgpio "github.com/warthog618/go-nrfgpio"
	"github.com/warthog618/go-nrfgpio/mmio"
	"github.com/warthog618/go-nrfgpio/sim"
)

var regs = nrfgpio.NRF52832

func TestNewPin(t *testing.T) {
	s := sim.NewSimpleton()
	p := nrfgpio.NewPin(s.Port, nrfgpio.P0, 7)
	assert.Equal(t, 7, p.Index())
	assert.Equal(t, nrfgpio.P0, p.Port().Base())
	assert.Equal(t, s.Pin(7), p)
	assert.Equal(t, "P0x50000000.07", p.String())

	// pins are coordinates - effects alias
	p.SetDirection(nrfgpio.Output)
	assert.True(t, s.Pin(7).IsOutput())
}

func TestDirection(t *testing.T) {
	s := sim.NewSimpleton()
	for i := 0; i < nrfgpio.NumPins; i++ {
		p := s.Pin(i)
		for _, d := range []nrfgpio.Direction{nrfgpio.Output, nrfgpio.Input, nrfgpio.Output} {
			p.SetDirection(d)
			assert.Equal(t, d, p.Direction(), i)
			assert.Equal(t, d == nrfgpio.Output, p.IsOutput(), i)
			assert.Equal(t, d == nrfgpio.Input, p.IsInput(), i)
		}
	}
	// all left as outputs
	assert.Equal(t, uint32(0xffffffff), s.Register(regs.Dir))
}

func TestWrite(t *testing.T) {
	s := sim.NewSimpleton()
	for i := 0; i < nrfgpio.NumPins; i++ {
		p := s.Pin(i)
		p.Write(true)
		assert.Equal(t, uint32(1)<<i, s.Register(regs.Out), i)
		assert.True(t, p.Output(), i)
		p.Write(false)
		assert.Zero(t, s.Register(regs.Out), i)
		assert.False(t, p.Output(), i)
	}

	// with neighbours set
	pattern := uint32(0xa5a5a5a5)
	mmio.Write32(s, nrfgpio.P0+uintptr(regs.Out), pattern)
	for i := 0; i < nrfgpio.NumPins; i++ {
		p := s.Pin(i)
		p.Write(true)
		assert.Equal(t, pattern|uint32(1)<<i, s.Register(regs.Out), i)
		p.Write(false)
		assert.Equal(t, pattern&^(uint32(1)<<i), s.Register(regs.Out), i)
		mmio.Write32(s, nrfgpio.P0+uintptr(regs.Out), pattern)
	}
}

func TestSetClear(t *testing.T) {
	s := sim.NewSimpleton()
	p := s.Pin(3)
	p.SetDirection(nrfgpio.Output)
	p.Set()
	assert.True(t, p.Output())
	assert.Equal(t, sim.LevelActive, s.Level(3))
	p.Clear()
	assert.False(t, p.Output())
	assert.Equal(t, sim.LevelInactive, s.Level(3))
}

func TestLevel(t *testing.T) {
	s := sim.NewSimpleton()
	p := s.Pin(4)

	// input buffer disconnected at reset
	s.Pullup(4)
	assert.False(t, p.Level())

	p.SetInputBuffer(nrfgpio.Connected)
	assert.True(t, p.Level())
	s.Pulldown(4)
	assert.False(t, p.Level())
	s.Toggle(4)
	assert.True(t, p.Level())

	// outputs read back their driven level
	p.SetDirection(nrfgpio.Output)
	p.Clear()
	assert.False(t, p.Level())
	p.Set()
	assert.True(t, p.Level())
}

func TestConfigureRoundTrip(t *testing.T) {
	s := sim.NewSimpleton()
	dirs := []nrfgpio.Direction{nrfgpio.Input, nrfgpio.Output}
	bufs := []nrfgpio.InputBuffer{nrfgpio.Connected, nrfgpio.Disconnected}
	pulls := []nrfgpio.Pull{nrfgpio.PullNone, nrfgpio.PullDown, nrfgpio.PullUp}
	senses := []nrfgpio.Sense{nrfgpio.SenseOff, nrfgpio.SenseHigh, nrfgpio.SenseLow}
	for _, pin := range []int{0, 13, 31} {
		p := s.Pin(pin)
		for _, d := range dirs {
			for _, b := range bufs {
				for _, pl := range pulls {
					for _, dr := range nrfgpio.Drives {
						for _, sn := range senses {
							c := nrfgpio.Config{
								Direction:   d,
								InputBuffer: b,
								Pull:        pl,
								Drive:       dr,
								Sense:       sn,
							}
							p.Configure(c)
							require.Equal(t, c, p.Config(), "pin %d", pin)
							require.Equal(t, c.Pack(), p.ConfigWord(), "pin %d", pin)
							require.Equal(t, d, p.Direction(), "pin %d", pin)
							require.Equal(t, b, p.InputBuffer(), "pin %d", pin)
							require.Equal(t, pl, p.Pull(), "pin %d", pin)
							require.Equal(t, dr, p.Drive(), "pin %d", pin)
							require.Equal(t, sn, p.Sense(), "pin %d", pin)
						}
					}
				}
			}
		}
	}
}

func TestConfigureResetsAllFields(t *testing.T) {
	s := sim.NewSimpleton()
	p := s.Pin(9)
	p.Configure(nrfgpio.Config{
		Direction: nrfgpio.Output,
		Pull:      nrfgpio.PullUp,
		Drive:     nrfgpio.H0H1,
		Sense:     nrfgpio.SenseLow,
	})
	p.Configure(nrfgpio.Config{Pull: nrfgpio.PullDown})
	assert.Equal(t, nrfgpio.Config{Pull: nrfgpio.PullDown}, p.Config())
}

func TestUpdate(t *testing.T) {
	s := sim.NewSimpleton()
	p := s.Pin(21)
	r1 := nrfgpio.Config{
		Direction:   nrfgpio.Output,
		InputBuffer: nrfgpio.Disconnected,
		Pull:        nrfgpio.PullDown,
		Drive:       nrfgpio.S0D1,
		Sense:       nrfgpio.SenseHigh,
	}
	r2 := nrfgpio.Config{
		Direction:   nrfgpio.Input,
		InputBuffer: nrfgpio.Connected,
		Pull:        nrfgpio.PullUp,
		Drive:       nrfgpio.H0S1,
		Sense:       nrfgpio.SenseLow,
	}
	p.Configure(r1)
	p.Update(r2, nrfgpio.PullMask)
	assert.Equal(t, r2.Pull, p.Pull())
	assert.Equal(t, r1.Direction, p.Direction())
	assert.Equal(t, r1.InputBuffer, p.InputBuffer())
	assert.Equal(t, r1.Drive, p.Drive())
	assert.Equal(t, r1.Sense, p.Sense())

	p.Update(r2, nrfgpio.DriveMask|nrfgpio.SenseMask)
	xc := r1
	xc.Pull = r2.Pull
	xc.Drive = r2.Drive
	xc.Sense = r2.Sense
	assert.Equal(t, xc, p.Config())

	p.Update(r2, nrfgpio.AllMask)
	assert.Equal(t, r2, p.Config())

	// bits outside the fields are preserved
	mmio.Write32(s, nrfgpio.P0+uintptr(regs.PinCnfAddr(21)), 0x80000000)
	p.Update(r1, nrfgpio.AllMask)
	assert.Equal(t, 0x80000000|r1.Pack(), p.ConfigWord())
}

func TestFieldSetters(t *testing.T) {
	s := sim.NewSimpleton()
	p := s.Pin(6)
	p.Configure(nrfgpio.Config{})

	p.SetPull(nrfgpio.PullUp)
	p.SetDrive(nrfgpio.D0H1)
	p.SetSense(nrfgpio.SenseLow)
	p.SetInputBuffer(nrfgpio.Disconnected)
	p.SetDirection(nrfgpio.Output)
	assert.Equal(t, nrfgpio.Config{
		Direction:   nrfgpio.Output,
		InputBuffer: nrfgpio.Disconnected,
		Pull:        nrfgpio.PullUp,
		Drive:       nrfgpio.D0H1,
		Sense:       nrfgpio.SenseLow,
	}, p.Config())

	p.SetPull(nrfgpio.PullNone)
	assert.Equal(t, nrfgpio.PullNone, p.Pull())
	assert.Equal(t, nrfgpio.D0H1, p.Drive())
	assert.Equal(t, nrfgpio.SenseLow, p.Sense())

	// neighbouring pins untouched
	assert.Equal(t, sim.ResetPinCnf, s.Pin(5).ConfigWord())
	assert.Equal(t, sim.ResetPinCnf, s.Pin(7).ConfigWord())
}

func TestReservedEncodings(t *testing.T) {
	s := sim.NewSimpleton()
	p := s.Pin(2)
	mmio.Write32(s, nrfgpio.P0+uintptr(regs.PinCnfAddr(2)), 2<<2|1<<16)
	assert.False(t, p.Pull().Valid())
	assert.False(t, p.Sense().Valid())
	assert.False(t, p.Config().Valid())
	assert.Equal(t, "Pull(2)", p.Pull().String())
	assert.Equal(t, "Sense(1)", p.Sense().String())
}

func TestLatch(t *testing.T) {
	s := sim.NewSimpleton()
	p := s.Pin(5)
	port := s.GPIO()

	// clearing a clear latch leaves it clear
	assert.False(t, p.Latched())
	p.ClearLatch()
	assert.False(t, p.Latched())
	assert.Zero(t, port.Latch())

	p.Configure(nrfgpio.Config{Sense: nrfgpio.SenseHigh})
	assert.False(t, p.Latched())
	s.Pullup(5)
	assert.True(t, p.Latched())
	assert.Equal(t, uint32(1)<<5, port.Latch())

	// latch holds after the criteria is no longer met
	s.Pulldown(5)
	assert.True(t, p.Latched())

	p.ClearLatch()
	assert.False(t, p.Latched())
	p.ClearLatch()
	assert.False(t, p.Latched())
	assert.Zero(t, port.Latch())
}

func TestLatchClearIsolation(t *testing.T) {
	s := sim.NewSimpleton()
	for _, i := range []int{1, 2} {
		s.Pin(i).Configure(nrfgpio.Config{Sense: nrfgpio.SenseLow})
	}
	assert.Equal(t, uint32(0x6), s.GPIO().Latch())
	s.Pullup(1)
	s.Pin(1).ClearLatch()
	assert.False(t, s.Pin(1).Latched())
	assert.True(t, s.Pin(2).Latched())
}

func TestDetectMode(t *testing.T) {
	s := sim.NewSimpleton()
	port := s.GPIO()
	assert.Equal(t, nrfgpio.DetectDefault, port.DetectMode())
	for _, m := range []nrfgpio.DetectMode{nrfgpio.DetectLatch, nrfgpio.DetectDefault, nrfgpio.DetectLatch} {
		port.SetDetectMode(m)
		assert.Equal(t, m, port.DetectMode())
	}
	for i := 0; i < nrfgpio.NumPins; i++ {
		assert.Equal(t, sim.ResetPinCnf, s.Pin(i).ConfigWord(), i)
	}

	// and pin configuration does not alter it
	s.Pin(0).Configure(nrfgpio.Config{Direction: nrfgpio.Output, Sense: nrfgpio.SenseHigh})
	assert.Equal(t, nrfgpio.DetectLatch, port.DetectMode())
}

func TestButton(t *testing.T) {
	s := sim.NewSimpleton()
	btn := s.Pin(13)
	btn.Configure(nrfgpio.Config{
		Direction:   nrfgpio.Input,
		Pull:        nrfgpio.PullUp,
		InputBuffer: nrfgpio.Connected,
	})
	s.SetPull(13, sim.LevelActive)
	assert.True(t, btn.Level())
	assert.Equal(t, uint32(1)<<13, s.Register(regs.In)&(1<<13))

	low := btn.ConfigWord() & 0x7ff
	btn.SetSense(nrfgpio.SenseHigh)
	assert.Equal(t, nrfgpio.SenseHigh, btn.Sense())
	assert.Equal(t, low, btn.ConfigWord()&0x7ff)
	btn.SetSense(nrfgpio.SenseLow)
	assert.Equal(t, nrfgpio.SenseLow, btn.Sense())
	assert.Equal(t, low, btn.ConfigWord()&0x7ff)
	btn.SetSense(nrfgpio.SenseOff)
	assert.Equal(t, nrfgpio.SenseOff, btn.Sense())
	assert.Equal(t, low, btn.ConfigWord())

	s.Pulldown(13)
	assert.False(t, btn.Level())
}

func TestOutputIsolation(t *testing.T) {
	s := sim.NewSimpleton()
	out := uint32(0xf0f0f0f0)
	dir := uint32(0x0000ffff)
	mmio.Write32(s, nrfgpio.P0+uintptr(regs.Out), out)
	mmio.Write32(s, nrfgpio.P0+uintptr(regs.Dir), dir)

	led := s.Pin(17)
	led.Set()
	assert.Equal(t, out|1<<17, s.Register(regs.Out))
	assert.Equal(t, dir, s.Register(regs.Dir))
	led.Clear()
	assert.Equal(t, out, s.Register(regs.Out))
	assert.Equal(t, dir, s.Register(regs.Dir))
}

func TestCustomLayout(t *testing.T) {
	l := nrfgpio.NRF52832
	l.Out = 0x404
	l.OutSet = 0x408
	l.OutClr = 0x40c
	l.PinCnf = 0x600
	base := uintptr(0x50000300)
	s := sim.NewPort(sim.WithBase(base), sim.WithLayout(l))
	port := nrfgpio.NewPort(s, base, nrfgpio.WithLayout(l))
	assert.Equal(t, l, port.Layout())
	assert.Equal(t, mmio.Bus(s), port.Bus())

	p := port.Pin(3)
	p.Set()
	assert.Equal(t, uint32(1)<<3, mmio.Read32(s, base+0x404))
	c := nrfgpio.Config{Pull: nrfgpio.PullDown, Drive: nrfgpio.H0H1}
	p.Configure(c)
	assert.Equal(t, c.Pack(), mmio.Read32(s, base+0x60c))
	assert.Equal(t, c, p.Config())
}

func TestConfigDirection(t *testing.T) {
	// plain memory, so Dir is not a view of the configuration words
	m := mmio.NewMemory()
	p := nrfgpio.NewPin(m, nrfgpio.P0, 4)
	p.Configure(nrfgpio.Config{Direction: nrfgpio.Output, Drive: nrfgpio.H0H1})
	p.Update(nrfgpio.Config{Pull: nrfgpio.PullUp}, nrfgpio.PullMask)
	assert.Equal(t, nrfgpio.Output, p.ConfigDirection())
	assert.Equal(t, nrfgpio.PullUp, p.Pull())
	assert.Equal(t, nrfgpio.H0H1, p.Drive())

	p.SetConfigDirection(nrfgpio.Input)
	assert.Equal(t, nrfgpio.Input, p.ConfigDirection())
	assert.Equal(t, nrfgpio.PullUp, p.Pull())
	assert.Equal(t, nrfgpio.H0H1, p.Drive())
	assert.Zero(t, mmio.Read32(m, nrfgpio.P0+uintptr(regs.Dir)))

	p.SetConfigDirection(nrfgpio.Output)
	assert.Equal(t, nrfgpio.Output, p.ConfigDirection())
	assert.Equal(t, uint32(0x30d), p.ConfigWord())

	// neighbours untouched
	assert.Zero(t, nrfgpio.NewPin(m, nrfgpio.P0, 3).ConfigWord())
	assert.Zero(t, nrfgpio.NewPin(m, nrfgpio.P0, 5).ConfigWord())

	// on the simulator the Dir register follows the field
	s := sim.NewSimpleton()
	sp := s.Pin(4)
	sp.SetConfigDirection(nrfgpio.Output)
	assert.Equal(t, nrfgpio.Output, sp.Direction())
	sp.SetConfigDirection(nrfgpio.Input)
	assert.Equal(t, nrfgpio.Input, sp.Direction())
}

func TestPortIsValue(t *testing.T) {
	m := mmio.NewMemory()
	port := nrfgpio.NewPort(m, nrfgpio.P0)
	saved := nrfgpio.NRF52832
	defer func() { nrfgpio.NRF52832 = saved }()
	nrfgpio.NRF52832.Out = 0x404
	assert.Equal(t, uint32(0x504), port.Layout().Out)
	port.Pin(2).Set()
	assert.Equal(t, uint32(1)<<2, mmio.Read32(m, nrfgpio.P0+0x508))
	nrfgpio.NRF52832 = saved

	// pins with the same coordinates compare equal
	a := nrfgpio.NewPort(m, nrfgpio.P0, nrfgpio.WithLayout(saved)).Pin(7)
	b := nrfgpio.NewPort(m, nrfgpio.P0, nrfgpio.WithLayout(saved)).Pin(7)
	assert.True(t, a == b)
	assert.True(t, a == nrfgpio.NewPin(m, nrfgpio.P0, 7))
	assert.False(t, a == nrfgpio.NewPin(m, nrfgpio.P0, 8))
}
