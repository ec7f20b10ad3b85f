// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package nrfgpio

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Layout contains the register offsets of a GPIO port, relative to the port
// base address.
type Layout struct {
	// Output state.
	Out uint32 `yaml:"out"`

	// Write-one-to-set alias of Out.
	OutSet uint32 `yaml:"outset"`

	// Write-one-to-clear alias of Out.
	OutClr uint32 `yaml:"outclr"`

	// Input state.
	In uint32 `yaml:"in"`

	// Direction state.
	Dir uint32 `yaml:"dir"`

	// Write-one-to-set alias of Dir.
	DirSet uint32 `yaml:"dirset"`

	// Write-one-to-clear alias of Dir.
	DirClr uint32 `yaml:"dirclr"`

	// Sense criteria latch.  Write-one-to-clear.
	Latch uint32 `yaml:"latch"`

	// Port-wide detect mode.
	DetectMode uint32 `yaml:"detectmode"`

	// Configuration word of pin 0.
	//
	// The configuration word of pin n is at PinCnf + 4*n.
	PinCnf uint32 `yaml:"pincnf"`
}

// NRF52832 is the layout of the nRF52832 GPIO port.
var NRF52832 = Layout{
	Out:        0x504,
	OutSet:     0x508,
	OutClr:     0x50c,
	In:         0x510,
	Dir:        0x514,
	DirSet:     0x518,
	DirClr:     0x51c,
	Latch:      0x520,
	DetectMode: 0x524,
	PinCnf:     0x700,
}

// P0 is the base address of the nRF52832 GPIO port.
const P0 uintptr = 0x50000000

// NumPins is the number of pins in a port.
const NumPins = 32

// PinCnfAddr returns the offset of the configuration word of the given pin.
func (l Layout) PinCnfAddr(pin int) uint32 {
	return l.PinCnf + 4*uint32(pin)
}

// LoadLayout decodes a YAML layout from r.
//
// Keys missing from the document take their value from NRF52832.
// All offsets must be word aligned.
//
// e.g.
//
//	out: 0x504
//	outset: 0x508
//	pincnf: 0x700
func LoadLayout(r io.Reader) (Layout, error) {
	l := NRF52832
	if err := yaml.NewDecoder(r).Decode(&l); err != nil && err != io.EOF {
		return Layout{}, errors.Wrap(err, "decode layout")
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func (l *Layout) validate() error {
	offsets := []struct {
		name string
		v    uint32
	}{
		{"out", l.Out},
		{"outset", l.OutSet},
		{"outclr", l.OutClr},
		{"in", l.In},
		{"dir", l.Dir},
		{"dirset", l.DirSet},
		{"dirclr", l.DirClr},
		{"latch", l.Latch},
		{"detectmode", l.DetectMode},
		{"pincnf", l.PinCnf},
	}
	for _, o := range offsets {
		if o.v%4 != 0 {
			return errors.Errorf("%s offset 0x%x is not word aligned", o.name, o.v)
		}
	}
	return nil
}
