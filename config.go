// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package nrfgpio

import "fmt"

// Config is the set of fields held in a pin configuration word.
//
// The zero value is an input with the input buffer connected, no pull,
// standard drive and sensing disabled.
type Config struct {
	Direction   Direction
	InputBuffer InputBuffer
	Pull        Pull
	Drive       Drive
	Sense       Sense
}

// Bit positions of the fields within the configuration word.
const (
	directionPos   = 0
	inputBufferPos = 1
	pullPos        = 2
	drivePos       = 8
	sensePos       = 16
)

// Mask selects fields of the configuration word.
type Mask uint32

// Masks of the fields within the configuration word.
//
// Masks may be combined, e.g. PullMask|SenseMask.
const (
	DirectionMask   Mask = 1 << directionPos
	InputBufferMask Mask = 1 << inputBufferPos
	PullMask        Mask = 3 << pullPos
	DriveMask       Mask = 7 << drivePos
	SenseMask       Mask = 3 << sensePos

	AllMask = DirectionMask | InputBufferMask | PullMask | DriveMask | SenseMask
)

func (m Mask) field(w uint32, pos uint) uint32 {
	return (w & uint32(m)) >> pos
}

// Pack returns the configuration word corresponding to the Config.
func (c Config) Pack() uint32 {
	return c.Direction.v<<directionPos |
		c.InputBuffer.v<<inputBufferPos |
		c.Pull.v<<pullPos |
		c.Drive.v<<drivePos |
		c.Sense.v<<sensePos
}

// Unpack returns the Config encoded in the configuration word w.
//
// Bits outside the fields are ignored.  Reserved encodings are returned as is
// and report false from Valid.
func Unpack(w uint32) Config {
	return Config{
		Direction:   Direction{DirectionMask.field(w, directionPos)},
		InputBuffer: InputBuffer{InputBufferMask.field(w, inputBufferPos)},
		Pull:        Pull{PullMask.field(w, pullPos)},
		Drive:       Drive{DriveMask.field(w, drivePos)},
		Sense:       Sense{SenseMask.field(w, sensePos)},
	}
}

// Valid returns true if all the fields hold a defined encoding.
func (c Config) Valid() bool {
	return c.Pull.Valid() && c.Sense.Valid()
}

func (c Config) String() string {
	return fmt.Sprintf("{%s %s %s %s %s}", c.Direction, c.InputBuffer, c.Pull, c.Drive, c.Sense)
}

// Direction is the direction of a pin.
type Direction struct{ v uint32 }

var (
	// Input is the direction of a pin that is not driven.
	Input = Direction{0}

	// Output is the direction of a pin driven to its output state.
	Output = Direction{1}
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// InputBuffer is the state of the input buffer of a pin.
type InputBuffer struct{ v uint32 }

var (
	// Connected input buffers drive the In register.
	Connected = InputBuffer{0}

	// Disconnected input buffers read as low, and save power.
	Disconnected = InputBuffer{1}
)

func (b InputBuffer) String() string {
	if b == Disconnected {
		return "disconnected"
	}
	return "connected"
}

// Pull is the pull resistor applied to a pin.
type Pull struct{ v uint32 }

var (
	// PullNone disables the pull resistors.
	PullNone = Pull{0}

	// PullDown enables the pull-down resistor.
	PullDown = Pull{1}

	// PullUp enables the pull-up resistor.
	PullUp = Pull{3}
)

// Valid returns false for the reserved encoding.
func (p Pull) Valid() bool {
	return p.v != 2
}

func (p Pull) String() string {
	switch p {
	case PullNone:
		return "pull-none"
	case PullDown:
		return "pull-down"
	case PullUp:
		return "pull-up"
	}
	return fmt.Sprintf("Pull(%d)", p.v)
}

// Drive is the drive strength of a pin.
//
// The name encodes the drive for each level, S for standard, H for high drive
// and D for disconnected, e.g. H0S1 is high drive '0' and standard '1'.
type Drive struct{ v uint32 }

var (
	S0S1 = Drive{0}
	H0S1 = Drive{1}
	S0H1 = Drive{2}
	H0H1 = Drive{3}
	D0S1 = Drive{4}
	D0H1 = Drive{5}
	S0D1 = Drive{6}
	H0D1 = Drive{7}
)

// Drives lists all the drive strengths.
var Drives = []Drive{S0S1, H0S1, S0H1, H0H1, D0S1, D0H1, S0D1, H0D1}

var driveNames = [...]string{"S0S1", "H0S1", "S0H1", "H0H1", "D0S1", "D0H1", "S0D1", "H0D1"}

func (d Drive) String() string {
	return driveNames[d.v&7]
}

// Sense is the level a pin is sensed for.
type Sense struct{ v uint32 }

var (
	// SenseOff disables sensing.
	SenseOff = Sense{0}

	// SenseHigh senses for a high level.
	SenseHigh = Sense{2}

	// SenseLow senses for a low level.
	SenseLow = Sense{3}
)

// Valid returns false for the reserved encoding.
func (s Sense) Valid() bool {
	return s.v != 1
}

func (s Sense) String() string {
	switch s {
	case SenseOff:
		return "sense-off"
	case SenseHigh:
		return "sense-high"
	case SenseLow:
		return "sense-low"
	}
	return fmt.Sprintf("Sense(%d)", s.v)
}

// DetectMode selects the source of the port DETECT signal.
type DetectMode struct{ v uint32 }

var (
	// DetectDefault derives DETECT directly from the pins meeting their
	// sense criteria.
	DetectDefault = DetectMode{0}

	// DetectLatch derives DETECT from the Latch register.
	DetectLatch = DetectMode{1}
)

func (m DetectMode) String() string {
	if m == DetectLatch {
		return "latch"
	}
	return "default"
}
