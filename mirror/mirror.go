// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package mirror couples a simulated GPIO port to lines on a Linux gpiochip.
//
// Input lines on the gpiochip are mirrored into the simulated port, as pulls
// applied to the corresponding simulated pins, so code driving the simulator
// sees real buttons.  Simulated output pins are mirrored onto output lines on
// the gpiochip, so real LEDs follow the simulated Out register.
//
// The gpiochip is accessed via the GPIO character device.
package mirror

import (
	"log"
	"sync"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
	"github.com/warthog618/go-nrfgpio/sim"
)

// Mirror couples a simulated port to lines on a gpiochip.
type Mirror struct {
	port    *sim.Port
	unwatch func()
	logger  *log.Logger

	mu      sync.Mutex
	inputs  []*gpiocdev.Line
	outputs map[int]*gpiocdev.Line
}

// Option defines the interface required to provide an option to New.
type Option interface {
	applyOption(*builder)
}

type builder struct {
	consumer string
	logger   *log.Logger

	// Map from simulated pin to gpiochip line offset.
	inputs  map[int]int
	outputs map[int]int
}

// Line maps a simulated pin to a line on the gpiochip.
type Line struct {
	Pin    int
	Offset int
}

// InputLine is an option that mirrors a gpiochip input line into a simulated
// pin.
type InputLine Line

// WithInput returns an option that mirrors the level of the line at offset on
// the gpiochip into the simulated pin.
func WithInput(pin, offset int) InputLine {
	return InputLine{pin, offset}
}

func (o InputLine) applyOption(b *builder) {
	b.inputs[o.Pin] = o.Offset
}

// OutputLine is an option that mirrors a simulated pin onto a gpiochip output
// line.
type OutputLine Line

// WithOutput returns an option that drives the line at offset on the gpiochip
// to the output state of the simulated pin.
func WithOutput(pin, offset int) OutputLine {
	return OutputLine{pin, offset}
}

func (o OutputLine) applyOption(b *builder) {
	b.outputs[o.Pin] = o.Offset
}

// ConsumerOption defines the consumer label of the requested lines.
type ConsumerOption string

// WithConsumer returns an option that defines the consumer label of the
// requested lines.
//
// The default is "nrfgpio-mirror".
func WithConsumer(name string) ConsumerOption {
	return ConsumerOption(name)
}

func (o ConsumerOption) applyOption(b *builder) {
	b.consumer = string(o)
}

// LoggerOption defines the logger used to report errors driving output lines.
type LoggerOption struct {
	logger *log.Logger
}

// WithLogger returns an option that defines the logger used to report
// errors driving output lines.
//
// The default is the standard logger.
func WithLogger(l *log.Logger) LoggerOption {
	return LoggerOption{l}
}

func (o LoggerOption) applyOption(b *builder) {
	b.logger = o.logger
}

// New requests the lines from the gpiochip and starts mirroring them to and
// from the simulated port.
//
// The chip is the name or path of the gpiochip, e.g. "gpiochip0".
//
// The available options are [WithInput], [WithOutput], [WithConsumer] and
// [WithLogger].
// At least one WithInput or WithOutput option must be provided.
func New(port *sim.Port, chip string, options ...Option) (*Mirror, error) {
	b := builder{
		consumer: "nrfgpio-mirror",
		logger:   log.Default(),
		inputs:   make(map[int]int),
		outputs:  make(map[int]int),
	}
	for _, o := range options {
		o.applyOption(&b)
	}
	if len(b.inputs) == 0 && len(b.outputs) == 0 {
		return nil, errors.New("no lines defined")
	}
	m := &Mirror{port: port, logger: b.logger, outputs: make(map[int]*gpiocdev.Line)}
	for pin, offset := range b.inputs {
		if err := m.addInput(chip, b.consumer, pin, offset); err != nil {
			m.Close()
			return nil, err
		}
	}
	for pin, offset := range b.outputs {
		l, err := gpiocdev.RequestLine(chip, offset,
			gpiocdev.AsOutput(port.Level(pin)),
			gpiocdev.WithConsumer(b.consumer))
		if err != nil {
			m.Close()
			return nil, errors.Wrapf(err, "request output line %d", offset)
		}
		m.outputs[pin] = l
	}
	m.unwatch = port.Watch(m.drive)
	return m, nil
}

// addInput requests the line at offset as an input and seeds the pin with
// its current level.
//
// Edge events are applied under the same lock as the seed, so an edge that
// arrives while seeding is applied after it rather than being overwritten by
// the earlier level.
func (m *Mirror) addInput(chip, consumer string, pin, offset int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithConsumer(consumer),
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			level := sim.LevelInactive
			if evt.Type == gpiocdev.LineEventRisingEdge {
				level = sim.LevelActive
			}
			m.mu.Lock()
			defer m.mu.Unlock()
			m.port.SetPull(pin, level)
		}))
	if err != nil {
		return errors.Wrapf(err, "request input line %d", offset)
	}
	m.inputs = append(m.inputs, l)
	v, err := l.Value()
	if err != nil {
		return errors.Wrapf(err, "read input line %d", offset)
	}
	m.port.SetPull(pin, v)
	return nil
}

// drive sets the gpiochip output line mirroring the pin, if any.
func (m *Mirror) drive(pin int, level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.outputs[pin]; ok {
		if err := l.SetValue(level); err != nil {
			m.logger.Printf("drive line %d to %d: %v", l.Offset(), level, err)
		}
	}
}

// Close stops mirroring and releases the requested lines.
func (m *Mirror) Close() error {
	if m.unwatch != nil {
		m.unwatch()
		m.unwatch = nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var err error
	for _, l := range m.inputs {
		if cerr := l.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	for _, l := range m.outputs {
		if cerr := l.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	m.inputs = nil
	m.outputs = nil
	return err
}
