// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// blinky drives the LEDs of an nRF52 DK from its first button.
//
// LED1 and LED2 report the result of a sense readback check on the button
// configuration, lit meaning failed.  LED3 then follows the button level
// until interrupted.
//
// By default the port is simulated, with the button toggled periodically.
// The simulated button and LED3 may be mirrored onto a real gpiochip with
// -chip.  With -devmem the real port registers are mapped instead.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	nrfgpio "github.com/warthog618/go-nrfgpio"
	"github.com/warthog618/go-nrfgpio/mirror"
	"github.com/warthog618/go-nrfgpio/mmio"
	"github.com/warthog618/go-nrfgpio/sim"
)

const (
	btn1 = 13
	led1 = 17
	led2 = 18
	led3 = 19
)

type options struct {
	devmem  string
	layout  string
	chip    string
	button  int
	led     int
	period  time.Duration
	toggle  time.Duration
	verbose bool
}

func main() {
	var o options
	flag.StringVar(&o.devmem, "devmem", "", "map the port registers from this device, e.g. /dev/mem, instead of simulating them")
	flag.StringVar(&o.layout, "layout", "", "YAML file overriding the register layout")
	flag.StringVar(&o.chip, "chip", "", "gpiochip to mirror the simulated button and LED3 onto")
	flag.IntVar(&o.button, "button", 0, "gpiochip line offset mirrored into the simulated button")
	flag.IntVar(&o.led, "led", 1, "gpiochip line offset driven by the simulated LED3")
	flag.DurationVar(&o.period, "period", 10*time.Millisecond, "button polling period")
	flag.DurationVar(&o.toggle, "toggle", time.Second, "period of the simulated button presses")
	flag.BoolVar(&o.verbose, "v", false, "log every register access")
	flag.Parse()

	logger := log.New(os.Stderr, "blinky: ", log.LstdFlags)
	if err := blinky(o, logger); err != nil {
		logger.Print(err)
		os.Exit(1)
	}
}

// blinky sets up the port described by o and runs the demo on it until
// interrupted.
//
// Resources acquired along the way are released before it returns.
func blinky(o options, logger *log.Logger) error {
	layout := nrfgpio.NRF52832
	if o.layout != "" {
		f, err := os.Open(o.layout)
		if err != nil {
			return err
		}
		layout, err = nrfgpio.LoadLayout(f)
		f.Close()
		if err != nil {
			return errors.Wrap(err, o.layout)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var bus mmio.Bus
	if o.devmem != "" {
		m, err := mmio.Map(o.devmem, nrfgpio.P0, 0x1000)
		if err != nil {
			return err
		}
		defer m.Close()
		bus = m
	} else {
		s := sim.NewPort(
			sim.WithLayout(layout),
			sim.WithPulledLine(btn1, sim.LevelActive),
			sim.WithOutputHandler(func(offset, level int) {
				logger.Printf("pin %d -> %d", offset, level)
			}))
		bus = s
		if o.chip != "" {
			m, err := mirror.New(s, o.chip,
				mirror.WithInput(btn1, o.button),
				mirror.WithOutput(led3, o.led),
				mirror.WithConsumer("blinky"),
				mirror.WithLogger(logger))
			if err != nil {
				return err
			}
			defer m.Close()
		} else {
			go press(ctx, s, o.toggle)
		}
	}
	if o.verbose {
		bus = mmio.NewTrace(bus, logger)
	}

	port := nrfgpio.NewPort(bus, nrfgpio.P0, nrfgpio.WithLayout(layout))
	run(ctx, port, o.period)
	return nil
}

// run configures the LEDs and button, reports the sense readback check on
// LED1 and LED2, then copies the button level to LED3 every period until ctx
// is done.
func run(ctx context.Context, port nrfgpio.Port, period time.Duration) {
	btn := port.Pin(btn1)
	leds := []nrfgpio.Pin{port.Pin(led1), port.Pin(led2), port.Pin(led3)}
	for _, l := range leds {
		l.SetDirection(nrfgpio.Output)
	}
	btn.Configure(nrfgpio.Config{
		Direction:   nrfgpio.Input,
		Pull:        nrfgpio.PullUp,
		InputBuffer: nrfgpio.Connected,
	})

	// readback check
	btn.SetSense(nrfgpio.SenseHigh)
	leds[0].Write(btn.Sense() != nrfgpio.SenseHigh)
	btn.SetSense(nrfgpio.SenseOff)
	leds[1].Write(btn.Sense() != nrfgpio.SenseOff)

	t := time.NewTicker(period)
	defer t.Stop()
	for {
		leds[2].Write(btn.Level())
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// press toggles the simulated button.
func press(ctx context.Context, s *sim.Port, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Toggle(btn1)
		}
	}
}
