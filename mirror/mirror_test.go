// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mirror_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-gpiosim"
	nrfgpio "github.com/warthog618/go-nrfgpio"
	"github.com/warthog618/go-nrfgpio/mirror"
	"github.com/warthog618/go-nrfgpio/sim"
)

func newChip(t *testing.T) *gpiosim.Simpleton {
	c, err := gpiosim.NewSimpleton(8)
	if err != nil {
		t.Skipf("gpio-sim unavailable: %v", err)
	}
	return c
}

func TestNewNoLines(t *testing.T) {
	s := sim.NewSimpleton()
	m, err := mirror.New(s.Port, "gpiochip0")
	assert.NotNil(t, err)
	assert.Nil(t, m)
}

func TestNewBadChip(t *testing.T) {
	s := sim.NewSimpleton()
	m, err := mirror.New(s.Port, "/dev/nonexistent", mirror.WithInput(13, 0))
	assert.NotNil(t, err)
	assert.Nil(t, m)
}

func TestMirrorInput(t *testing.T) {
	c := newChip(t)
	defer c.Close()

	err := c.Pullup(2)
	require.Nil(t, err)

	s := sim.NewSimpleton()
	m, err := mirror.New(s.Port, c.DevPath(), mirror.WithInput(13, 2))
	require.Nil(t, err)
	defer m.Close()

	btn := s.Pin(13)
	btn.SetInputBuffer(nrfgpio.Connected)

	// initial level
	assert.Equal(t, sim.LevelActive, s.Pull(13))
	assert.True(t, btn.Level())

	// edges
	err = c.Pulldown(2)
	require.Nil(t, err)
	assert.Eventually(t, func() bool { return !btn.Level() }, time.Second, time.Millisecond)

	err = c.Toggle(2)
	require.Nil(t, err)
	assert.Eventually(t, btn.Level, time.Second, time.Millisecond)
}

func checkChipLevel(t *testing.T, c *gpiosim.Simpleton, offset, v int) {
	lv, err := c.Level(offset)
	assert.Nil(t, err)
	assert.Equal(t, v, lv)
}

func TestMirrorOutput(t *testing.T) {
	c := newChip(t)
	defer c.Close()

	s := sim.NewSimpleton()
	led := s.Pin(17)
	led.SetDirection(nrfgpio.Output)
	led.Set()

	m, err := mirror.New(s.Port, c.DevPath(),
		mirror.WithOutput(17, 5),
		mirror.WithConsumer("mirror-test"))
	require.Nil(t, err)

	// initial level
	checkChipLevel(t, c, 5, 1)

	led.Clear()
	checkChipLevel(t, c, 5, 0)
	led.Write(true)
	checkChipLevel(t, c, 5, 1)

	// other pins are not mirrored
	s.Pin(18).Set()
	checkChipLevel(t, c, 5, 1)

	err = m.Close()
	assert.Nil(t, err)
	led.Clear()
}

func TestMirrorInputEdgeAfterSeed(t *testing.T) {
	c := newChip(t)
	defer c.Close()

	err := c.Pullup(2)
	require.Nil(t, err)

	s := sim.NewSimpleton()
	m, err := mirror.New(s.Port, c.DevPath(), mirror.WithInput(13, 2))
	require.Nil(t, err)
	defer m.Close()

	// an edge immediately after the seed is not overwritten by it
	err = c.Pulldown(2)
	require.Nil(t, err)
	assert.Eventually(t, func() bool { return s.Pull(13) == sim.LevelInactive },
		time.Second, time.Millisecond)
	assert.Never(t, func() bool { return s.Pull(13) == sim.LevelActive },
		50*time.Millisecond, time.Millisecond)
}
