// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build !linux

package mmio

import "github.com/pkg/errors"

// Mapping is a Bus backed by a window of physical memory mapped into the
// process.
//
// Mapping is only supported on Linux.
type Mapping struct{}

// DefaultMemPath is the device providing access to physical memory.
const DefaultMemPath = "/dev/mem"

// Map returns an error as mapping physical memory is not supported on this
// platform.
func Map(path string, base uintptr, length int) (*Mapping, error) {
	return nil, errors.New("mapping physical memory is only supported on linux")
}

// Base returns zero.
func (m *Mapping) Base() uintptr { return 0 }

// Len returns zero.
func (m *Mapping) Len() int { return 0 }

// Load32 returns zero.
func (m *Mapping) Load32(addr uintptr) uint32 { return 0 }

// Store32 does nothing.
func (m *Mapping) Store32(addr uintptr, v uint32) {}

// Close does nothing.
func (m *Mapping) Close() error { return nil }
