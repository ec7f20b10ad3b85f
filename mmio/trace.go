// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mmio

import "log"

// Trace is a Bus that logs every access to the wrapped Bus.
//
// A Trace preserves the exclusion of a wrapped Bus returned by WithLock.
type Trace struct {
	Bus
	Logger *log.Logger
}

// NewTrace returns a Trace that logs accesses to b using l.
//
// If l is nil then the standard logger is used.
func NewTrace(b Bus, l *log.Logger) *Trace {
	if l == nil {
		l = log.Default()
	}
	return &Trace{Bus: b, Logger: l}
}

// Load32 loads the word at addr from the wrapped Bus and logs the access.
func (t *Trace) Load32(addr uintptr) uint32 {
	v := t.Bus.Load32(addr)
	t.Logger.Printf("load  0x%08x -> 0x%08x", addr, v)
	return v
}

// Store32 logs the access and stores v to addr on the wrapped Bus.
func (t *Trace) Store32(addr uintptr, v uint32) {
	t.Logger.Printf("store 0x%08x <- 0x%08x", addr, v)
	t.Bus.Store32(addr, v)
}

// Exclusive runs fn under the exclusion provided by the wrapped Bus, if any.
//
// Read-modify-write sequences through a Trace are therefore serialised
// whenever they would be through the wrapped Bus.
func (t *Trace) Exclusive(fn func()) {
	if x, ok := t.Bus.(Exclusive); ok {
		x.Exclusive(fn)
		return
	}
	fn()
}
