// SPDX-FileCopyrightText: 2026 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package nrfgpio

// PortOption defines the interface required to provide an option to NewPort.
type PortOption interface {
	applyPortOption(*Port)
}

// LayoutOption is an option that defines the register layout of a Port.
type LayoutOption struct {
	layout Layout
}

// WithLayout returns an option that defines the register layout of a Port.
//
// The default is NRF52832.
func WithLayout(l Layout) LayoutOption {
	return LayoutOption{l}
}

func (o LayoutOption) applyPortOption(p *Port) {
	p.layout = o.layout
}
