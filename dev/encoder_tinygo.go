//go:build tinygo

package dev

import (
	"machine"

	"tinygo.org/x/drivers/encoders"
)

// QuadCounter adapts the interrupt-driven quadrature reader to the
// Counter contract. The driver keeps a 32-bit position; truncating it to
// 16 bits reproduces the wrap behavior of a hardware counter and the
// Encoder fold recovers the rest.
type QuadCounter struct {
	dev  *encoders.QuadratureDevice
	base int
	prev int
	dir  int8
}

func NewQuadCounter(a, b machine.Pin) *QuadCounter {
	d := encoders.NewQuadratureViaInterrupt(a, b)
	d.Configure(encoders.QuadratureConfig{Precision: 1})
	return &QuadCounter{dev: d, dir: 1}
}

func (c *QuadCounter) Start() {}
func (c *QuadCounter) Stop()  {}

func (c *QuadCounter) Reset() {
	c.base = c.dev.Position()
	c.prev = 0
}

func (c *QuadCounter) Count() uint16 {
	pos := c.dev.Position() - c.base
	if pos > c.prev {
		c.dir = 1
	} else if pos < c.prev {
		c.dir = -1
	}
	c.prev = pos
	return uint16(pos)
}

func (c *QuadCounter) Direction() int8 { return c.dir }
