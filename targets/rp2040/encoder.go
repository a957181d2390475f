//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/encoders"
)

// encoderModulus presents the driver's int position as a wrapping
// 16-bit counter, the shape the feedback estimator expects.
const encoderModulus = 65536

// QuadratureCounter adapts the drivers quadrature decoder to
// feedback.Counter.
type QuadratureCounter struct {
	dev *encoders.QuadratureDevice
}

// NewQuadratureCounter configures interrupt-driven quadrature decoding
// on the given pin pair at 4x precision.
func NewQuadratureCounter(pinA, pinB machine.Pin) (*QuadratureCounter, error) {
	dev := encoders.NewQuadratureViaInterrupt(pinA, pinB)
	if err := dev.Configure(encoders.QuadratureConfig{Precision: 4}); err != nil {
		return nil, err
	}
	return &QuadratureCounter{dev: dev}, nil
}

func (c *QuadratureCounter) Count() uint32 {
	return uint32(c.dev.Position()) % encoderModulus
}

func (c *QuadratureCounter) Period() uint32 { return encoderModulus }

func (c *QuadratureCounter) Zero() { c.dev.SetPosition(0) }
