// Package sim provides a software gearmotor plant for closed-loop runs
// without hardware. A Plant implements both sides of one joint's
// hardware boundary: the drive output the controller commands and the
// encoder counter the feedback estimator reads.
package sim

import "quill/arm/feedback"

// counterModulus mirrors a 16-bit hardware timer in encoder mode.
const counterModulus = 65536

// Plant simulates one velocity-controlled gearmotor with quadrature
// feedback. The commanded speed reaches the shaft through a first-order
// lag; shaft motion integrates into a wrapping counter with fractional
// carry so slow motion is not lost to quantisation.
type Plant struct {
	// TimeConstant is the drive's speed-response time constant (s).
	TimeConstant float64

	// MaxRPM clamps the commanded speed, mirroring the drive's limit.
	MaxRPM float64

	// PPR and GearRatio must match the feedback configuration the
	// estimator uses, or angles will not line up.
	PPR       float64
	GearRatio float64

	enabled  bool
	cmdRPM   float64
	shaftRPM float64

	pulses  float64 // fractional pulse accumulator
	counter uint32
}

var _ interface {
	SetSpeed(rpm int32)
	SetEnable(enable bool)
} = (*Plant)(nil)

var _ feedback.Counter = (*Plant)(nil)

// SetSpeed implements motor.Output.
func (p *Plant) SetSpeed(rpm int32) {
	v := float64(rpm)
	if v > p.MaxRPM {
		v = p.MaxRPM
	} else if v < -p.MaxRPM {
		v = -p.MaxRPM
	}
	p.cmdRPM = v
}

// SetEnable implements motor.Output. A disabled drive brakes: the shaft
// speed collapses to zero rather than coasting.
func (p *Plant) SetEnable(enable bool) {
	p.enabled = enable
	if !enable {
		p.shaftRPM = 0
	}
}

// Count implements feedback.Counter.
func (p *Plant) Count() uint32 { return p.counter }

// Period implements feedback.Counter.
func (p *Plant) Period() uint32 { return counterModulus }

// Zero implements feedback.Counter.
func (p *Plant) Zero() { p.counter = 0 }

// ShaftRPM returns the simulated motor shaft speed.
func (p *Plant) ShaftRPM() float64 { return p.shaftRPM }

// Step advances the physics by dt seconds. Call it once per control
// cycle, after the controller has issued its commands.
func (p *Plant) Step(dt float64) {
	if p.enabled {
		// First-order lag toward the commanded speed.
		alpha := dt / (p.TimeConstant + dt)
		p.shaftRPM += (p.cmdRPM - p.shaftRPM) * alpha
	}

	// Motor shaft revolutions this step, scaled to quadrature pulses.
	revs := p.shaftRPM / 60 * dt
	p.pulses += revs * p.PPR * 4

	whole := int64(p.pulses)
	p.pulses -= float64(whole)

	p.counter = uint32((int64(p.counter) + whole%counterModulus + counterModulus) % counterModulus)
}
