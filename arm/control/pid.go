// Package control implements the per-joint position controller: PID
// feedback on the angle error plus velocity and acceleration feedforward
// from the shaped trajectory.
package control

// Gains holds the controller coefficients.
type Gains struct {
	Kp float64 // proportional (RPM per degree of error)
	Ki float64 // integral
	Kd float64 // derivative

	// Kv scales the velocity feedforward. For drive trains that are
	// themselves velocity-controlled this is close to 1.0: the shaped
	// setpoint velocity maps directly to a speed command.
	Kv float64

	// Ka scales the acceleration feedforward, an empirical inertia
	// compensation term.
	Ka float64
}

// PositionController closes the loop for one joint. Inputs are in
// degrees, degrees/second and degrees/second^2; output is a motor speed
// command in RPM.
type PositionController struct {
	gains     Gains
	maxOutput float64

	// integralLimit bounds the integral accumulator when nonzero. The
	// default of zero keeps the accumulator unbounded, matching the
	// documented formula.
	integralLimit float64

	integral  float64
	prevError float64
}

// NewPositionController creates a controller with the given gains and a
// symmetric output clamp of maxOutput RPM.
func NewPositionController(gains Gains, maxOutput float64) *PositionController {
	c := &PositionController{gains: gains, maxOutput: maxOutput}
	c.Reset()
	return c
}

// SetIntegralLimit bounds the integral accumulator to ±limit. A limit of
// zero disables clamping.
func (c *PositionController) SetIntegralLimit(limit float64) {
	c.integralLimit = limit
}

// Update advances the controller by one cycle and returns the speed
// command in RPM, clamped to ±maxOutput.
//
// Callers must Reset on any discontinuous retargeting; the integral and
// previous-error state otherwise carry a kick into the new move.
func (c *PositionController) Update(targetPos, targetVel, targetAcc, actualPos, dt float64) float64 {
	err := targetPos - actualPos

	p := c.gains.Kp * err

	c.integral += err * dt
	if c.integralLimit > 0 {
		if c.integral > c.integralLimit {
			c.integral = c.integralLimit
		} else if c.integral < -c.integralLimit {
			c.integral = -c.integralLimit
		}
	}
	i := c.gains.Ki * c.integral

	d := c.gains.Kd * (err - c.prevError) / dt

	feedback := p + i + d

	// Velocity feedforward: deg/s to RPM is /360 revs, *60 per minute.
	ffVel := targetVel / 360 * 60 * c.gains.Kv
	ffAcc := targetAcc * c.gains.Ka

	out := feedback + ffVel + ffAcc
	if out > c.maxOutput {
		out = c.maxOutput
	} else if out < -c.maxOutput {
		out = -c.maxOutput
	}

	c.prevError = err
	return out
}

// Reset clears the integral accumulator and previous error.
func (c *PositionController) Reset() {
	c.integral = 0
	c.prevError = 0
}
