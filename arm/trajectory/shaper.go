// Package trajectory derives smooth velocity and acceleration feedforward
// terms from a stream of position setpoints.
package trajectory

// DefaultAlpha is the low-pass coefficient for the velocity filter.
// Chosen empirically: low enough to damp setpoint-to-setpoint jitter,
// high enough to stay responsive at the control rate.
const DefaultAlpha = 0.7

// Shaper is a per-joint single-pole filter over the setpoint stream. It
// must be stepped exactly once per control cycle, even when the setpoint
// has not changed, so the derived velocity decays instead of freezing.
type Shaper struct {
	MaxVelocity float64 // velocity clamp (deg/s)
	MaxAccel    float64 // acceleration clamp (deg/s^2)
	Alpha       float64 // filter coefficient in (0, 1]

	prevTarget   float64
	prevVelocity float64
	velocity     float64
	accel        float64
}

// NewShaper creates a shaper with the default filter coefficient.
func NewShaper(maxVelocity, maxAccel float64) *Shaper {
	return &Shaper{
		MaxVelocity: maxVelocity,
		MaxAccel:    maxAccel,
		Alpha:       DefaultAlpha,
	}
}

// Update advances the filter with this cycle's setpoint (degrees) and
// cycle time dt (seconds).
func (s *Shaper) Update(target, dt float64) {
	raw := (target - s.prevTarget) / dt
	raw = clamp(raw, s.MaxVelocity)

	s.velocity = s.Alpha*raw + (1-s.Alpha)*s.prevVelocity

	s.accel = clamp((s.velocity-s.prevVelocity)/dt, s.MaxAccel)

	s.prevTarget = target
	s.prevVelocity = s.velocity
}

// Velocity returns the filtered setpoint velocity (deg/s).
func (s *Shaper) Velocity() float64 { return s.velocity }

// Acceleration returns the clamped setpoint acceleration (deg/s^2).
func (s *Shaper) Acceleration() float64 { return s.accel }

// Reset zeroes the filter memory.
func (s *Shaper) Reset() {
	s.ResetTo(0)
}

// ResetTo zeroes the velocity and acceleration memory but seats the
// filter at target, so the next update does not see a phantom setpoint
// jump. Used when control resumes at a nonzero position.
func (s *Shaper) ResetTo(target float64) {
	s.prevTarget = target
	s.prevVelocity = 0
	s.velocity = 0
	s.accel = 0
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
