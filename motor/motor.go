// Package motor couples a speed-controlled gearmotor drive with its
// encoder feedback into the per-joint operations the control loop
// consumes.
package motor

import "quill/arm/feedback"

// Joint is one motorised joint of the arm: an Output for commanding the
// drive and an Estimator for reading it back. All methods are called
// from the control cycle only.
type Joint struct {
	name string
	out  Output
	est  *feedback.Estimator

	rpmCmd  int32
	enabled bool
}

// NewJoint creates a joint named name over the given drive output and
// encoder counter.
func NewJoint(name string, out Output, counter feedback.Counter, cfg feedback.Config) *Joint {
	return &Joint{
		name: name,
		out:  out,
		est:  feedback.NewEstimator(counter, cfg),
	}
}

// Name returns the joint's configured name.
func (j *Joint) Name() string { return j.name }

// Feedback exposes the joint's estimator, mainly so callers can install
// a virtual clock.
func (j *Joint) Feedback() *feedback.Estimator { return j.est }

// Update refreshes the encoder-derived position and velocity. Call once
// per control cycle.
func (j *Joint) Update() { j.est.Update() }

// Angle returns the output shaft angle in degrees.
func (j *Joint) Angle() float64 { return j.est.Angle() }

// Velocity returns the measured output shaft velocity in RPM.
func (j *Joint) Velocity() float64 { return j.est.Velocity() }

// ResetEncoder declares the current position to be zero degrees.
func (j *Joint) ResetEncoder() { j.est.Reset() }

// SetSpeed latches the speed command and forwards it to the drive while
// enabled. Commands sent while disabled take effect on the next Start.
func (j *Joint) SetSpeed(rpm int32) {
	j.rpmCmd = rpm
	if j.enabled {
		j.out.SetSpeed(rpm)
	}
}

// Start enables the drive and re-applies the latched speed command.
func (j *Joint) Start() {
	j.enabled = true
	j.out.SetEnable(true)
	j.out.SetSpeed(j.rpmCmd)
}

// Stop zeroes the latched command and disables the drive.
func (j *Joint) Stop() {
	j.enabled = false
	j.rpmCmd = 0
	j.out.SetEnable(false)
}

// Enabled reports whether the drive is currently enabled.
func (j *Joint) Enabled() bool { return j.enabled }

// Command returns the latched speed command in RPM.
func (j *Joint) Command() int32 { return j.rpmCmd }
