// Package feedback turns a raw quadrature counter into a continuous
// position and velocity estimate for one joint.
package feedback

import "time"

// minVelocityInterval is the shortest wall-time span a velocity estimate
// may be computed over. Shorter spans amplify counter quantisation into
// large velocity spikes.
const minVelocityInterval = time.Millisecond

// Counter is the raw hardware interface of one quadrature encoder
// channel pair: a free-running counter that wraps at its period.
type Counter interface {
	// Count returns the current counter value in [0, Period-1].
	Count() uint32

	// Period returns the counter modulus: the number of distinct counter
	// states. The hardware counts 0 through Period-1 and wraps to zero.
	Period() uint32

	// Zero resets the hardware counter to zero.
	Zero()
}

// Config holds the scaling constants between encoder pulses and output
// shaft motion.
type Config struct {
	// PPR is the encoder resolution in pulses per motor revolution for
	// one channel, before quadrature decoding.
	PPR float64

	// GearRatio is the number of motor shaft revolutions per output
	// shaft revolution.
	GearRatio float64
}

// Estimator accumulates encoder pulses across hardware counter wraps and
// derives the output shaft angle and velocity. It has a single writer
// (the control cycle); readers go through the owning controller's
// snapshot.
type Estimator struct {
	counter Counter
	cfg     Config

	// Clock supplies the current time for velocity estimation. Tests and
	// the plant simulator replace it to drive virtual time; it defaults
	// to time.Now.
	Clock func() time.Time

	totalPulses int64
	lastRaw     uint32

	velocityRPM float64
	prevPulses  int64
	lastSample  time.Time
}

// NewEstimator creates an estimator reading from counter. A nil counter
// is allowed; Update and Reset then leave the hardware alone.
func NewEstimator(counter Counter, cfg Config) *Estimator {
	e := &Estimator{
		counter: counter,
		cfg:     cfg,
		Clock:   time.Now,
	}
	e.lastSample = e.Clock()
	return e
}

// Update samples the hardware counter, folds any wrap into the 64-bit
// pulse accumulator and refreshes the velocity estimate. Call it once
// per control cycle.
//
// The wrap correction assumes true movement never exceeds half the
// counter range within one sample interval: a jump larger than period/2
// is taken to be a wrap, not motion.
func (e *Estimator) Update() {
	if e.counter == nil {
		return
	}

	current := e.counter.Count()
	period := e.counter.Period()

	delta := int64(current) - int64(e.lastRaw)
	if delta > int64(period/2) {
		delta -= int64(period)
	} else if delta < -int64(period/2) {
		delta += int64(period)
	}

	e.totalPulses += delta
	e.lastRaw = current

	now := e.Clock()
	dt := now.Sub(e.lastSample)
	if dt < minVelocityInterval {
		return
	}

	pulsesPerRev := e.cfg.PPR * 4 * e.cfg.GearRatio
	if pulsesPerRev != 0 {
		revs := float64(e.totalPulses-e.prevPulses) / pulsesPerRev
		e.velocityRPM = revs / dt.Seconds() * 60
	}
	e.prevPulses = e.totalPulses
	e.lastSample = now
}

// Angle returns the output shaft angle in degrees accumulated since the
// last reset. A zero PPR or gear ratio reports 0 rather than dividing
// by zero.
func (e *Estimator) Angle() float64 {
	pulsesPerRev := e.cfg.PPR * 4 * e.cfg.GearRatio
	if pulsesPerRev == 0 {
		return 0
	}
	return float64(e.totalPulses) / pulsesPerRev * 360
}

// Velocity returns the most recent output shaft velocity estimate in RPM.
func (e *Estimator) Velocity() float64 {
	return e.velocityRPM
}

// Pulses returns the accumulated pulse count. Diagnostic use only.
func (e *Estimator) Pulses() int64 {
	return e.totalPulses
}

// Reset declares the current position to be zero degrees: accumulator,
// velocity baseline and estimate are cleared, the sample clock is
// re-stamped and the hardware counter is zeroed when present.
func (e *Estimator) Reset() {
	e.totalPulses = 0
	e.prevPulses = 0
	e.velocityRPM = 0
	e.lastSample = e.Clock()
	if e.counter != nil {
		e.counter.Zero()
		e.lastRaw = 0
	}
}
