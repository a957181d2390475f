// Package tune computes step-response quality metrics from recorded
// telemetry, for offline gain tuning of the position controllers.
package tune

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"quill/telemetry"
)

// Metrics summarises one joint's step response. Time-domain metrics are
// in milliseconds; a value of -1 means the event never happened within
// the recording.
type Metrics struct {
	// Integral criteria over the whole recording (error in deg, time
	// in seconds, trapezoidal integration).
	IAE  float64 // integral of |error|
	ISE  float64 // integral of error^2
	ITAE float64 // integral of t*|error|

	MaxError         float64 // largest |error| anywhere in the recording
	SteadyStateError float64 // mean |error| over the last 10% of samples

	OvershootPercent float64 // peak excursion past the target, in % of the step
	RiseTimeMS       float64 // 10% to 90% of the step
	SettlingTimeMS   float64 // last departure from the +-2% band
	PeakTimeMS       float64 // time of the largest excursion in the step direction

	Stable      bool // settled, with small steady-state error
	Oscillating bool // error repeatedly changes sign
}

const (
	settlingBandFraction = 0.02
	riseLowFraction      = 0.1
	riseHighFraction     = 0.9
	oscillationCrossings = 4
)

// Analyze computes metrics for one joint's recording. The recording is
// assumed to be a step response: the target column holds the (final)
// step value and the first sample's actual is the starting point.
func Analyze(samples []telemetry.Sample) Metrics {
	m := Metrics{RiseTimeMS: -1, SettlingTimeMS: -1, PeakTimeMS: -1}
	if len(samples) < 2 {
		return m
	}

	target := samples[len(samples)-1].Target
	initial := samples[0].Actual
	step := target - initial

	var crossings int
	var peakExcursion float64

	for i, s := range samples {
		e := s.Target - s.Actual
		if a := math.Abs(e); a > m.MaxError {
			m.MaxError = a
		}

		if i > 0 {
			prev := samples[i-1]
			pe := prev.Target - prev.Actual
			dt := (s.TimeMS - prev.TimeMS) / 1000
			if dt > 0 {
				m.IAE += (math.Abs(pe) + math.Abs(e)) / 2 * dt
				m.ISE += (pe*pe + e*e) / 2 * dt
				m.ITAE += (prev.TimeMS/1000*math.Abs(pe) + s.TimeMS/1000*math.Abs(e)) / 2 * dt
			}
			if pe*e < 0 {
				crossings++
			}
		}

		// Excursion in the direction of the step, measured past the
		// target. Positive means overshoot.
		if step != 0 {
			if exc := (s.Actual - target) * sign(step); exc > peakExcursion {
				peakExcursion = exc
				m.PeakTimeMS = s.TimeMS
			}
		}
	}

	m.SteadyStateError = tailMeanAbsError(samples)
	m.Oscillating = crossings >= oscillationCrossings

	if math.Abs(step) < 1e-9 {
		return m
	}

	m.OvershootPercent = math.Max(0, peakExcursion) / math.Abs(step) * 100
	m.RiseTimeMS = riseTime(samples, initial, step)
	m.SettlingTimeMS = settlingTime(samples, target, step)
	m.Stable = m.SettlingTimeMS >= 0 &&
		m.SteadyStateError <= settlingBandFraction*math.Abs(step)
	return m
}

// riseTime returns the 10%-to-90% rise time, or -1 if the response
// never reached 90% of the step.
func riseTime(samples []telemetry.Sample, initial, step float64) float64 {
	lo := initial + riseLowFraction*step
	hi := initial + riseHighFraction*step

	tLo, tHi := -1.0, -1.0
	for _, s := range samples {
		progress := (s.Actual - initial) * sign(step)
		if tLo < 0 && progress >= (lo-initial)*sign(step) {
			tLo = s.TimeMS
		}
		if progress >= (hi-initial)*sign(step) {
			tHi = s.TimeMS
			break
		}
	}
	if tLo < 0 || tHi < 0 {
		return -1
	}
	return tHi - tLo
}

// settlingTime returns the time after which the error stays inside the
// +-2% band, or -1 if the recording ends outside the band.
func settlingTime(samples []telemetry.Sample, target, step float64) float64 {
	band := settlingBandFraction * math.Abs(step)
	last := -1.0
	for _, s := range samples {
		if math.Abs(target-s.Actual) > band {
			last = s.TimeMS
		}
	}
	if last < 0 {
		return samples[0].TimeMS
	}
	if last >= samples[len(samples)-1].TimeMS {
		return -1 // still outside the band at the end
	}
	return last
}

// tailMeanAbsError averages |error| over the last 10% of the recording.
func tailMeanAbsError(samples []telemetry.Sample) float64 {
	n := len(samples) / 10
	if n < 1 {
		n = 1
	}
	tail := samples[len(samples)-n:]
	abs := make([]float64, len(tail))
	for i, s := range tail {
		abs[i] = math.Abs(s.Target - s.Actual)
	}
	return stat.Mean(abs, nil)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
