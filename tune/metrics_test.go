package tune

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"quill/telemetry"
)

// synth builds a 2 s, 1 kHz step recording with actual(t) supplied by f.
func synth(target float64, f func(t float64) float64) []telemetry.Sample {
	samples := make([]telemetry.Sample, 2001)
	for i := range samples {
		t := float64(i) / 1000
		actual := f(t)
		samples[i] = telemetry.Sample{
			TimeMS: float64(i),
			Target: target,
			Actual: actual,
			Error:  target - actual,
		}
	}
	return samples
}

func TestAnalyzeFirstOrderResponse(t *testing.T) {
	// actual = 10(1 - e^(-t/0.1)): monotone, no overshoot.
	m := Analyze(synth(10, func(t float64) float64 {
		return 10 * (1 - math.Exp(-t/0.1))
	}))

	assert.InDelta(t, 1.0, m.IAE, 0.01)
	assert.InDelta(t, 5.0, m.ISE, 0.05)
	assert.InDelta(t, 0.1, m.ITAE, 0.005)
	assert.InDelta(t, 10, m.MaxError, 1e-9)
	assert.Less(t, m.SteadyStateError, 0.001)

	assert.Zero(t, m.OvershootPercent)
	assert.Equal(t, -1.0, m.PeakTimeMS)
	assert.InDelta(t, 220, m.RiseTimeMS, 2)
	assert.InDelta(t, 391, m.SettlingTimeMS, 2)

	assert.True(t, m.Stable)
	assert.False(t, m.Oscillating)
}

func TestAnalyzeUnderdampedResponse(t *testing.T) {
	// Damped 5 Hz ringing around the target.
	m := Analyze(synth(10, func(t float64) float64 {
		return 10 * (1 - math.Exp(-5*t)*math.Cos(10*math.Pi*t))
	}))

	assert.InDelta(t, 61.4, m.OvershootPercent, 0.5)
	assert.InDelta(t, 95, m.PeakTimeMS, 3)
	assert.Positive(t, m.RiseTimeMS)

	assert.Greater(t, m.SettlingTimeMS, 700.0)
	assert.Less(t, m.SettlingTimeMS, 800.0)

	assert.True(t, m.Oscillating)
	assert.True(t, m.Stable)
}

func TestAnalyzeNeverSettles(t *testing.T) {
	// Growing oscillation on top of the step: the recording ends far
	// outside the settling band.
	m := Analyze(synth(10, func(t float64) float64 {
		return 10*(1-math.Exp(-5*t)) + 3*t*math.Sin(2*math.Pi*5.1*t)
	}))

	assert.Equal(t, -1.0, m.SettlingTimeMS)
	assert.False(t, m.Stable)
	assert.True(t, m.Oscillating)
	assert.Greater(t, m.OvershootPercent, 10.0)
}

func TestAnalyzeFlatRecording(t *testing.T) {
	// No step at all: only the integral criteria are meaningful.
	m := Analyze(synth(10, func(t float64) float64 { return 10 }))

	assert.Zero(t, m.IAE)
	assert.Zero(t, m.OvershootPercent)
	assert.Equal(t, -1.0, m.RiseTimeMS)
	assert.Equal(t, -1.0, m.SettlingTimeMS)
}

func TestAnalyzeTooShort(t *testing.T) {
	m := Analyze([]telemetry.Sample{{TimeMS: 0, Target: 1}})
	assert.Equal(t, -1.0, m.RiseTimeMS)
	assert.Equal(t, -1.0, m.SettlingTimeMS)
	assert.Zero(t, m.IAE)
}
