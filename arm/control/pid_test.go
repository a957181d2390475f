package control

import (
	"math"
	"testing"
)

func TestReducesToPurePID(t *testing.T) {
	// With Kv=Ka=0 and zero trajectory terms the output is exactly the
	// textbook PID formula.
	c := NewPositionController(Gains{Kp: 2, Ki: 0.5, Kd: 0.1}, 1e9)

	dt := 0.01
	var integral, prevErr float64
	for i, actual := range []float64{0, 2, 5, 9} {
		target := 10.0
		err := target - actual
		integral += err * dt
		want := 2*err + 0.5*integral + 0.1*(err-prevErr)/dt
		prevErr = err

		got := c.Update(target, 0, 0, actual, dt)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("cycle %d: Update() = %v, want %v", i, got, want)
		}
	}
}

func TestOutputSaturation(t *testing.T) {
	c := NewPositionController(Gains{Kp: 100}, 3000)

	if got := c.Update(1000, 0, 0, 0, 0.001); got != 3000 {
		t.Errorf("positive saturation: got %v, want 3000", got)
	}
	c.Reset()
	if got := c.Update(-1000, 0, 0, 0, 0.001); got != -3000 {
		t.Errorf("negative saturation: got %v, want -3000", got)
	}
}

func TestVelocityFeedforwardConversion(t *testing.T) {
	// Pure feedforward: 360 deg/s is one revolution per second, i.e.
	// 60 RPM at Kv=1.
	c := NewPositionController(Gains{Kv: 1}, 1e9)
	if got := c.Update(0, 360, 0, 0, 0.001); math.Abs(got-60) > 1e-9 {
		t.Errorf("Update() = %v, want 60", got)
	}
}

func TestAccelerationFeedforward(t *testing.T) {
	c := NewPositionController(Gains{Ka: 0.1}, 1e9)
	if got := c.Update(0, 0, 1800, 0, 0.001); math.Abs(got-180) > 1e-9 {
		t.Errorf("Update() = %v, want 180", got)
	}
}

func TestIntegralUnboundedByDefault(t *testing.T) {
	c := NewPositionController(Gains{Ki: 1}, 1e18)

	// Constant error of 100 deg for 1000 cycles of 1ms: the integral
	// term alone reaches 100 deg*s.
	var out float64
	for i := 0; i < 1000; i++ {
		out = c.Update(100, 0, 0, 0, 0.001)
	}
	if math.Abs(out-100) > 1e-6 {
		t.Errorf("integral output = %v, want 100", out)
	}
}

func TestIntegralClampWhenConfigured(t *testing.T) {
	c := NewPositionController(Gains{Ki: 1}, 1e18)
	c.SetIntegralLimit(0.05)

	var out float64
	for i := 0; i < 1000; i++ {
		out = c.Update(100, 0, 0, 0, 0.001)
	}
	if math.Abs(out-0.05) > 1e-9 {
		t.Errorf("clamped integral output = %v, want 0.05", out)
	}
}

func TestReset(t *testing.T) {
	c := NewPositionController(Gains{Kp: 1, Ki: 1, Kd: 1}, 1e9)
	c.Update(10, 0, 0, 0, 0.01)
	c.Reset()

	// After a reset the derivative sees no previous error and the
	// integral restarts from zero.
	got := c.Update(10, 0, 0, 0, 0.01)
	want := 1*10.0 + 1*10.0*0.01 + 1*(10.0-0)/0.01
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Update() after reset = %v, want %v", got, want)
	}
}
