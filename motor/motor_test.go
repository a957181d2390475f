package motor

import (
	"testing"

	"quill/arm/feedback"
)

func TestJointLatchesSpeedWhileDisabled(t *testing.T) {
	out := &MockOutput{}
	j := NewJoint("j1", out, &MockCounter{}, feedback.Config{PPR: 100, GearRatio: 50})

	j.SetSpeed(500)
	if out.SpeedCalls != 0 {
		t.Fatalf("speed forwarded while disabled")
	}
	if j.Command() != 500 {
		t.Fatalf("Command() = %d, want 500", j.Command())
	}

	j.Start()
	if !out.Enabled || out.Speed != 500 {
		t.Errorf("Start() did not re-apply latched command: enabled=%v speed=%d", out.Enabled, out.Speed)
	}

	j.SetSpeed(-250)
	if out.Speed != -250 {
		t.Errorf("enabled SetSpeed not forwarded: %d", out.Speed)
	}

	j.Stop()
	if out.Enabled {
		t.Errorf("Stop() left drive enabled")
	}
	if j.Command() != 0 {
		t.Errorf("Stop() left latched command %d", j.Command())
	}
}

func TestFreqOutputSpeedMapping(t *testing.T) {
	gen := &MockFreqGen{}
	dir := &MockPin{}
	start := &MockPin{}
	o := &FreqOutput{Gen: gen, Dir: dir, Start: start, MaxRPM: 6000, PulsesPerRev: 400}
	o.SetEnable(true)

	// 3000 RPM * 400 pulses/rev / 60 s = 20 kHz, clockwise (dir low).
	o.SetSpeed(3000)
	if gen.Hz != 20000 {
		t.Errorf("Hz = %d, want 20000", gen.Hz)
	}
	if dir.High {
		t.Errorf("direction pin high for CW")
	}
	if !gen.Running {
		t.Errorf("generator not running while enabled")
	}

	// Reverse sets the direction pin; magnitude unchanged.
	o.SetSpeed(-3000)
	if gen.Hz != 20000 || !dir.High {
		t.Errorf("reverse: Hz=%d dirHigh=%v", gen.Hz, dir.High)
	}

	// Above MaxRPM clamps.
	o.SetSpeed(9000)
	if gen.Hz != 6000*400/60 {
		t.Errorf("clamped Hz = %d, want %d", gen.Hz, 6000*400/60)
	}

	// Tiny speeds keep the drive above its minimum input frequency.
	o.SetSpeed(1)
	if gen.Hz != 100 {
		t.Errorf("minimum Hz = %d, want 100", gen.Hz)
	}

	// Zero halts the pulse train.
	o.SetSpeed(0)
	if gen.Running {
		t.Errorf("generator still running at zero speed")
	}
}

func TestFreqOutputEnableGating(t *testing.T) {
	gen := &MockFreqGen{}
	o := &FreqOutput{Gen: gen, Dir: &MockPin{}, Start: &MockPin{}, MaxRPM: 6000, PulsesPerRev: 400}

	o.SetSpeed(1000)
	if gen.Running {
		t.Errorf("pulse train running while disabled")
	}

	o.SetEnable(true)
	if !gen.Running {
		t.Errorf("enable did not start the pulse train")
	}

	o.SetEnable(false)
	if gen.Running {
		t.Errorf("disable did not stop the pulse train")
	}
}

func TestDutyOutputLowActiveMapping(t *testing.T) {
	pwm := &MockPWM{TopValue: 1000}
	dir := &MockPin{}
	brake := &MockPin{}
	o := &DutyOutput{PWM: pwm, Dir: dir, Brake: brake, MaxRPM: 6300}
	o.SetEnable(true)

	// Full speed: compare value 0 (low-active).
	o.SetSpeed(6300)
	if pwm.Value != 0 {
		t.Errorf("full speed compare = %d, want 0", pwm.Value)
	}
	if !dir.High {
		t.Errorf("direction pin low for CW")
	}

	// Half speed: compare at half of top.
	o.SetSpeed(3150)
	if pwm.Value != 500 {
		t.Errorf("half speed compare = %d, want 500", pwm.Value)
	}

	// Reverse flips the direction pin.
	o.SetSpeed(-3150)
	if dir.High {
		t.Errorf("direction pin high for CCW")
	}

	// Disable applies the brake and parks the duty at 100%.
	o.SetEnable(false)
	if brake.High {
		t.Errorf("brake pin high after disable")
	}
	if pwm.Value != 1000 {
		t.Errorf("parked compare = %d, want top", pwm.Value)
	}
}
