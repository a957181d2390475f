//go:build rp2040

// RP2040 firmware for the drawing arm: two gearmotor joints, quadrature
// feedback, a 1 kHz control loop and the line protocol on USB serial.
package main

import (
	"machine"
	"time"

	"quill/arm"
	"quill/arm/config"
	"quill/arm/feedback"
	"quill/command"
	"quill/motor"
)

// Pin assignment for the reference wiring.
const (
	// Joint 1: frequency-commanded drive.
	pinJ1Pulse = machine.GPIO2
	pinJ1Dir   = machine.GPIO3
	pinJ1Start = machine.GPIO4

	// Joint 2: duty-commanded drive.
	pinJ2PWM   = machine.GPIO6
	pinJ2Dir   = machine.GPIO7
	pinJ2Brake = machine.GPIO8

	// Encoders.
	pinJ1EncA = machine.GPIO10
	pinJ1EncB = machine.GPIO11
	pinJ2EncA = machine.GPIO12
	pinJ2EncB = machine.GPIO13
)

// freqPulsesPerRev is the frequency drive's command pulses per motor
// revolution.
const freqPulsesPerRev = 400

// dutyPWMPeriodNS gives a 25 kHz PWM carrier, above the drive's
// minimum.
const dutyPWMPeriodNS = 40000

func main() {
	time.Sleep(500 * time.Millisecond) // let USB enumerate

	cfg := config.Default()

	ctrl, err := buildController(cfg)
	if err != nil {
		fatal(err)
	}
	ctrl.Init()
	ctrl.ZeroEncoders()

	go commandLoop(ctrl)
	controlLoop(ctrl)
}

// buildController wires the hardware backends into the controller.
func buildController(cfg *config.Config) (*arm.Controller, error) {
	gen, err := NewPIOFreqGen(0, 0, pinJ1Pulse)
	if err != nil {
		return nil, err
	}
	out1 := &motor.FreqOutput{
		Gen:          gen,
		Dir:          NewGPIOPin(pinJ1Dir),
		Start:        NewGPIOPin(pinJ1Start),
		MaxRPM:       cfg.Joints[0].MaxRPM,
		PulsesPerRev: freqPulsesPerRev,
	}

	pwm, err := NewPWMChannel(machine.PWM3, pinJ2PWM, dutyPWMPeriodNS)
	if err != nil {
		return nil, err
	}
	out2 := &motor.DutyOutput{
		PWM:    pwm,
		Dir:    NewGPIOPin(pinJ2Dir),
		Brake:  NewGPIOPin(pinJ2Brake),
		MaxRPM: cfg.Joints[1].MaxRPM,
	}

	enc1, err := NewQuadratureCounter(pinJ1EncA, pinJ1EncB)
	if err != nil {
		return nil, err
	}
	enc2, err := NewQuadratureCounter(pinJ2EncA, pinJ2EncB)
	if err != nil {
		return nil, err
	}

	j1 := motor.NewJoint("joint1", out1, enc1, feedback.Config{
		PPR:       cfg.Joints[0].PPR,
		GearRatio: cfg.Joints[0].GearRatio,
	})
	j2 := motor.NewJoint("joint2", out2, enc2, feedback.Config{
		PPR:       cfg.Joints[1].PPR,
		GearRatio: cfg.Joints[1].GearRatio,
	})

	return arm.NewController(cfg, j1, j2), nil
}

// controlLoop runs the control cycle at 1 kHz with measured dt, so
// scheduling jitter does not skew the velocity and integral terms.
func controlLoop(ctrl *arm.Controller) {
	last := time.Now()
	for {
		time.Sleep(time.Millisecond)
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		ctrl.Loop(dt)
	}
}

// commandLoop drains USB serial at 10 Hz and executes complete protocol
// lines. Command latency is bounded by the poll period, which is fine
// for a console; the control loop never waits on it.
func commandLoop(ctrl *arm.Controller) {
	it := command.NewInterpreter(ctrl)
	line := make([]byte, 0, 64)

	for {
		for machine.Serial.Buffered() > 0 {
			b, err := machine.Serial.ReadByte()
			if err != nil {
				break
			}

			switch b {
			case '\n', '\r':
				if len(line) == 0 {
					continue
				}
				resp := it.Execute(string(line))
				line = line[:0]
				if resp != "" {
					machine.Serial.Write([]byte(resp + "\n"))
				}
			default:
				if len(line) < cap(line) {
					line = append(line, b)
				}
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func fatal(err error) {
	for {
		machine.Serial.Write([]byte("ERROR:init: " + err.Error() + "\n"))
		time.Sleep(time.Second)
	}
}
