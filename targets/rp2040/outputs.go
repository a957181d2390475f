//go:build rp2040

package main

import "machine"

// GPIOPin adapts a machine pin to motor.DigitalPin.
type GPIOPin struct {
	pin machine.Pin
}

// NewGPIOPin configures pin as an output driven low.
func NewGPIOPin(pin machine.Pin) *GPIOPin {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &GPIOPin{pin: pin}
}

func (p *GPIOPin) Set(high bool) {
	if high {
		p.pin.High()
	} else {
		p.pin.Low()
	}
}

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type.
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// PWMChannel implements motor.PWMOutput on one RP2040 PWM slice
// channel.
type PWMChannel struct {
	pwm pwmPeripheral
	ch  uint8
}

// NewPWMChannel configures the slice for the given period and binds the
// pin's channel.
func NewPWMChannel(pwm pwmPeripheral, pin machine.Pin, periodNS uint64) (*PWMChannel, error) {
	if err := pwm.Configure(machine.PWMConfig{Period: periodNS}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	return &PWMChannel{pwm: pwm, ch: ch}, nil
}

func (c *PWMChannel) Top() uint32 { return c.pwm.Top() }

func (c *PWMChannel) Set(value uint32) { c.pwm.Set(c.ch, value) }

func (c *PWMChannel) Start() { c.pwm.Enable(true) }

func (c *PWMChannel) Stop() { c.pwm.Enable(false) }
