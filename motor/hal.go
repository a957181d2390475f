package motor

// Hardware abstraction interfaces implemented by the target build (real
// pins and timers) and by mocks/simulation on the host.

// DigitalPin is a single output pin.
type DigitalPin interface {
	// Set drives the pin high (true) or low (false).
	Set(high bool)
}

// FrequencyGenerator produces a square wave for frequency-commanded
// drives. Start/Stop gate the output without losing the programmed
// frequency.
type FrequencyGenerator interface {
	// SetFrequency programs the output frequency in Hz.
	SetFrequency(hz uint32)
	Start()
	Stop()
}

// PWMOutput is one PWM channel for duty-commanded drives.
type PWMOutput interface {
	// Top returns the counter wrap value; duty is Set(value) out of Top.
	Top() uint32

	// Set programs the compare value in [0, Top].
	Set(value uint32)
	Start()
	Stop()
}
