package motor

// Output is the speed/enable capability of one motor drive. The two
// gearmotors on the arm speak different electrical dialects, so the
// concrete variant is chosen at construction; everything above this
// interface is drive-agnostic.
type Output interface {
	// SetSpeed commands a signed motor shaft speed in RPM.
	SetSpeed(rpm int32)

	// SetEnable runs (true) or brakes/disables (false) the drive.
	SetEnable(enable bool)
}

// minCommandHz keeps the frequency-commanded drive above its minimum
// input frequency; commands below it would stall the internal
// commutation.
const minCommandHz = 100

// FreqOutput drives a frequency-commanded motor (the 13-pin Nidec
// style): speed is a pulse train at RPM*PulsesPerRev/60 Hz, direction is
// a dedicated pin (low = clockwise), and a START pin gates the drive.
type FreqOutput struct {
	Gen    FrequencyGenerator
	Dir    DigitalPin
	Start  DigitalPin
	MaxRPM uint32

	// PulsesPerRev is the drive's command pulses per motor revolution
	// (400 for the reference motor).
	PulsesPerRev uint32

	enabled bool
}

// SetSpeed programs the pulse train for the requested speed. Zero stops
// the pulse train entirely.
func (o *FreqOutput) SetSpeed(rpm int32) {
	if rpm == 0 {
		o.Gen.Stop()
		return
	}

	cw := rpm >= 0
	o.Dir.Set(!cw) // low = CW

	abs := uint32(rpm)
	if !cw {
		abs = uint32(-rpm)
	}
	if abs > o.MaxRPM {
		abs = o.MaxRPM
	}

	hz := abs * o.PulsesPerRev / 60
	if hz < minCommandHz {
		hz = minCommandHz
	}
	o.Gen.SetFrequency(hz)

	if o.enabled {
		o.Gen.Start()
	}
}

// SetEnable drives the START pin and gates the pulse train.
func (o *FreqOutput) SetEnable(enable bool) {
	o.enabled = enable
	o.Start.Set(enable)
	if enable {
		o.Gen.Start()
	} else {
		o.Gen.Stop()
	}
}

// DutyOutput drives a duty-commanded motor (the 8-pin Nidec style). The
// speed input is low-active PWM: full speed at 0% duty, stopped at 100%.
// Direction is a dedicated pin (high = clockwise) and a BRAKE pin gates
// the drive (low = brake).
type DutyOutput struct {
	PWM    PWMOutput
	Dir    DigitalPin
	Brake  DigitalPin
	MaxRPM uint32
}

// SetSpeed programs the low-active duty for the requested speed.
func (o *DutyOutput) SetSpeed(rpm int32) {
	cw := rpm >= 0
	o.Dir.Set(cw) // high = CW

	abs := uint32(rpm)
	if !cw {
		abs = uint32(-rpm)
	}
	if abs > o.MaxRPM {
		abs = o.MaxRPM
	}

	ratio := float64(abs) / float64(o.MaxRPM)
	top := o.PWM.Top()
	o.PWM.Set(uint32(float64(top) * (1 - ratio)))
}

// SetEnable releases (true) or applies (false) the brake. Disabling also
// parks the PWM at 100% duty so a later enable does not jump.
func (o *DutyOutput) SetEnable(enable bool) {
	o.Brake.Set(enable) // low = brake
	if enable {
		o.PWM.Start()
	} else {
		o.PWM.Set(o.PWM.Top())
	}
}
