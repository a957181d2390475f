package motor

// Test doubles for the HAL and Output interfaces. Exported so that the
// arm and command packages can drive a full controller without hardware.

// MockPin records the last level written to it.
type MockPin struct {
	High   bool
	Writes int
}

func (p *MockPin) Set(high bool) {
	p.High = high
	p.Writes++
}

// MockFreqGen records frequency programming and start/stop gating.
type MockFreqGen struct {
	Hz      uint32
	Running bool
}

func (g *MockFreqGen) SetFrequency(hz uint32) { g.Hz = hz }
func (g *MockFreqGen) Start()                 { g.Running = true }
func (g *MockFreqGen) Stop()                  { g.Running = false }

// MockPWM is a PWM channel with a fixed top value.
type MockPWM struct {
	TopValue uint32
	Value    uint32
	Running  bool
}

func (p *MockPWM) Top() uint32      { return p.TopValue }
func (p *MockPWM) Set(value uint32) { p.Value = value }
func (p *MockPWM) Start()           { p.Running = true }
func (p *MockPWM) Stop()            { p.Running = false }

// MockOutput records drive commands at the Output level.
type MockOutput struct {
	Speed      int32
	Enabled    bool
	SpeedCalls int
	StopCalls  int
}

func (o *MockOutput) SetSpeed(rpm int32) {
	o.Speed = rpm
	o.SpeedCalls++
}

func (o *MockOutput) SetEnable(enable bool) {
	o.Enabled = enable
	if !enable {
		o.StopCalls++
	}
}

// MockCounter is a scriptable encoder counter.
type MockCounter struct {
	Value   uint32
	Modulus uint32
	Zeroed  int
}

func (c *MockCounter) Count() uint32 { return c.Value }

func (c *MockCounter) Period() uint32 {
	if c.Modulus == 0 {
		return 65536
	}
	return c.Modulus
}

func (c *MockCounter) Zero() {
	c.Value = 0
	c.Zeroed++
}
