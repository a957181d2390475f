//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// PIO square-wave generator for the frequency-commanded drive. The
// program toggles one pin at a fixed 64 PIO cycles per wave; the output
// frequency is set entirely through the state machine clock divider, so
// the CPU does nothing while the wave runs.
//
// With a 125 MHz system clock the usable range is about 30 Hz to
// 1.9 MHz, comfortably covering the drive's pulse input.

// buildSquareWaveProgram creates the square-wave PIO program.
func buildSquareWaveProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Set(rp2pio.SetDestPins, 1).Delay(31).Encode(), // 0: set pins, 1 [31]
		asm.Set(rp2pio.SetDestPins, 0).Delay(31).Encode(), // 1: set pins, 0 [31]
		// .wrap
	}
}

// cyclesPerWave is the PIO cycle cost of one full output wave.
const cyclesPerWave = 64

const squareWaveOrigin = 0

// PIOFreqGen implements motor.FrequencyGenerator on one PIO state
// machine.
type PIOFreqGen struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	pin     machine.Pin
	cfg     rp2pio.StateMachineConfig
	offset  uint8
	running bool
}

// NewPIOFreqGen claims a state machine and loads the square-wave
// program. pioNum selects PIO0 or PIO1, smNum the state machine (0-3).
func NewPIOFreqGen(pioNum, smNum uint8, pin machine.Pin) (*PIOFreqGen, error) {
	g := &PIOFreqGen{pin: pin}
	if pioNum == 0 {
		g.pio = rp2pio.PIO0
	} else {
		g.pio = rp2pio.PIO1
	}
	g.sm = g.pio.StateMachine(smNum)
	g.sm.TryClaim()

	program := buildSquareWaveProgram()
	offset, err := g.pio.AddProgram(program, squareWaveOrigin)
	if err != nil {
		return nil, err
	}
	g.offset = offset

	g.pin.Configure(machine.PinConfig{Mode: g.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(g.pin, 1)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(0xFFFF, 0) // slowest until SetFrequency
	g.cfg = cfg

	g.sm.Init(offset, cfg)
	g.sm.SetPindirsConsecutive(g.pin, 1, true)
	g.sm.SetPinsConsecutive(g.pin, 1, false)
	return g, nil
}

// SetFrequency programs the output frequency in Hz by reconfiguring the
// state machine clock divider.
func (g *PIOFreqGen) SetFrequency(hz uint32) {
	if hz == 0 {
		return
	}

	// 16.8 fixed-point divider: sysclk / (hz * cyclesPerWave).
	clk := uint64(machine.CPUFrequency())
	div := clk * 256 / (uint64(hz) * cyclesPerWave)
	if div < 256 {
		div = 256 // divider below 1.0 is not representable
	}
	whole := div >> 8
	if whole > 0xFFFF {
		whole = 0xFFFF
		div = whole << 8
	}
	frac := div & 0xFF

	g.sm.SetEnabled(false)
	g.cfg.SetClkDivIntFrac(uint16(whole), uint8(frac))
	g.sm.Init(g.offset, g.cfg)
	if g.running {
		g.sm.SetEnabled(true)
	}
}

// Start implements motor.FrequencyGenerator.
func (g *PIOFreqGen) Start() {
	g.running = true
	g.sm.SetEnabled(true)
}

// Stop implements motor.FrequencyGenerator. The output pin parks low.
func (g *PIOFreqGen) Stop() {
	g.running = false
	g.sm.SetEnabled(false)
	g.sm.SetPinsConsecutive(g.pin, 1, false)
}
