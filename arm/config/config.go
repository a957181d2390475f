// Package config loads the machine configuration for the drawing arm.
package config

import (
	"encoding/json"
	"errors"
)

// LinkageConfig holds the five-bar geometry (mm).
type LinkageConfig struct {
	L1 float64 `json:"l1"` // active arm length
	L2 float64 `json:"l2"` // driven arm length
	D  float64 `json:"d"`  // inter-motor distance
}

// JointConfig holds everything specific to one motorised joint.
type JointConfig struct {
	// Drive
	MaxRPM uint32 `json:"max_rpm"`

	// Encoder
	PPR       float64 `json:"encoder_ppr"`
	GearRatio float64 `json:"gear_ratio"`

	// Controller gains
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
	Kv float64 `json:"kv"`
	Ka float64 `json:"ka"`

	// MaxOutput clamps the controller's speed command (RPM).
	MaxOutput float64 `json:"max_output"`

	// IntegralLimit bounds the integral accumulator; 0 leaves it
	// unbounded.
	IntegralLimit float64 `json:"integral_limit"`
}

// Config is the complete machine configuration.
type Config struct {
	Linkage LinkageConfig  `json:"linkage"`
	Joints  [2]JointConfig `json:"joints"`

	// Trajectory shaping limits, shared by both joints.
	MaxVelocity float64 `json:"max_velocity"` // deg/s
	MaxAccel    float64 `json:"max_accel"`    // deg/s^2

	// ElbowMode selects the inverse-kinematics branch (+1 or -1).
	ElbowMode int `json:"elbow_mode"`

	// FenceY is the safety fence: forward-solved pen positions below
	// this Y (mm) force a stop while a Cartesian target is active.
	FenceY float64 `json:"fence_y"`

	// Default hold target after Init (mm).
	DefaultTargetX float64 `json:"default_target_x"`
	DefaultTargetY float64 `json:"default_target_y"`
}

// Load parses a JSON configuration and fills in defaults for omitted
// values.
func Load(jsonData []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Linkage.L1 == 0 {
		cfg.Linkage.L1 = def.Linkage.L1
	}
	if cfg.Linkage.L2 == 0 {
		cfg.Linkage.L2 = def.Linkage.L2
	}
	if cfg.Linkage.D == 0 {
		cfg.Linkage.D = def.Linkage.D
	}

	for i := range cfg.Joints {
		j := &cfg.Joints[i]
		d := def.Joints[i]
		if j.MaxRPM == 0 {
			j.MaxRPM = d.MaxRPM
		}
		if j.PPR == 0 {
			j.PPR = d.PPR
		}
		if j.GearRatio == 0 {
			j.GearRatio = d.GearRatio
		}
		if j.MaxOutput == 0 {
			j.MaxOutput = d.MaxOutput
		}
		if j.Kp == 0 && j.Ki == 0 && j.Kd == 0 {
			j.Kp, j.Ki, j.Kd = d.Kp, d.Ki, d.Kd
		}
		if j.Kv == 0 {
			j.Kv = d.Kv
		}
		if j.Ka == 0 {
			j.Ka = d.Ka
		}
	}

	if cfg.MaxVelocity == 0 {
		cfg.MaxVelocity = def.MaxVelocity
	}
	if cfg.MaxAccel == 0 {
		cfg.MaxAccel = def.MaxAccel
	}
	if cfg.ElbowMode == 0 {
		cfg.ElbowMode = def.ElbowMode
	}
	if cfg.FenceY == 0 {
		cfg.FenceY = def.FenceY
	}
	if cfg.DefaultTargetX == 0 && cfg.DefaultTargetY == 0 {
		cfg.DefaultTargetX = def.DefaultTargetX
		cfg.DefaultTargetY = def.DefaultTargetY
	}
}

func validate(cfg *Config) error {
	if cfg.Linkage.L1 <= 0 || cfg.Linkage.L2 <= 0 || cfg.Linkage.D <= 0 {
		return errors.New("linkage dimensions must be positive")
	}
	if cfg.ElbowMode != 1 && cfg.ElbowMode != -1 {
		return errors.New("elbow_mode must be 1 or -1")
	}
	return nil
}

// Default returns the reference machine's configuration: a 100/150 mm
// linkage on 60 mm motor spacing, a 50:1 frequency-commanded joint and a
// 30:1 duty-commanded joint, both with 100 PPR encoders.
func Default() *Config {
	return &Config{
		Linkage: LinkageConfig{L1: 100, L2: 150, D: 60},
		Joints: [2]JointConfig{
			{
				MaxRPM:    6000,
				PPR:       100,
				GearRatio: 50,
				Kp:        5, Ki: 0.1, Kd: 0,
				Kv: 1, Ka: 0.1,
				MaxOutput: 3000,
			},
			{
				MaxRPM:    6300,
				PPR:       100,
				GearRatio: 30,
				Kp:        8, Ki: 0.2, Kd: 0,
				Kv: 1, Ka: 0.15,
				MaxOutput: 4000,
			},
		},
		MaxVelocity:    360,
		MaxAccel:       1800,
		ElbowMode:      1,
		FenceY:         10,
		DefaultTargetX: 0,
		DefaultTargetY: 150,
	}
}
