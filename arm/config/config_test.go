package config

import "testing"

func TestLoadEmptyUsesDefaults(t *testing.T) {
	cfg, err := Load([]byte(`{}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := Default()
	if cfg.Linkage != def.Linkage {
		t.Errorf("linkage = %+v, want %+v", cfg.Linkage, def.Linkage)
	}
	if cfg.Joints[0].Kp != 5 || cfg.Joints[1].Kp != 8 {
		t.Errorf("joint gains not defaulted: %+v", cfg.Joints)
	}
	if cfg.FenceY != 10 || cfg.ElbowMode != 1 {
		t.Errorf("fence/elbow not defaulted: fence=%v elbow=%d", cfg.FenceY, cfg.ElbowMode)
	}
	if cfg.DefaultTargetY != 150 {
		t.Errorf("default target not applied: %v", cfg.DefaultTargetY)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load([]byte(`{
		"linkage": {"l1": 120, "l2": 180, "d": 80},
		"joints": [
			{"kp": 3, "ki": 0.05, "kd": 0.01, "max_output": 2000},
			{"gear_ratio": 20}
		],
		"fence_y": 15,
		"elbow_mode": -1
	}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Linkage.L1 != 120 || cfg.Linkage.L2 != 180 || cfg.Linkage.D != 80 {
		t.Errorf("linkage override lost: %+v", cfg.Linkage)
	}
	if cfg.Joints[0].Kp != 3 || cfg.Joints[0].MaxOutput != 2000 {
		t.Errorf("joint 0 override lost: %+v", cfg.Joints[0])
	}
	// Unset fields within an overridden joint still default.
	if cfg.Joints[0].GearRatio != 50 || cfg.Joints[1].GearRatio != 20 {
		t.Errorf("gear ratios: %v, %v", cfg.Joints[0].GearRatio, cfg.Joints[1].GearRatio)
	}
	if cfg.FenceY != 15 || cfg.ElbowMode != -1 {
		t.Errorf("fence/elbow overrides lost: fence=%v elbow=%d", cfg.FenceY, cfg.ElbowMode)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load([]byte(`{"elbow_mode": 2}`)); err == nil {
		t.Errorf("expected error for elbow_mode 2")
	}
	if _, err := Load([]byte(`not json`)); err == nil {
		t.Errorf("expected error for malformed JSON")
	}
	if _, err := Load([]byte(`{"linkage": {"l1": -5, "l2": 150, "d": 60}}`)); err == nil {
		t.Errorf("expected error for negative linkage dimension")
	}
}
