package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/arm"
	"quill/arm/config"
	"quill/arm/feedback"
	"quill/motor"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"MOVE 10 20", Command{Kind: KindMove, X: 10, Y: 20}},
		{"move -5.5 120.25", Command{Kind: KindMove, X: -5.5, Y: 120.25}},
		{"TEST ON", Command{Kind: KindTest, On: true}},
		{"test off", Command{Kind: KindTest, On: false}},
		{"SPEED 1000 -500", Command{Kind: KindSpeed, RPM1: 1000, RPM2: -500}},
		{"STATUS", Command{Kind: KindStatus}},
		{"  ZERO  ", Command{Kind: KindZero}},
		{"STOP", Command{Kind: KindStop}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := Parse(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	lines := []string{
		"MOVE 10",
		"MOVE a b",
		"TEST",
		"TEST MAYBE",
		"SPEED 100",
		"SPEED x y",
		"SPEED 3000000000 0",
		"STATUS now",
		"ZERO all",
		"STOP it",
		"JUMP 1 2",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(line)
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyLine(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func newTestInterpreter(t *testing.T) (*Interpreter, *arm.Controller) {
	t.Helper()

	cfg := config.Default()
	now := time.Unix(0, 0)
	var joints [arm.NumJoints]*motor.Joint
	for i := range joints {
		joints[i] = motor.NewJoint("j", &motor.MockOutput{}, &motor.MockCounter{}, feedback.Config{
			PPR:       cfg.Joints[i].PPR,
			GearRatio: cfg.Joints[i].GearRatio,
		})
		joints[i].Feedback().Clock = func() time.Time { return now }
	}

	ctrl := arm.NewController(cfg, joints[0], joints[1])
	ctrl.Init()
	return NewInterpreter(ctrl), ctrl
}

func TestExecuteMove(t *testing.T) {
	it, ctrl := newTestInterpreter(t)

	resp := it.Execute("MOVE 0 150")
	assert.Equal(t, "OK:MOVE 0 150", resp)

	s := ctrl.Snapshot()
	assert.True(t, s.TargetActive)
	assert.Equal(t, 150.0, s.Target.Y)
}

func TestExecuteTestAndSpeed(t *testing.T) {
	it, ctrl := newTestInterpreter(t)

	// SPEED outside test mode is refused.
	assert.Equal(t, "ERROR:SPEED requires test mode", it.Execute("SPEED 500 500"))

	assert.Equal(t, "OK:TEST ON", it.Execute("TEST ON"))
	assert.Equal(t, "OK:SPEED 500 -300", it.Execute("SPEED 500 -300"))

	ctrl.Loop(0.001)
	s := ctrl.Snapshot()
	assert.Equal(t, arm.ModeTest, s.Mode)
	assert.Equal(t, [arm.NumJoints]int32{500, -300}, s.Commands)

	assert.Equal(t, "OK:TEST OFF", it.Execute("TEST OFF"))
	assert.Equal(t, arm.ModeCartesian, ctrl.Snapshot().Mode)
}

func TestExecuteStopAndZero(t *testing.T) {
	it, ctrl := newTestInterpreter(t)

	it.Execute("MOVE 0 150")
	assert.Equal(t, "OK:STOP", it.Execute("STOP"))
	assert.False(t, ctrl.Snapshot().TargetActive)

	assert.Equal(t, "OK:ZERO", it.Execute("ZERO"))
}

func TestExecuteStatus(t *testing.T) {
	it, _ := newTestInterpreter(t)

	resp := it.Execute("STATUS")
	assert.Contains(t, resp, "STATUS:mode=cartesian")
	assert.Contains(t, resp, "target=0.00,150.00")
	assert.Contains(t, resp, "active=false")
	assert.Contains(t, resp, "fence=false")
}

func TestExecuteErrorsAndBlank(t *testing.T) {
	it, _ := newTestInterpreter(t)

	assert.Equal(t, "", it.Execute(""))
	resp := it.Execute("WIBBLE")
	assert.Contains(t, resp, "ERROR:")
	assert.Contains(t, resp, "unknown command")
}
