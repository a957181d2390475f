package command

import (
	"fmt"

	"quill/arm"
)

// Interpreter executes parsed commands against a controller and formats
// the single-line responses. Every response is "TYPE:message" where
// TYPE is OK, ERROR or STATUS, so a host can classify lines without
// knowing every verb.
type Interpreter struct {
	ctrl *arm.Controller
}

// NewInterpreter creates an interpreter driving ctrl.
func NewInterpreter(ctrl *arm.Controller) *Interpreter {
	return &Interpreter{ctrl: ctrl}
}

// Execute parses and applies one protocol line and returns the response
// line (without trailing newline). Blank lines yield an empty response.
func (it *Interpreter) Execute(line string) string {
	cmd, err := Parse(line)
	if err == ErrEmpty {
		return ""
	}
	if err != nil {
		return fmt.Sprintf("ERROR:%v", err)
	}
	return it.Apply(cmd)
}

// Apply executes an already-parsed command.
func (it *Interpreter) Apply(cmd Command) string {
	switch cmd.Kind {
	case KindMove:
		it.ctrl.SetTargetPosition(cmd.X, cmd.Y)
		return fmt.Sprintf("OK:MOVE %g %g", cmd.X, cmd.Y)

	case KindTest:
		it.ctrl.SetTestMode(cmd.On)
		if cmd.On {
			return "OK:TEST ON"
		}
		return "OK:TEST OFF"

	case KindSpeed:
		if it.ctrl.Snapshot().Mode != arm.ModeTest {
			return "ERROR:SPEED requires test mode"
		}
		it.ctrl.SetTestSpeed(cmd.RPM1, cmd.RPM2)
		return fmt.Sprintf("OK:SPEED %d %d", cmd.RPM1, cmd.RPM2)

	case KindStatus:
		return formatStatus(it.ctrl.Snapshot())

	case KindZero:
		it.ctrl.ZeroEncoders()
		return "OK:ZERO"

	case KindStop:
		it.ctrl.Halt()
		return "OK:STOP"
	}

	return fmt.Sprintf("ERROR:unhandled command kind %d", cmd.Kind)
}

func formatStatus(s arm.Snapshot) string {
	return fmt.Sprintf(
		"STATUS:mode=%s target=%.2f,%.2f active=%t angles=%.2f,%.2f velocities=%.1f,%.1f commands=%d,%d fence=%t fence_events=%d",
		s.Mode,
		s.Target.X, s.Target.Y, s.TargetActive,
		s.Angles[0], s.Angles[1],
		s.Velocities[0], s.Velocities[1],
		s.Commands[0], s.Commands[1],
		s.FenceBreached, s.FenceEvents,
	)
}
