// Package arm is the motion-control core of the two-joint five-bar
// drawing arm. The Controller composes feedback, kinematics, trajectory
// shaping and the position controllers into one fixed-rate cycle.
package arm

import "quill/arm/kinematics"

// NumJoints is the number of motorised joints on the arm.
const NumJoints = 2

// Mode selects what the control cycle does with the motors.
type Mode uint8

const (
	// ModeCartesian closes the loop on a Cartesian pen target through
	// inverse kinematics, shaping and the position controllers.
	ModeCartesian Mode = iota

	// ModeTest passes externally supplied raw speeds straight to the
	// drives; kinematics and control state are left untouched.
	ModeTest
)

func (m Mode) String() string {
	switch m {
	case ModeCartesian:
		return "cartesian"
	case ModeTest:
		return "test"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the controller state for telemetry
// and diagnostics readers. It is taken under the controller lock so a
// lower-rate reader never observes a half-updated cycle.
type Snapshot struct {
	Mode Mode

	// Per-joint measured state (degrees, output-shaft RPM).
	Angles     [NumJoints]float64
	Velocities [NumJoints]float64

	// Per-joint commanded state.
	Setpoints [NumJoints]float64 // deg
	Commands  [NumJoints]int32   // RPM, as dispatched
	Enabled   [NumJoints]bool

	// Cartesian target.
	Target       kinematics.Point
	TargetActive bool

	// Safety fence.
	FenceBreached bool   // true while the current cycle is fenced off
	FenceEvents   uint64 // total cycles short-circuited by the fence
}
