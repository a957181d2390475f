package arm

import (
	"sync"

	"quill/arm/config"
	"quill/arm/control"
	"quill/arm/kinematics"
	"quill/arm/trajectory"
	"quill/motor"
)

// Controller owns all per-joint state of one arm and runs the control
// cycle. An external scheduler calls Loop at a bounded, approximately
// constant period (1 kHz on the reference hardware); the cycle body
// performs no allocation and never blocks.
//
// Loop and the command entry points are serialised by an internal lock,
// so a lower-priority reader can take Snapshots while the cycle runs.
type Controller struct {
	mu sync.Mutex

	geom   kinematics.Geometry
	elbow  kinematics.ElbowMode
	fenceY float64

	joints  [NumJoints]*motor.Joint
	shapers [NumJoints]*trajectory.Shaper
	pids    [NumJoints]*control.PositionController

	mode         Mode
	target       kinematics.Point
	targetActive bool
	testRPM      [NumJoints]int32

	setpoint [NumJoints]float64 // this cycle's joint setpoints (deg)
	command  [NumJoints]int32   // last dispatched speed commands

	fenceBreached bool
	fenceEvents   uint64

	defaultTarget kinematics.Point
}

// NewController wires a controller from the machine configuration and
// the two joints. The joints' drive and encoder backends are chosen by
// the caller (hardware, mock or simulation).
func NewController(cfg *config.Config, joint1, joint2 *motor.Joint) *Controller {
	c := &Controller{
		geom:          kinematics.NewGeometry(cfg.Linkage.L1, cfg.Linkage.L2, cfg.Linkage.D),
		elbow:         kinematics.ElbowMode(cfg.ElbowMode),
		fenceY:        cfg.FenceY,
		joints:        [NumJoints]*motor.Joint{joint1, joint2},
		defaultTarget: kinematics.Point{X: cfg.DefaultTargetX, Y: cfg.DefaultTargetY},
	}

	for i := range c.joints {
		jc := cfg.Joints[i]
		c.shapers[i] = trajectory.NewShaper(cfg.MaxVelocity, cfg.MaxAccel)
		c.pids[i] = control.NewPositionController(control.Gains{
			Kp: jc.Kp, Ki: jc.Ki, Kd: jc.Kd, Kv: jc.Kv, Ka: jc.Ka,
		}, jc.MaxOutput)
		if jc.IntegralLimit > 0 {
			c.pids[i].SetIntegralLimit(jc.IntegralLimit)
		}
	}
	return c
}

// Init resets controller and shaper state for both joints and restores
// the default hold target. It does not move the arm: the target-active
// flag stays clear until SetTargetPosition.
func (c *Controller) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.joints {
		c.pids[i].Reset()
		c.shapers[i].Reset()
		c.setpoint[i] = 0
		c.command[i] = 0
		c.testRPM[i] = 0
	}

	c.mode = ModeCartesian
	c.target = c.defaultTarget
	c.targetActive = false
	c.fenceBreached = false
}

// SetTargetPosition sets a Cartesian pen target (mm) and activates
// closed-loop tracking of it.
func (c *Controller) SetTargetPosition(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = kinematics.Point{X: x, Y: y}
	c.targetActive = true
}

// SetTestMode switches between direct speed passthrough and Cartesian
// control. Entering test mode deactivates the Cartesian target; leaving
// it resets the controllers and re-seats the shapers at the measured
// angles, so stale integral and filter state cannot kick the arm.
func (c *Controller) SetTestMode(enable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enable {
		c.mode = ModeTest
		c.targetActive = false
		return
	}

	if c.mode == ModeTest {
		for i := range c.joints {
			c.pids[i].Reset()
			c.shapers[i].ResetTo(c.joints[i].Angle())
		}
	}
	c.mode = ModeCartesian
}

// SetTestSpeed sets the raw drive speeds used while in test mode.
func (c *Controller) SetTestSpeed(rpm1, rpm2 int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.testRPM[0] = rpm1
	c.testRPM[1] = rpm2
}

// Halt stops both drives and deactivates the Cartesian target. The next
// cycle holds position at the measured angles.
func (c *Controller) Halt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAll()
	c.targetActive = false
}

// ZeroEncoders declares the current pose to be the zero pose.
func (c *Controller) ZeroEncoders() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.joints {
		c.joints[i].ResetEncoder()
	}
}

// Loop executes one control cycle with cycle time dt (seconds).
func (c *Controller) Loop(dt float64) {
	if dt <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Feedback refresh comes first in every mode.
	for i := range c.joints {
		c.joints[i].Update()
	}

	if c.mode == ModeTest {
		for i := range c.joints {
			c.joints[i].Start()
			c.joints[i].SetSpeed(c.testRPM[i])
			c.command[i] = c.testRPM[i]
		}
		return
	}

	var measured [NumJoints]float64
	for i := range c.joints {
		measured[i] = c.joints[i].Angle()
	}

	// Setpoint computation: an active target is solved through IK; an
	// unreachable solve freezes the previous setpoints in place. With no
	// active target the arm holds at its measured pose.
	if c.targetActive {
		if angles, ok := c.geom.SolveInverse(c.target, c.elbow); ok {
			c.setpoint[0] = kinematics.Deg(angles.Theta1)
			c.setpoint[1] = kinematics.Deg(angles.Theta2)
		}
	} else {
		c.setpoint = measured
	}

	// Safety fence on the measured pose. A degenerate forward solve is
	// treated like a breach: the measured configuration is outside
	// anything the linkage can legally do, so stopping is the only safe
	// answer.
	pen, valid := c.geom.SolveForward(kinematics.Rad(measured[0]), kinematics.Rad(measured[1]))
	if c.targetActive && (!valid || pen.Y < c.fenceY) {
		c.stopAll()
		c.fenceBreached = true
		c.fenceEvents++
		return
	}
	c.fenceBreached = false

	for i := range c.joints {
		c.shapers[i].Update(c.setpoint[i], dt)
	}

	for i := range c.joints {
		c.joints[i].Start()
		out := c.pids[i].Update(
			c.setpoint[i],
			c.shapers[i].Velocity(),
			c.shapers[i].Acceleration(),
			measured[i],
			dt,
		)
		c.command[i] = int32(out)
		c.joints[i].SetSpeed(c.command[i])
	}
}

// Snapshot returns a consistent copy of the controller state for
// telemetry and diagnostics.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Mode:          c.mode,
		Setpoints:     c.setpoint,
		Commands:      c.command,
		Target:        c.target,
		TargetActive:  c.targetActive,
		FenceBreached: c.fenceBreached,
		FenceEvents:   c.fenceEvents,
	}
	for i := range c.joints {
		s.Angles[i] = c.joints[i].Angle()
		s.Velocities[i] = c.joints[i].Velocity()
		s.Enabled[i] = c.joints[i].Enabled()
	}
	return s
}

// FenceEvents returns the number of cycles short-circuited by the
// safety fence since construction.
func (c *Controller) FenceEvents() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fenceEvents
}

// Joint exposes joint i for wiring (clock injection, telemetry).
func (c *Controller) Joint(i int) *motor.Joint {
	return c.joints[i]
}

func (c *Controller) stopAll() {
	for i := range c.joints {
		c.joints[i].Stop()
		c.command[i] = 0
	}
}
