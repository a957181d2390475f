// quill-sim runs the arm controller closed-loop against the software
// plant and writes per-joint telemetry CSVs for the tuning tools.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quill/arm"
	"quill/arm/config"
	"quill/arm/feedback"
	"quill/motor"
	"quill/sim"
	"quill/telemetry"
)

var (
	configPath = flag.String("config", "", "Machine configuration JSON (empty = built-in defaults)")
	targetX    = flag.Float64("x", 0, "Pen target X (mm)")
	targetY    = flag.Float64("y", 150, "Pen target Y (mm)")
	duration   = flag.Float64("duration", 3, "Simulated run time (s)")
	timeConst  = flag.Float64("tau", 0.02, "Drive speed-response time constant (s)")
	outPrefix  = flag.String("out", "run", "Output CSV prefix (<prefix>_joint1.csv, <prefix>_joint2.csv)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var joints [arm.NumJoints]*motor.Joint
	var plants [arm.NumJoints]*sim.Plant
	now := time.Unix(0, 0)
	for i := range joints {
		plants[i] = &sim.Plant{
			TimeConstant: *timeConst,
			MaxRPM:       float64(cfg.Joints[i].MaxRPM),
			PPR:          cfg.Joints[i].PPR,
			GearRatio:    cfg.Joints[i].GearRatio,
		}
		joints[i] = motor.NewJoint(fmt.Sprintf("joint%d", i+1), plants[i], plants[i], feedback.Config{
			PPR:       cfg.Joints[i].PPR,
			GearRatio: cfg.Joints[i].GearRatio,
		})
		joints[i].Feedback().Clock = func() time.Time { return now }
	}

	ctrl := arm.NewController(cfg, joints[0], joints[1])
	ctrl.Init()
	ctrl.ZeroEncoders()
	ctrl.SetTargetPosition(*targetX, *targetY)

	steps := int(*duration * 1000)
	logs := [arm.NumJoints]*telemetry.Log{
		telemetry.NewLog(steps),
		telemetry.NewLog(steps),
	}

	const dt = 0.001
	for step := 0; step < steps; step++ {
		now = now.Add(time.Millisecond)
		ctrl.Loop(dt)
		for i := range plants {
			plants[i].Step(dt)
		}

		s := ctrl.Snapshot()
		for i := range logs {
			logs[i].Record(telemetry.Sample{
				TimeMS:   float64(step + 1),
				Target:   s.Setpoints[i],
				Actual:   s.Angles[i],
				Error:    s.Setpoints[i] - s.Angles[i],
				Control:  float64(s.Commands[i]),
				Velocity: s.Velocities[i],
			})
		}
	}

	for i, l := range logs {
		path := fmt.Sprintf("%s_joint%d.csv", *outPrefix, i+1)
		if err := writeCSV(path, l); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("wrote %s (%d samples)\n", path, l.Len())
	}

	s := ctrl.Snapshot()
	fmt.Printf("final: angles=%.2f,%.2f deg, commands=%d,%d RPM, fence_events=%d\n",
		s.Angles[0], s.Angles[1], s.Commands[0], s.Commands[1], s.FenceEvents)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.Load(data)
}

func writeCSV(path string, l *telemetry.Log) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := telemetry.WriteCSV(f, l.Samples()); err != nil {
		return err
	}
	return f.Close()
}
