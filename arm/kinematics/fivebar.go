// Package kinematics solves the planar five-bar linkage used by the
// drawing arm: two motors, each driving an active arm of length L1, joined
// through driven arms of length L2 at the pen point. Motor 1 sits at the
// origin, motor 2 at (D, 0). All angles are in radians.
package kinematics

import "math"

// ElbowMode selects between the two inverse-kinematics solution branches.
type ElbowMode int

const (
	// ElbowOut bends both elbows away from the workspace centre. This is
	// the normal configuration for the drawing arm.
	ElbowOut ElbowMode = 1

	// ElbowIn bends both elbows toward the workspace centre.
	ElbowIn ElbowMode = -1
)

// Point is a position in the arm's working plane (mm).
type Point struct {
	X float64
	Y float64
}

// Angles holds the two motor shaft angles (rad).
type Angles struct {
	Theta1 float64
	Theta2 float64
}

// Geometry describes the fixed linkage dimensions (mm). It is immutable
// and safe to share; the solver carries no other state.
type Geometry struct {
	L1 float64 // active arm, motor shaft to elbow
	L2 float64 // driven arm, elbow to pen point
	D  float64 // distance between the two motor shafts
}

// NewGeometry returns the solver for a linkage with the given dimensions.
func NewGeometry(l1, l2, d float64) Geometry {
	return Geometry{L1: l1, L2: l2, D: d}
}

// SolveInverse computes the motor angles that place the pen at p.
//
// The target must lie inside the reachable annulus [|L1-L2|, L1+L2] of
// both motor centres independently; otherwise ok is false and the angles
// are zero. mode picks the elbow branch, applied with opposite sign on
// the two sides: theta1 = alpha1 + mode*beta1, theta2 = alpha2 - mode*beta2,
// which keeps the linkage in its symmetric configuration.
func (g Geometry) SolveInverse(p Point, mode ElbowMode) (Angles, bool) {
	theta1, ok := g.solveArm(p.X, p.Y, float64(mode))
	if !ok {
		return Angles{}, false
	}
	theta2, ok := g.solveArm(p.X-g.D, p.Y, -float64(mode))
	if !ok {
		return Angles{}, false
	}
	return Angles{Theta1: theta1, Theta2: theta2}, true
}

// solveArm solves one side of the linkage with the target expressed in
// that motor's local frame. sign is +mode for motor 1 and -mode for
// motor 2.
func (g Geometry) solveArm(x, y, sign float64) (float64, bool) {
	dist := math.Hypot(x, y)
	if dist > g.L1+g.L2 || dist < math.Abs(g.L1-g.L2) {
		return 0, false
	}

	alpha := math.Atan2(y, x)

	// Law of cosines for the interior angle between the active arm and
	// the line to the target. Rounding can push the ratio just past
	// [-1, 1], so clamp before acos.
	cosBeta := (g.L1*g.L1 + dist*dist - g.L2*g.L2) / (2 * g.L1 * dist)
	beta := math.Acos(clamp(cosBeta, -1, 1))

	return alpha + sign*beta, true
}

// SolveForward computes the pen position from two measured motor angles.
//
// The pen is an intersection of two circles of radius L2 centred on the
// elbows. If the elbows are further apart than 2*L2 or coincide, the
// configuration is degenerate and ok is false; a legitimate result can
// be near the origin, so no sentinel coordinate is used. Of the two
// intersections the forward-reaching one (non-negative Y) is preferred.
func (g Geometry) SolveForward(theta1, theta2 float64) (Point, bool) {
	e1x := g.L1 * math.Cos(theta1)
	e1y := g.L1 * math.Sin(theta1)
	e2x := g.D + g.L1*math.Cos(theta2)
	e2y := g.L1 * math.Sin(theta2)

	dx := e2x - e1x
	dy := e2y - e1y
	d2 := dx*dx + dy*dy
	d := math.Sqrt(d2)

	if d > 2*g.L2 || d == 0 {
		return Point{}, false
	}

	// Equal radii, so the chord midpoint sits at a = d/2 along the
	// elbow-to-elbow line and the intersections at h perpendicular to it.
	a := d2 / (2 * d)
	h := math.Sqrt(math.Max(0, g.L2*g.L2-a*a))

	mx := e1x + a*dx/d
	my := e1y + a*dy/d

	p := Point{X: mx - h*dy/d, Y: my + h*dx/d}
	if p.Y < 0 {
		p = Point{X: mx + h*dy/d, Y: my - h*dx/d}
	}
	return p, true
}

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * 180 / math.Pi }

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
