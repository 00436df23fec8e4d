package vehicle

import (
	"math"

	"github.com/pthm-cable/launch/vmath"
)

// ThrusterSpec holds the performance envelope shared by a group of thrusters.
// Build stamps out individual thrusters at given positions.
type ThrusterSpec struct {
	MaxThrust    float64  // Newtons at throttle 1.0
	MinThrottle  float64  // lowest commandable throttle
	MaxThrottle  float64  // highest commandable throttle (may exceed 1)
	FuelBurnRate float64  // fuel units per second at throttle 1.0
	FuelType     FuelType // tank this thruster draws from
	Size         float64  // nozzle size in meters, display only
	GimbalRange  float64  // degrees either side of the base orientation
}

// Build creates an inactive thruster at the given rocket-relative position.
// orientation is the nozzle direction in radians.
func (s ThrusterSpec) Build(name string, position vmath.Vec2, orientation float64) *Thruster {
	t := &Thruster{
		spec:        s,
		name:        name,
		position:    position,
		orientation: vmath.NormalizeRadians(orientation),
	}
	t.SetThrottle(s.MinThrottle)
	return t
}

// Thruster is a single force-producing actuator on a rocket.
type Thruster struct {
	spec        ThrusterSpec
	name        string
	position    vmath.Vec2
	orientation float64

	active   bool
	gimbal   float64 // degrees
	throttle float64
}

// Name returns the thruster's unique name within its rocket.
func (t *Thruster) Name() string { return t.name }

// Spec returns the thruster's performance envelope.
func (t *Thruster) Spec() ThrusterSpec { return t.spec }

// Position returns the rocket-relative mounting point in meters.
func (t *Thruster) Position() vmath.Vec2 { return t.position }

// BaseOrientation returns the ungimballed nozzle direction in [0, 2*Pi).
func (t *Thruster) BaseOrientation() float64 { return t.orientation }

func (t *Thruster) FuelType() FuelType    { return t.spec.FuelType }
func (t *Thruster) FuelBurnRate() float64 { return t.spec.FuelBurnRate }
func (t *Thruster) MaxThrust() float64    { return t.spec.MaxThrust }
func (t *Thruster) MinThrottle() float64  { return t.spec.MinThrottle }
func (t *Thruster) MaxThrottle() float64  { return t.spec.MaxThrottle }
func (t *Thruster) GimbalRange() float64  { return t.spec.GimbalRange }
func (t *Thruster) Size() float64         { return t.spec.Size }
func (t *Thruster) Active() bool          { return t.active }
func (t *Thruster) Gimbal() float64       { return t.gimbal }
func (t *Thruster) Throttle() float64     { return t.throttle }
func (t *Thruster) SetActive(active bool) { t.active = active }

// SetGimbal sets the gimbal angle in degrees, clamped to the gimbal range.
// Positive values rotate the nozzle counter-clockwise.
func (t *Thruster) SetGimbal(deg float64) {
	r := math.Abs(t.spec.GimbalRange)
	t.gimbal = vmath.Clamp(deg, -r, r)
}

// SetThrottle sets the throttle, clamped to [MinThrottle, MaxThrottle].
func (t *Thruster) SetThrottle(v float64) {
	t.throttle = vmath.Clamp(v, t.spec.MinThrottle, t.spec.MaxThrottle)
}

// CurrentOrientation returns the nozzle direction including gimbal, in radians.
func (t *Thruster) CurrentOrientation() float64 {
	return t.orientation + vmath.Radians(t.gimbal)
}

// Thrust returns the rocket-relative force vector. Thrust points away from the
// nozzle. An inactive thruster produces no thrust.
func (t *Thruster) Thrust() vmath.Vec2 {
	if !t.active {
		return vmath.Zero
	}
	return vmath.FromPolar(t.spec.MaxThrust*t.throttle, t.CurrentOrientation()+math.Pi)
}

// Lever decomposes the thruster's current thrust direction relative to the rocket's
// center. ratio is the cosine between the thrust direction and the direction from the
// thruster toward the center; only that share of thrust translates the rocket. arm is
// the torque per Newton of thrust, positive counter-clockwise in rocket space.
// A thruster mounted at the center translates fully and produces no torque.
func (t *Thruster) Lever() (ratio, arm float64) {
	radius := t.position.Length()
	if radius == 0 {
		return 1, 0
	}
	dir := vmath.FromPolar(1, t.CurrentOrientation()+math.Pi)
	center := t.position.Neg().Normalize()
	ratio = dir.Dot(center)
	arm = radius * center.Perp().Dot(dir)
	return ratio, arm
}
