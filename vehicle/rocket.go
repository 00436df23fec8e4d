// Package vehicle models the rocket: its kinematic state, fuel tanks, thrusters and
// the guidance computer bound to it.
package vehicle

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pthm-cable/launch/vmath"
)

// ErrThrusterNotFound is returned by exact thruster lookups for unknown names.
var ErrThrusterNotFound = errors.New("thruster not found")

// Rocket is the simulated vehicle.
//
// Position.X is longitude and Position.Y altitude, both in meters. Orientation is in
// radians, with pi/2 meaning vertical.
type Rocket struct {
	Position        vmath.Vec2
	Velocity        vmath.Vec2
	AngularVelocity float64 // rad/s

	orientation float64
	dryMass     float64
	height      float64
	width       float64

	thrusters []*Thruster
	byName    map[string]*Thruster

	tanks     map[FuelType]*FuelTank
	tankOrder []FuelType

	guidance GuidanceComputer
}

// NewRocket creates a rocket at rest on the ground, pointing straight up, with no
// thrusters or tanks. A nil guidance computer is replaced with NopGuidance.
func NewRocket(dryMass, height, width float64, gc GuidanceComputer) *Rocket {
	if gc == nil {
		gc = NopGuidance{}
	}
	return &Rocket{
		orientation: math.Pi / 2,
		dryMass:     dryMass,
		height:      height,
		width:       width,
		byName:      make(map[string]*Thruster),
		tanks:       make(map[FuelType]*FuelTank),
		guidance:    gc,
	}
}

// AddTank installs a tank. A second tank of the same type replaces the first.
func (r *Rocket) AddTank(t *FuelTank) {
	if _, ok := r.tanks[t.Type]; !ok {
		r.tankOrder = append(r.tankOrder, t.Type)
	}
	r.tanks[t.Type] = t
}

// AddThruster mounts a thruster. Names must be unique within the rocket.
func (r *Rocket) AddThruster(t *Thruster) error {
	if _, ok := r.byName[t.Name()]; ok {
		return fmt.Errorf("duplicate thruster name %q", t.Name())
	}
	r.thrusters = append(r.thrusters, t)
	r.byName[t.Name()] = t
	return nil
}

// Guidance returns the bound guidance computer.
func (r *Rocket) Guidance() GuidanceComputer { return r.guidance }

// Orientation returns the heading in [0, 2*Pi).
func (r *Rocket) Orientation() float64 { return r.orientation }

// SetOrientation stores the heading normalized into [0, 2*Pi).
func (r *Rocket) SetOrientation(o float64) {
	r.orientation = vmath.NormalizeRadians(o)
}

// OrientationDegrees returns the heading in degrees.
func (r *Rocket) OrientationDegrees() float64 {
	return vmath.Degrees(r.orientation)
}

func (r *Rocket) Altitude() float64  { return r.Position.Y }
func (r *Rocket) Longitude() float64 { return r.Position.X }
func (r *Rocket) DryMass() float64   { return r.dryMass }
func (r *Rocket) Height() float64    { return r.height }
func (r *Rocket) Width() float64     { return r.width }

// Mass returns dry mass plus all fuel currently stored. It is not cached.
func (r *Rocket) Mass() float64 {
	m := r.dryMass
	for _, ft := range r.tankOrder {
		m += r.tanks[ft].Stored()
	}
	return m
}

// Tank returns the tank for a fuel type.
func (r *Rocket) Tank(ft FuelType) (*FuelTank, bool) {
	t, ok := r.tanks[ft]
	return t, ok
}

// Tanks returns all tanks in installation order.
func (r *Rocket) Tanks() []*FuelTank {
	out := make([]*FuelTank, 0, len(r.tankOrder))
	for _, ft := range r.tankOrder {
		out = append(out, r.tanks[ft])
	}
	return out
}

// FuelRemaining returns the stored fuel of a type; unknown types have none.
func (r *Rocket) FuelRemaining(ft FuelType) float64 {
	return r.tanks[ft].Stored()
}

// ConsumeFuel drains amount from the tank of the given type. Unknown types are ignored.
func (r *Rocket) ConsumeFuel(ft FuelType, amount float64) {
	r.tanks[ft].Consume(amount)
}

// Thrusters returns all thrusters in mounting order. The slice must not be modified.
func (r *Rocket) Thrusters() []*Thruster { return r.thrusters }

// ThrusterByName returns the thruster with exactly this name.
func (r *Rocket) ThrusterByName(name string) (*Thruster, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThrusterNotFound, name)
	}
	return t, nil
}

// ThrustersByPrefix returns the thrusters whose names start with prefix, in mounting
// order. An empty prefix matches all thrusters.
func (r *Rocket) ThrustersByPrefix(prefix string) []*Thruster {
	var out []*Thruster
	for _, t := range r.thrusters {
		if strings.HasPrefix(t.Name(), prefix) {
			out = append(out, t)
		}
	}
	return out
}

// ForEachByPrefix calls fn for every thruster matching prefix.
func (r *Rocket) ForEachByPrefix(prefix string, fn func(*Thruster)) {
	for _, t := range r.ThrustersByPrefix(prefix) {
		fn(t)
	}
}

// SetThrusterActive switches a single thruster on or off by name.
func (r *Rocket) SetThrusterActive(name string, active bool) error {
	t, err := r.ThrusterByName(name)
	if err != nil {
		return err
	}
	t.SetActive(active)
	return nil
}

// DeactivateAll switches every thruster off.
func (r *Rocket) DeactivateAll() {
	for _, t := range r.thrusters {
		t.SetActive(false)
	}
}
