package sim

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/launch/vmath"
)

// ThrusterState is a copy of one thruster's state at snapshot time.
type ThrusterState struct {
	Name        string     `json:"name"`
	Position    vmath.Vec2 `json:"position"`
	Orientation float64    `json:"orientation"` // current nozzle direction, radians, rocket frame
	Size        float64    `json:"size"`
	Fuel        string     `json:"fuel"`
	Active      bool       `json:"active"`
	Firing      bool       `json:"firing"` // active with fuel available
	Throttle    float64    `json:"throttle"`
	Gimbal      float64    `json:"gimbal"`
	Thrust      vmath.Vec2 `json:"thrust"`
}

// TankState is a copy of one tank at snapshot time.
type TankState struct {
	Fuel     string  `json:"fuel"`
	Capacity float64 `json:"capacity"`
	Stored   float64 `json:"stored"`
}

// Snapshot is an immutable copy of the flight taken between ticks. Renderers and
// telemetry read snapshots, never the live rocket.
type Snapshot struct {
	Tick      uint64  `json:"tick"`
	Phase     Phase   `json:"phase"`
	Time      float64 `json:"time"`      // seconds since liftoff, negative in countdown
	Countdown float64 `json:"countdown"` // seconds until launch, 0 outside countdown

	Position        vmath.Vec2 `json:"position"`
	Velocity        vmath.Vec2 `json:"velocity"`
	Orientation     float64    `json:"orientation"`
	AngularVelocity float64    `json:"angular_velocity"`
	Mass            float64    `json:"mass"`
	DryMass         float64    `json:"dry_mass"`
	Height          float64    `json:"height"`
	Width           float64    `json:"width"`

	Density float64 `json:"density"`
	Gravity float64 `json:"gravity"`

	Thrusters []ThrusterState `json:"thrusters"`
	Tanks     []TankState     `json:"tanks"`
}

// TakeSnapshot copies the stepper's flight. It must be called on the simulation
// goroutine.
func TakeSnapshot(s *Stepper) *Snapshot {
	f := s.flight
	r := f.rocket

	snap := &Snapshot{
		Tick:            s.ticks,
		Phase:           f.Phase(),
		Time:            f.FlightTime(),
		Position:        r.Position,
		Velocity:        r.Velocity,
		Orientation:     r.Orientation(),
		AngularVelocity: r.AngularVelocity,
		Mass:            r.Mass(),
		DryMass:         r.DryMass(),
		Height:          r.Height(),
		Width:           r.Width(),
		Density:         s.env.Density(r.Altitude()),
		Gravity:         s.env.Gravity(r.Velocity.X),
		Thrusters:       make([]ThrusterState, 0, len(r.Thrusters())),
		Tanks:           make([]TankState, 0, len(r.Tanks())),
	}
	if snap.Phase == PhaseCountdown {
		snap.Countdown = -f.TimeSinceLaunch()
	}

	for _, th := range r.Thrusters() {
		snap.Thrusters = append(snap.Thrusters, ThrusterState{
			Name:        th.Name(),
			Position:    th.Position(),
			Orientation: th.CurrentOrientation(),
			Size:        th.Size(),
			Fuel:        th.FuelType().Name,
			Active:      th.Active(),
			Firing:      th.Active() && r.FuelRemaining(th.FuelType()) > 0,
			Throttle:    th.Throttle(),
			Gimbal:      th.Gimbal(),
			Thrust:      th.Thrust(),
		})
	}
	for _, t := range r.Tanks() {
		snap.Tanks = append(snap.Tanks, TankState{
			Fuel:     t.Type.Name,
			Capacity: t.Capacity,
			Stored:   t.Stored(),
		})
	}
	return snap
}

func (s *Snapshot) Altitude() float64  { return s.Position.Y }
func (s *Snapshot) Longitude() float64 { return s.Position.X }
func (s *Snapshot) Speed() float64     { return s.Velocity.Length() }

// OrientationDegrees returns the heading in degrees.
func (s *Snapshot) OrientationDegrees() float64 {
	return vmath.Degrees(s.Orientation)
}

// Thruster finds a thruster by name.
func (s *Snapshot) Thruster(name string) (ThrusterState, bool) {
	for _, t := range s.Thrusters {
		if t.Name == name {
			return t, true
		}
	}
	return ThrusterState{}, false
}

// Tank finds a tank by fuel name.
func (s *Snapshot) Tank(fuel string) (TankState, bool) {
	for _, t := range s.Tanks {
		if t.Fuel == fuel {
			return t, true
		}
	}
	return TankState{}, false
}

// FuelRemaining sums stored fuel across tanks.
func (s *Snapshot) FuelRemaining() float64 {
	var total float64
	for _, t := range s.Tanks {
		total += t.Stored
	}
	return total
}

// FiringCount returns the number of thrusters producing thrust.
func (s *Snapshot) FiringCount() int {
	n := 0
	for _, t := range s.Thrusters {
		if t.Firing {
			n++
		}
	}
	return n
}

// LogValue implements slog.LogValuer for structured logging.
func (s *Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", s.Tick),
		slog.String("phase", s.Phase.String()),
		slog.Float64("t", s.Time),
		slog.Float64("altitude", s.Position.Y),
		slog.Float64("longitude", s.Position.X),
		slog.Float64("vx", s.Velocity.X),
		slog.Float64("vy", s.Velocity.Y),
		slog.Float64("orientation_deg", s.OrientationDegrees()),
		slog.Float64("mass", s.Mass),
		slog.Int("firing", s.FiringCount()),
	)
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for _, c := range []Phase{PhaseIdle, PhaseCountdown, PhaseLaunched, PhaseAborted} {
		if c.String() == string(b) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(b))
}
