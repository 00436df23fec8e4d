package sim

import (
	"math"

	"github.com/pthm-cable/launch/vmath"
)

// Rand is the random source for drag and perturbations, e.g. *rand.Rand.
type Rand interface {
	Float64() float64
}

// PhaseTimer receives per-stage timing for each tick.
type PhaseTimer interface {
	StartTick()
	StartPhase(name string)
	EndTick()
}

// Stage names reported to the PhaseTimer.
const (
	StageScheduler = "scheduler"
	StageGravity   = "gravity"
	StageThrust    = "thrust"
	StageAtmos     = "atmosphere"
	StageIntegrate = "integrate"
	StageGuidance  = "guidance"
)

type nopTimer struct{}

func (nopTimer) StartTick()        {}
func (nopTimer) StartPhase(string) {}
func (nopTimer) EndTick()          {}

// Stepper advances the flight one physics tick at a time.
type Stepper struct {
	flight *FlightState
	env    Environment
	rng    Rand
	sched  *Scheduler
	timer  PhaseTimer

	ticks uint64 // integrated ticks
}

// NewStepper creates a stepper for the flight. sched may be nil.
func NewStepper(f *FlightState, env Environment, rng Rand, sched *Scheduler) *Stepper {
	return &Stepper{
		flight: f,
		env:    env,
		rng:    rng,
		sched:  sched,
		timer:  nopTimer{},
	}
}

// SetPhaseTimer installs a per-stage timer; nil disables timing.
func (s *Stepper) SetPhaseTimer(t PhaseTimer) {
	if t == nil {
		t = nopTimer{}
	}
	s.timer = t
}

func (s *Stepper) Flight() *FlightState     { return s.flight }
func (s *Stepper) Environment() Environment { return s.env }
func (s *Stepper) Scheduler() *Scheduler    { return s.sched }
func (s *Stepper) Ticks() uint64            { return s.ticks }

// Tick runs one physics period of dt seconds: due scheduled tasks first, then the
// launch callback if the countdown just ran out, then integration if the rocket is
// flying. It reports whether the rocket was integrated.
func (s *Stepper) Tick(dt float64) bool {
	s.timer.StartTick()
	defer s.timer.EndTick()

	r := s.flight.rocket
	if s.sched != nil {
		s.timer.StartPhase(StageScheduler)
		s.sched.RunDue(r)
	}

	s.flight.launchIfDue()
	if !s.flight.integrating() {
		return false
	}

	s.Step(dt)
	return true
}

// Step integrates the rocket by dt seconds and then calls ControlRocket. It does not
// check the launch state; use Tick for that.
func (s *Stepper) Step(dt float64) {
	r := s.flight.rocket
	env := s.env

	s.timer.StartPhase(StageGravity)
	if r.Position.Y > 0 {
		r.Velocity.Y -= env.Gravity(r.Velocity.X) * dt
	}

	s.timer.StartPhase(StageThrust)
	var totalForce vmath.Vec2 // rocket frame
	var angularAccel float64
	for _, th := range r.Thrusters() {
		if !th.Active() || r.FuelRemaining(th.FuelType()) <= 0 {
			continue
		}
		thrust := th.Thrust()
		ratio, arm := th.Lever()
		totalForce = totalForce.Add(thrust.Scale(ratio))

		if radius := th.Position().Length(); radius > 0 {
			torque := arm * thrust.Length()
			// Each thruster is treated as acting on a uniform disk of its own radius.
			angularAccel += torque / (0.5 * r.Mass() * radius * radius)
		}

		r.ConsumeFuel(th.FuelType(), th.FuelBurnRate()*th.Throttle()*dt)
	}

	// Rocket-local "up" is +y; rotate into the world frame.
	worldForce := totalForce.Rotate(r.Orientation() - math.Pi/2)
	r.Velocity = r.Velocity.Add(worldForce.Scale(dt / r.Mass()))
	r.AngularVelocity += angularAccel * dt

	s.timer.StartPhase(StageAtmos)
	density := env.Density(r.Altitude())
	drag := 1 - env.DragCoefficient*s.rng.Float64()*density
	r.Velocity = r.Velocity.Scale(drag)
	r.AngularVelocity *= drag

	r.AngularVelocity += env.AngularPerturbation * (2*s.rng.Float64() - 1) * density
	nudge := env.LinearPerturbation * s.rng.Float64() * density
	r.Velocity = r.Velocity.Add(vmath.FromPolar(nudge, s.rng.Float64()*vmath.TwoPi))

	s.timer.StartPhase(StageIntegrate)
	r.Position = r.Position.Add(r.Velocity.Scale(dt))
	r.Position.X = vmath.WrapPositive(r.Position.X, env.EarthCircumference)
	if r.Position.Y < 0 {
		r.Position.Y = 0
		r.Velocity.Y = 0
	}
	r.SetOrientation(r.Orientation() + r.AngularVelocity*dt)
	s.ticks++

	s.timer.StartPhase(StageGuidance)
	r.Guidance().ControlRocket(r, s.flight.FlightTime())
}
