package sim

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/vehicle"
)

// quietRand yields per-tick draws that cancel drag and both perturbations.
type quietRand struct{ n int }

func (q *quietRand) Float64() float64 {
	v := [4]float64{0, 0.5, 0, 0}[q.n%4]
	q.n++
	return v
}

type guidanceCall struct {
	kind string
	t    float64
}

// recordingGuidance logs every callback in order.
type recordingGuidance struct {
	calls []guidanceCall
}

func (g *recordingGuidance) LaunchSequenceStart(_ *vehicle.Rocket, t float64) {
	g.calls = append(g.calls, guidanceCall{"start", t})
}

func (g *recordingGuidance) Launch(*vehicle.Rocket) {
	g.calls = append(g.calls, guidanceCall{"launch", 0})
}

func (g *recordingGuidance) ControlRocket(_ *vehicle.Rocket, t float64) {
	g.calls = append(g.calls, guidanceCall{"control", t})
}

func (g *recordingGuidance) kinds() []string {
	out := make([]string, len(g.calls))
	for i, c := range g.calls {
		out[i] = c.kind
	}
	return out
}

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type rig struct {
	rocket  *vehicle.Rocket
	clock   *ManualClock
	sched   *Scheduler
	flight  *FlightState
	stepper *Stepper
}

func newRig(t *testing.T, gc vehicle.GuidanceComputer, rng Rand, countdown time.Duration) *rig {
	t.Helper()
	r, err := vehicle.Build(config.Default().Vehicle, gc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	clock := NewManualClock(testEpoch)
	sched := NewScheduler(clock)
	f := NewFlightState(r, clock, countdown, sched)
	return &rig{
		rocket:  r,
		clock:   clock,
		sched:   sched,
		flight:  f,
		stepper: NewStepper(f, DefaultEnvironment(), rng, sched),
	}
}

// tick advances the clock by dt and runs one stepper tick.
func (g *rig) tick(dt float64) bool {
	g.clock.AdvanceSeconds(dt)
	return g.stepper.Tick(dt)
}

// launch schedules and runs the countdown out, leaving the rocket launched.
func (g *rig) launch(t *testing.T, dt float64) {
	t.Helper()
	if err := g.flight.ScheduleLaunch(); err != nil {
		t.Fatalf("ScheduleLaunch failed: %v", err)
	}
	for i := 0; !g.flight.Launched(); i++ {
		if i > 100_000 {
			t.Fatal("launch never happened")
		}
		g.tick(dt)
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
