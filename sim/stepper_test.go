package sim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/launch/vehicle"
	"github.com/pthm-cable/launch/vmath"
)

// Ground rest needs a quiet RNG: at full density the linear nudge can point
// upward and lift y above zero.
func TestStepper_RestsOnGround(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		ticks int
	}{
		{"single tick at 60 Hz", 1.0 / 60, 1},
		{"ten seconds", 0.1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRig(t, nil, &quietRand{}, time.Second)
			g.launch(t, 0.25)

			for i := 0; i < tt.ticks; i++ {
				g.tick(tt.dt)
			}

			r := g.rocket
			if r.Position.Y != 0 || r.Velocity.Y != 0 {
				t.Errorf("y = %v, vy = %v, want both 0", r.Position.Y, r.Velocity.Y)
			}
			if r.Position != (vmath.Vec2{}) {
				t.Errorf("position moved to %v", r.Position)
			}
			if r.Velocity != (vmath.Vec2{}) {
				t.Errorf("velocity = %v, want zero", r.Velocity)
			}
			if !almostEqual(r.Orientation(), math.Pi/2, 1e-12) {
				t.Errorf("orientation = %v, want pi/2", r.Orientation())
			}
		})
	}
}

func TestStepper_FuelDraw(t *testing.T) {
	g := newRig(t, nil, &quietRand{}, time.Second)
	g.launch(t, 0.25)

	me, err := g.rocket.ThrusterByName("ME 2")
	if err != nil {
		t.Fatal(err)
	}
	me.SetThrottle(1)
	me.SetActive(true)

	rp1 := vehicle.FuelType{Name: "RP 1"}
	before := g.rocket.FuelRemaining(rp1)
	g.stepper.Step(0.1)
	after := g.rocket.FuelRemaining(rp1)

	if !almostEqual(before-after, 30, 1e-9) {
		t.Errorf("fuel drawn = %v, want 30", before-after)
	}
}

func TestStepper_FuelClampsAtZero(t *testing.T) {
	rp1 := vehicle.FuelType{Name: "RP 1"}
	r := vehicle.NewRocket(1000, 20, 6, nil)
	r.AddTank(vehicle.NewFuelTank(rp1, 10))

	spec := vehicle.ThrusterSpec{
		MaxThrust:    1000,
		MinThrottle:  0,
		MaxThrottle:  1,
		FuelBurnRate: 300,
		FuelType:     rp1,
		Size:         1,
	}
	th := spec.Build("ME", vmath.Vec2{Y: -10}, -math.Pi/2)
	th.SetThrottle(1)
	th.SetActive(true)
	if err := r.AddThruster(th); err != nil {
		t.Fatal(err)
	}

	clock := NewManualClock(testEpoch)
	f := NewFlightState(r, clock, 0, nil)
	env := DefaultEnvironment()
	env.G = 0
	s := NewStepper(f, env, &quietRand{}, nil)
	f.launched, f.liftedOff = true, true

	s.Step(0.1)
	if got := r.FuelRemaining(rp1); got != 0 {
		t.Fatalf("fuel = %v, want 0", got)
	}

	// Empty tank produces no thrust.
	v := r.Velocity
	s.Step(0.1)
	if r.Velocity != v {
		t.Errorf("velocity changed with an empty tank: %v -> %v", v, r.Velocity)
	}
}

func TestStepper_MainEnginesClimb(t *testing.T) {
	g := newRig(t, nil, &quietRand{}, time.Second)
	g.launch(t, 0.25)

	g.rocket.ForEachByPrefix("ME", func(th *vehicle.Thruster) {
		th.SetThrottle(1)
		th.SetActive(true)
	})
	for i := 0; i < 60; i++ {
		g.tick(1.0 / 60)
	}

	r := g.rocket
	if r.Position.Y <= 0 || r.Velocity.Y <= 0 {
		t.Fatalf("expected climb, got pos=%v vel=%v", r.Position, r.Velocity)
	}
	// Symmetric layout with no gimbal produces no sideways motion or spin.
	if !almostEqual(r.Velocity.X, 0, 1e-9) || !almostEqual(r.AngularVelocity, 0, 1e-12) {
		t.Errorf("unexpected lateral motion: vel=%v omega=%v", r.Velocity, r.AngularVelocity)
	}
}

func TestStepper_GimbalTorqueTurnsRocket(t *testing.T) {
	g := newRig(t, nil, &quietRand{}, time.Second)
	g.launch(t, 0.25)

	me, err := g.rocket.ThrusterByName("ME 2")
	if err != nil {
		t.Fatal(err)
	}
	me.SetThrottle(1)
	me.SetGimbal(5)
	me.SetActive(true)

	g.tick(0.1)
	if g.rocket.AngularVelocity == 0 {
		t.Error("gimballed engine produced no angular velocity")
	}
}

func TestStepper_CallbackOrder(t *testing.T) {
	rec := &recordingGuidance{}
	g := newRig(t, rec, &quietRand{}, time.Second)

	if err := g.flight.ScheduleLaunch(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if g.tick(0.25) {
			t.Fatalf("integrated during countdown at tick %d", i)
		}
	}
	for i := 0; i < 3; i++ {
		if !g.tick(0.25) {
			t.Fatalf("no integration after launch at tick %d", i)
		}
	}

	want := []string{"start", "launch", "control", "control", "control"}
	got := rec.kinds()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}

	prev := math.Inf(-1)
	for _, c := range rec.calls[2:] {
		if c.t <= prev {
			t.Errorf("ControlRocket time not increasing: %v after %v", c.t, prev)
		}
		prev = c.t
	}
	if !almostEqual(rec.calls[2].t, 0.25, 1e-9) {
		t.Errorf("first ControlRocket t = %v, want 0.25", rec.calls[2].t)
	}
}

func TestStepper_NoIntegrationBeforeLaunch(t *testing.T) {
	g := newRig(t, nil, rand.New(rand.NewSource(1)), time.Second)

	for i := 0; i < 20; i++ {
		if g.tick(0.1) {
			t.Fatal("integrated while idle")
		}
	}
	if g.rocket.Position != (vmath.Vec2{}) || g.stepper.Ticks() != 0 {
		t.Errorf("idle rocket moved: pos=%v ticks=%d", g.rocket.Position, g.stepper.Ticks())
	}
}

func TestStepper_DeterministicForSeed(t *testing.T) {
	fly := func() (vmath.Vec2, float64) {
		g := newRig(t, nil, rand.New(rand.NewSource(42)), time.Second)
		g.launch(t, 1.0/60)
		g.rocket.ForEachByPrefix("ME", func(th *vehicle.Thruster) {
			th.SetThrottle(1)
			th.SetActive(true)
		})
		for i := 0; i < 600; i++ {
			g.tick(1.0 / 60)
		}
		return g.rocket.Position, g.rocket.Orientation()
	}

	p1, o1 := fly()
	p2, o2 := fly()
	if p1 != p2 || o1 != o2 {
		t.Errorf("same seed diverged: %v/%v vs %v/%v", p1, o1, p2, o2)
	}
}

func TestStepper_AbortCoasts(t *testing.T) {
	rec := &recordingGuidance{}
	g := newRig(t, rec, &quietRand{}, time.Second)
	g.launch(t, 0.1)

	g.rocket.ForEachByPrefix("ME", func(th *vehicle.Thruster) {
		th.SetThrottle(1)
		th.SetActive(true)
	})
	for i := 0; i < 50; i++ {
		g.tick(0.1)
	}
	g.flight.Abort()

	vy := g.rocket.Velocity.Y
	if !g.tick(0.1) {
		t.Fatal("aborted rocket stopped integrating after liftoff")
	}
	want := vy - DefaultEnvironment().G*0.1
	if !almostEqual(g.rocket.Velocity.Y, want, 1e-9) {
		t.Errorf("coasting vy = %v, want %v", g.rocket.Velocity.Y, want)
	}

	last := rec.calls[len(rec.calls)-1]
	prev := rec.calls[len(rec.calls)-2]
	if last.kind != "control" || last.t <= prev.t {
		t.Errorf("guidance after abort: %v after %v", last, prev)
	}
}

func TestStepper_LongitudeWraps(t *testing.T) {
	g := newRig(t, nil, &quietRand{}, time.Second)
	g.launch(t, 0.25)

	env := DefaultEnvironment()
	g.rocket.Position = vmath.Vec2{X: 5, Y: 1000}
	g.rocket.Velocity = vmath.Vec2{X: -100}
	g.stepper.Step(0.1)

	if x := g.rocket.Position.X; x < 0 || x >= env.EarthCircumference {
		t.Fatalf("x = %v outside [0, C)", x)
	}
	if !almostEqual(g.rocket.Position.X, env.EarthCircumference-5, 1e-3) {
		t.Errorf("x = %v, want C-5", g.rocket.Position.X)
	}
}

type countingTimer struct {
	ticks  int
	phases map[string]int
}

func (c *countingTimer) StartTick()             { c.ticks++ }
func (c *countingTimer) StartPhase(name string) { c.phases[name]++ }
func (c *countingTimer) EndTick()               {}

func TestStepper_PhaseTimer(t *testing.T) {
	g := newRig(t, nil, &quietRand{}, time.Second)
	timer := &countingTimer{phases: map[string]int{}}
	g.stepper.SetPhaseTimer(timer)
	g.launch(t, 0.25)
	g.tick(0.25)

	if timer.ticks == 0 {
		t.Fatal("timer saw no ticks")
	}
	for _, stage := range []string{StageGravity, StageThrust, StageAtmos, StageIntegrate, StageGuidance} {
		if timer.phases[stage] == 0 {
			t.Errorf("stage %q not timed", stage)
		}
	}
}
