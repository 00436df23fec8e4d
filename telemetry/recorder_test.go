package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/sim"
	"github.com/pthm-cable/launch/vehicle"
)

// flyRecorded runs a full-throttle vertical flight for the given simulated
// seconds with a recorder attached.
func flyRecorded(t *testing.T, dir string, seconds float64) *Recorder {
	t.Helper()
	cfg := config.Default()

	r, err := vehicle.Build(cfg.Vehicle, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.ForEachByPrefix("ME", func(th *vehicle.Thruster) { th.SetThrottle(1) })

	clock := sim.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := sim.NewScheduler(clock)
	flight := sim.NewFlightState(r, clock, time.Second, sched)
	env := sim.EnvironmentFromConfig(cfg.Environment)
	stepper := sim.NewStepper(flight, env, rand.New(rand.NewSource(7)), sched)

	perf := NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	stepper.SetPhaseTimer(perf)

	out, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { out.Close() })

	rec := NewRecorder(out, perf, RecorderOptions{
		Seed:                7,
		Environment:         env,
		SampleInterval:      0.5,
		SnapshotOnMilestone: true,
	})
	runner := sim.NewRunner(stepper, clock, sim.WallClock{}, sim.RunnerOptions{
		DT:     cfg.Derived.DT,
		OnTick: rec.OnTick,
	})

	runner.ScheduleLaunch()
	for _, name := range []string{"ME 1", "ME 2", "ME 3"} {
		runner.SetThrusterActive(name, true)
	}
	for n := int((seconds + 1) / cfg.Derived.DT); n > 0; n-- {
		runner.Advance()
	}
	return rec
}

func TestRecorder_RecordsFlight(t *testing.T) {
	dir := t.TempDir()
	rec := flyRecorded(t, dir, 10)

	samples := rec.Samples()
	if len(samples) < 15 || len(samples) > 22 {
		t.Errorf("got %d samples over 10s at 0.5s, want about 20", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time <= samples[i-1].Time {
			t.Fatalf("sample times not increasing at %d", i)
		}
	}

	if !rec.Reached(MilestoneLiftoff) {
		t.Fatalf("no liftoff milestone in %v", rec.Milestones())
	}
	if rec.Reached(MilestoneGroundContact) {
		t.Error("ground contact recorded during a powered climb")
	}

	sum := rec.Summary()
	if sum.Seed != 7 || sum.Apogee <= 0 || sum.MaxSpeed <= 0 || sum.FuelUsed <= 0 {
		t.Errorf("implausible summary: %+v", sum)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "snapshot_*_liftoff.json"))
	if len(matches) != 1 {
		t.Fatalf("expected one liftoff snapshot, got %v", matches)
	}
	if _, err := LoadSnapshot(matches[0]); err != nil {
		t.Errorf("liftoff snapshot unreadable: %v", err)
	}
	if info, err := os.Stat(filepath.Join(dir, "flight.csv")); err != nil || info.Size() == 0 {
		t.Errorf("flight.csv empty or missing: %v", err)
	}
}
