// Package mission assembles a flight from configuration: rocket, guidance,
// physics stepper, runner and telemetry. The host binaries drive it headless or
// behind the raylib view.
package mission

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/guidance"
	"github.com/pthm-cable/launch/sim"
	"github.com/pthm-cable/launch/telemetry"
	"github.com/pthm-cable/launch/vehicle"
)

// Options configures a mission beyond what the config file holds.
type Options struct {
	Seed          int64   // RNG seed (0 = config seed, then time-based)
	OutputDir     string  // CSV and snapshot directory (empty = no files)
	Speed         float64 // Physics speed override (0 = config)
	LogMilestones bool
	Wall          sim.Clock // Paces Run (nil = wall clock)
}

// Mission holds one flight and everything observing it.
type Mission struct {
	cfg  *config.Config
	seed int64
	env  sim.Environment

	clock    *sim.ManualClock
	rocket   *vehicle.Rocket
	flight   *sim.FlightState
	stepper  *sim.Stepper
	runner   *sim.Runner
	wall     sim.Clock
	perf     *telemetry.PerfCollector
	out      *telemetry.OutputManager
	recorder *telemetry.Recorder

	perfStats atomic.Pointer[telemetry.PerfStats]
}

// New builds a mission on the pad. The caller must Close it.
func New(cfg *config.Config, opts Options) (*Mission, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := sim.NewManualClock(time.Now().UTC())
	sched := sim.NewScheduler(clock)

	gc, err := guidance.New(cfg.Guidance, sched)
	if err != nil {
		return nil, err
	}
	rocket, err := vehicle.Build(cfg.Vehicle, gc)
	if err != nil {
		return nil, fmt.Errorf("building vehicle: %w", err)
	}

	env := sim.EnvironmentFromConfig(cfg.Environment)
	flight := sim.NewFlightState(rocket, clock, cfg.Derived.Countdown, sched)
	stepper := sim.NewStepper(flight, env, rand.New(rand.NewSource(seed)), sched)

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	stepper.SetPhaseTimer(perf)

	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return nil, err
	}

	m := &Mission{
		cfg:     cfg,
		seed:    seed,
		env:     env,
		clock:   clock,
		rocket:  rocket,
		flight:  flight,
		stepper: stepper,
		perf:    perf,
		out:     out,
	}
	m.recorder = telemetry.NewRecorder(out, perf, telemetry.RecorderOptions{
		Seed:                seed,
		Environment:         env,
		SampleInterval:      cfg.Telemetry.SampleInterval,
		PerfLogInterval:     time.Duration(cfg.Telemetry.PerfLogInterval * float64(time.Second)),
		SnapshotOnMilestone: cfg.Telemetry.SnapshotOnMilestone,
		LogMilestones:       opts.LogMilestones,
	})

	speed := cfg.Simulation.PhysicsSpeed
	if opts.Speed > 0 {
		speed = opts.Speed
	}
	m.wall = opts.Wall
	if m.wall == nil {
		m.wall = sim.WallClock{}
	}
	m.runner = sim.NewRunner(stepper, clock, m.wall, sim.RunnerOptions{
		DT:            cfg.Derived.DT,
		Speed:         speed,
		DisplayPeriod: cfg.Derived.DisplayPeriod,
		MaxCatchUp:    cfg.Simulation.MaxCatchUp,
		OnTick:        m.recorder.OnTick,
		OnRefresh:     m.onRefresh,
	})

	slog.Info("mission ready",
		"seed", seed,
		"guidance", cfg.Guidance.Strategy,
		"thrusters", len(rocket.Thrusters()),
		"mass", rocket.Mass(),
		"dt", cfg.Derived.DT,
		"speed", speed,
	)
	return m, nil
}

// onRefresh times the refresh cadence and publishes perf stats for the render
// goroutine.
func (m *Mission) onRefresh(*sim.Snapshot) {
	m.perf.RecordRefresh(m.wall.Now())
	stats := m.perf.Stats()
	m.perfStats.Store(&stats)
}

func (m *Mission) Config() *config.Config           { return m.cfg }
func (m *Mission) Seed() int64                      { return m.seed }
func (m *Mission) Environment() sim.Environment     { return m.env }
func (m *Mission) Runner() *sim.Runner              { return m.runner }
func (m *Mission) Recorder() *telemetry.Recorder    { return m.recorder }
func (m *Mission) Output() *telemetry.OutputManager { return m.out }

// PerfStats returns the stats published at the last refresh, or nil.
func (m *Mission) PerfStats() *telemetry.PerfStats {
	return m.perfStats.Load()
}

// Run paces the flight against the wall clock until ctx is cancelled or the
// runner is stopped.
func (m *Mission) Run(ctx context.Context) error {
	return m.runner.Run(ctx)
}

// Ended reports whether the flight is over: the rocket came back to the ground,
// or it was aborted before ever leaving it.
func (m *Mission) Ended(s *sim.Snapshot) bool {
	if m.recorder.Reached(telemetry.MilestoneGroundContact) {
		return true
	}
	return s.Phase == sim.PhaseAborted && !m.flight.LiftedOff()
}

// Fly launches immediately and advances as fast as possible until the flight
// ends or maxTicks iterations have run (0 = unlimited).
func (m *Mission) Fly(ctx context.Context, maxTicks int) (telemetry.Summary, error) {
	m.runner.ScheduleLaunch()

	for n := 1; ; n++ {
		s := m.runner.Advance()
		if m.Ended(s) {
			slog.Info("flight ended", "tick", s.Tick, "t", s.Time, "phase", s.Phase.String())
			break
		}
		if maxTicks > 0 && n >= maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick, "t", s.Time)
			break
		}
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return m.recorder.Summary(), err
			}
		}
	}
	return m.recorder.Summary(), nil
}

// Close flushes and closes output files.
func (m *Mission) Close() error {
	m.runner.Stop()
	return m.out.Close()
}
