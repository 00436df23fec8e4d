package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/launch/vehicle"
)

// Command mutates the flight on the simulation goroutine.
type Command func(f *FlightState) error

// LaunchCommand starts the countdown.
func LaunchCommand() Command {
	return func(f *FlightState) error { return f.ScheduleLaunch() }
}

// AbortCommand aborts the flight.
func AbortCommand() Command {
	return func(f *FlightState) error {
		f.Abort()
		return nil
	}
}

// ThrusterCommand switches a thruster on or off by name.
func ThrusterCommand(name string, active bool) Command {
	return func(f *FlightState) error { return f.Rocket().SetThrusterActive(name, active) }
}

// ThrottleCommand sets the throttle of every thruster whose name starts with prefix.
func ThrottleCommand(prefix string, v float64) Command {
	return func(f *FlightState) error {
		if len(f.Rocket().ThrustersByPrefix(prefix)) == 0 {
			return fmt.Errorf("no thrusters match %q", prefix)
		}
		f.Rocket().ForEachByPrefix(prefix, func(t *vehicle.Thruster) { t.SetThrottle(v) })
		return nil
	}
}

// RunnerOptions configures loop timing and hooks.
type RunnerOptions struct {
	DT            float64       // simulated seconds per tick
	Speed         float64       // simulated seconds per wall second
	DisplayPeriod time.Duration // wall time between refresh callbacks
	MaxCatchUp    int           // ticks per iteration before backlog is dropped
	CommandBuffer int

	// OnTick runs on the simulation goroutine after every tick.
	OnTick func(*Snapshot)
	// OnRefresh runs on the simulation goroutine at the display cadence. It must
	// not block; renderers normally poll Latest instead.
	OnRefresh func(*Snapshot)
}

// Runner drives a Stepper at a fixed rate on one goroutine. Simulated time lives on
// its own ManualClock, set to origin + steps*DT each tick, so physics speed only
// changes how fast ticks are released against the wall clock.
type Runner struct {
	stepper *Stepper
	clock   *ManualClock
	wall    Clock
	opts    RunnerOptions
	origin  time.Time
	steps   uint64

	commands chan Command
	latest   atomic.Pointer[Snapshot]
	speed    atomic.Uint64 // math.Float64bits of simulated seconds per wall second
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRunner creates a runner. clock must be the clock the stepper's flight and
// scheduler read; wall paces the loop.
func NewRunner(s *Stepper, clock *ManualClock, wall Clock, opts RunnerOptions) *Runner {
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.MaxCatchUp < 1 {
		opts.MaxCatchUp = 1
	}
	if opts.CommandBuffer < 1 {
		opts.CommandBuffer = 16
	}
	r := &Runner{
		stepper:  s,
		clock:    clock,
		wall:     wall,
		opts:     opts,
		origin:   clock.Now(),
		commands: make(chan Command, opts.CommandBuffer),
		stop:     make(chan struct{}),
	}
	r.latest.Store(TakeSnapshot(s))
	r.SetSpeed(opts.Speed)
	return r
}

// Speed returns the physics speed multiplier.
func (r *Runner) Speed() float64 { return math.Float64frombits(r.speed.Load()) }

// SetSpeed changes the physics speed multiplier. Non-positive values are ignored.
// Safe from any goroutine.
func (r *Runner) SetSpeed(v float64) {
	if v > 0 {
		r.speed.Store(math.Float64bits(v))
	}
}

// Stepper returns the driven stepper. Only touch it from the simulation goroutine.
func (r *Runner) Stepper() *Stepper { return r.stepper }

// Latest returns the most recently published snapshot. Safe from any goroutine.
func (r *Runner) Latest() *Snapshot { return r.latest.Load() }

// Post queues a command for the simulation goroutine. It never blocks and reports
// false if the queue is full.
func (r *Runner) Post(cmd Command) bool {
	select {
	case r.commands <- cmd:
		return true
	default:
		slog.Warn("command dropped, queue full")
		return false
	}
}

// ScheduleLaunch posts a LaunchCommand.
func (r *Runner) ScheduleLaunch() bool { return r.Post(LaunchCommand()) }

// Abort posts an AbortCommand.
func (r *Runner) Abort() bool { return r.Post(AbortCommand()) }

// SetThrusterActive posts a ThrusterCommand.
func (r *Runner) SetThrusterActive(name string, active bool) bool {
	return r.Post(ThrusterCommand(name, active))
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Advance applies pending commands and runs exactly one tick. Headless hosts call
// it in a loop; Run calls it from the paced loop.
func (r *Runner) Advance() *Snapshot {
	r.drainCommands()

	r.steps++
	elapsed := math.Round(float64(r.steps) * r.opts.DT * float64(time.Second))
	r.clock.AdvanceTo(r.origin.Add(time.Duration(elapsed)))
	r.stepper.Tick(r.opts.DT)

	snap := TakeSnapshot(r.stepper)
	r.latest.Store(snap)
	if r.opts.OnTick != nil {
		r.opts.OnTick(snap)
	}
	return snap
}

// Run paces ticks against the wall clock until ctx is cancelled or Stop is called.
func (r *Runner) Run(ctx context.Context) error {
	tickSim := time.Duration(r.opts.DT * float64(time.Second))
	if tickSim <= 0 {
		tickSim = time.Millisecond
	}

	last := r.wall.Now()
	nextRefresh := last
	var acc time.Duration // simulated time owed

	timer := time.NewTimer(0)
	defer timer.Stop()

	slog.Info("runner started",
		"dt", r.opts.DT,
		"speed", r.Speed(),
		"display_period", r.opts.DisplayPeriod,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stop:
			return nil
		default:
		}

		now := r.wall.Now()
		speed := r.Speed()
		acc += time.Duration(float64(now.Sub(last)) * speed)
		last = now

		if acc < tickSim {
			// Commands still apply between ticks.
			r.drainCommands()
		}
		n := 0
		for acc >= tickSim && n < r.opts.MaxCatchUp {
			r.Advance()
			acc -= tickSim
			n++
		}
		if acc >= tickSim {
			slog.Debug("dropping physics backlog",
				"ticks", int(acc/tickSim),
				"tick", r.stepper.Ticks(),
			)
			acc %= tickSim
		}

		if !now.Before(nextRefresh) {
			if r.opts.OnRefresh != nil {
				r.opts.OnRefresh(r.Latest())
			}
			nextRefresh = now.Add(r.opts.DisplayPeriod)
		}

		wait := time.Duration(float64(tickSim-acc) / speed)
		if r.opts.DisplayPeriod > 0 {
			wait = min(wait, nextRefresh.Sub(now))
		}
		if wait <= 0 {
			continue
		}

		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stop:
			return nil
		case <-timer.C:
		}
	}
}

func (r *Runner) drainCommands() {
	f := r.stepper.flight
	for {
		select {
		case cmd := <-r.commands:
			if err := cmd(f); err != nil {
				slog.Warn("command failed", "error", err, "phase", f.Phase().String())
			}
		default:
			return
		}
	}
}
