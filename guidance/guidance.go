// Package guidance holds sample flight computers and the strategy registry used by
// the host programs.
package guidance

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/sim"
	"github.com/pthm-cable/launch/vehicle"
)

// ErrUnknownStrategy is returned by New for an unregistered strategy name.
var ErrUnknownStrategy = errors.New("unknown guidance strategy")

type factory func(cfg config.GuidanceConfig, sched *sim.Scheduler) vehicle.GuidanceComputer

var strategies = map[string]factory{
	"simple": func(cfg config.GuidanceConfig, sched *sim.Scheduler) vehicle.GuidanceComputer {
		return NewSimpleLaunch(cfg.Simple, sched)
	},
	"hold": func(cfg config.GuidanceConfig, _ *sim.Scheduler) vehicle.GuidanceComputer {
		return NewAttitudeHold(cfg.Hold, cfg.Simple.LogInterval)
	},
	"none": func(config.GuidanceConfig, *sim.Scheduler) vehicle.GuidanceComputer {
		return vehicle.NopGuidance{}
	},
}

// New builds the strategy named by cfg.Strategy. sched receives delayed work; it
// must be the scheduler the stepper runs.
func New(cfg config.GuidanceConfig, sched *sim.Scheduler) (vehicle.GuidanceComputer, error) {
	f, ok := strategies[cfg.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, cfg.Strategy, Strategies())
	}
	return f(cfg, sched), nil
}

// Strategies lists registered strategy names.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// statusLog emits a flight status line at most once per interval of flight time.
type statusLog struct {
	interval float64
	next     float64
}

func (s *statusLog) maybeLog(r *vehicle.Rocket, t float64) {
	if s.interval <= 0 || t < s.next {
		return
	}
	s.next = t + s.interval
	slog.Info("flight status",
		"t", t,
		"altitude", r.Altitude(),
		"longitude", r.Longitude(),
		"vx", r.Velocity.X,
		"vy", r.Velocity.Y,
		"orientation_deg", r.OrientationDegrees(),
		"mass", r.Mass(),
	)
}

// gimbal sets a named thruster's gimbal, logging layouts that lack it.
func gimbal(r *vehicle.Rocket, name string, deg float64) {
	th, err := r.ThrusterByName(name)
	if err != nil {
		slog.Warn("gimbal target missing", "error", err)
		return
	}
	th.SetGimbal(deg)
}
