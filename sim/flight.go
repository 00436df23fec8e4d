package sim

import (
	"errors"
	"log/slog"
	"time"

	"github.com/pthm-cable/launch/vehicle"
)

// Launch state errors.
var (
	ErrAborted          = errors.New("flight aborted")
	ErrAlreadyScheduled = errors.New("launch already scheduled")
)

// Phase is the coarse launch state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseLaunched
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseLaunched:
		return "launched"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// FlightState wraps the rocket with the launch countdown state machine:
// Idle -> Countdown -> Launched, and any state -> Aborted, which is terminal.
type FlightState struct {
	rocket    *vehicle.Rocket
	clock     Clock
	sched     *Scheduler
	countdown time.Duration

	epoch     time.Time // zero when no launch is scheduled
	launched  bool
	aborted   bool
	liftedOff bool      // Launch has been delivered at least once
	liftoffAt time.Time // zero-time of the delivered launch, kept across abort
}

// NewFlightState creates an idle flight. sched may be nil.
func NewFlightState(r *vehicle.Rocket, clock Clock, countdown time.Duration, sched *Scheduler) *FlightState {
	return &FlightState{
		rocket:    r,
		clock:     clock,
		sched:     sched,
		countdown: countdown,
	}
}

func (f *FlightState) Rocket() *vehicle.Rocket { return f.rocket }
func (f *FlightState) Launched() bool          { return f.launched }
func (f *FlightState) Aborted() bool           { return f.aborted }
func (f *FlightState) LiftedOff() bool         { return f.liftedOff }

// Epoch returns the scheduled zero-time and whether one is set.
func (f *FlightState) Epoch() (time.Time, bool) {
	return f.epoch, !f.epoch.IsZero()
}

// Phase reports the current launch state.
func (f *FlightState) Phase() Phase {
	switch {
	case f.aborted:
		return PhaseAborted
	case f.launched:
		return PhaseLaunched
	case !f.epoch.IsZero():
		return PhaseCountdown
	default:
		return PhaseIdle
	}
}

// ScheduleLaunch starts the countdown and hands the rocket to the guidance computer's
// LaunchSequenceStart with the seconds remaining until zero-time.
func (f *FlightState) ScheduleLaunch() error {
	if f.aborted {
		return ErrAborted
	}
	if f.launched || !f.epoch.IsZero() {
		return ErrAlreadyScheduled
	}

	f.epoch = f.clock.Now().Add(f.countdown)
	slog.Info("launch scheduled", "countdown_s", f.countdown.Seconds())
	f.rocket.Guidance().LaunchSequenceStart(f.rocket, f.countdown.Seconds())
	return nil
}

// Abort disables every thruster, drops pending scheduled tasks and clears the
// countdown. It is terminal and idempotent.
func (f *FlightState) Abort() {
	if f.aborted {
		return
	}
	f.rocket.DeactivateAll()
	f.launched = false
	f.aborted = true
	f.epoch = time.Time{}
	if f.sched != nil {
		f.sched.Clear()
	}
	slog.Warn("flight aborted",
		"altitude", f.rocket.Altitude(),
		"lifted_off", f.liftedOff,
	)
}

// TimeSinceLaunch returns seconds elapsed since zero-time; negative during the
// countdown and 0 when nothing is scheduled.
func (f *FlightState) TimeSinceLaunch() float64 {
	if f.epoch.IsZero() {
		return 0
	}
	return f.clock.Now().Sub(f.epoch).Seconds()
}

// FlightTime returns seconds since liftoff. Unlike TimeSinceLaunch it keeps counting
// after an abort, so a coasting rocket's guidance still sees increasing time.
func (f *FlightState) FlightTime() float64 {
	if f.liftoffAt.IsZero() {
		return f.TimeSinceLaunch()
	}
	return f.clock.Now().Sub(f.liftoffAt).Seconds()
}

// launchIfDue delivers Launch to the guidance computer the first time the countdown
// has run out. It reports whether launch happened now.
func (f *FlightState) launchIfDue() bool {
	if f.launched || f.aborted || f.epoch.IsZero() {
		return false
	}
	if f.TimeSinceLaunch() <= 0 {
		return false
	}
	f.rocket.Guidance().Launch(f.rocket)
	f.launched = true
	f.liftedOff = true
	f.liftoffAt = f.epoch
	slog.Info("launch")
	return true
}

// integrating reports whether physics should run: in flight, or coasting after an
// abort that happened after liftoff.
func (f *FlightState) integrating() bool {
	return f.launched || (f.aborted && f.liftedOff)
}
