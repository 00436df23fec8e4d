package guidance

import (
	"log/slog"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/sim"
	"github.com/pthm-cable/launch/vehicle"
)

// SimpleLaunch lights the main engines and flies straight up with no
// stabilization. During the countdown it swings the outer main engines through a
// gimbal test.
type SimpleLaunch struct {
	cfg    config.SimpleGuidanceConfig
	sched  *sim.Scheduler
	status statusLog
}

// NewSimpleLaunch creates the strategy. With a nil scheduler the gimbal test is
// skipped.
func NewSimpleLaunch(cfg config.SimpleGuidanceConfig, sched *sim.Scheduler) *SimpleLaunch {
	return &SimpleLaunch{
		cfg:    cfg,
		sched:  sched,
		status: statusLog{interval: cfg.LogInterval},
	}
}

func (g *SimpleLaunch) LaunchSequenceStart(r *vehicle.Rocket, t float64) {
	slog.Info("starting launch sequence", "countdown_s", t)

	r.ForEachByPrefix("ME", func(th *vehicle.Thruster) {
		th.SetThrottle(1)
		th.SetActive(false)
		slog.Debug("main engine initialized", "thruster", th.Name())
	})
	g.startGimbalTest(r)
	r.ForEachByPrefix("RCS", func(th *vehicle.Thruster) {
		th.SetThrottle(th.MaxThrottle())
		th.SetActive(false)
		slog.Debug("rcs thruster initialized", "thruster", th.Name())
	})
	slog.Info("all systems initialized for launch")
}

func (g *SimpleLaunch) startGimbalTest(r *vehicle.Rocket) {
	angle, step := g.cfg.GimbalTestAngle, g.cfg.GimbalTestStep
	if g.sched == nil || angle == 0 {
		return
	}

	gimbal(r, "ME 1", angle)
	gimbal(r, "ME 3", -angle)
	slog.Info("gimbal test started", "angle", angle)

	g.sched.AfterSeconds(step, func(r *vehicle.Rocket) {
		gimbal(r, "ME 1", -angle)
		gimbal(r, "ME 3", angle)
	})
	g.sched.AfterSeconds(2*step, func(r *vehicle.Rocket) {
		gimbal(r, "ME 1", 0)
		gimbal(r, "ME 3", 0)
		slog.Info("gimbal test complete")
	})
}

func (g *SimpleLaunch) Launch(r *vehicle.Rocket) {
	slog.Info("launching")
	r.ForEachByPrefix("ME", func(th *vehicle.Thruster) { th.SetActive(true) })
}

func (g *SimpleLaunch) ControlRocket(r *vehicle.Rocket, t float64) {
	g.status.maybeLog(r, t)
}
