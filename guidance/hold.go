package guidance

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/vehicle"
	"github.com/pthm-cable/launch/vmath"
)

// AttitudeHold flies the main engines at full throttle and fires RCS thrusters to
// hold a fixed orientation with a PD law on angle error and angular velocity.
type AttitudeHold struct {
	target   float64 // radians
	kp, kd   float64
	deadband float64
	status   statusLog

	// Last command, exposed for tests and telemetry.
	command float64
}

// NewAttitudeHold creates the strategy. logInterval is in seconds of flight time.
func NewAttitudeHold(cfg config.HoldGuidanceConfig, logInterval float64) *AttitudeHold {
	return &AttitudeHold{
		target:   vmath.NormalizeRadians(vmath.Radians(cfg.TargetDeg)),
		kp:       cfg.Kp,
		kd:       cfg.Kd,
		deadband: cfg.Deadband,
		status:   statusLog{interval: logInterval},
	}
}

// Command returns the last PD output; positive turns counter-clockwise.
func (g *AttitudeHold) Command() float64 { return g.command }

func (g *AttitudeHold) LaunchSequenceStart(r *vehicle.Rocket, t float64) {
	slog.Info("attitude hold armed",
		"countdown_s", t,
		"target_deg", vmath.Degrees(g.target),
	)
	r.ForEachByPrefix("ME", func(th *vehicle.Thruster) {
		th.SetThrottle(1)
		th.SetGimbal(0)
		th.SetActive(false)
	})
	r.ForEachByPrefix("RCS", func(th *vehicle.Thruster) { th.SetActive(false) })
}

func (g *AttitudeHold) Launch(r *vehicle.Rocket) {
	r.ForEachByPrefix("ME", func(th *vehicle.Thruster) { th.SetActive(true) })
}

func (g *AttitudeHold) ControlRocket(r *vehicle.Rocket, t float64) {
	g.status.maybeLog(r, t)

	errAngle := vmath.WrapPi(g.target - r.Orientation())
	g.command = g.kp*errAngle - g.kd*r.AngularVelocity

	rcs := r.ThrustersByPrefix("RCS")
	if math.Abs(g.command) < g.deadband {
		for _, th := range rcs {
			th.SetActive(false)
		}
		return
	}

	// Only thrusters with a strong lever in the wanted direction fire, so the
	// lateral pairs do the work and the fore/aft ones stay quiet.
	arms := make([]float64, len(rcs))
	var maxArm float64
	for i, th := range rcs {
		_, arms[i] = th.Lever()
		maxArm = max(maxArm, math.Abs(arms[i]))
	}
	for i, th := range rcs {
		fire := arms[i]*g.command > 0 && math.Abs(arms[i]) >= maxArm/2
		if fire {
			th.SetThrottle(math.Abs(g.command))
		}
		th.SetActive(fire)
	}
}
