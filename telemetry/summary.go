package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/launch/vmath"
)

// Summary condenses a recorded flight. It is also one row of the Monte Carlo
// results file.
type Summary struct {
	Seed          int64   `csv:"seed"`
	Samples       int     `csv:"samples"`
	FlightTime    float64 `csv:"flight_time"`
	Apogee        float64 `csv:"apogee"`
	ApogeeTime    float64 `csv:"apogee_time"`
	FinalAltitude float64 `csv:"final_altitude"`
	MaxSpeed      float64 `csv:"max_speed"`
	MeanSpeed     float64 `csv:"mean_speed"`
	SpeedP50      float64 `csv:"speed_p50"`
	SpeedP90      float64 `csv:"speed_p90"`
	AttitudeStd   float64 `csv:"attitude_std_deg"`
	Drift         float64 `csv:"drift"` // net eastward travel since liftoff, m
	FuelUsed      float64 `csv:"fuel_used"`
	ReachedKarman bool    `csv:"reached_karman"`
	Aborted       bool    `csv:"aborted"`
	Milestones    int     `csv:"milestones"`
}

// Summarize computes flight statistics from samples in time order. Samples taken
// before liftoff are ignored for the kinematic figures. Longitude wraps at
// circumference; zero disables wrapping.
func Summarize(samples []FlightSample, milestones []Milestone, circumference float64) Summary {
	s := Summary{Samples: len(samples), Milestones: len(milestones)}
	for _, m := range milestones {
		switch m.Type {
		case MilestoneKarmanLine:
			s.ReachedKarman = true
		case MilestoneAbort:
			s.Aborted = true
		}
	}
	if len(samples) == 0 {
		return s
	}
	s.FuelUsed = samples[0].FuelRemaining - samples[len(samples)-1].FuelRemaining

	var flying []FlightSample
	for _, fs := range samples {
		if fs.Time > 0 {
			flying = append(flying, fs)
		}
	}
	if len(flying) == 0 {
		return s
	}

	n := len(flying)
	alt := make([]float64, n)
	speed := make([]float64, n)
	orient := make([]float64, n)
	for i, fs := range flying {
		alt[i] = fs.Altitude
		speed[i] = fs.Speed
		orient[i] = vmath.Radians(fs.OrientationDeg)
		if i > 0 {
			s.Drift += vmath.WrapDelta(fs.Longitude, flying[i-1].Longitude, circumference)
		}
	}

	last := flying[n-1]
	s.FlightTime = last.Time
	s.FinalAltitude = last.Altitude

	peak := floats.MaxIdx(alt)
	s.Apogee = alt[peak]
	s.ApogeeTime = flying[peak].Time

	s.MaxSpeed = floats.Max(speed)
	s.MeanSpeed = stat.Mean(speed, nil)
	if n > 1 {
		s.AttitudeStd = vmath.Degrees(headingSpread(orient))
	}

	sorted := append([]float64(nil), speed...)
	sort.Float64s(sorted)
	s.SpeedP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.SpeedP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	return s
}

// headingSpread is the standard deviation of headings (radians) about their
// circular mean, so a heading that crosses zero is not counted as a full turn.
func headingSpread(theta []float64) float64 {
	sin := make([]float64, len(theta))
	cos := make([]float64, len(theta))
	for i, th := range theta {
		sin[i], cos[i] = math.Sincos(th)
	}
	mean := math.Atan2(stat.Mean(sin, nil), stat.Mean(cos, nil))

	dev := make([]float64, len(theta))
	for i, th := range theta {
		dev[i] = vmath.WrapPi(th - mean)
	}
	return stat.StdDev(dev, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("seed", s.Seed),
		slog.Float64("flight_time", s.FlightTime),
		slog.Float64("apogee", s.Apogee),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("attitude_std_deg", s.AttitudeStd),
		slog.Float64("fuel_used", s.FuelUsed),
		slog.Bool("reached_karman", s.ReachedKarman),
		slog.Bool("aborted", s.Aborted),
	)
}
