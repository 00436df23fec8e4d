// Package telemetry records flight samples, milestones, stepper timing and run
// summaries, and writes them as CSV and JSON.
package telemetry

import "github.com/pthm-cable/launch/sim"

// FlightSample is one row of flight.csv.
type FlightSample struct {
	Tick            uint64  `csv:"tick"`
	Time            float64 `csv:"t"`
	Phase           string  `csv:"phase"`
	Altitude        float64 `csv:"altitude"`
	Longitude       float64 `csv:"longitude"`
	VX              float64 `csv:"vx"`
	VY              float64 `csv:"vy"`
	Speed           float64 `csv:"speed"`
	OrientationDeg  float64 `csv:"orientation_deg"`
	AngularVelocity float64 `csv:"angular_velocity"`
	Mass            float64 `csv:"mass"`
	FuelRemaining   float64 `csv:"fuel_remaining"`
	Density         float64 `csv:"density"`
	Gravity         float64 `csv:"gravity"`
	Firing          int     `csv:"firing"`
}

// SampleFromSnapshot flattens a snapshot into a CSV row.
func SampleFromSnapshot(s *sim.Snapshot) FlightSample {
	return FlightSample{
		Tick:            s.Tick,
		Time:            s.Time,
		Phase:           s.Phase.String(),
		Altitude:        s.Altitude(),
		Longitude:       s.Longitude(),
		VX:              s.Velocity.X,
		VY:              s.Velocity.Y,
		Speed:           s.Speed(),
		OrientationDeg:  s.OrientationDegrees(),
		AngularVelocity: s.AngularVelocity,
		Mass:            s.Mass,
		FuelRemaining:   s.FuelRemaining(),
		Density:         s.Density,
		Gravity:         s.Gravity,
		Firing:          s.FiringCount(),
	}
}
