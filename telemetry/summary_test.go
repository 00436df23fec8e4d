package telemetry

import (
	"log/slog"
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	samples := []FlightSample{
		{Time: 0, Altitude: 0, Speed: 0, FuelRemaining: 1000},
		{Time: 1, Altitude: 10, Speed: 10, Longitude: 5, FuelRemaining: 900, OrientationDeg: 90},
		{Time: 2, Altitude: 40, Speed: 20, Longitude: 6, FuelRemaining: 800, OrientationDeg: 90},
		{Time: 3, Altitude: 30, Speed: 30, Longitude: 8, FuelRemaining: 700, OrientationDeg: 90},
		{Time: 4, Altitude: 5, Speed: 40, Longitude: 9, FuelRemaining: 700, OrientationDeg: 90},
	}
	milestones := []Milestone{{Type: MilestoneLiftoff}, {Type: MilestoneKarmanLine}}

	s := Summarize(samples, milestones, 40_075_017)

	if s.Apogee != 40 || s.ApogeeTime != 2 {
		t.Errorf("apogee = %v at %v, want 40 at 2", s.Apogee, s.ApogeeTime)
	}
	if s.MaxSpeed != 40 || s.MeanSpeed != 25 {
		t.Errorf("max/mean speed = %v/%v, want 40/25", s.MaxSpeed, s.MeanSpeed)
	}
	if s.SpeedP50 != 20 {
		t.Errorf("median speed = %v, want 20", s.SpeedP50)
	}
	if s.FuelUsed != 300 || s.Drift != 4 || s.FlightTime != 4 {
		t.Errorf("fuel/drift/time = %v/%v/%v", s.FuelUsed, s.Drift, s.FlightTime)
	}
	if math.Abs(s.AttitudeStd) > 1e-9 {
		t.Errorf("attitude std = %v, want 0", s.AttitudeStd)
	}
	if !s.ReachedKarman || s.Aborted || s.Milestones != 2 {
		t.Errorf("milestone flags wrong: %+v", s)
	}
	if math.IsNaN(s.SpeedP90) {
		t.Error("p90 is NaN")
	}
	if s.LogValue().Kind() != slog.KindGroup {
		t.Error("LogValue should be a group")
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, 40_075_017)
	if s.Samples != 0 || s.Apogee != 0 {
		t.Errorf("unexpected summary for no samples: %+v", s)
	}
}

func TestSummarize_WrapsAcrossZero(t *testing.T) {
	const circ = 40_075_017.0

	// Drifting west through longitude 0 while the heading swings across 0/360.
	samples := []FlightSample{
		{Time: 1, Longitude: 3, OrientationDeg: 2},
		{Time: 2, Longitude: circ - 4, OrientationDeg: 358},
		{Time: 3, Longitude: circ - 9, OrientationDeg: 1},
		{Time: 4, Longitude: circ - 12, OrientationDeg: 359},
	}

	s := Summarize(samples, nil, circ)

	if math.Abs(s.Drift-(-15)) > 1e-6 {
		t.Errorf("drift = %v, want -15", s.Drift)
	}
	// Deviations of +2, -2, +1, -1 degrees about a mean heading of 0.
	want := math.Sqrt((4 + 4 + 1 + 1) / 3.0)
	if math.Abs(s.AttitudeStd-want) > 1e-6 {
		t.Errorf("attitude std = %v deg, want %v", s.AttitudeStd, want)
	}

	east := []FlightSample{
		{Time: 1, Longitude: circ - 5},
		{Time: 2, Longitude: 7},
	}
	if d := Summarize(east, nil, circ).Drift; math.Abs(d-12) > 1e-6 {
		t.Errorf("eastward drift = %v, want 12", d)
	}
}
