package ui

import (
	"fmt"

	"github.com/pthm-cable/launch/sim"
)

// MissionClock formats the countdown or elapsed flight time.
func MissionClock(s *sim.Snapshot) string {
	switch s.Phase {
	case sim.PhaseIdle:
		return "T-  --:--.-"
	case sim.PhaseCountdown:
		return "T- " + clock(s.Countdown)
	default:
		return "T+ " + clock(s.Time)
	}
}

func clock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	m := int(sec) / 60
	return fmt.Sprintf("%02d:%04.1f", m, sec-float64(m*60))
}

// FlightSections describes the telemetry panel.
func FlightSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "flight",
			Title: "Flight",
			Fields: []FieldDescriptor{
				{ID: "phase", Label: "Phase", Widget: WidgetText, TextGetter: func(s *sim.Snapshot) string { return s.Phase.String() }},
				{ID: "clock", Label: "Clock", Widget: WidgetText, TextGetter: MissionClock},
				{ID: "altitude", Label: "Altitude", Widget: WidgetText, Format: "%.0f m", Getter: (*sim.Snapshot).Altitude},
				{ID: "longitude", Label: "Downrange", Widget: WidgetText, Format: "%.0f m", Getter: (*sim.Snapshot).Longitude},
				{ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.1f m/s", Getter: (*sim.Snapshot).Speed},
				{ID: "vx", Label: "Vx", Widget: WidgetText, Format: "%.1f m/s", Getter: func(s *sim.Snapshot) float64 { return s.Velocity.X }},
				{ID: "vy", Label: "Vy", Widget: WidgetText, Format: "%.1f m/s", Getter: func(s *sim.Snapshot) float64 { return s.Velocity.Y }},
			},
		},
		{
			ID:    "attitude",
			Title: "Attitude",
			Fields: []FieldDescriptor{
				{ID: "orientation", Label: "Heading", Widget: WidgetText, Format: "%.2f deg", Getter: (*sim.Snapshot).OrientationDegrees},
				{ID: "omega", Label: "Spin", Widget: WidgetCenteredBar, Range: FieldRange{Min: -0.2, Max: 0.2}, Getter: func(s *sim.Snapshot) float64 { return s.AngularVelocity }},
			},
		},
		{
			ID:    "vehicle",
			Title: "Vehicle",
			Fields: []FieldDescriptor{
				{ID: "mass", Label: "Mass", Widget: WidgetText, Format: "%.0f kg", Getter: func(s *sim.Snapshot) float64 { return s.Mass }},
				{ID: "firing", Label: "Firing", Widget: WidgetText, Format: "%.0f", Getter: func(s *sim.Snapshot) float64 { return float64(s.FiringCount()) }},
			},
		},
		{
			ID:    "environment",
			Title: "Environment",
			Fields: []FieldDescriptor{
				{ID: "density", Label: "Density", Widget: WidgetBar, Getter: func(s *sim.Snapshot) float64 { return s.Density }},
				{ID: "gravity", Label: "Gravity", Widget: WidgetText, Format: "%.3f m/s2", Getter: func(s *sim.Snapshot) float64 { return s.Gravity }},
			},
		},
	}
}

// FuelSection lists every tank on the vehicle in s, in tank order. It is hidden
// when the vehicle has no tanks.
func FuelSection(s *sim.Snapshot) SectionDescriptor {
	sd := SectionDescriptor{
		ID:      "fuel",
		Title:   "Fuel",
		Visible: func(s *sim.Snapshot) bool { return len(s.Tanks) > 0 },
	}
	for i, tank := range s.Tanks {
		sd.Fields = append(sd.Fields, FieldDescriptor{
			ID:       "fuel_" + tank.Fuel,
			Label:    tank.Fuel,
			Widget:   WidgetFuel,
			Getter:   func(s *sim.Snapshot) float64 { return tankAt(s, i).Stored },
			Capacity: func(s *sim.Snapshot) float64 { return tankAt(s, i).Capacity },
		})
	}
	return sd
}

func tankAt(s *sim.Snapshot, i int) sim.TankState {
	if i < len(s.Tanks) {
		return s.Tanks[i]
	}
	return sim.TankState{}
}
