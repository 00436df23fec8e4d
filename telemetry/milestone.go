package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/launch/sim"
)

// MilestoneType identifies a flight event.
type MilestoneType string

const (
	MilestoneLiftoff       MilestoneType = "liftoff"
	MilestoneKarmanLine    MilestoneType = "karman_line"
	MilestoneApogee        MilestoneType = "apogee"
	MilestoneFuelDepleted  MilestoneType = "fuel_depleted"
	MilestoneGroundContact MilestoneType = "ground_contact"
	MilestoneAbort         MilestoneType = "abort"
)

// Milestone is a detected flight event and one row of milestones.csv.
type Milestone struct {
	Type        MilestoneType `csv:"type" json:"type"`
	Tick        uint64        `csv:"tick" json:"tick"`
	Time        float64       `csv:"t" json:"t"`
	Altitude    float64       `csv:"altitude" json:"altitude"`
	Description string        `csv:"description" json:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"t", m.Time,
		"altitude", m.Altitude,
		"description", m.Description,
	)
}

// groundTolerance is the height a rocket must exceed before touching down again
// counts as ground contact.
const groundTolerance = 1.0

// MilestoneDetector watches consecutive snapshots for flight events.
type MilestoneDetector struct {
	karmanLine float64

	prev       *sim.Snapshot
	aboveLine  bool
	airborne   bool
	climbing   bool
	peak       float64
	peakTick   uint64
	peakTime   float64
	fuelByTank map[string]float64
}

// NewMilestoneDetector creates a detector for an atmosphere ending at karmanLine.
func NewMilestoneDetector(karmanLine float64) *MilestoneDetector {
	return &MilestoneDetector{
		karmanLine: karmanLine,
		fuelByTank: make(map[string]float64),
	}
}

// Check compares s with the previous snapshot and returns triggered milestones.
func (md *MilestoneDetector) Check(s *sim.Snapshot) []Milestone {
	var out []Milestone
	emit := func(t MilestoneType, format string, args ...any) {
		out = append(out, Milestone{
			Type:        t,
			Tick:        s.Tick,
			Time:        s.Time,
			Altitude:    s.Altitude(),
			Description: fmt.Sprintf(format, args...),
		})
	}

	if md.prev != nil {
		if md.prev.Phase != sim.PhaseLaunched && s.Phase == sim.PhaseLaunched {
			emit(MilestoneLiftoff, "Launch with %d thrusters firing", s.FiringCount())
		}
		if md.prev.Phase != sim.PhaseAborted && s.Phase == sim.PhaseAborted {
			emit(MilestoneAbort, "Aborted at %.0f m, %.0f m/s", s.Altitude(), s.Speed())
		}
	}

	alt := s.Altitude()
	if !md.aboveLine && alt > md.karmanLine {
		md.aboveLine = true
		emit(MilestoneKarmanLine, "Crossed %.0f m at %.0f m/s", md.karmanLine, s.Speed())
	} else if md.aboveLine && alt <= md.karmanLine {
		md.aboveLine = false
	}

	if s.Velocity.Y > 0 && alt > 0 {
		md.climbing = true
		if alt > md.peak {
			md.peak, md.peakTick, md.peakTime = alt, s.Tick, s.Time
		}
	} else if md.climbing && s.Velocity.Y <= 0 {
		md.climbing = false
		out = append(out, Milestone{
			Type:        MilestoneApogee,
			Tick:        md.peakTick,
			Time:        md.peakTime,
			Altitude:    md.peak,
			Description: fmt.Sprintf("Apogee %.0f m", md.peak),
		})
		md.peak = 0
	}

	if alt > groundTolerance {
		md.airborne = true
	} else if md.airborne && alt <= 0 {
		md.airborne = false
		emit(MilestoneGroundContact, "Ground contact at %.1f m/s", s.Speed())
	}

	for _, tank := range s.Tanks {
		before, seen := md.fuelByTank[tank.Fuel]
		if seen && before > 0 && tank.Stored <= 0 {
			emit(MilestoneFuelDepleted, "%s tank empty", tank.Fuel)
		}
		md.fuelByTank[tank.Fuel] = tank.Stored
	}

	md.prev = s
	return out
}
