package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/launch/sim"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(sim.StageGravity)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(sim.StageThrust)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.Ticks != 5 {
		t.Errorf("ticks = %d, want 5", stats.Ticks)
	}
	if stats.AvgTick <= 0 || stats.TicksPerSecond <= 0 {
		t.Errorf("expected positive tick timing, got %v / %v", stats.AvgTick, stats.TicksPerSecond)
	}
	thrust, ok := stats.Stages[sim.StageThrust]
	if !ok {
		t.Fatal("expected thrust stage to be tracked")
	}
	if thrust.Avg < 200*time.Microsecond {
		t.Errorf("thrust avg = %v, want >= 200us", thrust.Avg)
	}
	if thrust.Max < thrust.Avg {
		t.Errorf("thrust max %v below avg %v", thrust.Max, thrust.Avg)
	}
	if thrust.Pct <= stats.Stages[sim.StageGravity].Pct {
		t.Errorf("thrust share %v%% should exceed gravity %v%%", thrust.Pct, stats.Stages[sim.StageGravity].Pct)
	}
	if _, ok := stats.Stages[sim.StageGuidance]; ok {
		t.Error("untimed stage should not appear")
	}
}

func TestPerfCollector_StageMaxKeepsSpike(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(sim.StageGuidance)
		if i == 2 {
			time.Sleep(2 * time.Millisecond)
		}
		pc.EndTick()
	}

	g := pc.Stats().Stages[sim.StageGuidance]
	if g.Max < 2*time.Millisecond {
		t.Errorf("guidance max = %v, want >= 2ms", g.Max)
	}
	if g.Avg >= g.Max {
		t.Errorf("avg %v should sit below the spike %v", g.Avg, g.Max)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(sim.StageGravity)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("window holds %d ticks, want 5", stats.Ticks)
	}
	if stats.MinTick > stats.MaxTick {
		t.Errorf("min %v above max %v", stats.MinTick, stats.MaxTick)
	}
}

func TestPerfCollector_UnknownStageCountsInTotalOnly(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartTick()
	pc.StartPhase("warmup")
	time.Sleep(100 * time.Microsecond)
	pc.EndTick()

	stats := pc.Stats()
	if len(stats.Stages) != 0 {
		t.Errorf("unexpected stages: %v", stats.Stages)
	}
	if stats.AvgTick < 100*time.Microsecond {
		t.Errorf("tick total = %v, want >= 100us", stats.AvgTick)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTick != 0 || stats.RefreshRate != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.Stages == nil {
		t.Error("expected non-nil Stages map")
	}
}

func TestPerfCollector_RefreshCadence(t *testing.T) {
	pc := NewPerfCollector(10)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		pc.RecordRefresh(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}

	stats := pc.Stats()
	if stats.RefreshInterval != 20*time.Millisecond {
		t.Errorf("refresh interval = %v, want 20ms", stats.RefreshInterval)
	}
	if stats.RefreshRate < 49.9 || stats.RefreshRate > 50.1 {
		t.Errorf("refresh rate = %v, want 50", stats.RefreshRate)
	}
}

func TestPerfStats_Row(t *testing.T) {
	stats := PerfStats{
		AvgTick:     40 * time.Microsecond,
		RefreshRate: 60,
		Stages: map[string]StageTiming{
			sim.StageThrust:   {Avg: 24 * time.Microsecond, Max: 90 * time.Microsecond},
			sim.StageGuidance: {Avg: 10 * time.Microsecond, Max: 12 * time.Microsecond},
		},
	}

	row := stats.Row(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 40 || row.RefreshHz != 60 {
		t.Errorf("unexpected header fields: %+v", row)
	}
	if row.ThrustAvgUS != 24 || row.ThrustMaxUS != 90 || row.GuidanceMaxUS != 12 || row.AtmosAvgUS != 0 {
		t.Errorf("stage timings not mapped: %+v", row)
	}
}
