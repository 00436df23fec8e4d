package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/launch/sim"
)

const numStages = 6

// stages lists the stepper stages in execution order. Timing slots are
// indexed by position in this array.
var stages = [numStages]string{
	sim.StageScheduler,
	sim.StageGravity,
	sim.StageThrust,
	sim.StageAtmos,
	sim.StageIntegrate,
	sim.StageGuidance,
}

func stageIndex(name string) int {
	for i, s := range stages {
		if s == name {
			return i
		}
	}
	return -1
}

// tickTiming is the wall time spent in one integrated tick.
type tickTiming struct {
	total  time.Duration
	stages [numStages]time.Duration
}

// PerfCollector keeps a rolling window of stepper tick timings and the cadence
// of refresh signals. It satisfies sim.PhaseTimer and must only be used from
// the simulation goroutine.
type PerfCollector struct {
	window []tickTiming
	head   int
	filled int

	cur        tickTiming
	tickStart  time.Time
	stageStart time.Time
	stage      int

	lastRefresh time.Time
	refreshAvg  time.Duration // moving average of refresh intervals
}

var _ sim.PhaseTimer = (*PerfCollector)(nil)

// NewPerfCollector returns a collector averaging over the last window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		window: make([]tickTiming, window),
		stage:  -1,
	}
}

func (p *PerfCollector) StartTick() {
	p.cur = tickTiming{}
	p.tickStart = time.Now()
	p.stage = -1
}

// StartPhase closes the running stage and opens the named one. Names outside
// the stepper's stage list are folded into the tick total only.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closeStage(now)
	p.stage = stageIndex(name)
	p.stageStart = now
}

func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closeStage(now)
	p.stage = -1
	p.cur.total = now.Sub(p.tickStart)

	p.window[p.head] = p.cur
	p.head = (p.head + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

func (p *PerfCollector) closeStage(now time.Time) {
	if p.stage >= 0 {
		p.cur.stages[p.stage] += now.Sub(p.stageStart)
	}
}

// RecordRefresh notes that a refresh signal fired at now.
func (p *PerfCollector) RecordRefresh(now time.Time) {
	if !p.lastRefresh.IsZero() {
		d := now.Sub(p.lastRefresh)
		if p.refreshAvg == 0 {
			p.refreshAvg = d
		} else {
			p.refreshAvg += (d - p.refreshAvg) / 8
		}
	}
	p.lastRefresh = now
}

// StageTiming is one stage's share of the window.
type StageTiming struct {
	Avg time.Duration
	Max time.Duration
	Pct float64 // of the average tick
}

// PerfStats summarises the current window.
type PerfStats struct {
	Ticks          int
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64 // sustainable rate at the average tick cost
	Stages         map[string]StageTiming

	RefreshInterval time.Duration
	RefreshRate     float64
}

// Stats aggregates the window. Only stages that were timed appear in Stages.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{
		Ticks:           p.filled,
		Stages:          make(map[string]StageTiming),
		RefreshInterval: p.refreshAvg,
	}
	if p.refreshAvg > 0 {
		st.RefreshRate = float64(time.Second) / float64(p.refreshAvg)
	}
	if p.filled == 0 {
		return st
	}

	var total time.Duration
	var sum, peak [numStages]time.Duration
	for i, tt := range p.window[:p.filled] {
		total += tt.total
		if i == 0 || tt.total < st.MinTick {
			st.MinTick = tt.total
		}
		st.MaxTick = max(st.MaxTick, tt.total)
		for j, d := range tt.stages {
			sum[j] += d
			peak[j] = max(peak[j], d)
		}
	}

	n := time.Duration(p.filled)
	st.AvgTick = total / n
	if st.AvgTick > 0 {
		st.TicksPerSecond = float64(time.Second) / float64(st.AvgTick)
	}
	for j, name := range stages {
		if sum[j] == 0 {
			continue
		}
		t := StageTiming{Avg: sum[j] / n, Max: peak[j]}
		if st.AvgTick > 0 {
			t.Pct = float64(t.Avg) / float64(st.AvgTick) * 100
		}
		st.Stages[name] = t
	}
	return st
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.RefreshRate > 0 {
		attrs = append(attrs, slog.Float64("refresh_hz", float64(int(s.RefreshRate*10))/10))
	}
	for _, name := range stages {
		if t, ok := s.Stages[name]; ok && t.Pct > 0.1 {
			attrs = append(attrs, slog.Float64(name+"_pct", float64(int(t.Pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one line of perf.csv.
type PerfRow struct {
	WindowEnd      uint64  `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	RefreshHz      float64 `csv:"refresh_hz"`
	ThrustAvgUS    int64   `csv:"thrust_avg_us"`
	ThrustMaxUS    int64   `csv:"thrust_max_us"`
	AtmosAvgUS     int64   `csv:"atmosphere_avg_us"`
	IntegrateAvgUS int64   `csv:"integrate_avg_us"`
	GuidanceAvgUS  int64   `csv:"guidance_avg_us"`
	GuidanceMaxUS  int64   `csv:"guidance_max_us"`
	SchedulerMaxUS int64   `csv:"scheduler_max_us"`
}

// Row flattens the stats for perf.csv.
func (s PerfStats) Row(windowEnd uint64) PerfRow {
	return PerfRow{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTick.Microseconds(),
		MinTickUS:      s.MinTick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		RefreshHz:      s.RefreshRate,
		ThrustAvgUS:    s.Stages[sim.StageThrust].Avg.Microseconds(),
		ThrustMaxUS:    s.Stages[sim.StageThrust].Max.Microseconds(),
		AtmosAvgUS:     s.Stages[sim.StageAtmos].Avg.Microseconds(),
		IntegrateAvgUS: s.Stages[sim.StageIntegrate].Avg.Microseconds(),
		GuidanceAvgUS:  s.Stages[sim.StageGuidance].Avg.Microseconds(),
		GuidanceMaxUS:  s.Stages[sim.StageGuidance].Max.Microseconds(),
		SchedulerMaxUS: s.Stages[sim.StageScheduler].Max.Microseconds(),
	}
}
