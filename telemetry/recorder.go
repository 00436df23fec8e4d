package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/launch/sim"
)

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	Seed                int64
	Environment         sim.Environment
	SampleInterval      float64       // simulated seconds between flight samples
	PerfLogInterval     time.Duration // wall time between perf writes, 0 disables
	SnapshotOnMilestone bool
	LogMilestones       bool
}

// Recorder turns the runner's per-tick snapshots into flight samples, milestones and
// perf records. OnTick runs on the simulation goroutine.
type Recorder struct {
	out      *OutputManager
	perf     *PerfCollector
	detector *MilestoneDetector
	opts     RecorderOptions

	samples    []FlightSample
	milestones []Milestone

	lastTick   uint64
	nextSample float64
	nextPerf   time.Time
}

// NewRecorder creates a recorder. out and perf may be nil.
func NewRecorder(out *OutputManager, perf *PerfCollector, opts RecorderOptions) *Recorder {
	return &Recorder{
		out:      out,
		perf:     perf,
		detector: NewMilestoneDetector(opts.Environment.KarmanLine),
		opts:     opts,
	}
}

// OnTick records one snapshot. Samples are only taken on ticks that integrated.
func (r *Recorder) OnTick(s *sim.Snapshot) {
	for _, m := range r.detector.Check(s) {
		r.recordMilestone(s, m)
	}

	if s.Tick > r.lastTick {
		r.lastTick = s.Tick
		if s.Time >= r.nextSample {
			r.recordSample(s)
			r.nextSample = s.Time + r.opts.SampleInterval
		}
	}

	if r.perf != nil && r.opts.PerfLogInterval > 0 {
		now := time.Now()
		if r.nextPerf.IsZero() {
			r.nextPerf = now.Add(r.opts.PerfLogInterval)
		} else if !now.Before(r.nextPerf) {
			r.nextPerf = now.Add(r.opts.PerfLogInterval)
			stats := r.perf.Stats()
			slog.Info("perf", "stats", stats)
			if err := r.out.WritePerf(stats, s.Tick); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}
	}
}

func (r *Recorder) recordSample(s *sim.Snapshot) {
	fs := SampleFromSnapshot(s)
	r.samples = append(r.samples, fs)
	if err := r.out.WriteSample(fs); err != nil {
		slog.Error("failed to write flight sample", "error", err)
	}
}

func (r *Recorder) recordMilestone(s *sim.Snapshot, m Milestone) {
	r.milestones = append(r.milestones, m)
	if r.opts.LogMilestones {
		m.LogMilestone()
	}
	if err := r.out.WriteMilestone(m); err != nil {
		slog.Error("failed to write milestone", "error", err)
	}

	if r.opts.SnapshotOnMilestone && r.out != nil {
		path, err := SaveSnapshot(&SnapshotFile{
			Version:     SnapshotVersion,
			RNGSeed:     r.opts.Seed,
			Environment: r.opts.Environment,
			Flight:      s,
			Milestone:   &m,
		}, r.out.Dir())
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
			return
		}
		slog.Debug("snapshot saved", "path", path)
	}
}

// Samples returns the recorded flight samples.
func (r *Recorder) Samples() []FlightSample { return r.samples }

// Milestones returns the detected milestones.
func (r *Recorder) Milestones() []Milestone { return r.milestones }

// Summary summarizes everything recorded so far.
func (r *Recorder) Summary() Summary {
	s := Summarize(r.samples, r.milestones, r.opts.Environment.EarthCircumference)
	s.Seed = r.opts.Seed
	return s
}

// Reached reports whether a milestone of type t has been recorded.
func (r *Recorder) Reached(t MilestoneType) bool {
	for _, m := range r.milestones {
		if m.Type == t {
			return true
		}
	}
	return false
}
