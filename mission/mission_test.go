package mission

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/guidance"
	"github.com/pthm-cable/launch/sim"
	"github.com/pthm-cable/launch/telemetry"
)

func newMission(t *testing.T, cfg *config.Config, opts Options) *Mission {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	m, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNew_UnknownStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Guidance.Strategy = "warp"
	if _, err := New(cfg, Options{Seed: 1}); !errors.Is(err, guidance.ErrUnknownStrategy) {
		t.Fatalf("New error = %v, want ErrUnknownStrategy", err)
	}
}

func TestNew_SeedPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Seed = 11

	if m := newMission(t, cfg, Options{Seed: 5}); m.Seed() != 5 {
		t.Errorf("option seed ignored: %d", m.Seed())
	}
	if m := newMission(t, cfg, Options{}); m.Seed() != 11 {
		t.Errorf("config seed ignored: %d", m.Seed())
	}
}

func TestFly_WritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	m := newMission(t, nil, Options{Seed: 3, OutputDir: dir})

	// 5 s countdown plus 10 s of flight at 60 Hz
	sum, err := m.Fly(context.Background(), 15*60)
	if err != nil {
		t.Fatalf("Fly failed: %v", err)
	}
	if sum.Seed != 3 || sum.Apogee <= 0 {
		t.Errorf("implausible summary: %+v", sum)
	}
	if !m.Recorder().Reached(telemetry.MilestoneLiftoff) {
		t.Error("no liftoff milestone")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for _, name := range []string{"config.yaml", "flight.csv", "milestones.csv"} {
		if info, err := os.Stat(filepath.Join(dir, name)); err != nil || info.Size() == 0 {
			t.Errorf("%s empty or missing: %v", name, err)
		}
	}
}

func TestFly_Deterministic(t *testing.T) {
	fly := func() telemetry.Summary {
		m := newMission(t, nil, Options{Seed: 42})
		sum, err := m.Fly(context.Background(), 12*60)
		if err != nil {
			t.Fatalf("Fly failed: %v", err)
		}
		return sum
	}

	a, b := fly(), fly()
	if a.Apogee != b.Apogee || a.FinalAltitude != b.FinalAltitude || a.Drift != b.Drift {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestFly_HonoursContext(t *testing.T) {
	m := newMission(t, nil, Options{Seed: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Fly(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("Fly error = %v, want context.Canceled", err)
	}
}

func TestEnded_AbortOnPad(t *testing.T) {
	m := newMission(t, nil, Options{Seed: 1})

	s := m.Runner().Advance()
	if m.Ended(s) {
		t.Fatal("idle mission reported ended")
	}

	m.Runner().Abort()
	s = m.Runner().Advance()
	if !m.Ended(s) {
		t.Errorf("abort on the pad did not end the mission (phase %v)", s.Phase)
	}
}

func TestOnRefresh_PublishesRefreshCadence(t *testing.T) {
	wall := sim.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	m := newMission(t, nil, Options{Seed: 1, Wall: wall})

	if m.PerfStats() != nil {
		t.Fatal("stats published before any refresh")
	}
	for i := 0; i < 3; i++ {
		wall.Advance(25 * time.Millisecond)
		m.onRefresh(m.Runner().Latest())
	}

	stats := m.PerfStats()
	if stats == nil {
		t.Fatal("no stats published")
	}
	if stats.RefreshInterval != 25*time.Millisecond {
		t.Errorf("refresh interval = %v, want 25ms", stats.RefreshInterval)
	}
}
