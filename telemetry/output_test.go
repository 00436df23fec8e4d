package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/launch/config"
)

func TestOutputManager_DisabledIsNil(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// A nil manager accepts writes.
	if err := om.WriteSample(FlightSample{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_HeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteSample(FlightSample{Tick: uint64(i), Altitude: float64(i) * 10}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteMilestone(Milestone{Type: MilestoneLiftoff, Tick: 1}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{AvgTick: time.Microsecond}, 3); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "flight.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("flight.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,t,phase,altitude") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "tick,") != 1 {
		t.Error("header repeated")
	}

	for _, name := range []string{"milestones.csv", "perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
