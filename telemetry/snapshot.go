package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/launch/sim"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// SnapshotFile is the on-disk form of a flight snapshot.
type SnapshotFile struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Environment sim.Environment `json:"environment"`
	Flight      *sim.Snapshot   `json:"flight"`

	Milestone *Milestone `json:"milestone,omitempty"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *SnapshotFile, dir string) (string, error) {
	if snapshot.Flight == nil {
		return "", fmt.Errorf("save snapshot: no flight state")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Flight.Tick)
	if snapshot.Milestone != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Milestone.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Flight.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*SnapshotFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot SnapshotFile
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
