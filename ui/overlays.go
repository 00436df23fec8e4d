package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayVelocity       OverlayID = "velocity"
	OverlayThrustVectors  OverlayID = "thrust_vectors"
	OverlayThrusterLabels OverlayID = "thruster_labels"
	OverlayTrail          OverlayID = "trail"
	OverlayAltitudeGrid   OverlayID = "altitude_grid"
	OverlayTelemetry      OverlayID = "telemetry"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this overlay shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "V")
	Category    string    // Grouping ("vectors", "scene", "panels")
	Enabled     bool      // Initial state
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayVelocity,
		Name:        "Velocity",
		Description: "Velocity vector from the rocket centre",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "vectors",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayThrustVectors,
		Name:        "Thrust",
		Description: "Force vector of every firing thruster",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "vectors",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayTrail,
		Name:        "Trail",
		Description: "Recent flight path",
		Key:         rl.KeyR,
		KeyLabel:    "R",
		Category:    "scene",
		Enabled:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayAltitudeGrid,
		Name:        "Altitude Grid",
		Description: "Horizontal lines at round altitudes",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "scene",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayThrusterLabels,
		Name:        "Thruster Names",
		Description: "Label each thruster in the scene",
		Key:         rl.KeyN,
		KeyLabel:    "N",
		Category:    "scene",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayTelemetry,
		Name:        "Telemetry",
		Description: "Flight readout panel",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "panels",
		Enabled:     true,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Enabled
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// Keys returns every bound toggle key.
func (r *OverlayRegistry) Keys() []int32 {
	var keys []int32
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}
