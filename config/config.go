// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Environment EnvironmentConfig `yaml:"environment"`
	Vehicle     VehicleConfig     `yaml:"vehicle"`
	Guidance    GuidanceConfig    `yaml:"guidance"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	PixelsPerM  float64 `yaml:"pixels_per_meter"` // Zoom level of the scene view
	ShowHelpBar bool    `yaml:"show_help_bar"`
}

// SimulationConfig holds loop timing parameters.
type SimulationConfig struct {
	PhysicsFPS   float64 `yaml:"physics_fps"`   // Physics ticks per second
	DisplayFPS   float64 `yaml:"display_fps"`   // Refresh signals per second, decoupled from physics
	PhysicsSpeed float64 `yaml:"physics_speed"` // Simulated seconds per wall-clock second
	Countdown    float64 `yaml:"countdown"`     // Seconds from ScheduleLaunch to zero-time
	MaxCatchUp   int     `yaml:"max_catch_up"`  // Max ticks run per loop iteration after a stall
	Seed         int64   `yaml:"seed"`          // RNG seed for drag/perturbation (0 = time-based)
}

// EnvironmentConfig holds the atmosphere and gravity model constants.
type EnvironmentConfig struct {
	KarmanLine          float64 `yaml:"karman_line"`          // m, density is zero above
	Gravity             float64 `yaml:"gravity"`              // m/s^2 at zero horizontal speed
	OrbitalSpeed        float64 `yaml:"orbital_speed"`        // m/s, horizontal speed at which gravity vanishes
	EarthCircumference  float64 `yaml:"earth_circumference"`  // m, longitude wraps here
	DragCoefficient     float64 `yaml:"drag_coefficient"`     // k1, max per-tick velocity loss fraction at density 1
	AngularPerturbation float64 `yaml:"angular_perturbation"` // k2, max angular nudge (rad/s) at density 1
	LinearPerturbation  float64 `yaml:"linear_perturbation"`  // k3, max linear nudge (m/s) at density 1
}

// VehicleConfig describes the rocket's body, tanks and thruster layout.
type VehicleConfig struct {
	DryMass   float64               `yaml:"dry_mass"`
	Height    float64               `yaml:"height"`
	Width     float64               `yaml:"width"`
	Tanks     []TankConfig          `yaml:"tanks"`
	Thrusters []ThrusterGroupConfig `yaml:"thrusters"`
}

// TankConfig defines one fuel tank.
type TankConfig struct {
	Fuel     string   `yaml:"fuel"`
	Capacity float64  `yaml:"capacity"`
	Stored   *float64 `yaml:"stored,omitempty"` // nil = full
}

// ThrusterGroupConfig defines a family of identical thrusters and where they are mounted.
type ThrusterGroupConfig struct {
	Group        string        `yaml:"group"`
	MaxThrust    float64       `yaml:"max_thrust"`
	MinThrottle  float64       `yaml:"min_throttle"`
	MaxThrottle  float64       `yaml:"max_throttle"`
	FuelBurnRate float64       `yaml:"fuel_burn_rate"`
	Fuel         string        `yaml:"fuel"`
	Size         float64       `yaml:"size"`
	GimbalRange  float64       `yaml:"gimbal_range"` // degrees
	Mounts       []MountConfig `yaml:"mounts"`
}

// MountConfig places a single thruster on the body.
type MountConfig struct {
	Name           string  `yaml:"name"`
	X              float64 `yaml:"x"`           // m, right of center
	Y              float64 `yaml:"y"`           // m, above center
	OrientationDeg float64 `yaml:"orientation"` // nozzle direction in degrees, 0 = +x
}

// GuidanceConfig selects and tunes the guidance strategy.
type GuidanceConfig struct {
	Strategy string               `yaml:"strategy"`
	Simple   SimpleGuidanceConfig `yaml:"simple"`
	Hold     HoldGuidanceConfig   `yaml:"hold"`
}

// SimpleGuidanceConfig tunes the straight-up launch strategy.
type SimpleGuidanceConfig struct {
	GimbalTestAngle float64 `yaml:"gimbal_test_angle"` // degrees
	GimbalTestStep  float64 `yaml:"gimbal_test_step"`  // seconds per gimbal test position
	LogInterval     float64 `yaml:"log_interval"`      // seconds between status logs in flight
}

// HoldGuidanceConfig tunes the attitude-hold strategy.
type HoldGuidanceConfig struct {
	TargetDeg float64 `yaml:"target"`   // orientation to hold, degrees
	Kp        float64 `yaml:"kp"`       // proportional gain on angle error
	Kd        float64 `yaml:"kd"`       // derivative gain on angular velocity
	Deadband  float64 `yaml:"deadband"` // rad/s of command below which RCS stays off
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	SampleInterval      float64 `yaml:"sample_interval"`       // Simulated seconds between flight samples
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
	PerfLogInterval     float64 `yaml:"perf_log_interval"`     // Wall seconds between perf log lines (0 = off)
	SnapshotOnMilestone bool    `yaml:"snapshot_on_milestone"` // Write a JSON snapshot for each milestone
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT            float64       // Seconds of simulated time per physics tick
	PhysicsPeriod time.Duration // Wall-clock time between physics ticks
	DisplayPeriod time.Duration // Wall-clock time between refresh signals
	Countdown     time.Duration // Simulation.Countdown as a duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.Merge(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Merge overlays YAML data onto the config. Only fields present in data change;
// lists such as vehicle.tanks are replaced wholesale.
func (c *Config) Merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks values the simulation cannot run with.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.PhysicsFPS <= 0 {
		return invalid("simulation.physics_fps must be positive, got %v", s.PhysicsFPS)
	}
	if s.DisplayFPS <= 0 {
		return invalid("simulation.display_fps must be positive, got %v", s.DisplayFPS)
	}
	if s.PhysicsSpeed <= 0 {
		return invalid("simulation.physics_speed must be positive, got %v", s.PhysicsSpeed)
	}
	if s.Countdown < 0 {
		return invalid("simulation.countdown must not be negative, got %v", s.Countdown)
	}

	v := c.Vehicle
	if v.DryMass <= 0 {
		return invalid("vehicle.dry_mass must be positive, got %v", v.DryMass)
	}

	fuels := make(map[string]bool, len(v.Tanks))
	for _, t := range v.Tanks {
		if t.Fuel == "" {
			return invalid("tank with empty fuel name")
		}
		if fuels[t.Fuel] {
			return invalid("duplicate tank for fuel %q", t.Fuel)
		}
		if t.Capacity < 0 {
			return invalid("tank %q has negative capacity", t.Fuel)
		}
		fuels[t.Fuel] = true
	}

	names := make(map[string]bool)
	for _, g := range v.Thrusters {
		if g.MinThrottle > g.MaxThrottle {
			return invalid("thruster group %q: min_throttle %v above max_throttle %v", g.Group, g.MinThrottle, g.MaxThrottle)
		}
		if g.GimbalRange < 0 {
			return invalid("thruster group %q: negative gimbal_range", g.Group)
		}
		if !fuels[g.Fuel] {
			return invalid("thruster group %q uses fuel %q with no tank", g.Group, g.Fuel)
		}
		for _, m := range g.Mounts {
			if m.Name == "" {
				return invalid("thruster group %q has a mount with no name", g.Group)
			}
			if names[m.Name] {
				return invalid("duplicate thruster name %q", m.Name)
			}
			names[m.Name] = true
		}
	}

	if c.Guidance.Strategy == "" {
		return invalid("guidance.strategy must be set")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	s := c.Simulation
	c.Derived.DT = 1.0 / s.PhysicsFPS
	c.Derived.PhysicsPeriod = time.Duration(float64(time.Second) / s.PhysicsFPS)
	c.Derived.DisplayPeriod = time.Duration(float64(time.Second) / s.DisplayFPS)
	c.Derived.Countdown = time.Duration(s.Countdown * float64(time.Second))
	if c.Simulation.MaxCatchUp < 1 {
		c.Simulation.MaxCatchUp = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the configuration with derived values recomputed.
func (c *Config) Clone() (*Config, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("parsing config copy: %w", err)
	}
	out.computeDerived()
	return out, nil
}
