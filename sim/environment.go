// Package sim runs the flight: the environment model, the launch state machine,
// the fixed-rate physics stepper and the loop that drives it.
package sim

import (
	"math"

	"github.com/pthm-cable/launch/config"
)

// Environment holds the atmosphere and gravity constants. Its methods are pure.
type Environment struct {
	KarmanLine          float64
	G                   float64
	OrbitalSpeed        float64
	EarthCircumference  float64
	DragCoefficient     float64
	AngularPerturbation float64
	LinearPerturbation  float64
}

// DefaultEnvironment returns Earth-like constants.
func DefaultEnvironment() Environment {
	return Environment{
		KarmanLine:          100_000,
		G:                   9.81,
		OrbitalSpeed:        7_840,
		EarthCircumference:  40_075_017,
		DragCoefficient:     0.0001,
		AngularPerturbation: 0.005,
		LinearPerturbation:  0.0001,
	}
}

// EnvironmentFromConfig copies the configured constants.
func EnvironmentFromConfig(ec config.EnvironmentConfig) Environment {
	return Environment{
		KarmanLine:          ec.KarmanLine,
		G:                   ec.Gravity,
		OrbitalSpeed:        ec.OrbitalSpeed,
		EarthCircumference:  ec.EarthCircumference,
		DragCoefficient:     ec.DragCoefficient,
		AngularPerturbation: ec.AngularPerturbation,
		LinearPerturbation:  ec.LinearPerturbation,
	}
}

// Density returns the relative atmospheric density at altitude: 1 at or below the
// ground, 0 above the Karman line, quadratic falloff in between.
func (e Environment) Density(altitude float64) float64 {
	if altitude <= 0 {
		return 1
	}
	if altitude > e.KarmanLine {
		return 0
	}
	f := (e.KarmanLine - altitude) / e.KarmanLine
	return f * f
}

// Gravity returns the effective downward acceleration for a horizontal speed.
// It falls linearly to zero at orbital speed and goes negative beyond it.
func (e Environment) Gravity(horizontalVelocity float64) float64 {
	if horizontalVelocity == 0 {
		return e.G
	}
	return e.G * (1 - math.Abs(horizontalVelocity)/e.OrbitalSpeed)
}
