// Package vmath provides the 2D vector and angle helpers used by the vehicle model
// and the physics stepper.
package vmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a 2D vector value. All operations return a new value.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the zero vector.
var Zero = Vec2{}

// FromPolar builds a vector of length r at angle theta (radians).
func FromPolar(r, theta float64) Vec2 {
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func (v Vec2) r2() r2.Vec { return r2.Vec(v) }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(r2.Add(v.r2(), o.r2()))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(r2.Sub(v.r2(), o.r2()))
}

// Scale returns v * f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2(r2.Scale(f, v.r2()))
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return v.Scale(-1)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return r2.Dot(v.r2(), o.r2())
}

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return r2.Norm(v.r2())
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	if v.X == 0 && v.Y == 0 {
		return Zero
	}
	return Vec2(r2.Unit(v.r2()))
}

// Perp returns v rotated a quarter turn clockwise: (y, -x).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}
}

// Rotate returns v rotated counter-clockwise by angle radians about the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	return Vec2(r2.Rotate(v.r2(), angle, r2.Vec{}))
}

// Angle returns the direction of v in radians, in (-Pi, Pi].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) String() string {
	return fmt.Sprintf("[%g, %g]", v.X, v.Y)
}
