package vmath

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeRadians wraps an angle into [0, 2*Pi).
func NormalizeRadians(r float64) float64 {
	r = math.Mod(r, TwoPi)
	if r < 0 {
		r += TwoPi
	}
	// Mod of a tiny negative value plus TwoPi can round up to exactly TwoPi.
	if r >= TwoPi {
		r = 0
	}
	return r
}

// WrapPi wraps an angle into [-Pi, Pi).
func WrapPi(r float64) float64 {
	return NormalizeRadians(r+math.Pi) - math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapPositive wraps v into [0, period). Non-positive periods return v unchanged.
func WrapPositive(v, period float64) float64 {
	if period <= 0 {
		return v
	}
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	if v >= period {
		v = 0
	}
	return v
}

// WrapDelta returns the shortest signed distance from 'from' to 'to' on a
// circle of the given period. Non-positive periods return the plain difference.
func WrapDelta(to, from, period float64) float64 {
	d := to - from
	if period <= 0 {
		return d
	}
	return WrapPositive(d+period/2, period) - period/2
}
