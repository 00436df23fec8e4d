package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestVec2_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vec2
		expected Vec2
	}{
		{"add", Vec2{3, 4}.Add(Vec2{1, 2}), Vec2{4, 6}},
		{"add_zero", Vec2{5, -3}.Add(Zero), Vec2{5, -3}},
		{"sub", Vec2{5, 7}.Sub(Vec2{2, 3}), Vec2{3, 4}},
		{"sub_self", Vec2{4, 6}.Sub(Vec2{4, 6}), Zero},
		{"scale", Vec2{3, 4}.Scale(2), Vec2{6, 8}},
		{"scale_negative", Vec2{3, 4}.Scale(-0.5), Vec2{-1.5, -2}},
		{"neg", Vec2{1, -2}.Neg(), Vec2{-1, 2}},
		{"perp", Vec2{1, 2}.Perp(), Vec2{2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.expected) {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVec2_LengthAndDot(t *testing.T) {
	if l := (Vec2{3, 4}).Length(); math.Abs(l-5) > eps {
		t.Errorf("Length() = %v, expected 5", l)
	}
	if l := (Vec2{-3, -4}).Length(); math.Abs(l-5) > eps {
		t.Errorf("Length() = %v, expected 5", l)
	}
	if d := (Vec2{1, 0}).Dot(Vec2{0, 1}); d != 0 {
		t.Errorf("orthogonal Dot() = %v, expected 0", d)
	}
	if d := (Vec2{2, 3}).Dot(Vec2{4, 5}); math.Abs(d-23) > eps {
		t.Errorf("Dot() = %v, expected 23", d)
	}
}

func TestVec2_Normalize(t *testing.T) {
	n := Vec2{3, 4}.Normalize()
	if !vecNear(n, Vec2{0.6, 0.8}) {
		t.Errorf("Normalize() = %v, expected [0.6, 0.8]", n)
	}
	if math.Abs(n.Length()-1) > eps {
		t.Errorf("normalized length = %v, expected 1", n.Length())
	}

	z := Zero.Normalize()
	if !z.IsZero() || math.IsNaN(z.X) || math.IsNaN(z.Y) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVec2_FromPolarAndRotate(t *testing.T) {
	v := FromPolar(2, math.Pi/2)
	if !vecNear(v, Vec2{0, 2}) {
		t.Errorf("FromPolar(2, Pi/2) = %v, expected [0, 2]", v)
	}

	r := Vec2{1, 0}.Rotate(math.Pi / 2)
	if !vecNear(r, Vec2{0, 1}) {
		t.Errorf("Rotate(Pi/2) = %v, expected [0, 1]", r)
	}

	back := r.Rotate(-math.Pi / 2)
	if !vecNear(back, Vec2{1, 0}) {
		t.Errorf("inverse rotation = %v, expected [1, 0]", back)
	}

	if a := (Vec2{0, -1}).Angle(); math.Abs(a+math.Pi/2) > eps {
		t.Errorf("Angle() = %v, expected -Pi/2", a)
	}
}

func TestNormalizeRadians_Range(t *testing.T) {
	inputs := []float64{0, 1, -1, math.Pi, -math.Pi, TwoPi, -TwoPi, 7 * math.Pi, -13.5, 1e6, -1e-18}
	for _, in := range inputs {
		got := NormalizeRadians(in)
		if got < 0 || got >= TwoPi {
			t.Errorf("NormalizeRadians(%v) = %v, outside [0, 2Pi)", in, got)
		}
	}
}

func TestNormalizeRadians_PeriodicInvariance(t *testing.T) {
	for _, theta := range []float64{0, 0.5, 1, 3, -2, -math.Pi / 2, 5.9} {
		for k := -3; k <= 3; k++ {
			a := NormalizeRadians(theta + float64(k)*TwoPi)
			b := NormalizeRadians(theta)
			diff := math.Abs(a - b)
			// Values that land on either side of the seam are equivalent.
			if diff > 1e-9 && math.Abs(diff-TwoPi) > 1e-9 {
				t.Errorf("normalize(%v + %d*2Pi) = %v, normalize(%v) = %v", theta, k, a, theta, b)
			}
		}
	}
}

func TestWrapPi(t *testing.T) {
	if got := WrapPi(3 * math.Pi / 2); math.Abs(got+math.Pi/2) > eps {
		t.Errorf("WrapPi(3Pi/2) = %v, expected -Pi/2", got)
	}
	if got := WrapPi(0.25); math.Abs(got-0.25) > eps {
		t.Errorf("WrapPi(0.25) = %v, expected 0.25", got)
	}
}

func TestClampAndWrapPositive(t *testing.T) {
	if got := Clamp(15, -10, 10); got != 10 {
		t.Errorf("Clamp(15) = %v, expected 10", got)
	}
	if got := Clamp(-999, -10, 10); got != -10 {
		t.Errorf("Clamp(-999) = %v, expected -10", got)
	}
	if got := WrapPositive(-5, 100); got != 95 {
		t.Errorf("WrapPositive(-5, 100) = %v, expected 95", got)
	}
	if got := WrapPositive(250, 100); got != 50 {
		t.Errorf("WrapPositive(250, 100) = %v, expected 50", got)
	}
	if got := Degrees(Radians(90)); math.Abs(got-90) > eps {
		t.Errorf("degree round trip = %v, expected 90", got)
	}
}

func TestWrapDelta(t *testing.T) {
	tests := []struct {
		to, from, period, want float64
	}{
		{7, 3, 100, 4},
		{3, 7, 100, -4},
		{2, 98, 100, 4},
		{98, 2, 100, -4},
		{60, 10, 100, 50 - 100},
		{-3, 5, 0, -8},
	}
	for _, tt := range tests {
		if got := WrapDelta(tt.to, tt.from, tt.period); math.Abs(got-tt.want) > eps {
			t.Errorf("WrapDelta(%v, %v, %v) = %v, expected %v", tt.to, tt.from, tt.period, got, tt.want)
		}
	}
}
