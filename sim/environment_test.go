package sim

import "testing"

func TestEnvironment_Density(t *testing.T) {
	env := DefaultEnvironment()

	tests := []struct {
		alt  float64
		want float64
	}{
		{-10, 1},
		{0, 1},
		{50_000, 0.25},
		{100_000, 0},
		{150_000, 0},
	}
	for _, tt := range tests {
		if got := env.Density(tt.alt); !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("Density(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}

func TestEnvironment_DensityMonotonic(t *testing.T) {
	env := DefaultEnvironment()
	prev := env.Density(0)
	for alt := 1000.0; alt <= 110_000; alt += 1000 {
		d := env.Density(alt)
		if d > prev {
			t.Fatalf("density increased at %v: %v > %v", alt, d, prev)
		}
		if d < 0 || d > 1 {
			t.Fatalf("density out of range at %v: %v", alt, d)
		}
		prev = d
	}
}

func TestEnvironment_Gravity(t *testing.T) {
	env := DefaultEnvironment()

	tests := []struct {
		name string
		vx   float64
		want float64
	}{
		{"standing", 0, 9.81},
		{"half orbital", 3920, 4.905},
		{"half orbital westward", -3920, 4.905},
		{"orbital", 7840, 0},
		{"twice orbital is negative", 15680, -9.81},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.Gravity(tt.vx); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("Gravity(%v) = %v, want %v", tt.vx, got, tt.want)
			}
		})
	}
}
