package vehicle

import (
	"fmt"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/vmath"
)

// Build assembles a rocket from its configured body, tanks and thruster groups and
// binds the guidance computer to it.
func Build(vc config.VehicleConfig, gc GuidanceComputer) (*Rocket, error) {
	r := NewRocket(vc.DryMass, vc.Height, vc.Width, gc)

	for _, tc := range vc.Tanks {
		ft := FuelType{Name: tc.Fuel}
		if tc.Stored != nil {
			r.AddTank(NewFuelTankWithStored(ft, tc.Capacity, *tc.Stored))
		} else {
			r.AddTank(NewFuelTank(ft, tc.Capacity))
		}
	}

	for _, g := range vc.Thrusters {
		spec := ThrusterSpec{
			MaxThrust:    g.MaxThrust,
			MinThrottle:  g.MinThrottle,
			MaxThrottle:  g.MaxThrottle,
			FuelBurnRate: g.FuelBurnRate,
			FuelType:     FuelType{Name: g.Fuel},
			Size:         g.Size,
			GimbalRange:  g.GimbalRange,
		}
		for _, m := range g.Mounts {
			th := spec.Build(m.Name, vmath.Vec2{X: m.X, Y: m.Y}, vmath.Radians(m.OrientationDeg))
			if err := r.AddThruster(th); err != nil {
				return nil, fmt.Errorf("thruster group %q: %w", g.Group, err)
			}
		}
	}

	return r, nil
}
