package vehicle

import (
	"math/rand"
	"testing"
)

func TestFuelTank_ExhaustionClamp(t *testing.T) {
	tank := NewFuelTank(FuelType{Name: "Monopropellant"}, 5000)
	if tank.Stored() != 5000 {
		t.Fatalf("new tank should be full, got %v", tank.Stored())
	}

	tank.Consume(6000)

	if tank.Stored() != 0 {
		t.Errorf("expected stored 0 after over-consumption, got %v", tank.Stored())
	}
	if !tank.Empty() {
		t.Error("expected tank to report empty")
	}
}

func TestFuelTank_NegativeConsumeIgnored(t *testing.T) {
	tank := NewFuelTankWithStored(FuelType{Name: "RP 1"}, 100, 40)
	tank.Consume(-50)
	if tank.Stored() != 40 {
		t.Errorf("negative consume must not refuel, got %v", tank.Stored())
	}
}

func TestFuelTank_StoredClampedOnCreate(t *testing.T) {
	over := NewFuelTankWithStored(FuelType{Name: "RP 1"}, 100, 250)
	if over.Stored() != 100 {
		t.Errorf("expected stored clamped to capacity 100, got %v", over.Stored())
	}
	under := NewFuelTankWithStored(FuelType{Name: "RP 1"}, 100, -3)
	if under.Stored() != 0 {
		t.Errorf("expected stored clamped to 0, got %v", under.Stored())
	}
}

func TestFuelTank_BoundsUnderRandomConsumption(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tank := NewFuelTank(FuelType{Name: "RP 1"}, 1000)

	for i := 0; i < 500; i++ {
		tank.Consume(rng.Float64()*50 - 10)
		if tank.Stored() < 0 || tank.Stored() > tank.Capacity {
			t.Fatalf("step %d: stored %v outside [0, %v]", i, tank.Stored(), tank.Capacity)
		}
	}
}

func TestFuelType_EqualityByName(t *testing.T) {
	a := FuelType{Name: "RP 1"}
	b := FuelType{Name: "RP 1"}
	if a != b {
		t.Error("fuel types with the same name should be equal")
	}

	r := NewRocket(1000, 10, 2, nil)
	r.AddTank(NewFuelTank(a, 500))
	if got := r.FuelRemaining(b); got != 500 {
		t.Errorf("lookup by equal fuel type = %v, expected 500", got)
	}
}

func TestRocket_UnknownFuelTolerated(t *testing.T) {
	r := NewRocket(1000, 10, 2, nil)
	r.AddTank(NewFuelTank(FuelType{Name: "RP 1"}, 500))
	unknown := FuelType{Name: "Hydrazine"}

	if got := r.FuelRemaining(unknown); got != 0 {
		t.Errorf("unknown fuel should report 0, got %v", got)
	}
	if _, ok := r.Tank(unknown); ok {
		t.Error("unknown fuel should have no tank")
	}

	r.ConsumeFuel(unknown, 100)
	if got := r.FuelRemaining(FuelType{Name: "RP 1"}); got != 500 {
		t.Errorf("consuming unknown fuel changed another tank: %v", got)
	}
}
