package vehicle

// FuelType identifies a propellant. Two fuel types are equal when their names are.
type FuelType struct {
	Name string
}

func (f FuelType) String() string { return f.Name }

// FuelTank holds propellant of a single type. Stored fuel stays within [0, Capacity].
type FuelTank struct {
	Type     FuelType
	Capacity float64
	stored   float64
}

// NewFuelTank returns a full tank.
func NewFuelTank(ft FuelType, capacity float64) *FuelTank {
	return NewFuelTankWithStored(ft, capacity, capacity)
}

// NewFuelTankWithStored returns a tank holding stored units, clamped to [0, capacity].
func NewFuelTankWithStored(ft FuelType, capacity, stored float64) *FuelTank {
	if capacity < 0 {
		capacity = 0
	}
	t := &FuelTank{Type: ft, Capacity: capacity}
	t.stored = min(max(stored, 0), capacity)
	return t
}

// Stored returns the fuel currently in the tank.
func (t *FuelTank) Stored() float64 {
	if t == nil {
		return 0
	}
	return t.stored
}

// Fraction returns stored / capacity, or 0 for an empty-capacity tank.
func (t *FuelTank) Fraction() float64 {
	if t == nil || t.Capacity <= 0 {
		return 0
	}
	return t.stored / t.Capacity
}

// Consume removes amount from the tank, stopping at empty. Negative amounts are ignored.
func (t *FuelTank) Consume(amount float64) {
	if t == nil || amount <= 0 {
		return
	}
	t.stored = max(0, t.stored-amount)
}

// Empty reports whether the tank has no fuel left.
func (t *FuelTank) Empty() bool {
	return t.Stored() <= 0
}
