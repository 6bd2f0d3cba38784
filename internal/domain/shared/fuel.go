package shared

import "fmt"

// Fuel represents an immutable fuel state.
// A zero-capacity tank marks a fuel-exempt ship (probes and satellites).
type Fuel struct {
	Current  int
	Capacity int
}

// NewFuel creates a new fuel value object with validation
func NewFuel(current, capacity int) (*Fuel, error) {
	if current < 0 {
		return nil, fmt.Errorf("current fuel cannot be negative")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("fuel capacity cannot be negative")
	}
	if capacity > 0 && current > capacity {
		return nil, fmt.Errorf("current fuel cannot exceed capacity")
	}

	return &Fuel{
		Current:  current,
		Capacity: capacity,
	}, nil
}

// IsExempt reports whether the ship ignores fuel entirely
func (f *Fuel) IsExempt() bool {
	return f.Capacity == 0
}

// Consume returns new Fuel with amount consumed.
// Fuel-exempt ships are returned unchanged.
func (f *Fuel) Consume(amount int) (*Fuel, error) {
	if amount < 0 {
		return nil, fmt.Errorf("fuel amount cannot be negative")
	}
	if f.IsExempt() {
		return f, nil
	}
	if amount > f.Current {
		return nil, NewInsufficientFuelError(amount, f.Current)
	}
	return &Fuel{
		Current:  f.Current - amount,
		Capacity: f.Capacity,
	}, nil
}

// Refill returns new Fuel topped off to capacity
func (f *Fuel) Refill() *Fuel {
	return &Fuel{
		Current:  f.Capacity,
		Capacity: f.Capacity,
	}
}

// IsFull checks if fuel is at capacity
func (f *Fuel) IsFull() bool {
	return f.Current == f.Capacity
}

func (f *Fuel) String() string {
	return fmt.Sprintf("Fuel(%d/%d)", f.Current, f.Capacity)
}
