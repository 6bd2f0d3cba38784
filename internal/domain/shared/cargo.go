package shared

import "fmt"

// Inventory represents the units held of one distinct trade good
type Inventory struct {
	Symbol TradeGood `json:"symbol"`
	Units  int       `json:"units"`
}

// Cargo represents a ship's cargo manifest.
//
// Invariants:
// - Units equals the sum of inventory entries and never exceeds Capacity
// - each trade good appears at most once in Inventory
type Cargo struct {
	Capacity  int         `json:"capacity"`
	Units     int         `json:"units"`
	Inventory []Inventory `json:"inventory"`
}

// NewCargo creates a cargo manifest with validation
func NewCargo(capacity int, inventory []Inventory) (*Cargo, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("cargo capacity cannot be negative")
	}

	units := 0
	seen := map[TradeGood]bool{}
	for _, item := range inventory {
		if item.Units < 0 {
			return nil, fmt.Errorf("cargo units cannot be negative")
		}
		if seen[item.Symbol] {
			return nil, fmt.Errorf("trade good %s appears more than once", item.Symbol)
		}
		seen[item.Symbol] = true
		units += item.Units
	}
	if units > capacity {
		return nil, fmt.Errorf("cargo units %d exceed capacity %d", units, capacity)
	}

	return &Cargo{
		Capacity:  capacity,
		Units:     units,
		Inventory: append([]Inventory(nil), inventory...),
	}, nil
}

// EmptyCargo creates an empty cargo hold with the given capacity
func EmptyCargo(capacity int) *Cargo {
	return &Cargo{Capacity: capacity, Inventory: []Inventory{}}
}

// Clone returns a deep copy of the cargo manifest
func (c *Cargo) Clone() *Cargo {
	return &Cargo{
		Capacity:  c.Capacity,
		Units:     c.Units,
		Inventory: append([]Inventory(nil), c.Inventory...),
	}
}

// AvailableCapacity calculates the free cargo space
func (c *Cargo) AvailableCapacity() int {
	return c.Capacity - c.Units
}

// FillRatio returns units/capacity, or 0 for a zero-capacity hold
func (c *Cargo) FillRatio() float64 {
	if c.Capacity <= 0 {
		return 0
	}
	return float64(c.Units) / float64(c.Capacity)
}

// GetItemUnits gets units of a specific trade good in cargo (0 if not present)
func (c *Cargo) GetItemUnits(symbol TradeGood) int {
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			return item.Units
		}
	}
	return 0
}

// HasOnly reports whether the cargo contains no goods other than symbol
func (c *Cargo) HasOnly(symbol TradeGood) bool {
	if len(c.Inventory) == 0 {
		return false
	}
	for _, item := range c.Inventory {
		if item.Symbol != symbol {
			return false
		}
	}
	return true
}

// IsEmpty checks if the cargo hold is empty
func (c *Cargo) IsEmpty() bool {
	return c.Units == 0
}

// AddUnits adds units of a trade good, merging with an existing inventory
// entry if one exists. Fails with NotEnoughSpaceError if free capacity is
// insufficient.
func (c *Cargo) AddUnits(symbol TradeGood, units int) error {
	available := c.AvailableCapacity()
	if available < units {
		return NewNotEnoughSpaceError(units, available)
	}

	for i := range c.Inventory {
		if c.Inventory[i].Symbol == symbol {
			c.Inventory[i].Units += units
			c.Units += units
			return nil
		}
	}

	c.Inventory = append(c.Inventory, Inventory{Symbol: symbol, Units: units})
	c.Units += units
	return nil
}

// RemoveUnits removes units of a trade good. The inventory entry is dropped
// entirely when it reaches zero. Fails with NotEnoughItemsError if the cargo
// does not hold the requested amount.
func (c *Cargo) RemoveUnits(symbol TradeGood, units int) error {
	for i := range c.Inventory {
		if c.Inventory[i].Symbol != symbol {
			continue
		}
		if c.Inventory[i].Units < units {
			return NewNotEnoughItemsError(units, c.Inventory[i].Units)
		}
		c.Inventory[i].Units -= units
		if c.Inventory[i].Units == 0 {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		}
		c.Units -= units
		return nil
	}
	return NewNotEnoughItemsError(units, 0)
}

func (c *Cargo) String() string {
	return fmt.Sprintf("Cargo(%d/%d)", c.Units, c.Capacity)
}
