package fleet

import (
	"time"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// Role describes what a ship does for the fleet
type Role string

const (
	RoleMiner   Role = "MINER"
	RoleHauler  Role = "HAULER"
	RoleCommand Role = "COMMAND"
	RoleProbe   Role = "PROBE"
)

// NavStatus represents ship navigation status
type NavStatus string

const (
	NavStatusDocked    NavStatus = "DOCKED"
	NavStatusInOrbit   NavStatus = "IN_ORBIT"
	NavStatusInTransit NavStatus = "IN_TRANSIT"
)

// Ship entity - a fleet spacecraft with fuel, cargo and an engine.
//
// Invariants:
// - Symbol is unique and non-empty
// - EngineSpeed is positive
// - Fuel operations respect capacity limits
// - Cargo units never exceed cargo capacity
type Ship struct {
	symbol       string
	role         Role
	location     string
	systemSymbol string
	fuel         *shared.Fuel
	cargo        *shared.Cargo
	engineSpeed  int
	navStatus    NavStatus
	arrivalTime  *time.Time
}

// NewShip creates a new Ship entity with validation
func NewShip(
	symbol string,
	role Role,
	location string,
	fuel *shared.Fuel,
	cargo *shared.Cargo,
	engineSpeed int,
	navStatus NavStatus,
) (*Ship, error) {
	if symbol == "" {
		return nil, shared.NewValidationError("symbol", "cannot be empty")
	}
	if location == "" {
		return nil, shared.NewValidationError("location", "cannot be empty")
	}
	if fuel == nil {
		return nil, shared.NewValidationError("fuel", "cannot be nil")
	}
	if cargo == nil {
		return nil, shared.NewValidationError("cargo", "cannot be nil")
	}
	if engineSpeed < 1 {
		return nil, shared.NewValidationError("engine_speed", "must be positive")
	}

	return &Ship{
		symbol:       symbol,
		role:         role,
		location:     location,
		systemSymbol: shared.ExtractSystemSymbol(location),
		fuel:         fuel,
		cargo:        cargo,
		engineSpeed:  engineSpeed,
		navStatus:    navStatus,
	}, nil
}

// Symbol returns the ship symbol
func (s *Ship) Symbol() string { return s.symbol }

// Role returns the ship's fleet role
func (s *Ship) Role() Role { return s.role }

// Location returns the symbol of the waypoint the ship occupies (or is
// headed to while in transit)
func (s *Ship) Location() string { return s.location }

// SystemSymbol returns the system the ship is in
func (s *Ship) SystemSymbol() string { return s.systemSymbol }

// Fuel returns the ship's fuel state
func (s *Ship) Fuel() *shared.Fuel { return s.fuel }

// Cargo returns the ship's cargo hold
func (s *Ship) Cargo() *shared.Cargo { return s.cargo }

// EngineSpeed returns the ship's engine speed rating
func (s *Ship) EngineSpeed() int { return s.engineSpeed }

// NavStatus returns the current navigation status
func (s *Ship) NavStatus() NavStatus { return s.navStatus }

// ArrivalTime returns when an in-transit ship arrives, nil otherwise
func (s *Ship) ArrivalTime() *time.Time { return s.arrivalTime }

// IsInTransit returns true while the ship is between waypoints
func (s *Ship) IsInTransit() bool { return s.navStatus == NavStatusInTransit }

// BeginTransit marks the ship in transit towards the navigate action's
// destination, consuming the fuel the leg requires
func (s *Ship) BeginTransit(action routing.Navigate, departedAt time.Time) error {
	fuel, err := s.fuel.Consume(action.FuelConsumption)
	if err != nil {
		return err
	}
	s.fuel = fuel
	arrival := departedAt.Add(time.Duration(action.TravelTime) * time.Second)
	s.location = action.To
	s.navStatus = NavStatusInTransit
	s.arrivalTime = &arrival
	return nil
}

// CompleteTransit puts the ship in orbit at its destination
func (s *Ship) CompleteTransit() {
	s.navStatus = NavStatusInOrbit
	s.arrivalTime = nil
}

// Dock docks the ship at its current waypoint
func (s *Ship) Dock() {
	if s.navStatus == NavStatusInOrbit {
		s.navStatus = NavStatusDocked
	}
}

// Orbit moves a docked ship into orbit
func (s *Ship) Orbit() {
	if s.navStatus == NavStatusDocked {
		s.navStatus = NavStatusInOrbit
	}
}

// Refuel fills the tank back to capacity
func (s *Ship) Refuel() {
	s.fuel = s.fuel.Refill()
}

// SetCargo replaces the ship's cargo hold with the authoritative state
// returned by the game API
func (s *Ship) SetCargo(cargo *shared.Cargo) {
	if cargo != nil {
		s.cargo = cargo
	}
}
