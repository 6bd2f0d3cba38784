package ports

import (
	"context"
	"time"
)

// CargoItemData is one inventory entry as returned by the API
type CargoItemData struct {
	Symbol string
	Units  int
}

// CargoData is a ship cargo manifest as returned by the API
type CargoData struct {
	Capacity  int
	Units     int
	Inventory []CargoItemData
}

// ShipData is the API view of a ship
type ShipData struct {
	Symbol         string
	Registration   string
	SystemSymbol   string
	WaypointSymbol string
	NavStatus      string
	ArrivalTime    *time.Time
	FuelCurrent    int
	FuelCapacity   int
	Cargo          CargoData
	EngineSpeed    int
}

// NavigationResult describes an accepted navigate request
type NavigationResult struct {
	FuelConsumed int
	ArrivalTime  time.Time
}

// RefuelResult describes a completed refuel
type RefuelResult struct {
	FuelCurrent  int
	FuelCapacity int
	UnitsAdded   int
}

// TransferResult carries the authoritative cargo state of both ships after
// a ship-to-ship transfer
type TransferResult struct {
	SenderCargo   CargoData
	ReceiverCargo CargoData
}

// WaypointData is the API view of a waypoint
type WaypointData struct {
	Symbol       string
	SystemSymbol string
	Type         string
	X            int
	Y            int
	Traits       []string
}

// WaypointsPage is one page of a system's waypoint listing
type WaypointsPage struct {
	Waypoints []*WaypointData
	Total     int
	Page      int
	Limit     int
}

// MarketData is the API view of a market
type MarketData struct {
	Symbol   string
	Imports  []string
	Exports  []string
	Exchange []string
}

// APIClient defines operations for interacting with the game API.
// This is in infrastructure/ports because it's an external service interface
type APIClient interface {
	// Ship operations
	GetShip(ctx context.Context, symbol, token string) (*ShipData, error)
	ListShips(ctx context.Context, token string) ([]*ShipData, error)
	NavigateShip(ctx context.Context, symbol, destination, token string) (*NavigationResult, error)
	OrbitShip(ctx context.Context, symbol, token string) error
	DockShip(ctx context.Context, symbol, token string) error
	RefuelShip(ctx context.Context, symbol, token string, units *int) (*RefuelResult, error)
	SetFlightMode(ctx context.Context, symbol, flightMode, token string) error

	// Cargo operations
	TransferCargo(ctx context.Context, fromShip, toShip, goodSymbol string, units int, token string) (*TransferResult, error)

	// System operations
	ListWaypoints(ctx context.Context, systemSymbol, token string, page, limit int) (*WaypointsPage, error)
	GetMarket(ctx context.Context, systemSymbol, waypointSymbol, token string) (*MarketData, error)
}
