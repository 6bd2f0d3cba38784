package fleet

import "context"

// ShipRepository defines persistence operations for fleet ships
type ShipRepository interface {
	// FindBySymbol retrieves a ship by its symbol
	FindBySymbol(ctx context.Context, symbol string) (*Ship, error)

	// ListAll retrieves every ship in the fleet
	ListAll(ctx context.Context) ([]*Ship, error)

	// ListByRole retrieves all ships with the given role
	ListByRole(ctx context.Context, role Role) ([]*Ship, error)

	// Save persists a ship (upsert)
	Save(ctx context.Context, ship *Ship) error
}
