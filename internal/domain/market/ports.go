package market

import "context"

// MarketRepository defines the persistence interface for market snapshots
type MarketRepository interface {
	// FindByWaypoint retrieves the latest market snapshot for a waypoint
	FindByWaypoint(ctx context.Context, waypointSymbol string) (*Market, error)

	// ListBySystem retrieves all market snapshots in a system
	ListBySystem(ctx context.Context, systemSymbol string) ([]*Market, error)

	// Save persists a market snapshot (upsert by waypoint)
	Save(ctx context.Context, market *Market) error
}
