package routing

import (
	"context"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// WaypointRepository defines the persistence interface for waypoint snapshots
type WaypointRepository interface {
	// FindBySymbol retrieves a waypoint by symbol
	FindBySymbol(ctx context.Context, symbol, systemSymbol string) (*shared.Waypoint, error)

	// ListBySystem retrieves all waypoints in a system
	ListBySystem(ctx context.Context, systemSymbol string) ([]*shared.Waypoint, error)

	// Save persists a waypoint (upsert by symbol)
	Save(ctx context.Context, waypoint *shared.Waypoint) error
}
