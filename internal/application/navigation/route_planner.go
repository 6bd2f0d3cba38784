package navigation

import (
	"context"
	"fmt"
	"time"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/metrics"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/market"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// RoutePlanner computes executable travel plans from persisted waypoint and
// market snapshots. Planning itself is a pure function of the snapshots; the
// planner never mutates ship or world state.
type RoutePlanner struct {
	waypoints routing.WaypointRepository
	markets   market.MarketRepository
}

// NewRoutePlanner creates a route planner backed by the given repositories
func NewRoutePlanner(waypoints routing.WaypointRepository, markets market.MarketRepository) *RoutePlanner {
	return &RoutePlanner{
		waypoints: waypoints,
		markets:   markets,
	}
}

// PlanRoute validates the request, loads the system snapshot, and runs the
// pathfinder. A cross-system request is a caller bug and fails with a
// ValidationError before any search happens. An infeasible route is not an
// error: it returns (nil, false, nil) and the caller decides what to do.
func (p *RoutePlanner) PlanRoute(ctx context.Context, req routing.PlanRequest) ([]routing.TravelAction, bool, error) {
	if req.From == "" {
		return nil, false, shared.NewValidationError("from", "cannot be empty")
	}
	if req.To == "" {
		return nil, false, shared.NewValidationError("to", "cannot be empty")
	}

	fromSystem := shared.ExtractSystemSymbol(req.From)
	toSystem := shared.ExtractSystemSymbol(req.To)
	if fromSystem != toSystem {
		return nil, false, shared.NewValidationError("to",
			fmt.Sprintf("waypoints belong to different systems: %s vs %s", fromSystem, toSystem))
	}

	waypoints, err := p.waypoints.ListBySystem(ctx, fromSystem)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load waypoints for %s: %w", fromSystem, err)
	}

	markets, err := p.markets.ListBySystem(ctx, fromSystem)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load markets for %s: %w", fromSystem, err)
	}

	graph := routing.BuildGraph(waypoints, markets)

	started := time.Now()
	actions, found := routing.ComputePath(graph, req)
	metrics.RecordPathComputed(fromSystem, found, len(actions), time.Since(started).Seconds())

	return actions, found, nil
}
