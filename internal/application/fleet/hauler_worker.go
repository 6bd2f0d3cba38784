package fleet

import (
	"context"
	"fmt"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/common"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/navigation"
	appTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/transfer"
	domainFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	domainTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/transfer"
)

// HaulerWorker sends a hauler to a pickup waypoint and parks it there until
// producer ships have filled its cargo hold
type HaulerWorker struct {
	planner      *navigation.RoutePlanner
	executor     *RouteExecutor
	coordinator  *appTransfer.Coordinator
	ships        domainFleet.ShipRepository
	allowedModes []shared.FlightMode
}

// NewHaulerWorker creates a new hauler worker. Empty allowedModes fall back
// to the planner's defaults
func NewHaulerWorker(
	planner *navigation.RoutePlanner,
	executor *RouteExecutor,
	coordinator *appTransfer.Coordinator,
	ships domainFleet.ShipRepository,
	allowedModes []shared.FlightMode,
) *HaulerWorker {
	return &HaulerWorker{
		planner:      planner,
		executor:     executor,
		coordinator:  coordinator,
		ships:        ships,
		allowedModes: allowedModes,
	}
}

// RunPickup flies the hauler to the pickup waypoint, registers it for cargo
// pickup, and blocks until the hold is full enough to depart. The final
// transfer summary lists everything the hauler received while waiting
func (w *HaulerWorker) RunPickup(
	ctx context.Context,
	shipSymbol string,
	pickupWaypoint string,
) (*domainTransfer.HaulerTransferSummary, error) {
	logger := common.LoggerFromContext(ctx)

	ship, err := w.ships.FindBySymbol(ctx, shipSymbol)
	if err != nil {
		return nil, err
	}

	if ship.Location() != pickupWaypoint {
		if err := w.travelTo(ctx, ship, pickupWaypoint); err != nil {
			return nil, err
		}
	}

	logger.Log("INFO", "Hauler waiting for cargo", map[string]interface{}{
		"ship":     shipSymbol,
		"waypoint": pickupWaypoint,
		"capacity": ship.Cargo().Capacity,
	})

	summary, err := w.coordinator.RegisterHaulerForPickupAndWaitUntilFull(
		ctx, pickupWaypoint, shipSymbol, ship.Cargo())
	if err != nil {
		return nil, err
	}

	ship.SetCargo(summary.Cargo.Clone())
	if err := w.ships.Save(ctx, ship); err != nil {
		return nil, fmt.Errorf("failed to persist hauler state: %w", err)
	}

	logger.Log("INFO", "Hauler full, departing", map[string]interface{}{
		"ship":      shipSymbol,
		"waypoint":  pickupWaypoint,
		"units":     summary.Cargo.Units,
		"transfers": len(summary.Transfers),
	})

	return summary, nil
}

func (w *HaulerWorker) travelTo(ctx context.Context, ship *domainFleet.Ship, destination string) error {
	actions, found, err := w.planner.PlanRoute(ctx, routing.PlanRequest{
		From:         ship.Location(),
		To:           destination,
		EngineSpeed:  ship.EngineSpeed(),
		CurrentFuel:  ship.Fuel().Current,
		FuelCapacity: ship.Fuel().Capacity,
		AllowedModes: w.allowedModes,
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no route from %s to %s for ship %s",
			ship.Location(), destination, ship.Symbol())
	}

	if len(actions) == 0 {
		return nil
	}

	return w.executor.ExecuteRoute(ctx, ship, actions)
}
