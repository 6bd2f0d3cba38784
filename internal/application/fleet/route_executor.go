package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/common"
	domainFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/ports"
)

// RouteExecutor drives a ship along a travel plan action by action.
//
// Each Navigate action becomes a flight-mode change plus a navigate call,
// followed by a wait until the API-reported arrival time. Each Refuel action
// docks, refuels, and returns to orbit. Ship state is persisted after every
// action so a restarted agent resumes from the last completed step.
type RouteExecutor struct {
	api   ports.APIClient
	ships domainFleet.ShipRepository
	clock shared.Clock
	token string
}

// NewRouteExecutor creates a new route executor. If clock is nil, uses
// RealClock (production behavior)
func NewRouteExecutor(
	api ports.APIClient,
	ships domainFleet.ShipRepository,
	clock shared.Clock,
	token string,
) *RouteExecutor {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RouteExecutor{
		api:   api,
		ships: ships,
		clock: clock,
		token: token,
	}
}

// ExecuteRoute executes a travel plan step-by-step
func (e *RouteExecutor) ExecuteRoute(
	ctx context.Context,
	ship *domainFleet.Ship,
	actions []routing.TravelAction,
) error {
	logger := common.LoggerFromContext(ctx)

	// A ship still in transit from a previous command first waits out its
	// arrival, making route execution idempotent
	if ship.IsInTransit() {
		if err := e.waitForArrival(ctx, ship); err != nil {
			return err
		}
	}

	for i, action := range actions {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch step := action.(type) {
		case routing.Refuel:
			if err := e.refuelAt(ctx, ship, step); err != nil {
				return err
			}
		case routing.Navigate:
			if err := e.fly(ctx, ship, step); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown travel action at step %d: %T", i, action)
		}

		if err := e.ships.Save(ctx, ship); err != nil {
			return fmt.Errorf("failed to persist ship state: %w", err)
		}

		logger.Log("INFO", "Travel step complete", map[string]interface{}{
			"ship":     ship.Symbol(),
			"step":     i + 1,
			"of":       len(actions),
			"waypoint": action.Waypoint(),
		})
	}

	return nil
}

func (e *RouteExecutor) refuelAt(ctx context.Context, ship *domainFleet.Ship, step routing.Refuel) error {
	if ship.Fuel().IsFull() {
		return nil
	}

	if err := e.api.DockShip(ctx, ship.Symbol(), e.token); err != nil {
		return fmt.Errorf("failed to dock at %s: %w", step.At, err)
	}
	ship.Dock()

	if _, err := e.api.RefuelShip(ctx, ship.Symbol(), e.token, nil); err != nil {
		return fmt.Errorf("failed to refuel at %s: %w", step.At, err)
	}
	ship.Refuel()

	if err := e.api.OrbitShip(ctx, ship.Symbol(), e.token); err != nil {
		return fmt.Errorf("failed to orbit after refueling at %s: %w", step.At, err)
	}
	ship.Orbit()

	return nil
}

func (e *RouteExecutor) fly(ctx context.Context, ship *domainFleet.Ship, step routing.Navigate) error {
	if ship.Location() == step.To && !ship.IsInTransit() {
		return nil
	}

	if err := e.api.SetFlightMode(ctx, ship.Symbol(), step.Mode.Name(), e.token); err != nil {
		return fmt.Errorf("failed to set flight mode %s: %w", step.Mode, err)
	}

	if ship.NavStatus() == domainFleet.NavStatusDocked {
		if err := e.api.OrbitShip(ctx, ship.Symbol(), e.token); err != nil {
			return fmt.Errorf("failed to orbit before departure: %w", err)
		}
		ship.Orbit()
	}

	result, err := e.api.NavigateShip(ctx, ship.Symbol(), step.To, e.token)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", step.To, err)
	}

	if err := ship.BeginTransit(step, e.clock.Now()); err != nil {
		return err
	}

	e.sleepUntil(ctx, result.ArrivalTime)
	ship.CompleteTransit()

	return nil
}

func (e *RouteExecutor) waitForArrival(ctx context.Context, ship *domainFleet.Ship) error {
	arrival := ship.ArrivalTime()
	if arrival == nil {
		ship.CompleteTransit()
		return nil
	}
	e.sleepUntil(ctx, *arrival)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	ship.CompleteTransit()
	return nil
}

// sleepUntil blocks until the given instant, waking early on cancellation
func (e *RouteExecutor) sleepUntil(ctx context.Context, t time.Time) {
	remaining := t.Sub(e.clock.Now())
	if remaining <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-e.after(remaining):
	}
}

func (e *RouteExecutor) after(d time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.clock.Sleep(d)
		close(done)
	}()
	return done
}
