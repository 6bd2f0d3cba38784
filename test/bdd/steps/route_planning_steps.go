package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	appNavigation "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/navigation"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/market"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

type routePlanningContext struct {
	waypoints map[string]*shared.Waypoint

	engineSpeed  int
	currentFuel  int
	fuelCapacity int

	actions     []routing.TravelAction
	found       bool
	planningErr error
}

// inMemoryWaypointRepository backs the planner with the scenario's waypoints
type inMemoryWaypointRepository struct {
	waypoints map[string]*shared.Waypoint
}

func (r *inMemoryWaypointRepository) FindBySymbol(ctx context.Context, symbol, systemSymbol string) (*shared.Waypoint, error) {
	if wp, ok := r.waypoints[symbol]; ok {
		return wp, nil
	}
	return nil, fmt.Errorf("waypoint not found: %s", symbol)
}

func (r *inMemoryWaypointRepository) ListBySystem(ctx context.Context, systemSymbol string) ([]*shared.Waypoint, error) {
	var result []*shared.Waypoint
	for _, wp := range r.waypoints {
		if wp.SystemSymbol == systemSymbol {
			result = append(result, wp)
		}
	}
	return result, nil
}

func (r *inMemoryWaypointRepository) Save(ctx context.Context, waypoint *shared.Waypoint) error {
	r.waypoints[waypoint.Symbol] = waypoint
	return nil
}

// emptyMarketRepository satisfies the planner when no market snapshots exist;
// fuel availability comes from the waypoint flags instead
type emptyMarketRepository struct{}

func (r *emptyMarketRepository) FindByWaypoint(ctx context.Context, waypointSymbol string) (*market.Market, error) {
	return nil, fmt.Errorf("market not found: %s", waypointSymbol)
}

func (r *emptyMarketRepository) ListBySystem(ctx context.Context, systemSymbol string) ([]*market.Market, error) {
	return nil, nil
}

func (r *emptyMarketRepository) Save(ctx context.Context, m *market.Market) error {
	return nil
}

func (ctx *routePlanningContext) reset() {
	ctx.waypoints = make(map[string]*shared.Waypoint)
	ctx.engineSpeed = 30
	ctx.currentFuel = 0
	ctx.fuelCapacity = 0
	ctx.actions = nil
	ctx.found = false
	ctx.planningErr = nil
}

// Given steps

func (ctx *routePlanningContext) aWaypointAtCoordinates(symbol string, x, y int) error {
	waypoint, err := shared.NewWaypoint(symbol, x, y)
	if err != nil {
		return err
	}
	ctx.waypoints[symbol] = waypoint
	return nil
}

func (ctx *routePlanningContext) aWaypointAtCoordinatesWithFuelStation(symbol string, x, y int) error {
	if err := ctx.aWaypointAtCoordinates(symbol, x, y); err != nil {
		return err
	}
	ctx.waypoints[symbol].HasFuel = true
	return nil
}

func (ctx *routePlanningContext) aShipWithEngineSpeedAndFuel(engineSpeed, currentFuel, fuelCapacity int) error {
	ctx.engineSpeed = engineSpeed
	ctx.currentFuel = currentFuel
	ctx.fuelCapacity = fuelCapacity
	return nil
}

// When steps

func (ctx *routePlanningContext) iPlanARouteFromTo(from, to string) error {
	planner := appNavigation.NewRoutePlanner(
		&inMemoryWaypointRepository{waypoints: ctx.waypoints},
		&emptyMarketRepository{},
	)

	ctx.actions, ctx.found, ctx.planningErr = planner.PlanRoute(context.Background(), routing.PlanRequest{
		From:         from,
		To:           to,
		EngineSpeed:  ctx.engineSpeed,
		CurrentFuel:  ctx.currentFuel,
		FuelCapacity: ctx.fuelCapacity,
	})
	return nil
}

// Then steps

func (ctx *routePlanningContext) aRouteShouldBeFound() error {
	if ctx.planningErr != nil {
		return fmt.Errorf("expected a route but planning failed: %w", ctx.planningErr)
	}
	if !ctx.found {
		return fmt.Errorf("expected a route but none was found")
	}
	return nil
}

func (ctx *routePlanningContext) noRouteShouldBeFound() error {
	if ctx.planningErr != nil {
		return fmt.Errorf("expected an infeasible route, got error: %w", ctx.planningErr)
	}
	if ctx.found {
		return fmt.Errorf("expected no route, but one was found: %v", ctx.actions)
	}
	return nil
}

func (ctx *routePlanningContext) planningShouldFail() error {
	if ctx.planningErr == nil {
		return fmt.Errorf("expected planning to fail, but it succeeded")
	}
	return nil
}

func (ctx *routePlanningContext) theRouteShouldHaveNavigateSteps(expected int) error {
	count := 0
	for _, action := range ctx.actions {
		if _, ok := action.(routing.Navigate); ok {
			count++
		}
	}
	if count != expected {
		return fmt.Errorf("expected %d navigate steps, got %d in %v", expected, count, ctx.actions)
	}
	return nil
}

func (ctx *routePlanningContext) theTotalPlanDurationShouldBe(expected int) error {
	if duration := routing.PlanDuration(ctx.actions); duration != expected {
		return fmt.Errorf("expected a plan duration of %d, got %d", expected, duration)
	}
	return nil
}

func (ctx *routePlanningContext) theFirstNavigateStepShouldUseFlightMode(modeName string) error {
	for _, action := range ctx.actions {
		if step, ok := action.(routing.Navigate); ok {
			if step.Mode.Name() != modeName {
				return fmt.Errorf("expected flight mode %s, got %s", modeName, step.Mode.Name())
			}
			return nil
		}
	}
	return fmt.Errorf("the plan contains no navigate step")
}

func (ctx *routePlanningContext) theRouteShouldIncludeARefuelAt(waypointSymbol string) error {
	for _, action := range ctx.actions {
		if step, ok := action.(routing.Refuel); ok && step.At == waypointSymbol {
			return nil
		}
	}
	return fmt.Errorf("no refuel at %s in plan %v", waypointSymbol, ctx.actions)
}

// InitializeRoutePlanningScenario registers the route planning step definitions
func InitializeRoutePlanningScenario(sc *godog.ScenarioContext) {
	planCtx := &routePlanningContext{}

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		planCtx.reset()
		return ctx, nil
	})

	sc.Step(`^a waypoint "([^"]*)" at coordinates (-?\d+), (-?\d+)$`, planCtx.aWaypointAtCoordinates)
	sc.Step(`^a waypoint "([^"]*)" at coordinates (-?\d+), (-?\d+) with a fuel station$`, planCtx.aWaypointAtCoordinatesWithFuelStation)
	sc.Step(`^a ship with engine speed (\d+) and fuel (\d+) of (\d+)$`, planCtx.aShipWithEngineSpeedAndFuel)
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)"$`, planCtx.iPlanARouteFromTo)
	sc.Step(`^a route should be found$`, planCtx.aRouteShouldBeFound)
	sc.Step(`^no route should be found$`, planCtx.noRouteShouldBeFound)
	sc.Step(`^planning should fail$`, planCtx.planningShouldFail)
	sc.Step(`^the route should have (\d+) navigate steps?$`, planCtx.theRouteShouldHaveNavigateSteps)
	sc.Step(`^the total plan duration should be (\d+)$`, planCtx.theTotalPlanDurationShouldBe)
	sc.Step(`^the first navigate step should use flight mode "([^"]*)"$`, planCtx.theFirstNavigateStepShouldUseFlightMode)
	sc.Step(`^the route should include a refuel at "([^"]*)"$`, planCtx.theRouteShouldIncludeARefuelAt)
}
