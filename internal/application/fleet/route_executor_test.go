package fleet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	appFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/fleet"
	domainFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/ports"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/test/helpers"
)

// navAPI records the ship commands the executor issues. Arrival times are
// reported as already reached so tests never block.
type navAPI struct {
	fakeAPIClient
	clock *shared.MockClock
	calls []string
}

func (a *navAPI) SetFlightMode(ctx context.Context, symbol, flightMode, token string) error {
	a.calls = append(a.calls, "setFlightMode:"+flightMode)
	return nil
}

func (a *navAPI) OrbitShip(ctx context.Context, symbol, token string) error {
	a.calls = append(a.calls, "orbit")
	return nil
}

func (a *navAPI) DockShip(ctx context.Context, symbol, token string) error {
	a.calls = append(a.calls, "dock")
	return nil
}

func (a *navAPI) NavigateShip(ctx context.Context, symbol, destination, token string) (*ports.NavigationResult, error) {
	a.calls = append(a.calls, "navigate:"+destination)
	return &ports.NavigationResult{ArrivalTime: a.clock.Now()}, nil
}

func (a *navAPI) RefuelShip(ctx context.Context, symbol, token string, units *int) (*ports.RefuelResult, error) {
	a.calls = append(a.calls, "refuel")
	return &ports.RefuelResult{FuelCurrent: 400, FuelCapacity: 400}, nil
}

func executorShip(t *testing.T, currentFuel int, status domainFleet.NavStatus) *domainFleet.Ship {
	t.Helper()
	fuel, err := shared.NewFuel(currentFuel, 400)
	require.NoError(t, err)
	ship, err := domainFleet.NewShip("AGENT-1", domainFleet.RoleHauler, "X1-SYS-A1", fuel, shared.EmptyCargo(60), 30, status)
	require.NoError(t, err)
	return ship
}

func TestRouteExecutor_ExecutesRefuelAndNavigateSteps(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	shipRepo := persistence.NewGormShipRepository(db)
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	api := &navAPI{clock: clock}
	executor := appFleet.NewRouteExecutor(api, shipRepo, clock, "token")

	ship := executorShip(t, 50, domainFleet.NavStatusInOrbit)
	plan := []routing.TravelAction{
		routing.Refuel{At: "X1-SYS-A1", TotalTime: 2},
		routing.Navigate{
			From:            "X1-SYS-A1",
			To:              "X1-SYS-B1",
			Distance:        100,
			TravelTime:      98,
			FuelConsumption: 100,
			Mode:            shared.FlightModeCruise,
			TotalTime:       100,
		},
	}

	// Act
	err := executor.ExecuteRoute(context.Background(), ship, plan)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"dock", "refuel", "orbit", "setFlightMode:CRUISE", "navigate:X1-SYS-B1"}, api.calls)
	assert.Equal(t, "X1-SYS-B1", ship.Location())
	assert.Equal(t, domainFleet.NavStatusInOrbit, ship.NavStatus())
	assert.Equal(t, 300, ship.Fuel().Current, "the tank was topped off before the leg consumed its share")

	// state survived into storage
	stored, err := shipRepo.FindBySymbol(context.Background(), "AGENT-1")
	require.NoError(t, err)
	assert.Equal(t, "X1-SYS-B1", stored.Location())
}

func TestRouteExecutor_SkipsRefuelWhenTankIsFull(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	api := &navAPI{clock: clock}
	executor := appFleet.NewRouteExecutor(api, persistence.NewGormShipRepository(db), clock, "token")

	ship := executorShip(t, 400, domainFleet.NavStatusInOrbit)

	err := executor.ExecuteRoute(context.Background(), ship, []routing.TravelAction{
		routing.Refuel{At: "X1-SYS-A1", TotalTime: 2},
	})

	require.NoError(t, err)
	assert.Empty(t, api.calls, "a full tank needs no dock/refuel/orbit cycle")
}

func TestRouteExecutor_SkipsNavigateToCurrentLocation(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	api := &navAPI{clock: clock}
	executor := appFleet.NewRouteExecutor(api, persistence.NewGormShipRepository(db), clock, "token")

	ship := executorShip(t, 400, domainFleet.NavStatusInOrbit)

	err := executor.ExecuteRoute(context.Background(), ship, []routing.TravelAction{
		routing.Navigate{From: "X1-SYS-A1", To: "X1-SYS-A1", Mode: shared.FlightModeCruise},
	})

	require.NoError(t, err)
	assert.Empty(t, api.calls)
	assert.Equal(t, "X1-SYS-A1", ship.Location())
}

func TestRouteExecutor_OrbitsADockedShipBeforeDeparture(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	api := &navAPI{clock: clock}
	executor := appFleet.NewRouteExecutor(api, persistence.NewGormShipRepository(db), clock, "token")

	ship := executorShip(t, 400, domainFleet.NavStatusDocked)

	err := executor.ExecuteRoute(context.Background(), ship, []routing.TravelAction{
		routing.Navigate{From: "X1-SYS-A1", To: "X1-SYS-B1", TravelTime: 57, FuelConsumption: 200, Mode: shared.FlightModeBurn},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"setFlightMode:BURN", "orbit", "navigate:X1-SYS-B1"}, api.calls)
	assert.Equal(t, domainFleet.NavStatusInOrbit, ship.NavStatus())
}
