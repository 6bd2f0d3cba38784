package fleet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

func newLeg(to string) routing.Navigate {
	return routing.Navigate{To: to, TravelTime: 98, FuelConsumption: 100}
}

func testDeparture() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func shipAt(t *testing.T, symbol, location string, inventory ...shared.Inventory) *fleet.Ship {
	t.Helper()
	fuel, err := shared.NewFuel(400, 400)
	require.NoError(t, err)
	cargo, err := shared.NewCargo(60, inventory)
	require.NoError(t, err)

	ship, err := fleet.NewShip(symbol, fleet.RoleHauler, location, fuel, cargo, 30, fleet.NavStatusInOrbit)
	require.NoError(t, err)
	return ship
}

func waypointAt(t *testing.T, symbol string, x, y int) *shared.Waypoint {
	t.Helper()
	wp, err := shared.NewWaypoint(symbol, x, y)
	require.NoError(t, err)
	return wp
}

func TestSelectOptimalShip_CargoHolderWins(t *testing.T) {
	// Arrange: the far ship already carries the good the near one does not
	waypoints := map[string]*shared.Waypoint{
		"X1-SYS-A1": waypointAt(t, "X1-SYS-A1", 0, 0),
		"X1-SYS-B1": waypointAt(t, "X1-SYS-B1", 500, 0),
	}
	target := waypointAt(t, "X1-SYS-C1", 10, 0)
	ships := []*fleet.Ship{
		shipAt(t, "NEAR", "X1-SYS-A1"),
		shipAt(t, "FAR-WITH-CARGO", "X1-SYS-B1", shared.Inventory{Symbol: "IRON_ORE", Units: 10}),
	}

	// Act
	result, err := fleet.NewSelector().SelectOptimalShip(ships, waypoints, target, "IRON_ORE")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "FAR-WITH-CARGO", result.Ship.Symbol())
	assert.Contains(t, result.Reason, "IRON_ORE")
}

func TestSelectOptimalShip_ClosestWinsWithoutCargo(t *testing.T) {
	waypoints := map[string]*shared.Waypoint{
		"X1-SYS-A1": waypointAt(t, "X1-SYS-A1", 0, 0),
		"X1-SYS-B1": waypointAt(t, "X1-SYS-B1", 500, 0),
	}
	target := waypointAt(t, "X1-SYS-C1", 10, 0)
	ships := []*fleet.Ship{
		shipAt(t, "NEAR", "X1-SYS-A1"),
		shipAt(t, "FAR", "X1-SYS-B1"),
	}

	result, err := fleet.NewSelector().SelectOptimalShip(ships, waypoints, target, "")

	require.NoError(t, err)
	assert.Equal(t, "NEAR", result.Ship.Symbol())
	assert.Equal(t, 10, result.Distance)
	assert.Equal(t, "closest", result.Reason)
}

func TestSelectOptimalShip_InTransitShipsExcluded(t *testing.T) {
	waypoints := map[string]*shared.Waypoint{
		"X1-SYS-A1": waypointAt(t, "X1-SYS-A1", 0, 0),
		"X1-SYS-B1": waypointAt(t, "X1-SYS-B1", 500, 0),
	}
	target := waypointAt(t, "X1-SYS-C1", 10, 0)

	near := shipAt(t, "NEAR", "X1-SYS-A1")
	require.NoError(t, near.BeginTransit(newLeg("X1-SYS-A1"), testDeparture()))
	far := shipAt(t, "FAR", "X1-SYS-B1")

	result, err := fleet.NewSelector().SelectOptimalShip([]*fleet.Ship{near, far}, waypoints, target, "")

	require.NoError(t, err)
	assert.Equal(t, "FAR", result.Ship.Symbol())
}

func TestSelectOptimalShip_NoCandidates(t *testing.T) {
	selector := fleet.NewSelector()
	target := waypointAt(t, "X1-SYS-C1", 10, 0)

	_, err := selector.SelectOptimalShip(nil, nil, target, "")
	assert.Error(t, err)

	inTransit := shipAt(t, "BUSY", "X1-SYS-A1")
	require.NoError(t, inTransit.BeginTransit(newLeg("X1-SYS-A1"), testDeparture()))
	_, err = selector.SelectOptimalShip([]*fleet.Ship{inTransit}, map[string]*shared.Waypoint{}, target, "")
	assert.Error(t, err)
}
