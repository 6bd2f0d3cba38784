package routing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/market"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

func makeWaypoint(t *testing.T, symbol string, x, y int, hasFuel bool) *shared.Waypoint {
	t.Helper()
	wp, err := shared.NewWaypoint(symbol, x, y)
	require.NoError(t, err)
	wp.HasFuel = hasFuel
	return wp
}

func makeFuelMarket(t *testing.T, waypointSymbol string) *market.Market {
	t.Helper()
	m, err := market.NewMarket(waypointSymbol, nil, nil, []shared.TradeGood{shared.TradeGoodFuel}, time.Now())
	require.NoError(t, err)
	return m
}

func TestBuildGraph_ContractsCoLocatedWaypoints(t *testing.T) {
	// Arrange: two waypoints at the same coordinate, one elsewhere
	waypoints := []*shared.Waypoint{
		makeWaypoint(t, "X1-SYS-A1", 10, 10, false),
		makeWaypoint(t, "X1-SYS-A2", 10, 10, true),
		makeWaypoint(t, "X1-SYS-B1", 50, 50, false),
	}

	// Act
	g := routing.BuildGraph(waypoints, nil)

	// Assert
	assert.Equal(t, 2, g.NodeCount())

	idxA1, ok := g.NodeIndex("X1-SYS-A1")
	require.True(t, ok)
	idxA2, ok := g.NodeIndex("X1-SYS-A2")
	require.True(t, ok)
	assert.Equal(t, idxA1, idxA2, "co-located waypoints share a node")

	idxB, ok := g.NodeIndex("X1-SYS-B1")
	require.True(t, ok)
	assert.NotEqual(t, idxA1, idxB)
}

func TestBuildGraph_MergesFuelFlagsAcrossNode(t *testing.T) {
	// Arrange: the station at the shared coordinate sells fuel, its neighbor does not
	waypoints := []*shared.Waypoint{
		makeWaypoint(t, "X1-SYS-A1", 10, 10, false),
		makeWaypoint(t, "X1-SYS-A2", 10, 10, true),
	}

	// Act
	g := routing.BuildGraph(waypoints, nil)

	// Assert
	idx, ok := g.NodeIndex("X1-SYS-A1")
	require.True(t, ok)
	node := g.Node(idx)
	assert.True(t, node.IsRefuelingStation)
	assert.Equal(t, "X1-SYS-A2", node.RefuelSymbol)

	assert.False(t, g.HasFuel("X1-SYS-A1"), "fuel availability stays per waypoint")
	assert.True(t, g.HasFuel("X1-SYS-A2"))
}

func TestBuildGraph_MarketFuelMarksStation(t *testing.T) {
	// Arrange: the waypoint snapshot has no fuel flag but the market trades FUEL
	waypoints := []*shared.Waypoint{
		makeWaypoint(t, "X1-SYS-A1", 0, 0, false),
	}
	markets := []*market.Market{makeFuelMarket(t, "X1-SYS-A1")}

	// Act
	g := routing.BuildGraph(waypoints, markets)

	// Assert
	idx, ok := g.NodeIndex("X1-SYS-A1")
	require.True(t, ok)
	assert.True(t, g.Node(idx).IsRefuelingStation)
	assert.True(t, g.HasFuel("X1-SYS-A1"))
}

func TestFlightGraph_DistanceMatrix(t *testing.T) {
	waypoints := []*shared.Waypoint{
		makeWaypoint(t, "X1-SYS-A1", 0, 0, false),
		makeWaypoint(t, "X1-SYS-B1", 3, 4, false),
	}

	g := routing.BuildGraph(waypoints, nil)

	idxA, _ := g.NodeIndex("X1-SYS-A1")
	idxB, _ := g.NodeIndex("X1-SYS-B1")
	assert.Equal(t, 5, g.Distance(idxA, idxB))
	assert.Equal(t, 5, g.Distance(idxB, idxA))
	assert.Equal(t, 0, g.Distance(idxA, idxA))
}

func TestFlightGraph_NodeIndexUnknownWaypoint(t *testing.T) {
	g := routing.BuildGraph([]*shared.Waypoint{makeWaypoint(t, "X1-SYS-A1", 0, 0, false)}, nil)

	_, ok := g.NodeIndex("X1-SYS-ZZ")

	assert.False(t, ok)
}
