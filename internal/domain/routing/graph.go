package routing

import (
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/market"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// Node is one planning position in a FlightGraph. Waypoints sharing the exact
// same coordinates are contracted into a single node carrying merged facility
// flags, so the search never has to reason about zero-distance hops between
// co-located facilities.
type Node struct {
	X, Y int

	// Waypoints lists the symbols of every waypoint at this coordinate
	Waypoints []string

	// IsRefuelingStation is true if any co-located market trades FUEL
	IsRefuelingStation bool

	// RefuelSymbol is the waypoint where refueling actually happens
	// (empty if IsRefuelingStation is false)
	RefuelSymbol string
}

// FlightGraph is an in-memory snapshot of one system's waypoints prepared for
// path planning: contracted nodes plus a precomputed distance matrix.
// Built once per planning call; never mutated afterwards.
type FlightGraph struct {
	nodes      []*Node
	distances  [][]int
	byWaypoint map[string]int
	fuelAt     map[string]bool
}

// BuildGraph constructs a FlightGraph from waypoint and market snapshots.
// A waypoint counts as a refueling station if its persisted HasFuel flag is
// set or any market snapshot at its symbol trades FUEL.
func BuildGraph(waypoints []*shared.Waypoint, markets []*market.Market) *FlightGraph {
	fuelAt := make(map[string]bool, len(waypoints))
	for _, wp := range waypoints {
		fuelAt[wp.Symbol] = wp.HasFuel
	}
	for _, m := range markets {
		if m.SellsFuel() {
			fuelAt[m.WaypointSymbol()] = true
		}
	}

	// Contraction pass: one node per distinct coordinate
	type coord struct{ x, y int }
	byCoord := make(map[coord]int)
	g := &FlightGraph{
		byWaypoint: make(map[string]int, len(waypoints)),
		fuelAt:     fuelAt,
	}

	for _, wp := range waypoints {
		key := coord{wp.X, wp.Y}
		idx, exists := byCoord[key]
		if !exists {
			idx = len(g.nodes)
			byCoord[key] = idx
			g.nodes = append(g.nodes, &Node{X: wp.X, Y: wp.Y})
		}
		node := g.nodes[idx]
		node.Waypoints = append(node.Waypoints, wp.Symbol)
		if fuelAt[wp.Symbol] {
			node.IsRefuelingStation = true
			if node.RefuelSymbol == "" {
				node.RefuelSymbol = wp.Symbol
			}
		}
		g.byWaypoint[wp.Symbol] = idx
	}

	// Distance matrix
	n := len(g.nodes)
	g.distances = make([][]int, n)
	for i := 0; i < n; i++ {
		g.distances[i] = make([]int, n)
		for j := 0; j < n; j++ {
			g.distances[i][j] = shared.Distance(g.nodes[i].X, g.nodes[i].Y, g.nodes[j].X, g.nodes[j].Y)
		}
	}

	return g
}

// NodeCount returns the number of contracted nodes
func (g *FlightGraph) NodeCount() int {
	return len(g.nodes)
}

// Node returns the node at the given index
func (g *FlightGraph) Node(idx int) *Node {
	return g.nodes[idx]
}

// NodeIndex resolves a waypoint symbol to its node index
func (g *FlightGraph) NodeIndex(waypointSymbol string) (int, bool) {
	idx, ok := g.byWaypoint[waypointSymbol]
	return idx, ok
}

// Distance returns the precomputed distance between two nodes
func (g *FlightGraph) Distance(from, to int) int {
	return g.distances[from][to]
}

// HasFuel reports whether the specific waypoint itself sells fuel
// (as opposed to a co-located facility on the same node)
func (g *FlightGraph) HasFuel(waypointSymbol string) bool {
	return g.fuelAt[waypointSymbol]
}
