package routing

import (
	"container/heap"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// RefuelTime is the fixed cost in ticks of topping the tank off at a station
// before departure
const RefuelTime = 2

// PlanRequest describes one path-planning problem. From and To must belong to
// the same system; callers validate this before planning. A FuelCapacity of 0
// marks a fuel-exempt ship: the search ignores fuel entirely and returns the
// minimal-time path.
type PlanRequest struct {
	From         string
	To           string
	EngineSpeed  int
	CurrentFuel  int
	FuelCapacity int

	// AllowedModes restricts the flight modes the planner may use.
	// Empty means DefaultFlightModes.
	AllowedModes []shared.FlightMode
}

// searchState is one node of the search space: a planning position plus the
// fuel remaining on arrival. Value type; used as a map key.
type searchState struct {
	node int
	fuel int
}

// ComputePath plans a multi-leg route from req.From to req.To over the given
// graph. It returns the ordered action plan and true, or nil and false when no
// feasible path exists (unknown waypoints, disconnected graph, or fuel
// capacity permanently insufficient even with refueling stops). It never
// mutates the graph and never panics on unreachable goals.
func ComputePath(g *FlightGraph, req PlanRequest) ([]TravelAction, bool) {
	modes := req.AllowedModes
	if len(modes) == 0 {
		modes = shared.DefaultFlightModes()
	}

	startIdx, ok := g.NodeIndex(req.From)
	if !ok {
		return nil, false
	}
	goalIdx, ok := g.NodeIndex(req.To)
	if !ok {
		return nil, false
	}

	fuelExempt := req.FuelCapacity == 0

	start := searchState{node: startIdx, fuel: req.CurrentFuel}
	if fuelExempt {
		start.fuel = 0
	}

	search := &pathSearch{
		graph:       g,
		goal:        goalIdx,
		engineSpeed: req.EngineSpeed,
		capacity:    req.FuelCapacity,
		modes:       modes,
		fuelExempt:  fuelExempt,
	}

	path, found := search.run(start)
	if !found {
		return nil, false
	}

	return translateActions(g, req, modes, path, fuelExempt, startIdx, goalIdx), true
}

type pathSearch struct {
	graph       *FlightGraph
	goal        int
	engineSpeed int
	capacity    int
	modes       []shared.FlightMode
	fuelExempt  bool
}

// heuristic estimates the remaining time as the fastest allowed mode over the
// straight-line distance to the goal. Restricting the estimate to the allowed
// modes keeps it admissible even when Burn is excluded.
func (p *pathSearch) heuristic(node int) int {
	if node == p.goal {
		return 0
	}
	distance := p.graph.Distance(node, p.goal)
	best := -1
	for _, mode := range p.modes {
		t := mode.TravelTime(distance, p.engineSpeed)
		if best < 0 || t < best {
			best = t
		}
	}
	return best
}

// successors generates every fuel-feasible transition out of state. Departing
// from a refueling station models an immediate top-off: the leg's fuel cost is
// paid from a full tank and the fixed RefuelTime is added to the edge weight.
func (p *pathSearch) successors(state searchState, visit func(next searchState, weight int)) {
	fromNode := p.graph.Node(state.node)

	for j := 0; j < p.graph.NodeCount(); j++ {
		if j == state.node {
			continue
		}
		distance := p.graph.Distance(state.node, j)

		for _, mode := range p.modes {
			travelTime := mode.TravelTime(distance, p.engineSpeed)

			if p.fuelExempt {
				visit(searchState{node: j}, travelTime)
				continue
			}

			fuelCost := mode.FuelCost(distance)
			if fromNode.IsRefuelingStation {
				if p.capacity >= fuelCost {
					visit(searchState{node: j, fuel: p.capacity - fuelCost}, RefuelTime+travelTime)
				}
			} else if state.fuel >= fuelCost {
				visit(searchState{node: j, fuel: state.fuel - fuelCost}, travelTime)
			}
		}
	}
}

// run executes a best-first search (A*) and returns the winning state path
func (p *pathSearch) run(start searchState) ([]searchState, bool) {
	gScore := map[searchState]int{start: 0}
	cameFrom := map[searchState]searchState{}

	open := &stateQueue{{state: start, g: 0, f: p.heuristic(start.node)}}
	heap.Init(open)

	for open.Len() > 0 {
		item := heap.Pop(open).(queueItem)
		state := item.state

		if item.g > gScore[state] {
			continue // stale entry, a cheaper path was found since
		}

		if state.node == p.goal {
			return reconstructPath(cameFrom, start, state), true
		}

		p.successors(state, func(next searchState, weight int) {
			tentative := item.g + weight
			if best, seen := gScore[next]; !seen || tentative < best {
				gScore[next] = tentative
				cameFrom[next] = state
				heap.Push(open, queueItem{state: next, g: tentative, f: tentative + p.heuristic(next.node)})
			}
		})
	}

	return nil, false
}

func reconstructPath(cameFrom map[searchState]searchState, start, goal searchState) []searchState {
	path := []searchState{goal}
	current := goal
	for current != start {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}

	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// translateActions turns the winning state path into the executable plan.
// The flight mode of each leg is reverse-derived from the fuel delta observed
// on that edge. Refuel actions are emitted when departing the start station
// and after arriving at any station; fuel-exempt ships never refuel.
func translateActions(
	g *FlightGraph,
	req PlanRequest,
	modes []shared.FlightMode,
	path []searchState,
	fuelExempt bool,
	startIdx, goalIdx int,
) []TravelAction {
	arrivalLabel := func(nodeIdx int) string {
		switch nodeIdx {
		case startIdx:
			return req.From
		case goalIdx:
			return req.To
		}
		node := g.Node(nodeIdx)
		if node.IsRefuelingStation {
			return node.RefuelSymbol
		}
		return node.Waypoints[0]
	}

	refuelLabel := func(nodeIdx int, occupying string) string {
		if g.HasFuel(occupying) {
			return occupying
		}
		return g.Node(nodeIdx).RefuelSymbol
	}

	actions := []TravelAction{}
	currentTime := 0

	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		fromNode := g.Node(from.node)
		toNode := g.Node(to.node)

		if i == 0 && !fuelExempt && fromNode.IsRefuelingStation {
			currentTime += RefuelTime
			actions = append(actions, Refuel{At: refuelLabel(from.node, req.From), TotalTime: currentTime})
		}

		distance := g.Distance(from.node, to.node)
		fuelConsumed := 0
		if !fuelExempt {
			if fromNode.IsRefuelingStation {
				fuelConsumed = req.FuelCapacity - to.fuel
			} else {
				fuelConsumed = from.fuel - to.fuel
			}
		}

		mode := determineTravelMode(modes, distance, fuelConsumed, fuelExempt, req.EngineSpeed)
		travelTime := mode.TravelTime(distance, req.EngineSpeed)
		currentTime += travelTime

		actions = append(actions, Navigate{
			From:            arrivalLabel(from.node),
			To:              arrivalLabel(to.node),
			Distance:        distance,
			TravelTime:      travelTime,
			FuelConsumption: fuelConsumed,
			Mode:            mode,
			TotalTime:       currentTime,
		})

		if !fuelExempt && toNode.IsRefuelingStation {
			currentTime += RefuelTime
			actions = append(actions, Refuel{At: refuelLabel(to.node, arrivalLabel(to.node)), TotalTime: currentTime})
		}
	}

	return actions
}

// determineTravelMode picks the mode actually flown on an edge: the fastest
// allowed mode whose fuel cost matches the observed fuel delta. Fuel-exempt
// ships always fly the fastest allowed mode.
func determineTravelMode(modes []shared.FlightMode, distance, fuelConsumed int, fuelExempt bool, engineSpeed int) shared.FlightMode {
	var best shared.FlightMode
	bestTime := -1
	for _, mode := range modes {
		if !fuelExempt && mode.FuelCost(distance) != fuelConsumed {
			continue
		}
		t := mode.TravelTime(distance, engineSpeed)
		if bestTime < 0 || t < bestTime {
			best = mode
			bestTime = t
		}
	}
	if bestTime < 0 {
		// no mode matches the fuel delta; fall back to the fastest allowed
		return determineTravelMode(modes, distance, 0, true, engineSpeed)
	}
	return best
}

// queueItem is one open-list entry: f is g plus the heuristic estimate
type queueItem struct {
	state searchState
	g     int
	f     int
}

// stateQueue is a min-heap over f scores
type stateQueue []queueItem

func (q stateQueue) Len() int            { return len(q) }
func (q stateQueue) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q stateQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *stateQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *stateQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
