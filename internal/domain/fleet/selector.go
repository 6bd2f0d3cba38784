package fleet

import (
	"fmt"
	"math"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// SelectionResult contains the result of ship selection
type SelectionResult struct {
	Ship     *Ship
	Distance int
	Reason   string // Why this ship was selected (e.g., "has cargo", "closest")
}

// Selector implements fleet ship selection business logic
type Selector struct{}

// NewSelector creates a new fleet selector
func NewSelector() *Selector {
	return &Selector{}
}

// SelectOptimalShip selects the best ship to send to a target waypoint.
//
// Rules:
// 1. Ships already carrying the required good have absolute priority
//    (even if in transit)
// 2. Remaining in-transit ships are excluded
// 3. Otherwise the closest ship by Euclidean distance wins
//
// waypoints maps waypoint symbols to their coordinates and must cover every
// candidate ship's location as well as the target.
func (s *Selector) SelectOptimalShip(
	ships []*Ship,
	waypoints map[string]*shared.Waypoint,
	target *shared.Waypoint,
	requiredGood shared.TradeGood,
) (*SelectionResult, error) {
	if len(ships) == 0 {
		return nil, fmt.Errorf("no ships available for selection")
	}
	if target == nil {
		return nil, fmt.Errorf("target waypoint cannot be nil")
	}

	var withCargo *Ship
	var closest *Ship
	minDistance := math.MaxInt

	for _, ship := range ships {
		if requiredGood != "" && ship.Cargo().GetItemUnits(requiredGood) > 0 {
			withCargo = ship
			break
		}

		if ship.IsInTransit() {
			continue
		}

		location, ok := waypoints[ship.Location()]
		if !ok {
			continue
		}

		distance := location.DistanceTo(target)
		if distance < minDistance {
			minDistance = distance
			closest = ship
		}
	}

	if withCargo != nil {
		distance := 0
		if location, ok := waypoints[withCargo.Location()]; ok {
			distance = location.DistanceTo(target)
		}
		return &SelectionResult{
			Ship:     withCargo,
			Distance: distance,
			Reason:   fmt.Sprintf("has %s in cargo", requiredGood),
		}, nil
	}

	if closest == nil {
		return nil, fmt.Errorf("no suitable ship found: all ships in transit or at unknown waypoints")
	}

	return &SelectionResult{
		Ship:     closest,
		Distance: minDistance,
		Reason:   "closest",
	}, nil
}
