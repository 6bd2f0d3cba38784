package routing

import (
	"fmt"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// TravelAction is one step of an executable travel plan: either a flight
// between two waypoints or a refuel at the current one. Actions carry the
// cumulative elapsed time since plan start and are consumed front-to-back by
// the ship execution loop.
type TravelAction interface {
	// CumulativeTime returns elapsed ticks from plan start once this
	// action completes
	CumulativeTime() int

	// Waypoint returns the waypoint the ship occupies after this action
	Waypoint() string
}

// Navigate moves the ship between two waypoints in a specific flight mode
type Navigate struct {
	From            string
	To              string
	Distance        int
	TravelTime      int
	FuelConsumption int
	Mode            shared.FlightMode
	TotalTime       int
}

func (n Navigate) CumulativeTime() int { return n.TotalTime }
func (n Navigate) Waypoint() string    { return n.To }

func (n Navigate) String() string {
	return fmt.Sprintf("Navigate(%s → %s, %du, %d⛽, %s, t=%d)",
		n.From, n.To, n.Distance, n.FuelConsumption, n.Mode, n.TotalTime)
}

// Refuel tops the ship's tank off at its current waypoint
type Refuel struct {
	At        string
	TotalTime int
}

func (r Refuel) CumulativeTime() int { return r.TotalTime }
func (r Refuel) Waypoint() string    { return r.At }

func (r Refuel) String() string {
	return fmt.Sprintf("Refuel(%s, t=%d)", r.At, r.TotalTime)
}

// PlanDuration returns the total elapsed time of a plan, or 0 for an empty one
func PlanDuration(actions []TravelAction) int {
	if len(actions) == 0 {
		return 0
	}
	return actions[len(actions)-1].CumulativeTime()
}
