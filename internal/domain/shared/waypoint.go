package shared

import (
	"fmt"
	"math"
)

// Waypoint represents an immutable location in a system's 2-D grid
type Waypoint struct {
	Symbol       string   `json:"symbol"`
	X            int      `json:"x"`
	Y            int      `json:"y"`
	SystemSymbol string   `json:"systemSymbol"`
	Type         string   `json:"type"`
	Traits       []string `json:"traits,omitempty"`
	HasFuel      bool     `json:"has_fuel"`
}

// NewWaypoint creates a new waypoint with validation
func NewWaypoint(symbol string, x, y int) (*Waypoint, error) {
	if symbol == "" {
		return nil, NewValidationError("symbol", "cannot be empty")
	}

	return &Waypoint{
		Symbol:       symbol,
		X:            x,
		Y:            y,
		SystemSymbol: ExtractSystemSymbol(symbol),
		Traits:       []string{},
	}, nil
}

// DistanceTo calculates the Euclidean distance to another waypoint,
// rounded to the nearest integer
func (w *Waypoint) DistanceTo(other *Waypoint) int {
	return Distance(w.X, w.Y, other.X, other.Y)
}

// SameCoordinates reports whether both waypoints occupy the exact same position
func (w *Waypoint) SameCoordinates(other *Waypoint) bool {
	return w.X == other.X && w.Y == other.Y
}

func (w *Waypoint) String() string {
	return fmt.Sprintf("Waypoint(%s)", w.Symbol)
}

// Distance calculates the integer-rounded Euclidean distance between two points
func Distance(x1, y1, x2, y2 int) int {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return int(math.Round(math.Sqrt(dx*dx + dy*dy)))
}

// ExtractSystemSymbol extracts the system symbol from a waypoint symbol
// by finding the last hyphen and returning everything before it.
// Example: "X1-AB12-C3D4" -> "X1-AB12"
func ExtractSystemSymbol(waypointSymbol string) string {
	systemSymbol := waypointSymbol
	for i := len(waypointSymbol) - 1; i >= 0; i-- {
		if waypointSymbol[i] == '-' {
			systemSymbol = waypointSymbol[:i]
			break
		}
	}
	return systemSymbol
}
