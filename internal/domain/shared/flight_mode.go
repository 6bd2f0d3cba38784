package shared

import (
	"fmt"
	"math"
)

// FlightMode represents a travel speed/fuel trade-off profile
type FlightMode int

const (
	FlightModeBurn FlightMode = iota
	FlightModeCruise
	FlightModeDrift
	FlightModeStealth
)

// fixedTravelOverhead is added to every leg regardless of distance or mode
const fixedTravelOverhead = 15.0

type flightModeConfig struct {
	Name           string
	TimeMultiplier float64
}

var flightModeConfigs = map[FlightMode]flightModeConfig{
	FlightModeBurn:    {"BURN", 12.5},
	FlightModeCruise:  {"CRUISE", 25},
	FlightModeDrift:   {"DRIFT", 250},
	FlightModeStealth: {"STEALTH", 30},
}

// AllFlightModes lists every mode, fastest first
func AllFlightModes() []FlightMode {
	return []FlightMode{FlightModeBurn, FlightModeCruise, FlightModeDrift, FlightModeStealth}
}

// DefaultFlightModes are the modes a planner considers unless told otherwise
func DefaultFlightModes() []FlightMode {
	return []FlightMode{FlightModeBurn, FlightModeCruise, FlightModeDrift}
}

// Name returns the mode name
func (f FlightMode) Name() string {
	if config, ok := flightModeConfigs[f]; ok {
		return config.Name
	}
	return "UNKNOWN"
}

// FuelCost calculates fuel cost for the given distance.
// Drift always costs a single unit; Cruise and Stealth cost one unit per
// distance unit; Burn costs double. Zero distance is clamped to 1.
func (f FlightMode) FuelCost(distance int) int {
	clamped := distance
	if clamped < 1 {
		clamped = 1
	}
	switch f {
	case FlightModeDrift:
		return 1
	case FlightModeBurn:
		return 2 * clamped
	default:
		return clamped
	}
}

// TravelTime calculates travel time in ticks for the given distance and
// engine speed
func (f FlightMode) TravelTime(distance, engineSpeed int) int {
	config := flightModeConfigs[f]
	if engineSpeed < 1 {
		engineSpeed = 1
	}
	clamped := float64(distance)
	if clamped < 1 {
		clamped = 1
	}
	return int(math.Round(clamped*config.TimeMultiplier/float64(engineSpeed) + fixedTravelOverhead))
}

func (f FlightMode) String() string {
	return f.Name()
}

// ParseFlightMode parses a flight mode name string into a FlightMode
func ParseFlightMode(modeName string) (FlightMode, error) {
	for mode, config := range flightModeConfigs {
		if config.Name == modeName {
			return mode, nil
		}
	}
	return FlightModeCruise, fmt.Errorf("invalid flight mode: %s", modeName)
}
