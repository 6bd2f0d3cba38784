package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

func TestFlightMode_FuelCost(t *testing.T) {
	tests := []struct {
		name     string
		mode     shared.FlightMode
		distance int
		expected int
	}{
		{"drift costs one unit regardless of distance", shared.FlightModeDrift, 500, 1},
		{"drift at zero distance", shared.FlightModeDrift, 0, 1},
		{"cruise costs one per distance unit", shared.FlightModeCruise, 100, 100},
		{"stealth costs one per distance unit", shared.FlightModeStealth, 40, 40},
		{"burn costs double", shared.FlightModeBurn, 100, 200},
		{"zero distance clamps to one", shared.FlightModeCruise, 0, 1},
		{"burn at zero distance", shared.FlightModeBurn, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.FuelCost(tt.distance))
		})
	}
}

func TestFlightMode_TravelTime(t *testing.T) {
	tests := []struct {
		name        string
		mode        shared.FlightMode
		distance    int
		engineSpeed int
		expected    int
	}{
		// round(100*25/30 + 15) = round(98.33) = 98
		{"cruise distance 100 speed 30", shared.FlightModeCruise, 100, 30, 98},
		// round(100*12.5/30 + 15) = round(56.67) = 57
		{"burn distance 100 speed 30", shared.FlightModeBurn, 100, 30, 57},
		// round(100*250/30 + 15) = round(848.33) = 848
		{"drift distance 100 speed 30", shared.FlightModeDrift, 100, 30, 848},
		// round(100*30/30 + 15) = 115
		{"stealth distance 100 speed 30", shared.FlightModeStealth, 100, 30, 115},
		// distance clamps to 1: round(1*25/30 + 15) = round(15.83) = 16
		{"zero distance clamps to one", shared.FlightModeCruise, 0, 30, 16},
		// engine speed clamps to 1: round(10*25/1 + 15) = 265
		{"zero engine speed clamps to one", shared.FlightModeCruise, 10, 0, 265},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.TravelTime(tt.distance, tt.engineSpeed))
		})
	}
}

func TestFlightMode_BurnIsAlwaysFastest(t *testing.T) {
	for _, distance := range []int{1, 10, 100, 750} {
		burn := shared.FlightModeBurn.TravelTime(distance, 30)
		for _, mode := range []shared.FlightMode{shared.FlightModeCruise, shared.FlightModeStealth, shared.FlightModeDrift} {
			assert.LessOrEqual(t, burn, mode.TravelTime(distance, 30),
				"burn should never be slower than %s at distance %d", mode, distance)
		}
	}
}

func TestParseFlightMode(t *testing.T) {
	mode, err := shared.ParseFlightMode("DRIFT")
	require.NoError(t, err)
	assert.Equal(t, shared.FlightModeDrift, mode)

	_, err = shared.ParseFlightMode("WARP")
	assert.Error(t, err)
}

func TestDefaultFlightModes_ExcludeStealth(t *testing.T) {
	modes := shared.DefaultFlightModes()
	assert.Equal(t, []shared.FlightMode{
		shared.FlightModeBurn,
		shared.FlightModeCruise,
		shared.FlightModeDrift,
	}, modes)
}
