package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

func TestNewCargo_Validation(t *testing.T) {
	t.Run("computes units from inventory", func(t *testing.T) {
		cargo, err := shared.NewCargo(100, []shared.Inventory{
			{Symbol: "IRON_ORE", Units: 30},
			{Symbol: "COPPER_ORE", Units: 20},
		})

		require.NoError(t, err)
		assert.Equal(t, 50, cargo.Units)
		assert.Equal(t, 50, cargo.AvailableCapacity())
	})

	t.Run("rejects negative capacity", func(t *testing.T) {
		_, err := shared.NewCargo(-1, nil)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate trade goods", func(t *testing.T) {
		_, err := shared.NewCargo(100, []shared.Inventory{
			{Symbol: "IRON_ORE", Units: 10},
			{Symbol: "IRON_ORE", Units: 5},
		})
		assert.Error(t, err)
	})

	t.Run("rejects inventory exceeding capacity", func(t *testing.T) {
		_, err := shared.NewCargo(10, []shared.Inventory{
			{Symbol: "IRON_ORE", Units: 11},
		})
		assert.Error(t, err)
	})
}

func TestCargo_AddUnits(t *testing.T) {
	t.Run("merges into existing entry", func(t *testing.T) {
		cargo := shared.EmptyCargo(100)

		require.NoError(t, cargo.AddUnits("IRON_ORE", 30))
		require.NoError(t, cargo.AddUnits("IRON_ORE", 20))

		assert.Equal(t, 50, cargo.Units)
		assert.Len(t, cargo.Inventory, 1)
		assert.Equal(t, 50, cargo.GetItemUnits("IRON_ORE"))
	})

	t.Run("fails when space is insufficient", func(t *testing.T) {
		cargo := shared.EmptyCargo(40)
		require.NoError(t, cargo.AddUnits("IRON_ORE", 30))

		err := cargo.AddUnits("COPPER_ORE", 20)

		assert.Error(t, err)
		assert.Equal(t, 30, cargo.Units, "failed add must not mutate cargo")
	})
}

func TestCargo_RemoveUnits(t *testing.T) {
	t.Run("drops entry when it reaches zero", func(t *testing.T) {
		cargo := shared.EmptyCargo(100)
		require.NoError(t, cargo.AddUnits("IRON_ORE", 30))
		require.NoError(t, cargo.AddUnits("COPPER_ORE", 10))

		require.NoError(t, cargo.RemoveUnits("COPPER_ORE", 10))

		assert.Len(t, cargo.Inventory, 1)
		assert.Equal(t, 0, cargo.GetItemUnits("COPPER_ORE"))
		assert.Equal(t, 30, cargo.Units)
	})

	t.Run("fails when holding fewer units than requested", func(t *testing.T) {
		cargo := shared.EmptyCargo(100)
		require.NoError(t, cargo.AddUnits("IRON_ORE", 5))

		err := cargo.RemoveUnits("IRON_ORE", 10)

		assert.Error(t, err)
		assert.Equal(t, 5, cargo.Units)
	})

	t.Run("fails for absent trade good", func(t *testing.T) {
		cargo := shared.EmptyCargo(100)

		err := cargo.RemoveUnits("GOLD", 1)

		assert.Error(t, err)
	})
}

func TestCargo_FillRatio(t *testing.T) {
	cargo := shared.EmptyCargo(100)
	require.NoError(t, cargo.AddUnits("IRON_ORE", 81))

	assert.InDelta(t, 0.81, cargo.FillRatio(), 0.0001)
	assert.Equal(t, float64(0), shared.EmptyCargo(0).FillRatio())
}

func TestCargo_HasOnly(t *testing.T) {
	cargo := shared.EmptyCargo(100)
	assert.False(t, cargo.HasOnly("IRON_ORE"), "empty cargo holds nothing")

	require.NoError(t, cargo.AddUnits("IRON_ORE", 10))
	assert.True(t, cargo.HasOnly("IRON_ORE"))

	require.NoError(t, cargo.AddUnits("COPPER_ORE", 5))
	assert.False(t, cargo.HasOnly("IRON_ORE"))
}

func TestCargo_Clone(t *testing.T) {
	cargo := shared.EmptyCargo(100)
	require.NoError(t, cargo.AddUnits("IRON_ORE", 10))

	clone := cargo.Clone()
	require.NoError(t, clone.AddUnits("IRON_ORE", 5))

	assert.Equal(t, 10, cargo.Units, "mutating the clone must not affect the original")
	assert.Equal(t, 15, clone.Units)
}
