package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/test/helpers"
)

func TestGormWaypointRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)
	ctx := context.Background()

	waypoint := &shared.Waypoint{
		Symbol:       "X1-SYS-A1",
		SystemSymbol: "X1-SYS",
		Type:         "ORBITAL_STATION",
		X:            10,
		Y:            -20,
		Traits:       []string{"MARKETPLACE", "SHIPYARD"},
		HasFuel:      true,
	}

	// Act
	err := repo.Save(ctx, waypoint)
	require.NoError(t, err)
	found, err := repo.FindBySymbol(ctx, "X1-SYS-A1", "X1-SYS")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "X1-SYS-A1", found.Symbol)
	assert.Equal(t, "X1-SYS", found.SystemSymbol)
	assert.Equal(t, 10, found.X)
	assert.Equal(t, -20, found.Y)
	assert.Equal(t, []string{"MARKETPLACE", "SHIPYARD"}, found.Traits)
	assert.True(t, found.HasFuel)
}

func TestGormWaypointRepository_FindNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)

	_, err := repo.FindBySymbol(context.Background(), "X1-SYS-ZZ", "X1-SYS")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "waypoint not found")
}

func TestGormWaypointRepository_SaveUpserts(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)
	ctx := context.Background()

	waypoint := &shared.Waypoint{Symbol: "X1-SYS-A1", SystemSymbol: "X1-SYS", X: 1, Y: 1}
	require.NoError(t, repo.Save(ctx, waypoint))

	// Act: a later sync learns the waypoint sells fuel
	waypoint.HasFuel = true
	require.NoError(t, repo.Save(ctx, waypoint))

	// Assert
	found, err := repo.FindBySymbol(ctx, "X1-SYS-A1", "X1-SYS")
	require.NoError(t, err)
	assert.True(t, found.HasFuel)

	all, err := repo.ListBySystem(ctx, "X1-SYS")
	require.NoError(t, err)
	assert.Len(t, all, 1, "saving twice must not duplicate the row")
}

func TestGormWaypointRepository_ListBySystemFilters(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &shared.Waypoint{Symbol: "X1-AAA-A1", SystemSymbol: "X1-AAA"}))
	require.NoError(t, repo.Save(ctx, &shared.Waypoint{Symbol: "X1-AAA-B1", SystemSymbol: "X1-AAA"}))
	require.NoError(t, repo.Save(ctx, &shared.Waypoint{Symbol: "X1-BBB-A1", SystemSymbol: "X1-BBB"}))

	waypoints, err := repo.ListBySystem(ctx, "X1-AAA")

	require.NoError(t, err)
	assert.Len(t, waypoints, 2)
	for _, wp := range waypoints {
		assert.Equal(t, "X1-AAA", wp.SystemSymbol)
	}
}
