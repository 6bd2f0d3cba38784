package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/market"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/test/helpers"
)

func newMarket(t *testing.T, waypointSymbol string, imports, exports, exchange []shared.TradeGood) *market.Market {
	t.Helper()
	m, err := market.NewMarket(waypointSymbol, imports, exports, exchange, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return m
}

func TestGormMarketRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMarketRepository(db)
	ctx := context.Background()

	m := newMarket(t, "X1-SYS-A1",
		[]shared.TradeGood{"IRON_ORE"},
		[]shared.TradeGood{"IRON"},
		[]shared.TradeGood{shared.TradeGoodFuel},
	)

	// Act
	require.NoError(t, repo.Save(ctx, m))
	found, err := repo.FindByWaypoint(ctx, "X1-SYS-A1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "X1-SYS-A1", found.WaypointSymbol())
	assert.Equal(t, []shared.TradeGood{"IRON_ORE"}, found.Imports())
	assert.Equal(t, []shared.TradeGood{"IRON"}, found.Exports())
	assert.True(t, found.SellsFuel())
}

func TestGormMarketRepository_FindNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMarketRepository(db)

	_, err := repo.FindByWaypoint(context.Background(), "X1-SYS-ZZ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "market not found")
}

func TestGormMarketRepository_SaveUpserts(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMarketRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newMarket(t, "X1-SYS-A1", nil, nil, nil)))

	// Act: a fresher snapshot of the same market
	updated := newMarket(t, "X1-SYS-A1", nil, nil, []shared.TradeGood{shared.TradeGoodFuel})
	require.NoError(t, repo.Save(ctx, updated))

	// Assert
	found, err := repo.FindByWaypoint(ctx, "X1-SYS-A1")
	require.NoError(t, err)
	assert.True(t, found.SellsFuel())

	markets, err := repo.ListBySystem(ctx, "X1-SYS")
	require.NoError(t, err)
	assert.Len(t, markets, 1)
}

func TestGormMarketRepository_ListBySystemFilters(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMarketRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newMarket(t, "X1-AAA-A1", nil, nil, nil)))
	require.NoError(t, repo.Save(ctx, newMarket(t, "X1-BBB-A1", nil, nil, nil)))

	markets, err := repo.ListBySystem(ctx, "X1-AAA")

	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "X1-AAA-A1", markets[0].WaypointSymbol())
}
