package fleet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	appFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/fleet"
	appTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/transfer"
	domainFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	domainTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/transfer"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/ports"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/test/helpers"
)

// transferAPI moves cargo between two in-memory holds when the worker calls
// the ship-to-ship transfer endpoint
type transferAPI struct {
	fakeAPIClient
	sender   *shared.Cargo
	receiver *shared.Cargo
}

func (a *transferAPI) TransferCargo(ctx context.Context, fromShip, toShip, goodSymbol string, units int, token string) (*ports.TransferResult, error) {
	if err := a.sender.RemoveUnits(shared.TradeGood(goodSymbol), units); err != nil {
		return nil, err
	}
	if err := a.receiver.AddUnits(shared.TradeGood(goodSymbol), units); err != nil {
		return nil, err
	}
	return &ports.TransferResult{
		SenderCargo:   toCargoData(a.sender),
		ReceiverCargo: toCargoData(a.receiver),
	}, nil
}

func toCargoData(c *shared.Cargo) ports.CargoData {
	inventory := make([]ports.CargoItemData, 0, len(c.Inventory))
	for _, item := range c.Inventory {
		inventory = append(inventory, ports.CargoItemData{Symbol: string(item.Symbol), Units: item.Units})
	}
	return ports.CargoData{Capacity: c.Capacity, Units: c.Units, Inventory: inventory}
}

func TestMinerWorker_OffloadCargoToWaitingHauler(t *testing.T) {
	// Arrange: a miner with a nearly full hold and one empty hauler waiting
	db := helpers.NewTestDB(t)
	shipRepo := persistence.NewGormShipRepository(db)
	ctx := context.Background()

	minerFuel, err := shared.NewFuel(400, 400)
	require.NoError(t, err)
	minerCargo, err := shared.NewCargo(60, []shared.Inventory{{Symbol: "IRON_ORE", Units: 55}})
	require.NoError(t, err)
	miner, err := domainFleet.NewShip("MINER-1", domainFleet.RoleMiner, "X1-SYS-A1", minerFuel, minerCargo, 30, domainFleet.NavStatusInOrbit)
	require.NoError(t, err)
	require.NoError(t, shipRepo.Save(ctx, miner))

	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	coordinator := appTransfer.NewCoordinator(clock)

	haulerCargo := shared.EmptyCargo(60)
	api := &transferAPI{sender: minerCargo.Clone(), receiver: haulerCargo}

	type waitResult struct {
		summary *domainTransfer.HaulerTransferSummary
		err     error
	}
	haulerDone := make(chan waitResult, 1)
	go func() {
		summary, err := coordinator.RegisterHaulerForPickupAndWaitUntilFull(
			ctx, "X1-SYS-A1", "HAULER-1", haulerCargo)
		haulerDone <- waitResult{summary, err}
	}()
	require.Eventually(t, func() bool {
		return len(coordinator.WaitingHaulers("X1-SYS-A1")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	worker := appFleet.NewMinerWorker(api, coordinator, shipRepo, clock, time.Millisecond, "token")

	// Act
	err = worker.OffloadCargo(ctx, "MINER-1")

	// Assert
	require.NoError(t, err)

	stored, err := shipRepo.FindBySymbol(ctx, "MINER-1")
	require.NoError(t, err)
	assert.True(t, stored.Cargo().IsEmpty(), "the miner's hold must be drained")

	select {
	case result := <-haulerDone:
		require.NoError(t, result.err)
		assert.Equal(t, 55, result.summary.Cargo.Units)
		require.Len(t, result.summary.Transfers, 1)
		assert.Equal(t, "MINER-1", result.summary.Transfers[0].SendingShip)
		assert.Equal(t, shared.TradeGood("IRON_ORE"), result.summary.Transfers[0].TradeGood)
	case <-time.After(2 * time.Second):
		t.Fatal("hauler never finished waiting")
	}
}

func TestMinerWorker_OffloadStopsWhenContextEnds(t *testing.T) {
	// Arrange: nobody is waiting, so the worker retries until the deadline
	db := helpers.NewTestDB(t)
	shipRepo := persistence.NewGormShipRepository(db)

	fuel, err := shared.NewFuel(400, 400)
	require.NoError(t, err)
	cargo, err := shared.NewCargo(60, []shared.Inventory{{Symbol: "IRON_ORE", Units: 30}})
	require.NoError(t, err)
	miner, err := domainFleet.NewShip("MINER-1", domainFleet.RoleMiner, "X1-SYS-A1", fuel, cargo, 30, domainFleet.NavStatusInOrbit)
	require.NoError(t, err)
	require.NoError(t, shipRepo.Save(context.Background(), miner))

	coordinator := appTransfer.NewCoordinator(nil)
	worker := appFleet.NewMinerWorker(&transferAPI{}, coordinator, shipRepo, nil, 5*time.Millisecond, "token")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	// Act
	err = worker.OffloadCargo(ctx, "MINER-1")

	// Assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	stored, findErr := shipRepo.FindBySymbol(context.Background(), "MINER-1")
	require.NoError(t, findErr)
	assert.Equal(t, 30, stored.Cargo().Units, "unmatched retries must not lose cargo")
}
