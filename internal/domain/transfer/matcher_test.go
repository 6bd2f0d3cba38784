package transfer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/transfer"
)

func cargoWith(t *testing.T, capacity int, inventory ...shared.Inventory) *shared.Cargo {
	t.Helper()
	cargo, err := shared.NewCargo(capacity, inventory)
	require.NoError(t, err)
	return cargo
}

func waitingHauler(t *testing.T, symbol string, cargo *shared.Cargo) *transfer.HaulerTransferSummary {
	t.Helper()
	return transfer.NewHaulerTransferSummary(symbol, cargo, time.Now())
}

func TestFindTransferTasks_PrefersExclusiveCarrier(t *testing.T) {
	// Arrange: one hauler already dedicated to iron ore, one carrying a mix
	sender := cargoWith(t, 60, shared.Inventory{Symbol: "IRON_ORE", Units: 20})
	haulers := map[string]*transfer.HaulerTransferSummary{
		"HAULER-EXCLUSIVE": waitingHauler(t, "HAULER-EXCLUSIVE",
			cargoWith(t, 100, shared.Inventory{Symbol: "IRON_ORE", Units: 40})),
		"HAULER-MIXED": waitingHauler(t, "HAULER-MIXED",
			cargoWith(t, 100,
				shared.Inventory{Symbol: "IRON_ORE", Units: 10},
				shared.Inventory{Symbol: "COPPER_ORE", Units: 10})),
	}

	// Act
	tasks := transfer.FindTransferTasks("MINER-1", sender, haulers)

	// Assert
	require.Len(t, tasks, 1)
	assert.Equal(t, "HAULER-EXCLUSIVE", tasks[0].ReceivingShip)
	assert.Equal(t, shared.TradeGood("IRON_ORE"), tasks[0].TradeGood)
	assert.Equal(t, 20, tasks[0].Units)
}

func TestFindTransferTasks_RequiresFullQuantityFit(t *testing.T) {
	// The only hauler has 5 free units; a 20-unit entry cannot be split
	sender := cargoWith(t, 60, shared.Inventory{Symbol: "IRON_ORE", Units: 20})
	haulers := map[string]*transfer.HaulerTransferSummary{
		"HAULER-FULL": waitingHauler(t, "HAULER-FULL",
			cargoWith(t, 100, shared.Inventory{Symbol: "IRON_ORE", Units: 95})),
	}

	tasks := transfer.FindTransferTasks("MINER-1", sender, haulers)

	assert.Empty(t, tasks)
}

func TestFindTransferTasks_ProjectsEarlierTransfersOntoCapacity(t *testing.T) {
	// Arrange: one empty hauler with room for only one of the two entries.
	// The first matched good claims the space, so the second finds none left.
	sender := cargoWith(t, 100,
		shared.Inventory{Symbol: "IRON_ORE", Units: 30},
		shared.Inventory{Symbol: "COPPER_ORE", Units: 30},
	)
	haulers := map[string]*transfer.HaulerTransferSummary{
		"HAULER-1": waitingHauler(t, "HAULER-1", shared.EmptyCargo(40)),
	}

	// Act
	tasks := transfer.FindTransferTasks("MINER-1", sender, haulers)

	// Assert
	require.Len(t, tasks, 1)
	assert.Equal(t, shared.TradeGood("IRON_ORE"), tasks[0].TradeGood)
}

func TestFindTransferTasks_SpreadsGoodsAcrossHaulers(t *testing.T) {
	// Each good goes to the hauler already carrying it
	sender := cargoWith(t, 100,
		shared.Inventory{Symbol: "IRON_ORE", Units: 10},
		shared.Inventory{Symbol: "COPPER_ORE", Units: 10},
	)
	haulers := map[string]*transfer.HaulerTransferSummary{
		"HAULER-IRON": waitingHauler(t, "HAULER-IRON",
			cargoWith(t, 100, shared.Inventory{Symbol: "IRON_ORE", Units: 20})),
		"HAULER-COPPER": waitingHauler(t, "HAULER-COPPER",
			cargoWith(t, 100, shared.Inventory{Symbol: "COPPER_ORE", Units: 20})),
	}

	tasks := transfer.FindTransferTasks("MINER-1", sender, haulers)

	require.Len(t, tasks, 2)
	byGood := map[shared.TradeGood]string{}
	for _, task := range tasks {
		byGood[task.TradeGood] = task.ReceivingShip
	}
	assert.Equal(t, "HAULER-IRON", byGood["IRON_ORE"])
	assert.Equal(t, "HAULER-COPPER", byGood["COPPER_ORE"])
}

func TestFindTransferTasks_NoWaitingHaulers(t *testing.T) {
	sender := cargoWith(t, 60, shared.Inventory{Symbol: "IRON_ORE", Units: 20})

	tasks := transfer.FindTransferTasks("MINER-1", sender, map[string]*transfer.HaulerTransferSummary{})

	assert.Empty(t, tasks)
}

func TestHaulerTransferSummary_RecordTransfer(t *testing.T) {
	// Arrange
	summary := waitingHauler(t, "HAULER-1", shared.EmptyCargo(100))
	req := &transfer.TransferRequest{
		SendingShip:   "MINER-1",
		ReceivingShip: "HAULER-1",
		TradeGood:     "IRON_ORE",
		Units:         25,
	}
	resp := &transfer.TransferResponse{
		ReceivingShip:      "HAULER-1",
		TradeGood:          "IRON_ORE",
		Units:              25,
		SendingShipCargo:   shared.EmptyCargo(60),
		ReceivingShipCargo: cargoWith(t, 100, shared.Inventory{Symbol: "IRON_ORE", Units: 25}),
	}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Act
	summary.RecordTransfer("transfer-hauler-1-abc12345", req, resp, at)

	// Assert
	assert.Equal(t, 25, summary.Cargo.Units)
	require.Len(t, summary.Transfers, 1)
	record := summary.Transfers[0]
	assert.Equal(t, "transfer-hauler-1-abc12345", record.ID)
	assert.Equal(t, "MINER-1", record.SendingShip)
	assert.Equal(t, 25, record.Units)
	assert.Equal(t, at, record.Timestamp)
}
