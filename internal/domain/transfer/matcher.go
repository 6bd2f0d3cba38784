package transfer

import "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"

// FindTransferTasks matches every distinct good in the sender's cargo against
// the waiting haulers at one waypoint, producing at most one transfer task per
// good. Matching is greedy in sender-inventory order with no backtracking: a
// different order could yield a better overall assignment, so the result is
// best-effort, not a global optimum.
//
// Space already claimed by earlier goods of the same call is accounted for by
// projecting each selected transfer onto a copy of the hauler cargos before
// the next good is considered.
func FindTransferTasks(sendingShip string, senderCargo *shared.Cargo, waitingHaulers map[string]*HaulerTransferSummary) []*TransferRequest {
	projected := make(map[string]*shared.Cargo, len(waitingHaulers))
	for symbol, summary := range waitingHaulers {
		projected[symbol] = summary.Cargo.Clone()
	}

	var tasks []*TransferRequest
	for _, item := range senderCargo.Inventory {
		task := findTransferTask(sendingShip, item, projected)
		if task == nil {
			continue
		}
		if cargo, ok := projected[task.ReceivingShip]; ok {
			if err := cargo.AddUnits(task.TradeGood, task.Units); err == nil {
				tasks = append(tasks, task)
			}
		}
	}

	return tasks
}

// findTransferTask picks the best waiting hauler for one inventory entry.
// A candidate must have enough free space for the entry's full quantity.
// Scoring: 3 if the hauler carries only this good, plus 1 if it carries this
// good at all; ties are broken arbitrarily.
func findTransferTask(sendingShip string, item shared.Inventory, haulerCargos map[string]*shared.Cargo) *TransferRequest {
	bestScore := -1
	bestShip := ""

	for shipSymbol, cargo := range haulerCargos {
		if cargo.AvailableCapacity() < item.Units {
			continue
		}

		score := 0
		if cargo.HasOnly(item.Symbol) {
			score += 3
		}
		if cargo.GetItemUnits(item.Symbol) > 0 {
			score += 1
		}

		if score > bestScore {
			bestScore = score
			bestShip = shipSymbol
		}
	}

	if bestScore < 0 {
		return nil
	}

	return &TransferRequest{
		SendingShip:   sendingShip,
		ReceivingShip: bestShip,
		TradeGood:     item.Symbol,
		Units:         item.Units,
	}
}
