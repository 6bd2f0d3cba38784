package transfer

import (
	"time"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// TransferRecord is one completed hand-off into a waiting hauler
type TransferRecord struct {
	ID          string
	SendingShip string
	TradeGood   shared.TradeGood
	Units       int
	Timestamp   time.Time
}

// HaulerTransferSummary tracks a waiting hauler's live cargo and the transfers
// it has received so far. Created on registration, mutated in place by
// successful transfers, and discarded once the hauler stops waiting.
type HaulerTransferSummary struct {
	ShipSymbol   string
	Cargo        *shared.Cargo
	RegisteredAt time.Time
	Transfers    []TransferRecord
}

// NewHaulerTransferSummary creates the summary for a freshly registered hauler
func NewHaulerTransferSummary(shipSymbol string, cargo *shared.Cargo, registeredAt time.Time) *HaulerTransferSummary {
	return &HaulerTransferSummary{
		ShipSymbol:   shipSymbol,
		Cargo:        cargo.Clone(),
		RegisteredAt: registeredAt,
		Transfers:    []TransferRecord{},
	}
}

// RecordTransfer applies a completed transfer: the hauler's tracked cargo is
// replaced with the authoritative post-transfer state and a record appended
func (s *HaulerTransferSummary) RecordTransfer(id string, req *TransferRequest, resp *TransferResponse, at time.Time) {
	s.Cargo = resp.ReceivingShipCargo.Clone()
	s.Transfers = append(s.Transfers, TransferRecord{
		ID:          id,
		SendingShip: req.SendingShip,
		TradeGood:   req.TradeGood,
		Units:       req.Units,
		Timestamp:   at,
	})
}

// Clone returns a deep copy of the summary
func (s *HaulerTransferSummary) Clone() *HaulerTransferSummary {
	return &HaulerTransferSummary{
		ShipSymbol:   s.ShipSymbol,
		Cargo:        s.Cargo.Clone(),
		RegisteredAt: s.RegisteredAt,
		Transfers:    append([]TransferRecord(nil), s.Transfers...),
	}
}
