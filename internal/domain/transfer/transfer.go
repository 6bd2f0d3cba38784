package transfer

import (
	"context"
	"fmt"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// TransferRequest names one cargo hand-off between two ships at a shared
// waypoint. Ephemeral; created per transfer attempt.
type TransferRequest struct {
	SendingShip   string
	ReceivingShip string
	TradeGood     shared.TradeGood
	Units         int
}

func (r *TransferRequest) String() string {
	return fmt.Sprintf("Transfer(%s → %s, %s x%d)", r.SendingShip, r.ReceivingShip, r.TradeGood, r.Units)
}

// TransferResponse carries both parties' cargo after a successful transfer
type TransferResponse struct {
	ReceivingShip      string
	TradeGood          shared.TradeGood
	Units              int
	SendingShipCargo   *shared.Cargo
	ReceivingShipCargo *shared.Cargo
}

// TransferFunc executes the actual transfer against the ships' persisted
// cargo. Supplied by the caller; its errors propagate unmodified.
type TransferFunc func(ctx context.Context, req *TransferRequest) (*TransferResponse, error)

// TransferOutcome is the result of one offload attempt. An outcome with no
// transfers means no waiting ship matched any of the sender's goods.
type TransferOutcome struct {
	UpdatedSenderCargo *shared.Cargo
	Transfers          []*TransferRequest
}

// Matched reports whether at least one good was handed off
func (o *TransferOutcome) Matched() bool {
	return len(o.Transfers) > 0
}
