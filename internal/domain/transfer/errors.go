package transfer

import "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"

// Transfer execution errors. These originate from the injected TransferFunc
// and are returned to the caller unmodified; the caller decides whether to
// retry, skip, or escalate.

type SendingShipNotFoundError struct {
	*shared.DomainError
	ShipSymbol string
}

func NewSendingShipNotFoundError(shipSymbol string) *SendingShipNotFoundError {
	return &SendingShipNotFoundError{
		DomainError: shared.NewDomainError("sending ship does not exist: " + shipSymbol),
		ShipSymbol:  shipSymbol,
	}
}

type ReceivingShipNotFoundError struct {
	*shared.DomainError
	ShipSymbol string
}

func NewReceivingShipNotFoundError(shipSymbol string) *ReceivingShipNotFoundError {
	return &ReceivingShipNotFoundError{
		DomainError: shared.NewDomainError("receiving ship does not exist: " + shipSymbol),
		ShipSymbol:  shipSymbol,
	}
}

// HaulerReplacedError is returned to a waiting hauler whose registry entry was
// overwritten by a newer registration for the same ship
type HaulerReplacedError struct {
	*shared.DomainError
	ShipSymbol string
}

func NewHaulerReplacedError(shipSymbol string) *HaulerReplacedError {
	return &HaulerReplacedError{
		DomainError: shared.NewDomainError("waiting hauler was replaced by a newer registration: " + shipSymbol),
		ShipSymbol:  shipSymbol,
	}
}
