package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/common"
	appTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/transfer"
	domainFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	domainTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/transfer"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/ports"
)

// MinerWorker offloads a producer ship's cargo to haulers waiting at the
// ship's waypoint. When no hauler can take anything it backs off and retries
// until the hold is empty or the context ends
type MinerWorker struct {
	api         ports.APIClient
	coordinator *appTransfer.Coordinator
	ships       domainFleet.ShipRepository
	clock       shared.Clock
	retryDelay  time.Duration
	token       string
}

// NewMinerWorker creates a new miner worker. If clock is nil, uses RealClock
func NewMinerWorker(
	api ports.APIClient,
	coordinator *appTransfer.Coordinator,
	ships domainFleet.ShipRepository,
	clock shared.Clock,
	retryDelay time.Duration,
	token string,
) *MinerWorker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if retryDelay <= 0 {
		retryDelay = 5 * time.Second
	}
	return &MinerWorker{
		api:         api,
		coordinator: coordinator,
		ships:       ships,
		clock:       clock,
		retryDelay:  retryDelay,
		token:       token,
	}
}

// OffloadCargo hands the ship's cargo to waiting haulers until the hold is
// empty. Unmatched attempts are retried after a delay; each retry sees the
// registry fresh, so a hauler arriving later still gets the cargo
func (w *MinerWorker) OffloadCargo(ctx context.Context, shipSymbol string) error {
	logger := common.LoggerFromContext(ctx)

	ship, err := w.ships.FindBySymbol(ctx, shipSymbol)
	if err != nil {
		return err
	}

	for !ship.Cargo().IsEmpty() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		outcome, err := w.coordinator.TryToTransferCargoUntilAvailableSpace(
			ctx, shipSymbol, ship.Location(), ship.Cargo(), w.transferFn())
		if err != nil {
			return fmt.Errorf("cargo offload failed: %w", err)
		}

		ship.SetCargo(outcome.UpdatedSenderCargo)
		if err := w.ships.Save(ctx, ship); err != nil {
			return fmt.Errorf("failed to persist ship state: %w", err)
		}

		if !outcome.Matched() {
			logger.Log("DEBUG", "No hauler matched, retrying", map[string]interface{}{
				"ship":     shipSymbol,
				"waypoint": ship.Location(),
				"units":    ship.Cargo().Units,
			})
			if err := w.sleep(ctx); err != nil {
				return err
			}
			continue
		}

		logger.Log("INFO", "Cargo transferred to haulers", map[string]interface{}{
			"ship":      shipSymbol,
			"waypoint":  ship.Location(),
			"transfers": len(outcome.Transfers),
			"remaining": ship.Cargo().Units,
		})
	}

	return nil
}

// transferFn adapts the game API's ship-to-ship transfer into the
// coordinator's transfer callback
func (w *MinerWorker) transferFn() domainTransfer.TransferFunc {
	return func(ctx context.Context, req *domainTransfer.TransferRequest) (*domainTransfer.TransferResponse, error) {
		result, err := w.api.TransferCargo(ctx,
			req.SendingShip, req.ReceivingShip, string(req.TradeGood), req.Units, w.token)
		if err != nil {
			return nil, err
		}

		senderCargo, err := convertCargoData(result.SenderCargo)
		if err != nil {
			return nil, fmt.Errorf("invalid sender cargo in transfer response: %w", err)
		}
		receiverCargo, err := convertCargoData(result.ReceiverCargo)
		if err != nil {
			return nil, fmt.Errorf("invalid receiver cargo in transfer response: %w", err)
		}

		return &domainTransfer.TransferResponse{
			ReceivingShip:      req.ReceivingShip,
			TradeGood:          req.TradeGood,
			Units:              req.Units,
			SendingShipCargo:   senderCargo,
			ReceivingShipCargo: receiverCargo,
		}, nil
	}
}

func (w *MinerWorker) sleep(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.clock.Sleep(w.retryDelay)
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func convertCargoData(data ports.CargoData) (*shared.Cargo, error) {
	inventory := make([]shared.Inventory, 0, len(data.Inventory))
	for _, item := range data.Inventory {
		inventory = append(inventory, shared.Inventory{
			Symbol: shared.TradeGood(item.Symbol),
			Units:  item.Units,
		})
	}
	return shared.NewCargo(data.Capacity, inventory)
}
