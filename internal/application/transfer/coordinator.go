package transfer

import (
	"context"
	"sync"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/metrics"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	domainTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/transfer"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/pkg/utils"
)

// FillThreshold is the fill ratio a waiting hauler must strictly exceed
// before its registration completes
const FillThreshold = 0.8

// Coordinator lets producer ships hand cargo off to consumer ships waiting at
// a shared waypoint without a central scheduler. The registry is sharded by
// waypoint: every room has its own lock, so transfer activity at one waypoint
// never blocks another. Waiting haulers are woken by a per-entry notification
// channel instead of polling.
type Coordinator struct {
	mu    sync.RWMutex
	rooms map[string]*waitingRoom
	clock shared.Clock
}

// waitingRoom holds the haulers waiting at one waypoint. All reads and writes
// of its haulers map happen under its lock.
type waitingRoom struct {
	mu      sync.Mutex
	haulers map[string]*waitingHauler
}

type waitingHauler struct {
	summary *domainTransfer.HaulerTransferSummary

	// updated is signalled (buffered, capacity 1) after every transfer
	// into this hauler
	updated chan struct{}

	// replaced is closed when a newer registration for the same ship
	// overwrites this entry
	replaced chan struct{}
}

// NewCoordinator creates an empty coordinator. A nil clock defaults to the
// system clock.
func NewCoordinator(clock shared.Clock) *Coordinator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Coordinator{
		rooms: make(map[string]*waitingRoom),
		clock: clock,
	}
}

func (c *Coordinator) room(waypointSymbol string) *waitingRoom {
	c.mu.RLock()
	room := c.rooms[waypointSymbol]
	c.mu.RUnlock()
	return room
}

func (c *Coordinator) roomOrCreate(waypointSymbol string) *waitingRoom {
	c.mu.Lock()
	defer c.mu.Unlock()
	room, ok := c.rooms[waypointSymbol]
	if !ok {
		room = &waitingRoom{haulers: make(map[string]*waitingHauler)}
		c.rooms[waypointSymbol] = room
	}
	return room
}

// RegisterHaulerForPickupAndWaitUntilFull registers the hauler at the given
// waypoint and blocks until its tracked cargo's fill ratio strictly exceeds
// FillThreshold, at which point the entry is removed from the registry and
// the final summary returned. Registering a ship that is already waiting at
// the waypoint replaces the old entry; the superseded caller receives a
// HaulerReplacedError. Cancelling the context deregisters the hauler.
func (c *Coordinator) RegisterHaulerForPickupAndWaitUntilFull(
	ctx context.Context,
	waypointSymbol string,
	shipSymbol string,
	cargo *shared.Cargo,
) (*domainTransfer.HaulerTransferSummary, error) {
	room := c.roomOrCreate(waypointSymbol)

	entry := &waitingHauler{
		summary:  domainTransfer.NewHaulerTransferSummary(shipSymbol, cargo, c.clock.Now()),
		updated:  make(chan struct{}, 1),
		replaced: make(chan struct{}),
	}

	room.mu.Lock()
	if prev, ok := room.haulers[shipSymbol]; ok {
		close(prev.replaced)
	}
	room.haulers[shipSymbol] = entry
	room.mu.Unlock()

	registeredAt := entry.summary.RegisteredAt

	for {
		room.mu.Lock()
		if room.haulers[shipSymbol] == entry && entry.summary.Cargo.FillRatio() > FillThreshold {
			delete(room.haulers, shipSymbol)
			summary := entry.summary.Clone()
			room.mu.Unlock()
			metrics.RecordHaulerWait(waypointSymbol, c.clock.Now().Sub(registeredAt).Seconds())
			return summary, nil
		}
		room.mu.Unlock()

		select {
		case <-ctx.Done():
			room.mu.Lock()
			if room.haulers[shipSymbol] == entry {
				delete(room.haulers, shipSymbol)
			}
			room.mu.Unlock()
			return nil, ctx.Err()
		case <-entry.replaced:
			return nil, domainTransfer.NewHaulerReplacedError(shipSymbol)
		case <-entry.updated:
		}
	}
}

// TryToTransferCargoUntilAvailableSpace matches every distinct good in the
// sender's cargo against the haulers waiting at the waypoint and executes the
// selected transfers through transferFn. The room lock is held for the whole
// call, including every transferFn invocation, so transfers at one waypoint
// are serialized; other waypoints are unaffected.
//
// An empty sender cargo, or a waypoint nobody waits at, yields an unmatched
// outcome without touching the registry. Errors from transferFn propagate
// unmodified; transfers already executed in the same call stay applied.
func (c *Coordinator) TryToTransferCargoUntilAvailableSpace(
	ctx context.Context,
	sendingShip string,
	waypointSymbol string,
	senderCargo *shared.Cargo,
	transferFn domainTransfer.TransferFunc,
) (*domainTransfer.TransferOutcome, error) {
	outcome := &domainTransfer.TransferOutcome{UpdatedSenderCargo: senderCargo.Clone()}

	room := c.room(waypointSymbol)
	if room == nil || senderCargo.IsEmpty() {
		metrics.RecordUnmatchedAttempt(waypointSymbol)
		return outcome, nil
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	summaries := make(map[string]*domainTransfer.HaulerTransferSummary, len(room.haulers))
	for symbol, hauler := range room.haulers {
		summaries[symbol] = hauler.summary
	}

	tasks := domainTransfer.FindTransferTasks(sendingShip, senderCargo, summaries)
	for _, task := range tasks {
		resp, err := transferFn(ctx, task)
		if err != nil {
			return nil, err
		}

		outcome.UpdatedSenderCargo = resp.SendingShipCargo.Clone()

		entry, ok := room.haulers[task.ReceivingShip]
		if !ok {
			return nil, domainTransfer.NewReceivingShipNotFoundError(task.ReceivingShip)
		}
		entry.summary.RecordTransfer(utils.GenerateTransferID(task.ReceivingShip), task, resp, c.clock.Now())

		select {
		case entry.updated <- struct{}{}:
		default:
		}

		metrics.RecordTransfer(waypointSymbol, string(task.TradeGood), task.Units)
		outcome.Transfers = append(outcome.Transfers, task)
	}

	if len(outcome.Transfers) == 0 {
		metrics.RecordUnmatchedAttempt(waypointSymbol)
	}

	return outcome, nil
}

// WaitingHaulers returns a snapshot of the haulers currently waiting at a
// waypoint, for status displays
func (c *Coordinator) WaitingHaulers(waypointSymbol string) []*domainTransfer.HaulerTransferSummary {
	room := c.room(waypointSymbol)
	if room == nil {
		return nil
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	summaries := make([]*domainTransfer.HaulerTransferSummary, 0, len(room.haulers))
	for _, hauler := range room.haulers {
		summaries = append(summaries, hauler.summary.Clone())
	}
	return summaries
}
