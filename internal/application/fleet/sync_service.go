package fleet

import (
	"context"
	"fmt"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/common"
	domainFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/market"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/ports"
)

const waypointPageSize = 20

// TraitMarketplace marks waypoints that expose a market
const TraitMarketplace = "MARKETPLACE"

// SyncService ingests waypoint, market, and fleet snapshots from the game
// API into local storage so route planning can run without network access
type SyncService struct {
	api       ports.APIClient
	waypoints routing.WaypointRepository
	markets   market.MarketRepository
	ships     domainFleet.ShipRepository
	clock     shared.Clock
	token     string
}

// NewSyncService creates a new sync service
func NewSyncService(
	api ports.APIClient,
	waypoints routing.WaypointRepository,
	markets market.MarketRepository,
	ships domainFleet.ShipRepository,
	clock shared.Clock,
	token string,
) *SyncService {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SyncService{
		api:       api,
		waypoints: waypoints,
		markets:   markets,
		ships:     ships,
		clock:     clock,
		token:     token,
	}
}

// SyncSystemResult summarizes one system snapshot ingestion
type SyncSystemResult struct {
	Waypoints int
	Markets   int
}

// SyncSystem pages through a system's waypoints, stores them, and stores a
// market snapshot for every waypoint with a marketplace
func (s *SyncService) SyncSystem(ctx context.Context, systemSymbol string) (*SyncSystemResult, error) {
	logger := common.LoggerFromContext(ctx)
	result := &SyncSystemResult{}

	for page := 1; ; page++ {
		listing, err := s.api.ListWaypoints(ctx, systemSymbol, s.token, page, waypointPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch waypoints page %d: %w", page, err)
		}

		for _, data := range listing.Waypoints {
			waypoint := convertWaypoint(data)

			hasMarket := false
			for _, trait := range data.Traits {
				if trait == TraitMarketplace {
					hasMarket = true
					break
				}
			}

			if hasMarket {
				m, err := s.syncMarket(ctx, systemSymbol, waypoint)
				if err != nil {
					return nil, err
				}
				if m.SellsFuel() {
					waypoint.HasFuel = true
				}
				result.Markets++
			}

			if err := s.waypoints.Save(ctx, waypoint); err != nil {
				return nil, fmt.Errorf("failed to store waypoint %s: %w", waypoint.Symbol, err)
			}
			result.Waypoints++
		}

		if page*listing.Limit >= listing.Total {
			break
		}
	}

	logger.Log("INFO", "System snapshot stored", map[string]interface{}{
		"system":    systemSymbol,
		"waypoints": result.Waypoints,
		"markets":   result.Markets,
	})

	return result, nil
}

func (s *SyncService) syncMarket(ctx context.Context, systemSymbol string, waypoint *shared.Waypoint) (*market.Market, error) {
	data, err := s.api.GetMarket(ctx, systemSymbol, waypoint.Symbol, s.token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market %s: %w", waypoint.Symbol, err)
	}

	m, err := market.NewMarket(
		data.Symbol,
		toTradeGoods(data.Imports),
		toTradeGoods(data.Exports),
		toTradeGoods(data.Exchange),
		s.clock.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid market data for %s: %w", waypoint.Symbol, err)
	}

	if err := s.markets.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to store market %s: %w", waypoint.Symbol, err)
	}

	return m, nil
}

// SyncFleet fetches every ship the agent owns and stores its current state
func (s *SyncService) SyncFleet(ctx context.Context) (int, error) {
	logger := common.LoggerFromContext(ctx)

	ships, err := s.api.ListShips(ctx, s.token)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch fleet: %w", err)
	}

	for _, data := range ships {
		ship, err := convertShip(data)
		if err != nil {
			return 0, fmt.Errorf("failed to convert ship %s: %w", data.Symbol, err)
		}
		if err := s.ships.Save(ctx, ship); err != nil {
			return 0, fmt.Errorf("failed to store ship %s: %w", data.Symbol, err)
		}
	}

	logger.Log("INFO", "Fleet snapshot stored", map[string]interface{}{
		"ships": len(ships),
	})

	return len(ships), nil
}

func convertWaypoint(data *ports.WaypointData) *shared.Waypoint {
	return &shared.Waypoint{
		Symbol:       data.Symbol,
		SystemSymbol: data.SystemSymbol,
		Type:         data.Type,
		X:            data.X,
		Y:            data.Y,
		Traits:       data.Traits,
		HasFuel:      data.Type == "FUEL_STATION",
	}
}

func convertShip(data *ports.ShipData) (*domainFleet.Ship, error) {
	fuel, err := shared.NewFuel(data.FuelCurrent, data.FuelCapacity)
	if err != nil {
		return nil, err
	}

	cargo, err := convertCargoData(data.Cargo)
	if err != nil {
		return nil, err
	}

	return domainFleet.NewShip(
		data.Symbol,
		roleFromRegistration(data.Registration),
		data.WaypointSymbol,
		fuel,
		cargo,
		data.EngineSpeed,
		domainFleet.NavStatus(data.NavStatus),
	)
}

// roleFromRegistration maps game registration roles onto fleet roles
func roleFromRegistration(registration string) domainFleet.Role {
	switch registration {
	case "EXCAVATOR":
		return domainFleet.RoleMiner
	case "HAULER", "TRANSPORT":
		return domainFleet.RoleHauler
	case "SATELLITE":
		return domainFleet.RoleProbe
	default:
		return domainFleet.RoleCommand
	}
}

func toTradeGoods(symbols []string) []shared.TradeGood {
	goods := make([]shared.TradeGood, 0, len(symbols))
	for _, symbol := range symbols {
		goods = append(goods, shared.TradeGood(symbol))
	}
	return goods
}
