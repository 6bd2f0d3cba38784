package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/market"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// GormMarketRepository implements MarketRepository using GORM
type GormMarketRepository struct {
	db *gorm.DB
}

// NewGormMarketRepository creates a new GORM market repository
func NewGormMarketRepository(db *gorm.DB) *GormMarketRepository {
	return &GormMarketRepository{db: db}
}

// FindByWaypoint retrieves the latest market snapshot for a waypoint
func (r *GormMarketRepository) FindByWaypoint(ctx context.Context, waypointSymbol string) (*market.Market, error) {
	var model MarketModel
	result := r.db.WithContext(ctx).Where("waypoint_symbol = ?", waypointSymbol).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("market not found: %s", waypointSymbol)
		}
		return nil, fmt.Errorf("failed to find market: %w", result.Error)
	}

	return r.modelToMarket(&model)
}

// ListBySystem retrieves all market snapshots in a system
func (r *GormMarketRepository) ListBySystem(ctx context.Context, systemSymbol string) ([]*market.Market, error) {
	var models []MarketModel
	result := r.db.WithContext(ctx).Where("system_symbol = ?", systemSymbol).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list markets: %w", result.Error)
	}

	markets := make([]*market.Market, 0, len(models))
	for _, model := range models {
		m, err := r.modelToMarket(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert market %s: %w", model.WaypointSymbol, err)
		}
		markets = append(markets, m)
	}

	return markets, nil
}

// Save persists a market snapshot (upsert by waypoint)
func (r *GormMarketRepository) Save(ctx context.Context, m *market.Market) error {
	model, err := r.marketToModel(m)
	if err != nil {
		return fmt.Errorf("failed to convert market: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "waypoint_symbol"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save market: %w", result.Error)
	}

	return nil
}

func (r *GormMarketRepository) modelToMarket(model *MarketModel) (*market.Market, error) {
	imports, err := decodeTradeGoods(model.Imports)
	if err != nil {
		return nil, fmt.Errorf("failed to parse imports: %w", err)
	}
	exports, err := decodeTradeGoods(model.Exports)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exports: %w", err)
	}
	exchange, err := decodeTradeGoods(model.Exchange)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exchange: %w", err)
	}

	return market.NewMarket(model.WaypointSymbol, imports, exports, exchange, model.LastUpdated)
}

func (r *GormMarketRepository) marketToModel(m *market.Market) (*MarketModel, error) {
	imports, err := encodeTradeGoods(m.Imports())
	if err != nil {
		return nil, err
	}
	exports, err := encodeTradeGoods(m.Exports())
	if err != nil {
		return nil, err
	}
	exchange, err := encodeTradeGoods(m.Exchange())
	if err != nil {
		return nil, err
	}

	return &MarketModel{
		WaypointSymbol: m.WaypointSymbol(),
		SystemSymbol:   shared.ExtractSystemSymbol(m.WaypointSymbol()),
		Imports:        imports,
		Exports:        exports,
		Exchange:       exchange,
		LastUpdated:    m.LastUpdated(),
	}, nil
}

func decodeTradeGoods(raw string) ([]shared.TradeGood, error) {
	if raw == "" {
		return nil, nil
	}
	var goods []shared.TradeGood
	if err := json.Unmarshal([]byte(raw), &goods); err != nil {
		return nil, err
	}
	return goods, nil
}

func encodeTradeGoods(goods []shared.TradeGood) (string, error) {
	encoded, err := json.Marshal(goods)
	if err != nil {
		return "", fmt.Errorf("failed to encode trade goods: %w", err)
	}
	return string(encoded), nil
}
