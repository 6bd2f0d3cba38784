package market

import (
	"errors"
	"time"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// Market represents an immutable snapshot of market data at a specific
// waypoint and time. Imports, exports, and exchange listings all count as
// tradable goods.
type Market struct {
	waypointSymbol string
	imports        []shared.TradeGood
	exports        []shared.TradeGood
	exchange       []shared.TradeGood
	lastUpdated    time.Time
}

// NewMarket creates a new Market with validation
func NewMarket(waypointSymbol string, imports, exports, exchange []shared.TradeGood, lastUpdated time.Time) (*Market, error) {
	if waypointSymbol == "" {
		return nil, errors.New("waypoint symbol cannot be empty")
	}
	if lastUpdated.IsZero() {
		return nil, errors.New("timestamp cannot be empty")
	}

	return &Market{
		waypointSymbol: waypointSymbol,
		imports:        append([]shared.TradeGood(nil), imports...),
		exports:        append([]shared.TradeGood(nil), exports...),
		exchange:       append([]shared.TradeGood(nil), exchange...),
		lastUpdated:    lastUpdated,
	}, nil
}

func (m *Market) WaypointSymbol() string {
	return m.waypointSymbol
}

func (m *Market) Imports() []shared.TradeGood {
	return append([]shared.TradeGood(nil), m.imports...)
}

func (m *Market) Exports() []shared.TradeGood {
	return append([]shared.TradeGood(nil), m.exports...)
}

func (m *Market) Exchange() []shared.TradeGood {
	return append([]shared.TradeGood(nil), m.exchange...)
}

func (m *Market) LastUpdated() time.Time {
	return m.lastUpdated
}

// AllTradeGoods returns every good listed at this market across imports,
// exports, and exchange
func (m *Market) AllTradeGoods() []shared.TradeGood {
	goods := make([]shared.TradeGood, 0, len(m.imports)+len(m.exports)+len(m.exchange))
	goods = append(goods, m.imports...)
	goods = append(goods, m.exports...)
	goods = append(goods, m.exchange...)
	return goods
}

// HasGood checks if the market trades a specific good
func (m *Market) HasGood(symbol shared.TradeGood) bool {
	for _, good := range m.AllTradeGoods() {
		if good == symbol {
			return true
		}
	}
	return false
}

// SellsFuel reports whether ships can refuel at this market
func (m *Market) SellsFuel() bool {
	return m.HasGood(shared.TradeGoodFuel)
}
