package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
)

// GormShipRepository implements ShipRepository using GORM
type GormShipRepository struct {
	db *gorm.DB
}

// NewGormShipRepository creates a new GORM ship repository
func NewGormShipRepository(db *gorm.DB) *GormShipRepository {
	return &GormShipRepository{db: db}
}

// FindBySymbol retrieves a ship by its symbol
func (r *GormShipRepository) FindBySymbol(ctx context.Context, symbol string) (*fleet.Ship, error) {
	var model ShipModel
	result := r.db.WithContext(ctx).Where("ship_symbol = ?", symbol).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("ship not found: %s", symbol)
		}
		return nil, fmt.Errorf("failed to find ship: %w", result.Error)
	}

	return r.modelToShip(&model)
}

// ListAll retrieves every ship in the fleet
func (r *GormShipRepository) ListAll(ctx context.Context) ([]*fleet.Ship, error) {
	var models []ShipModel
	result := r.db.WithContext(ctx).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list ships: %w", result.Error)
	}

	return r.modelsToShips(models)
}

// ListByRole retrieves all ships with the given role
func (r *GormShipRepository) ListByRole(ctx context.Context, role fleet.Role) ([]*fleet.Ship, error) {
	var models []ShipModel
	result := r.db.WithContext(ctx).Where("role = ?", string(role)).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list ships by role: %w", result.Error)
	}

	return r.modelsToShips(models)
}

// Save persists a ship (upsert by symbol)
func (r *GormShipRepository) Save(ctx context.Context, ship *fleet.Ship) error {
	model, err := r.shipToModel(ship)
	if err != nil {
		return fmt.Errorf("failed to convert ship: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ship_symbol"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save ship: %w", result.Error)
	}

	return nil
}

func (r *GormShipRepository) modelsToShips(models []ShipModel) ([]*fleet.Ship, error) {
	ships := make([]*fleet.Ship, 0, len(models))
	for _, model := range models {
		ship, err := r.modelToShip(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert ship %s: %w", model.ShipSymbol, err)
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

func (r *GormShipRepository) modelToShip(model *ShipModel) (*fleet.Ship, error) {
	fuel, err := shared.NewFuel(model.FuelCurrent, model.FuelCapacity)
	if err != nil {
		return nil, fmt.Errorf("invalid fuel state: %w", err)
	}

	var inventory []shared.Inventory
	if model.Inventory != "" {
		if err := json.Unmarshal([]byte(model.Inventory), &inventory); err != nil {
			return nil, fmt.Errorf("failed to parse inventory: %w", err)
		}
	}

	cargo, err := shared.NewCargo(model.CargoCapacity, inventory)
	if err != nil {
		return nil, fmt.Errorf("invalid cargo state: %w", err)
	}

	return fleet.NewShip(
		model.ShipSymbol,
		fleet.Role(model.Role),
		model.Location,
		fuel,
		cargo,
		model.EngineSpeed,
		fleet.NavStatus(model.NavStatus),
	)
}

func (r *GormShipRepository) shipToModel(ship *fleet.Ship) (*ShipModel, error) {
	inventory, err := json.Marshal(ship.Cargo().Inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory: %w", err)
	}

	return &ShipModel{
		ShipSymbol:    ship.Symbol(),
		Role:          string(ship.Role()),
		Location:      ship.Location(),
		FuelCurrent:   ship.Fuel().Current,
		FuelCapacity:  ship.Fuel().Capacity,
		CargoCapacity: ship.Cargo().Capacity,
		CargoUnits:    ship.Cargo().Units,
		Inventory:     string(inventory),
		EngineSpeed:   ship.EngineSpeed(),
		NavStatus:     string(ship.NavStatus()),
		ArrivalTime:   ship.ArrivalTime(),
	}, nil
}
