package persistence

import (
	"time"
)

// WaypointModel represents the waypoints table
type WaypointModel struct {
	WaypointSymbol string    `gorm:"column:waypoint_symbol;primaryKey"`
	SystemSymbol   string    `gorm:"column:system_symbol;not null;index"`
	Type           string    `gorm:"column:type;not null"`
	X              int       `gorm:"column:x;not null"`
	Y              int       `gorm:"column:y;not null"`
	Traits         string    `gorm:"column:traits;type:text"` // JSON array as text
	HasFuel        int       `gorm:"column:has_fuel;not null;default:0"` // 0 or 1 (SQLite compatible)
	SyncedAt       time.Time `gorm:"column:synced_at;not null"`
}

func (WaypointModel) TableName() string {
	return "waypoints"
}

// MarketModel represents the markets table, one row per waypoint holding the
// latest snapshot
type MarketModel struct {
	WaypointSymbol string    `gorm:"column:waypoint_symbol;primaryKey"`
	SystemSymbol   string    `gorm:"column:system_symbol;not null;index"`
	Imports        string    `gorm:"column:imports;type:text"`  // JSON array as text
	Exports        string    `gorm:"column:exports;type:text"`  // JSON array as text
	Exchange       string    `gorm:"column:exchange;type:text"` // JSON array as text
	LastUpdated    time.Time `gorm:"column:last_updated;not null"`
}

func (MarketModel) TableName() string {
	return "markets"
}

// ShipModel represents the ships table
type ShipModel struct {
	ShipSymbol    string     `gorm:"column:ship_symbol;primaryKey"`
	Role          string     `gorm:"column:role;not null;index"`
	Location      string     `gorm:"column:location;not null"`
	FuelCurrent   int        `gorm:"column:fuel_current;not null;default:0"`
	FuelCapacity  int        `gorm:"column:fuel_capacity;not null;default:0"`
	CargoCapacity int        `gorm:"column:cargo_capacity;not null;default:0"`
	CargoUnits    int        `gorm:"column:cargo_units;not null;default:0"`
	Inventory     string     `gorm:"column:inventory;type:text"` // JSON array as text
	EngineSpeed   int        `gorm:"column:engine_speed;not null"`
	NavStatus     string     `gorm:"column:nav_status;not null;default:'IN_ORBIT'"`
	ArrivalTime   *time.Time `gorm:"column:arrival_time"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (ShipModel) TableName() string {
	return "ships"
}

// AllModels returns every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&WaypointModel{},
		&MarketModel{},
		&ShipModel{},
	}
}
