package config

import "time"

// AgentConfig holds fleet agent behavior configuration
type AgentConfig struct {
	// Agent symbol used when registering with the game server
	Symbol string `mapstructure:"symbol"`

	// Home system the agent operates in (e.g. "X1-GU52")
	SystemSymbol string `mapstructure:"system_symbol"`

	// Flight modes route planning may use
	AllowedFlightModes []string `mapstructure:"allowed_flight_modes" validate:"omitempty,dive,oneof=BURN CRUISE DRIFT STEALTH"`

	// Waypoint where miners hand cargo off to haulers
	RendezvousWaypoint string `mapstructure:"rendezvous_waypoint"`

	// How often waypoint and market snapshots are refreshed from the API
	SyncInterval time.Duration `mapstructure:"sync_interval" validate:"required"`

	// How long a miner waits before retrying when no hauler matched its cargo
	TransferRetryDelay time.Duration `mapstructure:"transfer_retry_delay" validate:"required"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// PID file location for the daemon
	PIDFile string `mapstructure:"pid_file"`
}
