package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "fleetagent"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalRoutingCollector is the singleton routing metrics collector
	// Set by SetGlobalRoutingCollector() when metrics are enabled
	globalRoutingCollector RoutingMetricsRecorder

	// globalTransferCollector is the singleton transfer metrics collector
	// Set by SetGlobalTransferCollector() when metrics are enabled
	globalTransferCollector TransferMetricsRecorder
)

// RoutingMetricsRecorder defines the interface for recording path-planning
// metrics. Used by application code; a nil global recorder means metrics are
// disabled and calls are no-ops.
type RoutingMetricsRecorder interface {
	RecordPathComputed(system string, found bool, actionCount int, durationSeconds float64)
}

// TransferMetricsRecorder defines the interface for recording cargo-transfer
// metrics
type TransferMetricsRecorder interface {
	RecordTransfer(waypoint string, tradeGood string, units int)
	RecordHaulerWait(waypoint string, waitSeconds float64)
	RecordUnmatchedAttempt(waypoint string)
}

// InitRegistry initializes the Prometheus registry.
// Should be called once at application startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry.
// Returns nil if metrics are not initialized.
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalRoutingCollector sets the global routing metrics collector
func SetGlobalRoutingCollector(collector RoutingMetricsRecorder) {
	globalRoutingCollector = collector
}

// RecordPathComputed records a path computation globally
func RecordPathComputed(system string, found bool, actionCount int, durationSeconds float64) {
	if globalRoutingCollector != nil {
		globalRoutingCollector.RecordPathComputed(system, found, actionCount, durationSeconds)
	}
}

// SetGlobalTransferCollector sets the global transfer metrics collector
func SetGlobalTransferCollector(collector TransferMetricsRecorder) {
	globalTransferCollector = collector
}

// RecordTransfer records a completed cargo transfer globally
func RecordTransfer(waypoint string, tradeGood string, units int) {
	if globalTransferCollector != nil {
		globalTransferCollector.RecordTransfer(waypoint, tradeGood, units)
	}
}

// RecordHaulerWait records how long a hauler waited until full globally
func RecordHaulerWait(waypoint string, waitSeconds float64) {
	if globalTransferCollector != nil {
		globalTransferCollector.RecordHaulerWait(waypoint, waitSeconds)
	}
}

// RecordUnmatchedAttempt records an offload attempt that matched nothing globally
func RecordUnmatchedAttempt(waypoint string) {
	if globalTransferCollector != nil {
		globalTransferCollector.RecordUnmatchedAttempt(waypoint)
	}
}
