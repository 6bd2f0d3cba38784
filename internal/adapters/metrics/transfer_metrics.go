package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TransferMetricsCollector handles all cargo-rendezvous metrics
type TransferMetricsCollector struct {
	transfersTotal    *prometheus.CounterVec
	unitsTransferred  *prometheus.CounterVec
	haulerWaitSeconds *prometheus.HistogramVec
	unmatchedAttempts *prometheus.CounterVec
}

// NewTransferMetricsCollector creates a new transfer metrics collector
func NewTransferMetricsCollector() *TransferMetricsCollector {
	return &TransferMetricsCollector{
		// Completed transfers counter
		transfersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cargo_transfers_total",
				Help:      "Total number of completed cargo transfers",
			},
			[]string{"waypoint", "trade_good"},
		),

		// Units moved counter
		unitsTransferred: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cargo_units_transferred_total",
				Help:      "Total cargo units handed off to waiting haulers",
			},
			[]string{"waypoint", "trade_good"},
		),

		// Hauler wait duration histogram
		haulerWaitSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "hauler_wait_seconds",
				Help:      "Time haulers spent waiting until full",
				Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600},
			},
			[]string{"waypoint"},
		),

		// Offload attempts that matched no hauler
		unmatchedAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfer_unmatched_attempts_total",
				Help:      "Offload attempts that found no matching waiting ship",
			},
			[]string{"waypoint"},
		),
	}
}

// Register registers all transfer metrics with the Prometheus registry
func (c *TransferMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.transfersTotal,
		c.unitsTransferred,
		c.haulerWaitSeconds,
		c.unmatchedAttempts,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordTransfer records one completed cargo transfer
func (c *TransferMetricsCollector) RecordTransfer(waypoint string, tradeGood string, units int) {
	c.transfersTotal.WithLabelValues(waypoint, tradeGood).Inc()
	c.unitsTransferred.WithLabelValues(waypoint, tradeGood).Add(float64(units))
}

// RecordHaulerWait records how long a hauler waited until full
func (c *TransferMetricsCollector) RecordHaulerWait(waypoint string, waitSeconds float64) {
	c.haulerWaitSeconds.WithLabelValues(waypoint).Observe(waitSeconds)
}

// RecordUnmatchedAttempt records an offload attempt that matched nothing
func (c *TransferMetricsCollector) RecordUnmatchedAttempt(waypoint string) {
	c.unmatchedAttempts.WithLabelValues(waypoint).Inc()
}
