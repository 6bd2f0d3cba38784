package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// RoutingMetricsCollector handles all path-planning metrics
type RoutingMetricsCollector struct {
	pathsComputed   *prometheus.CounterVec
	planActionCount *prometheus.HistogramVec
	planDuration    *prometheus.HistogramVec
}

// NewRoutingMetricsCollector creates a new routing metrics collector
func NewRoutingMetricsCollector() *RoutingMetricsCollector {
	return &RoutingMetricsCollector{
		// Path computations by outcome
		pathsComputed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "paths_computed_total",
				Help:      "Total number of path computations by system and outcome",
			},
			[]string{"system", "found"},
		),

		// Plan length distribution
		planActionCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_action_count",
				Help:      "Number of actions in computed travel plans",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"system"},
		),

		// Search duration distribution
		planDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_duration_seconds",
				Help:      "Wall-clock duration of path computations",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"system"},
		),
	}
}

// Register registers all routing metrics with the Prometheus registry
func (c *RoutingMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.pathsComputed,
		c.planActionCount,
		c.planDuration,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordPathComputed records one path computation
func (c *RoutingMetricsCollector) RecordPathComputed(system string, found bool, actionCount int, durationSeconds float64) {
	c.pathsComputed.WithLabelValues(system, strconv.FormatBool(found)).Inc()
	c.planDuration.WithLabelValues(system).Observe(durationSeconds)
	if found {
		c.planActionCount.WithLabelValues(system).Observe(float64(actionCount))
	}
}
