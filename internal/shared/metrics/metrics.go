// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	recordOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tailtrack",
		Subsystem: "records",
		Name:      "operations_total",
		Help:      "Record store operations partitioned by operation and outcome.",
	}, []string{"operation", "outcome"})

	lastCreatedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tailtrack",
		Subsystem: "records",
		Name:      "last_created_timestamp_seconds",
		Help:      "Unix timestamp of the most recently created exercise record.",
	})
)

func init() {
	prometheus.MustRegister(recordOperations, lastCreatedGauge)
}

// RecordOperation counts a finished store operation.
func RecordOperation(operation, outcome string) {
	recordOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordCreated moves the creation watermark.
func RecordCreated(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastCreatedGauge.Set(float64(ts.Unix()))
}
