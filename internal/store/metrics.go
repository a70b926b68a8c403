package store

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_store_mutations_total",
			Help: "Total number of store mutations by operation",
		},
		[]string{"op"},
	)

	persistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_persist_failures_total",
			Help: "Total number of snapshot writes that failed",
		},
	)
)

// MetricsHook counts mutations by operation.
func MetricsHook() Hook {
	return func(_ context.Context, m Mutation) error {
		mutationsTotal.WithLabelValues(string(m.Op)).Inc()
		return nil
	}
}
