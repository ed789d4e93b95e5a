// Package metrics records per-module import outcomes as Prometheus metrics and
// publishes them to a node_exporter textfile and/or a Pushgateway.
package metrics

import (
	"context"
	"time"
)

// Collector records import outcomes.
type Collector interface {
	// RecordImport records one module's outcome.
	RecordImport(module string, duration time.Duration, ok bool)

	// RecordRun records the outcome of the whole batch.
	RecordRun(failures int)

	// Publish writes or pushes everything recorded so far. It must run after
	// the network guard is released or the push is refused.
	Publish(ctx context.Context) error
}

// NewCollector returns a PrometheusCollector when a destination is
// configured and a NopCollector otherwise.
func NewCollector(config Config, logger Logger) (Collector, error) {
	if !config.Enabled() {
		return NewNopCollector(), nil
	}
	return NewPrometheusCollector(config, logger)
}
