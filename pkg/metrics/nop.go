package metrics

import (
	"context"
	"time"
)

// NopCollector discards everything. Used when no destination is configured.
type NopCollector struct{}

func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

func (c *NopCollector) RecordImport(string, time.Duration, bool) {}

func (c *NopCollector) RecordRun(int) {}

func (c *NopCollector) Publish(context.Context) error { return nil }
