package metrics

import (
	"context"
	"time"
)

// NopCollector - no-op реализация Collector для отключённых метрик.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordCommandStart ничего не делает.
func (c *NopCollector) RecordCommandStart(string, string) {}

// RecordCommandEnd ничего не делает.
func (c *NopCollector) RecordCommandEnd(string, string, time.Duration, bool) {}

// RecordOperation ничего не делает.
func (c *NopCollector) RecordOperation(string, time.Duration, bool) {}

// RecordPlatformExit ничего не делает.
func (c *NopCollector) RecordPlatformExit(string, int) {}

// Push всегда возвращает nil.
func (c *NopCollector) Push(context.Context) error {
	return nil
}
