// Package metrics provides types.MetricsCollector implementations for the
// path job scheduler: a no-op collector and a Prometheus-backed one.
package metrics

import (
	"time"

	"github.com/katalvlaran/voxpath/types"
)

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Used as the scheduler default and in tests.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	s, err := scheduler.New(pf, scheduler.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordJobSubmitted discards the submission counter.
func (n *NopMetrics) RecordJobSubmitted() {}

// RecordJobStarted discards the queue wait observation.
func (n *NopMetrics) RecordJobStarted(_ /* queueWait */ time.Duration) {}

// RecordJobCompleted discards the completion observation.
func (n *NopMetrics) RecordJobCompleted(_ /* duration */ time.Duration, _ /* found */ bool, _ /* expanded */ int) {
}

// RecordJobFailed discards the failure counter.
func (n *NopMetrics) RecordJobFailed() {}

// SetQueueDepth discards the queue depth gauge.
func (n *NopMetrics) SetQueueDepth(_ /* n */ int) {}

// SetInFlight discards the in-flight gauge.
func (n *NopMetrics) SetInFlight(_ /* n */ int) {}
