package scheduler

import (
	"github.com/katalvlaran/voxpath/internal/logger"
	"github.com/katalvlaran/voxpath/internal/metrics"
	"github.com/katalvlaran/voxpath/types"
)

// DefaultMaxConcurrentJobs is the number of searches allowed in flight when
// WithMaxConcurrentJobs is not given.
const DefaultMaxConcurrentJobs = 3

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	maxJobs int
	logger  types.Logger
	metrics types.MetricsCollector
}

func defaultOptions() options {
	return options{
		maxJobs: DefaultMaxConcurrentJobs,
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}
}

// WithMaxConcurrentJobs caps the number of in-flight jobs.
//
// Parameters:
//   - n: slot count; values <= 0 keep DefaultMaxConcurrentJobs
//
// Returns:
//   - Option: Functional option for New
func WithMaxConcurrentJobs(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxJobs = n
		}
	}
}

// WithLogger sets a logger. A nil logger keeps the no-op default.
//
// Example:
//
//	s, err := scheduler.New(pf, scheduler.WithLogger(logging.NewSlogDefault()))
func WithLogger(l types.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets a metrics collector. A nil collector keeps the no-op default.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	s, err := scheduler.New(pf, scheduler.WithMetrics(metrics.NewPrometheus(reg, "")))
func WithMetrics(m types.MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
