package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/voxpath/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use so that building
// a collector that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	submitted     prometheus.Counter
	failed        prometheus.Counter
	completed     *prometheus.CounterVec
	queueWait     prometheus.Histogram
	searchLatency prometheus.Histogram
	expanded      prometheus.Histogram
	queueDepth    prometheus.Gauge
	inFlight      prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "voxpath" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "voxpath"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.submitted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "jobs_submitted_total",
			Help:      "Total path requests accepted by the scheduler.",
		})

		p.failed = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "jobs_failed_total",
			Help:      "Total searches that returned an error or panicked.",
		})

		p.completed = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "jobs_completed_total",
			Help:      "Total finished searches by outcome.",
		}, []string{"outcome"})

		p.queueWait = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "queue_wait_seconds",
			Help:      "Time jobs spent waiting for a concurrency slot.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		})

		p.searchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Wall time of a single A* search.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 9),
		})

		p.expanded = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "expanded_cells",
			Help:      "Cells moved to the closed set per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		})

		p.queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "queue_depth",
			Help:      "Jobs waiting for a concurrency slot.",
		})

		p.inFlight = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "in_flight",
			Help:      "Jobs holding a concurrency slot.",
		})

		p.reg.MustRegister(p.submitted)
		p.reg.MustRegister(p.failed)
		p.reg.MustRegister(p.completed)
		p.reg.MustRegister(p.queueWait)
		p.reg.MustRegister(p.searchLatency)
		p.reg.MustRegister(p.expanded)
		p.reg.MustRegister(p.queueDepth)
		p.reg.MustRegister(p.inFlight)
	})
}

// RecordJobSubmitted increments the submission counter.
func (p *PrometheusCollector) RecordJobSubmitted() {
	p.ensureRegistered()
	p.submitted.Inc()
}

// RecordJobStarted observes how long a job waited in the queue.
func (p *PrometheusCollector) RecordJobStarted(queueWait time.Duration) {
	p.ensureRegistered()
	p.queueWait.Observe(queueWait.Seconds())
}

// RecordJobCompleted observes search latency and size and counts the outcome.
func (p *PrometheusCollector) RecordJobCompleted(duration time.Duration, found bool, expanded int) {
	p.ensureRegistered()
	outcome := "unreachable"
	if found {
		outcome = "found"
	}
	p.completed.WithLabelValues(outcome).Inc()
	p.searchLatency.Observe(duration.Seconds())
	p.expanded.Observe(float64(expanded))
}

// RecordJobFailed increments the failure counter.
func (p *PrometheusCollector) RecordJobFailed() {
	p.ensureRegistered()
	p.failed.Inc()
}

// SetQueueDepth sets the queue depth gauge.
func (p *PrometheusCollector) SetQueueDepth(n int) {
	p.ensureRegistered()
	p.queueDepth.Set(float64(n))
}

// SetInFlight sets the in-flight gauge.
func (p *PrometheusCollector) SetInFlight(n int) {
	p.ensureRegistered()
	p.inFlight.Set(float64(n))
}
