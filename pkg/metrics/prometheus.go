// Package metrics provides Prometheus metrics for the model arena service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the arena service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics.
	battlesServed   prometheus.Counter
	votesApplied    prometheus.Counter
	voteErrors      *prometheus.CounterVec
	seedInserted    prometheus.Counter
	catalogSize     prometheus.Gauge
	topRating       prometheus.Gauge
	battlesComplete prometheus.Gauge

	// Journal pipeline health.
	journalQueueSize prometheus.Gauge
	journalAppends   prometheus.Counter
	journalDrops     prometheus.Counter
	journalErrors    prometheus.Counter
	workerCount      prometheus.Gauge

	// Store performance.
	storeOpLatency *prometheus.HistogramVec

	// HTTP performance.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry singleton

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "arena",
		subsystem:        "ranking",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.battlesServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "battles_served_total",
		Help:      "Total number of matchups handed to clients",
	})

	m.votesApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "votes_applied_total",
		Help:      "Total number of votes committed to the registry",
	})

	m.voteErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "vote_errors_total",
			Help:      "Total number of rejected votes by reason",
		},
		[]string{"reason"},
	)

	m.seedInserted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seed_models_inserted_total",
		Help:      "Total number of models inserted by seeding",
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_size",
		Help:      "Current number of models in the registry",
	})

	m.topRating = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "top_rating",
		Help:      "Rating of the current leaderboard leader",
	})

	m.battlesComplete = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "battles_completed",
		Help:      "Total number of applied votes reported by the registry",
	})

	m.journalQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_queue_size",
		Help:      "Current number of audit records waiting for the journal",
	})

	m.journalAppends = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_appends_total",
		Help:      "Total number of vote audit records persisted",
	})

	m.journalDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_drops_total",
		Help:      "Total number of audit records dropped on queue backpressure",
	})

	m.journalErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_errors_total",
		Help:      "Total number of journal append failures",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_worker_count",
		Help:      "Number of journal worker goroutines",
	})

	m.storeOpLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_op_latency_milliseconds",
			Help:      "Registry operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"op"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers operating on the global manager.

// RecordBattleServed increments the matchups counter.
func RecordBattleServed() {
	globalManager.battlesServed.Inc()
}

// RecordVoteApplied increments the committed-votes counter.
func RecordVoteApplied() {
	globalManager.votesApplied.Inc()
}

// RecordVoteError increments the rejected-votes counter for reason.
func RecordVoteError(reason string) {
	globalManager.voteErrors.WithLabelValues(reason).Inc()
}

// RecordSeedInserted adds to the seeded-models counter.
func RecordSeedInserted(count int) {
	globalManager.seedInserted.Add(float64(count))
}

// UpdateCatalogSize sets the registry size gauge.
func UpdateCatalogSize(size int) {
	globalManager.catalogSize.Set(float64(size))
}

// UpdateTopRating sets the leader rating gauge.
func UpdateTopRating(rating float64) {
	globalManager.topRating.Set(rating)
}

// UpdateBattlesCompleted sets the applied-votes gauge.
func UpdateBattlesCompleted(count int64) {
	globalManager.battlesComplete.Set(float64(count))
}

// UpdateJournalQueueSize sets the journal backlog gauge.
func UpdateJournalQueueSize(size int) {
	globalManager.journalQueueSize.Set(float64(size))
}

// RecordJournalAppend increments the persisted audit-record counter.
func RecordJournalAppend() {
	globalManager.journalAppends.Inc()
}

// RecordJournalDrop increments the dropped audit-record counter.
func RecordJournalDrop() {
	globalManager.journalDrops.Inc()
}

// RecordJournalError increments the journal failure counter.
func RecordJournalError() {
	globalManager.journalErrors.Inc()
}

// UpdateWorkerCount sets the journal worker gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordStoreOpLatency observes one registry operation duration.
func RecordStoreOpLatency(op string, latencyMs float64) {
	globalManager.storeOpLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordHTTPRequest increments the request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry served on /metrics and /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
