// Package metrics provides Prometheus metrics for the motorcast service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Engine
	forecastsBuilt    prometheus.Counter
	suggestionsBuilt  prometheus.Counter
	forecastLatency   prometheus.Histogram
	suggestionLatency prometheus.Histogram
	supportNeed       *prometheus.CounterVec
	validationErrors  *prometheus.CounterVec

	// Ingest
	evaluationsIngested  prometheus.Counter
	evaluationsDuplicate prometheus.Counter
	totalLearners        prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueue       prometheus.Counter
	queueDequeue       prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Repository
	repositoryShardCount      prometheus.Gauge
	repositoryRecordsPerShard *prometheus.GaugeVec
	repositoryUpdateLatency   prometheus.Histogram
	repositoryQueryLatency    prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "motorcast",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.forecastsBuilt = auto.NewCounter(m.counterOpts("forecasts_built_total", "Total number of forecasts built"))
	m.suggestionsBuilt = auto.NewCounter(m.counterOpts("suggestions_built_total", "Total number of suggestion sets built"))
	m.forecastLatency = auto.NewHistogram(m.histogramOpts("forecast_latency_milliseconds", "Forecast build latency in milliseconds"))
	m.suggestionLatency = auto.NewHistogram(m.histogramOpts("suggestion_latency_milliseconds", "Suggestion build latency in milliseconds"))
	m.supportNeed = auto.NewCounterVec(m.counterOpts("support_need_total", "Forecasts by recommended support need"), []string{"level"})
	m.validationErrors = auto.NewCounterVec(m.counterOpts("validation_errors_total", "Rejected inputs by kind"), []string{"kind"})

	m.evaluationsIngested = auto.NewCounter(m.counterOpts("evaluations_ingested_total", "Evaluations appended to learner histories"))
	m.evaluationsDuplicate = auto.NewCounter(m.counterOpts("evaluations_duplicate_total", "Resubmitted evaluations ignored"))
	m.totalLearners = auto.NewGauge(m.gaugeOpts("total_learners", "Number of learners with a profile or history"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Evaluations waiting in the ingest queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Ingest queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization", "Ingest queue fill ratio (0.0-1.0)"))
	m.queueEnqueue = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Evaluations enqueued"))
	m.queueDequeue = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Evaluations dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Enqueue failures"))

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Number of ingest workers"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds", "Time to apply one evaluation in milliseconds"))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Evaluations a worker failed to apply"))

	m.repositoryShardCount = auto.NewGauge(m.gaugeOpts("repository_shard_count", "Number of store shards"))
	m.repositoryRecordsPerShard = auto.NewGaugeVec(m.gaugeOpts("repository_records_per_shard", "Learners per store shard"), []string{"shard_id"})
	m.repositoryUpdateLatency = auto.NewHistogram(m.histogramOpts("repository_update_latency_milliseconds", "Store write latency in milliseconds"))
	m.repositoryQueryLatency = auto.NewHistogram(m.histogramOpts("repository_query_latency_milliseconds", "Store read latency in milliseconds"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "type"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "Errors by HTTP endpoint"),
		[]string{"endpoint", "method", "type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Heap memory in use, in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
}

// RecordForecastBuilt counts a forecast and its build latency.
func RecordForecastBuilt(latencyMs float64) {
	globalManager.forecastsBuilt.Inc()
	globalManager.forecastLatency.Observe(latencyMs)
}

// RecordSuggestionsBuilt counts a suggestion set and its build latency.
func RecordSuggestionsBuilt(latencyMs float64) {
	globalManager.suggestionsBuilt.Inc()
	globalManager.suggestionLatency.Observe(latencyMs)
}

// RecordSupportNeed counts a forecast's support need level.
func RecordSupportNeed(level string) {
	globalManager.supportNeed.WithLabelValues(level).Inc()
}

// RecordValidationError counts a rejected input of the given kind.
func RecordValidationError(kind string) {
	globalManager.validationErrors.WithLabelValues(kind).Inc()
}

// RecordEvaluationIngested counts an evaluation appended to a history.
func RecordEvaluationIngested() {
	globalManager.evaluationsIngested.Inc()
}

// RecordEvaluationDuplicate counts an ignored resubmission.
func RecordEvaluationDuplicate() {
	globalManager.evaluationsDuplicate.Inc()
}

// UpdateTotalLearners sets the number of known learners.
func UpdateTotalLearners(count int) {
	globalManager.totalLearners.Set(float64(count))
}

// UpdateQueueSize sets the current queue length.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue fill ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue counts an enqueue.
func RecordQueueEnqueue() {
	globalManager.queueEnqueue.Inc()
}

// RecordQueueDequeue counts a dequeue.
func RecordQueueDequeue() {
	globalManager.queueDequeue.Inc()
}

// RecordQueueEnqueueError counts a failed enqueue.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the number of ingest workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records the time to apply one evaluation.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError counts a failed evaluation.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// UpdateRepositoryShardCount sets the number of store shards.
func UpdateRepositoryShardCount(count int) {
	globalManager.repositoryShardCount.Set(float64(count))
}

// UpdateRepositoryRecordsPerShard sets the learner count of one shard.
func UpdateRepositoryRecordsPerShard(shardID string, count int) {
	globalManager.repositoryRecordsPerShard.WithLabelValues(shardID).Set(float64(count))
}

// RecordRepositoryUpdateLatency records a store write latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records a store read latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an error returned by an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
