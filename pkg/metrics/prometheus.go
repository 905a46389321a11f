// Package metrics provides Prometheus metrics for the admission scoring service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring
	composites     *prometheus.CounterVec
	scoringLatency prometheus.Histogram
	batchSize      prometheus.Histogram
	riskCodes      *prometheus.CounterVec

	// Submissions
	submissionsAccepted  prometheus.Counter
	submissionsDuplicate prometheus.Counter

	// Catalog
	catalogUniversities prometheus.Gauge
	catalogPatterns     prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Workers
	workerCount             prometheus.Gauge
	workerActive            prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Repository
	repositoryWriteLatency prometheus.Histogram
	repositoryResults      prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByComponent   *prometheus.CounterVec
	errorsByEndpoint    *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "admitscore",
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

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.composites = m.counterVec("composites_total", "Composite computations by outcome", "outcome")
	m.scoringLatency = m.histogram("scoring_latency_milliseconds", "Latency of scoring one candidate against a batch of universities", m.histogramBuckets)
	m.batchSize = m.histogram("batch_universities", "Universities per scoring batch", prometheus.ExponentialBuckets(1, 2, 10))
	m.riskCodes = m.counterVec("risk_codes_total", "Assessed cutoff risk codes", "code")

	m.submissionsAccepted = m.counter("submissions_accepted_total", "Asynchronous submissions accepted")
	m.submissionsDuplicate = m.counter("submissions_duplicate_total", "Asynchronous submissions rejected as duplicates")

	m.catalogUniversities = m.gauge("catalog_universities", "University conditions loaded in the catalog")
	m.catalogPatterns = m.gauge("catalog_patterns", "Distinct weight patterns in the catalog")

	m.queueSize = m.gauge("queue_size", "Jobs waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue size over capacity")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Jobs dequeued")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Rejected enqueues by reason", "reason")

	m.workerCount = m.gauge("worker_count", "Configured scoring workers")
	m.workerActive = m.gauge("worker_active", "Workers currently processing a job")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Job processing latency", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Jobs that failed to complete")

	m.repositoryWriteLatency = m.histogram("repository_write_latency_milliseconds", "Result store write latency", m.histogramBuckets)
	m.repositoryResults = m.gauge("repository_results", "Results held by the result store")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_request_duration_milliseconds", Help: "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap memory in use")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Running goroutines")
}

// Scoring.

// RecordComposite counts one composite by outcome: "success" or a failure kind.
func RecordComposite(outcome string) { globalManager.composites.WithLabelValues(outcome).Inc() }

// RecordScoringLatency records batch scoring latency in milliseconds.
func RecordScoringLatency(ms float64) { globalManager.scoringLatency.Observe(ms) }

// RecordBatchSize records the number of universities in a batch.
func RecordBatchSize(n int) { globalManager.batchSize.Observe(float64(n)) }

// RecordRiskCode counts an assessed risk code.
func RecordRiskCode(code int) { globalManager.riskCodes.WithLabelValues(strconv.Itoa(code)).Inc() }

// Submissions.

// RecordSubmissionAccepted counts an accepted submission.
func RecordSubmissionAccepted() { globalManager.submissionsAccepted.Inc() }

// RecordSubmissionDuplicate counts a duplicate submission.
func RecordSubmissionDuplicate() { globalManager.submissionsDuplicate.Inc() }

// Catalog.

// UpdateCatalog sets the catalog size gauges.
func UpdateCatalog(universities, patterns int) {
	globalManager.catalogUniversities.Set(float64(universities))
	globalManager.catalogPatterns.Set(float64(patterns))
}

// Queue.

// UpdateQueueSize sets the queue size and utilization.
func UpdateQueueSize(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// RecordQueueEnqueue counts an enqueued job.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue counts a dequeued job.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// Workers.

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// AddWorkerActive adjusts the number of busy workers.
func AddWorkerActive(delta int) { globalManager.workerActive.Add(float64(delta)) }

// RecordWorkerProcessingLatency records job latency in milliseconds.
func RecordWorkerProcessingLatency(ms float64) { globalManager.workerProcessingLatency.Observe(ms) }

// RecordWorkerError counts a failed job.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// Repository.

// RecordRepositoryWriteLatency records a store write in milliseconds.
func RecordRepositoryWriteLatency(ms float64) { globalManager.repositoryWriteLatency.Observe(ms) }

// UpdateRepositoryResults sets the stored result count.
func UpdateRepositoryResults(n int) { globalManager.repositoryResults.Set(float64(n)) }

// HTTP and errors.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordErrorByComponent counts an error of a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an error of an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System.

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
