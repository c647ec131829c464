package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the prometheus registry.
type Config struct {
	Enabled     bool
	ServiceName string
	Environment string
}

// Metrics holds the dashboard instruments. A nil *Metrics is a valid no-op.
type Metrics struct {
	enabled  bool
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge

	aggregationRuns     *prometheus.CounterVec
	aggregationDuration *prometheus.HistogramVec
	snapshotRecords     *prometheus.GaugeVec
	cacheLookups        *prometheus.CounterVec

	jobRuns          *prometheus.CounterVec
	jobDuration      *prometheus.HistogramVec
	jobTimeouts      *prometheus.CounterVec
	jobErrors        *prometheus.CounterVec
	remindersCreated prometheus.Counter
}

// New builds a private registry for the dashboard instruments. The handler
// also serves the default registry, where the runtime collectors and the
// gorm pool plugin register themselves.
func New(cfg Config) (*Metrics, error) {
	registry := prometheus.NewRegistry()
	m := newMetrics(registry, cfg)
	m.gatherer = prometheus.Gatherers{registry, prometheus.DefaultGatherer}
	return m, nil
}

func newMetrics(registerer prometheus.Registerer, cfg Config) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "ispdesk"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &Metrics{
		enabled: cfg.Enabled,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ispdesk_http_requests_total",
			Help:        "HTTP requests by route and status class.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "ispdesk_http_request_duration_seconds",
			Help:        "HTTP request latency by route.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ispdesk_http_requests_in_flight",
			Help:        "HTTP requests currently being served.",
			ConstLabels: constLabels,
		}),
		aggregationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ispdesk_aggregation_runs_total",
			Help:        "Aggregation runs by view and outcome.",
			ConstLabels: constLabels,
		}, []string{"view", "outcome"}),
		aggregationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "ispdesk_aggregation_duration_seconds",
			Help:        "Aggregation latency by view, including snapshot load.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		}, []string{"view"}),
		snapshotRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "ispdesk_snapshot_records",
			Help:        "Records in the most recently loaded snapshot by collection.",
			ConstLabels: constLabels,
		}, []string{"collection"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ispdesk_cache_lookups_total",
			Help:        "Cache lookups by cache name and result.",
			ConstLabels: constLabels,
		}, []string{"cache", "result"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ispdesk_scheduler_job_runs_total",
			Help:        "Scheduler job runs by name.",
			ConstLabels: constLabels,
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "ispdesk_scheduler_job_duration_seconds",
			Help:        "Scheduler job latency.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			ConstLabels: constLabels,
		}, []string{"job"}),
		jobTimeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ispdesk_scheduler_job_timeouts_total",
			Help:        "Scheduler job runs that hit their deadline.",
			ConstLabels: constLabels,
		}, []string{"job"}),
		jobErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ispdesk_scheduler_job_errors_total",
			Help:        "Scheduler job errors by low-cardinality reason.",
			ConstLabels: constLabels,
		}, []string{"job", "reason"}),
		remindersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ispdesk_reminders_created_total",
			Help:        "Plan expiry reminders written by the scheduler.",
			ConstLabels: constLabels,
		}),
	}

	registerer.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.httpInFlight,
		m.aggregationRuns,
		m.aggregationDuration,
		m.snapshotRecords,
		m.cacheLookups,
		m.jobRuns,
		m.jobDuration,
		m.jobTimeouts,
		m.jobErrors,
		m.remindersCreated,
	)
	return m
}

// Enabled reports whether the /metrics endpoint should be exposed.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveAggregation records one aggregation run for a dashboard view.
func (m *Metrics) ObserveAggregation(view string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.aggregationRuns.WithLabelValues(view, outcome).Inc()
	m.aggregationDuration.WithLabelValues(view).Observe(elapsed.Seconds())
}

// SetSnapshotRecords publishes the record count of a snapshot collection.
func (m *Metrics) SetSnapshotRecords(collection string, count int) {
	if m == nil {
		return
	}
	m.snapshotRecords.WithLabelValues(collection).Set(float64(count))
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}
