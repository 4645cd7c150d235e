package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/guardia-api/internal/models"
)

// MetricsService owns the prometheus registry and the counters the coverage
// engine reports into.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	assignments     *prometheus.CounterVec
	unfulfilled     prometheus.Counter
	redistributions prometheus.Counter
	validations     *prometheus.CounterVec
}

// NewMetricsService builds the registry with all collectors registered.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &MetricsService{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guardia_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "guardia_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guardia_assignments_total",
			Help: "Coverage assignments by duty type.",
		}, []string{"duty_type"}),
		unfulfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guardia_unfulfilled_hours_total",
			Help: "Absent hours left without a substitute.",
		}),
		redistributions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guardia_redistributions_total",
			Help: "Slot recomputations triggered by overlapping absences or cancellations.",
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guardia_validations_total",
			Help: "Coverage lifecycle transitions by result.",
		}, []string{"result"}),
	}
	registry.MustRegister(m.httpRequests, m.httpDuration, m.assignments,
		m.unfulfilled, m.redistributions, m.validations)
	return m
}

// ObserveHTTPRequest records one handled request.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordAssignment counts one persisted coverage.
func (m *MetricsService) RecordAssignment(duty models.DutyType) {
	if m == nil {
		return
	}
	m.assignments.WithLabelValues(string(duty)).Inc()
}

// RecordUnfulfilled counts one absent hour nobody could cover.
func (m *MetricsService) RecordUnfulfilled() {
	if m == nil {
		return
	}
	m.unfulfilled.Inc()
}

// RecordRedistribution counts one slot recomputation.
func (m *MetricsService) RecordRedistribution() {
	if m == nil {
		return
	}
	m.redistributions.Inc()
}

// RecordValidation counts one lifecycle transition outcome.
func (m *MetricsService) RecordValidation(result string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(result).Inc()
}

// Handler serves the registry in prometheus exposition format.
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
