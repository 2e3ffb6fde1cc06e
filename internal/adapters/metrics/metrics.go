// Package metrics exposes domain counters and HTTP instrumentation through Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "whenandwhere"

// Metrics implements domain.MetricsRecorder on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	eventsCreated      prometheus.Counter
	eventsDeleted      prometheus.Counter
	responsesSubmitted *prometheus.CounterVec
	notifications      *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	httpInFlight       prometheus.Gauge
}

// New registers all collectors, plus the Go and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_created_total",
			Help:      "Number of events created.",
		}),
		eventsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_deleted_total",
			Help:      "Number of events deleted.",
		}),
		responsesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_submitted_total",
			Help:      "Number of availability responses stored, by result.",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Number of notification emails attempted, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "A histogram of latencies for requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "A gauge of requests currently being served.",
		}),
	}
	m.registry.MustRegister(
		m.eventsCreated,
		m.eventsDeleted,
		m.responsesSubmitted,
		m.notifications,
		m.httpDuration,
		m.httpInFlight,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) EventCreated() { m.eventsCreated.Inc() }

func (m *Metrics) EventDeleted() { m.eventsDeleted.Inc() }

func (m *Metrics) ResponseSubmitted(created bool) {
	result := "updated"
	if created {
		result = "created"
	}
	m.responsesSubmitted.WithLabelValues(result).Inc()
}

func (m *Metrics) NotificationSent(kind string, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request latency and in-flight requests for next.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(m.httpInFlight,
		promhttp.InstrumentHandlerDuration(m.httpDuration, next),
	)
}
