package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/studyplan/internal/planner"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	schedules       *prometheus.CounterVec
	scheduledHours  prometheus.Histogram
	transitions     *prometheus.CounterVec
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	schedules := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyplan_schedules_generated_total",
		Help: "Schedules generated, by packing stop reason",
	}, []string{"stop_reason"})

	scheduledHours := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "studyplan_scheduled_hours",
		Help:    "Hours of study scheduled per generated schedule",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyplan_session_transitions_total",
		Help: "Session lifecycle changes, by action",
	}, []string{"action"})

	registry.MustRegister(requestDuration, requestTotal, schedules, scheduledHours, transitions)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		schedules:       schedules,
		scheduledHours:  scheduledHours,
		transitions:     transitions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveSchedule records one generated schedule.
func (m *Metrics) ObserveSchedule(res *planner.Result) {
	m.schedules.WithLabelValues(string(res.Pack.Stop)).Inc()
	var total time.Duration
	for _, s := range res.Schedule.Sessions {
		total += s.Duration
	}
	m.scheduledHours.Observe(total.Hours())
}

// ObserveTransition records one session lifecycle change.
func (m *Metrics) ObserveTransition(action string) {
	m.transitions.WithLabelValues(action).Inc()
}
