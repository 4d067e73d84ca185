// Package metrics exposes Prometheus instruments for the HTTP surface and the order
// workflow.
package metrics

import (
	"context"
	"net/http"

	"bookstore/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

// Metrics holds every instrument of the service.
type Metrics struct {
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	Transitions *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the instruments and registers them on registry.
//
// Example:
//
//	m := metrics.New(prometheus.NewRegistry())
//	e.GET("/metrics", echo.WrapHandler(m.Handler()))
func New(registry *prometheus.Registry) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Committed order status transitions.",
	}, []string{"from", "to"})

	registry.MustRegister(requests, latency, transitions)
	return &Metrics{
		Requests:    requests,
		LatencyMS:   latency,
		Transitions: transitions,
		gatherer:    registry,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// CountingNotifier counts transitions and forwards them to next. next may be nil.
type CountingNotifier struct {
	transitions *prometheus.CounterVec
	next        ports.Notifier
}

// NewCountingNotifier wraps next with the transition counter of m.
func NewCountingNotifier(m *Metrics, next ports.Notifier) *CountingNotifier {
	return &CountingNotifier{transitions: m.Transitions, next: next}
}

// NotifyStatusChanged increments the counter, then delegates.
func (n *CountingNotifier) NotifyStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	n.transitions.WithLabelValues(event.From.String(), event.To.String()).Inc()
	if n.next == nil {
		return nil
	}
	return n.next.NotifyStatusChanged(ctx, event)
}
