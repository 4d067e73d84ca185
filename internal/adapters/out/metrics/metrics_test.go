package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore/internal/adapters/out/metrics"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingNotifier struct{ calls int }

func (f *failingNotifier) NotifyStatusChanged(context.Context, ports.OrderStatusChanged) error {
	f.calls++
	return errors.New("broker down")
}

func TestCountingNotifier(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	next := &failingNotifier{}
	notifier := metrics.NewCountingNotifier(m, next)

	event := ports.OrderStatusChanged{
		OrderID: kernel.NewUUID(),
		From:    order.PendingConfirmation,
		To:      order.Confirmed,
	}

	err := notifier.NotifyStatusChanged(t.Context(), event)
	require.Error(t, err)
	_ = notifier.NotifyStatusChanged(t.Context(), event)

	assert.Equal(t, 2, next.calls)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Transitions.WithLabelValues("PendingConfirmation", "Confirmed")), 0)
}

func TestCountingNotifier_WithoutNext(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	err := metrics.NewCountingNotifier(m, nil).NotifyStatusChanged(t.Context(), ports.OrderStatusChanged{
		From: order.OutForDelivery,
		To:   order.Delivered,
	})

	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Transitions.WithLabelValues("OutForDelivery", "Delivered")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.Requests.WithLabelValues("/api/v1/orders", http.MethodGet, "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `bookstore_http_requests_total{method="GET",route="/api/v1/orders",status="200"} 1`)
}
