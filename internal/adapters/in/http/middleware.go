package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookstore/internal/adapters/out/metrics"
	idempotency "bookstore/internal/adapters/out/redis"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/result"

	"github.com/labstack/echo/v4"
)

const (
	// IdempotencyHeader carries the client key of a retryable POST.
	IdempotencyHeader = "Idempotency-Key"
	// ReplayedHeader is set on responses served from the idempotency store.
	ReplayedHeader = "Idempotent-Replayed"
)

// IdempotencyStore keeps the outcome of POST requests by key.
type IdempotencyStore interface {
	Key(method, path, clientKey string) string
	Reserve(ctx context.Context, key string) (idempotency.Reservation, error)
	Complete(ctx context.Context, key string, response idempotency.StoredResponse) error
	Release(ctx context.Context, key string) error
}

// RequestMetrics counts requests per route, method and status and observes latency.
func RequestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			m.Requests.WithLabelValues(route, c.Request().Method, status).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Microseconds()) / 1000)
			return nil
		}
	}
}

// Idempotency replays the stored response of a POST carrying a known
// Idempotency-Key. A second request arriving while the first is still running gets
// 409 CONFLICT. Server errors release the key so the client can retry; a store outage
// lets the request through unprotected.
func Idempotency(store IdempotencyStore, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "idempotency")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			clientKey := strings.TrimSpace(req.Header.Get(IdempotencyHeader))
			if req.Method != http.MethodPost || clientKey == "" {
				return next(c)
			}

			ctx := req.Context()
			key := store.Key(req.Method, req.URL.Path, clientKey)
			reservation, err := store.Reserve(ctx, key)
			if err != nil {
				logger.WarnContext(ctx, "idempotency store unavailable", "error", err)
				return next(c)
			}
			if reservation.Replay != nil {
				c.Response().Header().Set(ReplayedHeader, "true")
				replay := reservation.Replay
				return c.Blob(replay.Status, replay.ContentType, replay.Body)
			}
			if !reservation.Acquired {
				return c.JSON(http.StatusConflict, result.Fail[any](
					"a request with this idempotency key is still in progress", errs.CodeConflict))
			}

			recorder := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = recorder

			err = next(c)
			status := c.Response().Status
			if err != nil || status >= http.StatusInternalServerError {
				if releaseErr := store.Release(ctx, key); releaseErr != nil {
					logger.WarnContext(ctx, "idempotency key release failed", "key", key, "error", releaseErr)
				}
				return err
			}

			stored := idempotency.StoredResponse{
				Status:      status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        recorder.body.Bytes(),
			}
			if err = store.Complete(ctx, key, stored); err != nil {
				logger.WarnContext(ctx, "idempotency response not stored", "key", key, "error", err)
			}
			return nil
		}
	}
}

// bodyRecorder copies the response body while writing it through.
type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
