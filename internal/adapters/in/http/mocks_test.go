package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "bookstore/internal/adapters/in/http"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type useCaseMock[R any, T any] struct {
	mock.Mock
}

func (m *useCaseMock[R, T]) Handle(ctx context.Context, request R) (T, error) {
	args := m.Called(ctx, request)
	var out T
	if v := args.Get(0); v != nil {
		out = v.(T)
	}
	return out, args.Error(1)
}

type generateInvoiceMock struct {
	mock.Mock
}

func (m *generateInvoiceMock) Handle(ctx context.Context, cmd commands.GenerateInvoiceCommand) (*invoice.Invoice, bool, error) {
	args := m.Called(ctx, cmd)
	inv, _ := args.Get(0).(*invoice.Invoice)
	return inv, args.Bool(1), args.Error(2)
}

// envelope mirrors result.Result with raw data for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func newTestRouter(t *testing.T, handlers httpadapter.Handlers, cfg httpadapter.RouterConfig) *echo.Echo {
	t.Helper()
	e, err := httpadapter.NewRouter(httpadapter.NewServer(handlers, nil), cfg)
	require.NoError(t, err)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	shipping, err := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", "12 Main St, Springfield", "")
	require.NoError(t, err)
	line, err := order.NewLine(kernel.MustISBN("9780134190440"), 2, kernel.MustMoney("80"), nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), shipping, "", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		[]*order.Line{line})
	require.NoError(t, err)
	return o
}
