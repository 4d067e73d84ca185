package http_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	httpadapter "bookstore/internal/adapters/in/http"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := map[errs.Code]int{
		errs.CodeNotFound:          http.StatusNotFound,
		errs.CodeInvalidTransition: http.StatusConflict,
		errs.CodeValidation:        http.StatusUnprocessableEntity,
		errs.CodeUnauthorized:      http.StatusForbidden,
		errs.CodeConflict:          http.StatusConflict,
		errs.CodeInternal:          http.StatusInternalServerError,
	}
	for code, status := range tests {
		assert.Equal(t, status, httpadapter.StatusFor(code), code)
	}
}

func TestCreateOrder(t *testing.T) {
	customerID := kernel.NewUUID()
	body := `{
		"customerId": "` + customerID.String() + `",
		"shipping": {"receiverName": "Ann Lee", "receiverPhone": "+1 555 0100", "address": "12 Main St, Springfield"},
		"items": [{"isbn": "978-0-13-419044-0", "quantity": 2}]
	}`

	t.Run("should place the order and answer 201", func(t *testing.T) {
		createOrder := &useCaseMock[commands.CreateOrderCommand, *order.Order]{}
		placed := pendingOrder(t)
		createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			items := cmd.Items()
			return cmd.CustomerID().IsEqual(customerID) &&
				len(items) == 1 && items[0].ISBN.String() == "9780134190440" && items[0].Quantity == 2
		})).Return(placed, nil).Once()
		e := newTestRouter(t, httpadapter.Handlers{CreateOrder: createOrder}, httpadapter.RouterConfig{})

		rec, env := do(t, e, http.MethodPost, "/api/v1/orders", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)
		assert.Empty(t, env.Errors)
		assert.Contains(t, string(env.Data), `"status":"PendingConfirmation"`)
		assert.Contains(t, string(env.Data), `"total":"160.00"`)
		createOrder.AssertExpectations(t)
	})

	t.Run("should reject a body that breaks the contract", func(t *testing.T) {
		createOrder := &useCaseMock[commands.CreateOrderCommand, *order.Order]{}
		e := newTestRouter(t, httpadapter.Handlers{CreateOrder: createOrder}, httpadapter.RouterConfig{})

		rec, env := do(t, e, http.MethodPost, "/api/v1/orders", `{"customerId": "`+customerID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, []string{"VALIDATION_ERROR"}, env.Errors)
		createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an invalid isbn with 422", func(t *testing.T) {
		createOrder := &useCaseMock[commands.CreateOrderCommand, *order.Order]{}
		e := newTestRouter(t, httpadapter.Handlers{CreateOrder: createOrder}, httpadapter.RouterConfig{})

		rec, env := do(t, e, http.MethodPost, "/api/v1/orders", `{
			"customerId": "`+customerID.String()+`",
			"shipping": {"receiverName": "Ann Lee", "receiverPhone": "+1 555 0100", "address": "12 Main St"},
			"items": [{"isbn": "9780134190441", "quantity": 1}]
		}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"VALIDATION_ERROR"}, env.Errors)
		assert.Contains(t, env.Message, "not a valid ISBN")
	})
}

func TestOrderCommands_ErrorMapping(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID().String()

	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		hidesMsg bool
	}{
		{"invalid transition", errs.NewInvalidTransitionError("order", "Cancelled", "approve"), http.StatusConflict, "INVALID_TRANSITION", false},
		{"not found", errs.NewObjectNotFoundError("order", orderID), http.StatusNotFound, "NOT_FOUND", false},
		{"unauthorized", errs.NewUnauthorizedError(actorID, "approve"), http.StatusForbidden, "UNAUTHORIZED", false},
		{"conflict", errs.NewConflictError("order"), http.StatusConflict, "CONFLICT", false},
		{"internal", errors.New("pq: connection reset by peer"), http.StatusInternalServerError, "INTERNAL", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approve := &useCaseMock[commands.ApproveOrderCommand, *order.Order]{}
			approve.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			e := newTestRouter(t, httpadapter.Handlers{ApproveOrder: approve}, httpadapter.RouterConfig{})

			rec, env := do(t, e, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/approval",
				`{"approverId": "`+actorID+`", "decision": "approve"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, []string{tt.code}, env.Errors)
			assert.Equal(t, "null", string(env.Data))
			if tt.hidesMsg {
				assert.NotContains(t, env.Message, "pq:")
			}
		})
	}
}

func TestApproveOrder_Reject(t *testing.T) {
	o := pendingOrder(t)
	approverID := kernel.NewUUID()
	require.NoError(t, o.Reject(approverID, "out of stock"))

	approve := &useCaseMock[commands.ApproveOrderCommand, *order.Order]{}
	approve.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ApproveOrderCommand) bool {
		return cmd.Decision() == commands.DecisionReject && cmd.Reason() == "out of stock" && cmd.OrderID().IsEqual(o.ID())
	})).Return(o, nil).Once()
	e := newTestRouter(t, httpadapter.Handlers{ApproveOrder: approve}, httpadapter.RouterConfig{})

	rec, env := do(t, e, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/approval",
		`{"approverId": "`+approverID.String()+`", "decision": "reject", "reason": "out of stock"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "order rejected", env.Message)
	assert.Contains(t, string(env.Data), `"status":"Cancelled"`)
	assert.Contains(t, string(env.Data), `"cancelReason":"out of stock"`)
}

func TestGetOrders_PassesFilters(t *testing.T) {
	customerID := kernel.NewUUID()
	getOrders := &useCaseMock[queries.GetOrdersQuery, queries.GetOrdersQueryResponse]{}
	getOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrdersQuery) bool {
		return q.Status() != nil && *q.Status() == order.Confirmed &&
			q.CustomerID() != nil && q.CustomerID().IsEqual(customerID) &&
			q.Page() == 2 && q.Size() == 5
	})).Return(queries.GetOrdersQueryResponse{Items: []queries.OrderSummary{}, Page: 2, Size: 5, Total: 7}, nil).Once()
	e := newTestRouter(t, httpadapter.Handlers{GetOrders: getOrders}, httpadapter.RouterConfig{})

	rec, env := do(t, e, http.MethodGet,
		"/api/v1/orders?status=Confirmed&customerId="+customerID.String()+"&page=2&size=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"page":2,"size":5,"total":7}`, string(env.Data))
	getOrders.AssertExpectations(t)
}

func TestGetOrders_RejectsOversizedPage(t *testing.T) {
	getOrders := &useCaseMock[queries.GetOrdersQuery, queries.GetOrdersQueryResponse]{}
	e := newTestRouter(t, httpadapter.Handlers{GetOrders: getOrders}, httpadapter.RouterConfig{})

	rec, env := do(t, e, http.MethodGet, "/api/v1/orders?size=500", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"VALIDATION_ERROR"}, env.Errors)
	getOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGenerateInvoice(t *testing.T) {
	o := pendingOrder(t)
	rate, err := invoice.NewTaxRate(decimal.RequireFromString("0.1"))
	require.NoError(t, err)
	inv, err := invoice.NewInvoice(kernel.NewUUID(), o.ID(), o.Total(), rate, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	for _, tt := range []struct {
		created bool
		status  int
	}{
		{created: true, status: http.StatusCreated},
		{created: false, status: http.StatusOK},
	} {
		generate := &generateInvoiceMock{}
		generate.On("Handle", mock.Anything, mock.Anything).Return(inv, tt.created, nil).Once()
		e := newTestRouter(t, httpadapter.Handlers{GenerateInvoice: generate}, httpadapter.RouterConfig{})

		rec, env := do(t, e, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/invoice", "")

		assert.Equal(t, tt.status, rec.Code)
		assert.Contains(t, string(env.Data), `"taxAmount":"16.00"`)
		assert.Contains(t, string(env.Data), `"status":"UNPAID"`)
	}
}

func TestGetCurrentPrice_PassesAsOf(t *testing.T) {
	isbn := kernel.MustISBN("9780134190440")
	getPrice := &useCaseMock[queries.GetCurrentPriceQuery, queries.CurrentPriceResponse]{}
	getPrice.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetCurrentPriceQuery) bool {
		return q.ISBN().IsEqual(isbn) && q.AsOf() != nil && q.AsOf().Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	})).Return(queries.CurrentPriceResponse{
		ISBN:          isbn,
		Price:         kernel.MustMoney("115"),
		EffectiveFrom: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PriceChangeID: 3,
		AsOf:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}, nil).Once()
	e := newTestRouter(t, httpadapter.Handlers{GetCurrentPrice: getPrice}, httpadapter.RouterConfig{})

	rec, env := do(t, e, http.MethodGet, "/api/v1/books/9780134190440/price?asOf=2024-03-15", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"isbn":"9780134190440","price":"115.00","effectiveFrom":"2024-03-01","priceChangeId":3,"asOf":"2024-03-15"}`,
		string(env.Data))
}

func TestCreatePromotion(t *testing.T) {
	t.Run("should create a category promotion", func(t *testing.T) {
		create := &useCaseMock[commands.CreatePromotionCommand, *pricing.Promotion]{}
		create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreatePromotionCommand) bool {
			return cmd.Scope().CategoryID() != nil && *cmd.Scope().CategoryID() == 7 &&
				cmd.Discount().Kind() == pricing.DiscountPercent && cmd.Active()
		})).Return(func() *pricing.Promotion {
			scope, _ := pricing.NewCategoryScope(7)
			discount, _ := pricing.NewPercentDiscount(decimal.NewFromInt(15))
			p, _ := pricing.NewPromotion("spring sale", scope, discount,
				time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), true, time.Now())
			p.SetID(4)
			return p
		}(), nil).Once()
		e := newTestRouter(t, httpadapter.Handlers{CreatePromotion: create}, httpadapter.RouterConfig{})

		rec, env := do(t, e, http.MethodPost, "/api/v1/promotions", `{
			"name": "spring sale", "categoryId": 7, "discountKind": "percent", "discountValue": "15",
			"startDate": "2024-03-01", "endDate": "2024-03-31"
		}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, string(env.Data), `"id":4`)
		assert.Contains(t, string(env.Data), `"discountValue":"15.00"`)
		create.AssertExpectations(t)
	})

	t.Run("should reject two scopes", func(t *testing.T) {
		create := &useCaseMock[commands.CreatePromotionCommand, *pricing.Promotion]{}
		e := newTestRouter(t, httpadapter.Handlers{CreatePromotion: create}, httpadapter.RouterConfig{})

		rec, env := do(t, e, http.MethodPost, "/api/v1/promotions", `{
			"name": "spring sale", "categoryId": 7, "isbn": "9780134190440", "discountKind": "fixed",
			"discountValue": "5", "startDate": "2024-03-01", "endDate": "2024-03-31"
		}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, env.Message, "mutually exclusive")
		create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestOperationalEndpoints(t *testing.T) {
	e := newTestRouter(t, httpadapter.Handlers{}, httpadapter.RouterConfig{})

	rec, _ := do(t, e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	rec, _ = do(t, e, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "getActivePromotionsForBook")
}
