package queries_test

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveDeliveries(ctx context.Context, ids []kernel.UUID) (map[string]int, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockOrderRepository) ListDeliveredWithoutInvoice(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockPriceChangeRepository struct{ mock.Mock }

func (m *MockPriceChangeRepository) Add(ctx context.Context, change *pricing.PriceChange) error {
	return m.Called(ctx, change).Error(0)
}

func (m *MockPriceChangeRepository) ListByISBN(ctx context.Context, isbn kernel.ISBN) ([]*pricing.PriceChange, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceChange), args.Error(1)
}

type MockPromotionRepository struct{ mock.Mock }

func (m *MockPromotionRepository) Add(ctx context.Context, p *pricing.Promotion) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromotionRepository) ListActiveByScope(ctx context.Context, isbn kernel.ISBN, categoryID int64, asOf time.Time) ([]*pricing.Promotion, error) {
	args := m.Called(ctx, isbn, categoryID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.Promotion), args.Error(1)
}

type MockBookCatalog struct{ mock.Mock }

func (m *MockBookCatalog) GetBook(ctx context.Context, isbn kernel.ISBN) (*catalog.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

type MockEmployeeDirectory struct{ mock.Mock }

func (m *MockEmployeeDirectory) GetEmployee(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeDirectory) ListCouriers(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

// stubReaders hands out fixed mocks.
type stubReaders struct {
	orders     *MockOrderRepository
	prices     *MockPriceChangeRepository
	promotions *MockPromotionRepository
	books      *MockBookCatalog
	employees  *MockEmployeeDirectory
}

func newStubReaders() stubReaders {
	return stubReaders{
		orders:     new(MockOrderRepository),
		prices:     new(MockPriceChangeRepository),
		promotions: new(MockPromotionRepository),
		books:      new(MockBookCatalog),
		employees:  new(MockEmployeeDirectory),
	}
}

func (r stubReaders) OrderRepository() ports.OrderRepository             { return r.orders }
func (r stubReaders) PriceChangeRepository() ports.PriceChangeRepository { return r.prices }
func (r stubReaders) PromotionRepository() ports.PromotionRepository     { return r.promotions }
func (r stubReaders) BookCatalog() ports.BookCatalog                     { return r.books }
func (r stubReaders) EmployeeDirectory() ports.EmployeeDirectory         { return r.employees }

var march15 = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newBook(t *testing.T, isbn string, category int64) *catalog.Book {
	t.Helper()
	b, err := catalog.NewBook(kernel.MustISBN(isbn), "title", category, true)
	require.NoError(t, err)
	return b
}
