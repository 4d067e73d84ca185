package commands_test

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/core/ports"

	"github.com/shopspring/decimal"
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

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
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

type MockCustomerDirectory struct{ mock.Mock }

func (m *MockCustomerDirectory) CustomerExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	return m.Called(ctx, event).Error(0)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	return m.Called().Get(0).(ports.InvoiceRepository)
}

func (m *MockUoW) PriceChangeRepository() ports.PriceChangeRepository {
	return m.Called().Get(0).(ports.PriceChangeRepository)
}

func (m *MockUoW) PromotionRepository() ports.PromotionRepository {
	return m.Called().Get(0).(ports.PromotionRepository)
}

func (m *MockUoW) BookCatalog() ports.BookCatalog {
	return m.Called().Get(0).(ports.BookCatalog)
}

func (m *MockUoW) EmployeeDirectory() ports.EmployeeDirectory {
	return m.Called().Get(0).(ports.EmployeeDirectory)
}

func (m *MockUoW) CustomerDirectory() ports.CustomerDirectory {
	return m.Called().Get(0).(ports.CustomerDirectory)
}

type MockUoWFactory struct{ mock.Mock }

// uow is recorded as Create, the name of the factory method it stands in for.
func (m *MockUoWFactory) uow() *MockUoW { return m.MethodCalled("Create").Get(0).(*MockUoW) }

func (m *MockUoWFactory) placement() placementFactory { return placementFactory{m} }
func (m *MockUoWFactory) lifecycle() lifecycleFactory { return lifecycleFactory{m} }
func (m *MockUoWFactory) invoices() invoiceFactory    { return invoiceFactory{m} }
func (m *MockUoWFactory) pricing() pricingFactory     { return pricingFactory{m} }

type placementFactory struct{ *MockUoWFactory }

func (f placementFactory) Create() commands.PlacementUoW { return f.uow() }

type lifecycleFactory struct{ *MockUoWFactory }

func (f lifecycleFactory) Create() commands.LifecycleUoW { return f.uow() }

type invoiceFactory struct{ *MockUoWFactory }

func (f invoiceFactory) Create() commands.InvoiceUoW { return f.uow() }

type pricingFactory struct{ *MockUoWFactory }

func (f pricingFactory) Create() commands.PricingUoW { return f.uow() }

// Fixtures.

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func shipping(t *testing.T, address string) kernel.ShippingInfo {
	t.Helper()
	info, err := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", address, "")
	require.NoError(t, err)
	return info
}

func newEmployee(t *testing.T, region string, caps employee.Capability, active bool) *employee.Employee {
	t.Helper()
	e, err := employee.NewEmployee(kernel.NewUUID(), "staff", region, caps, active)
	require.NoError(t, err)
	return e
}

func newBook(t *testing.T, isbn string, category int64, active bool) *catalog.Book {
	t.Helper()
	b, err := catalog.NewBook(kernel.MustISBN(isbn), "title", category, active)
	require.NoError(t, err)
	return b
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	first, err := order.NewLine(kernel.MustISBN("9780134190440"), 2, kernel.MustMoney("80"), nil)
	require.NoError(t, err)
	second, err := order.NewLine(kernel.MustISBN("9780262033848"), 1, kernel.MustMoney("120.50"), nil)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), shipping(t, "12 Main St, Springfield"), "",
		now.Add(-48*time.Hour), []*order.Line{first, second})
	require.NoError(t, err)
	o.MarkPersisted()
	return o
}

func confirmedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := pendingOrder(t)
	require.NoError(t, o.Approve(kernel.NewUUID()))
	o.MarkPersisted()
	return o
}

func outForDeliveryOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := confirmedOrder(t)
	require.NoError(t, o.AssignDelivery(courierID))
	o.MarkPersisted()
	return o
}

func deliveredOrder(t *testing.T) *order.Order {
	t.Helper()
	o := outForDeliveryOrder(t, kernel.NewUUID())
	require.NoError(t, o.ConfirmDelivered(now.Add(-time.Hour)))
	o.MarkPersisted()
	return o
}

func taxRate(t *testing.T) invoice.TaxRate {
	t.Helper()
	rate, err := invoice.NewTaxRate(decimal.RequireFromString("0.1"))
	require.NoError(t, err)
	return rate
}
