package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "bookstore/internal/adapters/out/postgres"
	"bookstore/internal/adapters/out/postgres/pgtest"
	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises transaction boundaries across repositories
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgresadapter.Models()...)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("invoices", "order_lines", "orders"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.InvoiceRepository())
	suite.NotNil(uow1.PriceChangeRepository())
	suite.NotNil(uow1.PromotionRepository())
	suite.NotNil(uow1.BookCatalog())
	suite.NotNil(uow1.EmployeeDirectory())
	suite.NotNil(uow1.CustomerDirectory())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_OrderAndInvoiceTogether() {
	ctx := context.Background()
	o := suite.deliveredOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	inv := suite.newInvoice(o)
	suite.Require().NoError(uow.InvoiceRepository().Add(ctx, inv))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	got, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())
	gotInvoice, err := reader.InvoiceRepository().GetByOrderID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(gotInvoice.ID().IsEqual(inv.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryWrite() {
	ctx := context.Background()
	o := suite.deliveredOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.InvoiceRepository().Add(ctx, suite.newInvoice(o)))

	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.InvoiceRepository().GetByOrderID(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedWritesAreInvisible() {
	ctx := context.Background()
	o := suite.deliveredOrder()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	suite.Require().NoError(writer.OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(writer.Commit(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConfirmDelivered_RacingUnitsOfWorkInvoiceOnce() {
	ctx := context.Background()
	o := suite.outForDeliveryOrder()
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, o))
	suite.Require().NoError(seed.Commit(ctx))

	first, second := suite.factory.Create(), suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))

	mine, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	theirs, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(mine.ConfirmDelivered(time.Now()))
	suite.Require().NoError(first.OrderRepository().Update(ctx, mine))
	suite.Require().NoError(first.InvoiceRepository().Add(ctx, suite.newInvoice(mine)))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(theirs.ConfirmDelivered(time.Now()))
	err = second.OrderRepository().Update(ctx, theirs)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Require().NoError(second.Rollback(ctx))

	again, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().ErrorIs(again.ConfirmDelivered(time.Now()), errs.ErrInvalidTransition)

	var invoices int64
	suite.Require().NoError(suite.pg.DB.Table("invoices").Where("order_id = ?", o.ID().Bytes()).Count(&invoices).Error)
	suite.Equal(int64(1), invoices)
}

func (suite *UnitOfWorkIntegrationTestSuite) outForDeliveryOrder() *order.Order {
	shipping, err := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", "12 Main St, Springfield", "")
	suite.Require().NoError(err)
	line, err := order.NewLine(kernel.MustISBN("9780134190440"), 1, kernel.MustMoney("80"), nil)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), shipping, "", time.Now(), []*order.Line{line})
	suite.Require().NoError(err)

	suite.Require().NoError(o.Approve(kernel.NewUUID()))
	suite.Require().NoError(o.AssignDelivery(kernel.NewUUID()))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) deliveredOrder() *order.Order {
	o := suite.outForDeliveryOrder()
	suite.Require().NoError(o.ConfirmDelivered(time.Now()))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newInvoice(o *order.Order) *invoice.Invoice {
	rate, err := invoice.NewTaxRate(decimal.RequireFromString("0.08"))
	suite.Require().NoError(err)
	inv, err := invoice.NewInvoice(kernel.NewUUID(), o.ID(), o.Total(), rate, time.Now(), nil)
	suite.Require().NoError(err)
	return inv
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
