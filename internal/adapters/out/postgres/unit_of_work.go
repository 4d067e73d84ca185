// Package postgres implements the Unit of Work on top of GORM. A unit of work owns one
// database transaction; every repository it hands out after Begin runs on that
// transaction, so a command can update an order and insert its invoice atomically.
//
// Typical use:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    _ = uow.Rollback(ctx)
//	    return err
//	}
//	if err := uow.InvoiceRepository().Add(ctx, inv); err != nil {
//	    _ = uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single goroutine. Concurrent commands create
// their own instances through the factory.
package postgres

import (
	"context"

	"bookstore/internal/adapters/out/postgres/directoryrepo"
	"bookstore/internal/adapters/out/postgres/invoicerepo"
	"bookstore/internal/adapters/out/postgres/orderrepo"
	"bookstore/internal/adapters/out/postgres/pricerepo"
	"bookstore/internal/adapters/out/postgres/promotionrepo"
	"bookstore/internal/core/ports"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Models lists the GORM models in dependency order.
func Models() []any {
	return []any{
		&directoryrepo.BookDTO{},
		&directoryrepo.EmployeeDTO{},
		&directoryrepo.CustomerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&invoicerepo.InvoiceDTO{},
		&pricerepo.PriceChangeDTO{},
		&promotionrepo.PromotionDTO{},
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances bound to one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one transaction across the repositories it hands out.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit makes the transaction's writes permanent. Returns gorm.ErrInvalidTransaction
// when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's writes.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns the order repository bound to the current transaction, or
// to the pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// InvoiceRepository returns the invoice repository bound to the current transaction.
func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn())
}

// PriceChangeRepository returns the price change repository.
func (uow *GormUnitOfWork) PriceChangeRepository() ports.PriceChangeRepository {
	return pricerepo.NewGormPriceChangeRepository(uow.conn())
}

// PromotionRepository returns the promotion repository.
func (uow *GormUnitOfWork) PromotionRepository() ports.PromotionRepository {
	return promotionrepo.NewGormPromotionRepository(uow.conn())
}

// BookCatalog returns the catalog reader.
func (uow *GormUnitOfWork) BookCatalog() ports.BookCatalog {
	return directoryrepo.NewGormBookCatalog(uow.conn())
}

// EmployeeDirectory returns the employee reader.
func (uow *GormUnitOfWork) EmployeeDirectory() ports.EmployeeDirectory {
	return directoryrepo.NewGormEmployeeDirectory(uow.conn())
}

// CustomerDirectory returns the customer reader.
func (uow *GormUnitOfWork) CustomerDirectory() ports.CustomerDirectory {
	return directoryrepo.NewGormCustomerDirectory(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
