// Package commands contains the write operations of the order fulfillment workflow.
// Every command runs in a single unit of work: validate the command, begin the
// transaction, load aggregates, apply domain rules, persist, commit. Notifications go
// out after the commit and never affect the outcome.
package commands

import (
	"context"

	"bookstore/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each group of handlers touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InvoiceRepoFactory provides the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// PricingRepoFactory provides the price change and promotion repositories.
	PricingRepoFactory interface {
		PriceChangeRepository() ports.PriceChangeRepository
		PromotionRepository() ports.PromotionRepository
	}

	// CatalogFactory provides the book catalog.
	CatalogFactory interface {
		BookCatalog() ports.BookCatalog
	}

	// EmployeeDirectoryFactory provides the employee directory.
	EmployeeDirectoryFactory interface {
		EmployeeDirectory() ports.EmployeeDirectory
	}

	// CustomerDirectoryFactory provides the customer directory.
	CustomerDirectoryFactory interface {
		CustomerDirectory() ports.CustomerDirectory
	}

	// PlacementUoW is used by CreateOrder: it prices lines and stores the new order.
	PlacementUoW interface {
		TxManager
		OrderRepoFactory
		PricingRepoFactory
		CatalogFactory
		CustomerDirectoryFactory
	}

	// PlacementUoWFactory creates PlacementUoW instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}

	// LifecycleUoW is used by the status-changing commands. Delivery confirmation
	// writes the invoice in the same transaction, hence the invoice repository.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... transition o
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.Commit(ctx)
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		InvoiceRepoFactory
		EmployeeDirectoryFactory
	}

	// LifecycleUoWFactory creates LifecycleUoW instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// InvoiceUoW is used by invoice generation and payment.
	InvoiceUoW interface {
		TxManager
		OrderRepoFactory
		InvoiceRepoFactory
	}

	// InvoiceUoWFactory creates InvoiceUoW instances.
	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// PricingUoW is used by the append-only price and promotion writes.
	PricingUoW interface {
		TxManager
		PricingRepoFactory
		CatalogFactory
	}

	// PricingUoWFactory creates PricingUoW instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}
)
