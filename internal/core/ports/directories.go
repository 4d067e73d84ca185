package ports

import (
	"context"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/kernel"
)

// BookCatalog reads catalog books.
type BookCatalog interface {
	// GetBook returns the book or errs.ErrObjectNotFound.
	GetBook(ctx context.Context, isbn kernel.ISBN) (*catalog.Book, error)
}

// EmployeeDirectory reads staff capabilities and regions.
type EmployeeDirectory interface {
	// GetEmployee returns the employee or errs.ErrObjectNotFound.
	GetEmployee(ctx context.Context, id kernel.UUID) (*employee.Employee, error)

	// ListCouriers returns the active employees holding the deliver capability.
	ListCouriers(ctx context.Context) ([]*employee.Employee, error)
}

// CustomerDirectory checks customer accounts.
type CustomerDirectory interface {
	// CustomerExists reports whether a customer account with id exists.
	CustomerExists(ctx context.Context, id kernel.UUID) (bool, error)
}
