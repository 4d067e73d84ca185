// Package queries contains the read side of the bookstore. Listing and detail views
// are served by raw SQL over gorm; pricing and courier ranking reuse the repositories
// and domain services outside any transaction.
package queries

import (
	"bookstore/internal/core/ports"
)

// Readers exposes repositories for read-only use. A unit of work that was never begun
// satisfies it and reads straight from the connection pool.
type Readers interface {
	OrderRepository() ports.OrderRepository
	PriceChangeRepository() ports.PriceChangeRepository
	PromotionRepository() ports.PromotionRepository
	BookCatalog() ports.BookCatalog
	EmployeeDirectory() ports.EmployeeDirectory
}
