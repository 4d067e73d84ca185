// Package directoryrepo reads the reference data the order workflow depends on: catalog
// books, employees and customers. These tables are maintained by other back-office
// modules; the core never writes them outside of tests and seeding.
package directoryrepo

import (
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BookDTO is a catalog book row.
type BookDTO struct {
	ISBN       string `gorm:"type:varchar(13);primaryKey"`
	Title      string `gorm:"type:varchar(512);not null"`
	CategoryID int64  `gorm:"not null;index"`
	Active     bool   `gorm:"not null"`
}

// TableName overrides GORM's default "book_dtos".
func (BookDTO) TableName() string {
	return "books"
}

// EmployeeDTO is a staff row. Capabilities holds the employee.Capability bit mask.
type EmployeeDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Region       string    `gorm:"type:varchar(255);not null;default:''"`
	Capabilities int       `gorm:"type:smallint;not null"`
	Active       bool      `gorm:"not null"`
}

// TableName overrides GORM's default "employee_dtos".
func (EmployeeDTO) TableName() string {
	return "employees"
}

// CustomerDTO is a customer account row.
type CustomerDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

// TableName overrides GORM's default "customer_dtos".
func (CustomerDTO) TableName() string {
	return "customers"
}

// BookFromDomain maps a book to its row; used for seeding.
func BookFromDomain(b *catalog.Book) BookDTO {
	return BookDTO{
		ISBN:       b.ISBN().String(),
		Title:      b.Title(),
		CategoryID: b.CategoryID(),
		Active:     b.IsActive(),
	}
}

// EmployeeFromDomain maps an employee to its row; used for seeding.
func EmployeeFromDomain(e *employee.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           e.ID().Bytes(),
		Name:         e.Name(),
		Region:       e.Region(),
		Capabilities: int(e.Capabilities()),
		Active:       e.IsActive(),
	}
}

func bookToDomain(dto BookDTO) (*catalog.Book, error) {
	isbn, err := kernel.NewISBN(dto.ISBN)
	if err != nil {
		return nil, err
	}
	return catalog.NewBook(isbn, dto.Title, dto.CategoryID, dto.Active)
}

func employeeToDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return employee.NewEmployee(id, dto.Name, dto.Region, employee.Capability(dto.Capabilities), dto.Active)
}
