package directoryrepo

import (
	"context"
	"errors"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBookCatalog implements ports.BookCatalog using GORM.
type GormBookCatalog struct {
	db *gorm.DB
}

// NewGormBookCatalog creates a new GORM book catalog.
func NewGormBookCatalog(db *gorm.DB) *GormBookCatalog {
	return &GormBookCatalog{db: db}
}

// GetBook retrieves a book by ISBN.
func (r *GormBookCatalog) GetBook(ctx context.Context, isbn kernel.ISBN) (*catalog.Book, error) {
	if err := isbn.Validate(); err != nil {
		return nil, err
	}

	var dto BookDTO
	if err := r.db.WithContext(ctx).First(&dto, "isbn = ?", isbn.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("book", isbn.String())
		}
		return nil, err
	}

	return bookToDomain(dto)
}

// GormEmployeeDirectory implements ports.EmployeeDirectory using GORM.
type GormEmployeeDirectory struct {
	db *gorm.DB
}

// NewGormEmployeeDirectory creates a new GORM employee directory.
func NewGormEmployeeDirectory(db *gorm.DB) *GormEmployeeDirectory {
	return &GormEmployeeDirectory{db: db}
}

// GetEmployee retrieves an employee by id.
func (r *GormEmployeeDirectory) GetEmployee(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee", id.String())
		}
		return nil, err
	}

	return employeeToDomain(dto)
}

// ListCouriers returns active employees whose capability mask includes CanDeliver.
func (r *GormEmployeeDirectory) ListCouriers(ctx context.Context) ([]*employee.Employee, error) {
	var dtos []EmployeeDTO
	if err := r.db.WithContext(ctx).
		Where("active AND capabilities & ? <> 0", int(employee.CanDeliver)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(dtos))
	for _, dto := range dtos {
		e, err := employeeToDomain(dto)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// GormCustomerDirectory implements ports.CustomerDirectory using GORM.
type GormCustomerDirectory struct {
	db *gorm.DB
}

// NewGormCustomerDirectory creates a new GORM customer directory.
func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

// CustomerExists reports whether the customer row exists.
func (r *GormCustomerDirectory) CustomerExists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&CustomerDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
