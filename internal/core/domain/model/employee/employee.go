package employee

import (
	"errors"
	"strings"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when an employee has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmployeeIsNotConstructed is returned when using an improperly initialized Employee.
	ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee constructor")
)

// Employee is a member of staff who may approve orders, deliver them, or both.
//
// Business rules:
//   - Only active employees can act on orders
//   - Region is normalized like kernel.ShippingInfo regions so both compare directly
//
// Example:
//
//	e, err := employee.NewEmployee(kernel.NewUUID(), "Bob", "North", employee.CanDeliver, true)
//	if err != nil {
//	    // Handle construction error
//	}
//	e.CanDeliver() // true
type Employee struct {
	id           kernel.UUID
	name         string
	region       string
	capabilities Capability
	active       bool
	guard        guard.ConstructorGuard
}

// NewEmployee validates and creates an Employee.
func NewEmployee(id kernel.UUID, name string, region string, capabilities Capability, active bool) (*Employee, error) {
	e := &Employee{
		region:       kernel.NormalizeRegion(region),
		capabilities: capabilities,
		active:       active,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(e.setID(id), e.setName(name)); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate ensures the Employee was built through NewEmployee.
func (e *Employee) Validate() error {
	if e == nil {
		return ErrEmployeeIsNotConstructed
	}
	return e.guard.Validate(ErrEmployeeIsNotConstructed)
}

// ID returns the employee id.
func (e *Employee) ID() kernel.UUID { return e.id }

// Name returns the display name.
func (e *Employee) Name() string { return e.name }

// Region returns the normalized work region, possibly empty.
func (e *Employee) Region() string { return e.region }

// Capabilities returns the capability set.
func (e *Employee) Capabilities() Capability { return e.capabilities }

// IsActive reports whether the employee may act on orders.
func (e *Employee) IsActive() bool { return e.active }

// CanApprove reports whether the employee is active and holds CanApprove.
func (e *Employee) CanApprove() bool {
	return e.active && e.capabilities.Has(CanApprove)
}

// CanDeliver reports whether the employee is active and holds CanDeliver.
func (e *Employee) CanDeliver() bool {
	return e.active && e.capabilities.Has(CanDeliver)
}

// RequireApprove returns *errs.UnauthorizedError unless CanApprove holds.
func (e *Employee) RequireApprove() error {
	if !e.CanApprove() {
		return errs.NewUnauthorizedError("employee "+e.id.String(), "approve")
	}
	return nil
}

// Serves reports whether the employee works in the destination region.
func (e *Employee) Serves(shipping kernel.ShippingInfo) bool {
	return shipping.InRegion(e.region)
}

func (e *Employee) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Employee) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	e.name = name
	return nil
}
