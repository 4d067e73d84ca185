package commands_test

import (
	"testing"

	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type lifecycleMocks struct {
	factory   *MockUoWFactory
	uow       *MockUoW
	orders    *MockOrderRepository
	invoices  *MockInvoiceRepository
	employees *MockEmployeeDirectory
	notifier  *MockNotifier
}

func newLifecycleMocks() lifecycleMocks {
	m := lifecycleMocks{
		factory:   new(MockUoWFactory),
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		invoices:  new(MockInvoiceRepository),
		employees: new(MockEmployeeDirectory),
		notifier:  new(MockNotifier),
	}
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("OrderRepository").Return(m.orders).Maybe()
	m.uow.On("InvoiceRepository").Return(m.invoices).Maybe()
	m.uow.On("EmployeeDirectory").Return(m.employees).Maybe()
	m.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}

func (m lifecycleMocks) approver(t *testing.T) *employee.Employee {
	t.Helper()
	e := newEmployee(t, "springfield", employee.CanApprove, true)
	m.employees.On("GetEmployee", mock.Anything, e.ID()).Return(e, nil)
	return e
}

func (m lifecycleMocks) unknownEmployee() kernel.UUID {
	id := kernel.NewUUID()
	m.employees.On("GetEmployee", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("employee", id.String()))
	return id
}

func (m lifecycleMocks) assertNothingWritten(t *testing.T) {
	t.Helper()
	m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
}
