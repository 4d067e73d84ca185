package commands_test

import (
	"testing"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/clock"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceCommandHandler_Handle(t *testing.T) {
	newHandler := func(t *testing.T, m invoiceMocks) commands.GenerateInvoiceCommandHandler {
		t.Helper()
		return commands.NewGenerateInvoiceCommandHandler(m.factory.invoices(),
			commands.NewInvoiceGenerator(taxRate(t), clock.Fixed(now)))
	}

	t.Run("creates the invoice of a delivered order", func(t *testing.T) {
		ctx := t.Context()
		m := newInvoiceMocks()
		o := deliveredOrder(t)

		cmd, err := commands.NewGenerateInvoiceCommand(o.ID())
		require.NoError(t, err)

		mock.InOrder(
			m.uow.On("Begin", ctx).Return(nil).Once(),
			m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			m.invoices.On("GetByOrderID", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("invoice", o.ID().String())).Once(),
			m.invoices.On("Add", ctx, mock.Anything).Return(nil).Once(),
			m.uow.On("Commit", ctx).Return(nil).Once(),
		)

		inv, created, err := newHandler(t, m).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "280.50", inv.TotalAmount().String())
		m.uow.AssertExpectations(t)
	})

	t.Run("existing invoice is returned", func(t *testing.T) {
		ctx := t.Context()
		m := newInvoiceMocks()
		o := deliveredOrder(t)
		stored := storedInvoice(t, o, nil)

		cmd, err := commands.NewGenerateInvoiceCommand(o.ID())
		require.NoError(t, err)

		m.uow.On("Begin", ctx).Return(nil).Once()
		m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		m.invoices.On("GetByOrderID", ctx, o.ID()).Return(stored, nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Maybe()

		inv, created, err := newHandler(t, m).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, stored, inv)
		m.invoices.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("order not delivered", func(t *testing.T) {
		ctx := t.Context()
		m := newInvoiceMocks()
		o := outForDeliveryOrder(t, kernel.NewUUID())

		cmd, err := commands.NewGenerateInvoiceCommand(o.ID())
		require.NoError(t, err)

		m.uow.On("Begin", ctx).Return(nil).Once()
		m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		m.invoices.On("GetByOrderID", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("invoice", o.ID().String())).Once()

		_, _, err = newHandler(t, m).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("zero value command", func(t *testing.T) {
		m := newInvoiceMocks()

		_, _, err := newHandler(t, m).Handle(t.Context(), commands.GenerateInvoiceCommand{})

		require.ErrorIs(t, err, commands.ErrGenerateInvoiceCommandIsNotConstructed)
		m.factory.AssertNotCalled(t, "Create")
	})
}
