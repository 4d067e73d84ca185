package commands

import (
	"context"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/pkg/clock"
	"bookstore/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. Each line's unit price is resolved once, at
// placement time, and stored on the line; later price changes and promotions never
// touch it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock.System())
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown customer, unknown or inactive book, or no price yet
//	case err != nil:
//	    return err
//	}
//	fmt.Println(o.Total())
type CreateOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
	pricer     services.LineItemPricer
	clock      clock.Clock
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory PlacementUoWFactory, clk clock.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     services.NewLineItemPricer(),
		clock:      clk,
	}
}

// Handle checks the customer, prices every line at the current instant and stores the
// order in PendingConfirmation.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exists, err := uow.CustomerDirectory().CustomerExists(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("customer", cmd.CustomerID().String())
	}

	books := uow.BookCatalog()
	prices := uow.PriceChangeRepository()
	promotions := uow.PromotionRepository()

	lines := make([]*order.Line, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		book, err := books.GetBook(ctx, item.ISBN)
		if err != nil {
			return nil, err
		}
		if !book.IsActive() {
			return nil, errs.NewObjectNotFoundError("book", item.ISBN.String())
		}

		changes, err := prices.ListByISBN(ctx, item.ISBN)
		if err != nil {
			return nil, err
		}
		candidates, err := promotions.ListActiveByScope(ctx, item.ISBN, book.CategoryID(), now)
		if err != nil {
			return nil, err
		}

		priced, err := h.pricer.Price(book, changes, candidates, now)
		if err != nil {
			return nil, err
		}

		line, err := order.NewLine(item.ISBN, item.Quantity, priced.UnitPrice, priced.PromotionID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.Shipping(), cmd.Note(), now, lines)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
