package commands

import (
	"context"

	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/pkg/clock"
)

// RecordPriceChangeCommandHandler appends price changes.
type RecordPriceChangeCommandHandler struct {
	uowFactory PricingUoWFactory
	clock      clock.Clock
}

// NewRecordPriceChangeCommandHandler creates the handler.
func NewRecordPriceChangeCommandHandler(uowFactory PricingUoWFactory, clk clock.Clock) RecordPriceChangeCommandHandler {
	return RecordPriceChangeCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle stores the change for a known book and returns it with its assigned id.
func (h RecordPriceChangeCommandHandler) Handle(ctx context.Context, cmd RecordPriceChangeCommand) (*pricing.PriceChange, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.BookCatalog().GetBook(ctx, cmd.ISBN()); err != nil {
		return nil, err
	}

	change, err := pricing.NewPriceChange(cmd.ISBN(), cmd.EffectiveFrom(), cmd.NewPrice(), cmd.CreatedBy(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.PriceChangeRepository().Add(ctx, change); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return change, nil
}
