package commands

import (
	"context"

	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/pkg/clock"
)

// CreatePromotionCommandHandler stores promotions.
type CreatePromotionCommandHandler struct {
	uowFactory PricingUoWFactory
	clock      clock.Clock
}

// NewCreatePromotionCommandHandler creates the handler.
func NewCreatePromotionCommandHandler(uowFactory PricingUoWFactory, clk clock.Clock) CreatePromotionCommandHandler {
	return CreatePromotionCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle stores the promotion and returns it with its assigned id. An ISBN-scoped
// promotion must name a catalog book.
func (h CreatePromotionCommandHandler) Handle(ctx context.Context, cmd CreatePromotionCommand) (*pricing.Promotion, error) {
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

	if isbn := cmd.Scope().ISBN(); isbn != nil {
		if _, err := uow.BookCatalog().GetBook(ctx, *isbn); err != nil {
			return nil, err
		}
	}

	promotion, err := pricing.NewPromotion(cmd.Name(), cmd.Scope(), cmd.Discount(),
		cmd.StartDate(), cmd.EndDate(), cmd.Active(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.PromotionRepository().Add(ctx, promotion); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return promotion, nil
}
