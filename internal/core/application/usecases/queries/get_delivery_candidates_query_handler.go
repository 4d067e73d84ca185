package queries

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/services"
)

// GetDeliveryCandidatesQueryHandler loads the order and every active courier, counts
// their deliveries in progress and ranks them.
//
// Example:
//
//	handler := NewGetDeliveryCandidatesQueryHandler(readers)
//	candidates, err := handler.Handle(ctx, query)
//	if err == nil && len(candidates) > 0 {
//	    suggested := candidates[0].Employee
//	}
type GetDeliveryCandidatesQueryHandler struct {
	readers Readers
	ranker  services.DeliveryCandidateRanker
}

// NewGetDeliveryCandidatesQueryHandler creates the handler.
func NewGetDeliveryCandidatesQueryHandler(readers Readers) GetDeliveryCandidatesQueryHandler {
	return GetDeliveryCandidatesQueryHandler{
		readers: readers,
		ranker:  services.NewDeliveryCandidateRanker(),
	}
}

// Handle returns the ranked candidates. The order may be in any status; the ranking
// is advisory.
func (h GetDeliveryCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryCandidatesQuery,
) ([]services.DeliveryCandidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.readers.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	couriers, err := h.readers.EmployeeDirectory().ListCouriers(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(couriers))
	for _, c := range couriers {
		ids = append(ids, c.ID())
	}

	active, err := h.readers.OrderRepository().CountActiveDeliveries(ctx, ids)
	if err != nil {
		return nil, err
	}

	return h.ranker.Rank(o, couriers, active)
}
