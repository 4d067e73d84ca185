package services

import (
	"cmp"
	"slices"

	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/order"
)

// RegionMismatchPenalty is added to the score of a courier outside the order's region.
const RegionMismatchPenalty = 1000

// DeliveryCandidate is a courier proposed for an order.
type DeliveryCandidate struct {
	Employee         *employee.Employee
	ActiveDeliveries int
	RegionMatch      bool
	Score            int
}

// DeliveryCandidateRanker orders couriers for an order: same region first, then the
// fewest deliveries in progress, then employee id. The ranking is advisory; the
// assigner may pick any eligible courier.
//
// Example:
//
//	ranker := services.NewDeliveryCandidateRanker()
//	candidates := ranker.Rank(o, employees, map[string]int{courierID.String(): 2})
//	// candidates[0] is the suggested courier
type DeliveryCandidateRanker struct{}

// NewDeliveryCandidateRanker creates a DeliveryCandidateRanker.
func NewDeliveryCandidateRanker() DeliveryCandidateRanker {
	return DeliveryCandidateRanker{}
}

// Rank returns the eligible couriers among employees (active, holding CanDeliver) in
// rank order. activeDeliveries maps employee id strings to the number of their
// OutForDelivery orders; missing entries count as zero.
func (DeliveryCandidateRanker) Rank(
	o *order.Order,
	employees []*employee.Employee,
	activeDeliveries map[string]int,
) ([]DeliveryCandidate, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]DeliveryCandidate, 0, len(employees))
	for _, e := range employees {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if !e.CanDeliver() {
			continue
		}

		active := activeDeliveries[e.ID().String()]
		match := e.Serves(o.Shipping())
		score := active
		if !match {
			score += RegionMismatchPenalty
		}

		candidates = append(candidates, DeliveryCandidate{
			Employee:         e,
			ActiveDeliveries: active,
			RegionMatch:      match,
			Score:            score,
		})
	}

	slices.SortFunc(candidates, func(a, b DeliveryCandidate) int {
		if a.RegionMatch != b.RegionMatch {
			if a.RegionMatch {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.ActiveDeliveries, b.ActiveDeliveries); c != 0 {
			return c
		}
		return a.Employee.ID().Compare(b.Employee.ID())
	})

	return candidates, nil
}
