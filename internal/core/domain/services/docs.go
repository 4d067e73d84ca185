// Package services provides domain services that combine several aggregates of the
// bookstore domain. They are pure: callers load the inputs and persist the outputs.
//
// The package includes:
//   - PricingResolver: catalog price of a book on a date
//   - PromotionResolver: active promotions of a book and the best discount among them
//   - LineItemPricer: final unit price of an order line (base price minus best discount)
//   - DeliveryCandidateRanker: deterministic ranking of couriers for an order
package services
