// Package pricing models the time-varying price of a book: the append-only history of
// price changes and the promotions that discount it.
//
// The package includes:
//   - PriceChange and Timeline: effective-dated catalog prices for one ISBN
//   - Promotion, Scope and Discount: time-boxed discounts scoped to an ISBN or a category
//
// All dates are UTC calendar dates; an as-of timestamp is compared by its date.
package pricing
