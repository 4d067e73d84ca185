// Package kernel provides the value objects shared by every aggregate of the bookstore
// domain.
//
// The package includes:
//   - UUID: identifier of orders, customers, employees and invoices
//   - Money: non-negative decimal amount rounded to MinorUnits places
//   - ISBN: validated book identifier
//   - ShippingInfo: delivery destination with a derived routing region
//   - DateOf: UTC calendar-date truncation used by price and promotion timelines
//
// All values are immutable. Zero values fail Validate; use the constructors.
package kernel
