// Package invoice implements the Invoice aggregate: the single financial record of an
// order, created on delivery or on payment confirmation, whichever comes first.
//
// Key business rules:
//   - At most one invoice per order
//   - Total equals the order's line sum at generation and never changes
//   - Payment status moves UNPAID -> PAID once; repeating the same payment is a no-op
package invoice
