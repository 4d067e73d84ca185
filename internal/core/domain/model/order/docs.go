// Package order implements the Order aggregate of the bookstore back office: the priced
// lines frozen at creation and the fulfillment state machine.
//
// The package includes:
//   - Order: the aggregate root owning lines, shipping info and lifecycle fields
//   - Line: a quantified book entry whose unit price never changes after creation
//   - Status, Action and Transition: the explicit (status, action) -> status table
//
// Key business rules:
//   - PendingConfirmation -> Confirmed -> OutForDelivery -> Delivered
//   - PendingConfirmation and Confirmed orders can be cancelled; nothing else can
//   - Any pair missing from the table fails with errs.ErrInvalidTransition
//   - No transition touches the lines
package order
