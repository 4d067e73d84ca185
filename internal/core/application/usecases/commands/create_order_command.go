package commands

import (
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemsAreRequired = errs.NewValueIsRequiredError("lines")
)

// OrderItem is one requested line: a book and how many copies.
type OrderItem struct {
	ISBN     kernel.ISBN
	Quantity int
}

// CreateOrderCommand asks to place an order for a customer. Items naming the same ISBN
// are merged into one line at the position of the first occurrence.
//
// Example:
//
//	shipping, _ := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", "12 Main St, Springfield", "")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, shipping, "", []OrderItem{
//	    {ISBN: kernel.MustISBN("9780134190440"), Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	shipping   kernel.ShippingInfo
	note       string
	items      []OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request and merges duplicate ISBNs.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	shipping kernel.ShippingInfo,
	note string,
	items []OrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setShipping(shipping),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the id the new order will get.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// Shipping returns the delivery destination.
func (c CreateOrderCommand) Shipping() kernel.ShippingInfo { return c.shipping }

// Note returns the customer note.
func (c CreateOrderCommand) Note() string { return c.note }

// Items returns a copy of the merged items in request order.
func (c CreateOrderCommand) Items() []OrderItem {
	items := make([]OrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setShipping(shipping kernel.ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	c.shipping = shipping
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}

	merged := make([]OrderItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if err := item.ISBN.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0 for isbn %s", item.Quantity, item.ISBN))
		}

		if i, ok := index[item.ISBN.String()]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ISBN.String()] = len(merged)
		merged = append(merged, item)
	}

	c.items = merged
	return nil
}
