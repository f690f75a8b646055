package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem is the raw input for one order line.
type CreateOrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Currency    string
}

// CreateOrderCommand represents a request to place a new order.
// The raw items are turned into domain values by the constructor, so a
// constructed command always describes a valid order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("c1", []CreateOrderItem{
//	    {ProductID: "p1", ProductName: "Keyboard", Quantity: 1, UnitPrice: decimal.NewFromInt(1000), Currency: "COP"},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.CustomerID
	items      []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the customer and every item.
// Errors of all items are joined and prefixed with the item position.
func NewCreateOrderCommand(customerID string, items []CreateOrderItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
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

func (c CreateOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

// Items returns a copy of the validated order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c *CreateOrderCommand) setCustomerID(value string) error {
	customerID, err := kernel.NewCustomerID(value)
	if err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(raw []CreateOrderItem) error {
	if len(raw) == 0 {
		return order.ErrEmptyOrder
	}

	items := make([]order.Item, 0, len(raw))
	var itemErrs []error
	for i, r := range raw {
		item, err := newItem(r)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func newItem(r CreateOrderItem) (order.Item, error) {
	productID, productIDErr := kernel.NewProductID(r.ProductID)
	quantity, quantityErr := kernel.NewQuantity(r.Quantity)
	unitPrice, unitPriceErr := kernel.NewMoney(r.UnitPrice, r.Currency)
	if err := errors.Join(productIDErr, quantityErr, unitPriceErr); err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, r.ProductName, quantity, unitPrice)
}
