// Package queries contains read-only use cases. Handlers read straight from
// the database with raw SQL and never load aggregates.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines and computed total.
//
// Example:
//
//	query, err := NewGetOrderQuery(id)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.OrderID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.OrderID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// GetOrderQueryResponse is the full read model of an order.
type GetOrderQueryResponse struct {
	ID         string
	CustomerID string
	Status     string
	Total      decimal.Decimal
	Currency   string
	Items      []OrderItemResponse
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItemResponse is one line of GetOrderQueryResponse.
type OrderItemResponse struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Currency    string
}
