package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery lists orders that are in any of the given statuses.
//
// Example:
//
//	query, err := NewGetOrdersByStatusQuery(order.Pending, order.Confirmed)
//	if err != nil {
//	    return err
//	}
//	summaries, err := handler.Handle(ctx, query)
type GetOrdersByStatusQuery struct {
	statuses []order.Status
	guard    guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery requires at least one valid status. Duplicates are dropped.
func NewGetOrdersByStatusQuery(statuses ...order.Status) (GetOrdersByStatusQuery, error) {
	if len(statuses) == 0 {
		return GetOrdersByStatusQuery{}, errs.NewValueIsRequiredError("status")
	}

	seen := make(map[order.Status]struct{}, len(statuses))
	unique := make([]order.Status, 0, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetOrdersByStatusQuery{}, err
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}

	return GetOrdersByStatusQuery{
		statuses: unique,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (q GetOrdersByStatusQuery) Statuses() []order.Status {
	out := make([]order.Status, len(q.statuses))
	copy(out, q.statuses)
	return out
}

// GetOrdersByStatusQueryResponse summarises one order for list views.
type GetOrdersByStatusQueryResponse struct {
	ID         string
	CustomerID string
	Status     string
	Total      decimal.Decimal
	Currency   string
	ItemCount  int
	CreatedAt  time.Time
}
