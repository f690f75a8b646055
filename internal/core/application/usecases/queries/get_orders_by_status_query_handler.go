package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler lists order summaries filtered by status.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for status listings.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle returns matching orders, oldest first. Totals are aggregated in SQL.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := query.Statuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}

	summaries := make([]GetOrdersByStatusQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.status,
			COALESCE(SUM(i.unit_price * i.quantity), 0) AS total,
			COALESCE(MIN(i.currency), '') AS currency,
			COUNT(i.position) AS item_count,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status = ANY(?)
		GROUP BY o.id, o.customer_id, o.status, o.created_at
		ORDER BY o.created_at, o.id
	`, pq.Array(names)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary GetOrdersByStatusQueryResponse
		if err = rows.Scan(
			&summary.ID,
			&summary.CustomerID,
			&summary.Status,
			&summary.Total,
			&summary.Currency,
			&summary.ItemCount,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}

		summary.CreatedAt = summary.CreatedAt.UTC()
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
