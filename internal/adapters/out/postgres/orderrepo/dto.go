// Package orderrepo persists order aggregates with GORM.
// An order is stored as one row in "orders" plus one row per line item in
// "order_items"; the version column backs optimistic locking.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID         string         `gorm:"type:varchar(64);primaryKey"`
	CustomerID string         `gorm:"type:varchar(64);not null;index"`
	Status     string         `gorm:"type:varchar(32);not null;index"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime:false"`
	Version    int64          `gorm:"not null;default:1"`
	Items      []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the original item order.
type OrderItemDTO struct {
	OrderID     string          `gorm:"type:varchar(64);primaryKey"`
	Position    int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID   string          `gorm:"type:varchar(64);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency    string          `gorm:"type:varchar(8);not null"`
}

// TableName specifies the database table name for order lines.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
// The version is owned by the repository and is not part of the aggregate.
func fromDomain(o *order.Order, version int64) OrderDTO {
	items := o.Items()
	dtoItems := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		dtoItems = append(dtoItems, OrderItemDTO{
			OrderID:     o.ID().String(),
			Position:    i,
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity().Value(),
			UnitPrice:   item.UnitPrice().Amount(),
			Currency:    item.UnitPrice().Currency(),
		})
	}

	return OrderDTO{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID().String(),
		Status:     o.Status().String(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
		Version:    version,
		Items:      dtoItems,
	}
}

// toDomain rebuilds the aggregate through RestoreOrder so that persisted rows
// pass the same invariants as freshly created orders.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.NewCustomerID(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, customerID, items, status, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.NewProductID(dto.ProductID)
	if err != nil {
		return order.Item{}, err
	}

	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice, dto.Currency)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.ProductName, quantity, unitPrice)
}
