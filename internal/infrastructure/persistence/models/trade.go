package models

import (
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/domain/trade"
)

// OrderModel is the persistence model for orders.
// The partial unique index keeps at most one basket per user.
type OrderModel struct {
	BaseModel
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index;index:idx_orders_user_basket,unique,where:status = 'basket'"`
	Status    trade.OrderStatus `gorm:"type:varchar(15);not null;default:'basket';index"`
	ContactID *uuid.UUID        `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order without items
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		UserID:            m.UserID,
		Status:            m.Status,
		ContactID:         m.ContactID,
		Items:             make([]trade.OrderItem, 0),
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		UserID:    o.UserID,
		Status:    o.Status,
		ContactID: o.ContactID,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// OrderItemModel is the persistence model for order lines
type OrderItemModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product,priority:1"`
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_items_order_product,priority:2"`
	Quantity      int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:            m.ID,
		OrderID:       m.OrderID,
		ProductInfoID: m.ProductInfoID,
		Quantity:      m.Quantity,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(i *trade.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:            i.ID,
		OrderID:       i.OrderID,
		ProductInfoID: i.ProductInfoID,
		Quantity:      i.Quantity,
	}
}
