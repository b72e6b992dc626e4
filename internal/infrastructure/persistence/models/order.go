package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	OrderNumber string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	ShopperID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AddressID   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	return &order.Order{
		BaseEntity:  m.BaseModel.ToDomain(),
		OrderNumber: m.OrderNumber,
		ShopperID:   m.ShopperID,
		AddressID:   m.AddressID,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.OrderNumber = o.OrderNumber
	m.ShopperID = o.ShopperID
	m.AddressID = o.AddressID
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the OrderItem entity.
type OrderItemModel struct {
	BaseModel
	OrderID                 uuid.UUID  `gorm:"type:uuid;not null;index"`
	OptionID                uuid.UUID  `gorm:"type:uuid;not null"`
	ShopperCouponID         *uuid.UUID `gorm:"type:uuid"`
	DeliveryID              *uuid.UUID `gorm:"type:uuid;index"`
	Status                  int        `gorm:"not null;index"`
	Count                   int64      `gorm:"not null"`
	SalePrice               int64      `gorm:"not null"`
	BaseDiscountPrice       int64      `gorm:"not null;default:0"`
	MembershipDiscountPrice int64      `gorm:"not null;default:0"`
	CouponDiscountPrice     int64      `gorm:"not null;default:0"`
	UsedPoint               int64      `gorm:"not null;default:0"`
	EarnedPoint             int64      `gorm:"not null;default:0"`
	PaymentPrice            int64      `gorm:"not null"`
	ShippingFee             int64      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem entity.
func (m *OrderItemModel) ToDomain() *order.OrderItem {
	return &order.OrderItem{
		BaseEntity:              m.BaseModel.ToDomain(),
		OrderID:                 m.OrderID,
		OptionID:                m.OptionID,
		ShopperCouponID:         m.ShopperCouponID,
		DeliveryID:              m.DeliveryID,
		Status:                  order.Status(m.Status),
		Count:                   m.Count,
		SalePrice:               m.SalePrice,
		BaseDiscountPrice:       m.BaseDiscountPrice,
		MembershipDiscountPrice: m.MembershipDiscountPrice,
		CouponDiscountPrice:     m.CouponDiscountPrice,
		UsedPoint:               m.UsedPoint,
		EarnedPoint:             m.EarnedPoint,
		PaymentPrice:            m.PaymentPrice,
		ShippingFee:             m.ShippingFee,
	}
}

// FromDomain populates the persistence model from a domain OrderItem entity.
func (m *OrderItemModel) FromDomain(i *order.OrderItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.OptionID = i.OptionID
	m.ShopperCouponID = i.ShopperCouponID
	m.DeliveryID = i.DeliveryID
	m.Status = int(i.Status)
	m.Count = i.Count
	m.SalePrice = i.SalePrice
	m.BaseDiscountPrice = i.BaseDiscountPrice
	m.MembershipDiscountPrice = i.MembershipDiscountPrice
	m.CouponDiscountPrice = i.CouponDiscountPrice
	m.UsedPoint = i.UsedPoint
	m.EarnedPoint = i.EarnedPoint
	m.PaymentPrice = i.PaymentPrice
	m.ShippingFee = i.ShippingFee
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem entity.
func OrderItemModelFromDomain(i *order.OrderItem) *OrderItemModel {
	m := &OrderItemModel{}
	m.FromDomain(i)
	return m
}

// StatusHistoryModel is the persistence model for the append-only status log.
type StatusHistoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StatusHistoryModel) TableName() string {
	return "order_item_status_histories"
}

// ToDomain converts the persistence model to a domain StatusHistory record.
func (m *StatusHistoryModel) ToDomain() order.StatusHistory {
	return order.StatusHistory{
		ID:          m.ID,
		OrderItemID: m.OrderItemID,
		Status:      order.Status(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

// StatusHistoryModelFromDomain creates a new persistence model from a domain StatusHistory record.
func StatusHistoryModelFromDomain(h order.StatusHistory) *StatusHistoryModel {
	return &StatusHistoryModel{
		ID:          h.ID,
		OrderItemID: h.OrderItemID,
		Status:      int(h.Status),
		CreatedAt:   h.CreatedAt,
	}
}

// StatusTransitionModel is one legal edge of the fulfillment graph, persisted
// so that adding a stage is a data change.
type StatusTransitionModel struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	PreviousStatus int   `gorm:"not null;uniqueIndex:idx_status_transition_edge,priority:1"`
	NextStatus     int   `gorm:"not null;uniqueIndex:idx_status_transition_edge,priority:2"`
}

// TableName returns the table name for GORM
func (StatusTransitionModel) TableName() string {
	return "order_status_transitions"
}

// ToDomain converts the persistence model to a domain Transition.
func (m *StatusTransitionModel) ToDomain() order.Transition {
	return order.Transition{
		Previous: order.Status(m.PreviousStatus),
		Next:     order.Status(m.NextStatus),
	}
}
