package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/order"
)

// CancellationModel is the persistence model for a cancellation record.
type CancellationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Reason      string    `gorm:"type:varchar(500);not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CancellationModel) TableName() string {
	return "cancellation_informations"
}

// ToDomain converts the persistence model to a domain CancellationInformation record.
func (m *CancellationModel) ToDomain() order.CancellationInformation {
	return order.CancellationInformation{
		ID:          m.ID,
		OrderItemID: m.OrderItemID,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

// CancellationModelFromDomain creates a new persistence model from a domain record.
func CancellationModelFromDomain(c order.CancellationInformation) *CancellationModel {
	return &CancellationModel{
		ID:          c.ID,
		OrderItemID: c.OrderItemID,
		Reason:      c.Reason,
		CreatedAt:   c.CreatedAt,
	}
}

// RefundModel is the persistence model for a refund record.
type RefundModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Price       int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RefundModel) TableName() string {
	return "refunds"
}

// ToDomain converts the persistence model to a domain Refund record.
func (m *RefundModel) ToDomain() order.Refund {
	return order.Refund{
		ID:          m.ID,
		OrderItemID: m.OrderItemID,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
	}
}

// RefundModelFromDomain creates a new persistence model from a domain record.
func RefundModelFromDomain(r order.Refund) *RefundModel {
	return &RefundModel{
		ID:          r.ID,
		OrderItemID: r.OrderItemID,
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
	}
}
