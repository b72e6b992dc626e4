package models

import (
	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/order/acl"
)

// OptionModel is the persistence model for the catalog option projection the
// order context reads from.
type OptionModel struct {
	BaseModel
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SubCategoryID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName     string    `gorm:"type:varchar(200);not null"`
	Price           int64     `gorm:"not null"`
	DiscountedPrice int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OptionModel) TableName() string {
	return "product_options"
}

// ToDomain converts the persistence model to the ACL Option projection.
func (m *OptionModel) ToDomain() acl.Option {
	return acl.Option{
		ID:              m.ID,
		ProductID:       m.ProductID,
		SubCategoryID:   m.SubCategoryID,
		ProductName:     m.ProductName,
		Price:           m.Price,
		DiscountedPrice: m.DiscountedPrice,
	}
}
