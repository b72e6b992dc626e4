package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shopline/backend/internal/domain/order/acl"
)

// ShopperCouponModel is the persistence model for a shopper's issued coupon
// instance. The discount terms are denormalized onto the instance row; the
// applicability id lists are stored as Postgres text arrays.
type ShopperCouponModel struct {
	BaseModel
	ShopperID            uuid.UUID      `gorm:"type:uuid;not null;index"`
	Used                 bool           `gorm:"not null;default:false"`
	ExpiresAt            time.Time      `gorm:"not null"`
	DiscountRate         *int64         `gorm:""`
	DiscountPrice        *int64         `gorm:""`
	MaximumDiscountPrice *int64         `gorm:""`
	MinimumOrderPrice    int64          `gorm:"not null;default:0"`
	Classification       string         `gorm:"type:varchar(20);not null"`
	ProductIDs           pq.StringArray `gorm:"type:text[]"`
	SubCategoryIDs       pq.StringArray `gorm:"type:text[]"`
}

// TableName returns the table name for GORM
func (ShopperCouponModel) TableName() string {
	return "shopper_coupons"
}

// ToDomain converts the persistence model to the ACL ShopperCoupon projection.
func (m *ShopperCouponModel) ToDomain() *acl.ShopperCoupon {
	return &acl.ShopperCoupon{
		ID:        m.ID,
		ShopperID: m.ShopperID,
		Used:      m.Used,
		ExpiresAt: m.ExpiresAt,
		Terms: acl.CouponTerms{
			DiscountRate:         m.DiscountRate,
			DiscountPrice:        m.DiscountPrice,
			MaximumDiscountPrice: m.MaximumDiscountPrice,
			MinimumOrderPrice:    m.MinimumOrderPrice,
			Classification:       acl.CouponClassification(m.Classification),
			ProductIDs:           parseUUIDs(m.ProductIDs),
			SubCategoryIDs:       parseUUIDs(m.SubCategoryIDs),
		},
	}
}

func parseUUIDs(values pq.StringArray) []uuid.UUID {
	if len(values) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
