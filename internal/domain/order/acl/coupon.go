package acl

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CouponClassification narrows which options a coupon may discount.
type CouponClassification string

const (
	CouponAppliesAll         CouponClassification = "ALL"
	CouponAppliesProduct     CouponClassification = "PRODUCT"
	CouponAppliesSubCategory CouponClassification = "SUB_CATEGORY"
)

// CouponTerms are the discount terms defined on a coupon. The coupon
// definition layer guarantees exactly one of DiscountRate and DiscountPrice
// is set; that invariant is trusted here, not re-validated.
type CouponTerms struct {
	DiscountRate         *int64 // percent
	DiscountPrice        *int64 // flat amount
	MaximumDiscountPrice *int64
	MinimumOrderPrice    int64
	Classification       CouponClassification
	ProductIDs           []uuid.UUID
	SubCategoryIDs       []uuid.UUID
}

// AppliesTo reports whether the terms' classification covers the option.
func (t CouponTerms) AppliesTo(opt Option) bool {
	switch t.Classification {
	case CouponAppliesAll:
		return true
	case CouponAppliesProduct:
		for _, id := range t.ProductIDs {
			if id == opt.ProductID {
				return true
			}
		}
	case CouponAppliesSubCategory:
		for _, id := range t.SubCategoryIDs {
			if id == opt.SubCategoryID {
				return true
			}
		}
	}
	return false
}

// ShopperCoupon is one shopper's issued instance of a coupon.
type ShopperCoupon struct {
	ID        uuid.UUID
	ShopperID uuid.UUID
	Used      bool
	ExpiresAt time.Time
	Terms     CouponTerms
}

// Expired reports whether the instance has passed its expiry.
func (c *ShopperCoupon) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// CouponStore is the contract against the coupon collaborator. Validation
// only reads; MarkUsed is deferred to the same atomic unit as order
// persistence.
type CouponStore interface {
	Find(ctx context.Context, id uuid.UUID) (*ShopperCoupon, error)
	MarkUsed(ctx context.Context, ids []uuid.UUID) error
}
