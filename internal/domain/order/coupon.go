package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
)

// CalculateCouponDiscount computes the per-unit discount a coupon grants
// against referencePrice, the discounted pre-coupon unit price.
//
// A rate coupon grants floor(reference * rate / 100); a flat-price coupon
// grants its price. Either way the maximum-discount-price, when present,
// caps the result.
func CalculateCouponDiscount(terms acl.CouponTerms, referencePrice int64) int64 {
	var discount int64
	switch {
	case terms.DiscountRate != nil:
		discount = referencePrice * *terms.DiscountRate / 100
	case terms.DiscountPrice != nil:
		discount = *terms.DiscountPrice
	default:
		return 0
	}
	if terms.MaximumDiscountPrice != nil && discount > *terms.MaximumDiscountPrice {
		discount = *terms.MaximumDiscountPrice
	}
	return discount
}

// ValidateCouponUse checks the coupon instance itself: not consumed, not
// expired, and owned by the requesting shopper.
func ValidateCouponUse(coupon *acl.ShopperCoupon, shopperID uuid.UUID, now time.Time) error {
	if coupon.ShopperID != shopperID {
		return shared.NewValidationError("shopper_coupon %s belongs to someone else", coupon.ID)
	}
	if coupon.Used {
		return shared.NewValidationError("shopper_coupon %s is already used", coupon.ID)
	}
	if coupon.Expired(now) {
		return shared.NewValidationError("shopper_coupon %s is expired", coupon.ID)
	}
	return nil
}

// ValidateCouponDiscount checks the coupon's applicability to the option and
// the submitted line discount against the computed value. referencePrice is
// the discounted pre-coupon unit price; count multiplies the per-unit
// discount into the line total.
func ValidateCouponDiscount(coupon *acl.ShopperCoupon, opt acl.Option, submitted, referencePrice, count int64) error {
	if !coupon.Terms.AppliesTo(opt) {
		return shared.NewValidationError("shopper_coupon %s is not applicable to option %s", coupon.ID, opt.ID)
	}
	if coupon.Terms.MinimumOrderPrice > referencePrice*count {
		return shared.NewValidationError(
			"pre-coupon price of option %s is less than the coupon minimum_order_price", opt.ID)
	}
	if CalculateCouponDiscount(coupon.Terms, referencePrice)*count != submitted {
		return shared.NewValidationError("coupon_discount_price of option %s is calculated incorrectly", opt.ID)
	}
	return nil
}
