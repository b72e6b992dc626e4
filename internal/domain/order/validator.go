package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
)

// ItemSubmission is one line item as submitted by the client. All money
// fields are line totals the server re-derives and compares.
type ItemSubmission struct {
	OptionID                uuid.UUID
	ShopperCouponID         *uuid.UUID
	Count                   int64
	SalePrice               int64
	BaseDiscountPrice       int64
	MembershipDiscountPrice int64
	CouponDiscountPrice     int64
	PaymentPrice            int64
	ShippingFee             int64
}

// ItemValidator verifies that every submitted money field of a line item is
// internally consistent and matches the server-computed settlement.
type ItemValidator struct {
	catalog acl.CatalogReader
	coupons acl.CouponStore
	now     func() time.Time
}

// NewItemValidator creates a validator over the catalog and coupon
// collaborators.
func NewItemValidator(catalog acl.CatalogReader, coupons acl.CouponStore) *ItemValidator {
	return &ItemValidator{
		catalog: catalog,
		coupons: coupons,
		now:     time.Now,
	}
}

// Validate recomputes the settlement of every submission for the shopper and
// returns the order items ready to be bound to an order. Any disagreement
// with a submitted field fails the whole request with a validation error
// naming the offending option.
func (v *ItemValidator) Validate(ctx context.Context, shopper *acl.Shopper, subs []ItemSubmission) ([]*OrderItem, error) {
	if len(subs) == 0 {
		return nil, shared.NewValidationError("order_items cannot be empty")
	}

	items := make([]*OrderItem, 0, len(subs))
	for _, sub := range subs {
		item, err := v.validateOne(ctx, shopper, sub)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (v *ItemValidator) validateOne(ctx context.Context, shopper *acl.Shopper, sub ItemSubmission) (*OrderItem, error) {
	if sub.Count <= 0 {
		return nil, shared.NewValidationError("count of option %s must be positive", sub.OptionID)
	}

	opt, err := v.catalog.FindOption(ctx, sub.OptionID)
	if err != nil {
		return nil, err
	}

	// Coupon reference and coupon_discount_price travel together, never
	// just one of them.
	if sub.ShopperCouponID == nil && sub.CouponDiscountPrice != 0 {
		return nil, shared.NewValidationError(
			"coupon_discount_price of option %s was submitted without shopper_coupon", sub.OptionID)
	}

	salePrice := opt.Price * sub.Count
	if sub.SalePrice != salePrice {
		return nil, shared.NewValidationError("sale_price of option %s is calculated incorrectly", sub.OptionID)
	}

	baseDiscount := (opt.Price - opt.DiscountedPrice) * sub.Count
	if sub.BaseDiscountPrice != baseDiscount {
		return nil, shared.NewValidationError("base_discount_price of option %s is calculated incorrectly", sub.OptionID)
	}

	unitMembership := opt.DiscountedPrice * shopper.MembershipDiscountRate / 100
	membershipDiscount := unitMembership * sub.Count
	if sub.MembershipDiscountPrice != membershipDiscount {
		return nil, shared.NewValidationError("membership_discount_price of option %s is calculated incorrectly", sub.OptionID)
	}

	// The reference price for coupon math is the discounted pre-coupon unit
	// price: base and membership discounts already taken.
	referencePrice := opt.DiscountedPrice - unitMembership

	if sub.ShopperCouponID != nil {
		coupon, err := v.coupons.Find(ctx, *sub.ShopperCouponID)
		if err != nil {
			return nil, err
		}
		if err := ValidateCouponUse(coupon, shopper.ID, v.now()); err != nil {
			return nil, err
		}
		if err := ValidateCouponDiscount(coupon, *opt, sub.CouponDiscountPrice, referencePrice, sub.Count); err != nil {
			return nil, err
		}
	}

	paymentPrice := salePrice - baseDiscount - membershipDiscount - sub.CouponDiscountPrice
	if sub.PaymentPrice != paymentPrice {
		return nil, shared.NewValidationError("payment_price of option %s is calculated incorrectly", sub.OptionID)
	}

	return &OrderItem{
		BaseEntity:              shared.NewBaseEntity(),
		OptionID:                sub.OptionID,
		ShopperCouponID:         sub.ShopperCouponID,
		Count:                   sub.Count,
		SalePrice:               salePrice,
		BaseDiscountPrice:       baseDiscount,
		MembershipDiscountPrice: membershipDiscount,
		CouponDiscountPrice:     sub.CouponDiscountPrice,
		PaymentPrice:            paymentPrice,
		ShippingFee:             sub.ShippingFee,
	}, nil
}

// ValidateOptionChange checks an option replacement on a persisted item.
// Only the option may change, only while the item has not entered delivery,
// never to a different product, and never to an option already present in
// the same order.
func (v *ItemValidator) ValidateOptionChange(ctx context.Context, item *OrderItem, siblings []OrderItem, newOptionID uuid.UUID) error {
	preDelivery := false
	for _, s := range PreDeliveryStatuses() {
		if item.Status == s {
			preDelivery = true
			break
		}
	}
	if !preDelivery {
		return shared.NewValidationError("status of order_item %s does not allow an option change", item.ID)
	}

	for _, sibling := range siblings {
		if sibling.ID != item.ID && sibling.OptionID == newOptionID {
			return shared.NewValidationError("option %s is already included in the order", newOptionID)
		}
	}

	current, err := v.catalog.FindOption(ctx, item.OptionID)
	if err != nil {
		return err
	}
	replacement, err := v.catalog.FindOption(ctx, newOptionID)
	if err != nil {
		return err
	}
	if current.ProductID != replacement.ProductID {
		return shared.NewValidationError("option %s belongs to a different product", newOptionID)
	}
	return nil
}
