package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/shared"
)

// Order is the aggregate root owning its order items. Items are created
// together with the order and never deleted; a cancelled item merely reaches
// a terminal status.
type Order struct {
	shared.BaseEntity
	OrderNumber string
	ShopperID   uuid.UUID
	AddressID   uuid.UUID
}

// NewOrder creates an order for the shopper with the given number.
func NewOrder(shopperID, addressID uuid.UUID, orderNumber string) (*Order, error) {
	if shopperID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOPPER", "Shopper ID cannot be empty")
	}
	if addressID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	return &Order{
		BaseEntity:  shared.NewBaseEntity(),
		OrderNumber: orderNumber,
		ShopperID:   shopperID,
		AddressID:   addressID,
	}, nil
}

// OrderNumberPrefix formats t to the second. Every order created at t shares
// this prefix, so the number stays monotonically informative.
func OrderNumberPrefix(t time.Time) string {
	return t.Format("20060102150405")
}

// FormatOrderNumber appends the per-second disambiguating suffix to the
// prefix for t.
func FormatOrderNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("%s-%d", OrderNumberPrefix(t), seq)
}

// OrderItem is one purchasable unit within an order, carrying its own
// price/point/coupon breakdown and fulfillment status. All money fields are
// line totals (unit values multiplied by Count).
type OrderItem struct {
	shared.BaseEntity
	OrderID                 uuid.UUID
	OptionID                uuid.UUID
	ShopperCouponID         *uuid.UUID
	DeliveryID              *uuid.UUID
	Status                  Status
	Count                   int64
	SalePrice               int64
	BaseDiscountPrice       int64
	MembershipDiscountPrice int64
	CouponDiscountPrice     int64
	UsedPoint               int64
	EarnedPoint             int64
	PaymentPrice            int64
	ShippingFee             int64
}

// SettledCorrectly reports whether the pre-point settlement invariant holds:
// payment = sale − base − membership − coupon. Used points reduce the
// payment price only at commit, after distribution.
func (i *OrderItem) SettledCorrectly() bool {
	return i.PaymentPrice == i.SalePrice-i.BaseDiscountPrice-i.MembershipDiscountPrice-i.CouponDiscountPrice
}

// ApplyPoints finalizes the item's point share: the used portion reduces the
// payment price, the earned portion is recorded as-is.
func (i *OrderItem) ApplyPoints(used, earned int64) {
	i.UsedPoint = used
	i.EarnedPoint = earned
	i.PaymentPrice -= used
}

// HasDelivery reports whether the item is already assigned to a delivery.
func (i *OrderItem) HasDelivery() bool {
	return i.DeliveryID != nil
}
