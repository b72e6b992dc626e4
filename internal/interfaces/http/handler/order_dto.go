package handler

import (
	"github.com/google/uuid"

	apporder "github.com/shopline/backend/internal/application/order"
	"github.com/shopline/backend/internal/domain/order"
)

// AddressRequest carries the shipping address submitted with an order
type AddressRequest struct {
	Recipient string `json:"recipient" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"required,max=30"`
	Address1  string `json:"address1" binding:"required,max=200"`
	Address2  string `json:"address2" binding:"max=200"`
	ZipCode   string `json:"zip_code" binding:"required,max=10"`
}

// OrderItemRequest is one submitted line item with its claimed settlement
type OrderItemRequest struct {
	OptionID                string `json:"option_id" binding:"required,uuid"`
	ShopperCouponID         string `json:"shopper_coupon_id" binding:"omitempty,uuid"`
	Count                   int64  `json:"count" binding:"required,min=1"`
	SalePrice               int64  `json:"sale_price" binding:"min=0"`
	BaseDiscountPrice       int64  `json:"base_discount_price" binding:"min=0"`
	MembershipDiscountPrice int64  `json:"membership_discount_price" binding:"min=0"`
	CouponDiscountPrice     int64  `json:"coupon_discount_price" binding:"min=0"`
	PaymentPrice            int64  `json:"payment_price" binding:"min=0"`
	ShippingFee             int64  `json:"shipping_fee" binding:"min=0"`
}

// CreateOrderRequest is the order-creation payload
type CreateOrderRequest struct {
	Address            AddressRequest     `json:"address" binding:"required"`
	OrderItems         []OrderItemRequest `json:"order_items" binding:"required,min=1,max=100,dive"`
	UsedPoint          int64              `json:"used_point" binding:"min=0"`
	EarnedPoint        int64              `json:"earned_point" binding:"min=0"`
	ActualPaymentPrice int64              `json:"actual_payment_price" binding:"min=0"`
	Paid               bool               `json:"paid"`
}

// toCommand converts the request into the application command
func (r *CreateOrderRequest) toCommand(shopperID uuid.UUID) (apporder.CreateOrderCommand, error) {
	items := make([]order.ItemSubmission, 0, len(r.OrderItems))
	for _, item := range r.OrderItems {
		optionID, err := uuid.Parse(item.OptionID)
		if err != nil {
			return apporder.CreateOrderCommand{}, err
		}
		sub := order.ItemSubmission{
			OptionID:                optionID,
			Count:                   item.Count,
			SalePrice:               item.SalePrice,
			BaseDiscountPrice:       item.BaseDiscountPrice,
			MembershipDiscountPrice: item.MembershipDiscountPrice,
			CouponDiscountPrice:     item.CouponDiscountPrice,
			PaymentPrice:            item.PaymentPrice,
			ShippingFee:             item.ShippingFee,
		}
		if item.ShopperCouponID != "" {
			couponID, err := uuid.Parse(item.ShopperCouponID)
			if err != nil {
				return apporder.CreateOrderCommand{}, err
			}
			sub.ShopperCouponID = &couponID
		}
		items = append(items, sub)
	}

	return apporder.CreateOrderCommand{
		ShopperID: shopperID,
		Address: apporder.AddressInput{
			Recipient: r.Address.Recipient,
			Phone:     r.Address.Phone,
			Address1:  r.Address.Address1,
			Address2:  r.Address.Address2,
			ZipCode:   r.Address.ZipCode,
		},
		Items:              items,
		UsedPoint:          r.UsedPoint,
		EarnedPoint:        r.EarnedPoint,
		ActualPaymentPrice: r.ActualPaymentPrice,
		Paid:               r.Paid,
	}, nil
}

// ChangeOptionRequest replaces an item's option
type ChangeOptionRequest struct {
	OptionID string `json:"option_id" binding:"required,uuid"`
}

// ConfirmRequest is the bulk-confirmation payload
type ConfirmRequest struct {
	OrderItemIDs []string `json:"order_item_ids" binding:"required,min=1,max=100,dive,uuid"`
}

// DeliveryAssignmentRequest is one entry of a bulk delivery assignment
type DeliveryAssignmentRequest struct {
	OrderID       string   `json:"order_id" binding:"required,uuid"`
	OrderItemIDs  []string `json:"order_item_ids" binding:"required,min=1,dive,uuid"`
	Company       string   `json:"company" binding:"required,max=30"`
	InvoiceNumber string   `json:"invoice_number" binding:"required,max=50"`
}

// AssignDeliveriesRequest is the bulk delivery-assignment payload
type AssignDeliveriesRequest struct {
	Deliveries []DeliveryAssignmentRequest `json:"deliveries" binding:"required,min=1,max=100,dive"`
}

// CancelRequest is the cancellation payload
type CancelRequest struct {
	OrderItemIDs       []string `json:"order_item_ids" binding:"required,min=1,max=100,dive,uuid"`
	AcceptableStatuses []int    `json:"acceptable_statuses" binding:"required,min=1"`
	Reason             string   `json:"reason" binding:"required,max=500"`
}

func parseUUIDList(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
