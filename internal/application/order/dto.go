package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/order"
)

// AddressInput carries the shipping address submitted with an order.
type AddressInput struct {
	Recipient string
	Phone     string
	Address1  string
	Address2  string
	ZipCode   string
}

// CreateOrderCommand is the assembler's input: the validated-to-be line
// items together with the aggregate point and payment figures.
type CreateOrderCommand struct {
	ShopperID          uuid.UUID
	Address            AddressInput
	Items              []order.ItemSubmission
	UsedPoint          int64
	EarnedPoint        int64
	ActualPaymentPrice int64
	// Paid reflects the caller context's (stubbed) payment result and picks
	// the items' initial status.
	Paid bool
}

// OrderItemResponse is one line item in an order response.
type OrderItemResponse struct {
	ID                      uuid.UUID  `json:"id"`
	OptionID                uuid.UUID  `json:"option_id"`
	ShopperCouponID         *uuid.UUID `json:"shopper_coupon_id,omitempty"`
	DeliveryID              *uuid.UUID `json:"delivery_id,omitempty"`
	Status                  string     `json:"status"`
	Count                   int64      `json:"count"`
	SalePrice               int64      `json:"sale_price"`
	BaseDiscountPrice       int64      `json:"base_discount_price"`
	MembershipDiscountPrice int64      `json:"membership_discount_price"`
	CouponDiscountPrice     int64      `json:"coupon_discount_price"`
	UsedPoint               int64      `json:"used_point"`
	EarnedPoint             int64      `json:"earned_point"`
	PaymentPrice            int64      `json:"payment_price"`
	ShippingFee             int64      `json:"shipping_fee"`
}

// OrderResponse is the full order representation returned by create and get.
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	OrderNumber string              `json:"order_number"`
	ShopperID   uuid.UUID           `json:"shopper_id"`
	AddressID   uuid.UUID           `json:"address_id"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderSummaryResponse is one row of a shopper's order list.
type OrderSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"order_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusHistoryResponse is one row of an item's transition log.
type StatusHistoryResponse struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PointLedgerResponse is one point movement with its audit note.
type PointLedgerResponse struct {
	Delta     int64     `json:"delta"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// ConfirmResult partitions a bulk confirmation's input ids. The operation
// never fails for partition members; the partitions are the result.
type ConfirmResult struct {
	Success              []uuid.UUID `json:"success"`
	Nonexistence         []uuid.UUID `json:"nonexistence"`
	NotRequestableStatus []uuid.UUID `json:"not_requestable_status"`
}

// DeliveryAssignment is one entry of a bulk delivery-assignment request.
type DeliveryAssignment struct {
	OrderID       uuid.UUID
	OrderItemIDs  []uuid.UUID
	CompanyCode   string
	InvoiceNumber string
}

// ExistedInvoice names an entry rejected because its (company, invoice)
// pair was already used within the dedup window.
type ExistedInvoice struct {
	OrderID       uuid.UUID `json:"order_id"`
	CompanyCode   string    `json:"company"`
	InvoiceNumber string    `json:"invoice_number"`
}

// DeliveryAssignmentResult partitions a bulk delivery assignment's entries.
type DeliveryAssignmentResult struct {
	Success        []uuid.UUID      `json:"success"`
	InvalidOrders  []uuid.UUID      `json:"invalid_orders"`
	ExistedInvoice []ExistedInvoice `json:"existed_invoice"`
	BatchFlag      string           `json:"batch_flag,omitempty"`
}

// DeliveryResponse is one delivery row of a batch.
type DeliveryResponse struct {
	ID            uuid.UUID `json:"id"`
	CompanyCode   string    `json:"company"`
	InvoiceNumber string    `json:"invoice_number"`
	BatchFlag     string    `json:"batch_flag"`
	CreatedAt     time.Time `json:"created_at"`
}

// CancelCommand is the cancellation workflow's input.
type CancelCommand struct {
	ShopperID          uuid.UUID
	OrderItemIDs       []uuid.UUID
	AcceptableStatuses []order.Status
	Reason             string
}

// CancelResult reports the items cancelled and the points returned.
type CancelResult struct {
	OrderItemIDs   []uuid.UUID `json:"order_item_ids"`
	Status         string      `json:"status"`
	RefundedPrice  int64       `json:"refunded_price"`
	RecoveredPoint int64       `json:"recovered_point"`
}

func toOrderItemResponse(item *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:                      item.ID,
		OptionID:                item.OptionID,
		ShopperCouponID:         item.ShopperCouponID,
		DeliveryID:              item.DeliveryID,
		Status:                  item.Status.String(),
		Count:                   item.Count,
		SalePrice:               item.SalePrice,
		BaseDiscountPrice:       item.BaseDiscountPrice,
		MembershipDiscountPrice: item.MembershipDiscountPrice,
		CouponDiscountPrice:     item.CouponDiscountPrice,
		UsedPoint:               item.UsedPoint,
		EarnedPoint:             item.EarnedPoint,
		PaymentPrice:            item.PaymentPrice,
		ShippingFee:             item.ShippingFee,
	}
}

func toOrderResponse(o *order.Order, items []*order.OrderItem) *OrderResponse {
	resp := &OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		ShopperID:   o.ShopperID,
		AddressID:   o.AddressID,
		Items:       make([]OrderItemResponse, 0, len(items)),
		CreatedAt:   o.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toOrderItemResponse(item))
	}
	return resp
}
