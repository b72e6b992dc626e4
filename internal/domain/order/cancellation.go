package order

import (
	"time"

	"github.com/google/uuid"
)

// CancellationInformation is one row per cancelled item.
type CancellationInformation struct {
	ID          uuid.UUID
	OrderItemID uuid.UUID
	Reason      string
	CreatedAt   time.Time
}

// NewCancellationInformation creates a cancellation record for the item.
func NewCancellationInformation(orderItemID uuid.UUID, reason string) CancellationInformation {
	return CancellationInformation{
		ID:          uuid.New(),
		OrderItemID: orderItemID,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
}

// Refund is created lazily, only for items that had completed payment when
// cancelled. Price is the item's payment price at cancellation time.
type Refund struct {
	ID          uuid.UUID
	OrderItemID uuid.UUID
	Price       int64
	CreatedAt   time.Time
}

// NewRefund creates a refund record for the item.
func NewRefund(orderItemID uuid.UUID, price int64) Refund {
	return Refund{
		ID:          uuid.New(),
		OrderItemID: orderItemID,
		Price:       price,
		CreatedAt:   time.Now(),
	}
}
