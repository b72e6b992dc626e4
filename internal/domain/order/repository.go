package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/shared"
)

// OrderRepository persists the Order aggregate root.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByShopper(ctx context.Context, shopperID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByShopper(ctx context.Context, shopperID uuid.UUID) (int64, error)
	// CountByNumberPrefix counts orders whose number starts with prefix; used
	// for the per-second disambiguating suffix.
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
}

// OrderItemRepository persists order items. Items are only ever inserted and
// status-advanced; they are never deleted.
type OrderItemRepository interface {
	BulkInsert(ctx context.Context, items []*OrderItem) error
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]OrderItem, error)
	// FindByIDsForUpdate fetches the items under an exclusive row lock held
	// for the rest of the surrounding transaction.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]OrderItem, error)
	// FindForDeliveryForUpdate fetches, under row lock, the subset of ids
	// that belong to the order, are in the given status and carry no
	// delivery yet.
	FindForDeliveryForUpdate(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID, status Status) ([]OrderItem, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	UpdateStatus(ctx context.Context, ids []uuid.UUID, status Status) error
	AssignDelivery(ctx context.Context, ids []uuid.UUID, deliveryID uuid.UUID) error
	UpdateOption(ctx context.Context, id, optionID uuid.UUID) error
}

// StatusHistoryRepository appends and reads the immutable transition log.
type StatusHistoryRepository interface {
	AppendAll(ctx context.Context, histories []StatusHistory) error
	FindByOrderItem(ctx context.Context, orderItemID uuid.UUID) ([]StatusHistory, error)
}

// TransitionRepository reads the persisted fulfillment transition table.
type TransitionRepository interface {
	FindAll(ctx context.Context) ([]Transition, error)
}

// DeliveryRepository persists delivery batches.
type DeliveryRepository interface {
	SaveAll(ctx context.Context, deliveries []*Delivery) error
	// UsedWithin reports whether the (company, invoice) pair appears on any
	// delivery created at or after since.
	UsedWithin(ctx context.Context, companyCode, invoiceNumber string, since time.Time) (bool, error)
	FindByBatchFlag(ctx context.Context, batchFlag string) ([]Delivery, error)
}

// CancellationRepository persists cancellation and refund records.
type CancellationRepository interface {
	SaveAll(ctx context.Context, cancellations []CancellationInformation) error
	SaveRefunds(ctx context.Context, refunds []Refund) error
}
