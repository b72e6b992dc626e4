package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
)

// QueryService serves the read side: order detail, a shopper's order list,
// an item's transition log, delivery batch lookup and the point audit trail.
type QueryService struct {
	orders     order.OrderRepository
	items      order.OrderItemRepository
	histories  order.StatusHistoryRepository
	deliveries order.DeliveryRepository
	shoppers   acl.ShopperStore
}

// NewQueryService creates a new QueryService.
func NewQueryService(
	orders order.OrderRepository,
	items order.OrderItemRepository,
	histories order.StatusHistoryRepository,
	deliveries order.DeliveryRepository,
	shoppers acl.ShopperStore,
) *QueryService {
	return &QueryService{
		orders:     orders,
		items:      items,
		histories:  histories,
		deliveries: deliveries,
		shoppers:   shoppers,
	}
}

// GetOrder returns the shopper's order with its items.
func (s *QueryService) GetOrder(ctx context.Context, shopperID, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.ShopperID != shopperID {
		return nil, shared.ErrForbidden
	}
	items, err := s.items.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	itemPtrs := make([]*order.OrderItem, len(items))
	for i := range items {
		itemPtrs[i] = &items[i]
	}
	return toOrderResponse(ord, itemPtrs), nil
}

// ListOrders returns a page of the shopper's orders, newest first.
func (s *QueryService) ListOrders(ctx context.Context, shopperID uuid.UUID, page, pageSize int) ([]OrderSummaryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
	orders, err := s.orders.FindByShopper(ctx, shopperID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountByShopper(ctx, shopperID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderSummaryResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			CreatedAt:   o.CreatedAt,
		})
	}
	return out, total, nil
}

// GetItemHistory returns the append-only transition log of one item.
func (s *QueryService) GetItemHistory(ctx context.Context, orderItemID uuid.UUID) ([]StatusHistoryResponse, error) {
	rows, err := s.histories.FindByOrderItem(ctx, orderItemID)
	if err != nil {
		return nil, err
	}
	out := make([]StatusHistoryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, StatusHistoryResponse{
			Status:    row.Status.String(),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// GetPointLedger returns the shopper's point movements, newest first.
func (s *QueryService) GetPointLedger(ctx context.Context, shopperID uuid.UUID) ([]PointLedgerResponse, error) {
	entries, err := s.shoppers.ListPointLedger(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	out := make([]PointLedgerResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, PointLedgerResponse{
			Delta:     e.Delta,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// GetDeliveriesByFlag returns the delivery rows created as one batch.
func (s *QueryService) GetDeliveriesByFlag(ctx context.Context, batchFlag string) ([]DeliveryResponse, error) {
	rows, err := s.deliveries.FindByBatchFlag(ctx, batchFlag)
	if err != nil {
		return nil, err
	}
	out := make([]DeliveryResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, DeliveryResponse{
			ID:            d.ID,
			CompanyCode:   d.CompanyCode,
			InvoiceNumber: d.InvoiceNumber,
			BatchFlag:     d.BatchFlag,
			CreatedAt:     d.CreatedAt,
		})
	}
	return out, nil
}
