package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
)

// FulfillmentService runs the two bulk fulfillment operations. Both
// partition their input into success and failure subsets under row locks
// instead of failing outright: two concurrent calls racing on the same item
// cannot both claim it, and the loser simply sees the item in its failure
// partition.
type FulfillmentService struct {
	scope   TransactionScope
	machine *order.StateMachine
	now     func() time.Time
}

// NewFulfillmentService creates a new FulfillmentService.
func NewFulfillmentService(scope TransactionScope, machine *order.StateMachine) *FulfillmentService {
	return &FulfillmentService{
		scope:   scope,
		machine: machine,
		now:     time.Now,
	}
}

// Confirm advances every paid item of the id list to preparing. Ids that do
// not exist or are not in the paid status are reported in their partitions;
// only a duplicated id rejects the whole request.
func (s *FulfillmentService) Confirm(ctx context.Context, ids []uuid.UUID) (*ConfirmResult, error) {
	if hasDuplicateID(ids) {
		return nil, shared.NewValidationError("order_items is duplicated")
	}

	result := &ConfirmResult{
		Success:              make([]uuid.UUID, 0, len(ids)),
		Nonexistence:         make([]uuid.UUID, 0),
		NotRequestableStatus: make([]uuid.UUID, 0),
	}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.Items().FindByIDsForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*order.OrderItem, len(found))
		for i := range found {
			byID[found[i].ID] = &found[i]
		}

		advancing := make([]*order.OrderItem, 0, len(ids))
		for _, id := range ids {
			item, ok := byID[id]
			switch {
			case !ok:
				result.Nonexistence = append(result.Nonexistence, id)
			case item.Status != order.StatusPaid:
				result.NotRequestableStatus = append(result.NotRequestableStatus, id)
			default:
				result.Success = append(result.Success, id)
				advancing = append(advancing, item)
			}
		}
		if len(advancing) == 0 {
			return nil
		}

		histories, err := s.machine.Advance(advancing, order.StatusPreparing)
		if err != nil {
			return err
		}
		if err := repos.Items().UpdateStatus(ctx, result.Success, order.StatusPreparing); err != nil {
			return err
		}
		return repos.Histories().AppendAll(ctx, histories)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AssignDeliveries creates delivery rows for the surviving entries and
// advances their items from preparing to shipping. Entries whose locked
// re-fetch comes back short land in invalid_orders; entries whose
// (company, invoice) pair was used within the dedup window land in
// existed_invoice. Duplicated orders or invoice pairs within the request
// reject it whole, before any partitioning.
func (s *FulfillmentService) AssignDeliveries(ctx context.Context, entries []DeliveryAssignment) (*DeliveryAssignmentResult, error) {
	if len(entries) == 0 {
		return nil, shared.NewValidationError("deliveries cannot be empty")
	}
	seenOrders := make(map[uuid.UUID]struct{}, len(entries))
	seenInvoices := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seenOrders[e.OrderID]; ok {
			return nil, shared.NewValidationError("order_id is duplicated")
		}
		seenOrders[e.OrderID] = struct{}{}
		key := e.CompanyCode + "/" + e.InvoiceNumber
		if _, ok := seenInvoices[key]; ok {
			return nil, shared.NewValidationError("invoice_number is duplicated")
		}
		seenInvoices[key] = struct{}{}
	}

	now := s.now()
	result := &DeliveryAssignmentResult{
		Success:        make([]uuid.UUID, 0, len(entries)),
		InvalidOrders:  make([]uuid.UUID, 0),
		ExistedInvoice: make([]ExistedInvoice, 0),
	}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		type survivor struct {
			entry DeliveryAssignment
			items []order.OrderItem
		}
		survivors := make([]survivor, 0, len(entries))

		for _, e := range entries {
			items, err := repos.Items().FindForDeliveryForUpdate(ctx, e.OrderID, e.OrderItemIDs, order.StatusPreparing)
			if err != nil {
				return err
			}
			if len(items) != len(e.OrderItemIDs) {
				result.InvalidOrders = append(result.InvalidOrders, e.OrderID)
				continue
			}
			used, err := repos.Deliveries().UsedWithin(ctx, e.CompanyCode, e.InvoiceNumber, order.DeliveryDedupSince(now))
			if err != nil {
				return err
			}
			if used {
				result.ExistedInvoice = append(result.ExistedInvoice, ExistedInvoice{
					OrderID:       e.OrderID,
					CompanyCode:   e.CompanyCode,
					InvoiceNumber: e.InvoiceNumber,
				})
				continue
			}
			survivors = append(survivors, survivor{entry: e, items: items})
		}
		if len(survivors) == 0 {
			return nil
		}

		// All surviving entries commit together under one batch flag.
		flag := order.NewBatchFlag(now)
		deliveries := make([]*order.Delivery, 0, len(survivors))
		for _, sv := range survivors {
			d, err := order.NewDelivery(sv.entry.CompanyCode, sv.entry.InvoiceNumber, flag)
			if err != nil {
				return err
			}
			deliveries = append(deliveries, d)
		}
		if err := repos.Deliveries().SaveAll(ctx, deliveries); err != nil {
			return err
		}

		for i, sv := range survivors {
			itemPtrs := make([]*order.OrderItem, len(sv.items))
			for j := range sv.items {
				itemPtrs[j] = &sv.items[j]
			}
			histories, err := s.machine.Advance(itemPtrs, order.StatusShipping)
			if err != nil {
				return err
			}
			if err := repos.Items().AssignDelivery(ctx, sv.entry.OrderItemIDs, deliveries[i].ID); err != nil {
				return err
			}
			if err := repos.Items().UpdateStatus(ctx, sv.entry.OrderItemIDs, order.StatusShipping); err != nil {
				return err
			}
			if err := repos.Histories().AppendAll(ctx, histories); err != nil {
				return err
			}
			result.Success = append(result.Success, sv.entry.OrderID)
		}
		result.BatchFlag = flag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func hasDuplicateID(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
