package order

import (
	"context"
	"fmt"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
)

// CancelService reverses a subset of one order's items: terminal cancelled
// status, cancellation records, a refund record per already-paid item and
// recovery of the points spent on the cancelled items.
type CancelService struct {
	scope   TransactionScope
	machine *order.StateMachine
	catalog acl.CatalogReader
}

// NewCancelService creates a new CancelService.
func NewCancelService(scope TransactionScope, machine *order.StateMachine, catalog acl.CatalogReader) *CancelService {
	return &CancelService{
		scope:   scope,
		machine: machine,
		catalog: catalog,
	}
}

// Cancel cancels the given items. The items must all exist, belong to one
// order owned by the requesting shopper and share one status from the
// caller's acceptable set; any violation fails the whole request before any
// mutation.
func (s *CancelService) Cancel(ctx context.Context, cmd CancelCommand) (*CancelResult, error) {
	if len(cmd.OrderItemIDs) == 0 {
		return nil, shared.NewValidationError("order_items cannot be empty")
	}
	if hasDuplicateID(cmd.OrderItemIDs) {
		return nil, shared.NewValidationError("order_items is duplicated")
	}

	var result *CancelResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		items, err := repos.Items().FindByIDsForUpdate(ctx, cmd.OrderItemIDs)
		if err != nil {
			return err
		}
		if len(items) != len(cmd.OrderItemIDs) {
			return shared.NewValidationError("order_items contains a nonexistent id")
		}

		orderID := items[0].OrderID
		status := items[0].Status
		for _, item := range items[1:] {
			if item.OrderID != orderID {
				return shared.NewValidationError("order_items belong to different orders")
			}
			if item.Status != status {
				return shared.NewValidationError("order_items are in different statuses")
			}
		}

		ord, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if ord.ShopperID != cmd.ShopperID {
			return shared.NewValidationError("order belongs to someone else")
		}

		acceptable := false
		for _, st := range cmd.AcceptableStatuses {
			if status == st {
				acceptable = true
				break
			}
		}
		if !acceptable {
			return shared.NewValidationError("status of order_items is not cancellable")
		}

		target := order.StatusCancelledBeforePayment
		var refundedPrice int64
		if status == order.StatusPaid {
			target = order.StatusCancelledAfterPayment
			refunds := make([]order.Refund, 0, len(items))
			for _, item := range items {
				refunds = append(refunds, order.NewRefund(item.ID, item.PaymentPrice))
				refundedPrice += item.PaymentPrice
			}
			if err := repos.Cancellations().SaveRefunds(ctx, refunds); err != nil {
				return err
			}
		}

		cancellations := make([]order.CancellationInformation, 0, len(items))
		itemPtrs := make([]*order.OrderItem, len(items))
		for i := range items {
			cancellations = append(cancellations, order.NewCancellationInformation(items[i].ID, cmd.Reason))
			itemPtrs[i] = &items[i]
		}
		if err := repos.Cancellations().SaveAll(ctx, cancellations); err != nil {
			return err
		}

		histories, err := s.machine.Advance(itemPtrs, target)
		if err != nil {
			return err
		}
		if err := repos.Items().UpdateStatus(ctx, cmd.OrderItemIDs, target); err != nil {
			return err
		}
		if err := repos.Histories().AppendAll(ctx, histories); err != nil {
			return err
		}

		var recovered int64
		for _, item := range items {
			if item.UsedPoint == 0 {
				continue
			}
			opt, err := s.catalog.FindOption(ctx, item.OptionID)
			if err != nil {
				return err
			}
			note := fmt.Sprintf("recovered %d point for cancelled %s", item.UsedPoint, opt.ProductName)
			if err := repos.Shoppers().AdjustPoint(ctx, cmd.ShopperID, item.UsedPoint, note); err != nil {
				return err
			}
			recovered += item.UsedPoint
		}

		result = &CancelResult{
			OrderItemIDs:   cmd.OrderItemIDs,
			Status:         target.String(),
			RefundedPrice:  refundedPrice,
			RecoveredPoint: recovered,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
