package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
)

// AssemblerService creates an order and its items from a settled shopping
// cart: line-item validation, point distribution and persistence as one
// atomic unit.
type AssemblerService struct {
	scope     TransactionScope
	validator *order.ItemValidator
	shoppers  acl.ShopperStore
	now       func() time.Time
}

// NewAssemblerService creates a new AssemblerService.
func NewAssemblerService(scope TransactionScope, validator *order.ItemValidator, shoppers acl.ShopperStore) *AssemblerService {
	return &AssemblerService{
		scope:     scope,
		validator: validator,
		shoppers:  shoppers,
		now:       time.Now,
	}
}

// Create validates the submitted settlement, distributes the aggregate
// points across the items and persists address, order, items, history rows,
// coupon consumption and the point debit in one transaction. Any failure
// rolls the whole sequence back.
func (s *AssemblerService) Create(ctx context.Context, cmd CreateOrderCommand) (*OrderResponse, error) {
	shopper, err := s.shoppers.Find(ctx, cmd.ShopperID)
	if err != nil {
		return nil, err
	}

	items, err := s.validator.Validate(ctx, shopper, cmd.Items)
	if err != nil {
		return nil, err
	}

	var paymentTotal int64
	for _, item := range items {
		paymentTotal += item.PaymentPrice
	}
	if cmd.ActualPaymentPrice != paymentTotal-cmd.UsedPoint {
		return nil, shared.NewValidationError("actual_payment_price is calculated incorrectly")
	}
	if cmd.UsedPoint > shopper.Point {
		return nil, shared.NewValidationError("shopper has less point than used_point")
	}
	if cmd.EarnedPoint != cmd.ActualPaymentPrice/100 {
		return nil, shared.NewValidationError("earned_point is calculated incorrectly")
	}

	// The proportional split uses the pre-point payment prices; used points
	// reduce each item's payment price only afterwards.
	shares := make([]int64, len(items))
	for i, item := range items {
		shares[i] = item.PaymentPrice
	}
	usedShares, err := order.DistributePoints(cmd.UsedPoint, shares)
	if err != nil {
		return nil, err
	}
	earnedShares, err := order.DistributePoints(cmd.EarnedPoint, shares)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		item.ApplyPoints(usedShares[i], earnedShares[i])
	}

	initialStatus := order.StatusPendingPayment
	if cmd.Paid {
		initialStatus = order.StatusPaid
	}

	var resp *OrderResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		addressID, err := repos.Addresses().FindOrCreate(ctx, &acl.ShippingAddress{
			ShopperID: cmd.ShopperID,
			Recipient: cmd.Address.Recipient,
			Phone:     cmd.Address.Phone,
			Address1:  cmd.Address.Address1,
			Address2:  cmd.Address.Address2,
			ZipCode:   cmd.Address.ZipCode,
		})
		if err != nil {
			return err
		}

		now := s.now()
		seq, err := repos.Orders().CountByNumberPrefix(ctx, order.OrderNumberPrefix(now))
		if err != nil {
			return err
		}
		ord, err := order.NewOrder(cmd.ShopperID, addressID, order.FormatOrderNumber(now, seq+1))
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, ord); err != nil {
			return err
		}

		histories := make([]order.StatusHistory, 0, len(items))
		couponIDs := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			item.OrderID = ord.ID
			item.Status = initialStatus
			histories = append(histories, order.NewStatusHistory(item.ID, initialStatus))
			if item.ShopperCouponID != nil {
				couponIDs = append(couponIDs, *item.ShopperCouponID)
			}
		}
		if err := repos.Items().BulkInsert(ctx, items); err != nil {
			return err
		}
		if err := repos.Histories().AppendAll(ctx, histories); err != nil {
			return err
		}

		// Coupon consumption is a side effect of the commit, never of
		// validation.
		if len(couponIDs) > 0 {
			if err := repos.Coupons().MarkUsed(ctx, couponIDs); err != nil {
				return err
			}
		}

		if cmd.UsedPoint > 0 {
			note := fmt.Sprintf("used %d point on order %s", cmd.UsedPoint, ord.OrderNumber)
			if err := repos.Shoppers().AdjustPoint(ctx, cmd.ShopperID, -cmd.UsedPoint, note); err != nil {
				return err
			}
		}

		resp = toOrderResponse(ord, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ChangeItemOption replaces a persisted item's option. Only the option may
// change on an update, only while the item has not entered delivery, and the
// replacement must stay within the same product and not duplicate an option
// already in the order.
func (s *AssemblerService) ChangeItemOption(ctx context.Context, shopperID, orderID, itemID, newOptionID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if ord.ShopperID != shopperID {
			return shared.NewValidationError("order belongs to someone else")
		}

		siblings, err := repos.Items().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		var item *order.OrderItem
		for i := range siblings {
			if siblings[i].ID == itemID {
				item = &siblings[i]
				break
			}
		}
		if item == nil {
			return shared.ErrNotFound
		}

		if err := s.validator.ValidateOptionChange(ctx, item, siblings, newOptionID); err != nil {
			return err
		}
		return repos.Items().UpdateOption(ctx, itemID, newOptionID)
	})
}
