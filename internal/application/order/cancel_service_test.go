package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
)

func TestCancelServiceCancel(t *testing.T) {
	ctx := context.Background()

	shopperID := uuid.New()
	orderID := uuid.New()

	ord := &order.Order{
		BaseEntity: shared.BaseEntity{ID: orderID},
		ShopperID:  shopperID,
	}

	newService := func(repos *testRepos, catalog *MockCatalogReader) *CancelService {
		if catalog == nil {
			catalog = new(MockCatalogReader)
		}
		machine := order.NewStateMachine(order.NewTransitionTable(order.DefaultTransitions()))
		return NewCancelService(repos.scope, machine, catalog)
	}

	cancelItem := func(status order.Status, paymentPrice, usedPoint int64) order.OrderItem {
		return order.OrderItem{
			BaseEntity:   shared.BaseEntity{ID: uuid.New()},
			OrderID:      orderID,
			OptionID:     uuid.New(),
			Status:       status,
			PaymentPrice: paymentPrice,
			UsedPoint:    usedPoint,
		}
	}

	idsOf := func(items []order.OrderItem) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			out = append(out, item.ID)
		}
		return out
	}

	t.Run("cancels paid items with refunds and point recovery", func(t *testing.T) {
		items := []order.OrderItem{
			cancelItem(order.StatusPaid, 9000, 300),
			cancelItem(order.StatusPaid, 4000, 0),
		}
		ids := idsOf(items)

		repos := newTestRepos()
		catalog := new(MockCatalogReader)
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return(items, nil)
		repos.orders.On("FindByID", ctx, orderID).Return(ord, nil)
		repos.cancellations.On("SaveRefunds", ctx, mock.MatchedBy(func(rs []order.Refund) bool {
			return len(rs) == 2 && rs[0].Price == 9000 && rs[1].Price == 4000
		})).Return(nil)
		repos.cancellations.On("SaveAll", ctx, mock.MatchedBy(func(cs []order.CancellationInformation) bool {
			return len(cs) == 2 && cs[0].Reason == "changed my mind"
		})).Return(nil)
		repos.items.On("UpdateStatus", ctx, ids, order.StatusCancelledAfterPayment).Return(nil)
		repos.histories.On("AppendAll", ctx, mock.MatchedBy(func(hs []order.StatusHistory) bool {
			return len(hs) == 2 && hs[0].Status == order.StatusCancelledAfterPayment
		})).Return(nil)
		catalog.On("FindOption", ctx, items[0].OptionID).Return(&acl.Option{
			ID:          items[0].OptionID,
			ProductName: "wool sweater",
		}, nil)
		repos.shoppers.On("AdjustPoint", ctx, shopperID, int64(300),
			"recovered 300 point for cancelled wool sweater").Return(nil)

		result, err := newService(repos, catalog).Cancel(ctx, CancelCommand{
			ShopperID:          shopperID,
			OrderItemIDs:       ids,
			AcceptableStatuses: []order.Status{order.StatusPaid},
			Reason:             "changed my mind",
		})
		require.NoError(t, err)

		assert.Equal(t, ids, result.OrderItemIDs)
		assert.Equal(t, "CANCELLED_AFTER_PAYMENT", result.Status)
		assert.Equal(t, int64(13000), result.RefundedPrice)
		assert.Equal(t, int64(300), result.RecoveredPoint)

		repos.cancellations.AssertExpectations(t)
		repos.shoppers.AssertExpectations(t)
	})

	t.Run("cancels unpaid items without refunds", func(t *testing.T) {
		items := []order.OrderItem{cancelItem(order.StatusPendingPayment, 5000, 0)}
		ids := idsOf(items)

		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return(items, nil)
		repos.orders.On("FindByID", ctx, orderID).Return(ord, nil)
		repos.cancellations.On("SaveAll", ctx, mock.Anything).Return(nil)
		repos.items.On("UpdateStatus", ctx, ids, order.StatusCancelledBeforePayment).Return(nil)
		repos.histories.On("AppendAll", ctx, mock.Anything).Return(nil)

		result, err := newService(repos, nil).Cancel(ctx, CancelCommand{
			ShopperID:          shopperID,
			OrderItemIDs:       ids,
			AcceptableStatuses: []order.Status{order.StatusPendingPayment},
			Reason:             "ordered twice",
		})
		require.NoError(t, err)

		assert.Equal(t, "CANCELLED_BEFORE_PAYMENT", result.Status)
		assert.Zero(t, result.RefundedPrice)
		assert.Zero(t, result.RecoveredPoint)
		repos.cancellations.AssertNotCalled(t, "SaveRefunds", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty id list", func(t *testing.T) {
		_, err := newService(newTestRepos(), nil).Cancel(ctx, CancelCommand{ShopperID: shopperID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_items cannot be empty")
	})

	t.Run("rejects a duplicated id", func(t *testing.T) {
		id := uuid.New()
		_, err := newService(newTestRepos(), nil).Cancel(ctx, CancelCommand{
			ShopperID:    shopperID,
			OrderItemIDs: []uuid.UUID{id, id},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_items is duplicated")
	})

	t.Run("rejects a nonexistent id", func(t *testing.T) {
		items := []order.OrderItem{cancelItem(order.StatusPaid, 1000, 0)}
		ids := append(idsOf(items), uuid.New())

		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return(items, nil)

		_, err := newService(repos, nil).Cancel(ctx, CancelCommand{
			ShopperID:          shopperID,
			OrderItemIDs:       ids,
			AcceptableStatuses: []order.Status{order.StatusPaid},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_items contains a nonexistent id")
	})

	t.Run("rejects items of different orders", func(t *testing.T) {
		items := []order.OrderItem{
			cancelItem(order.StatusPaid, 1000, 0),
			cancelItem(order.StatusPaid, 1000, 0),
		}
		items[1].OrderID = uuid.New()
		ids := idsOf(items)

		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return(items, nil)

		_, err := newService(repos, nil).Cancel(ctx, CancelCommand{
			ShopperID:          shopperID,
			OrderItemIDs:       ids,
			AcceptableStatuses: []order.Status{order.StatusPaid},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_items belong to different orders")
	})

	t.Run("rejects items in different statuses", func(t *testing.T) {
		items := []order.OrderItem{
			cancelItem(order.StatusPaid, 1000, 0),
			cancelItem(order.StatusPendingPayment, 1000, 0),
		}
		ids := idsOf(items)

		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return(items, nil)

		_, err := newService(repos, nil).Cancel(ctx, CancelCommand{
			ShopperID:          shopperID,
			OrderItemIDs:       ids,
			AcceptableStatuses: []order.Status{order.StatusPaid},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_items are in different statuses")
	})

	t.Run("rejects another shopper's order", func(t *testing.T) {
		items := []order.OrderItem{cancelItem(order.StatusPaid, 1000, 0)}
		ids := idsOf(items)

		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return(items, nil)
		repos.orders.On("FindByID", ctx, orderID).Return(ord, nil)

		_, err := newService(repos, nil).Cancel(ctx, CancelCommand{
			ShopperID:          uuid.New(),
			OrderItemIDs:       ids,
			AcceptableStatuses: []order.Status{order.StatusPaid},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order belongs to someone else")
	})

	t.Run("rejects a status outside the acceptable set", func(t *testing.T) {
		items := []order.OrderItem{cancelItem(order.StatusPaid, 1000, 0)}
		ids := idsOf(items)

		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return(items, nil)
		repos.orders.On("FindByID", ctx, orderID).Return(ord, nil)

		_, err := newService(repos, nil).Cancel(ctx, CancelCommand{
			ShopperID:          shopperID,
			OrderItemIDs:       ids,
			AcceptableStatuses: []order.Status{order.StatusPendingPayment},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status of order_items is not cancellable")
	})
}
