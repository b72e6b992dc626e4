package order

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
)

func newFulfillmentService(repos *testRepos) *FulfillmentService {
	machine := order.NewStateMachine(order.NewTransitionTable(order.DefaultTransitions()))
	return NewFulfillmentService(repos.scope, machine)
}

func itemInStatus(id uuid.UUID, status order.Status) order.OrderItem {
	return order.OrderItem{
		BaseEntity: shared.BaseEntity{ID: id},
		OrderID:    uuid.New(),
		Status:     status,
	}
}

func TestFulfillmentServiceConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("advances paid items and partitions the rest", func(t *testing.T) {
		paidID := uuid.New()
		shippingID := uuid.New()
		missingID := uuid.New()
		ids := []uuid.UUID{paidID, shippingID, missingID}

		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, ids).Return([]order.OrderItem{
			itemInStatus(paidID, order.StatusPaid),
			itemInStatus(shippingID, order.StatusShipping),
		}, nil)
		repos.items.On("UpdateStatus", ctx, []uuid.UUID{paidID}, order.StatusPreparing).Return(nil)
		repos.histories.On("AppendAll", ctx, mock.MatchedBy(func(hs []order.StatusHistory) bool {
			return len(hs) == 1 && hs[0].OrderItemID == paidID && hs[0].Status == order.StatusPreparing
		})).Return(nil)

		result, err := newFulfillmentService(repos).Confirm(ctx, ids)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{paidID}, result.Success)
		assert.Equal(t, []uuid.UUID{missingID}, result.Nonexistence)
		assert.Equal(t, []uuid.UUID{shippingID}, result.NotRequestableStatus)
		repos.items.AssertExpectations(t)
		repos.histories.AssertExpectations(t)
	})

	t.Run("writes nothing when no item is advanceable", func(t *testing.T) {
		id := uuid.New()
		repos := newTestRepos()
		repos.items.On("FindByIDsForUpdate", ctx, []uuid.UUID{id}).Return([]order.OrderItem{
			itemInStatus(id, order.StatusCompleted),
		}, nil)

		result, err := newFulfillmentService(repos).Confirm(ctx, []uuid.UUID{id})
		require.NoError(t, err)

		assert.Empty(t, result.Success)
		assert.Equal(t, []uuid.UUID{id}, result.NotRequestableStatus)
		repos.items.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		repos.histories.AssertNotCalled(t, "AppendAll", mock.Anything, mock.Anything)
	})

	t.Run("rejects a duplicated id outright", func(t *testing.T) {
		id := uuid.New()
		repos := newTestRepos()

		_, err := newFulfillmentService(repos).Confirm(ctx, []uuid.UUID{id, id})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_items is duplicated")
		repos.items.AssertNotCalled(t, "FindByIDsForUpdate", mock.Anything, mock.Anything)
	})
}

func TestFulfillmentServiceAssignDeliveries(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	since := order.DeliveryDedupSince(at)

	newService := func(repos *testRepos) *FulfillmentService {
		svc := newFulfillmentService(repos)
		svc.now = func() time.Time { return at }
		return svc
	}

	entryFor := func(orderID uuid.UUID, itemIDs []uuid.UUID, invoice string) DeliveryAssignment {
		return DeliveryAssignment{
			OrderID:       orderID,
			OrderItemIDs:  itemIDs,
			CompanyCode:   "CJ",
			InvoiceNumber: invoice,
		}
	}

	preparingItems := func(ids []uuid.UUID, orderID uuid.UUID) []order.OrderItem {
		out := make([]order.OrderItem, 0, len(ids))
		for _, id := range ids {
			item := itemInStatus(id, order.StatusPreparing)
			item.OrderID = orderID
			out = append(out, item)
		}
		return out
	}

	t.Run("assigns deliveries and partitions failures", func(t *testing.T) {
		goodOrder := uuid.New()
		goodItems := []uuid.UUID{uuid.New(), uuid.New()}
		shortOrder := uuid.New()
		shortItems := []uuid.UUID{uuid.New(), uuid.New()}
		dupOrder := uuid.New()
		dupItems := []uuid.UUID{uuid.New()}

		repos := newTestRepos()
		repos.items.On("FindForDeliveryForUpdate", ctx, goodOrder, goodItems, order.StatusPreparing).
			Return(preparingItems(goodItems, goodOrder), nil)
		// The locked re-fetch comes back one short: already shipped or
		// claimed by a concurrent batch.
		repos.items.On("FindForDeliveryForUpdate", ctx, shortOrder, shortItems, order.StatusPreparing).
			Return(preparingItems(shortItems[:1], shortOrder), nil)
		repos.items.On("FindForDeliveryForUpdate", ctx, dupOrder, dupItems, order.StatusPreparing).
			Return(preparingItems(dupItems, dupOrder), nil)

		repos.deliveries.On("UsedWithin", ctx, "CJ", "INV-100", since).Return(false, nil)
		repos.deliveries.On("UsedWithin", ctx, "CJ", "INV-300", since).Return(true, nil)
		repos.deliveries.On("SaveAll", ctx, mock.MatchedBy(func(ds []*order.Delivery) bool {
			return len(ds) == 1 && ds[0].InvoiceNumber == "INV-100"
		})).Return(nil)

		repos.items.On("AssignDelivery", ctx, goodItems, mock.Anything).Return(nil)
		repos.items.On("UpdateStatus", ctx, goodItems, order.StatusShipping).Return(nil)
		repos.histories.On("AppendAll", ctx, mock.MatchedBy(func(hs []order.StatusHistory) bool {
			return len(hs) == 2
		})).Return(nil)

		result, err := newService(repos).AssignDeliveries(ctx, []DeliveryAssignment{
			entryFor(goodOrder, goodItems, "INV-100"),
			entryFor(shortOrder, shortItems, "INV-200"),
			entryFor(dupOrder, dupItems, "INV-300"),
		})
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{goodOrder}, result.Success)
		assert.Equal(t, []uuid.UUID{shortOrder}, result.InvalidOrders)
		require.Len(t, result.ExistedInvoice, 1)
		assert.Equal(t, dupOrder, result.ExistedInvoice[0].OrderID)
		assert.Equal(t, "INV-300", result.ExistedInvoice[0].InvoiceNumber)
		assert.True(t, strings.HasPrefix(result.BatchFlag, "20260301120005-"), "got %s", result.BatchFlag)

		repos.items.AssertExpectations(t)
		repos.deliveries.AssertExpectations(t)
	})

	t.Run("invalid entries skip the invoice dedup check", func(t *testing.T) {
		orderID := uuid.New()
		itemIDs := []uuid.UUID{uuid.New()}

		repos := newTestRepos()
		repos.items.On("FindForDeliveryForUpdate", ctx, orderID, itemIDs, order.StatusPreparing).
			Return([]order.OrderItem{}, nil)

		result, err := newService(repos).AssignDeliveries(ctx, []DeliveryAssignment{
			entryFor(orderID, itemIDs, "INV-100"),
		})
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{orderID}, result.InvalidOrders)
		assert.Empty(t, result.BatchFlag)
		repos.deliveries.AssertNotCalled(t, "UsedWithin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repos.deliveries.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty request", func(t *testing.T) {
		_, err := newService(newTestRepos()).AssignDeliveries(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deliveries cannot be empty")
	})

	t.Run("rejects a duplicated order id", func(t *testing.T) {
		orderID := uuid.New()
		_, err := newService(newTestRepos()).AssignDeliveries(ctx, []DeliveryAssignment{
			entryFor(orderID, []uuid.UUID{uuid.New()}, "INV-100"),
			entryFor(orderID, []uuid.UUID{uuid.New()}, "INV-200"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_id is duplicated")
	})

	t.Run("rejects a duplicated invoice pair", func(t *testing.T) {
		_, err := newService(newTestRepos()).AssignDeliveries(ctx, []DeliveryAssignment{
			entryFor(uuid.New(), []uuid.UUID{uuid.New()}, "INV-100"),
			entryFor(uuid.New(), []uuid.UUID{uuid.New()}, "INV-100"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invoice_number is duplicated")
	})

	t.Run("the same invoice for different companies is not a duplicate", func(t *testing.T) {
		orderA := uuid.New()
		itemsA := []uuid.UUID{uuid.New()}
		orderB := uuid.New()
		itemsB := []uuid.UUID{uuid.New()}

		repos := newTestRepos()
		repos.items.On("FindForDeliveryForUpdate", ctx, orderA, itemsA, order.StatusPreparing).
			Return(preparingItems(itemsA, orderA), nil)
		repos.items.On("FindForDeliveryForUpdate", ctx, orderB, itemsB, order.StatusPreparing).
			Return(preparingItems(itemsB, orderB), nil)
		repos.deliveries.On("UsedWithin", ctx, "CJ", "INV-100", since).Return(false, nil)
		repos.deliveries.On("UsedWithin", ctx, "HANJIN", "INV-100", since).Return(false, nil)
		repos.deliveries.On("SaveAll", ctx, mock.Anything).Return(nil)
		repos.items.On("AssignDelivery", ctx, mock.Anything, mock.Anything).Return(nil)
		repos.items.On("UpdateStatus", ctx, mock.Anything, order.StatusShipping).Return(nil)
		repos.histories.On("AppendAll", ctx, mock.Anything).Return(nil)

		entries := []DeliveryAssignment{
			entryFor(orderA, itemsA, "INV-100"),
			{OrderID: orderB, OrderItemIDs: itemsB, CompanyCode: "HANJIN", InvoiceNumber: "INV-100"},
		}
		result, err := newService(repos).AssignDeliveries(ctx, entries)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{orderA, orderB}, result.Success)
	})
}
