package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByShopper(ctx context.Context, shopperID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, shopperID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByShopper(ctx context.Context, shopperID uuid.UUID) (int64, error) {
	args := m.Called(ctx, shopperID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderItemRepository is a mock implementation of order.OrderItemRepository
type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) BulkInsert(ctx context.Context, items []*order.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]order.OrderItem, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]order.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]order.OrderItem, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]order.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) FindForDeliveryForUpdate(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID, status order.Status) ([]order.OrderItem, error) {
	args := m.Called(ctx, orderID, ids, status)
	return args.Get(0).([]order.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]order.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) UpdateStatus(ctx context.Context, ids []uuid.UUID, status order.Status) error {
	args := m.Called(ctx, ids, status)
	return args.Error(0)
}

func (m *MockOrderItemRepository) AssignDelivery(ctx context.Context, ids []uuid.UUID, deliveryID uuid.UUID) error {
	args := m.Called(ctx, ids, deliveryID)
	return args.Error(0)
}

func (m *MockOrderItemRepository) UpdateOption(ctx context.Context, id, optionID uuid.UUID) error {
	args := m.Called(ctx, id, optionID)
	return args.Error(0)
}

// MockStatusHistoryRepository is a mock implementation of order.StatusHistoryRepository
type MockStatusHistoryRepository struct {
	mock.Mock
}

func (m *MockStatusHistoryRepository) AppendAll(ctx context.Context, histories []order.StatusHistory) error {
	args := m.Called(ctx, histories)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) FindByOrderItem(ctx context.Context, orderItemID uuid.UUID) ([]order.StatusHistory, error) {
	args := m.Called(ctx, orderItemID)
	return args.Get(0).([]order.StatusHistory), args.Error(1)
}

// MockDeliveryRepository is a mock implementation of order.DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) SaveAll(ctx context.Context, deliveries []*order.Delivery) error {
	args := m.Called(ctx, deliveries)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UsedWithin(ctx context.Context, companyCode, invoiceNumber string, since time.Time) (bool, error) {
	args := m.Called(ctx, companyCode, invoiceNumber, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) FindByBatchFlag(ctx context.Context, batchFlag string) ([]order.Delivery, error) {
	args := m.Called(ctx, batchFlag)
	return args.Get(0).([]order.Delivery), args.Error(1)
}

// MockCancellationRepository is a mock implementation of order.CancellationRepository
type MockCancellationRepository struct {
	mock.Mock
}

func (m *MockCancellationRepository) SaveAll(ctx context.Context, cancellations []order.CancellationInformation) error {
	args := m.Called(ctx, cancellations)
	return args.Error(0)
}

func (m *MockCancellationRepository) SaveRefunds(ctx context.Context, refunds []order.Refund) error {
	args := m.Called(ctx, refunds)
	return args.Error(0)
}

// MockShopperStore is a mock implementation of acl.ShopperStore
type MockShopperStore struct {
	mock.Mock
}

func (m *MockShopperStore) Find(ctx context.Context, id uuid.UUID) (*acl.Shopper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acl.Shopper), args.Error(1)
}

func (m *MockShopperStore) AdjustPoint(ctx context.Context, shopperID uuid.UUID, delta int64, note string) error {
	args := m.Called(ctx, shopperID, delta, note)
	return args.Error(0)
}

func (m *MockShopperStore) ListPointLedger(ctx context.Context, shopperID uuid.UUID) ([]acl.PointLedgerEntry, error) {
	args := m.Called(ctx, shopperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]acl.PointLedgerEntry), args.Error(1)
}

// MockCouponStore is a mock implementation of acl.CouponStore
type MockCouponStore struct {
	mock.Mock
}

func (m *MockCouponStore) Find(ctx context.Context, id uuid.UUID) (*acl.ShopperCoupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acl.ShopperCoupon), args.Error(1)
}

func (m *MockCouponStore) MarkUsed(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockCatalogReader is a mock implementation of acl.CatalogReader
type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) FindOption(ctx context.Context, id uuid.UUID) (*acl.Option, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acl.Option), args.Error(1)
}

func (m *MockCatalogReader) FindOptions(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]acl.Option, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]acl.Option), args.Error(1)
}

// MockAddressStore is a mock implementation of acl.AddressStore
type MockAddressStore struct {
	mock.Mock
}

func (m *MockAddressStore) FindOrCreate(ctx context.Context, addr *acl.ShippingAddress) (uuid.UUID, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// testRepos bundles one mock per repository behind a NoOpTransactionScope.
type testRepos struct {
	scope         *NoOpTransactionScope
	orders        *MockOrderRepository
	items         *MockOrderItemRepository
	histories     *MockStatusHistoryRepository
	deliveries    *MockDeliveryRepository
	cancellations *MockCancellationRepository
	shoppers      *MockShopperStore
	coupons       *MockCouponStore
	addresses     *MockAddressStore
}

func newTestRepos() *testRepos {
	r := &testRepos{
		orders:        new(MockOrderRepository),
		items:         new(MockOrderItemRepository),
		histories:     new(MockStatusHistoryRepository),
		deliveries:    new(MockDeliveryRepository),
		cancellations: new(MockCancellationRepository),
		shoppers:      new(MockShopperStore),
		coupons:       new(MockCouponStore),
		addresses:     new(MockAddressStore),
	}
	r.scope = &NoOpTransactionScope{
		OrderRepo:        r.orders,
		ItemRepo:         r.items,
		HistoryRepo:      r.histories,
		DeliveryRepo:     r.deliveries,
		CancellationRepo: r.cancellations,
		ShopperRepo:      r.shoppers,
		CouponRepo:       r.coupons,
		AddressRepo:      r.addresses,
	}
	return r
}
