package order

import (
	"context"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/order/acl"
)

// TransactionScope provides transactional access to the order context's
// repositories. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically. Row locks taken inside the scope are held until
// it ends.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	Orders() order.OrderRepository
	Items() order.OrderItemRepository
	Histories() order.StatusHistoryRepository
	Deliveries() order.DeliveryRepository
	Cancellations() order.CancellationRepository
	Shoppers() acl.ShopperStore
	Coupons() acl.CouponStore
	Addresses() acl.AddressStore
}

// NoOpTransactionScope runs the function without a real transaction. Used in
// tests, where the repositories are mocks and atomicity is not under test.
type NoOpTransactionScope struct {
	OrderRepo        order.OrderRepository
	ItemRepo         order.OrderItemRepository
	HistoryRepo      order.StatusHistoryRepository
	DeliveryRepo     order.DeliveryRepository
	CancellationRepo order.CancellationRepository
	ShopperRepo      acl.ShopperStore
	CouponRepo       acl.CouponStore
	AddressRepo      acl.AddressStore
}

// Execute runs the function against the configured repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() order.OrderRepository { return s.OrderRepo }

// Items returns the order item repository.
func (s *NoOpTransactionScope) Items() order.OrderItemRepository { return s.ItemRepo }

// Histories returns the status history repository.
func (s *NoOpTransactionScope) Histories() order.StatusHistoryRepository { return s.HistoryRepo }

// Deliveries returns the delivery repository.
func (s *NoOpTransactionScope) Deliveries() order.DeliveryRepository { return s.DeliveryRepo }

// Cancellations returns the cancellation repository.
func (s *NoOpTransactionScope) Cancellations() order.CancellationRepository {
	return s.CancellationRepo
}

// Shoppers returns the shopper store.
func (s *NoOpTransactionScope) Shoppers() acl.ShopperStore { return s.ShopperRepo }

// Coupons returns the coupon store.
func (s *NoOpTransactionScope) Coupons() acl.CouponStore { return s.CouponRepo }

// Addresses returns the address store.
func (s *NoOpTransactionScope) Addresses() acl.AddressStore { return s.AddressRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
