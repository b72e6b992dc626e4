package persistence

import (
	"context"

	"gorm.io/gorm"

	apporder "github.com/shopline/backend/internal/application/order"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/order/acl"
)

// GormTransactionScope implements apporder.TransactionScope using GORM
// transactions. All repositories handed to the callback share one *gorm.DB
// transaction, so row locks taken by any of them are held until commit.
type GormTransactionScope struct {
	db *gorm.DB
}

var _ apporder.TransactionScope = (*GormTransactionScope)(nil)

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

var _ apporder.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

func (r *gormTransactionalRepositories) Orders() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) Items() order.OrderItemRepository {
	return NewGormOrderItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) Histories() order.StatusHistoryRepository {
	return NewGormStatusHistoryRepository(r.tx)
}

func (r *gormTransactionalRepositories) Deliveries() order.DeliveryRepository {
	return NewGormDeliveryRepository(r.tx)
}

func (r *gormTransactionalRepositories) Cancellations() order.CancellationRepository {
	return NewGormCancellationRepository(r.tx)
}

func (r *gormTransactionalRepositories) Shoppers() acl.ShopperStore {
	return NewGormShopperStore(r.tx)
}

func (r *gormTransactionalRepositories) Coupons() acl.CouponStore {
	return NewGormCouponStore(r.tx)
}

func (r *gormTransactionalRepositories) Addresses() acl.AddressStore {
	return NewGormAddressStore(r.tx)
}
