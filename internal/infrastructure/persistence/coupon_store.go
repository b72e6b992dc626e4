package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormCouponStore implements acl.CouponStore using GORM
type GormCouponStore struct {
	db *gorm.DB
}

var _ acl.CouponStore = (*GormCouponStore)(nil)

// NewGormCouponStore creates a new GormCouponStore
func NewGormCouponStore(db *gorm.DB) *GormCouponStore {
	return &GormCouponStore{db: db}
}

// Find returns the shopper coupon projection
func (s *GormCouponStore) Find(ctx context.Context, id uuid.UUID) (*acl.ShopperCoupon, error) {
	var model models.ShopperCouponModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// MarkUsed flags the coupons as consumed
func (s *GormCouponStore) MarkUsed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&models.ShopperCouponModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"used":       true,
			"updated_at": time.Now(),
		}).Error
}
