package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormShopperStore implements acl.ShopperStore using GORM
type GormShopperStore struct {
	db *gorm.DB
}

var _ acl.ShopperStore = (*GormShopperStore)(nil)

// NewGormShopperStore creates a new GormShopperStore
func NewGormShopperStore(db *gorm.DB) *GormShopperStore {
	return &GormShopperStore{db: db}
}

// Find returns the shopper projection
func (s *GormShopperStore) Find(ctx context.Context, id uuid.UUID) (*acl.Shopper, error) {
	var model models.ShopperModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// AdjustPoint moves the shopper's balance by delta and appends a ledger row.
// The shopper row is locked so concurrent adjustments serialize; the balance
// is never allowed below zero.
func (s *GormShopperStore) AdjustPoint(ctx context.Context, shopperID uuid.UUID, delta int64, note string) error {
	var model models.ShopperModel
	if err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", shopperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	if model.Point+delta < 0 {
		return shared.ErrInsufficientPoint
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&models.ShopperModel{}).
		Where("id = ?", shopperID).
		Updates(map[string]any{
			"point":      model.Point + delta,
			"updated_at": now,
		}).Error; err != nil {
		return err
	}

	ledger := models.PointLedgerModel{
		ID:        uuid.New(),
		ShopperID: shopperID,
		Delta:     delta,
		Note:      note,
		CreatedAt: now,
	}
	return s.db.WithContext(ctx).Create(&ledger).Error
}

// ListPointLedger returns the shopper's point movements, newest first
func (s *GormShopperStore) ListPointLedger(ctx context.Context, shopperID uuid.UUID) ([]acl.PointLedgerEntry, error) {
	var rows []models.PointLedgerModel
	if err := s.db.WithContext(ctx).
		Where("shopper_id = ?", shopperID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]acl.PointLedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, acl.PointLedgerEntry{
			Delta:     row.Delta,
			Note:      row.Note,
			CreatedAt: row.CreatedAt,
		})
	}
	return entries, nil
}
