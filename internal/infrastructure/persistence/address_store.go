package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormAddressStore implements acl.AddressStore using GORM
type GormAddressStore struct {
	db *gorm.DB
}

var _ acl.AddressStore = (*GormAddressStore)(nil)

// NewGormAddressStore creates a new GormAddressStore
func NewGormAddressStore(db *gorm.DB) *GormAddressStore {
	return &GormAddressStore{db: db}
}

// FindOrCreate reuses an identical existing address of the shopper or
// persists a new row, and returns its id.
func (s *GormAddressStore) FindOrCreate(ctx context.Context, addr *acl.ShippingAddress) (uuid.UUID, error) {
	var existing models.AddressModel
	err := s.db.WithContext(ctx).
		Where("shopper_id = ? AND recipient = ? AND phone = ? AND address1 = ? AND address2 = ? AND zip_code = ?",
			addr.ShopperID, addr.Recipient, addr.Phone, addr.Address1, addr.Address2, addr.ZipCode).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	model := models.AddressModelFromDomain(addr)
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return uuid.Nil, err
	}
	return model.ID, nil
}
