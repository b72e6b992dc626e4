package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/order/acl"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormCatalogReader implements acl.CatalogReader using GORM
type GormCatalogReader struct {
	db *gorm.DB
}

var _ acl.CatalogReader = (*GormCatalogReader)(nil)

// NewGormCatalogReader creates a new GormCatalogReader
func NewGormCatalogReader(db *gorm.DB) *GormCatalogReader {
	return &GormCatalogReader{db: db}
}

// FindOption returns the option projection
func (r *GormCatalogReader) FindOption(ctx context.Context, id uuid.UUID) (*acl.Option, error) {
	var model models.OptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	opt := model.ToDomain()
	return &opt, nil
}

// FindOptions returns the options for the given ids keyed by id. Missing ids
// are simply absent from the map.
func (r *GormCatalogReader) FindOptions(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]acl.Option, error) {
	result := make(map[uuid.UUID]acl.Option, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []models.OptionModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}
