package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormCancellationRepository implements order.CancellationRepository using GORM
type GormCancellationRepository struct {
	db *gorm.DB
}

var _ order.CancellationRepository = (*GormCancellationRepository)(nil)

// NewGormCancellationRepository creates a new GormCancellationRepository
func NewGormCancellationRepository(db *gorm.DB) *GormCancellationRepository {
	return &GormCancellationRepository{db: db}
}

// SaveAll inserts the cancellation records
func (r *GormCancellationRepository) SaveAll(ctx context.Context, cancellations []order.CancellationInformation) error {
	if len(cancellations) == 0 {
		return nil
	}
	rows := make([]models.CancellationModel, len(cancellations))
	for i, c := range cancellations {
		rows[i] = *models.CancellationModelFromDomain(c)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// SaveRefunds inserts the refund records
func (r *GormCancellationRepository) SaveRefunds(ctx context.Context, refunds []order.Refund) error {
	if len(refunds) == 0 {
		return nil
	}
	rows := make([]models.RefundModel, len(refunds))
	for i, rf := range refunds {
		rows[i] = *models.RefundModelFromDomain(rf)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
