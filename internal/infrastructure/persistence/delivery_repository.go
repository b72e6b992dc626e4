package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormDeliveryRepository implements order.DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

var _ order.DeliveryRepository = (*GormDeliveryRepository)(nil)

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// SaveAll inserts the delivery rows of one batch
func (r *GormDeliveryRepository) SaveAll(ctx context.Context, deliveries []*order.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}
	rows := make([]models.DeliveryModel, len(deliveries))
	for i, d := range deliveries {
		rows[i] = *models.DeliveryModelFromDomain(d)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// UsedWithin reports whether the (company, invoice) pair appears on any
// delivery created at or after since
func (r *GormDeliveryRepository) UsedWithin(ctx context.Context, companyCode, invoiceNumber string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DeliveryModel{}).
		Where("company_code = ? AND invoice_number = ? AND created_at >= ?", companyCode, invoiceNumber, since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByBatchFlag returns the deliveries created in one assignment batch
func (r *GormDeliveryRepository) FindByBatchFlag(ctx context.Context, batchFlag string) ([]order.Delivery, error) {
	var rows []models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Where("batch_flag = ?", batchFlag).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	deliveries := make([]order.Delivery, len(rows))
	for i := range rows {
		deliveries[i] = *rows[i].ToDomain()
	}
	return deliveries, nil
}
