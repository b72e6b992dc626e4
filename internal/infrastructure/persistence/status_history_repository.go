package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormStatusHistoryRepository implements order.StatusHistoryRepository using GORM
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

var _ order.StatusHistoryRepository = (*GormStatusHistoryRepository)(nil)

// NewGormStatusHistoryRepository creates a new GormStatusHistoryRepository
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// AppendAll inserts the history records. Rows are never updated.
func (r *GormStatusHistoryRepository) AppendAll(ctx context.Context, histories []order.StatusHistory) error {
	if len(histories) == 0 {
		return nil
	}
	rows := make([]models.StatusHistoryModel, len(histories))
	for i, h := range histories {
		rows[i] = *models.StatusHistoryModelFromDomain(h)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByOrderItem returns the item's transitions in chronological order
func (r *GormStatusHistoryRepository) FindByOrderItem(ctx context.Context, orderItemID uuid.UUID) ([]order.StatusHistory, error) {
	var rows []models.StatusHistoryModel
	if err := r.db.WithContext(ctx).
		Where("order_item_id = ?", orderItemID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	histories := make([]order.StatusHistory, len(rows))
	for i := range rows {
		histories[i] = rows[i].ToDomain()
	}
	return histories, nil
}

// GormTransitionRepository implements order.TransitionRepository using GORM
type GormTransitionRepository struct {
	db *gorm.DB
}

var _ order.TransitionRepository = (*GormTransitionRepository)(nil)

// NewGormTransitionRepository creates a new GormTransitionRepository
func NewGormTransitionRepository(db *gorm.DB) *GormTransitionRepository {
	return &GormTransitionRepository{db: db}
}

// FindAll returns every legal edge of the fulfillment graph
func (r *GormTransitionRepository) FindAll(ctx context.Context) ([]order.Transition, error) {
	var rows []models.StatusTransitionModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	transitions := make([]order.Transition, len(rows))
	for i := range rows {
		transitions[i] = rows[i].ToDomain()
	}
	return transitions, nil
}
