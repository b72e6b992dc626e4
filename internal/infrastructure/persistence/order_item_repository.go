package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// GormOrderItemRepository implements order.OrderItemRepository using GORM
type GormOrderItemRepository struct {
	db *gorm.DB
}

var _ order.OrderItemRepository = (*GormOrderItemRepository)(nil)

// NewGormOrderItemRepository creates a new GormOrderItemRepository
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// BulkInsert inserts all items in one statement
func (r *GormOrderItemRepository) BulkInsert(ctx context.Context, items []*order.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.OrderItemModel, len(items))
	for i, item := range items {
		rows[i] = *models.OrderItemModelFromDomain(item)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByIDs fetches the items for the given ids
func (r *GormOrderItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]order.OrderItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// FindByIDsForUpdate fetches the items under an exclusive row lock. The lock
// is held until the surrounding transaction commits.
func (r *GormOrderItemRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]order.OrderItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// FindForDeliveryForUpdate fetches, under row lock, the subset of ids that
// belong to the order, are in the given status and carry no delivery yet.
func (r *GormOrderItemRepository) FindForDeliveryForUpdate(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID, status order.Status) ([]order.OrderItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND id IN ? AND status = ? AND delivery_id IS NULL", orderID, ids, int(status)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// FindByOrder fetches all items of the order
func (r *GormOrderItemRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.OrderItem, error) {
	var rows []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// UpdateStatus sets the status of all given items
func (r *GormOrderItemRepository) UpdateStatus(ctx context.Context, ids []uuid.UUID, status order.Status) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":     int(status),
			"updated_at": time.Now(),
		}).Error
}

// AssignDelivery attaches the delivery to all given items
func (r *GormOrderItemRepository) AssignDelivery(ctx context.Context, ids []uuid.UUID, deliveryID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"delivery_id": deliveryID,
			"updated_at":  time.Now(),
		}).Error
}

// UpdateOption replaces the item's option
func (r *GormOrderItemRepository) UpdateOption(ctx context.Context, id, optionID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"option_id":  optionID,
			"updated_at": time.Now(),
		}).Error
}

func toDomainItems(rows []models.OrderItemModel) []order.OrderItem {
	items := make([]order.OrderItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}
