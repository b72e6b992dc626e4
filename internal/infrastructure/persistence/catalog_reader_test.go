package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

func seedOption(t *testing.T, db *gorm.DB, name string, price, discounted int64) models.OptionModel {
	t.Helper()
	model := models.OptionModel{
		ProductID:       uuid.New(),
		SubCategoryID:   uuid.New(),
		ProductName:     name,
		Price:           price,
		DiscountedPrice: discounted,
	}
	model.ID = uuid.New()
	model.CreatedAt = time.Now()
	model.UpdatedAt = time.Now()
	require.NoError(t, db.Create(&model).Error)
	return model
}

func TestGormCatalogReader_FindOption(t *testing.T) {
	db := setupTestDB(t)
	reader := NewGormCatalogReader(db)
	ctx := context.Background()

	t.Run("returns the option projection", func(t *testing.T) {
		seeded := seedOption(t, db, "wool sweater", 10000, 9000)

		opt, err := reader.FindOption(ctx, seeded.ID)
		require.NoError(t, err)

		assert.Equal(t, seeded.ID, opt.ID)
		assert.Equal(t, seeded.ProductID, opt.ProductID)
		assert.Equal(t, "wool sweater", opt.ProductName)
		assert.Equal(t, int64(10000), opt.Price)
		assert.Equal(t, int64(9000), opt.DiscountedPrice)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		_, err := reader.FindOption(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCatalogReader_FindOptions(t *testing.T) {
	db := setupTestDB(t)
	reader := NewGormCatalogReader(db)
	ctx := context.Background()

	first := seedOption(t, db, "wool sweater", 10000, 9000)
	second := seedOption(t, db, "linen shirt", 5000, 5000)

	t.Run("keys the result by id and omits missing ids", func(t *testing.T) {
		missing := uuid.New()
		found, err := reader.FindOptions(ctx, []uuid.UUID{first.ID, second.ID, missing})
		require.NoError(t, err)

		require.Len(t, found, 2)
		assert.Equal(t, "wool sweater", found[first.ID].ProductName)
		assert.Equal(t, "linen shirt", found[second.ID].ProductName)
		_, ok := found[missing]
		assert.False(t, ok)
	})

	t.Run("empty input returns an empty map", func(t *testing.T) {
		found, err := reader.FindOptions(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
