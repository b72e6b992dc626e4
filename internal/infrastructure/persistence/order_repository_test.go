package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
)

func newTestOrder(t *testing.T, shopperID uuid.UUID, number string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(shopperID, uuid.New(), number)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("round-trips an order", func(t *testing.T) {
		shopperID := uuid.New()
		o := newTestOrder(t, shopperID, "20260301120005-1")

		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
		assert.Equal(t, "20260301120005-1", found.OrderNumber)
		assert.Equal(t, shopperID, found.ShopperID)
		assert.Equal(t, o.AddressID, found.AddressID)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_FindByShopper(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	shopperID := uuid.New()
	first := newTestOrder(t, shopperID, "20260301120001-1")
	first.CreatedAt = time.Now().Add(-2 * time.Hour)
	second := newTestOrder(t, shopperID, "20260301120002-1")
	second.CreatedAt = time.Now().Add(-1 * time.Hour)
	other := newTestOrder(t, uuid.New(), "20260301120003-1")

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	t.Run("returns only the shopper's orders, newest first", func(t *testing.T) {
		rows, err := repo.FindByShopper(ctx, shopperID, shared.Filter{
			Page:     1,
			PageSize: 10,
			OrderBy:  "created_at",
			OrderDir: "desc",
		})
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, second.ID, rows[0].ID)
		assert.Equal(t, first.ID, rows[1].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		rows, err := repo.FindByShopper(ctx, shopperID, shared.Filter{
			Page:     2,
			PageSize: 1,
			OrderBy:  "created_at",
			OrderDir: "desc",
		})
		require.NoError(t, err)

		require.Len(t, rows, 1)
		assert.Equal(t, first.ID, rows[0].ID)
	})

	t.Run("an unknown sort field falls back to created_at", func(t *testing.T) {
		rows, err := repo.FindByShopper(ctx, shopperID, shared.Filter{
			Page:     1,
			PageSize: 10,
			OrderBy:  "order_number; DROP TABLE orders",
		})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("counts the shopper's orders", func(t *testing.T) {
		count, err := repo.CountByShopper(ctx, shopperID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormOrderRepository_CountByNumberPrefix(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	shopperID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestOrder(t, shopperID, "20260301120005-1")))
	require.NoError(t, repo.Save(ctx, newTestOrder(t, shopperID, "20260301120005-2")))
	require.NoError(t, repo.Save(ctx, newTestOrder(t, shopperID, "20260301120006-1")))

	count, err := repo.CountByNumberPrefix(ctx, "20260301120005")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByNumberPrefix(ctx, "20260301129999")
	require.NoError(t, err)
	assert.Zero(t, count)
}
