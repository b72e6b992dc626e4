package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

func TestGormStatusHistoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStatusHistoryRepository(db)
	ctx := context.Background()

	itemID := uuid.New()

	t.Run("appends and reads back in chronological order", func(t *testing.T) {
		paid := order.NewStatusHistory(itemID, order.StatusPaid)
		paid.CreatedAt = time.Now().Add(-time.Hour)
		preparing := order.NewStatusHistory(itemID, order.StatusPreparing)

		require.NoError(t, repo.AppendAll(ctx, []order.StatusHistory{preparing, paid}))

		rows, err := repo.FindByOrderItem(ctx, itemID)
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, order.StatusPaid, rows[0].Status)
		assert.Equal(t, order.StatusPreparing, rows[1].Status)
	})

	t.Run("appending nothing is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.AppendAll(ctx, nil))
	})

	t.Run("an unknown item has no history", func(t *testing.T) {
		rows, err := repo.FindByOrderItem(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestGormTransitionRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransitionRepository(db)
	ctx := context.Background()

	t.Run("returns every persisted edge", func(t *testing.T) {
		seed := []models.StatusTransitionModel{
			{PreviousStatus: int(order.StatusPendingPayment), NextStatus: int(order.StatusPaid)},
			{PreviousStatus: int(order.StatusPaid), NextStatus: int(order.StatusPreparing)},
		}
		require.NoError(t, db.Create(&seed).Error)

		transitions, err := repo.FindAll(ctx)
		require.NoError(t, err)

		require.Len(t, transitions, 2)
		table := order.NewTransitionTable(transitions)
		assert.True(t, table.CanTransition(order.StatusPendingPayment, order.StatusPaid))
		assert.True(t, table.CanTransition(order.StatusPaid, order.StatusPreparing))
		assert.False(t, table.CanTransition(order.StatusPreparing, order.StatusShipping))
	})
}
