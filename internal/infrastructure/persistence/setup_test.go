package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/infrastructure/persistence/models"
)

// setupTestDB opens an in-memory SQLite database with the schema of every
// model that is SQLite-compatible. ShopperCouponModel is excluded: its
// text[] columns only exist on Postgres and its store is tested against a
// mocked connection instead.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.StatusHistoryModel{},
		&models.StatusTransitionModel{},
		&models.DeliveryModel{},
		&models.CancellationModel{},
		&models.RefundModel{},
		&models.ShopperModel{},
		&models.PointLedgerModel{},
		&models.AddressModel{},
		&models.OptionModel{},
	)
	require.NoError(t, err)

	return db
}

// setupMockDB opens a GORM connection over a mocked Postgres driver, for
// statements SQLite cannot execute, such as SELECT ... FOR UPDATE.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}
