package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockShopRepository creates a GormShopRepository with a mocked SQL connection
func newMockShopRepository(t *testing.T) (*GormShopRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormShopRepository(gormDB), mock, mockDB
}

func TestGormShopRepository_FindByOwner(t *testing.T) {
	t.Run("finds the owner's shop", func(t *testing.T) {
		repo, mock, mockDB := newMockShopRepository(t)
		defer mockDB.Close()

		shopID := uuid.New()
		ownerID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "user_id", "name", "url", "status"}).
			AddRow(shopID, ownerID, "Svyaznoy", "https://example.com/shop.yaml", true)

		mock.ExpectQuery(`SELECT \* FROM "shops" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, 1).
			WillReturnRows(rows)

		shop, err := repo.FindByOwner(context.Background(), ownerID)

		require.NoError(t, err)
		assert.Equal(t, shopID, shop.ID)
		assert.Equal(t, "Svyaznoy", shop.Name)
		assert.True(t, shop.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockShopRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "shops" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		shop, err := repo.FindByOwner(context.Background(), ownerID)

		assert.Nil(t, shop)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShopRepository_Update(t *testing.T) {
	t.Run("updates the shop", func(t *testing.T) {
		repo, mock, mockDB := newMockShopRepository(t)
		defer mockDB.Close()

		shop, err := catalog.NewShop(uuid.New(), "Svyaznoy", "")
		require.NoError(t, err)
		shop.SetStatus(false)

		mock.ExpectExec(`UPDATE "shops" SET .*"status"=.* WHERE "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), shop))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found when no row matched", func(t *testing.T) {
		repo, mock, mockDB := newMockShopRepository(t)
		defer mockDB.Close()

		shop, err := catalog.NewShop(uuid.New(), "Ghost", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "shops" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), shop)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShopRepository_FindAccepting(t *testing.T) {
	repo, mock, mockDB := newMockShopRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "url", "status"}).
		AddRow(uuid.New(), uuid.New(), "A", "", true).
		AddRow(uuid.New(), uuid.New(), "B", "", true)

	mock.ExpectQuery(`SELECT \* FROM "shops" WHERE status = \$1 ORDER BY name ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	shops, err := repo.FindAccepting(context.Background())

	require.NoError(t, err)
	assert.Len(t, shops, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
