package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// newTestDatabase opens a migrated in-memory SQLite database. One connection
// keeps every statement on the same in-memory schema.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	database, err := NewDatabaseFromDialector(sqlite.Open(":memory:"), nil)
	require.NoError(t, err)

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate())
	return database
}

type shopFixture struct {
	Shop     *catalog.Shop
	Category *catalog.Category
	Listings []*catalog.ProductInfo
}

// seedShop creates a shop with one category and a listing per price, each
// listing carrying a "color" parameter
func seedShop(t *testing.T, database *Database, name string, accepting bool, prices ...int64) shopFixture {
	t.Helper()
	ctx := context.Background()
	db := database.DB

	shop, err := catalog.NewShop(uuid.New(), name, "")
	require.NoError(t, err)
	shop.SetStatus(accepting)
	require.NoError(t, NewGormShopRepository(db).Create(ctx, shop))

	categories := NewGormCategoryRepository(db)
	category, err := categories.GetOrCreate(ctx, 224, "Smartphones")
	require.NoError(t, err)
	require.NoError(t, categories.LinkShop(ctx, category.ID, shop.ID))

	parameters := NewGormParameterRepository(db)
	color, err := parameters.GetOrCreate(ctx, "color")
	require.NoError(t, err)

	fixture := shopFixture{Shop: shop, Category: category}
	for i, price := range prices {
		goods, err := NewGormGoodsRepository(db).GetOrCreate(ctx, category.ID, name+" phone "+string(rune('A'+i)))
		require.NoError(t, err)
		info, err := catalog.NewProductInfo(goods.ID, shop.ID, int64(4216292+i), "apple/iphone",
			decimal.NewFromInt(price), decimal.NewFromInt(price+10), 10)
		require.NoError(t, err)
		require.NoError(t, NewGormProductInfoRepository(db).Create(ctx, info))
		require.NoError(t, parameters.AddValue(ctx, catalog.NewProductParameter(info.ID, color.ID, "black")))
		fixture.Listings = append(fixture.Listings, info)
	}
	return fixture
}
