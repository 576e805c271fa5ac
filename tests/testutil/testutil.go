// Package testutil provides shared fixtures for application and HTTP tests:
// a migrated SQLite database, seeded catalog data, an event recorder and gin
// request helpers.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// TestDB is a migrated in-memory SQLite database with its repositories
type TestDB struct {
	*persistence.Database
	Repos *persistence.Repositories
}

// NewTestDB opens a fresh database. A single connection keeps every
// statement on the same in-memory schema.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	database, err := persistence.NewDatabaseFromDialector(sqlite.Open(":memory:"), nil)
	require.NoError(t, err)

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate())
	return &TestDB{Database: database, Repos: persistence.NewRepositories(database.DB)}
}

// CreateUser stores an active user with the given role
func (db *TestDB) CreateUser(t *testing.T, email string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "password123", role)
	require.NoError(t, err)
	user.Activate()
	user.ClearDomainEvents()
	require.NoError(t, db.Repos.Users.Create(context.Background(), user))
	return user
}

// CreateContact stores a contact for the user
func (db *TestDB) CreateContact(t *testing.T, userID uuid.UUID) *identity.Contact {
	t.Helper()
	contact, err := identity.NewContact(userID, identity.ContactFields{City: "Moscow", Street: "Tverskaya", House: "1", Phone: "+79990000000"})
	require.NoError(t, err)
	require.NoError(t, db.Repos.Contacts.Create(context.Background(), contact))
	return contact
}

// ShopFixture is a seeded shop with its listings
type ShopFixture struct {
	Owner    *identity.User
	Shop     *catalog.Shop
	Category *catalog.Category
	Listings []*catalog.ProductInfo
}

// SeedShop creates a shop-role owner, a shop and one listing per price in
// category 224 "Smartphones"
func (db *TestDB) SeedShop(t *testing.T, name string, accepting bool, prices ...int64) *ShopFixture {
	t.Helper()
	ctx := context.Background()
	repos := db.Repos

	owner := db.CreateUser(t, fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]), identity.RoleShop)
	shop, err := catalog.NewShop(owner.ID, name, "https://"+name+".example.com/feed.yaml")
	require.NoError(t, err)
	shop.SetStatus(accepting)
	require.NoError(t, repos.Shops.Create(ctx, shop))

	category, err := repos.Categories.GetOrCreate(ctx, 224, "Smartphones")
	require.NoError(t, err)
	require.NoError(t, repos.Categories.LinkShop(ctx, category.ID, shop.ID))

	color, err := repos.Parameters.GetOrCreate(ctx, "Color")
	require.NoError(t, err)

	fixture := &ShopFixture{Owner: owner, Shop: shop, Category: category}
	for i, price := range prices {
		goods, err := repos.Goods.GetOrCreate(ctx, category.ID, fmt.Sprintf("%s phone %d", name, i+1))
		require.NoError(t, err)
		info, err := catalog.NewProductInfo(goods.ID, shop.ID, int64(4216292+i), "apple/iphone",
			decimal.NewFromInt(price), decimal.NewFromInt(price+10), 10)
		require.NoError(t, err)
		require.NoError(t, repos.ProductInfos.Create(ctx, info))
		require.NoError(t, repos.Parameters.AddValue(ctx, catalog.NewProductParameter(info.ID, color.ID, "black")))
		fixture.Listings = append(fixture.Listings, info)
	}
	return fixture
}

// Caller returns the fixture owner's caller identity
func (f *ShopFixture) Caller() identity.Caller {
	return identity.NewCaller(f.Owner.ID, identity.RoleShop)
}

// CallerOf returns the caller identity of a user
func CallerOf(u *identity.User) identity.Caller {
	return identity.NewCaller(u.ID, u.Role)
}
