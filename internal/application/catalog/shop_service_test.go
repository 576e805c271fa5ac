package catalog

import (
	"context"
	"testing"

	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopService_SetStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	shops := NewShopService(db.Repos.Shops, nil)
	queries := NewCatalogQueryService(db.Repos.Shops, db.Repos.Categories, db.Repos.ProductInfos)

	fixture := db.SeedShop(t, "euroset", true, 100, 200)
	other := db.SeedShop(t, "svyaznoy", true, 300)
	filter := catalog.ListingFilter{ShopID: &fixture.Shop.ID}

	listings, err := queries.ListListings(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, listings, 2)

	resp, err := shops.SetStatus(ctx, fixture.Caller(), "0")
	require.NoError(t, err)
	assert.False(t, resp.Status)

	listings, err = queries.ListListings(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, listings, "a closed shop disappears from the catalog")

	all, err := queries.ListListings(ctx, catalog.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, other.Shop.ID, all[0].Shop.ID)

	accepting, err := queries.ListShops(ctx)
	require.NoError(t, err)
	require.Len(t, accepting, 1)
	assert.Equal(t, "svyaznoy", accepting[0].Name)

	_, err = shops.SetStatus(ctx, fixture.Caller(), "maybe")
	assert.ErrorIs(t, err, shared.ErrInvalidBooleanLiteral)
	current, err := shops.GetStatus(ctx, fixture.Caller())
	require.NoError(t, err)
	assert.False(t, current.Status, "invalid literal leaves the shop unchanged")

	resp, err = shops.SetStatus(ctx, fixture.Caller(), " YES ")
	require.NoError(t, err)
	assert.True(t, resp.Status)
	listings, err = queries.ListListings(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestShopService_RequiresShopRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	shops := NewShopService(db.Repos.Shops, nil)

	buyer := db.CreateUser(t, "buyer@example.com", identity.RoleBuyer)
	_, err := shops.SetStatus(ctx, testutil.CallerOf(buyer), "1")
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = shops.GetStatus(ctx, identity.Anonymous())
	assert.ErrorIs(t, err, shared.ErrNotAuthenticated)

	owner := db.CreateUser(t, "new-shop@example.com", identity.RoleShop)
	_, err = shops.GetStatus(ctx, testutil.CallerOf(owner))
	assert.ErrorIs(t, err, shared.ErrNotFound, "no shop before the first import")
}

func TestCatalogQueryService_CategoryFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	queries := NewCatalogQueryService(db.Repos.Shops, db.Repos.Categories, db.Repos.ProductInfos)

	fixture := db.SeedShop(t, "euroset", true, 100)
	db.SeedShop(t, "svyaznoy", true, 300)

	listings, err := queries.ListListings(ctx, catalog.ListingFilter{CategoryID: &fixture.Category.ID})
	require.NoError(t, err)
	assert.Len(t, listings, 2, "both shops list in the shared category")

	categories, err := queries.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(224), categories[0].ExternalID)

	listing := listings[0]
	assert.Equal(t, "Smartphones", listing.Product.Category)
	require.Len(t, listing.Parameters, 1)
	assert.Equal(t, ParameterResponse{Name: "Color", Value: "black"}, listing.Parameters[0])
}
