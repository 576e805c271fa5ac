//go:build integration

package integration

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	catalogapp "github.com/shopfeed/backend/internal/application/catalog"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/shopfeed/backend/internal/infrastructure/lock"
	"github.com/shopfeed/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileSource string

func (f fileSource) Fetch(context.Context, *url.URL) ([]byte, error) {
	return os.ReadFile(string(f))
}

func TestImport_ReplacesCatalogOnPostgres(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	owner := db.CreateUser(t, "owner@euroset.example.com", identity.RoleShop)

	importer := catalogapp.NewImporter(db, catalogapp.CatalogRepositories{
		Shops:        db.Repos.Shops,
		Categories:   db.Repos.Categories,
		Goods:        db.Repos.Goods,
		ProductInfos: db.Repos.ProductInfos,
		Parameters:   db.Repos.Parameters,
	}, fileSource("../../internal/infrastructure/feed/testdata/shop1.yaml"), lock.NewRedisLocker(NewRedis(t)),
		config.FeedConfig{FetchTimeout: 10 * time.Second, LockTTL: time.Minute}, nil)

	caller := testutil.CallerOf(owner)
	first, err := importer.Import(ctx, caller, "https://euroset.example.com/feed.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, first.ProductInfos)

	second, err := importer.Import(ctx, caller, "https://euroset.example.com/feed.yaml")
	require.NoError(t, err)
	assert.Equal(t, first.ShopID, second.ShopID)

	count, err := db.Repos.ProductInfos.CountByShop(ctx, first.ShopID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "a re-import replaces the listings")

	listings, err := db.Repos.ProductInfos.FindListings(ctx, catalog.ListingFilter{ShopID: &first.ShopID})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	for _, l := range listings {
		assert.NotEmpty(t, l.ShopName)
	}
}
