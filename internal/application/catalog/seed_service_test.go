package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalogService(t *testing.T) {
	ctx := context.Background()
	seed := NewSeedCatalogService(filepath.Join("..", "..", "infrastructure", "feed", "testdata", "shop1.yaml"), 1<<20)

	shops, err := seed.Shops(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "Euroset", shops[0].Name)

	categories, err := seed.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []SeedCategoryResponse{{ID: 224, Name: "Smartphones"}, {ID: 15, Name: "Accessories"}}, categories)

	goods, err := seed.Goods(ctx)
	require.NoError(t, err)
	require.Len(t, goods, 2)
	assert.Equal(t, int64(4216292), goods[0].ID)
	assert.Len(t, goods[0].Parameters, 4)
	assert.Equal(t, "Screen size (inch)", goods[0].Parameters[0].Name)
	assert.Empty(t, goods[1].Parameters)

	_, err = NewSeedCatalogService("", 0).Goods(ctx)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = NewSeedCatalogService(filepath.Join(t.TempDir(), "missing.yaml"), 0).Shops(ctx)
	assert.Error(t, err)
}
