//go:build integration

package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	tradeapp "github.com/shopfeed/backend/internal/application/trade"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/domain/trade"
	"github.com/shopfeed/backend/internal/infrastructure/persistence/models"
	"github.com/shopfeed/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasket_ConcurrentFirstAdd(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	shop := db.SeedShop(t, "euroset", true, 100, 200, 300, 400)
	buyer := db.CreateUser(t, "buyer@example.com", identity.RoleBuyer)
	baskets := tradeapp.NewBasketService(db, db.Repos.Orders, db.Repos.ProductInfos, nil)

	var wg sync.WaitGroup
	errs := make(chan error, len(shop.Listings))
	for _, listing := range shop.Listings {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := baskets.AddItems(ctx, testutil.CallerOf(buyer), []tradeapp.BasketItemInput{{ProductInfoID: listing.ID, Quantity: 1}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.DB.Model(&models.OrderModel{}).
		Where("user_id = ? AND status = ?", buyer.ID, trade.OrderStatusBasket).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "racing first adds share one basket")

	basket, err := baskets.Get(ctx, testutil.CallerOf(buyer))
	require.NoError(t, err)
	assert.Len(t, basket.Items, len(shop.Listings))
}

func TestBasket_PartialUniqueIndex(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	buyer := db.CreateUser(t, "buyer@example.com", identity.RoleBuyer)

	first, err := db.Repos.Orders.GetOrCreateBasket(ctx, buyer.ID)
	require.NoError(t, err)

	second := models.OrderModelFromDomain(trade.NewBasket(buyer.ID))
	err = db.DB.Create(second).Error
	require.Error(t, err, "a second basket row violates the partial index")

	again, err := db.Repos.Orders.GetOrCreateBasket(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// placed orders are outside the index
	contact := db.CreateContact(t, buyer.ID)
	require.NoError(t, first.Place(contact.ID))
	require.NoError(t, db.Repos.Orders.Update(ctx, first))

	next, err := db.Repos.Orders.GetOrCreateBasket(ctx, buyer.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestBasket_DuplicateItem(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	shop := db.SeedShop(t, "euroset", true, 100)
	buyer := db.CreateUser(t, "buyer@example.com", identity.RoleBuyer)
	baskets := tradeapp.NewBasketService(db, db.Repos.Orders, db.Repos.ProductInfos, nil)
	caller := testutil.CallerOf(buyer)

	_, err := baskets.AddItems(ctx, caller, []tradeapp.BasketItemInput{{ProductInfoID: shop.Listings[0].ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = baskets.AddItems(ctx, caller, []tradeapp.BasketItemInput{{ProductInfoID: shop.Listings[0].ID, Quantity: 2}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrDuplicateEntity))

	// a stale basket view gets past the domain check and hits the unique index
	stale := trade.NewBasket(buyer.ID)
	basket, err := db.Repos.Orders.FindBasket(ctx, buyer.ID)
	require.NoError(t, err)
	stale.ID = basket.ID
	item, err := stale.NewItem(shop.Listings[0].ID, 1)
	require.NoError(t, err)
	err = db.Repos.Orders.AddItem(ctx, item)
	assert.True(t, errors.Is(err, shared.ErrDuplicateEntity), "got %v", err)
}
