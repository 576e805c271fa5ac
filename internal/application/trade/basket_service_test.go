package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tradeFixture struct {
	db      *testutil.TestDB
	baskets *BasketService
	orders  *OrderService
	events  *testutil.RecordingPublisher
	buyer   *identity.User
}

func newTradeFixture(t *testing.T) *tradeFixture {
	db := testutil.NewTestDB(t)
	events := testutil.NewRecordingPublisher()
	return &tradeFixture{
		db:      db,
		baskets: NewBasketService(db, db.Repos.Orders, db.Repos.ProductInfos, nil),
		orders:  NewOrderService(db, db.Repos.Orders, db.Repos.Contacts, db.Repos.Shops, events, nil),
		events:  events,
		buyer:   db.CreateUser(t, "buyer@example.com", identity.RoleBuyer),
	}
}

func (f *tradeFixture) caller() identity.Caller {
	return testutil.CallerOf(f.buyer)
}

func TestBasketService_TotalSum(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	shop := f.db.SeedShop(t, "euroset", true, 100, 50)

	result, err := f.baskets.AddItems(ctx, f.caller(), []BasketItemInput{
		{ProductInfoID: shop.Listings[0].ID, Quantity: 2},
		{ProductInfoID: shop.Listings[1].ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Failures)

	basket, err := f.baskets.Get(ctx, f.caller())
	require.NoError(t, err)
	assert.Equal(t, "250", basket.TotalSum.String())
	require.Len(t, basket.Items, 2)
	for _, item := range basket.Items {
		require.NotNil(t, item.ProductInfo)
		assert.Equal(t, "euroset", item.ProductInfo.Shop.Name)
		assert.Equal(t, "Smartphones", item.ProductInfo.Product.Category)
	}
}

func TestBasketService_TotalSumIgnoresOrderAndZeroQuantities(t *testing.T) {
	ctx := context.Background()
	totals := make([]string, 0, 2)

	for _, reversed := range []bool{false, true} {
		f := newTradeFixture(t)
		shop := f.db.SeedShop(t, "euroset", true, 100, 50, 999)
		items := []BasketItemInput{
			{ProductInfoID: shop.Listings[0].ID, Quantity: 3},
			{ProductInfoID: shop.Listings[1].ID, Quantity: 1},
			{ProductInfoID: shop.Listings[2].ID, Quantity: 0},
		}
		if reversed {
			items[0], items[2] = items[2], items[0]
		}
		_, err := f.baskets.AddItems(ctx, f.caller(), items)
		require.NoError(t, err)

		basket, err := f.baskets.Get(ctx, f.caller())
		require.NoError(t, err)
		totals = append(totals, basket.TotalSum.String())
	}
	assert.Equal(t, []string{"350", "350"}, totals)
}

func TestBasketService_DuplicateAdd(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	shop := f.db.SeedShop(t, "euroset", true, 100, 50)
	first, second := shop.Listings[0].ID, shop.Listings[1].ID

	_, err := f.baskets.AddItems(ctx, f.caller(), []BasketItemInput{{ProductInfoID: first, Quantity: 1}})
	require.NoError(t, err)

	result, err := f.baskets.AddItems(ctx, f.caller(), []BasketItemInput{
		{ProductInfoID: first, Quantity: 5},
		{ProductInfoID: second, Quantity: 1},
	})
	require.NoError(t, err, "other items still succeed")
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, shared.CodeDuplicateEntity, result.Failures[0].Code)
	assert.Equal(t, 0, result.Failures[0].Index)

	_, err = f.baskets.AddItems(ctx, f.caller(), []BasketItemInput{{ProductInfoID: first, Quantity: 1}})
	assert.ErrorIs(t, err, shared.ErrDuplicateEntity)

	basket, err := f.baskets.Get(ctx, f.caller())
	require.NoError(t, err)
	require.Len(t, basket.Items, 2)
	for _, item := range basket.Items {
		if item.ProductInfo.ID == first {
			assert.Equal(t, 1, item.Quantity, "the existing row is untouched")
		}
	}
}

func TestBasketService_AddItemsRejections(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	closed := f.db.SeedShop(t, "closed", false, 100)

	tests := []struct {
		name string
		item BasketItemInput
		want error
	}{
		{name: "unknown product", item: BasketItemInput{ProductInfoID: uuid.New(), Quantity: 1}, want: shared.ErrNotFound},
		{name: "negative quantity", item: BasketItemInput{ProductInfoID: closed.Listings[0].ID, Quantity: -1}, want: shared.ErrValidation},
		{name: "shop not accepting orders", item: BasketItemInput{ProductInfoID: closed.Listings[0].ID, Quantity: 1}, want: shared.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.baskets.AddItems(ctx, f.caller(), []BasketItemInput{tt.item})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := f.baskets.AddItems(ctx, f.caller(), nil)
	assert.ErrorIs(t, err, shared.ErrValidation)
	_, err = f.baskets.AddItems(ctx, identity.Anonymous(), []BasketItemInput{{ProductInfoID: closed.Listings[0].ID}})
	assert.ErrorIs(t, err, shared.ErrNotAuthenticated)

	_, err = f.baskets.Get(ctx, f.caller())
	assert.ErrorIs(t, err, shared.ErrNotFound, "a failed add leaves no basket behind")
}

func TestBasketService_UpdateAndRemove(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	shop := f.db.SeedShop(t, "euroset", true, 100, 50)

	_, err := f.baskets.AddItems(ctx, f.caller(), []BasketItemInput{
		{ProductInfoID: shop.Listings[0].ID, Quantity: 1},
		{ProductInfoID: shop.Listings[1].ID, Quantity: 1},
	})
	require.NoError(t, err)
	basket, err := f.baskets.Get(ctx, f.caller())
	require.NoError(t, err)
	itemID := basket.Items[0].ID

	update := []ItemQuantityInput{{ID: itemID, Quantity: 4}, {ID: uuid.New(), Quantity: 4}}
	first, err := f.baskets.UpdateItems(ctx, f.caller(), update)
	require.NoError(t, err)
	second, err := f.baskets.UpdateItems(ctx, f.caller(), update)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, first, second, "updating to the same value counts the same rows")

	_, err = f.baskets.UpdateItems(ctx, f.caller(), []ItemQuantityInput{{ID: itemID, Quantity: -2}})
	assert.ErrorIs(t, err, shared.ErrValidation)

	other := f.db.CreateUser(t, "other@example.com", identity.RoleBuyer)
	n, err := f.baskets.UpdateItems(ctx, testutil.CallerOf(other), []ItemQuantityInput{{ID: itemID, Quantity: 9}})
	require.NoError(t, err)
	assert.Zero(t, n, "another user's items are out of reach")
	n, err = f.baskets.RemoveItems(ctx, testutil.CallerOf(other), []uuid.UUID{itemID})
	require.NoError(t, err)
	assert.Zero(t, n)

	removed, err := f.baskets.RemoveItems(ctx, f.caller(), []uuid.UUID{itemID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = f.baskets.RemoveItems(ctx, f.caller(), []uuid.UUID{itemID})
	require.NoError(t, err)
	assert.Zero(t, removed, "deleting a missing id removes nothing")

	basket, err = f.baskets.Get(ctx, f.caller())
	require.NoError(t, err)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, "50", basket.TotalSum.String())
}
