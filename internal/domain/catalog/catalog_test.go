package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoolLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"Y", true},
		{"on", true},
		{" t ", true},
		{"false", false},
		{"0", false},
		{"No", false},
		{"off", false},
		{"F", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolLiteral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "2", "maybe", "truthy"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseBoolLiteral(bad)
			assert.True(t, errors.Is(err, shared.ErrInvalidBooleanLiteral))
		})
	}
}

func TestShop(t *testing.T) {
	owner := uuid.New()

	t.Run("new shop accepts orders", func(t *testing.T) {
		shop, err := NewShop(owner, " Svyaznoy ", "http://www.svyaznoy.ru")
		require.NoError(t, err)
		assert.True(t, shop.Status)
		assert.Equal(t, "Svyaznoy", shop.Name)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := NewShop(owner, "  ", "")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("status toggles", func(t *testing.T) {
		shop, err := NewShop(owner, "Svyaznoy", "")
		require.NoError(t, err)
		shop.SetStatus(false)
		assert.False(t, shop.Status)
	})
}

func TestNewProductInfo(t *testing.T) {
	_, err := NewProductInfo(uuid.New(), uuid.New(), 1, "m", decimal.NewFromInt(-1), decimal.Zero, 1)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewProductInfo(uuid.New(), uuid.New(), 1, "m", decimal.Zero, decimal.Zero, -1)
	assert.ErrorIs(t, err, shared.ErrValidation)

	info, err := NewProductInfo(uuid.New(), uuid.New(), 4216292, "apple/iphone/xs-max", decimal.NewFromInt(110000), decimal.NewFromInt(116990), 14)
	require.NoError(t, err)
	assert.Equal(t, int64(4216292), info.ExternalID)
	assert.Equal(t, 14, info.Quantity)
}

func TestFeed_Validate(t *testing.T) {
	valid := func() *Feed {
		return &Feed{
			Shop:       FeedShop{Name: "Svyaznoy"},
			Categories: []FeedCategory{{ID: 224, Name: "Smartphones"}},
			Goods: []FeedGoods{{
				ID: 1, Name: "iPhone", Category: 224,
				Price: decimal.NewFromInt(100), PriceRRC: decimal.NewFromInt(120), Quantity: 3,
				Parameters: []FeedParameter{{Name: "Color", Value: "black"}},
			}},
		}
	}

	require.NoError(t, valid().Validate())

	noShop := valid()
	noShop.Shop.Name = ""
	assert.ErrorIs(t, noShop.Validate(), shared.ErrValidation)

	negative := valid()
	negative.Goods[0].Quantity = -5
	assert.ErrorIs(t, negative.Validate(), shared.ErrValidation)

	f := valid()
	assert.Equal(t, "Smartphones", f.CategoryNames()[224])
	assert.Equal(t, 1, f.ParameterCount())
}
