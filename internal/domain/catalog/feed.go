package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/shopfeed/backend/internal/domain/shared"
)

// Feed is a shop's complete catalog as published by the shop
type Feed struct {
	Shop       FeedShop
	Categories []FeedCategory
	Goods      []FeedGoods
}

// FeedShop describes the publishing shop
type FeedShop struct {
	Name string
	URL  string
}

// FeedCategory is a category entry of a feed
type FeedCategory struct {
	ID   int64
	Name string
}

// FeedGoods is a goods entry of a feed
type FeedGoods struct {
	ID         int64
	Name       string
	Category   int64
	Model      string
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Quantity   int
	Parameters []FeedParameter
}

// FeedParameter is one key/value of a goods parameter map, in document order
type FeedParameter struct {
	Name  string
	Value string
}

// Validate checks the structural rules a feed must satisfy before any of it
// is written
func (f *Feed) Validate() error {
	if strings.TrimSpace(f.Shop.Name) == "" {
		return shared.NewValidationError("shop.name", "Feed does not name a shop")
	}
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return shared.NewValidationError(fmt.Sprintf("categories[%d].name", i), "Category name is required")
		}
	}
	for i, g := range f.Goods {
		field := fmt.Sprintf("goods[%d]", i)
		if strings.TrimSpace(g.Name) == "" {
			return shared.NewValidationError(field+".name", "Goods name is required")
		}
		if g.Price.IsNegative() || g.PriceRRC.IsNegative() {
			return shared.NewValidationError(field+".price", "Price cannot be negative")
		}
		if g.Quantity < 0 {
			return shared.NewValidationError(field+".quantity", "Quantity cannot be negative")
		}
	}
	return nil
}

// CategoryNames indexes the feed categories by external id
func (f *Feed) CategoryNames() map[int64]string {
	names := make(map[int64]string, len(f.Categories))
	for _, c := range f.Categories {
		names[c.ID] = c.Name
	}
	return names
}

// ParameterCount returns the number of parameter values across all goods
func (f *Feed) ParameterCount() int {
	n := 0
	for _, g := range f.Goods {
		n += len(g.Parameters)
	}
	return n
}
