package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SectionKind names one part of a feed
type SectionKind string

const (
	ShopSection      SectionKind = "shop"
	CategorySection  SectionKind = "categories"
	GoodsSection     SectionKind = "goods"
	ParameterSection SectionKind = "parameters"
)

// SectionHandler writes one section of a feed. Handlers run in order inside
// the import transaction and pass what they stored on through ImportState.
type SectionHandler interface {
	Kind() SectionKind
	Apply(ctx context.Context, state *ImportState) error
}

// ImportState is shared by the handlers of one import
type ImportState struct {
	Owner   identity.Caller
	FeedURL string
	Feed    *catalog.Feed

	Shop       *catalog.Shop
	Categories map[int64]*catalog.Category
	Listings   []ImportedListing

	Result *ImportResult
}

// ImportedListing is a freshly created listing with the parameters its feed
// entry carried
type ImportedListing struct {
	Info       *catalog.ProductInfo
	Parameters []catalog.FeedParameter
}

func newImportState(owner identity.Caller, feedURL string, doc *catalog.Feed) *ImportState {
	return &ImportState{
		Owner:      owner,
		FeedURL:    feedURL,
		Feed:       doc,
		Categories: make(map[int64]*catalog.Category, len(doc.Categories)),
		Result:     &ImportResult{},
	}
}

type shopSection struct {
	shops catalog.ShopRepository
}

func (s *shopSection) Kind() SectionKind { return ShopSection }

// Apply creates the owner's shop or renames it. A feed without its own url
// keeps the url it was imported from so that refreshes can find it again.
func (s *shopSection) Apply(ctx context.Context, state *ImportState) error {
	shopURL := state.Feed.Shop.URL
	if shopURL == "" {
		shopURL = state.FeedURL
	}

	shop, err := s.shops.FindByOwner(ctx, state.Owner.UserID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		shop, err = catalog.NewShop(state.Owner.UserID, state.Feed.Shop.Name, shopURL)
		if err != nil {
			return err
		}
		if err := s.shops.Create(ctx, shop); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := shop.Describe(state.Feed.Shop.Name, shopURL); err != nil {
			return err
		}
		if err := s.shops.Update(ctx, shop); err != nil {
			return err
		}
	}

	state.Shop = shop
	state.Result.ShopID = shop.ID
	return nil
}

type categorySection struct {
	categories catalog.CategoryRepository
}

func (s *categorySection) Kind() SectionKind { return CategorySection }

func (s *categorySection) Apply(ctx context.Context, state *ImportState) error {
	for _, fc := range state.Feed.Categories {
		category, err := s.categories.GetOrCreate(ctx, fc.ID, fc.Name)
		if err != nil {
			return err
		}
		if err := s.categories.LinkShop(ctx, category.ID, state.Shop.ID); err != nil {
			return err
		}
		state.Categories[fc.ID] = category
	}
	state.Result.Categories = len(state.Categories)
	return nil
}

type goodsSection struct {
	categories catalog.CategoryRepository
	goods      catalog.GoodsRepository
	infos      catalog.ProductInfoRepository
	logger     *zap.Logger
}

func (s *goodsSection) Kind() SectionKind { return GoodsSection }

// Apply drops every listing of the shop and recreates them from the feed
func (s *goodsSection) Apply(ctx context.Context, state *ImportState) error {
	deleted, err := s.infos.DeleteByShop(ctx, state.Shop.ID)
	if err != nil {
		return err
	}
	s.logger.Debug("Removed previous listings", zap.String("shop_id", state.Shop.ID.String()), zap.Int64("count", deleted))

	seenGoods := make(map[uuid.UUID]struct{}, len(state.Feed.Goods))
	for idx, item := range state.Feed.Goods {
		category, err := s.category(ctx, state, item.Category)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewValidationError(fmt.Sprintf("goods[%d].category", idx),
					fmt.Sprintf("Unknown category %d", item.Category))
			}
			return err
		}

		goods, err := s.goods.GetOrCreate(ctx, category.ID, item.Name)
		if err != nil {
			return err
		}
		seenGoods[goods.ID] = struct{}{}

		info, err := catalog.NewProductInfo(goods.ID, state.Shop.ID, item.ID, item.Model, item.Price, item.PriceRRC, item.Quantity)
		if err != nil {
			return err
		}
		if err := s.infos.Create(ctx, info); err != nil {
			return err
		}
		state.Listings = append(state.Listings, ImportedListing{Info: info, Parameters: item.Parameters})
	}

	state.Result.Goods = len(seenGoods)
	state.Result.ProductInfos = len(state.Listings)
	return nil
}

// category resolves a feed category id, first among the categories of this
// feed and then among those already stored
func (s *goodsSection) category(ctx context.Context, state *ImportState, externalID int64) (*catalog.Category, error) {
	if c, ok := state.Categories[externalID]; ok {
		return c, nil
	}
	c, err := s.categories.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.categories.LinkShop(ctx, c.ID, state.Shop.ID); err != nil {
		return nil, err
	}
	state.Categories[externalID] = c
	return c, nil
}

type parameterSection struct {
	parameters catalog.ParameterRepository
}

func (s *parameterSection) Kind() SectionKind { return ParameterSection }

func (s *parameterSection) Apply(ctx context.Context, state *ImportState) error {
	byName := make(map[string]*catalog.Parameter)
	count := 0
	for _, listing := range state.Listings {
		for _, fp := range listing.Parameters {
			param, ok := byName[fp.Name]
			if !ok {
				var err error
				param, err = s.parameters.GetOrCreate(ctx, fp.Name)
				if err != nil {
					return err
				}
				byName[fp.Name] = param
			}
			if err := s.parameters.AddValue(ctx, catalog.NewProductParameter(listing.Info.ID, param.ID, fp.Value)); err != nil {
				return err
			}
			count++
		}
	}
	state.Result.Parameters = count
	return nil
}
