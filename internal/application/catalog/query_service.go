package catalog

import (
	"context"

	"github.com/shopfeed/backend/internal/domain/catalog"
)

// CatalogQueryService serves the public catalog
type CatalogQueryService struct {
	shops      catalog.ShopRepository
	categories catalog.CategoryRepository
	infos      catalog.ProductInfoRepository
}

// NewCatalogQueryService creates a new CatalogQueryService
func NewCatalogQueryService(shops catalog.ShopRepository, categories catalog.CategoryRepository, infos catalog.ProductInfoRepository) *CatalogQueryService {
	return &CatalogQueryService{shops: shops, categories: categories, infos: infos}
}

// ListShops returns the shops currently accepting orders
func (s *CatalogQueryService) ListShops(ctx context.Context) ([]ShopResponse, error) {
	shops, err := s.shops.FindAccepting(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ShopResponse, len(shops))
	for i := range shops {
		out[i] = ToShopResponse(&shops[i])
	}
	return out, nil
}

// ListCategories returns every category
func (s *CatalogQueryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, ExternalID: c.ExternalID, Name: c.Name}
	}
	return out, nil
}

// ListListings returns the distinct listings of accepting shops, optionally
// narrowed to one shop and/or one category
func (s *CatalogQueryService) ListListings(ctx context.Context, filter catalog.ListingFilter) ([]ListingResponse, error) {
	listings, err := s.infos.FindListings(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ListingResponse, len(listings))
	for i := range listings {
		out[i] = ToListingResponse(&listings[i])
	}
	return out, nil
}
