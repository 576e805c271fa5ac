package catalog

import (
	"context"

	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/feed"
)

var errNoSeed = shared.NewDomainError(shared.CodeNotFound, "No seed catalog is configured")

// SeedCatalogService serves the local seed catalog file. The file is read on
// every call and never written to the database.
type SeedCatalogService struct {
	path    string
	maxSize int64
}

// NewSeedCatalogService creates a service over the seed file at path
func NewSeedCatalogService(path string, maxSize int64) *SeedCatalogService {
	return &SeedCatalogService{path: path, maxSize: maxSize}
}

func (s *SeedCatalogService) load(_ context.Context) (*catalog.Feed, error) {
	if s.path == "" {
		return nil, errNoSeed
	}
	data, err := feed.ReadSeed(s.path, s.maxSize)
	if err != nil {
		return nil, err
	}
	return feed.Parse(data)
}

// Shops lists the shop of the seed file
func (s *SeedCatalogService) Shops(ctx context.Context) ([]SeedShopResponse, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return []SeedShopResponse{{Name: doc.Shop.Name, URL: doc.Shop.URL}}, nil
}

// Categories lists the categories of the seed file
func (s *SeedCatalogService) Categories(ctx context.Context) ([]SeedCategoryResponse, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SeedCategoryResponse, len(doc.Categories))
	for i, c := range doc.Categories {
		out[i] = SeedCategoryResponse{ID: c.ID, Name: c.Name}
	}
	return out, nil
}

// Goods lists the goods of the seed file
func (s *SeedCatalogService) Goods(ctx context.Context) ([]SeedGoodsResponse, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SeedGoodsResponse, len(doc.Goods))
	for i, g := range doc.Goods {
		params := make([]ParameterResponse, len(g.Parameters))
		for j, p := range g.Parameters {
			params[j] = ParameterResponse{Name: p.Name, Value: p.Value}
		}
		out[i] = SeedGoodsResponse{
			ID:         g.ID,
			Name:       g.Name,
			Category:   g.Category,
			Model:      g.Model,
			Price:      g.Price,
			PriceRRC:   g.PriceRRC,
			Quantity:   g.Quantity,
			Parameters: params,
		}
	}
	return out, nil
}
