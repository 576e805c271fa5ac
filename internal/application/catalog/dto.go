package catalog

import (
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ShopResponse is the public view of a shop
type ShopResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	URL    string    `json:"url,omitempty"`
	Status bool      `json:"status"`
}

// ToShopResponse converts a domain shop
func ToShopResponse(s *catalog.Shop) ShopResponse {
	return ShopResponse{ID: s.ID, Name: s.Name, URL: s.URL, Status: s.Status}
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID int64     `json:"external_id"`
	Name       string    `json:"name"`
}

// ParameterResponse is one flattened parameter of a listing
type ParameterResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductResponse names the goods a listing sells
type ProductResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// ListingShopResponse is the shop part of a listing
type ListingShopResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListingResponse is the public view of a product info with the goods,
// category, shop and parameters nested in
type ListingResponse struct {
	ID         uuid.UUID           `json:"id"`
	ExternalID int64               `json:"external_id"`
	Model      string              `json:"model"`
	Product    ProductResponse     `json:"product"`
	Shop       ListingShopResponse `json:"shop"`
	Price      decimal.Decimal     `json:"price"`
	PriceRRC   decimal.Decimal     `json:"price_rrc"`
	Quantity   int                 `json:"quantity"`
	Parameters []ParameterResponse `json:"product_parameters"`
}

// ToListingResponse converts a listing read model
func ToListingResponse(l *catalog.Listing) ListingResponse {
	params := make([]ParameterResponse, len(l.Parameters))
	for i, p := range l.Parameters {
		params[i] = ParameterResponse{Name: p.Name, Value: p.Value}
	}
	return ListingResponse{
		ID:         l.ID,
		ExternalID: l.ExternalID,
		Model:      l.Model,
		Product:    ProductResponse{ID: l.GoodsID, Name: l.GoodsName, Category: l.CategoryName},
		Shop:       ListingShopResponse{ID: l.ShopID, Name: l.ShopName},
		Price:      l.Price,
		PriceRRC:   l.PriceRRC,
		Quantity:   l.Quantity,
		Parameters: params,
	}
}

// SeedShopResponse is the shop of the seed catalog
type SeedShopResponse struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// SeedCategoryResponse is a category of the seed catalog
type SeedCategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SeedGoodsResponse is a goods entry of the seed catalog
type SeedGoodsResponse struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Category   int64               `json:"category"`
	Model      string              `json:"model"`
	Price      decimal.Decimal     `json:"price"`
	PriceRRC   decimal.Decimal     `json:"price_rrc"`
	Quantity   int                 `json:"quantity"`
	Parameters []ParameterResponse `json:"parameters"`
}
