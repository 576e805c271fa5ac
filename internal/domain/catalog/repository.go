package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	Create(ctx context.Context, shop *Shop) error
	Update(ctx context.Context, shop *Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	// FindByOwner returns the shop owned by the given user
	FindByOwner(ctx context.Context, userID uuid.UUID) (*Shop, error)
	// FindAccepting lists shops whose status is true
	FindAccepting(ctx context.Context) ([]Shop, error)
	// FindWithURL lists shops that have a stored feed url
	FindWithURL(ctx context.Context) ([]Shop, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// GetOrCreate finds a category by (external id, name) or creates it
	GetOrCreate(ctx context.Context, externalID int64, name string) (*Category, error)
	// FindByExternalID returns the first category carrying the external id
	FindByExternalID(ctx context.Context, externalID int64) (*Category, error)
	// LinkShop associates a category with a shop; linking twice is a no-op
	LinkShop(ctx context.Context, categoryID, shopID uuid.UUID) error
	FindAll(ctx context.Context) ([]Category, error)
}

// GoodsRepository defines the interface for goods persistence
type GoodsRepository interface {
	// GetOrCreate finds goods by (category, name) or creates them
	GetOrCreate(ctx context.Context, categoryID uuid.UUID, name string) (*Goods, error)
}

// ProductInfoRepository defines the interface for listing persistence
type ProductInfoRepository interface {
	Create(ctx context.Context, info *ProductInfo) error
	// DeleteByShop removes every listing of the shop together with its
	// parameter values and the order items that reference it
	DeleteByShop(ctx context.Context, shopID uuid.UUID) (int64, error)
	CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error)
	// FindListing loads one listing with its joined read model
	FindListing(ctx context.Context, id uuid.UUID) (*Listing, error)
	// FindListings returns distinct listings of accepting shops matching the filter
	FindListings(ctx context.Context, filter ListingFilter) ([]Listing, error)
}

// ParameterRepository defines the interface for parameter persistence
type ParameterRepository interface {
	// GetOrCreate finds a parameter by name or creates it
	GetOrCreate(ctx context.Context, name string) (*Parameter, error)
	// AddValue stores a parameter value for a listing
	AddValue(ctx context.Context, value *ProductParameter) error
}
