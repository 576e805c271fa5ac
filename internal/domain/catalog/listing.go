package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParameterValue is a flattened parameter of a listing
type ParameterValue struct {
	Name  string
	Value string
}

// Listing is the read model of a ProductInfo joined with its goods, category,
// shop and parameters
type Listing struct {
	ID           uuid.UUID
	ExternalID   int64
	Model        string
	Price        decimal.Decimal
	PriceRRC     decimal.Decimal
	Quantity     int
	GoodsID      uuid.UUID
	GoodsName    string
	CategoryID   uuid.UUID
	CategoryName string
	ShopID       uuid.UUID
	ShopName     string
	ShopOwnerID  uuid.UUID
	ShopStatus   bool
	Parameters   []ParameterValue
}

// ListingFilter narrows the catalog view. Nil fields do not filter.
type ListingFilter struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}
