package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductInfo is a shop-specific sellable listing of a goods item
type ProductInfo struct {
	shared.BaseEntity
	GoodsID    uuid.UUID
	ShopID     uuid.UUID
	ExternalID int64
	Model      string
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Quantity   int
}

// NewProductInfo creates a listing
func NewProductInfo(goodsID, shopID uuid.UUID, externalID int64, model string, price, priceRRC decimal.Decimal, quantity int) (*ProductInfo, error) {
	if price.IsNegative() {
		return nil, shared.NewValidationError("goods.price", "Price cannot be negative")
	}
	if priceRRC.IsNegative() {
		return nil, shared.NewValidationError("goods.price_rrc", "Recommended price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewValidationError("goods.quantity", "Quantity cannot be negative")
	}
	return &ProductInfo{
		BaseEntity: shared.NewBaseEntity(),
		GoodsID:    goodsID,
		ShopID:     shopID,
		ExternalID: externalID,
		Model:      strings.TrimSpace(model),
		Price:      price,
		PriceRRC:   priceRRC,
		Quantity:   quantity,
	}, nil
}

// Parameter is a named attribute such as "color" or "screen size"
type Parameter struct {
	ID   uuid.UUID
	Name string
}

// NewParameter creates a parameter
func NewParameter(name string) (*Parameter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("goods.parameters", "Parameter name is required")
	}
	return &Parameter{ID: uuid.New(), Name: name}, nil
}

// ProductParameter is the value of a parameter on one listing
type ProductParameter struct {
	ID            uuid.UUID
	ProductInfoID uuid.UUID
	ParameterID   uuid.UUID
	Value         string
}

// NewProductParameter creates a parameter value for a listing
func NewProductParameter(productInfoID, parameterID uuid.UUID, value string) *ProductParameter {
	return &ProductParameter{
		ID:            uuid.New(),
		ProductInfoID: productInfoID,
		ParameterID:   parameterID,
		Value:         value,
	}
}
