package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
)

// Category groups goods. A category can be offered by several shops and is
// identified by the feed-supplied external id together with its name.
type Category struct {
	shared.BaseEntity
	ExternalID int64
	Name       string
}

// NewCategory creates a category
func NewCategory(externalID int64, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("categories.name", "Category name is required")
	}
	if len(name) > 40 {
		return nil, shared.NewValidationError("categories.name", "Category name cannot exceed 40 characters")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		ExternalID: externalID,
		Name:       name,
	}, nil
}

// Goods is a product definition belonging to one category.
// Goods are identified by (category, name).
type Goods struct {
	shared.BaseEntity
	CategoryID uuid.UUID
	Name       string
}

// NewGoods creates a goods definition
func NewGoods(categoryID uuid.UUID, name string) (*Goods, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("goods.name", "Goods name is required")
	}
	if len(name) > 80 {
		return nil, shared.NewValidationError("goods.name", "Goods name cannot exceed 80 characters")
	}
	return &Goods{
		BaseEntity: shared.NewBaseEntity(),
		CategoryID: categoryID,
		Name:       name,
	}, nil
}
