package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
)

// Shop is a seller storefront owned by exactly one shop-role user
type Shop struct {
	shared.BaseEntity
	UserID uuid.UUID
	Name   string
	URL    string
	// Status is true while the shop accepts orders
	Status bool
}

// NewShop creates a shop accepting orders
func NewShop(ownerID uuid.UUID, name, url string) (*Shop, error) {
	s := &Shop{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     ownerID,
		Status:     true,
	}
	if err := s.Describe(name, url); err != nil {
		return nil, err
	}
	return s, nil
}

// Describe sets name and source url
func (s *Shop) Describe(name, url string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("shop.name", "Shop name is required")
	}
	if len(name) > 50 {
		return shared.NewValidationError("shop.name", "Shop name cannot exceed 50 characters")
	}
	s.Name = name
	s.URL = strings.TrimSpace(url)
	s.Touch()
	return nil
}

// SetStatus switches order acceptance on or off
func (s *Shop) SetStatus(accepting bool) {
	s.Status = accepting
	s.Touch()
}
