package catalog

import (
	"context"

	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// ShopService lets a shop owner read and switch order acceptance
type ShopService struct {
	shops  catalog.ShopRepository
	logger *zap.Logger
}

// NewShopService creates a new ShopService
func NewShopService(shops catalog.ShopRepository, logger *zap.Logger) *ShopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{shops: shops, logger: logger}
}

// GetStatus returns the caller's shop
func (s *ShopService) GetStatus(ctx context.Context, caller identity.Caller) (*ShopResponse, error) {
	if err := caller.RequireShop(); err != nil {
		return nil, err
	}
	shop, err := s.shops.FindByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	resp := ToShopResponse(shop)
	return &resp, nil
}

// SetStatus switches order acceptance from a boolean literal such as "on"
// or "0". An unrecognised literal leaves the shop untouched.
func (s *ShopService) SetStatus(ctx context.Context, caller identity.Caller, raw string) (*ShopResponse, error) {
	if err := caller.RequireShop(); err != nil {
		return nil, err
	}
	accepting, err := catalog.ParseBoolLiteral(raw)
	if err != nil {
		return nil, err
	}
	shop, err := s.shops.FindByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if shop.Status != accepting {
		shop.SetStatus(accepting)
		if err := s.shops.Update(ctx, shop); err != nil {
			return nil, err
		}
		s.logger.Info("Shop status changed", zap.String("shop_id", shop.ID.String()), zap.Bool("status", accepting))
	}
	resp := ToShopResponse(shop)
	return &resp, nil
}
