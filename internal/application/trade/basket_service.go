package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/domain/trade"
	"go.uber.org/zap"
)

var (
	errNoItems      = shared.NewValidationError("items", "No items were provided")
	errShopInactive = shared.NewValidationError("product_info", "The shop is not accepting orders")
	errNoBasket     = shared.NewDomainError(shared.CodeNotFound, "Basket not found")
)

// BasketService manages the caller's basket
type BasketService struct {
	tx     shared.Transactor
	orders trade.OrderRepository
	infos  catalog.ProductInfoRepository
	logger *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(tx shared.Transactor, orders trade.OrderRepository, infos catalog.ProductInfoRepository, logger *zap.Logger) *BasketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BasketService{tx: tx, orders: orders, infos: infos, logger: logger}
}

// Get returns the caller's basket
func (s *BasketService) Get(ctx context.Context, caller identity.Caller) (*OrderView, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	basket, err := s.orders.FindBasket(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errNoBasket
		}
		return nil, err
	}
	view := ToOrderView(basket)
	return &view, nil
}

// AddItems puts products into the caller's basket, creating the basket on
// first use. Every item is added on its own so that one bad item does not
// spoil the rest; the call fails only when no item could be added, and then
// returns the first item's error.
func (s *BasketService) AddItems(ctx context.Context, caller identity.Caller, items []BasketItemInput) (*AddItemsResult, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errNoItems
	}

	var result AddItemsResult
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		result = AddItemsResult{}
		basket, err := s.orders.GetOrCreateBasket(ctx, caller.UserID)
		if err != nil {
			return err
		}

		var firstErr error
		for i, in := range items {
			err := s.tx.Transaction(ctx, func(ctx context.Context) error {
				return s.addItem(ctx, basket, in)
			})
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				result.Failures = append(result.Failures, itemFailure(i, in.ProductInfoID, err))
				continue
			}
			result.Created++
		}
		if result.Created == 0 {
			return firstErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Basket items added",
		zap.String("user_id", caller.UserID.String()),
		zap.Int("created", result.Created),
		zap.Int("failed", len(result.Failures)),
	)
	return &result, nil
}

func (s *BasketService) addItem(ctx context.Context, basket *trade.Order, in BasketItemInput) error {
	if in.Quantity < 0 {
		return shared.NewValidationError("quantity", "Quantity cannot be negative")
	}
	listing, err := s.infos.FindListing(ctx, in.ProductInfoID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return err
	}
	if !listing.ShopStatus {
		return errShopInactive
	}
	item, err := basket.NewItem(listing.ID, in.Quantity)
	if err != nil {
		return err
	}
	if err := s.orders.AddItem(ctx, item); err != nil {
		return err
	}
	item.Product = listing
	basket.Items = append(basket.Items, *item)
	return nil
}

func itemFailure(index int, productInfoID uuid.UUID, err error) ItemFailure {
	failure := ItemFailure{Index: index, ProductInfoID: productInfoID, Code: "INTERNAL_ERROR", Message: err.Error()}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		failure.Code = domainErr.Code
	}
	return failure
}

// UpdateItems sets quantities of items in the caller's basket and returns
// how many rows were updated. Ids outside the basket are skipped.
func (s *BasketService) UpdateItems(ctx context.Context, caller identity.Caller, items []ItemQuantityInput) (int64, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, errNoItems
	}
	for _, in := range items {
		if in.Quantity < 0 {
			return 0, shared.NewValidationError("quantity", "Quantity cannot be negative")
		}
	}

	var updated int64
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		updated = 0
		basket, err := s.orders.FindBasket(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		for _, in := range items {
			n, err := s.orders.UpdateItemQuantity(ctx, basket.ID, in.ID, in.Quantity)
			if err != nil {
				return err
			}
			updated += n
		}
		return nil
	})
	return updated, err
}

// RemoveItems deletes items from the caller's basket and returns how many
// were removed. Missing ids count zero.
func (s *BasketService) RemoveItems(ctx context.Context, caller identity.Caller, ids []uuid.UUID) (int64, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, errNoItems
	}

	var removed int64
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		removed = 0
		basket, err := s.orders.FindBasket(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		for _, id := range ids {
			n, err := s.orders.DeleteItem(ctx, basket.ID, id)
			if err != nil {
				return err
			}
			removed += n
		}
		return nil
	})
	return removed, err
}
