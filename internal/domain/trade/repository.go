package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence.
// Methods that return orders "with items" populate OrderItem.Product.
type OrderRepository interface {
	// FindBasket returns the user's basket with items
	FindBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// GetOrCreateBasket returns the user's basket, creating it when absent.
	// A concurrent creation that loses the unique index race re-fetches the
	// winner's basket instead of failing.
	GetOrCreateBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// FindByID returns an order with items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUser returns the order only when it belongs to the user
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)

	// FindByUser lists all of the user's orders, basket included, with items
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindByShop lists placed orders containing listings of the shop, with items
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]Order, error)

	// Update persists status and contact
	Update(ctx context.Context, order *Order) error

	// AddItem stores a new line; an existing (order, product) pair yields DuplicateEntity
	AddItem(ctx context.Context, item *OrderItem) error

	// UpdateItemQuantity updates the item when it belongs to the order and
	// returns the number of rows changed
	UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (int64, error)

	// DeleteItem deletes the item when it belongs to the order and returns
	// the number of rows removed
	DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) (int64, error)
}
