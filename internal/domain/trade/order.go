package trade

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusBasket     OrderStatus = "basket"
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusSent       OrderStatus = "sent"
	OrderStatusDone       OrderStatus = "done"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// progression lists the forward chain; canceled sits outside it
var progression = []OrderStatus{
	OrderStatusBasket,
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusConfirmed,
	OrderStatusSent,
	OrderStatusDone,
}

// IsValid checks if the status is one of the closed set
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusCanceled || s.rank() >= 0
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDone || s == OrderStatusCanceled
}

func (s OrderStatus) rank() int {
	for i, st := range progression {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransitionTo checks if the status can transition to the target status.
// Orders move forward along the chain (skipping steps is allowed) and can be
// canceled from any non-terminal state. Leaving basket is reserved for Place.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() || !target.IsValid() {
		return false
	}
	if target == OrderStatusCanceled {
		return true
	}
	if s == OrderStatusBasket {
		return target == OrderStatusNew
	}
	return target.rank() > s.rank()
}

// ParseOrderStatus parses a status value against the closed set
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidStatus, fmt.Sprintf("%q is not a valid order status", raw))
	}
	return s, nil
}

// Order belongs to one user. While its status is basket it is that user's
// cart; at most one basket exists per user.
type Order struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID
	Status    OrderStatus
	ContactID *uuid.UUID
	Items     []OrderItem
}

// OrderItem is one product line of an order
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductInfoID uuid.UUID
	Quantity      int
	// Product is populated by read queries
	Product *catalog.Listing
}

// Subtotal returns quantity × price, or zero when the product is not loaded
func (i OrderItem) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewBasket creates an empty basket for the user
func NewBasket(userID uuid.UUID) *Order {
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusBasket,
		Items:             make([]OrderItem, 0),
	}
}

// IsBasket reports whether the order is still a cart
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}

// NewItem builds a line for the product. Items can only be added while the
// order is a basket.
func (o *Order) NewItem(productInfoID uuid.UUID, quantity int) (*OrderItem, error) {
	if !o.IsBasket() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot add items to an order in %s status", o.Status))
	}
	if productInfoID == uuid.Nil {
		return nil, shared.NewValidationError("product_info", "Product is required")
	}
	if quantity < 0 {
		return nil, shared.NewValidationError("quantity", "Quantity cannot be negative")
	}
	for _, item := range o.Items {
		if item.ProductInfoID == productInfoID {
			return nil, shared.NewDomainError(shared.CodeDuplicateEntity, "Product is already in the basket")
		}
	}
	return &OrderItem{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
	}, nil
}

// Place turns the basket into a new order delivered to the given contact
func (o *Order) Place(contactID uuid.UUID) error {
	if !o.IsBasket() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot place an order in %s status", o.Status))
	}
	if contactID == uuid.Nil {
		return shared.NewValidationError("contact", "Contact is required")
	}
	if len(o.Items) == 0 {
		return shared.NewValidationError("items", "Cannot place an order without items")
	}

	id := contactID
	o.ContactID = &id
	o.setStatus(OrderStatusNew)
	return nil
}

// ChangeStatus moves the order to target. It reports whether the status
// actually changed; setting the current status again is a no-op.
func (o *Order) ChangeStatus(target OrderStatus) (bool, error) {
	if !target.IsValid() {
		return false, shared.NewDomainError(shared.CodeInvalidStatus, fmt.Sprintf("%q is not a valid order status", target))
	}
	if target == OrderStatusBasket {
		return false, shared.NewDomainError(shared.CodeInvalidStatus, "An order cannot be returned to the basket")
	}
	if target == o.Status {
		return false, nil
	}
	if o.IsBasket() {
		return false, shared.NewDomainError(shared.CodeInvalidState, "A basket must be placed before its status can change")
	}
	if !o.Status.CanTransitionTo(target) {
		return false, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}
	o.setStatus(target)
	return true, nil
}

func (o *Order) setStatus(target OrderStatus) {
	previous := o.Status
	o.Status = target
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
}

// TotalSum returns Σ quantity × price over the items
func (o *Order) TotalSum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ContainsShop reports whether any item is sold by the shop
func (o *Order) ContainsShop(shopID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.Product != nil && item.Product.ShopID == shopID {
			return true
		}
	}
	return false
}
