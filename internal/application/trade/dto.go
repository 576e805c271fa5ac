package trade

import (
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/shopfeed/backend/internal/application/catalog"
	"github.com/shopfeed/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// BasketItemInput is one product to put into the basket
type BasketItemInput struct {
	ProductInfoID uuid.UUID
	Quantity      int
}

// ItemQuantityInput sets the quantity of an existing basket item
type ItemQuantityInput struct {
	ID       uuid.UUID
	Quantity int
}

// ItemFailure explains why one requested item was not added
type ItemFailure struct {
	Index         int       `json:"index"`
	ProductInfoID uuid.UUID `json:"product_info"`
	Code          string    `json:"code"`
	Message       string    `json:"message"`
}

// AddItemsResult reports how many items were created and which were not
type AddItemsResult struct {
	Created  int           `json:"created"`
	Failures []ItemFailure `json:"failures,omitempty"`
}

// ItemView is an order line with its listing nested in
type ItemView struct {
	ID          uuid.UUID                   `json:"id"`
	Quantity    int                         `json:"quantity"`
	ProductInfo *catalogapp.ListingResponse `json:"product_info,omitempty"`
	Subtotal    decimal.Decimal             `json:"subtotal"`
}

// OrderView is an order or basket with its items and total
type OrderView struct {
	ID        uuid.UUID         `json:"id"`
	Status    trade.OrderStatus `json:"status"`
	ContactID *uuid.UUID        `json:"contact,omitempty"`
	CreatedAt time.Time         `json:"dt"`
	Items     []ItemView        `json:"ordered_items"`
	TotalSum  decimal.Decimal   `json:"total_sum"`
}

// ToOrderView converts an order loaded with its items
func ToOrderView(o *trade.Order) OrderView {
	items := make([]ItemView, len(o.Items))
	for i, item := range o.Items {
		view := ItemView{ID: item.ID, Quantity: item.Quantity, Subtotal: item.Subtotal()}
		if item.Product != nil {
			listing := catalogapp.ToListingResponse(item.Product)
			view.ProductInfo = &listing
		}
		items[i] = view
	}
	return OrderView{
		ID:        o.ID,
		Status:    o.Status,
		ContactID: o.ContactID,
		CreatedAt: o.CreatedAt,
		Items:     items,
		TotalSum:  o.TotalSum(),
	}
}

// ToOrderViews converts a list of orders
func ToOrderViews(orders []trade.Order) []OrderView {
	out := make([]OrderView, len(orders))
	for i := range orders {
		out[i] = ToOrderView(&orders[i])
	}
	return out
}
