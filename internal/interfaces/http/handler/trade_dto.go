package handler

import (
	"github.com/google/uuid"
	tradeapp "github.com/shopfeed/backend/internal/application/trade"
)

// BasketItemRequest is one product to add
type BasketItemRequest struct {
	ProductInfo uuid.UUID `json:"product_info" binding:"required"`
	Quantity    *int      `json:"quantity" binding:"required"`
}

// AddBasketRequest is the body of POST /basket
type AddBasketRequest struct {
	Items []BasketItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r AddBasketRequest) input() []tradeapp.BasketItemInput {
	out := make([]tradeapp.BasketItemInput, len(r.Items))
	for i, item := range r.Items {
		out[i] = tradeapp.BasketItemInput{ProductInfoID: item.ProductInfo, Quantity: *item.Quantity}
	}
	return out
}

// ItemQuantityRequest sets the quantity of a basket item
type ItemQuantityRequest struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Quantity *int      `json:"quantity" binding:"required,gte=0"`
}

// UpdateBasketRequest is the body of PUT /basket
type UpdateBasketRequest struct {
	Items []ItemQuantityRequest `json:"items" binding:"required,min=1,dive"`
}

func (r UpdateBasketRequest) input() []tradeapp.ItemQuantityInput {
	out := make([]tradeapp.ItemQuantityInput, len(r.Items))
	for i, item := range r.Items {
		out[i] = tradeapp.ItemQuantityInput{ID: item.ID, Quantity: *item.Quantity}
	}
	return out
}

// ItemRef names a basket item
type ItemRef struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

// RemoveBasketRequest is the body of DELETE /basket
type RemoveBasketRequest struct {
	Items []ItemRef `json:"items" binding:"required,min=1,dive"`
}

func (r RemoveBasketRequest) ids() []uuid.UUID {
	out := make([]uuid.UUID, len(r.Items))
	for i, item := range r.Items {
		out[i] = item.ID
	}
	return out
}

// CountResponse reports how many rows an operation touched
type CountResponse struct {
	Count int64 `json:"count"`
}

// PlaceOrderRequest is the body of POST /orders
type PlaceOrderRequest struct {
	ID      uuid.UUID `json:"id" binding:"required"`
	Contact uuid.UUID `json:"contact" binding:"required"`
}

// OrderStatusRequest is the body of PUT /orders/:id/status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
