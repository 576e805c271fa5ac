package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/shopfeed/backend/internal/application/trade"
	"go.uber.org/zap"
)

// TradeHandler serves the basket and the buyer's orders
type TradeHandler struct {
	BaseHandler
	basket *tradeapp.BasketService
	orders *tradeapp.OrderService
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(basket *tradeapp.BasketService, orders *tradeapp.OrderService, logger *zap.Logger) *TradeHandler {
	return &TradeHandler{BaseHandler: newBaseHandler(logger), basket: basket, orders: orders}
}

// Basket returns the caller's basket with totals
// @Summary      Get the basket
// @Tags         basket
// @Produce      json
// @Success      200 {object} dto.Response{data=tradeapp.OrderView}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /basket [get]
func (h *TradeHandler) Basket(c *gin.Context) {
	basket, err := h.basket.Get(c.Request.Context(), caller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// AddItems puts products into the basket. Items that fail are reported
// next to the created count.
// @Summary      Add items to the basket
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        request body AddBasketRequest true "Request body"
// @Success      201 {object} dto.Response{data=tradeapp.AddItemsResult}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /basket [post]
func (h *TradeHandler) AddItems(c *gin.Context) {
	var req AddBasketRequest
	if !h.Bind(c, &req) {
		return
	}
	result, err := h.basket.AddItems(c.Request.Context(), caller(c), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// UpdateItems changes item quantities
// @Summary      Change item quantities
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        request body UpdateBasketRequest true "Request body"
// @Success      200 {object} dto.Response{data=CountResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /basket [put]
func (h *TradeHandler) UpdateItems(c *gin.Context) {
	var req UpdateBasketRequest
	if !h.Bind(c, &req) {
		return
	}
	n, err := h.basket.UpdateItems(c.Request.Context(), caller(c), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountResponse{Count: n})
}

// RemoveItems deletes items from the basket
// @Summary      Remove items from the basket
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        request body RemoveBasketRequest true "Request body"
// @Success      200 {object} dto.Response{data=CountResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /basket [delete]
func (h *TradeHandler) RemoveItems(c *gin.Context) {
	var req RemoveBasketRequest
	if !h.Bind(c, &req) {
		return
	}
	n, err := h.basket.RemoveItems(c.Request.Context(), caller(c), req.ids())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountResponse{Count: n})
}

// Orders lists the caller's orders, the open basket included
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderView}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *TradeHandler) Orders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), caller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Place turns the basket into an order delivered to the given contact
// @Summary      Place the basket as an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body PlaceOrderRequest true "Request body"
// @Success      200 {object} dto.Response{data=tradeapp.OrderView}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *TradeHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if !h.Bind(c, &req) {
		return
	}
	order, err := h.orders.Place(c.Request.Context(), caller(c), req.ID, req.Contact)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SetStatus moves an order along its lifecycle
// @Summary      Change an order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body OrderStatusRequest true "Request body"
// @Success      200 {object} dto.Response{data=tradeapp.OrderView}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/status [put]
func (h *TradeHandler) SetStatus(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if !h.Bind(c, &req) {
		return
	}
	order, err := h.orders.SetStatus(c.Request.Context(), caller(c), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
