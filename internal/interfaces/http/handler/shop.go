package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopfeed/backend/internal/application/catalog"
	tradeapp "github.com/shopfeed/backend/internal/application/trade"
	"go.uber.org/zap"
)

// ImportRequest is the body of POST /shop/import
type ImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// ShopStatusRequest is the body of POST /shop/status. Status is a boolean
// literal such as "on" or "0".
type ShopStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ShopHandler serves the shop-owner endpoints
type ShopHandler struct {
	BaseHandler
	importer catalogapp.FeedImporter
	shops    *catalogapp.ShopService
	orders   *tradeapp.OrderService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(importer catalogapp.FeedImporter, shops *catalogapp.ShopService, orders *tradeapp.OrderService, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{BaseHandler: newBaseHandler(logger), importer: importer, shops: shops, orders: orders}
}

// Import replaces the caller's catalog with the feed at the given url
// @Summary      Import the shop feed
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        request body ImportRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shop/import [post]
func (h *ShopHandler) Import(c *gin.Context) {
	var req ImportRequest
	if !h.Bind(c, &req) {
		return
	}
	result, err := h.importer.Import(c.Request.Context(), caller(c), req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Status returns the caller's shop
// @Summary      Get the shop status
// @Tags         shop
// @Produce      json
// @Success      200 {object} dto.Response{data=catalogapp.ShopResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shop/status [get]
func (h *ShopHandler) Status(c *gin.Context) {
	shop, err := h.shops.GetStatus(c.Request.Context(), caller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// SetStatus opens or closes the caller's shop for orders
// @Summary      Open or close the shop
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        request body ShopStatusRequest true "Request body"
// @Success      200 {object} dto.Response{data=catalogapp.ShopResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shop/status [post]
func (h *ShopHandler) SetStatus(c *gin.Context) {
	var req ShopStatusRequest
	if !h.Bind(c, &req) {
		return
	}
	shop, err := h.shops.SetStatus(c.Request.Context(), caller(c), req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// Orders lists the orders containing the caller shop's listings
// @Summary      List orders for the shop
// @Tags         shop
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderView}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /shop/orders [get]
func (h *ShopHandler) Orders(c *gin.Context) {
	orders, err := h.orders.ListShopOrders(c.Request.Context(), caller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
