package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopfeed/backend/internal/application/catalog"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// CatalogHandler serves the public catalog and the seed file listings
type CatalogHandler struct {
	BaseHandler
	query *catalogapp.CatalogQueryService
	seed  *catalogapp.SeedCatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(query *catalogapp.CatalogQueryService, seed *catalogapp.SeedCatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{BaseHandler: newBaseHandler(logger), query: query, seed: seed}
}

// Shops lists the shops accepting orders
// @Summary      List accepting shops
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.ShopResponse}
// @Router       /shops [get]
func (h *CatalogHandler) Shops(c *gin.Context) {
	shops, err := h.query.ListShops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shops)
}

// Categories lists every category
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Router       /categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.query.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Products lists the listings of accepting shops, filtered by the optional
// shop_id and category_id query parameters
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        shop_id query string false "Shop ID"
// @Param        category_id query string false "Category ID"
// @Success      200 {object} dto.Response{data=[]catalogapp.ListingResponse}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /products [get]
func (h *CatalogHandler) Products(c *gin.Context) {
	var filter catalog.ListingFilter
	var err error
	if filter.ShopID, err = optionalUUIDQuery(c, "shop_id"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.CategoryID, err = optionalUUIDQuery(c, "category_id"); err != nil {
		h.HandleError(c, err)
		return
	}
	listings, err := h.query.ListListings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listings)
}

// SeedShops lists the shop of the seed file
// @Summary      List seed file shops
// @Tags         seed
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.SeedShopResponse}
// @Failure      500 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /seed/shops [get]
func (h *CatalogHandler) SeedShops(c *gin.Context) {
	shops, err := h.seed.Shops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shops)
}

// SeedCategories lists the categories of the seed file
// @Summary      List seed file categories
// @Tags         seed
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.SeedCategoryResponse}
// @Failure      500 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /seed/categories [get]
func (h *CatalogHandler) SeedCategories(c *gin.Context) {
	categories, err := h.seed.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// SeedGoods lists the goods of the seed file
// @Summary      List seed file goods
// @Tags         seed
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.SeedGoodsResponse}
// @Failure      500 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /seed/goods [get]
func (h *CatalogHandler) SeedGoods(c *gin.Context) {
	goods, err := h.seed.Goods(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, goods)
}
