package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/middleware"
)

// shopHandler handles HTTP requests related to shops.
type shopHandler struct {
	shopService portssvc.ShopSvcFacade
}

func newShopHandler(ss portssvc.ShopSvcFacade) *shopHandler {
	return &shopHandler{shopService: ss}
}

// registerShopRoutes registers shop routes and every resource nested under a shop.
func registerShopRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newShopHandler(services.Shop)

	shops := rg.Group("/shops")
	{
		shops.POST("", h.createShop)
		shops.GET("", h.listShops)
	}

	shopSpecific := rg.Group("/shops/:shopID")
	{
		shopSpecific.GET("", h.getShop)
		shopSpecific.PUT("", h.updateShop)
		shopSpecific.DELETE("", h.deactivateShop)

		RegisterAccountRoutes(shopSpecific, services.Account)
		RegisterTransactionRoutes(shopSpecific, services.Transaction)
		registerFinancialYearRoutes(shopSpecific, services.FinancialYear)
		registerShopReportRoutes(shopSpecific, services.Reporting)
	}
}

// createShop godoc
// @Summary Create a new shop
// @Description Creates a shop with its default chart of accounts and first financial year. Admin only.
// @Tags shops
// @Accept  json
// @Produce  json
// @Param   shop body dto.CreateShopRequest true "Shop details"
// @Success 201 {object} dto.ShopResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Shop code already used"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops [post]
func (h *shopHandler) createShop(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create shop")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shop created", slog.String("shop_id", shop.ShopID))
	c.JSON(http.StatusCreated, dto.ToShopResponse(shop))
}

// listShops godoc
// @Summary List shops
// @Description Lists the shops the caller can access.
// @Tags shops
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated shops"
// @Success 200 {object} dto.ListShopsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops [get]
func (h *shopHandler) listShops(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	includeInactive := c.Query("includeInactive") == "true"

	shops, err := h.shopService.ListShops(c.Request.Context(), userID, includeInactive)
	if err != nil {
		respondError(c, err, "Failed to list shops")
		return
	}
	c.JSON(http.StatusOK, dto.ToListShopsResponse(shops))
}

// getShop godoc
// @Summary Get a shop
// @Tags shops
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {object} dto.ShopResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID} [get]
func (h *shopHandler) getShop(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	shop, err := h.shopService.GetShopByID(c.Request.Context(), c.Param("shopID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// updateShop godoc
// @Summary Update a shop
// @Tags shops
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   shop body dto.UpdateShopRequest true "Fields to update"
// @Success 200 {object} dto.ShopResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID} [put]
func (h *shopHandler) updateShop(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), c.Param("shopID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// deactivateShop godoc
// @Summary Deactivate a shop
// @Description Marks a shop inactive. Its ledger history is kept. Admin only.
// @Tags shops
// @Param   shopID path string true "Shop ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID} [delete]
func (h *shopHandler) deactivateShop(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.shopService.DeactivateShop(c.Request.Context(), c.Param("shopID"), userID); err != nil {
		respondError(c, err, "Failed to deactivate shop")
		return
	}
	c.Status(http.StatusNoContent)
}
