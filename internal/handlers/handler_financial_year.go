package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

type financialYearHandler struct {
	yearService portssvc.FinancialYearSvcFacade
}

func registerFinancialYearRoutes(rg *gin.RouterGroup, yearService portssvc.FinancialYearSvcFacade) {
	h := &financialYearHandler{yearService: yearService}

	years := rg.Group("/financial-years")
	{
		years.POST("", h.createYear)
		years.GET("", h.listYears)
		years.GET("/continuity", h.checkContinuity)
		years.GET("/:yearID", h.getYear)
		years.POST("/:yearID/close", h.closeYear)
	}
}

// createYear godoc
// @Summary Open a financial year
// @Description Opening stock defaults to the closing stock of the latest closed year.
// @Tags financial-years
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   year body dto.CreateFinancialYearRequest true "Year details"
// @Success 201 {object} dto.FinancialYearResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Overlaps an existing year"
// @Security BearerAuth
// @Router /shops/{shopID}/financial-years [post]
func (h *financialYearHandler) createYear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	year, err := h.yearService.CreateYear(c.Request.Context(), c.Param("shopID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create financial year")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFinancialYearResponse(year))
}

// listYears godoc
// @Summary List financial years
// @Tags financial-years
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {object} dto.ListFinancialYearsResponse
// @Security BearerAuth
// @Router /shops/{shopID}/financial-years [get]
func (h *financialYearHandler) listYears(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	years, err := h.yearService.ListYears(c.Request.Context(), c.Param("shopID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list financial years")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFinancialYearsResponse(years))
}

// getYear godoc
// @Summary Get a financial year
// @Tags financial-years
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   yearID path string true "Financial year ID"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID}/financial-years/{yearID} [get]
func (h *financialYearHandler) getYear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	year, err := h.yearService.GetYearByID(c.Request.Context(), c.Param("shopID"), c.Param("yearID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve financial year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(year))
}

// closeYear godoc
// @Summary Close a financial year
// @Description Records the counted closing stock. A closed year accepts no further transactions.
// @Tags financial-years
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   yearID path string true "Financial year ID"
// @Param   close body dto.CloseFinancialYearRequest true "Closing stock"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Year already closed"
// @Security BearerAuth
// @Router /shops/{shopID}/financial-years/{yearID}/close [post]
func (h *financialYearHandler) closeYear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CloseFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	year, err := h.yearService.CloseYear(c.Request.Context(), c.Param("shopID"), c.Param("yearID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to close financial year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(year))
}

// checkContinuity godoc
// @Summary Stock continuity check
// @Description Compares each closed year's closing stock with the next year's opening stock.
// @Tags financial-years
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {object} domain.StockContinuityReport
// @Security BearerAuth
// @Router /shops/{shopID}/financial-years/continuity [get]
func (h *financialYearHandler) checkContinuity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.yearService.CheckContinuity(c.Request.Context(), c.Param("shopID"), userID)
	if err != nil {
		respondError(c, err, "Failed to check stock continuity")
		return
	}
	c.JSON(http.StatusOK, report)
}
