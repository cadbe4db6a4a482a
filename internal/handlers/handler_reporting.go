package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

// ReportingHandler handles reporting-related HTTP requests
type ReportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// NewReportingHandler creates a new reporting handler
func NewReportingHandler(reportingService portssvc.ReportingSvc) *ReportingHandler {
	return &ReportingHandler{
		reportingService: reportingService,
	}
}

func registerShopReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := NewReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit", h.GetProfit)
		reports.GET("/dashboard", h.GetDashboard)
	}
}

func registerProfitMatrixRoute(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := NewReportingHandler(reportingService)
	rg.GET("/reports/profit-matrix", h.GetProfitMatrix)
}

// GetProfit godoc
// @Summary Profit report
// @Description Profit of a financial year, or of a date range. Without either the current month is used.
// @Tags reports
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param financialYearID query string false "Financial year"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.ProfitReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID}/reports/profit [get]
func (h *ReportingHandler) GetProfit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ProfitParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	shopID := c.Param("shopID")
	if params.FinancialYearID != "" {
		report, err := h.reportingService.ProfitForYear(c.Request.Context(), shopID, params.FinancialYearID, userID)
		if err != nil {
			respondError(c, err, "Failed to generate profit report")
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now
	if params.From != nil {
		from = *params.From
	}
	if params.To != nil {
		to = *params.To
	}

	report, err := h.reportingService.ProfitForPeriod(c.Request.Context(), shopID, from, to, userID)
	if err != nil {
		respondError(c, err, "Failed to generate profit report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDashboard godoc
// @Summary Shop dashboard
// @Description Profit, liquidity and a daily series for a period. Defaults to the last 30 days.
// @Tags reports
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.DashboardSummary
// @Security BearerAuth
// @Router /shops/{shopID}/reports/dashboard [get]
func (h *ReportingHandler) GetDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	to := time.Now().UTC()
	if params.To != nil {
		to = *params.To
	}
	from := to.AddDate(0, 0, -30)
	if params.From != nil {
		from = *params.From
	}

	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), c.Param("shopID"), from, to, userID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetProfitMatrix godoc
// @Summary Profit matrix
// @Description Profit per shop and per financial year name with totals, over the shops the caller can access.
// @Tags reports
// @Produce json
// @Param shopID query string false "Restrict to one shop"
// @Param financialYearID query string false "Restrict to one financial year"
// @Param yearName query string false "Restrict to a year name across shops"
// @Success 200 {object} domain.ProfitMatrix
// @Security BearerAuth
// @Router /reports/profit-matrix [get]
func (h *ReportingHandler) GetProfitMatrix(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ProfitMatrixParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	matrix, err := h.reportingService.ProfitMatrix(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to build profit matrix")
		return
	}
	c.JSON(http.StatusOK, matrix)
}
