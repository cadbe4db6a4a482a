package dto

import (
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFinancialYearRequest defines the data needed to open a financial year.
// OpeningStockValue defaults to the closing stock of the latest closed year.
type CreateFinancialYearRequest struct {
	Name              string           `json:"name" binding:"required,max=60"`
	StartDate         time.Time        `json:"startDate" binding:"required"`
	EndDate           time.Time        `json:"endDate" binding:"required,gtfield=StartDate"`
	OpeningStockValue *decimal.Decimal `json:"openingStockValue" binding:"omitempty,decimal_nonnegative"`
	Notes             string           `json:"notes"`
}

// CloseFinancialYearRequest records the stock count that closes a year.
type CloseFinancialYearRequest struct {
	ClosingStockValue decimal.Decimal `json:"closingStockValue" binding:"decimal_nonnegative"`
	Notes             string          `json:"notes"`
}

// FinancialYearResponse defines the data returned for a financial year.
type FinancialYearResponse struct {
	FinancialYearID   string                     `json:"financialYearID"`
	ShopID            string                     `json:"shopID"`
	Name              string                     `json:"name"`
	StartDate         time.Time                  `json:"startDate"`
	EndDate           time.Time                  `json:"endDate"`
	Status            domain.FinancialYearStatus `json:"status"`
	OpeningStockValue decimal.Decimal            `json:"openingStockValue"`
	ClosingStockValue *decimal.Decimal           `json:"closingStockValue,omitempty"`
	Notes             string                     `json:"notes"`
	ClosedAt          *time.Time                 `json:"closedAt,omitempty"`
	ClosedBy          string                     `json:"closedBy,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
	CreatedBy         string                     `json:"createdBy"`
}

// ToFinancialYearResponse converts a domain.FinancialYear to its DTO.
func ToFinancialYearResponse(y *domain.FinancialYear) FinancialYearResponse {
	return FinancialYearResponse{
		FinancialYearID:   y.FinancialYearID,
		ShopID:            y.ShopID,
		Name:              y.Name,
		StartDate:         y.StartDate,
		EndDate:           y.EndDate,
		Status:            y.Status,
		OpeningStockValue: y.OpeningStockValue,
		ClosingStockValue: y.ClosingStockValue,
		Notes:             y.Notes,
		ClosedAt:          y.ClosedAt,
		ClosedBy:          y.ClosedBy,
		CreatedAt:         y.CreatedAt,
		CreatedBy:         y.CreatedBy,
	}
}

// ListFinancialYearsResponse wraps a shop's financial years.
type ListFinancialYearsResponse struct {
	FinancialYears []FinancialYearResponse `json:"financialYears"`
}

// ToListFinancialYearsResponse converts a slice of years to its DTO.
func ToListFinancialYearsResponse(years []domain.FinancialYear) ListFinancialYearsResponse {
	res := make([]FinancialYearResponse, len(years))
	for i := range years {
		res[i] = ToFinancialYearResponse(&years[i])
	}
	return ListFinancialYearsResponse{FinancialYears: res}
}
