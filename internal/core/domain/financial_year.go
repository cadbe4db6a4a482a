package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialYearStatus is the lifecycle state of a financial year. OPEN -> CLOSED is terminal.
type FinancialYearStatus string

const (
	YearOpen   FinancialYearStatus = "OPEN"
	YearClosed FinancialYearStatus = "CLOSED"
)

// FinancialYear is a shop-scoped accounting period.
type FinancialYear struct {
	FinancialYearID   string              `json:"financialYearID"`
	ShopID            string              `json:"shopID"`
	Name              string              `json:"name"`
	StartDate         time.Time           `json:"startDate"`
	EndDate           time.Time           `json:"endDate"`
	Status            FinancialYearStatus `json:"status"`
	OpeningStockValue decimal.Decimal     `json:"openingStockValue"`
	ClosingStockValue *decimal.Decimal    `json:"closingStockValue,omitempty"` // Set only once closed
	Notes             string              `json:"notes"`
	ClosedAt          *time.Time          `json:"closedAt,omitempty"`
	ClosedBy          string              `json:"closedBy,omitempty"`
	AuditFields
}

// IsClosed reports whether the year has been closed with a recorded closing stock.
func (y FinancialYear) IsClosed() bool {
	return y.Status == YearClosed && y.ClosingStockValue != nil
}

// Contains reports whether t falls inside the year, both bounds inclusive by calendar day.
func (y FinancialYear) Contains(t time.Time) bool {
	day := truncateDay(t)
	return !day.Before(truncateDay(y.StartDate)) && !day.After(truncateDay(y.EndDate))
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
