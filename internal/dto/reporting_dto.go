package dto

import "time"

// ProfitParams selects the profit report of a shop: either a financial year
// or a date range. Without both the current calendar month is used.
type ProfitParams struct {
	FinancialYearID string     `form:"financialYearID"`
	From            *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To              *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// ProfitMatrixParams restricts the cross-shop profit matrix.
type ProfitMatrixParams struct {
	ShopID          string `form:"shopID"`
	FinancialYearID string `form:"financialYearID"`
	YearName        string `form:"yearName"`
}

// DashboardParams selects the dashboard period. Defaults to the last 30 days.
type DashboardParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}
