package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialYear is the database representation of a shop's accounting period.
type FinancialYear struct {
	FinancialYearID   string              `db:"financial_year_id"`
	ShopID            string              `db:"shop_id"`
	Name              string              `db:"name"`
	StartDate         time.Time           `db:"start_date"`
	EndDate           time.Time           `db:"end_date"`
	Status            string              `db:"status"`
	OpeningStockValue decimal.Decimal     `db:"opening_stock_value"`
	ClosingStockValue decimal.NullDecimal `db:"closing_stock_value"`
	Notes             string              `db:"notes"`
	ClosedAt          sql.NullTime        `db:"closed_at"`
	ClosedBy          sql.NullString      `db:"closed_by"`
	AuditFields
}
