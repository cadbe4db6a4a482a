package models

import "github.com/shopspring/decimal"

// Shop is the database representation of a shop.
type Shop struct {
	ShopID            string          `db:"shop_id"`
	Name              string          `db:"name"`
	NameEn            string          `db:"name_en"`
	Code              string          `db:"code"`
	BusinessType      string          `db:"business_type"`
	Address           string          `db:"address"`
	Phone             string          `db:"phone"`
	IsActive          bool            `db:"is_active"`
	OpeningStockValue decimal.Decimal `db:"opening_stock_value"`
	AuditFields
}
