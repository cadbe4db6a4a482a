package domain

import "github.com/shopspring/decimal"

// Shop is a business unit owning its own chart of accounts and financial years.
type Shop struct {
	ShopID            string          `json:"shopID"`
	Name              string          `json:"name"`
	NameEn            string          `json:"nameEn"`
	Code              string          `json:"code"`
	BusinessType      string          `json:"businessType"`
	Address           string          `json:"address"`
	Phone             string          `json:"phone"`
	IsActive          bool            `json:"isActive"`
	OpeningStockValue decimal.Decimal `json:"openingStockValue"`
	AuditFields
}
