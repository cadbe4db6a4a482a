package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account represents a row of a shop's chart of accounts.
type Account struct {
	AccountID      string          `db:"account_id"`
	ShopID         string          `db:"shop_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	NameEn         string          `db:"name_en"`
	ParentID       sql.NullString  `db:"parent_id"` // NULL for main accounts
	Classification string          `db:"classification"`
	Nature         string          `db:"nature"`
	AccountType    string          `db:"account_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
