package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the header row of a recorded business event.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	ShopID          string          `db:"shop_id"`
	FinancialYearID sql.NullString  `db:"financial_year_id"`
	TransactionType string          `db:"transaction_type"`
	TransactionDate time.Time       `db:"transaction_date"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Description     string          `db:"description"`
	PartyID         string          `db:"party_id"`
	CategoryID      string          `db:"category_id"`
	AuditFields
}

// Entry is one posting line of a transaction. Amount is signed.
type Entry struct {
	TransactionID string          `db:"transaction_id"`
	LineNo        int             `db:"line_no"`
	AccountID     string          `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Side          string          `db:"side"`
}
