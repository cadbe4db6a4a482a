package dto

import (
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one posting line of a transaction.
// With a Side the amount is taken as absolute; without one its sign decides.
type EntryRequest struct {
	AccountID string           `json:"accountID" binding:"required"`
	Amount    decimal.Decimal  `json:"amount"`
	Side      domain.EntrySide `json:"side" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// CreateTransactionRequest defines the data needed to record a transaction.
// Either Entries are given explicitly, or CashAccountID and CounterAccountID
// let the server derive the standard two-line posting.
type CreateTransactionRequest struct {
	Type             domain.TransactionType `json:"type" binding:"required,oneof=SALE PURCHASE EXPENSE TRANSFER"`
	Date             time.Time              `json:"date" binding:"required"`
	TotalAmount      decimal.Decimal        `json:"totalAmount" binding:"decimal_positive"`
	Description      string                 `json:"description" binding:"max=500"`
	PartyID          string                 `json:"partyID"`
	CategoryID       string                 `json:"categoryID"`
	FinancialYearID  *string                `json:"financialYearID"`
	CashAccountID    string                 `json:"cashAccountID" binding:"required_without=Entries"`
	CounterAccountID string                 `json:"counterAccountID" binding:"required_without=Entries"`
	Entries          []EntryRequest         `json:"entries" binding:"omitempty,dive"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Entries, when present, replace the stored entries.
type UpdateTransactionRequest struct {
	Date             *time.Time       `json:"date"`
	TotalAmount      *decimal.Decimal `json:"totalAmount" binding:"omitempty,decimal_positive"`
	Description      *string          `json:"description" binding:"omitempty,max=500"`
	PartyID          *string          `json:"partyID"`
	CategoryID       *string          `json:"categoryID"`
	CashAccountID    *string          `json:"cashAccountID"`
	CounterAccountID *string          `json:"counterAccountID"`
	Entries          []EntryRequest   `json:"entries" binding:"omitempty,dive"`
}

// ToDomainEntries converts request entries to domain entries.
func ToDomainEntries(entries []EntryRequest) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		out[i] = domain.Entry{AccountID: e.AccountID, Amount: e.Amount, Side: e.Side}
	}
	return out
}

// EntryResponse is one posting line with debit and credit split.
type EntryResponse struct {
	AccountID string           `json:"accountID"`
	Amount    decimal.Decimal  `json:"amount"`
	Side      domain.EntrySide `json:"side"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	ShopID          string                 `json:"shopID"`
	FinancialYearID string                 `json:"financialYearID,omitempty"`
	Type            domain.TransactionType `json:"type"`
	Date            time.Time              `json:"date"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	Description     string                 `json:"description"`
	PartyID         string                 `json:"partyID,omitempty"`
	CategoryID      string                 `json:"categoryID,omitempty"`
	Entries         []EntryResponse        `json:"entries"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = EntryResponse{AccountID: e.AccountID, Amount: e.Amount, Side: e.Side}
	}
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		ShopID:          t.ShopID,
		FinancialYearID: t.FinancialYearID,
		Type:            t.Type,
		Date:            t.Date,
		TotalAmount:     t.TotalAmount,
		Description:     t.Description,
		PartyID:         t.PartyID,
		CategoryID:      t.CategoryID,
		Entries:         entries,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
		LastUpdatedAt:   t.LastUpdatedAt,
		LastUpdatedBy:   t.LastUpdatedBy,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit           int        `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken       *string    `form:"nextToken"`
	Type            string     `form:"type" binding:"omitempty,oneof=SALE PURCHASE EXPENSE TRANSFER"`
	FinancialYearID string     `form:"financialYearID"`
	AccountID       string     `form:"accountID"`
	From            *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To              *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions to its DTO.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
