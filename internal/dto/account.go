package dto

import (
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// A sub-account inherits classification and nature from its parent, so
// Classification is only required for main accounts.
type CreateAccountRequest struct {
	Code           string                       `json:"code" binding:"required,account_code"`
	Name           string                       `json:"name" binding:"required,max=120"`
	NameEn         string                       `json:"nameEn" binding:"max=120"`
	ParentID       *string                      `json:"parentID"`
	Classification domain.AccountClassification `json:"classification" binding:"required_without=ParentID,omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Type           domain.AccountType           `json:"type" binding:"omitempty,oneof=CASH BANK CUSTOMER SUPPLIER STOCK SALES PURCHASES EXPENSE OPENING_STOCK ENDING_STOCK OTHER"`
	OpeningBalance decimal.Decimal              `json:"openingBalance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name     *string             `json:"name" binding:"omitempty,max=120"`
	NameEn   *string             `json:"nameEn" binding:"omitempty,max=120"`
	Type     *domain.AccountType `json:"type" binding:"omitempty,oneof=CASH BANK CUSTOMER SUPPLIER STOCK SALES PURCHASES EXPENSE OPENING_STOCK ENDING_STOCK OTHER"`
	IsActive *bool               `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID      string                       `json:"accountID"`
	ShopID         string                       `json:"shopID"`
	Code           string                       `json:"code"`
	Name           string                       `json:"name"`
	NameEn         string                       `json:"nameEn"`
	ParentID       string                       `json:"parentID"` // Note: Empty string for main accounts
	IsMain         bool                         `json:"isMain"`
	Classification domain.AccountClassification `json:"classification"`
	Nature         domain.AccountNature         `json:"nature"`
	Type           domain.AccountType           `json:"type"`
	OpeningBalance decimal.Decimal              `json:"openingBalance"`
	IsActive       bool                         `json:"isActive"`
	CreatedAt      time.Time                    `json:"createdAt"`
	CreatedBy      string                       `json:"createdBy"`
	LastUpdatedAt  time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy  string                       `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		ShopID:         acc.ShopID,
		Code:           acc.Code,
		Name:           acc.Name,
		NameEn:         acc.NameEn,
		ParentID:       acc.ParentID,
		IsMain:         acc.IsMain(),
		Classification: acc.Classification,
		Nature:         acc.Nature,
		Type:           acc.Type,
		OpeningBalance: acc.OpeningBalance,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse is one account's aggregated balance.
type AccountBalanceResponse struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	DisplayBalance decimal.Decimal `json:"displayBalance"`
}

// AccountBalancesResponse wraps the balances of a shop's accounts ordered by code.
type AccountBalancesResponse struct {
	Balances []AccountBalanceResponse `json:"balances"`
}

// AccountTreeResponse wraps the nested chart of accounts.
type AccountTreeResponse struct {
	Accounts []domain.AccountTreeNode `json:"accounts"`
}

// StatementParams defines the period of an account statement.
type StatementParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}
