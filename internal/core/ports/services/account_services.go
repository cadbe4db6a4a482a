package services

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account of a shop.
	GetAccountByID(ctx context.Context, shopID string, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts of a shop ordered by code.
	ListAccounts(ctx context.Context, shopID string, userID string, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, shopID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, shopID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, shopID string, accountID string, userID string) error
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// GetAccountTree returns the nested chart of accounts with aggregated balances.
	GetAccountTree(ctx context.Context, shopID string, userID string) ([]domain.AccountTreeNode, error)

	// GetAccountBalances returns the aggregated balance of every account of a shop.
	GetAccountBalances(ctx context.Context, shopID string, userID string) ([]domain.Account, map[string]decimal.Decimal, error)

	// GetAccountStatement lists an account's movements in [from, to] with running balance.
	GetAccountStatement(ctx context.Context, shopID string, accountID string, from, to time.Time, userID string) (*domain.AccountStatement, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
