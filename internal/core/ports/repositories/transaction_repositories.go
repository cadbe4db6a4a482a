package repositories

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
)

// TransactionQuery narrows a paginated transaction listing.
type TransactionQuery struct {
	Types           []domain.TransactionType
	FinancialYearID string
	AccountID       string
	From            *time.Time
	To              *time.Time
	Limit           int
	NextToken       *string
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of a shop's transactions, newest first.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, shopID string, query TransactionQuery) ([]domain.Transaction, *string, error)

	// ListTransactionsByShops retrieves every transaction of the given shops with entries, oldest first.
	// A nil shopIDs means every shop.
	ListTransactionsByShops(ctx context.Context, shopIDs []string) ([]domain.Transaction, error)

	// CountTransactionsByAccount counts the entries posted to an account.
	CountTransactionsByAccount(ctx context.Context, accountID string) (int, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a transaction and its entries atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction replaces a transaction's fields and entries atomically.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction and its entries.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
