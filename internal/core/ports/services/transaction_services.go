package services

import (
	"context"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction of a shop with its entries.
	GetTransactionByID(ctx context.Context, shopID string, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of a shop's transactions.
	ListTransactions(ctx context.Context, shopID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction records a transaction in an open financial year.
	CreateTransaction(ctx context.Context, shopID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction modifies a transaction of an open financial year.
	UpdateTransaction(ctx context.Context, shopID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction of an open financial year.
	DeleteTransaction(ctx context.Context, shopID string, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
