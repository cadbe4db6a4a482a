package services

import (
	"context"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

// FinancialYearReaderSvc defines read operations for financial years
type FinancialYearReaderSvc interface {
	GetYearByID(ctx context.Context, shopID string, yearID string, userID string) (*domain.FinancialYear, error)
	ListYears(ctx context.Context, shopID string, userID string) ([]domain.FinancialYear, error)
}

// FinancialYearWriterSvc defines lifecycle operations for financial years
type FinancialYearWriterSvc interface {
	// CreateYear opens a new financial year for a shop.
	CreateYear(ctx context.Context, shopID string, req dto.CreateFinancialYearRequest, userID string) (*domain.FinancialYear, error)

	// CloseYear records the closing stock and moves the year to CLOSED. There is no way back.
	CloseYear(ctx context.Context, shopID string, yearID string, req dto.CloseFinancialYearRequest, userID string) (*domain.FinancialYear, error)
}

// StockContinuitySvc verifies stock carry-over between consecutive years
type StockContinuitySvc interface {
	CheckContinuity(ctx context.Context, shopID string, userID string) (*domain.StockContinuityReport, error)
}

// FinancialYearSvcFacade combines all financial year service interfaces
type FinancialYearSvcFacade interface {
	FinancialYearReaderSvc
	FinancialYearWriterSvc
	StockContinuitySvc
}
