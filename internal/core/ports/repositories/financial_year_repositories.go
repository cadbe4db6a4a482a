package repositories

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancialYearReader defines read operations for financial year data
type FinancialYearReader interface {
	// FindYearByID retrieves a financial year by its ID.
	FindYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error)

	// FindYearForDate retrieves the shop's financial year whose range contains date.
	FindYearForDate(ctx context.Context, shopID string, date time.Time) (*domain.FinancialYear, error)

	// ListYearsByShop retrieves the financial years of a shop ordered by start date.
	ListYearsByShop(ctx context.Context, shopID string) ([]domain.FinancialYear, error)

	// ListYearsByShops retrieves the financial years of several shops ordered by start date.
	// A nil shopIDs means every shop.
	ListYearsByShops(ctx context.Context, shopIDs []string) ([]domain.FinancialYear, error)
}

// FinancialYearWriter defines write operations for financial year data
type FinancialYearWriter interface {
	// SaveYear persists a new financial year.
	SaveYear(ctx context.Context, year domain.FinancialYear) error

	// CloseYear moves an OPEN year to CLOSED and records its closing stock.
	// It fails with apperrors.ErrConflict when the year is not open anymore.
	CloseYear(ctx context.Context, yearID string, closingStock decimal.Decimal, notes string, userID string, now time.Time) error
}

// FinancialYearRepositoryFacade combines all financial year repository interfaces
type FinancialYearRepositoryFacade interface {
	FinancialYearReader
	FinancialYearWriter
}
