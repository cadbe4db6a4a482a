package services

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

// ReportingSvc defines operations for generating financial reports
type ReportingSvc interface {
	// ProfitForPeriod computes the profit of a shop for transactions dated in [from, to].
	ProfitForPeriod(ctx context.Context, shopID string, from, to time.Time, userID string) (*domain.ProfitReport, error)

	// ProfitForYear computes the profit of a financial year, stock adjusted once it is closed.
	ProfitForYear(ctx context.Context, shopID string, yearID string, userID string) (*domain.ProfitReport, error)

	// ProfitMatrix aggregates profit across the shops and years the user can reach.
	ProfitMatrix(ctx context.Context, params dto.ProfitMatrixParams, userID string) (*domain.ProfitMatrix, error)

	// DashboardSummary returns the analytics snapshot of a shop.
	DashboardSummary(ctx context.Context, shopID string, from, to time.Time, userID string) (*domain.DashboardSummary, error)
}

// ReportCacheInvalidator drops cached reports after a write to a shop.
type ReportCacheInvalidator interface {
	InvalidateShop(shopID string)
}
