package repositories

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
)

// ReportingRepository defines aggregate queries used by reports
type ReportingRepository interface {
	// GetDailyTotals sums transaction amounts per day and type for a shop in [from, to].
	GetDailyTotals(ctx context.Context, shopID string, from, to time.Time) ([]domain.DailyPoint, error)
}
