package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetDailyTotals aggregates sales, purchases and expenses per day for the dashboard chart.
func (r *reportingRepository) GetDailyTotals(ctx context.Context, shopID string, from, to time.Time) ([]domain.DailyPoint, error) {
	query := `
		SELECT
			transaction_date,
			COALESCE(SUM(CASE WHEN transaction_type = 'SALE' THEN total_amount END), 0) AS sales,
			COALESCE(SUM(CASE WHEN transaction_type = 'PURCHASE' THEN total_amount END), 0) AS purchases,
			COALESCE(SUM(CASE WHEN transaction_type = 'EXPENSE' THEN total_amount END), 0) AS expenses
		FROM transactions
		WHERE shop_id = $1
			AND transaction_date >= $2::date
			AND transaction_date <= $3::date
		GROUP BY transaction_date
		ORDER BY transaction_date
	`

	rows, err := r.Pool.Query(ctx, query, shopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying daily totals: %w", err)
	}
	defer rows.Close()

	var result []domain.DailyPoint
	for rows.Next() {
		var (
			day                        time.Time
			sales, purchases, expenses decimal.Decimal
		)
		if err := rows.Scan(&day, &sales, &purchases, &expenses); err != nil {
			return nil, fmt.Errorf("error scanning daily totals row: %w", err)
		}
		result = append(result, domain.DailyPoint{
			Date:      day.Format(time.DateOnly),
			Sales:     sales,
			Purchases: purchases,
			Expenses:  expenses,
			Profit:    sales.Sub(purchases).Sub(expenses),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily totals rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.DailyPoint{}, nil
	}

	return result, nil
}
