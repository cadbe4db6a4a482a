package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	"github.com/hossamSharif/shop_ledger/internal/models"
	"github.com/hossamSharif/shop_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxFinancialYearRepository struct {
	BaseRepository
}

func newPgxFinancialYearRepository(pool *pgxpool.Pool) portsrepo.FinancialYearRepositoryFacade {
	return &PgxFinancialYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialYearRepositoryFacade = (*PgxFinancialYearRepository)(nil)

const yearColumns = `financial_year_id, shop_id, name, start_date, end_date, status, opening_stock_value,
	closing_stock_value, notes, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

const insertYearQuery = `
	INSERT INTO financial_years (` + yearColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`

func yearArgs(m models.FinancialYear) []any {
	return []any{
		m.FinancialYearID, m.ShopID, m.Name, m.StartDate, m.EndDate, m.Status, m.OpeningStockValue,
		m.ClosingStockValue, m.Notes, m.ClosedAt, m.ClosedBy, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func queueYearInsert(batch *pgx.Batch, m models.FinancialYear) {
	batch.Queue(insertYearQuery, yearArgs(m)...)
}

func scanYear(row pgx.Row) (models.FinancialYear, error) {
	var m models.FinancialYear
	err := row.Scan(
		&m.FinancialYearID,
		&m.ShopID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.OpeningStockValue,
		&m.ClosingStockValue,
		&m.Notes,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFinancialYearRepository) queryYears(ctx context.Context, query string, args ...any) ([]domain.FinancialYear, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial years: %w", err)
	}
	defer rows.Close()

	years := make([]models.FinancialYear, 0)
	for rows.Next() {
		m, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial year row: %w", err)
		}
		years = append(years, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial year rows: %w", err)
	}
	return mapping.ToDomainFinancialYearSlice(years), nil
}

func (r *PgxFinancialYearRepository) SaveYear(ctx context.Context, year domain.FinancialYear) error {
	if _, err := r.Pool.Exec(ctx, insertYearQuery, yearArgs(mapping.ToModelFinancialYear(year))...); err != nil {
		return translateWriteError(err, "financial year "+year.Name)
	}
	return nil
}

func (r *PgxFinancialYearRepository) FindYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error) {
	m, err := scanYear(r.Pool.QueryRow(ctx,
		`SELECT `+yearColumns+` FROM financial_years WHERE financial_year_id = $1;`, yearID))
	if err != nil {
		return nil, translateReadError(err, "financial year "+yearID)
	}
	year := mapping.ToDomainFinancialYear(m)
	return &year, nil
}

// FindYearForDate returns the shop's year whose date range covers date.
func (r *PgxFinancialYearRepository) FindYearForDate(ctx context.Context, shopID string, date time.Time) (*domain.FinancialYear, error) {
	m, err := scanYear(r.Pool.QueryRow(ctx, `
		SELECT `+yearColumns+` FROM financial_years
		WHERE shop_id = $1 AND start_date <= $2::date AND end_date >= $2::date
		ORDER BY start_date DESC
		LIMIT 1;`, shopID, date))
	if err != nil {
		return nil, translateReadError(err, "financial year for "+date.Format(time.DateOnly))
	}
	year := mapping.ToDomainFinancialYear(m)
	return &year, nil
}

func (r *PgxFinancialYearRepository) ListYearsByShop(ctx context.Context, shopID string) ([]domain.FinancialYear, error) {
	return r.queryYears(ctx, `SELECT `+yearColumns+` FROM financial_years WHERE shop_id = $1 ORDER BY start_date;`, shopID)
}

// ListYearsByShops lists the years of the given shops, or of every shop when shopIDs is nil.
func (r *PgxFinancialYearRepository) ListYearsByShops(ctx context.Context, shopIDs []string) ([]domain.FinancialYear, error) {
	if shopIDs == nil {
		return r.queryYears(ctx, `SELECT `+yearColumns+` FROM financial_years ORDER BY shop_id, start_date;`)
	}
	if len(shopIDs) == 0 {
		return []domain.FinancialYear{}, nil
	}
	return r.queryYears(ctx,
		`SELECT `+yearColumns+` FROM financial_years WHERE shop_id = ANY($1) ORDER BY shop_id, start_date;`, shopIDs)
}

// CloseYear closes an open year. A year that is no longer open yields ErrConflict.
func (r *PgxFinancialYearRepository) CloseYear(ctx context.Context, yearID string, closingStock decimal.Decimal, notes string, userID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE financial_years
		SET status = $2, closing_stock_value = $3, notes = $4, closed_at = $5, closed_by = $6,
		    last_updated_at = $5, last_updated_by = $6
		WHERE financial_year_id = $1 AND status = $7;`,
		yearID, string(domain.YearClosed), closingStock, notes, now, userID, string(domain.YearOpen))
	if err != nil {
		return fmt.Errorf("failed to close financial year %s: %w", yearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: financial year %s is not open", apperrors.ErrConflict, yearID)
	}
	return nil
}
