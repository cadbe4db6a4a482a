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
)

type PgxShopRepository struct {
	BaseRepository
}

func newPgxShopRepository(pool *pgxpool.Pool) portsrepo.ShopRepositoryFacade {
	return &PgxShopRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ShopRepositoryFacade = (*PgxShopRepository)(nil)

const shopColumns = `shop_id, name, name_en, code, business_type, address, phone, is_active, opening_stock_value,
	created_at, created_by, last_updated_at, last_updated_by`

func scanShop(row pgx.Row) (models.Shop, error) {
	var m models.Shop
	err := row.Scan(
		&m.ShopID,
		&m.Name,
		&m.NameEn,
		&m.Code,
		&m.BusinessType,
		&m.Address,
		&m.Phone,
		&m.IsActive,
		&m.OpeningStockValue,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateShopWithDefaults inserts the shop, its chart of accounts and its first
// financial year in one database transaction.
func (r *PgxShopRepository) CreateShopWithDefaults(ctx context.Context, shop domain.Shop, accounts []domain.Account, year domain.FinancialYear) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelShop(shop)
	_, err = tx.Exec(ctx, `
		INSERT INTO shops (`+shopColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.ShopID, m.Name, m.NameEn, m.Code, m.BusinessType, m.Address, m.Phone, m.IsActive, m.OpeningStockValue,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "shop "+shop.Code)
	}

	// Parents precede their children in accounts, and a batch runs in order.
	batch := &pgx.Batch{}
	for _, acc := range accounts {
		queueAccountInsert(batch, mapping.ToModelAccount(acc))
	}
	queueYearInsert(batch, mapping.ToModelFinancialYear(year))

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError(err, "default accounts for shop "+shop.Code)
	}

	return r.Commit(ctx, tx)
}

// FindShopByID retrieves a shop by its ID.
func (r *PgxShopRepository) FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	m, err := scanShop(r.Pool.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE shop_id = $1;`, shopID))
	if err != nil {
		return nil, translateReadError(err, "shop "+shopID)
	}
	shop := mapping.ToDomainShop(m)
	return &shop, nil
}

// ListShops returns shops ordered by code.
func (r *PgxShopRepository) ListShops(ctx context.Context, activeOnly bool) ([]domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shops: %w", err)
	}
	defer rows.Close()

	shops := make([]models.Shop, 0)
	for rows.Next() {
		m, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop row: %w", err)
		}
		shops = append(shops, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shop rows: %w", err)
	}
	return mapping.ToDomainShopSlice(shops), nil
}

// UpdateShop updates the mutable shop fields.
func (r *PgxShopRepository) UpdateShop(ctx context.Context, shop domain.Shop) error {
	m := mapping.ToModelShop(shop)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE shops
		SET name = $2, name_en = $3, business_type = $4, address = $5, phone = $6,
		    opening_stock_value = $7, last_updated_at = $8, last_updated_by = $9
		WHERE shop_id = $1;`,
		m.ShopID, m.Name, m.NameEn, m.BusinessType, m.Address, m.Phone,
		m.OpeningStockValue, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "shop "+shop.ShopID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, shop.ShopID)
	}
	return nil
}

// DeactivateShop flags a shop inactive. Its history stays in place.
func (r *PgxShopRepository) DeactivateShop(ctx context.Context, shopID string, userID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE shops SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE shop_id = $1;`, shopID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate shop %s: %w", shopID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, shopID)
	}
	return nil
}
