package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	"github.com/hossamSharif/shop_ledger/internal/models"
	"github.com/hossamSharif/shop_ledger/internal/utils/mapping"
	"github.com/hossamSharif/shop_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTransactionPageSize = 20

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transactions and their entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, shop_id, financial_year_id, transaction_type, transaction_date, total_amount,
	description, party_id, category_id, created_at, created_by, last_updated_at, last_updated_by`

const insertEntryQuery = `
	INSERT INTO transaction_entries (transaction_id, line_no, account_id, amount, side)
	VALUES ($1, $2, $3, $4, $5);`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ShopID,
		&m.FinancialYearID,
		&m.TransactionType,
		&m.TransactionDate,
		&m.TotalAmount,
		&m.Description,
		&m.PartyID,
		&m.CategoryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queueEntries(batch *pgx.Batch, entries []models.Entry) {
	for _, e := range entries {
		batch.Queue(insertEntryQuery, e.TransactionID, e.LineNo, e.AccountID, e.Amount, e.Side)
	}
}

// SaveTransaction inserts the header and its entries in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m, entries := mapping.ToModelTransaction(txn)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.TransactionID, m.ShopID, m.FinancialYearID, m.TransactionType, m.TransactionDate, m.TotalAmount,
		m.Description, m.PartyID, m.CategoryID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	queueEntries(batch, entries)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError(err, "transaction "+txn.TransactionID)
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites the header and replaces every entry.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m, entries := mapping.ToModelTransaction(txn)
	cmdTag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET financial_year_id = $2, transaction_type = $3, transaction_date = $4, total_amount = $5,
		    description = $6, party_id = $7, category_id = $8, last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1;`,
		m.TransactionID, m.FinancialYearID, m.TransactionType, m.TransactionDate, m.TotalAmount,
		m.Description, m.PartyID, m.CategoryID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "transaction "+txn.TransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM transaction_entries WHERE transaction_id = $1;`, txn.TransactionID)
	queueEntries(batch, entries)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError(err, "entries of transaction "+txn.TransactionID)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction. Entries go with it through the foreign key cascade.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// FindTransactionByID retrieves a transaction and its entries.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		return nil, translateReadError(err, "transaction "+transactionID)
	}

	entries, err := r.loadEntries(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m, entries[transactionID])
	return &txn, nil
}

// ListTransactions pages through a shop's transactions, newest first.
// The returned token is nil on the last page.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, shopID string, query portsrepo.TransactionQuery) ([]domain.Transaction, *string, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	args := []any{shopID}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	conditions := []string{"shop_id = $1"}
	if len(query.Types) > 0 {
		types := make([]string, len(query.Types))
		for i, t := range query.Types {
			types[i] = string(t)
		}
		conditions = append(conditions, "transaction_type = ANY("+next(types)+")")
	}
	if query.FinancialYearID != "" {
		conditions = append(conditions, "financial_year_id = "+next(query.FinancialYearID))
	}
	if query.AccountID != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM transaction_entries e WHERE e.transaction_id = transactions.transaction_id AND e.account_id = "+next(query.AccountID)+")")
	}
	if query.From != nil {
		conditions = append(conditions, "transaction_date >= "+next(*query.From)+"::date")
	}
	if query.To != nil {
		conditions = append(conditions, "transaction_date <= "+next(*query.To)+"::date")
	}
	if query.NextToken != nil && *query.NextToken != "" {
		cursor, err := pagination.DecodeToken(*query.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		// Tuple comparison keeps the ordering stable across equal dates.
		conditions = append(conditions, "(transaction_date, created_at, transaction_id) < ("+
			next(cursor.Date)+"::date, "+next(cursor.CreatedAt)+", "+next(cursor.ID)+")")
	}

	stmt := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC LIMIT ` + next(fetchLimit) + `;`

	headers, err := r.queryHeaders(ctx, stmt, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for shop %s: %w", shopID, err)
	}

	var nextToken *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{
			Date:      last.TransactionDate,
			CreatedAt: last.CreatedAt,
			ID:        last.TransactionID,
		})
		nextToken = &token
		headers = headers[:limit]
	}

	txns, err := r.attachEntries(ctx, headers)
	if err != nil {
		return nil, nil, err
	}
	return txns, nextToken, nil
}

// ListTransactionsByShops returns every transaction of the given shops in date order.
// A nil slice means every shop.
func (r *PgxTransactionRepository) ListTransactionsByShops(ctx context.Context, shopIDs []string) ([]domain.Transaction, error) {
	var headers []models.Transaction
	var err error
	switch {
	case shopIDs == nil:
		headers, err = r.queryHeaders(ctx,
			`SELECT `+transactionColumns+` FROM transactions ORDER BY transaction_date, created_at, transaction_id;`)
	case len(shopIDs) == 0:
		return []domain.Transaction{}, nil
	default:
		headers, err = r.queryHeaders(ctx,
			`SELECT `+transactionColumns+` FROM transactions WHERE shop_id = ANY($1)
			 ORDER BY transaction_date, created_at, transaction_id;`, shopIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return r.attachEntries(ctx, headers)
}

func (r *PgxTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT transaction_id) FROM transaction_entries WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) queryHeaders(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	headers := make([]models.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return headers, nil
}

func (r *PgxTransactionRepository) attachEntries(ctx context.Context, headers []models.Transaction) ([]domain.Transaction, error) {
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.TransactionID
	}
	entries, err := r.loadEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, len(headers))
	for i, h := range headers {
		txns[i] = mapping.ToDomainTransaction(h, entries[h.TransactionID])
	}
	return txns, nil
}

// loadEntries returns entries grouped by transaction ID, in line order.
func (r *PgxTransactionRepository) loadEntries(ctx context.Context, transactionIDs []string) (map[string][]models.Entry, error) {
	grouped := make(map[string][]models.Entry, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return grouped, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT transaction_id, line_no, account_id, amount, side
		FROM transaction_entries
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_no;`, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.TransactionID, &e.LineNo, &e.AccountID, &e.Amount, &e.Side); err != nil {
			return nil, fmt.Errorf("failed to scan transaction entry: %w", err)
		}
		grouped[e.TransactionID] = append(grouped[e.TransactionID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction entries: %w", err)
	}
	return grouped, nil
}
