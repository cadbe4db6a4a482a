package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	"github.com/hossamSharif/shop_ledger/internal/models"
	"github.com/hossamSharif/shop_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

const activityColumns = `activity_id, shop_id, user_id, action, entity_type, entity_id, message, message_en, is_read, created_at`

func scanActivity(row pgx.Row) (models.ActivityLog, error) {
	var m models.ActivityLog
	err := row.Scan(
		&m.ActivityID,
		&m.ShopID,
		&m.UserID,
		&m.Action,
		&m.EntityType,
		&m.EntityID,
		&m.Message,
		&m.MessageEn,
		&m.IsRead,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	m := mapping.ToModelActivityLog(entry)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO activity_logs (`+activityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.ActivityID, m.ShopID, m.UserID, m.Action, m.EntityType, m.EntityID, m.Message, m.MessageEn, m.IsRead, m.CreatedAt,
	)
	if err != nil {
		return translateWriteError(err, "activity "+entry.ActivityID)
	}
	return nil
}

func (r *PgxActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.ActivityLog, error) {
	m, err := scanActivity(r.Pool.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activity_logs WHERE activity_id = $1;`, activityID))
	if err != nil {
		return nil, translateReadError(err, "activity "+activityID)
	}
	entry := mapping.ToDomainActivityLog(m)
	return &entry, nil
}

// ListActivity returns the feed newest first.
func (r *PgxActivityRepository) ListActivity(ctx context.Context, query portsrepo.ActivityQuery) ([]domain.ActivityLog, error) {
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	conditions := []string{"TRUE"}
	if len(query.ShopIDs) > 0 {
		conditions = append(conditions, "shop_id = ANY("+next(query.ShopIDs)+")")
	}
	if query.UnreadOnly {
		conditions = append(conditions, "is_read = FALSE")
	}

	stmt := `SELECT ` + activityColumns + ` FROM activity_logs WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC LIMIT ` + next(query.Limit) + ` OFFSET ` + next(query.Offset) + `;`

	rows, err := r.Pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ActivityLog, 0, query.Limit)
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		entries = append(entries, mapping.ToDomainActivityLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}

func (r *PgxActivityRepository) MarkRead(ctx context.Context, activityID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE activity_logs SET is_read = TRUE WHERE activity_id = $1;`, activityID)
	if err != nil {
		return fmt.Errorf("failed to mark activity %s read: %w", activityID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: activity %s", apperrors.ErrNotFound, activityID)
	}
	return nil
}

// MarkAllRead flags unread entries created up to before. A nil shopIDs covers every shop.
func (r *PgxActivityRepository) MarkAllRead(ctx context.Context, shopIDs []string, before time.Time) (int64, error) {
	stmt := `UPDATE activity_logs SET is_read = TRUE WHERE is_read = FALSE AND created_at <= $1`
	args := []any{before}
	if shopIDs != nil {
		stmt += ` AND shop_id = ANY($2)`
		args = append(args, shopIDs)
	}

	cmdTag, err := r.Pool.Exec(ctx, stmt+`;`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark activity read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
