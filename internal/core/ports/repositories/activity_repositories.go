package repositories

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
)

// ActivityQuery narrows the activity feed.
type ActivityQuery struct {
	ShopIDs    []string // Empty means every shop
	UnreadOnly bool
	Limit      int
	Offset     int
}

// ActivityRepository defines persistence for the activity and notification feed.
type ActivityRepository interface {
	SaveActivity(ctx context.Context, entry domain.ActivityLog) error
	FindActivityByID(ctx context.Context, activityID string) (*domain.ActivityLog, error)
	ListActivity(ctx context.Context, query ActivityQuery) ([]domain.ActivityLog, error)
	MarkRead(ctx context.Context, activityID string) error
	// MarkAllRead marks every unread entry of the given shops as read and returns how many changed.
	MarkAllRead(ctx context.Context, shopIDs []string, before time.Time) (int64, error)
}
