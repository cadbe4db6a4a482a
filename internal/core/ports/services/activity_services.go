package services

import (
	"context"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

// ActivityRecorderSvc appends entries to the activity feed.
type ActivityRecorderSvc interface {
	// Record stores an activity entry. Failures are logged, never returned to the caller's flow.
	Record(ctx context.Context, entry domain.ActivityLog)
}

// ActivityFeedSvc reads and acknowledges the activity feed.
type ActivityFeedSvc interface {
	ListFeed(ctx context.Context, userID string, params dto.ListActivityParams) ([]domain.ActivityLog, error)
	MarkRead(ctx context.Context, activityID string, userID string) error
	MarkAllRead(ctx context.Context, shopID string, userID string) (int64, error)
}

// ActivitySvcFacade combines all activity service interfaces
type ActivitySvcFacade interface {
	ActivityRecorderSvc
	ActivityFeedSvc
}
