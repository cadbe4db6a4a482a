package services

import (
	"context"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
)

// writeEffects runs what every successful write to a shop triggers:
// an activity feed entry and a report cache invalidation.
type writeEffects struct {
	activity portssvc.ActivityRecorderSvc
	cache    portssvc.ReportCacheInvalidator
}

func (w *writeEffects) record(ctx context.Context, entry domain.ActivityLog) {
	if w.activity != nil {
		w.activity.Record(ctx, entry)
	}
}

func (w *writeEffects) invalidate(shopID string) {
	if w.cache != nil {
		w.cache.InvalidateShop(shopID)
	}
}
