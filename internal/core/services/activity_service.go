package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepository
}

// ActivityServiceOption is a functional option for configuring the activity service
type ActivityServiceOption func(*activityService)

// WithActivityAuthorizer adds the shop authorizer dependency
func WithActivityAuthorizer(authorizer portssvc.ShopAuthorizerSvc) ActivityServiceOption {
	return func(s *activityService) {
		s.Authorizer = authorizer
	}
}

// NewActivityService creates the activity feed service.
func NewActivityService(repo portsrepo.ActivityRepository, options ...ActivityServiceOption) portssvc.ActivitySvcFacade {
	svc := &activityService{activityRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

func (s *activityService) Record(ctx context.Context, entry domain.ActivityLog) {
	if entry.ActivityID == "" {
		entry.ActivityID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.activityRepo.SaveActivity(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record activity",
			slog.String("shop_id", entry.ShopID),
			slog.String("entity_type", entry.EntityType),
			slog.String("entity_id", entry.EntityID))
	}
}

// feedShops resolves the shops a feed request covers; nil means every shop.
func (s *activityService) feedShops(ctx context.Context, userID, shopID string) ([]string, error) {
	if shopID != "" {
		if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
			return nil, err
		}
		return []string{shopID}, nil
	}
	return s.AccessibleShops(ctx, userID)
}

func (s *activityService) ListFeed(ctx context.Context, userID string, params dto.ListActivityParams) ([]domain.ActivityLog, error) {
	shopIDs, err := s.feedShops(ctx, userID, params.ShopID)
	if err != nil {
		return nil, err
	}
	if shopIDs != nil && len(shopIDs) == 0 {
		return []domain.ActivityLog{}, nil
	}

	entries, err := s.activityRepo.ListActivity(ctx, portsrepo.ActivityQuery{
		ShopIDs:    shopIDs,
		UnreadOnly: params.UnreadOnly,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list activity")
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	if entries == nil {
		return []domain.ActivityLog{}, nil
	}
	return entries, nil
}

func (s *activityService) MarkRead(ctx context.Context, activityID string, userID string) error {
	entry, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeShop(ctx, userID, entry.ShopID); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if entry.IsRead {
		return nil
	}
	return s.activityRepo.MarkRead(ctx, activityID)
}

func (s *activityService) MarkAllRead(ctx context.Context, shopID string, userID string) (int64, error) {
	shopIDs, err := s.feedShops(ctx, userID, shopID)
	if err != nil {
		return 0, err
	}
	if shopIDs != nil && len(shopIDs) == 0 {
		return 0, nil
	}
	n, err := s.activityRepo.MarkAllRead(ctx, shopIDs, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark activity read")
		return 0, err
	}
	return n, nil
}

// activityEntry builds a feed entry with a bilingual message.
func activityEntry(shopID, userID string, action domain.ActivityAction, entityType, entityID, message, messageEn string) domain.ActivityLog {
	return domain.ActivityLog{
		ShopID:     shopID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Message:    message,
		MessageEn:  messageEn,
	}
}
