package services

import (
	"context"
	"log/slog"

	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/middleware"
)

// SystemUserID identifies actions taken by the process itself, such as CLI
// bootstrap commands. It passes every authorization check.
const SystemUserID = "system"

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.ShopAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning message with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeShop checks that the user may act on the shop.
func (s *BaseService) AuthorizeShop(ctx context.Context, userID, shopID string) error {
	if userID == SystemUserID {
		return nil
	}
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeShopAccess(ctx, userID, shopID)
	}
	s.LogDebug(ctx, "No shop authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("shop_id", shopID))
	return nil
}

// AuthorizeAdmin checks that the user is an administrator.
func (s *BaseService) AuthorizeAdmin(ctx context.Context, userID string) error {
	if userID == SystemUserID {
		return nil
	}
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeAdmin(ctx, userID)
	}
	s.LogDebug(ctx, "No shop authorizer provided, admin access granted by default",
		slog.String("user_id", userID))
	return nil
}

// AccessibleShops returns the shops the user can reach, nil meaning all of them.
func (s *BaseService) AccessibleShops(ctx context.Context, userID string) ([]string, error) {
	if userID == SystemUserID || s.Authorizer == nil {
		return nil, nil
	}
	return s.Authorizer.AccessibleShopIDs(ctx, userID)
}
