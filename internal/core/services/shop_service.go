package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

type shopService struct {
	BaseService
	writeEffects
	shopRepo portsrepo.ShopRepositoryFacade
	now      func() time.Time
}

// ShopServiceOption is a functional option for configuring the shop service
type ShopServiceOption func(*shopService)

// WithShopAuthorizer adds the shop authorizer dependency
func WithShopAuthorizer(authorizer portssvc.ShopAuthorizerSvc) ShopServiceOption {
	return func(s *shopService) {
		s.Authorizer = authorizer
	}
}

// WithShopActivity adds the activity recorder dependency
func WithShopActivity(recorder portssvc.ActivityRecorderSvc) ShopServiceOption {
	return func(s *shopService) {
		s.activity = recorder
	}
}

// WithShopCache adds the report cache invalidator
func WithShopCache(cache portssvc.ReportCacheInvalidator) ShopServiceOption {
	return func(s *shopService) {
		s.cache = cache
	}
}

// NewShopService creates the shop service.
func NewShopService(repo portsrepo.ShopRepositoryFacade, options ...ShopServiceOption) portssvc.ShopSvcFacade {
	svc := &shopService{shopRepo: repo, now: func() time.Time { return time.Now().UTC() }}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ShopSvcFacade = (*shopService)(nil)

// firstYear derives the opening financial year of a new shop. Missing bounds
// default to the calendar year of now.
func firstYear(req dto.CreateShopRequest, shopID, userID string, now time.Time) (domain.FinancialYear, error) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if req.FirstYearStart != nil {
		start = req.FirstYearStart.UTC()
	}
	end := start.AddDate(1, 0, -1)
	if req.FirstYearEnd != nil {
		end = req.FirstYearEnd.UTC()
	}
	if !end.After(start) {
		return domain.FinancialYear{}, fmt.Errorf("first year must end after it starts: %w", apperrors.ErrValidation)
	}
	name := strings.TrimSpace(req.FirstYearName)
	if name == "" {
		name = strconv.Itoa(start.Year())
	}
	return domain.FinancialYear{
		FinancialYearID:   uuid.NewString(),
		ShopID:            shopID,
		Name:              name,
		StartDate:         start,
		EndDate:           end,
		Status:            domain.YearOpen,
		OpeningStockValue: req.OpeningStockValue,
		AuditFields:       domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}, nil
}

func (s *shopService) CreateShop(ctx context.Context, req dto.CreateShopRequest, userID string) (*domain.Shop, error) {
	if err := s.AuthorizeAdmin(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	shop := domain.Shop{
		ShopID:            uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		NameEn:            strings.TrimSpace(req.NameEn),
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		BusinessType:      req.BusinessType,
		Address:           req.Address,
		Phone:             req.Phone,
		IsActive:          true,
		OpeningStockValue: req.OpeningStockValue,
		AuditFields:       domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}

	year, err := firstYear(req, shop.ShopID, userID, now)
	if err != nil {
		return nil, err
	}
	accounts := defaultAccounts(shop.ShopID, userID, now)

	if err := s.shopRepo.CreateShopWithDefaults(ctx, shop, accounts, year); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create shop", slog.String("code", shop.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Shop created",
		slog.String("shop_id", shop.ShopID),
		slog.Int("accounts", len(accounts)),
		slog.String("financial_year_id", year.FinancialYearID))
	s.record(ctx, activityEntry(shop.ShopID, userID, domain.ActionCreate, "shop", shop.ShopID,
		fmt.Sprintf("تم إنشاء المحل %s", shop.Name),
		fmt.Sprintf("Shop %s created", displayName(shop.NameEn, shop.Name))))
	return &shop, nil
}

func (s *shopService) GetShopByID(ctx context.Context, shopID string, userID string) (*domain.Shop, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	return s.shopRepo.FindShopByID(ctx, shopID)
}

func (s *shopService) ListShops(ctx context.Context, userID string, includeInactive bool) ([]domain.Shop, error) {
	accessible, err := s.AccessibleShops(ctx, userID)
	if err != nil {
		return nil, err
	}
	shops, err := s.shopRepo.ListShops(ctx, !includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shops")
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	if accessible == nil {
		if shops == nil {
			return []domain.Shop{}, nil
		}
		return shops, nil
	}
	out := make([]domain.Shop, 0, len(accessible))
	for _, shop := range shops {
		if slices.Contains(accessible, shop.ShopID) {
			out = append(out, shop)
		}
	}
	return out, nil
}

func (s *shopService) UpdateShop(ctx context.Context, shopID string, req dto.UpdateShopRequest, userID string) (*domain.Shop, error) {
	if err := s.AuthorizeAdmin(ctx, userID); err != nil {
		return nil, err
	}
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.NameEn != nil {
		shop.NameEn = strings.TrimSpace(*req.NameEn)
	}
	if req.BusinessType != nil {
		shop.BusinessType = *req.BusinessType
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	shop.LastUpdatedAt = s.now()
	shop.LastUpdatedBy = userID

	if err := s.shopRepo.UpdateShop(ctx, *shop); err != nil {
		s.LogError(ctx, err, "Failed to update shop", slog.String("shop_id", shopID))
		return nil, err
	}
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionUpdate, "shop", shopID,
		fmt.Sprintf("تم تعديل بيانات المحل %s", shop.Name),
		fmt.Sprintf("Shop %s updated", displayName(shop.NameEn, shop.Name))))
	return shop, nil
}

func (s *shopService) DeactivateShop(ctx context.Context, shopID string, userID string) error {
	if err := s.AuthorizeAdmin(ctx, userID); err != nil {
		return err
	}
	if err := s.shopRepo.DeactivateShop(ctx, shopID, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate shop", slog.String("shop_id", shopID))
		}
		return err
	}
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionDelete, "shop", shopID,
		"تم إيقاف المحل", "Shop deactivated"))
	return nil
}

// displayName prefers the English name for English messages.
func displayName(nameEn, name string) string {
	if nameEn != "" {
		return nameEn
	}
	return name
}
