package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type financialYearService struct {
	BaseService
	writeEffects
	yearRepo portsrepo.FinancialYearRepositoryFacade
	now      func() time.Time
}

// FinancialYearServiceOption is a functional option for configuring the financial year service
type FinancialYearServiceOption func(*financialYearService)

// WithFinancialYearAuthorizer adds the shop authorizer dependency
func WithFinancialYearAuthorizer(authorizer portssvc.ShopAuthorizerSvc) FinancialYearServiceOption {
	return func(s *financialYearService) {
		s.Authorizer = authorizer
	}
}

// WithFinancialYearActivity adds the activity recorder dependency
func WithFinancialYearActivity(recorder portssvc.ActivityRecorderSvc) FinancialYearServiceOption {
	return func(s *financialYearService) {
		s.activity = recorder
	}
}

// WithFinancialYearCache adds the report cache invalidator
func WithFinancialYearCache(cache portssvc.ReportCacheInvalidator) FinancialYearServiceOption {
	return func(s *financialYearService) {
		s.cache = cache
	}
}

// NewFinancialYearService creates the financial year service.
func NewFinancialYearService(repo portsrepo.FinancialYearRepositoryFacade, options ...FinancialYearServiceOption) portssvc.FinancialYearSvcFacade {
	svc := &financialYearService{yearRepo: repo, now: func() time.Time { return time.Now().UTC() }}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FinancialYearSvcFacade = (*financialYearService)(nil)

func overlaps(a, b domain.FinancialYear) bool {
	return !a.EndDate.Before(b.StartDate) && !b.EndDate.Before(a.StartDate)
}

// carriedOpeningStock is the closing stock of the latest closed year that ends before start.
func carriedOpeningStock(years []domain.FinancialYear, start time.Time) decimal.Decimal {
	opening := decimal.Zero
	for _, y := range accounting.SortYears(years) {
		if !y.EndDate.Before(start) {
			break
		}
		if y.IsClosed() {
			opening = *y.ClosingStockValue
		}
	}
	return opening
}

func (s *financialYearService) CreateYear(ctx context.Context, shopID string, req dto.CreateFinancialYearRequest, userID string) (*domain.FinancialYear, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("financial year must end after it starts: %w", apperrors.ErrValidation)
	}

	existing, err := s.yearRepo.ListYearsByShop(ctx, shopID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial years", slog.String("shop_id", shopID))
		return nil, err
	}

	now := s.now()
	year := domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		ShopID:          shopID,
		Name:            strings.TrimSpace(req.Name),
		StartDate:       req.StartDate.UTC(),
		EndDate:         req.EndDate.UTC(),
		Status:          domain.YearOpen,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for _, other := range existing {
		if overlaps(year, other) {
			return nil, fmt.Errorf("%w: %s", ErrYearOverlap, other.Name)
		}
	}
	if req.OpeningStockValue != nil {
		year.OpeningStockValue = *req.OpeningStockValue
	} else {
		year.OpeningStockValue = carriedOpeningStock(existing, year.StartDate)
	}

	if err := s.yearRepo.SaveYear(ctx, year); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save financial year", slog.String("shop_id", shopID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Financial year opened",
		slog.String("financial_year_id", year.FinancialYearID),
		slog.String("opening_stock", year.OpeningStockValue.String()))
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionCreate, "financial_year", year.FinancialYearID,
		fmt.Sprintf("تم فتح السنة المالية %s", year.Name),
		fmt.Sprintf("Financial year %s opened", year.Name)))
	return &year, nil
}

func (s *financialYearService) shopYear(ctx context.Context, shopID, yearID string) (*domain.FinancialYear, error) {
	year, err := s.yearRepo.FindYearByID(ctx, yearID)
	if err != nil {
		return nil, err
	}
	if year.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}
	return year, nil
}

func (s *financialYearService) GetYearByID(ctx context.Context, shopID string, yearID string, userID string) (*domain.FinancialYear, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	return s.shopYear(ctx, shopID, yearID)
}

func (s *financialYearService) ListYears(ctx context.Context, shopID string, userID string) ([]domain.FinancialYear, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	years, err := s.yearRepo.ListYearsByShop(ctx, shopID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial years", slog.String("shop_id", shopID))
		return nil, err
	}
	return accounting.SortYears(years), nil
}

func (s *financialYearService) CloseYear(ctx context.Context, shopID string, yearID string, req dto.CloseFinancialYearRequest, userID string) (*domain.FinancialYear, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if req.ClosingStockValue.IsNegative() {
		return nil, fmt.Errorf("closing stock cannot be negative: %w", apperrors.ErrValidation)
	}
	year, err := s.shopYear(ctx, shopID, yearID)
	if err != nil {
		return nil, err
	}
	if year.Status == domain.YearClosed {
		return nil, ErrYearAlreadyClosed
	}

	now := s.now()
	if err := s.yearRepo.CloseYear(ctx, yearID, req.ClosingStockValue, req.Notes, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrYearAlreadyClosed
		}
		s.LogError(ctx, err, "Failed to close financial year", slog.String("financial_year_id", yearID))
		return nil, err
	}

	closing := req.ClosingStockValue
	year.Status = domain.YearClosed
	year.ClosingStockValue = &closing
	year.ClosedAt = &now
	year.ClosedBy = userID
	if req.Notes != "" {
		year.Notes = req.Notes
	}
	year.LastUpdatedAt = now
	year.LastUpdatedBy = userID

	s.LogInfo(ctx, "Financial year closed",
		slog.String("financial_year_id", yearID),
		slog.String("closing_stock", closing.String()))
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionClose, "financial_year", yearID,
		fmt.Sprintf("تم إغلاق السنة المالية %s ببضاعة آخر المدة %s", year.Name, closing.StringFixed(2)),
		fmt.Sprintf("Financial year %s closed with ending stock %s", year.Name, closing.StringFixed(2))))
	return year, nil
}

func (s *financialYearService) CheckContinuity(ctx context.Context, shopID string, userID string) (*domain.StockContinuityReport, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	years, err := s.yearRepo.ListYearsByShop(ctx, shopID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial years", slog.String("shop_id", shopID))
		return nil, err
	}
	report := accounting.CheckStockContinuity(shopID, years, s.now())
	if !report.IsValid {
		s.LogWarn(ctx, "Stock continuity broken",
			slog.String("shop_id", shopID),
			slog.Int("discrepancies", len(report.Discrepancies)))
	}
	return &report, nil
}
