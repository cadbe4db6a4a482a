package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/platform/cache"
	"github.com/hossamSharif/shop_ledger/internal/utils/accounting"
)

const dayFormat = "2006-01-02"

// reportingService computes reports from the repository snapshot of a shop.
type reportingService struct {
	BaseService
	shopRepo        portsrepo.ShopReader
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
	yearRepo        portsrepo.FinancialYearReader
	reportingRepo   portsrepo.ReportingRepository
	cache           *cache.ReportCache
	now             func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer adds the shop authorizer dependency
func WithReportingAuthorizer(authorizer portssvc.ShopAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.Authorizer = authorizer
	}
}

// WithReportCache enables caching of computed reports.
func WithReportCache(c *cache.ReportCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = c
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(repos portsrepo.RepositoryProvider, options ...ReportingServiceOption) portssvc.ReportingSvc {
	svc := &reportingService{
		shopRepo:        repos.ShopRepo,
		accountRepo:     repos.AccountRepo,
		transactionRepo: repos.TransactionRepo,
		yearRepo:        repos.FinancialYearRepo,
		reportingRepo:   repos.ReportingRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// cached returns the cached value for key or computes and stores it.
func cached[T any](s *reportingService, key string, compute func() (*T, error)) (*T, error) {
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.(*T); ok {
			return typed, nil
		}
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, v)
	return v, nil
}

func (s *reportingService) shopTransactions(ctx context.Context, shopID string) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.ListTransactionsByShops(ctx, []string{shopID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions", slog.String("shop_id", shopID))
		return nil, err
	}
	return txns, nil
}

func (s *reportingService) ProfitForPeriod(ctx context.Context, shopID string, from, to time.Time, userID string) (*domain.ProfitReport, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	from = startOfDay(from)
	if to.Before(from) {
		return nil, fmt.Errorf("period ends before it starts: %w", apperrors.ErrValidation)
	}
	key := cache.Key(shopID, "profit", from.Format(dayFormat), to.Format(dayFormat))
	return cached(s, key, func() (*domain.ProfitReport, error) {
		txns, err := s.shopTransactions(ctx, shopID)
		if err != nil {
			return nil, err
		}
		period := endOfDay(to)
		inPeriod := accounting.FilterTransactions(txns, accounting.TransactionFilter{ShopID: shopID, From: &from, To: &period})
		report := accounting.CalculateProfit(inPeriod, nil)
		return &report, nil
	})
}

func (s *reportingService) ProfitForYear(ctx context.Context, shopID string, yearID string, userID string) (*domain.ProfitReport, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	key := cache.Key(shopID, "profit-year", yearID)
	return cached(s, key, func() (*domain.ProfitReport, error) {
		year, err := s.yearRepo.FindYearByID(ctx, yearID)
		if err != nil {
			return nil, err
		}
		if year.ShopID != shopID {
			return nil, apperrors.ErrNotFound
		}
		txns, err := s.shopTransactions(ctx, shopID)
		if err != nil {
			return nil, err
		}
		report := accounting.CalculateProfit(accounting.TransactionsInYear(txns, *year), year)
		return &report, nil
	})
}

func (s *reportingService) ProfitMatrix(ctx context.Context, params dto.ProfitMatrixParams, userID string) (*domain.ProfitMatrix, error) {
	accessible, err := s.AccessibleShops(ctx, userID)
	if err != nil {
		return nil, err
	}
	if params.ShopID != "" {
		if err := s.AuthorizeShop(ctx, userID, params.ShopID); err != nil {
			return nil, err
		}
	}

	scopeKey := "all"
	if accessible != nil {
		scopeKey = strings.Join(accessible, ",")
	}
	key := cache.Key(cache.AllShops, "matrix", scopeKey, params.ShopID, params.FinancialYearID, params.YearName)
	return cached(s, key, func() (*domain.ProfitMatrix, error) {
		shops, err := s.shopRepo.ListShops(ctx, false)
		if err != nil {
			s.LogError(ctx, err, "Failed to list shops for profit matrix")
			return nil, err
		}
		if accessible != nil {
			shops = slices.DeleteFunc(shops, func(shop domain.Shop) bool {
				return !slices.Contains(accessible, shop.ShopID)
			})
			if len(shops) == 0 {
				m := accounting.BuildProfitMatrix(nil, nil, nil, accounting.MatrixScope{})
				return &m, nil
			}
		}
		years, err := s.yearRepo.ListYearsByShops(ctx, accessible)
		if err != nil {
			s.LogError(ctx, err, "Failed to list years for profit matrix")
			return nil, err
		}
		txns, err := s.transactionRepo.ListTransactionsByShops(ctx, accessible)
		if err != nil {
			s.LogError(ctx, err, "Failed to list transactions for profit matrix")
			return nil, err
		}
		m := accounting.BuildProfitMatrix(shops, years, txns, accounting.MatrixScope{
			ShopID:          params.ShopID,
			FinancialYearID: params.FinancialYearID,
			YearName:        params.YearName,
		})
		return &m, nil
	})
}

func (s *reportingService) DashboardSummary(ctx context.Context, shopID string, from, to time.Time, userID string) (*domain.DashboardSummary, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	from = startOfDay(from)
	if to.Before(from) {
		return nil, fmt.Errorf("period ends before it starts: %w", apperrors.ErrValidation)
	}
	key := cache.Key(shopID, "dashboard", from.Format(dayFormat), to.Format(dayFormat))
	return cached(s, key, func() (*domain.DashboardSummary, error) {
		accounts, err := s.accountRepo.ListAccountsByShop(ctx, shopID, true)
		if err != nil {
			return nil, err
		}
		txns, err := s.shopTransactions(ctx, shopID)
		if err != nil {
			return nil, err
		}
		forest, err := accounting.NewAccountForest(accounts)
		if err != nil {
			return nil, err
		}
		balances := accounting.ComputeBalances(forest, txns)

		period := endOfDay(to)
		inPeriod := accounting.FilterTransactions(txns, accounting.TransactionFilter{ShopID: shopID, From: &from, To: &period})

		series, err := s.reportingRepo.GetDailyTotals(ctx, shopID, from, to)
		if err != nil {
			s.LogError(ctx, err, "Failed to load daily totals", slog.String("shop_id", shopID))
			return nil, err
		}
		if series == nil {
			series = []domain.DailyPoint{}
		}

		return &domain.DashboardSummary{
			ShopID:       shopID,
			From:         from,
			To:           to,
			Profit:       accounting.CalculateProfit(inPeriod, nil),
			CashBalance:  accounting.SumByType(forest, balances, domain.AccountTypeCash),
			BankBalance:  accounting.SumByType(forest, balances, domain.AccountTypeBank),
			Receivables:  accounting.SumByType(forest, balances, domain.AccountTypeCustomer),
			Payables:     accounting.SumByType(forest, balances, domain.AccountTypeSupplier),
			DailySeries:  series,
			AccountCount: forest.Len(),
			GeneratedAt:  s.now(),
		}, nil
	})
}

// startOfDay moves a lower day bound to midnight UTC, matching DATE-typed transaction dates.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfDay extends a day bound so the whole day is included.
func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
