package services_test

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	"github.com/hossamSharif/shop_ledger/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Shop repository ---

type MockShopRepository struct {
	mock.Mock
}

var _ portsrepo.ShopRepositoryFacade = (*MockShopRepository)(nil)

func (m *MockShopRepository) FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *MockShopRepository) ListShops(ctx context.Context, activeOnly bool) ([]domain.Shop, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shop), args.Error(1)
}

func (m *MockShopRepository) UpdateShop(ctx context.Context, shop domain.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *MockShopRepository) DeactivateShop(ctx context.Context, shopID string, userID string, now time.Time) error {
	return m.Called(ctx, shopID, userID, now).Error(0)
}

func (m *MockShopRepository) CreateShopWithDefaults(ctx context.Context, shop domain.Shop, accounts []domain.Account, year domain.FinancialYear) error {
	return m.Called(ctx, shop, accounts, year).Error(0)
}

// --- Account repository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, shopID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, shopID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByShop(ctx context.Context, shopID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, shopID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	return m.Called(ctx, accountID, userID, now).Error(0)
}

// --- Transaction repository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, shopID string, query portsrepo.TransactionQuery) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, shopID, query)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByShops(ctx context.Context, shopIDs []string) ([]domain.Transaction, error) {
	args := m.Called(ctx, shopIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

// --- Financial year repository ---

type MockFinancialYearRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialYearRepositoryFacade = (*MockFinancialYearRepository)(nil)

func (m *MockFinancialYearRepository) FindYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) FindYearForDate(ctx context.Context, shopID string, date time.Time) (*domain.FinancialYear, error) {
	args := m.Called(ctx, shopID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) ListYearsByShop(ctx context.Context, shopID string) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) ListYearsByShops(ctx context.Context, shopIDs []string) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, shopIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) SaveYear(ctx context.Context, year domain.FinancialYear) error {
	return m.Called(ctx, year).Error(0)
}

func (m *MockFinancialYearRepository) CloseYear(ctx context.Context, yearID string, closingStock decimal.Decimal, notes string, userID string, now time.Time) error {
	return m.Called(ctx, yearID, closingStock, notes, userID, now).Error(0)
}

// --- User repository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	return m.Called(ctx, userID, tokenHash, expiry).Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Activity repository ---

type MockActivityRepository struct {
	mock.Mock
}

var _ portsrepo.ActivityRepository = (*MockActivityRepository)(nil)

func (m *MockActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.ActivityLog, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) ListActivity(ctx context.Context, query portsrepo.ActivityQuery) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) MarkRead(ctx context.Context, activityID string) error {
	return m.Called(ctx, activityID).Error(0)
}

func (m *MockActivityRepository) MarkAllRead(ctx context.Context, shopIDs []string, before time.Time) (int64, error) {
	args := m.Called(ctx, shopIDs, before)
	return args.Get(0).(int64), args.Error(1)
}

// --- Reporting repository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetDailyTotals(ctx context.Context, shopID string, from, to time.Time) ([]domain.DailyPoint, error) {
	args := m.Called(ctx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyPoint), args.Error(1)
}

// --- Service collaborators ---

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeShopAccess(ctx context.Context, userID, shopID string) error {
	return m.Called(ctx, userID, shopID).Error(0)
}

func (m *MockAuthorizer) AuthorizeAdmin(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthorizer) AccessibleShopIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// recordingActivity collects recorded entries instead of persisting them.
type recordingActivity struct {
	entries []domain.ActivityLog
}

func (r *recordingActivity) Record(_ context.Context, entry domain.ActivityLog) {
	r.entries = append(r.entries, entry)
}

// countingCache counts invalidations per shop.
type countingCache struct {
	invalidated map[string]int
}

func (c *countingCache) InvalidateShop(shopID string) {
	if c.invalidated == nil {
		c.invalidated = map[string]int{}
	}
	c.invalidated[shopID]++
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "shop-ledger-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
		StrictDoubleEntry:          true,
	}
}
