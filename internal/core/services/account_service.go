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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	writeEffects
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer adds the shop authorizer dependency
func WithAccountAuthorizer(authorizer portssvc.ShopAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// WithAccountActivity adds the activity recorder dependency
func WithAccountActivity(recorder portssvc.ActivityRecorderSvc) AccountServiceOption {
	return func(s *accountService) {
		s.activity = recorder
	}
}

// WithAccountCache adds the report cache invalidator
func WithAccountCache(cache portssvc.ReportCacheInvalidator) AccountServiceOption {
	return func(s *accountService) {
		s.cache = cache
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionReader, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:     repo,
		transactionRepo: txnRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, shopID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if existing, err := s.accountRepo.FindAccountByCode(ctx, shopID, code); err == nil && existing != nil {
		return nil, fmt.Errorf("account code %s: %w", code, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("code", code))
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		ShopID:         shopID,
		Code:           code,
		Name:           strings.TrimSpace(req.Name),
		NameEn:         strings.TrimSpace(req.NameEn),
		Classification: req.Classification,
		Nature:         domain.NatureFor(req.Classification),
		Type:           req.Type,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("parent account %s: %w", *req.ParentID, apperrors.ErrValidation)
			}
			return nil, err
		}
		if parent.ShopID != shopID {
			s.LogWarn(ctx, "Parent account belongs to different shop",
				slog.String("parent_shop", parent.ShopID),
				slog.String("requested_shop", shopID))
			return nil, ErrAccountNotInShop
		}
		if !parent.IsMain() {
			return nil, ErrParentNotMain
		}
		account.ParentID = parent.AccountID
		account.Classification = parent.Classification
		account.Nature = parent.Nature
		if account.Type == "" {
			account.Type = parent.Type
		}
	}
	if account.Classification == "" {
		return nil, fmt.Errorf("main accounts need a classification: %w", apperrors.ErrValidation)
	}
	if account.Type == "" {
		account.Type = domain.AccountTypeOther
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account",
				slog.String("account_id", account.AccountID),
				slog.String("shop_id", shopID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("shop_id", shopID))
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionCreate, "account", account.AccountID,
		fmt.Sprintf("تم إنشاء الحساب %s - %s", account.Code, account.Name),
		fmt.Sprintf("Account %s - %s created", account.Code, displayName(account.NameEn, account.Name))))
	return &account, nil
}

// shopAccount loads an account and hides accounts of other shops.
func (s *accountService) shopAccount(ctx context.Context, shopID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.ShopID != shopID {
		s.LogDebug(ctx, "Account found but belongs to different shop",
			slog.String("account_id", accountID),
			slog.String("account_shop", account.ShopID),
			slog.String("requested_shop", shopID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, shopID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	return s.shopAccount(ctx, shopID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, shopID string, userID string, includeInactive bool) ([]domain.Account, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccountsByShop(ctx, shopID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to list accounts for shop %s: %w", shopID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, shopID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	account, err := s.shopAccount(ctx, shopID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.NameEn != nil {
		account.NameEn = strings.TrimSpace(*req.NameEn)
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.IsActive != nil {
		if !*req.IsActive && account.IsActive {
			if err := s.ensureNoActiveChildren(ctx, *account); err != nil {
				return nil, err
			}
		}
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionUpdate, "account", accountID,
		fmt.Sprintf("تم تعديل الحساب %s", account.Code),
		fmt.Sprintf("Account %s updated", account.Code)))
	return account, nil
}

func (s *accountService) ensureNoActiveChildren(ctx context.Context, account domain.Account) error {
	if !account.IsMain() {
		return nil
	}
	accounts, err := s.accountRepo.ListAccountsByShop(ctx, account.ShopID, false)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		if acc.ParentID == account.AccountID && acc.IsActive {
			return ErrAccountHasChildren
		}
	}
	return nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, shopID string, accountID string, userID string) error {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return err
	}
	account, err := s.shopAccount(ctx, shopID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil
	}
	if err := s.ensureNoActiveChildren(ctx, *account); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionDelete, "account", accountID,
		fmt.Sprintf("تم إيقاف الحساب %s", account.Code),
		fmt.Sprintf("Account %s deactivated", account.Code)))
	return nil
}

// snapshot loads every account and transaction of a shop and computes balances.
func (s *accountService) snapshot(ctx context.Context, shopID string) (*accounting.AccountForest, []domain.Transaction, map[string]decimal.Decimal, error) {
	accounts, err := s.accountRepo.ListAccountsByShop(ctx, shopID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts", slog.String("shop_id", shopID))
		return nil, nil, nil, err
	}
	txns, err := s.transactionRepo.ListTransactionsByShops(ctx, []string{shopID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions", slog.String("shop_id", shopID))
		return nil, nil, nil, err
	}
	forest, err := accounting.NewAccountForest(accounts)
	if err != nil {
		s.LogError(ctx, err, "Chart of accounts is inconsistent", slog.String("shop_id", shopID))
		return nil, nil, nil, err
	}
	return forest, txns, accounting.ComputeBalances(forest, txns), nil
}

func (s *accountService) GetAccountTree(ctx context.Context, shopID string, userID string) ([]domain.AccountTreeNode, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	forest, _, balances, err := s.snapshot(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return accounting.BuildAccountTree(forest, balances), nil
}

func (s *accountService) GetAccountBalances(ctx context.Context, shopID string, userID string) ([]domain.Account, map[string]decimal.Decimal, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, nil, err
	}
	forest, _, balances, err := s.snapshot(ctx, shopID)
	if err != nil {
		return nil, nil, err
	}
	ordered := make([]domain.Account, 0, forest.Len())
	forest.Walk(func(acc domain.Account, _ int) {
		ordered = append(ordered, acc)
	})
	return ordered, balances, nil
}

func (s *accountService) GetAccountStatement(ctx context.Context, shopID string, accountID string, from, to time.Time, userID string) (*domain.AccountStatement, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("statement range ends before it starts: %w", apperrors.ErrValidation)
	}
	if _, err := s.shopAccount(ctx, shopID, accountID); err != nil {
		return nil, err
	}
	forest, txns, _, err := s.snapshot(ctx, shopID)
	if err != nil {
		return nil, err
	}
	stmt, ok := accounting.BuildStatement(forest, accountID, txns, from, to)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &stmt, nil
}
