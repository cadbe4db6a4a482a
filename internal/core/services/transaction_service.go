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
)

type transactionService struct {
	BaseService
	writeEffects
	transactionRepo   portsrepo.TransactionRepositoryFacade
	accountRepo       portsrepo.AccountReader
	yearRepo          portsrepo.FinancialYearReader
	strictDoubleEntry bool
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionAuthorizer adds the shop authorizer dependency
func WithTransactionAuthorizer(authorizer portssvc.ShopAuthorizerSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.Authorizer = authorizer
	}
}

// WithTransactionActivity adds the activity recorder dependency
func WithTransactionActivity(recorder portssvc.ActivityRecorderSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.activity = recorder
	}
}

// WithTransactionCache adds the report cache invalidator
func WithTransactionCache(cache portssvc.ReportCacheInvalidator) TransactionServiceOption {
	return func(s *transactionService) {
		s.cache = cache
	}
}

// WithStrictDoubleEntry decides whether unbalanced entries are rejected (true) or only logged.
func WithStrictDoubleEntry(strict bool) TransactionServiceOption {
	return func(s *transactionService) {
		s.strictDoubleEntry = strict
	}
}

// NewTransactionService creates the transaction service. Double-entry is strict unless disabled.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	yearRepo portsrepo.FinancialYearReader,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		transactionRepo:   txnRepo,
		accountRepo:       accountRepo,
		yearRepo:          yearRepo,
		strictDoubleEntry: true,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// checkEntries validates the postings of a transaction of shopID.
func (s *transactionService) checkEntries(ctx context.Context, shopID string, entries []domain.Entry) error {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry accounts")
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("account %s: %w", id, apperrors.ErrValidation)
		}
		if acc.ShopID != shopID {
			return ErrAccountNotInShop
		}
		if !acc.IsActive {
			return fmt.Errorf("%s: %w", acc.Code, ErrAccountInactive)
		}
	}

	if err := accounting.ValidateEntries(entries); err != nil {
		if s.strictDoubleEntry {
			return err
		}
		s.LogWarn(ctx, "Accepting entries that fail double-entry validation",
			slog.String("shop_id", shopID),
			slog.String("reason", err.Error()),
			slog.String("sum", accounting.EntriesSum(entries).String()))
	}
	return nil
}

// resolveYear finds the financial year a transaction dated date belongs to.
// An explicit yearID must belong to the shop and contain the date. Without
// one, the year containing the date is used, or none when no year covers it.
// Writes into a CLOSED year fail with ErrYearClosed.
func (s *transactionService) resolveYear(ctx context.Context, shopID, yearID string, date time.Time) (*domain.FinancialYear, error) {
	var year *domain.FinancialYear
	var err error
	if yearID != "" {
		year, err = s.yearRepo.FindYearByID(ctx, yearID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("financial year %s: %w", yearID, apperrors.ErrValidation)
			}
			return nil, err
		}
		if year.ShopID != shopID {
			return nil, fmt.Errorf("financial year %s: %w", yearID, apperrors.ErrValidation)
		}
		if !year.Contains(date) {
			return nil, ErrDateOutsideYear
		}
	} else {
		year, err = s.yearRepo.FindYearForDate(ctx, shopID, date)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
	}
	if year.Status == domain.YearClosed {
		return nil, ErrYearClosed
	}
	return year, nil
}

// ensureYearOpen rejects changes to transactions stored in a CLOSED year.
func (s *transactionService) ensureYearOpen(ctx context.Context, txn *domain.Transaction) error {
	if txn.FinancialYearID == "" {
		return nil
	}
	year, err := s.yearRepo.FindYearByID(ctx, txn.FinancialYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if year.Status == domain.YearClosed {
		return ErrYearClosed
	}
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, shopID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}

	var entries []domain.Entry
	if len(req.Entries) > 0 {
		entries = accounting.NormalizeEntries(dto.ToDomainEntries(req.Entries))
	} else {
		var err error
		entries, err = accounting.BuildEntries(req.Type, req.TotalAmount, req.CashAccountID, req.CounterAccountID)
		if err != nil {
			return nil, err
		}
	}
	if err := s.checkEntries(ctx, shopID, entries); err != nil {
		return nil, err
	}

	yearID := ""
	if req.FinancialYearID != nil {
		yearID = *req.FinancialYearID
	}
	year, err := s.resolveYear(ctx, shopID, yearID, req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ShopID:        shopID,
		Type:          req.Type,
		Date:          req.Date.UTC(),
		TotalAmount:   req.TotalAmount,
		Description:   strings.TrimSpace(req.Description),
		PartyID:       req.PartyID,
		CategoryID:    req.CategoryID,
		Entries:       entries,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if year != nil {
		txn.FinancialYearID = year.FinancialYearID
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("shop_id", shopID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.TotalAmount.String()))
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionCreate, "transaction", txn.TransactionID,
		fmt.Sprintf("تم تسجيل عملية %s بمبلغ %s", arabicTxType(txn.Type), txn.TotalAmount.StringFixed(2)),
		fmt.Sprintf("%s of %s recorded", englishTxType(txn.Type), txn.TotalAmount.StringFixed(2))))
	return &txn, nil
}

func (s *transactionService) shopTransaction(ctx context.Context, shopID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, shopID string, transactionID string, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	return s.shopTransaction(ctx, shopID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, shopID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}
	query := portsrepo.TransactionQuery{
		FinancialYearID: params.FinancialYearID,
		AccountID:       params.AccountID,
		From:            params.From,
		To:              params.To,
		Limit:           params.Limit,
		NextToken:       params.NextToken,
	}
	if params.Type != "" {
		query.Types = []domain.TransactionType{domain.TransactionType(params.Type)}
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, shopID, query)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions", slog.String("shop_id", shopID))
		}
		return nil, err
	}
	resp := dto.ToListTransactionsResponse(txns, nextToken)
	return &resp, nil
}

// simpleAccounts recovers the cash and counter accounts of a two-line posting built by BuildEntries.
func simpleAccounts(txType domain.TransactionType, entries []domain.Entry) (cash, counter string, ok bool) {
	if len(entries) != 2 {
		return "", "", false
	}
	if txType == domain.TxSale {
		return entries[0].AccountID, entries[1].AccountID, true
	}
	return entries[1].AccountID, entries[0].AccountID, true
}

func (s *transactionService) UpdateTransaction(ctx context.Context, shopID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	txn, err := s.shopTransaction(ctx, shopID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureYearOpen(ctx, txn); err != nil {
		return nil, err
	}

	if req.Description != nil {
		txn.Description = strings.TrimSpace(*req.Description)
	}
	if req.PartyID != nil {
		txn.PartyID = *req.PartyID
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.TotalAmount != nil {
		txn.TotalAmount = *req.TotalAmount
	}

	entriesChanged := true
	switch {
	case len(req.Entries) > 0:
		txn.Entries = accounting.NormalizeEntries(dto.ToDomainEntries(req.Entries))
	case req.TotalAmount != nil || req.CashAccountID != nil || req.CounterAccountID != nil:
		cash, counter, ok := simpleAccounts(txn.Type, txn.Entries)
		if req.CashAccountID != nil {
			cash = *req.CashAccountID
		}
		if req.CounterAccountID != nil {
			counter = *req.CounterAccountID
		}
		if !ok && (cash == "" || counter == "") {
			return nil, ErrEntriesRequired
		}
		if txn.Entries, err = accounting.BuildEntries(txn.Type, txn.TotalAmount, cash, counter); err != nil {
			return nil, err
		}
	default:
		entriesChanged = false
	}
	if entriesChanged {
		if err := s.checkEntries(ctx, shopID, txn.Entries); err != nil {
			return nil, err
		}
	}

	if req.Date != nil {
		txn.Date = req.Date.UTC()
		year, err := s.resolveYear(ctx, shopID, "", txn.Date)
		if err != nil {
			return nil, err
		}
		txn.FinancialYearID = ""
		if year != nil {
			txn.FinancialYearID = year.FinancialYearID
		}
	}

	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionUpdate, "transaction", transactionID,
		fmt.Sprintf("تم تعديل عملية %s", arabicTxType(txn.Type)),
		fmt.Sprintf("%s updated", englishTxType(txn.Type))))
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, shopID string, transactionID string, userID string) error {
	if err := s.AuthorizeShop(ctx, userID, shopID); err != nil {
		return err
	}
	txn, err := s.shopTransaction(ctx, shopID, transactionID)
	if err != nil {
		return err
	}
	if err := s.ensureYearOpen(ctx, txn); err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	s.invalidate(shopID)
	s.record(ctx, activityEntry(shopID, userID, domain.ActionDelete, "transaction", transactionID,
		fmt.Sprintf("تم حذف عملية %s بمبلغ %s", arabicTxType(txn.Type), txn.TotalAmount.StringFixed(2)),
		fmt.Sprintf("%s of %s deleted", englishTxType(txn.Type), txn.TotalAmount.StringFixed(2))))
	return nil
}

func arabicTxType(t domain.TransactionType) string {
	switch t {
	case domain.TxSale:
		return "بيع"
	case domain.TxPurchase:
		return "شراء"
	case domain.TxExpense:
		return "مصروف"
	case domain.TxTransfer:
		return "تحويل"
	}
	return string(t)
}

func englishTxType(t domain.TransactionType) string {
	switch t {
	case domain.TxSale:
		return "Sale"
	case domain.TxPurchase:
		return "Purchase"
	case domain.TxExpense:
		return "Expense"
	case domain.TxTransfer:
		return "Transfer"
	}
	return string(t)
}
