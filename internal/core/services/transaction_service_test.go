package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/core/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo     *MockTransactionRepository
	accountRepo *MockAccountRepository
	yearRepo    *MockFinancialYearRepository
	authorizer  *MockAuthorizer
	activity    *recordingActivity
	cache       *countingCache
	service     portssvc.TransactionSvcFacade

	shopID   string
	userID   string
	cash     domain.Account
	sales    domain.Account
	openYear domain.FinancialYear
	saleDate time.Time
}

func (suite *TransactionServiceTestSuite) newService(strict bool) portssvc.TransactionSvcFacade {
	return services.NewTransactionService(suite.txnRepo, suite.accountRepo, suite.yearRepo,
		services.WithTransactionAuthorizer(suite.authorizer),
		services.WithTransactionActivity(suite.activity),
		services.WithTransactionCache(suite.cache),
		services.WithStrictDoubleEntry(strict),
	)
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.txnRepo = new(MockTransactionRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.yearRepo = new(MockFinancialYearRepository)
	suite.authorizer = new(MockAuthorizer)
	suite.activity = &recordingActivity{}
	suite.cache = &countingCache{}
	suite.service = suite.newService(true)

	suite.shopID = "shop-1"
	suite.userID = "user-1"
	suite.cash = domain.Account{AccountID: "cash", ShopID: suite.shopID, Code: "1001", Classification: domain.Asset, Nature: domain.DebitNature, IsActive: true}
	suite.sales = domain.Account{AccountID: "sales", ShopID: suite.shopID, Code: "4001", Classification: domain.Revenue, Nature: domain.CreditNature, IsActive: true}
	suite.openYear = domain.FinancialYear{
		FinancialYearID: "fy-2024",
		ShopID:          suite.shopID,
		Name:            "2024",
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:          domain.YearOpen,
	}
	suite.saleDate = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) accounts(accs ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accs))
	for _, a := range accs {
		out[a.AccountID] = a
	}
	return out
}

func (suite *TransactionServiceTestSuite) saleRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type:             domain.TxSale,
		Date:             suite.saleDate,
		TotalAmount:      dec("250"),
		Description:      "  morning sales  ",
		CashAccountID:    suite.cash.AccountID,
		CounterAccountID: suite.sales.AccountID,
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DerivesEntries() {
	ctx := context.Background()
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", ctx, []string{"cash", "sales"}).Return(suite.accounts(suite.cash, suite.sales), nil).Once()
	suite.yearRepo.On("FindYearForDate", ctx, suite.shopID, suite.saleDate).Return(&suite.openYear, nil).Once()
	suite.txnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.shopID, suite.saleRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal("morning sales", txn.Description)
	suite.Equal("fy-2024", txn.FinancialYearID)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.Require().Len(txn.Entries, 2)
	suite.Equal("cash", txn.Entries[0].AccountID)
	suite.True(txn.Entries[0].Amount.Equal(dec("250")))
	suite.Equal("sales", txn.Entries[1].AccountID)
	suite.True(txn.Entries[1].Amount.Equal(dec("-250")))

	suite.Equal(1, suite.cache.invalidated[suite.shopID])
	suite.Require().Len(suite.activity.entries, 1)
	suite.Equal(domain.ActionCreate, suite.activity.entries[0].Action)
	suite.Contains(suite.activity.entries[0].MessageEn, "Sale of 250.00")
	suite.NotEmpty(suite.activity.entries[0].Message)

	suite.authorizer.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
	suite.yearRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoCoveringYear() {
	ctx := context.Background()
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(suite.cash, suite.sales), nil).Once()
	suite.yearRepo.On("FindYearForDate", ctx, suite.shopID, suite.saleDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.txnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.FinancialYearID == ""
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.shopID, suite.saleRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.Empty(txn.FinancialYearID)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AuthorizationFail() {
	ctx := context.Background()
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.shopID, suite.saleRequest(), suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.Empty(suite.activity.entries)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnbalancedStrict() {
	ctx := context.Background()
	req := suite.saleRequest()
	req.Entries = []dto.EntryRequest{
		{AccountID: "cash", Amount: dec("250"), Side: domain.Debit},
		{AccountID: "sales", Amount: dec("200"), Side: domain.Credit},
	}
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", ctx, []string{"cash", "sales"}).Return(suite.accounts(suite.cash, suite.sales), nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.shopID, req, suite.userID)

	suite.ErrorIs(err, accounting.ErrUnbalancedEntries)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnbalancedLenient() {
	ctx := context.Background()
	service := suite.newService(false)
	req := suite.saleRequest()
	req.Entries = []dto.EntryRequest{
		{AccountID: "cash", Amount: dec("250"), Side: domain.Debit},
		{AccountID: "sales", Amount: dec("200"), Side: domain.Credit},
	}
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", ctx, []string{"cash", "sales"}).Return(suite.accounts(suite.cash, suite.sales), nil).Once()
	suite.yearRepo.On("FindYearForDate", ctx, suite.shopID, suite.saleDate).Return(&suite.openYear, nil).Once()
	suite.txnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := service.CreateTransaction(ctx, suite.shopID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(txn.Entries[1].Amount.Equal(dec("-200")), "credit side entries are stored negative")
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountFromAnotherShop() {
	ctx := context.Background()
	foreign := suite.sales
	foreign.ShopID = "other-shop"
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(suite.cash, foreign), nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.shopID, suite.saleRequest(), suite.userID)

	suite.ErrorIs(err, services.ErrAccountNotInShop)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveOrUnknownAccount() {
	ctx := context.Background()
	inactive := suite.sales
	inactive.IsActive = false

	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Twice()
	suite.accountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(suite.cash, inactive), nil).Once()
	_, err := suite.service.CreateTransaction(ctx, suite.shopID, suite.saleRequest(), suite.userID)
	suite.ErrorIs(err, services.ErrAccountInactive)

	suite.accountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(suite.cash), nil).Once()
	_, err = suite.service.CreateTransaction(ctx, suite.shopID, suite.saleRequest(), suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ClosedYear() {
	ctx := context.Background()
	closed := suite.openYear
	closed.Status = domain.YearClosed
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(suite.cash, suite.sales), nil).Once()
	suite.yearRepo.On("FindYearForDate", ctx, suite.shopID, suite.saleDate).Return(&closed, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.shopID, suite.saleRequest(), suite.userID)

	suite.ErrorIs(err, services.ErrYearClosed)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExplicitYear() {
	ctx := context.Background()
	yearID := suite.openYear.FinancialYearID

	tests := []struct {
		name    string
		year    domain.FinancialYear
		date    time.Time
		wantErr error
	}{
		{name: "date outside year", year: suite.openYear, date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), wantErr: services.ErrDateOutsideYear},
		{name: "year of another shop", year: func() domain.FinancialYear { y := suite.openYear; y.ShopID = "other"; return y }(), date: suite.saleDate, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			req := suite.saleRequest()
			req.Date = tt.date
			req.FinancialYearID = &yearID
			year := tt.year
			suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
			suite.accountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(suite.cash, suite.sales), nil).Once()
			suite.yearRepo.On("FindYearByID", ctx, yearID).Return(&year, nil).Once()

			_, err := suite.service.CreateTransaction(ctx, suite.shopID, req, suite.userID)

			suite.ErrorIs(err, tt.wantErr)
			suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
		})
	}
}

func (suite *TransactionServiceTestSuite) storedSale() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   "tx-1",
		ShopID:          suite.shopID,
		FinancialYearID: suite.openYear.FinancialYearID,
		Type:            domain.TxSale,
		Date:            suite.saleDate,
		TotalAmount:     dec("100"),
		Entries: []domain.Entry{
			{AccountID: "cash", Amount: dec("100"), Side: domain.Debit},
			{AccountID: "sales", Amount: dec("-100"), Side: domain.Credit},
		},
	}
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RebuildsEntriesOnAmountChange() {
	ctx := context.Background()
	amount := dec("140")
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.storedSale(), nil).Once()
	suite.yearRepo.On("FindYearByID", ctx, "fy-2024").Return(&suite.openYear, nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", ctx, []string{"cash", "sales"}).Return(suite.accounts(suite.cash, suite.sales), nil).Once()
	suite.txnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.shopID, "tx-1", dto.UpdateTransactionRequest{TotalAmount: &amount}, suite.userID)

	suite.Require().NoError(err)
	suite.True(txn.TotalAmount.Equal(amount))
	suite.True(txn.Entries[0].Amount.Equal(dec("140")))
	suite.True(txn.Entries[1].Amount.Equal(dec("-140")))
	suite.Equal(suite.userID, txn.LastUpdatedBy)
	suite.Equal(1, suite.cache.invalidated[suite.shopID])
	suite.txnRepo.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_DescriptionOnlySkipsEntryChecks() {
	ctx := context.Background()
	desc := "corrected"
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.storedSale(), nil).Once()
	suite.yearRepo.On("FindYearByID", ctx, "fy-2024").Return(&suite.openYear, nil).Once()
	suite.txnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.shopID, "tx-1", dto.UpdateTransactionRequest{Description: &desc}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("corrected", txn.Description)
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ClosedYear() {
	ctx := context.Background()
	closed := suite.openYear
	closed.Status = domain.YearClosed
	desc := "late fix"
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.storedSale(), nil).Once()
	suite.yearRepo.On("FindYearByID", ctx, "fy-2024").Return(&closed, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.shopID, "tx-1", dto.UpdateTransactionRequest{Description: &desc}, suite.userID)

	suite.ErrorIs(err, services.ErrYearClosed)
	suite.txnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_DateMovesYear() {
	ctx := context.Background()
	newDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	next := domain.FinancialYear{FinancialYearID: "fy-2025", ShopID: suite.shopID, Status: domain.YearOpen,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)}
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.storedSale(), nil).Once()
	suite.yearRepo.On("FindYearByID", ctx, "fy-2024").Return(&suite.openYear, nil).Once()
	suite.yearRepo.On("FindYearForDate", ctx, suite.shopID, newDate).Return(&next, nil).Once()
	suite.txnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.shopID, "tx-1", dto.UpdateTransactionRequest{Date: &newDate}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("fy-2025", txn.FinancialYearID)
	suite.Equal(newDate, txn.Date)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_OtherShopIsNotFound() {
	ctx := context.Background()
	stored := suite.storedSale()
	stored.ShopID = "other-shop"
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "tx-1").Return(stored, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.shopID, "tx-1", suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction() {
	ctx := context.Background()
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.storedSale(), nil).Once()
	suite.yearRepo.On("FindYearByID", ctx, "fy-2024").Return(&suite.openYear, nil).Once()
	suite.txnRepo.On("DeleteTransaction", ctx, "tx-1").Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.shopID, "tx-1", suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(suite.activity.entries, 1)
	suite.Equal(domain.ActionDelete, suite.activity.entries[0].Action)
	suite.Equal(1, suite.cache.invalidated[suite.shopID])
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsAndFilters() {
	ctx := context.Background()
	token := "next"
	suite.authorizer.On("AuthorizeShopAccess", ctx, suite.userID, suite.shopID).Return(nil).Once()
	suite.txnRepo.On("ListTransactions", ctx, suite.shopID, mock.MatchedBy(func(q portsrepo.TransactionQuery) bool {
		return q.Limit == 20 && len(q.Types) == 1 && q.Types[0] == domain.TxSale
	})).Return([]domain.Transaction{*suite.storedSale()}, &token, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.shopID, suite.userID, dto.ListTransactionsParams{Type: "SALE"})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
	suite.txnRepo.AssertExpectations(suite.T())
}
