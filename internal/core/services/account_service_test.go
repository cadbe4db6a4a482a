package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/core/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	txnRepo     *MockTransactionRepository
	authorizer  *MockAuthorizer
	activity    *recordingActivity
	cache       *countingCache
	service     portssvc.AccountSvcFacade

	shopID string
	userID string
	sales  domain.Account
	cash   domain.Account
	box    domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.authorizer = new(MockAuthorizer)
	suite.activity = &recordingActivity{}
	suite.cache = &countingCache{}
	suite.service = services.NewAccountService(suite.accountRepo, suite.txnRepo,
		services.WithAccountAuthorizer(suite.authorizer),
		services.WithAccountActivity(suite.activity),
		services.WithAccountCache(suite.cache),
	)
	suite.shopID = "shop-1"
	suite.userID = "user-1"
	suite.authorizer.On("AuthorizeShopAccess", mock.Anything, suite.userID, suite.shopID).Return(nil).Maybe()

	suite.sales = domain.Account{AccountID: "sales", ShopID: suite.shopID, Code: "4000", Name: "المبيعات", NameEn: "Sales",
		Classification: domain.Revenue, Nature: domain.CreditNature, Type: domain.AccountTypeSales, IsActive: true}
	suite.cash = domain.Account{AccountID: "cash", ShopID: suite.shopID, Code: "1000", Name: "الصندوق", NameEn: "Cash",
		Classification: domain.Asset, Nature: domain.DebitNature, Type: domain.AccountTypeCash, IsActive: true}
	suite.box = domain.Account{AccountID: "box", ShopID: suite.shopID, Code: "1001", Name: "صندوق المحل", ParentID: "cash",
		Classification: domain.Asset, Nature: domain.DebitNature, Type: domain.AccountTypeCash, IsActive: true, OpeningBalance: dec("50")}
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func strRef(s string) *string {
	return &s
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SubAccountInheritsFromParent() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByCode", ctx, suite.shopID, "4003").Return(nil, apperrors.ErrNotFound).Once()
	suite.accountRepo.On("FindAccountByID", ctx, "sales").Return(&suite.sales, nil).Once()
	suite.accountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, suite.shopID, dto.CreateAccountRequest{
		Code:           " 4003 ",
		Name:           "مبيعات الجملة",
		NameEn:         "Wholesale",
		ParentID:       strRef("sales"),
		Classification: domain.Asset,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("4003", acc.Code)
	suite.Equal("sales", acc.ParentID)
	suite.Equal(domain.Revenue, acc.Classification, "classification follows the parent")
	suite.Equal(domain.CreditNature, acc.Nature)
	suite.Equal(domain.AccountTypeSales, acc.Type)
	suite.Equal(1, suite.cache.invalidated[suite.shopID])
	suite.Require().Len(suite.activity.entries, 1)
	suite.Contains(suite.activity.entries[0].MessageEn, "Wholesale")
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MainAccount() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByCode", ctx, suite.shopID, "7000").Return(nil, apperrors.ErrNotFound).Once()
	suite.accountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, suite.shopID, dto.CreateAccountRequest{
		Code:           "7000",
		Name:           "قروض",
		Classification: domain.Liability,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(acc.IsMain())
	suite.Equal(domain.CreditNature, acc.Nature)
	suite.Equal(domain.AccountTypeOther, acc.Type)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentRules() {
	ctx := context.Background()
	foreign := suite.sales
	foreign.ShopID = "shop-2"

	tests := []struct {
		name    string
		parent  *domain.Account
		findErr error
		wantErr error
	}{
		{name: "parent is a sub-account", parent: &suite.box, wantErr: services.ErrParentNotMain},
		{name: "parent in another shop", parent: &foreign, wantErr: services.ErrAccountNotInShop},
		{name: "parent missing", findErr: apperrors.ErrNotFound, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			repo := new(MockAccountRepository)
			service := services.NewAccountService(repo, suite.txnRepo, services.WithAccountAuthorizer(suite.authorizer))
			repo.On("FindAccountByCode", ctx, suite.shopID, "9999").Return(nil, apperrors.ErrNotFound).Once()
			if tt.parent != nil {
				repo.On("FindAccountByID", ctx, "parent").Return(tt.parent, nil).Once()
			} else {
				repo.On("FindAccountByID", ctx, "parent").Return(nil, tt.findErr).Once()
			}

			_, err := service.CreateAccount(ctx, suite.shopID, dto.CreateAccountRequest{
				Code: "9999", Name: "x", ParentID: strRef("parent"),
			}, suite.userID)

			suite.ErrorIs(err, tt.wantErr)
			repo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
		})
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByCode", ctx, suite.shopID, "1000").Return(&suite.cash, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.shopID, dto.CreateAccountRequest{
		Code: "1000", Name: "dup", Classification: domain.Asset,
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.accountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MainWithoutClassification() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByCode", ctx, suite.shopID, "8000").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.shopID, dto.CreateAccountRequest{Code: "8000", Name: "?"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccount_OtherShopIsNotFound() {
	ctx := context.Background()
	foreign := suite.cash
	foreign.ShopID = "shop-2"
	suite.accountRepo.On("FindAccountByID", ctx, "cash").Return(&foreign, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.shopID, "cash", suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_WithActiveChildren() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "cash").Return(&suite.cash, nil).Once()
	suite.accountRepo.On("ListAccountsByShop", ctx, suite.shopID, false).Return([]domain.Account{suite.cash, suite.box}, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.shopID, "cash", suite.userID)

	suite.ErrorIs(err, services.ErrAccountHasChildren)
	suite.accountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Leaf() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "box").Return(&suite.box, nil).Once()
	suite.accountRepo.On("DeactivateAccount", ctx, "box", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.DeactivateAccount(ctx, suite.shopID, "box", suite.userID))
	suite.Len(suite.activity.entries, 1)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "box").Return(&suite.box, nil).Once()
	suite.accountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.NameEn == "Drawer" && a.LastUpdatedBy == "user-1"
	})).Return(nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, suite.shopID, "box", dto.UpdateAccountRequest{NameEn: strRef(" Drawer ")}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Drawer", acc.NameEn)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) chartAndTransactions() {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	suite.accountRepo.On("ListAccountsByShop", mock.Anything, suite.shopID, true).
		Return([]domain.Account{suite.cash, suite.box, suite.sales}, nil).Once()
	suite.txnRepo.On("ListTransactionsByShops", mock.Anything, []string{suite.shopID}).Return([]domain.Transaction{
		{TransactionID: "t1", ShopID: suite.shopID, Type: domain.TxSale, Date: day, TotalAmount: dec("120"),
			Entries: []domain.Entry{{AccountID: "box", Amount: dec("120")}, {AccountID: "sales", Amount: dec("-120")}}},
	}, nil).Once()
}

func (suite *AccountServiceTestSuite) TestGetAccountTree() {
	ctx := context.Background()
	suite.chartAndTransactions()

	tree, err := suite.service.GetAccountTree(ctx, suite.shopID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(tree, 2)
	suite.Equal("cash", tree[0].Account.AccountID)
	suite.True(tree[0].Balance.Equal(dec("170")), "main account rolls up its leaf")
	suite.Require().Len(tree[0].Children, 1)
	suite.Equal(1, tree[0].Children[0].Depth)
	suite.Equal("sales", tree[1].Account.AccountID)
	suite.True(tree[1].Balance.Equal(dec("-120")))
	suite.True(tree[1].DisplayBalance.Equal(dec("120")))
}

func (suite *AccountServiceTestSuite) TestGetAccountBalances() {
	ctx := context.Background()
	suite.chartAndTransactions()

	accounts, balances, err := suite.service.GetAccountBalances(ctx, suite.shopID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(accounts, 3)
	suite.True(balances["box"].Equal(dec("170")))
}

func (suite *AccountServiceTestSuite) TestGetAccountStatement() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "box").Return(&suite.box, nil).Once()
	suite.chartAndTransactions()

	stmt, err := suite.service.GetAccountStatement(ctx, suite.shopID, "box",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), suite.userID)

	suite.Require().NoError(err)
	suite.True(stmt.OpeningBalance.Equal(dec("50")))
	suite.Require().Len(stmt.Lines, 1)
	suite.True(stmt.ClosingBalance.Equal(dec("170")))
}

func (suite *AccountServiceTestSuite) TestGetAccountStatement_InvertedRange() {
	_, err := suite.service.GetAccountStatement(context.Background(), suite.shopID, "box",
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}
