package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/core/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/handlers"
	"github.com/hossamSharif/shop_ledger/internal/middleware"
	"github.com/hossamSharif/shop_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, shopID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, shopID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, shopID string, userID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, shopID, userID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, shopID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, shopID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, shopID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, shopID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, shopID string, accountID string, userID string) error {
	args := m.Called(ctx, shopID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetAccountTree(ctx context.Context, shopID string, userID string) ([]domain.AccountTreeNode, error) {
	args := m.Called(ctx, shopID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTreeNode), args.Error(1)
}

func (m *MockAccountService) GetAccountBalances(ctx context.Context, shopID string, userID string) ([]domain.Account, map[string]decimal.Decimal, error) {
	args := m.Called(ctx, shopID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Get(1).(map[string]decimal.Decimal), args.Error(2)
}

func (m *MockAccountService) GetAccountStatement(ctx context.Context, shopID string, accountID string, from, to time.Time, userID string) (*domain.AccountStatement, error) {
	args := m.Called(ctx, shopID, accountID, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountStatement), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, shopID string, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, shopID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, shopID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, shopID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, shopID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, shopID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, shopID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, shopID, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, shopID string, transactionID string, userID string) error {
	args := m.Called(ctx, shopID, transactionID, userID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type ShopLedgerHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockAccountService     *MockAccountService
	mockTransactionService *MockTransactionService
	jwtSecret              string
	shopID                 string
	userID                 string
}

func (suite *ShopLedgerHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		suite.Require().NoError(dto.RegisterValidators(v))
	}
}

func (suite *ShopLedgerHandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.shopID = "shop-1"
	suite.userID = "user-1"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)
	suite.mockTransactionService = new(MockTransactionService)

	shop := suite.router.Group("/api/v1/shops/:shopID")
	handlers.RegisterAccountRoutes(shop, suite.mockAccountService)
	handlers.RegisterTransactionRoutes(shop, suite.mockTransactionService)
}

// generateTestToken signs an access token the way the login endpoint does.
func (suite *ShopLedgerHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(&domain.User{UserID: userID, Role: domain.RoleUser, ShopID: suite.shopID}, suite.jwtSecret, time.Hour, "shop-ledger-test")
	suite.Require().NoError(err)
	return token
}

func (suite *ShopLedgerHandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ShopLedgerHandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

// --- Test Cases ---

func (suite *ShopLedgerHandlerTestSuite) TestCreateAccount_Success() {
	created := &domain.Account{
		AccountID:      "acc-1",
		ShopID:         suite.shopID,
		Code:           "1101",
		Name:           "الصندوق",
		ParentID:       "acc-parent",
		Classification: domain.Asset,
		Nature:         domain.DebitNature,
		Type:           domain.AccountTypeCash,
		IsActive:       true,
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.shopID,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Code == "1101" && req.ParentID != nil && *req.ParentID == "acc-parent"
		}), suite.userID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/shops/shop-1/accounts", map[string]any{
		"code":     "1101",
		"name":     "الصندوق",
		"parentID": "acc-parent",
		"type":     "CASH",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.False(resp.IsMain)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *ShopLedgerHandlerTestSuite) TestCreateAccount_InvalidCode() {
	w := suite.do(http.MethodPost, "/api/v1/shops/shop-1/accounts", map[string]any{
		"code":           "bad code!",
		"name":           "Cash",
		"classification": "ASSET",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShopLedgerHandlerTestSuite) TestCreateAccount_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "duplicate code", err: fmt.Errorf("%w: account 1101", apperrors.ErrDuplicate), wantStatus: http.StatusConflict},
		{name: "parent not main", err: services.ErrParentNotMain, wantStatus: http.StatusBadRequest},
		{name: "forbidden", err: apperrors.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "internal", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantBody: "Failed to create account"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockAccountService.On("CreateAccount", mock.Anything, suite.shopID, mock.Anything, suite.userID).
				Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/shops/shop-1/accounts", map[string]any{
				"code":           "1101",
				"name":           "Cash",
				"classification": "ASSET",
			})

			suite.Equal(tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				suite.Equal(tt.wantBody, suite.errorBody(w), "internal details are not leaked")
			}
		})
	}
}

func (suite *ShopLedgerHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.shopID, "missing", suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/shops/shop-1/accounts/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *ShopLedgerHandlerTestSuite) TestDeactivateAccount_HasChildren() {
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, suite.shopID, "acc-main", suite.userID).
		Return(services.ErrAccountHasChildren).Once()

	w := suite.do(http.MethodDelete, "/api/v1/shops/shop-1/accounts/acc-main", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ShopLedgerHandlerTestSuite) TestGetAccountBalances_DisplaysCreditNatureAsPositive() {
	accounts := []domain.Account{
		{AccountID: "cash", Code: "1101", Name: "Cash", Nature: domain.DebitNature, Classification: domain.Asset},
		{AccountID: "sales", Code: "4100", Name: "Sales", Nature: domain.CreditNature, Classification: domain.Revenue},
	}
	balances := map[string]decimal.Decimal{
		"cash":  decimal.NewFromInt(120),
		"sales": decimal.NewFromInt(-120),
	}
	suite.mockAccountService.On("GetAccountBalances", mock.Anything, suite.shopID, suite.userID).
		Return(accounts, balances, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/shops/shop-1/accounts/balances", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Balances, 2)
	suite.True(resp.Balances[1].Balance.Equal(decimal.NewFromInt(-120)))
	suite.True(resp.Balances[1].DisplayBalance.Equal(decimal.NewFromInt(120)))
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShopLedgerHandlerTestSuite) TestGetAccountStatement_ParsesRange() {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	statement := &domain.AccountStatement{Account: domain.Account{AccountID: "cash"}, From: from, To: to}

	suite.mockAccountService.On("GetAccountStatement", mock.Anything, suite.shopID, "cash",
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(from) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(to) }),
		suite.userID).Return(statement, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/shops/shop-1/accounts/cash/statement?from=2024-01-01&to=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *ShopLedgerHandlerTestSuite) TestListTransactions_Success() {
	limit := 10
	next := "token-2"
	expectedResponse := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: "t-2", ShopID: suite.shopID, Type: domain.TxSale, TotalAmount: decimal.NewFromInt(100)},
			{TransactionID: "t-1", ShopID: suite.shopID, Type: domain.TxExpense, TotalAmount: decimal.NewFromInt(40)},
		},
		NextToken: &next,
	}

	suite.mockTransactionService.On("ListTransactions",
		mock.Anything,
		suite.shopID,
		suite.userID, // Expect the user ID from the token
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit && p.Type == "SALE" && p.NextToken != nil && *p.NextToken == "token-1"
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/shops/%s/transactions?limit=%d&type=SALE&nextToken=token-1", suite.shopID, limit)
	w := suite.do(http.MethodGet, url, nil)

	suite.Equal(http.StatusOK, w.Code, "Expected status OK")

	var responseBody dto.ListTransactionsResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Len(responseBody.Transactions, 2)
	suite.Require().NotNil(responseBody.NextToken)
	suite.Equal("token-2", *responseBody.NextToken)

	suite.mockTransactionService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShopLedgerHandlerTestSuite) TestListTransactions_RejectsUnknownType() {
	w := suite.do(http.MethodGet, "/api/v1/shops/shop-1/transactions?type=REFUND", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShopLedgerHandlerTestSuite) TestCreateTransaction_ClosedYear() {
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, suite.shopID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Type == domain.TxSale && req.TotalAmount.Equal(decimal.NewFromInt(250))
		}), suite.userID).Return(nil, services.ErrYearClosed).Once()

	w := suite.do(http.MethodPost, "/api/v1/shops/shop-1/transactions", map[string]any{
		"type":             "SALE",
		"date":             "2023-12-30T00:00:00Z",
		"totalAmount":      "250",
		"cashAccountID":    "cash",
		"counterAccountID": "sales",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.errorBody(w), "closed")
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *ShopLedgerHandlerTestSuite) TestCreateTransaction_RejectsNonPositiveTotal() {
	w := suite.do(http.MethodPost, "/api/v1/shops/shop-1/transactions", map[string]any{
		"type":             "EXPENSE",
		"date":             "2024-02-01T00:00:00Z",
		"totalAmount":      "-5",
		"cashAccountID":    "cash",
		"counterAccountID": "rent",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShopLedgerHandlerTestSuite) TestDeleteTransaction() {
	suite.mockTransactionService.On("DeleteTransaction", mock.Anything, suite.shopID, "t-1", suite.userID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/shops/shop-1/transactions/t-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *ShopLedgerHandlerTestSuite) TestRequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/shops/shop-1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestShopLedgerHandlers(t *testing.T) {
	suite.Run(t, new(ShopLedgerHandlerTestSuite))
}
