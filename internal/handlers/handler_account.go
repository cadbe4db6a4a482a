package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/middleware"
	"github.com/hossamSharif/shop_ledger/internal/utils/accounting"
)

// accountHandler handles HTTP requests related to a shop's chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers account routes under a /shops/:shopID group.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.getAccountTree)
		accounts.GET("/balances", h.getAccountBalances)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/:accountID/statement", h.getAccountStatement)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds a main account or a sub-account to the shop's chart of accounts. A sub-account inherits classification and nature from its parent.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account code already used in this shop"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	shopID := c.Param("shopID")
	logger.Info("Received request to create account", slog.String("shop_id", shopID), slog.String("code", req.Code))

	account, err := h.accountService.CreateAccount(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List a shop's accounts
// @Tags accounts
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   includeInactive query bool false "Include inactive accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("shopID"), userID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /shops/{shopID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("shopID"), c.Param("accountID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID}/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("shopID"), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Accounts with active sub-accounts cannot be deactivated.
// @Tags accounts
// @Param   shopID path string true "Shop ID"
// @Param   accountID path string true "Account ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account has active sub-accounts"
// @Security BearerAuth
// @Router /shops/{shopID}/accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("shopID"), c.Param("accountID"), userID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAccountTree godoc
// @Summary Chart of accounts as a tree
// @Description Returns the account hierarchy with balances rolled up from sub-accounts.
// @Tags accounts
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {object} dto.AccountTreeResponse
// @Security BearerAuth
// @Router /shops/{shopID}/accounts/tree [get]
func (h *accountHandler) getAccountTree(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tree, err := h.accountService.GetAccountTree(c.Request.Context(), c.Param("shopID"), userID)
	if err != nil {
		respondError(c, err, "Failed to build account tree")
		return
	}
	c.JSON(http.StatusOK, dto.AccountTreeResponse{Accounts: tree})
}

// getAccountBalances godoc
// @Summary Account balances
// @Tags accounts
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {object} dto.AccountBalancesResponse
// @Security BearerAuth
// @Router /shops/{shopID}/accounts/balances [get]
func (h *accountHandler) getAccountBalances(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accounts, balances, err := h.accountService.GetAccountBalances(c.Request.Context(), c.Param("shopID"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}

	resp := dto.AccountBalancesResponse{Balances: make([]dto.AccountBalanceResponse, len(accounts))}
	for i, acc := range accounts {
		balance := balances[acc.AccountID]
		resp.Balances[i] = dto.AccountBalanceResponse{
			AccountID:      acc.AccountID,
			Code:           acc.Code,
			Name:           acc.Name,
			Balance:        balance,
			DisplayBalance: accounting.DisplayBalance(acc, balance),
		}
	}
	c.JSON(http.StatusOK, resp)
}

// getAccountStatement godoc
// @Summary Account statement
// @Description Lists the account's movements in a period with a running balance. Defaults to the current year to date.
// @Tags accounts
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.AccountStatement
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shops/{shopID}/accounts/{accountID}/statement [get]
func (h *accountHandler) getAccountStatement(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := now
	if params.From != nil {
		from = *params.From
	}
	if params.To != nil {
		to = *params.To
	}

	statement, err := h.accountService.GetAccountStatement(c.Request.Context(), c.Param("shopID"), c.Param("accountID"), from, to, userID)
	if err != nil {
		respondError(c, err, "Failed to build account statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}
