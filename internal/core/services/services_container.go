package services

import (
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/platform/cache"
	"github.com/hossamSharif/shop_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The user service authorizes shop access for every other service.
	container.User = NewUserService(repos.UserRepo, WithUserShopReader(repos.ShopRepo))
	authorizer := container.User.(portssvc.ShopAuthorizerSvc)

	reportCache := cache.NewReportCache(cfg.ReportCacheTTL)

	container.Activity = NewActivityService(repos.ActivityRepo, WithActivityAuthorizer(authorizer))

	container.Shop = NewShopService(
		repos.ShopRepo,
		WithShopAuthorizer(authorizer),
		WithShopActivity(container.Activity),
		WithShopCache(reportCache),
	)

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.TransactionRepo,
		WithAccountAuthorizer(authorizer),
		WithAccountActivity(container.Activity),
		WithAccountCache(reportCache),
	)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.FinancialYearRepo,
		WithTransactionAuthorizer(authorizer),
		WithTransactionActivity(container.Activity),
		WithTransactionCache(reportCache),
		WithStrictDoubleEntry(cfg.StrictDoubleEntry),
	)

	container.FinancialYear = NewFinancialYearService(
		repos.FinancialYearRepo,
		WithFinancialYearAuthorizer(authorizer),
		WithFinancialYearActivity(container.Activity),
		WithFinancialYearCache(reportCache),
	)

	container.Reporting = NewReportingService(repos,
		WithReportingAuthorizer(authorizer),
		WithReportCache(reportCache),
	)

	container.TokenService = NewTokenService(cfg, container.User)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ShopAuthorizerSvc      = (*userService)(nil)
	_ portssvc.ReportCacheInvalidator = (*cache.ReportCache)(nil)
)
