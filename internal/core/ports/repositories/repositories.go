package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ShopRepo          ShopRepositoryFacade
	AccountRepo       AccountRepositoryFacade
	TransactionRepo   TransactionRepositoryFacade
	FinancialYearRepo FinancialYearRepositoryFacade
	UserRepo          UserRepositoryFacade
	ActivityRepo      ActivityRepository
	ReportingRepo     ReportingRepository
}
