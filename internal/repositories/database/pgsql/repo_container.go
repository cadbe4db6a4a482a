package pgsql

import (
	portsrepo "github.com/hossamSharif/shop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ShopRepo:          newPgxShopRepository(dbPool),
		AccountRepo:       newPgxAccountRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		FinancialYearRepo: newPgxFinancialYearRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
		ActivityRepo:      newPgxActivityRepository(dbPool),
		ReportingRepo:     newReportingRepository(dbPool),
	}
}
