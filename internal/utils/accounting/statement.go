package accounting

import (
	"sort"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// statementAccounts returns the accounts whose postings make up the balance of
// accountID: the account itself and its leaf descendants.
func statementAccounts(forest *AccountForest, accountID string) map[string]bool {
	ids := map[string]bool{accountID: true}
	for _, acc := range forest.Descendants(accountID) {
		if forest.IsLeaf(acc.AccountID) {
			ids[acc.AccountID] = true
		}
	}
	return ids
}

// BuildStatement lists the movements of an account between from and to, both
// inclusive by day. Movements before from are brought forward into the
// opening balance. Balances are in display sign; debit and credit columns are not.
func BuildStatement(forest *AccountForest, accountID string, txns []domain.Transaction, from, to time.Time) (domain.AccountStatement, bool) {
	account, ok := forest.Account(accountID)
	if !ok {
		return domain.AccountStatement{}, false
	}
	ids := statementAccounts(forest, accountID)

	raw := decimal.Zero
	for id := range ids {
		if acc, ok := forest.Account(id); ok {
			raw = raw.Add(acc.OpeningBalance)
		}
	}

	sorted := make([]domain.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	window := domain.FinancialYear{StartDate: from, EndDate: to}
	fromDay := truncateDay(from)

	stmt := domain.AccountStatement{
		Account:     account,
		From:        from,
		To:          to,
		Lines:       []domain.StatementLine{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	var opened bool
	for _, txn := range sorted {
		before := truncateDay(txn.Date).Before(fromDay)
		inside := window.Contains(txn.Date)
		if !before && !inside {
			continue
		}
		if inside && !opened {
			stmt.OpeningBalance = DisplayBalance(account, raw)
			opened = true
		}
		for _, e := range txn.Entries {
			if !ids[e.AccountID] {
				continue
			}
			raw = raw.Add(e.Amount)
			if before {
				continue
			}
			debit, credit := DebitCredit(e.Amount)
			stmt.TotalDebit = stmt.TotalDebit.Add(debit)
			stmt.TotalCredit = stmt.TotalCredit.Add(credit)
			stmt.Lines = append(stmt.Lines, domain.StatementLine{
				TransactionID:  txn.TransactionID,
				Date:           txn.Date,
				Type:           txn.Type,
				Description:    txn.Description,
				Debit:          debit,
				Credit:         credit,
				RunningBalance: DisplayBalance(account, raw),
			})
		}
	}
	if !opened {
		stmt.OpeningBalance = DisplayBalance(account, raw)
	}
	stmt.ClosingBalance = DisplayBalance(account, raw)
	return stmt, true
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
