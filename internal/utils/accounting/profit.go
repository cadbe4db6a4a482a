package accounting

import (
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction slice. Zero fields match everything.
type TransactionFilter struct {
	ShopID          string
	FinancialYearID string
	AccountID       string
	Types           []domain.TransactionType
	From            *time.Time // Inclusive
	To              *time.Time // Inclusive
}

// Matches reports whether a single transaction passes the filter.
func (f TransactionFilter) Matches(txn domain.Transaction) bool {
	if f.ShopID != "" && txn.ShopID != f.ShopID {
		return false
	}
	if f.FinancialYearID != "" && txn.FinancialYearID != f.FinancialYearID {
		return false
	}
	if f.From != nil && txn.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && txn.Date.After(*f.To) {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if txn.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.AccountID != "" {
		touches := false
		for _, e := range txn.Entries {
			if e.AccountID == f.AccountID {
				touches = true
				break
			}
		}
		if !touches {
			return false
		}
	}
	return true
}

// FilterTransactions returns the transactions that match the filter, keeping their order.
func FilterTransactions(txns []domain.Transaction, filter TransactionFilter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if filter.Matches(txn) {
			out = append(out, txn)
		}
	}
	return out
}

// SummarizeTransactions totals transaction amounts by type.
func SummarizeTransactions(txns []domain.Transaction) domain.TransactionTotals {
	totals := domain.TransactionTotals{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		TotalExpenses:  decimal.Zero,
		TotalTransfers: decimal.Zero,
	}
	for _, txn := range txns {
		switch txn.Type {
		case domain.TxSale:
			totals.TotalSales = totals.TotalSales.Add(txn.TotalAmount)
			totals.SalesCount++
		case domain.TxPurchase:
			totals.TotalPurchases = totals.TotalPurchases.Add(txn.TotalAmount)
			totals.PurchasesCount++
		case domain.TxExpense:
			totals.TotalExpenses = totals.TotalExpenses.Add(txn.TotalAmount)
			totals.ExpensesCount++
		case domain.TxTransfer:
			totals.TotalTransfers = totals.TotalTransfers.Add(txn.TotalAmount)
			totals.TransfersCount++
		}
		totals.TransactionCount++
	}
	return totals
}

// CalculateProfit computes the profit and loss of a set of transactions.
//
// With a nil or open year the cost of goods sold is the purchases total:
//
//	net = sales - purchases - expenses
//
// A closed year with recorded stock values adjusts for inventory:
//
//	net = sales + closing - (opening + purchases + expenses)
func CalculateProfit(txns []domain.Transaction, year *domain.FinancialYear) domain.ProfitReport {
	totals := SummarizeTransactions(txns)
	report := domain.ProfitReport{TransactionTotals: totals}

	cogs := totals.TotalPurchases
	if year != nil && year.IsClosed() {
		opening := year.OpeningStockValue
		closing := *year.ClosingStockValue
		report.OpeningStockValue = &opening
		report.ClosingStockValue = &closing
		report.UsedStockAdjustment = true
		cogs = opening.Add(totals.TotalPurchases).Sub(closing)
	}

	report.CostOfGoodsSold = cogs
	report.GrossProfit = totals.TotalSales.Sub(cogs)
	report.NetProfit = report.GrossProfit.Sub(totals.TotalExpenses)
	report.ProfitMargin = decimal.Zero
	if !totals.TotalSales.IsZero() {
		report.ProfitMargin = report.NetProfit.Div(totals.TotalSales).Mul(hundred).Round(2)
	}
	return report
}

// TransactionsInYear selects the transactions that belong to a financial year:
// those tagged with its id, or untagged ones of the same shop dated inside it.
func TransactionsInYear(txns []domain.Transaction, year domain.FinancialYear) []domain.Transaction {
	out := make([]domain.Transaction, 0)
	for _, txn := range txns {
		if txn.FinancialYearID != "" {
			if txn.FinancialYearID == year.FinancialYearID {
				out = append(out, txn)
			}
			continue
		}
		if txn.ShopID == year.ShopID && year.Contains(txn.Date) {
			out = append(out, txn)
		}
	}
	return out
}
