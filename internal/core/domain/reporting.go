package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTotals sums transaction amounts per business type.
type TransactionTotals struct {
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalTransfers   decimal.Decimal `json:"totalTransfers"`
	SalesCount       int             `json:"salesCount"`
	PurchasesCount   int             `json:"purchasesCount"`
	ExpensesCount    int             `json:"expensesCount"`
	TransfersCount   int             `json:"transfersCount"`
	TransactionCount int             `json:"transactionCount"`
}

// ProfitReport is the profit and loss result for a period or a financial year.
type ProfitReport struct {
	TransactionTotals
	OpeningStockValue   *decimal.Decimal `json:"openingStockValue,omitempty"`
	ClosingStockValue   *decimal.Decimal `json:"closingStockValue,omitempty"`
	CostOfGoodsSold     decimal.Decimal  `json:"costOfGoodsSold"`
	GrossProfit         decimal.Decimal  `json:"grossProfit"`
	NetProfit           decimal.Decimal  `json:"netProfit"`
	ProfitMargin        decimal.Decimal  `json:"profitMargin"` // Percent of sales
	UsedStockAdjustment bool             `json:"usedStockAdjustment"`
}

// ProfitMatrix aggregates profit across shops and financial years.
// perShopPerYear is keyed by shopID then by financial year name.
type ProfitMatrix struct {
	PerShopPerYear  map[string]map[string]decimal.Decimal `json:"perShopPerYear"`
	PerShopAllYears map[string]decimal.Decimal            `json:"perShopAllYears"`
	AllShopsPerYear map[string]decimal.Decimal            `json:"allShopsPerYear"`
	GrandTotal      decimal.Decimal                       `json:"grandTotal"`
	ShopNames       map[string]string                     `json:"shopNames"`
	YearNames       []string                              `json:"yearNames"`
}

// DiscrepancySeverity grades a stock continuity mismatch.
type DiscrepancySeverity string

const (
	SeverityWarning DiscrepancySeverity = "WARNING"
	SeverityError   DiscrepancySeverity = "ERROR"
)

// YearContinuityCheck is the continuity verdict for one year against its successor.
type YearContinuityCheck struct {
	FinancialYearID     string              `json:"financialYearID"`
	Name                string              `json:"name"`
	Status              FinancialYearStatus `json:"status"`
	OpeningStockValue   decimal.Decimal     `json:"openingStockValue"`
	ClosingStockValue   *decimal.Decimal    `json:"closingStockValue,omitempty"`
	NextFinancialYearID string              `json:"nextFinancialYearID,omitempty"`
	NextOpeningStock    *decimal.Decimal    `json:"nextOpeningStock,omitempty"`
	Difference          decimal.Decimal     `json:"difference"`
	IsContinuous        bool                `json:"isContinuous"`
	Checked             bool                `json:"checked"`
}

// StockDiscrepancy records a closing/opening stock mismatch between consecutive years.
type StockDiscrepancy struct {
	FromYearID        string              `json:"fromYearID"`
	FromYearName      string              `json:"fromYearName"`
	ToYearID          string              `json:"toYearID"`
	ToYearName        string              `json:"toYearName"`
	ClosingStockValue decimal.Decimal     `json:"closingStockValue"`
	OpeningStockValue decimal.Decimal     `json:"openingStockValue"`
	Difference        decimal.Decimal     `json:"difference"` // closing - opening
	Severity          DiscrepancySeverity `json:"severity"`
	SuggestedAction   string              `json:"suggestedAction"`
	SuggestedActionEn string              `json:"suggestedActionEn"`
}

// StockContinuityReport is the outcome of checking a shop's financial years in order.
type StockContinuityReport struct {
	ShopID        string                `json:"shopID"`
	IsValid       bool                  `json:"isValid"`
	Years         []YearContinuityCheck `json:"years"`
	Discrepancies []StockDiscrepancy    `json:"discrepancies"`
	CheckedAt     time.Time             `json:"checkedAt"`
}

// AccountTreeNode is an account with its aggregated balance and its children.
type AccountTreeNode struct {
	Account        Account           `json:"account"`
	Balance        decimal.Decimal   `json:"balance"`
	DisplayBalance decimal.Decimal   `json:"displayBalance"`
	Depth          int               `json:"depth"`
	Children       []AccountTreeNode `json:"children"`
}

// StatementLine is one movement on an account statement.
type StatementLine struct {
	TransactionID  string          `json:"transactionID"`
	Date           time.Time       `json:"date"`
	Type           TransactionType `json:"type"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountStatement lists an account's movements over a period.
type AccountStatement struct {
	Account        Account         `json:"account"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []StatementLine `json:"lines"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// DailyPoint is one day of the dashboard series.
type DailyPoint struct {
	Date      string          `json:"date"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"`
}

// DashboardSummary is the analytics snapshot of one shop for a period.
type DashboardSummary struct {
	ShopID       string          `json:"shopID"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Profit       ProfitReport    `json:"profit"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	BankBalance  decimal.Decimal `json:"bankBalance"`
	Receivables  decimal.Decimal `json:"receivables"`
	Payables     decimal.Decimal `json:"payables"`
	DailySeries  []DailyPoint    `json:"dailySeries"`
	AccountCount int             `json:"accountCount"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
