package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type chartNode struct {
	code           string
	name, nameEn   string
	classification domain.AccountClassification
	accType        domain.AccountType
	children       []chartNode
}

// defaultChart is the chart of accounts every new shop starts with.
var defaultChart = []chartNode{
	{code: "1000", name: "الصندوق", nameEn: "Cash", classification: domain.Asset, accType: domain.AccountTypeCash, children: []chartNode{
		{code: "1001", name: "صندوق المحل", nameEn: "Shop Cash Box"},
	}},
	{code: "1100", name: "البنك", nameEn: "Bank", classification: domain.Asset, accType: domain.AccountTypeBank, children: []chartNode{
		{code: "1101", name: "الحساب البنكي", nameEn: "Bank Account"},
	}},
	{code: "1200", name: "العملاء", nameEn: "Customers", classification: domain.Asset, accType: domain.AccountTypeCustomer},
	{code: "1300", name: "المخزون", nameEn: "Inventory", classification: domain.Asset, accType: domain.AccountTypeStock},
	{code: "1400", name: "بضاعة أول المدة", nameEn: "Opening Stock", classification: domain.Asset, accType: domain.AccountTypeOpeningStock},
	{code: "1500", name: "بضاعة آخر المدة", nameEn: "Ending Stock", classification: domain.Asset, accType: domain.AccountTypeEndingStock},
	{code: "2000", name: "الموردون", nameEn: "Suppliers", classification: domain.Liability, accType: domain.AccountTypeSupplier},
	{code: "3000", name: "رأس المال", nameEn: "Capital", classification: domain.Equity, accType: domain.AccountTypeOther},
	{code: "4000", name: "المبيعات", nameEn: "Sales", classification: domain.Revenue, accType: domain.AccountTypeSales, children: []chartNode{
		{code: "4001", name: "مبيعات نقدية", nameEn: "Cash Sales"},
		{code: "4002", name: "مبيعات آجلة", nameEn: "Credit Sales"},
	}},
	{code: "5000", name: "المشتريات", nameEn: "Purchases", classification: domain.Expense, accType: domain.AccountTypePurchases, children: []chartNode{
		{code: "5001", name: "مشتريات نقدية", nameEn: "Cash Purchases"},
		{code: "5002", name: "مشتريات آجلة", nameEn: "Credit Purchases"},
	}},
	{code: "6000", name: "المصروفات", nameEn: "Expenses", classification: domain.Expense, accType: domain.AccountTypeExpense, children: []chartNode{
		{code: "6001", name: "الإيجار", nameEn: "Rent"},
		{code: "6002", name: "الرواتب", nameEn: "Salaries"},
		{code: "6003", name: "الكهرباء والمياه", nameEn: "Utilities"},
		{code: "6004", name: "مصروفات نثرية", nameEn: "Miscellaneous"},
	}},
}

// defaultAccounts materializes defaultChart for a shop. Sub-accounts inherit
// classification, nature and type from their main account.
func defaultAccounts(shopID, userID string, now time.Time) []domain.Account {
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	accounts := make([]domain.Account, 0, 24)
	for _, main := range defaultChart {
		parent := domain.Account{
			AccountID:      uuid.NewString(),
			ShopID:         shopID,
			Code:           main.code,
			Name:           main.name,
			NameEn:         main.nameEn,
			Classification: main.classification,
			Nature:         domain.NatureFor(main.classification),
			Type:           main.accType,
			OpeningBalance: decimal.Zero,
			IsActive:       true,
			AuditFields:    audit,
		}
		accounts = append(accounts, parent)
		for _, child := range main.children {
			accounts = append(accounts, domain.Account{
				AccountID:      uuid.NewString(),
				ShopID:         shopID,
				Code:           child.code,
				Name:           child.name,
				NameEn:         child.nameEn,
				ParentID:       parent.AccountID,
				Classification: parent.Classification,
				Nature:         parent.Nature,
				Type:           parent.Type,
				OpeningBalance: decimal.Zero,
				IsActive:       true,
				AuditFields:    audit,
			})
		}
	}
	return accounts
}
