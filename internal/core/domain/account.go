package domain

import (
	"github.com/shopspring/decimal"
)

// AccountClassification is the financial statement group an account reports under.
type AccountClassification string

const (
	Asset     AccountClassification = "ASSET"
	Liability AccountClassification = "LIABILITY"
	Equity    AccountClassification = "EQUITY"
	Revenue   AccountClassification = "REVENUE"
	Expense   AccountClassification = "EXPENSE"
)

// AccountNature is the side on which an account's balance normally increases.
type AccountNature string

const (
	DebitNature  AccountNature = "DEBIT"
	CreditNature AccountNature = "CREDIT"
)

// AccountType is the operational role of an account inside a shop.
type AccountType string

const (
	AccountTypeCash         AccountType = "CASH"
	AccountTypeBank         AccountType = "BANK"
	AccountTypeCustomer     AccountType = "CUSTOMER"
	AccountTypeSupplier     AccountType = "SUPPLIER"
	AccountTypeStock        AccountType = "STOCK"
	AccountTypeSales        AccountType = "SALES"
	AccountTypePurchases    AccountType = "PURCHASES"
	AccountTypeExpense      AccountType = "EXPENSE"
	AccountTypeOpeningStock AccountType = "OPENING_STOCK"
	AccountTypeEndingStock  AccountType = "ENDING_STOCK"
	AccountTypeOther        AccountType = "OTHER"
)

// NatureFor returns the normal balance side of a classification.
func NatureFor(c AccountClassification) AccountNature {
	switch c {
	case Liability, Equity, Revenue:
		return CreditNature
	default:
		return DebitNature
	}
}

// Account represents a node of a shop's chart of accounts.
// Main accounts have an empty ParentID; sub-accounts point at their main account.
type Account struct {
	AccountID      string                `json:"accountID"`
	ShopID         string                `json:"shopID"`
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	NameEn         string                `json:"nameEn"`
	ParentID       string                `json:"parentID"` // Empty for main accounts
	Classification AccountClassification `json:"classification"`
	Nature         AccountNature         `json:"nature"`
	Type           AccountType           `json:"type"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	IsActive       bool                  `json:"isActive"`
	AuditFields
}

// IsMain reports whether the account sits at the top of the hierarchy.
func (a Account) IsMain() bool {
	return a.ParentID == ""
}

// IsCreditNature reports whether the account's display sign is inverted.
func (a Account) IsCreditNature() bool {
	return a.Nature == CreditNature
}
