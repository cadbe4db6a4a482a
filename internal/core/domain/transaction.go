package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the business event a transaction records.
type TransactionType string

const (
	TxSale     TransactionType = "SALE"
	TxPurchase TransactionType = "PURCHASE"
	TxExpense  TransactionType = "EXPENSE"
	TxTransfer TransactionType = "TRANSFER"
)

// EntrySide tags an entry explicitly as debit or credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Entry is one posting line of a transaction. Amount is signed:
// positive increases the debit side, negative the credit side.
type Entry struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Side      EntrySide       `json:"side,omitempty"`
}

// Transaction is a dated business event with its double-entry postings.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	ShopID          string          `json:"shopID"`
	FinancialYearID string          `json:"financialYearID,omitempty"`
	Type            TransactionType `json:"type"`
	Date            time.Time       `json:"date"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Description     string          `json:"description"`
	PartyID         string          `json:"partyID,omitempty"`
	CategoryID      string          `json:"categoryID,omitempty"`
	Entries         []Entry         `json:"entries"`
	AuditFields
}

// AccountIDs returns the distinct accounts touched by the transaction in entry order.
func (t Transaction) AccountIDs() []string {
	seen := make(map[string]struct{}, len(t.Entries))
	ids := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}
		seen[e.AccountID] = struct{}{}
		ids = append(ids, e.AccountID)
	}
	return ids
}
