package mapping

import (
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction into its header row and entry rows.
func ToModelTransaction(d domain.Transaction) (models.Transaction, []models.Entry) {
	header := models.Transaction{
		TransactionID:   d.TransactionID,
		ShopID:          d.ShopID,
		FinancialYearID: nullString(d.FinancialYearID),
		TransactionType: string(d.Type),
		TransactionDate: d.Date,
		TotalAmount:     d.TotalAmount,
		Description:     d.Description,
		PartyID:         d.PartyID,
		CategoryID:      d.CategoryID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	entries := make([]models.Entry, len(d.Entries))
	for i, e := range d.Entries {
		entries[i] = models.Entry{
			TransactionID: d.TransactionID,
			LineNo:        i + 1,
			AccountID:     e.AccountID,
			Amount:        e.Amount,
			Side:          string(e.Side),
		}
	}
	return header, entries
}

// ToDomainTransaction converts a header row and its entry rows to a domain Transaction
func ToDomainTransaction(m models.Transaction, entries []models.Entry) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		ShopID:          m.ShopID,
		FinancialYearID: m.FinancialYearID.String,
		Type:            domain.TransactionType(m.TransactionType),
		Date:            m.TransactionDate,
		TotalAmount:     m.TotalAmount,
		Description:     m.Description,
		PartyID:         m.PartyID,
		CategoryID:      m.CategoryID,
		Entries:         make([]domain.Entry, len(entries)),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	for i, e := range entries {
		d.Entries[i] = domain.Entry{
			AccountID: e.AccountID,
			Amount:    e.Amount,
			Side:      domain.EntrySide(e.Side),
		}
	}
	return d
}
