package mapping

import (
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		ShopID:         d.ShopID,
		Code:           d.Code,
		Name:           d.Name,
		NameEn:         d.NameEn,
		ParentID:       nullString(d.ParentID),
		Classification: string(d.Classification),
		Nature:         string(d.Nature),
		AccountType:    string(d.Type),
		OpeningBalance: d.OpeningBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		ShopID:         m.ShopID,
		Code:           m.Code,
		Name:           m.Name,
		NameEn:         m.NameEn,
		ParentID:       m.ParentID.String,
		Classification: domain.AccountClassification(m.Classification),
		Nature:         domain.AccountNature(m.Nature),
		Type:           domain.AccountType(m.AccountType),
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
