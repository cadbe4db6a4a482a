package mapping

import (
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelFinancialYear converts a domain FinancialYear to a model FinancialYear
func ToModelFinancialYear(d domain.FinancialYear) models.FinancialYear {
	m := models.FinancialYear{
		FinancialYearID:   d.FinancialYearID,
		ShopID:            d.ShopID,
		Name:              d.Name,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		Status:            string(d.Status),
		OpeningStockValue: d.OpeningStockValue,
		Notes:             d.Notes,
		ClosedAt:          nullTime(d.ClosedAt),
		ClosedBy:          nullString(d.ClosedBy),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.ClosingStockValue != nil {
		m.ClosingStockValue = decimal.NewNullDecimal(*d.ClosingStockValue)
	}
	return m
}

// ToDomainFinancialYear converts a model FinancialYear to a domain FinancialYear
func ToDomainFinancialYear(m models.FinancialYear) domain.FinancialYear {
	d := domain.FinancialYear{
		FinancialYearID:   m.FinancialYearID,
		ShopID:            m.ShopID,
		Name:              m.Name,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Status:            domain.FinancialYearStatus(m.Status),
		OpeningStockValue: m.OpeningStockValue,
		Notes:             m.Notes,
		ClosedAt:          timePtr(m.ClosedAt),
		ClosedBy:          m.ClosedBy.String,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.ClosingStockValue.Valid {
		v := m.ClosingStockValue.Decimal
		d.ClosingStockValue = &v
	}
	return d
}

// ToDomainFinancialYearSlice converts a slice of model FinancialYears to domain FinancialYears
func ToDomainFinancialYearSlice(ms []models.FinancialYear) []domain.FinancialYear {
	ds := make([]domain.FinancialYear, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFinancialYear(m)
	}
	return ds
}
