package mapping

import (
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/models"
)

// ToModelShop converts a domain Shop to a model Shop
func ToModelShop(d domain.Shop) models.Shop {
	return models.Shop{
		ShopID:            d.ShopID,
		Name:              d.Name,
		NameEn:            d.NameEn,
		Code:              d.Code,
		BusinessType:      d.BusinessType,
		Address:           d.Address,
		Phone:             d.Phone,
		IsActive:          d.IsActive,
		OpeningStockValue: d.OpeningStockValue,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShop converts a model Shop to a domain Shop
func ToDomainShop(m models.Shop) domain.Shop {
	return domain.Shop{
		ShopID:            m.ShopID,
		Name:              m.Name,
		NameEn:            m.NameEn,
		Code:              m.Code,
		BusinessType:      m.BusinessType,
		Address:           m.Address,
		Phone:             m.Phone,
		IsActive:          m.IsActive,
		OpeningStockValue: m.OpeningStockValue,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainShopSlice converts a slice of model Shops to a slice of domain Shops
func ToDomainShopSlice(ms []models.Shop) []domain.Shop {
	ds := make([]domain.Shop, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShop(m)
	}
	return ds
}
