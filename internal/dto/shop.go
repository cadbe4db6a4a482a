package dto

import (
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateShopRequest defines the data needed to open a new shop.
// The first financial year defaults to the current calendar year.
type CreateShopRequest struct {
	Name              string          `json:"name" binding:"required,max=120"`
	NameEn            string          `json:"nameEn" binding:"max=120"`
	Code              string          `json:"code" binding:"required,account_code"`
	BusinessType      string          `json:"businessType" binding:"max=60"`
	Address           string          `json:"address" binding:"max=255"`
	Phone             string          `json:"phone" binding:"max=40"`
	OpeningStockValue decimal.Decimal `json:"openingStockValue" binding:"decimal_nonnegative"`
	FirstYearName     string          `json:"firstYearName"`
	FirstYearStart    *time.Time      `json:"firstYearStart"`
	FirstYearEnd      *time.Time      `json:"firstYearEnd"`
}

// UpdateShopRequest defines the data allowed for updating a shop.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateShopRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=120"`
	NameEn       *string `json:"nameEn" binding:"omitempty,max=120"`
	BusinessType *string `json:"businessType" binding:"omitempty,max=60"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	Phone        *string `json:"phone" binding:"omitempty,max=40"`
}

// ShopResponse defines the data returned for a shop.
type ShopResponse struct {
	ShopID            string          `json:"shopID"`
	Name              string          `json:"name"`
	NameEn            string          `json:"nameEn"`
	Code              string          `json:"code"`
	BusinessType      string          `json:"businessType" binding:"max=60"`
	Address           string          `json:"address" binding:"max=255"`
	Phone             string          `json:"phone" binding:"max=40"`
	IsActive          bool            `json:"isActive"`
	OpeningStockValue decimal.Decimal `json:"openingStockValue"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy     string          `json:"lastUpdatedBy"`
}

// ListShopsResponse wraps the list of shops.
type ListShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}

// ToShopResponse converts a domain.Shop to ShopResponse DTO
func ToShopResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ShopID:            s.ShopID,
		Name:              s.Name,
		NameEn:            s.NameEn,
		Code:              s.Code,
		BusinessType:      s.BusinessType,
		Address:           s.Address,
		Phone:             s.Phone,
		IsActive:          s.IsActive,
		OpeningStockValue: s.OpeningStockValue,
		CreatedAt:         s.CreatedAt,
		CreatedBy:         s.CreatedBy,
		LastUpdatedAt:     s.LastUpdatedAt,
		LastUpdatedBy:     s.LastUpdatedBy,
	}
}

// ToListShopsResponse converts a slice of domain.Shop to ListShopsResponse DTO
func ToListShopsResponse(shops []domain.Shop) ListShopsResponse {
	res := make([]ShopResponse, len(shops))
	for i := range shops {
		res[i] = ToShopResponse(&shops[i])
	}
	return ListShopsResponse{Shops: res}
}
