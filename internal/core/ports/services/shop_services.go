package services

import (
	"context"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

// ShopReaderSvc defines read operations for shop data
type ShopReaderSvc interface {
	// GetShopByID retrieves a shop the user may access.
	GetShopByID(ctx context.Context, shopID string, userID string) (*domain.Shop, error)

	// ListShops retrieves the shops visible to the user.
	ListShops(ctx context.Context, userID string, includeInactive bool) ([]domain.Shop, error)
}

// ShopWriterSvc defines write operations for shop data
type ShopWriterSvc interface {
	// CreateShop opens a shop with its default chart of accounts and first financial year.
	CreateShop(ctx context.Context, req dto.CreateShopRequest, userID string) (*domain.Shop, error)

	// UpdateShop updates a shop's descriptive fields.
	UpdateShop(ctx context.Context, shopID string, req dto.UpdateShopRequest, userID string) (*domain.Shop, error)

	// DeactivateShop marks a shop as inactive.
	DeactivateShop(ctx context.Context, shopID string, userID string) error
}

// ShopSvcFacade combines all shop-related service interfaces
type ShopSvcFacade interface {
	ShopReaderSvc
	ShopWriterSvc
}

// ShopAuthorizerSvc decides whether a user may act on a shop.
type ShopAuthorizerSvc interface {
	// AuthorizeShopAccess fails with apperrors.ErrForbidden unless the user can reach shopID.
	AuthorizeShopAccess(ctx context.Context, userID, shopID string) error

	// AuthorizeAdmin fails with apperrors.ErrForbidden unless the user is an active admin.
	AuthorizeAdmin(ctx context.Context, userID string) error

	// AccessibleShopIDs returns the shops the user can reach; nil means every shop.
	AccessibleShopIDs(ctx context.Context, userID string) ([]string, error)
}
