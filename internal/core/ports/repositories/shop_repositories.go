package repositories

import (
	"context"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
)

// ShopReader defines read operations for shop data
type ShopReader interface {
	// FindShopByID retrieves a specific shop by its ID.
	FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error)

	// ListShops retrieves all shops, optionally only the active ones.
	ListShops(ctx context.Context, activeOnly bool) ([]domain.Shop, error)
}

// ShopWriter defines write operations for shop data
type ShopWriter interface {
	// UpdateShop updates an existing shop's details.
	UpdateShop(ctx context.Context, shop domain.Shop) error

	// DeactivateShop marks a shop as inactive.
	DeactivateShop(ctx context.Context, shopID string, userID string, now time.Time) error
}

// ShopBootstrapper creates a shop together with the records it cannot live without.
type ShopBootstrapper interface {
	// CreateShopWithDefaults inserts the shop, its chart of accounts and its first
	// financial year in a single database transaction.
	CreateShopWithDefaults(ctx context.Context, shop domain.Shop, accounts []domain.Account, year domain.FinancialYear) error
}

// ShopRepositoryFacade combines all shop-related repository interfaces
type ShopRepositoryFacade interface {
	ShopReader
	ShopWriter
	ShopBootstrapper
}
