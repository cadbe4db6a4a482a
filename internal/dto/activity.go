package dto

import "github.com/hossamSharif/shop_ledger/internal/core/domain"

// ListActivityParams defines query parameters for the activity feed.
type ListActivityParams struct {
	ShopID     string `form:"shopID"`
	UnreadOnly bool   `form:"unreadOnly,default=false"`
	Limit      int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// MarkAllReadRequest selects which shop feed to clear. Empty means every reachable shop.
type MarkAllReadRequest struct {
	ShopID string `json:"shopID"`
}

// ListActivityResponse wraps a page of the activity feed.
type ListActivityResponse struct {
	Activities []domain.ActivityLog `json:"activities"`
	Unread     int                  `json:"unread"`
}
