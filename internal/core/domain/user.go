package domain

import "time"

// UserRole decides which shops a user can reach.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string     `json:"userID"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	ShopID       string     `json:"shopID,omitempty"` // Shop an ordinary user is bound to
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields

	// Refresh token state, never serialized
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// CanAccessShop reports whether the user may read or write data of shopID.
func (u User) CanAccessShop(shopID string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.ShopID != "" && u.ShopID == shopID
}
