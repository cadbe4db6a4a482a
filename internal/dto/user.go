package dto

import (
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a user.
// Ordinary users must be bound to a shop.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required,max=120"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8,max=72"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN USER"`
	ShopID   string          `json:"shopID" binding:"required_if=Role USER"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=120"`
	Role     *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN USER"`
	ShopID   *string          `json:"shopID"`
	IsActive *bool            `json:"isActive"`
	Password *string          `json:"password" binding:"omitempty,min=8,max=72"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        domain.UserRole `json:"role"`
	ShopID      string          `json:"shopID,omitempty"`
	IsActive    bool            `json:"isActive"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		ShopID:      user.ShopID,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
