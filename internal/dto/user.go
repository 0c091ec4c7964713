package dto

import (
	"time"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// RegisterUserRequest creates a new wallet owner.
type RegisterUserRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,min=9"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates by phone number and password.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// UserResponse is the API shape of a user, without credential material.
type UserResponse struct {
	UserID      string    `json:"userID"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}
