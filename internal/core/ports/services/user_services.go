package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/saifipay/saifi-backend/internal/dto"
)

// UserSvcFacade manages wallet owners and authentication.
type UserSvcFacade interface {
	// Register creates a user with a bcrypt password hash and normalized
	// phone number.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies phone number and password, returning the user on
	// success or apperrors.ErrUnauthorized.
	Authenticate(ctx context.Context, phoneNumber, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ResolveRecipient finds a transfer recipient by user ID or phone number.
	// Phone lookup tries the exact normalized digits first, then a suffix
	// match on the last 9 digits, excluding the sender.
	ResolveRecipient(ctx context.Context, recipientID, phone, senderUserID string) (*domain.User, error)
}
