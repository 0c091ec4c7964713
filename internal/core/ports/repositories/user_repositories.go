package repositories

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByPhone retrieves a user by exact normalized phone number.
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)

	// FindUserByPhoneSuffix retrieves the first user (excluding excludeUserID)
	// whose phone number ends with the given suffix. Used to tolerate
	// country-code prefixes in P2P recipient lookup.
	FindUserByPhoneSuffix(ctx context.Context, suffix string, excludeUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user row.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
