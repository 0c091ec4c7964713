package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// UserRepository implements the user ports over the in-memory store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates the in-memory user repository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	user, ok := r.store.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return &user, nil
}

func (r *UserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	userID, ok := r.store.userIDsByPhone[phone]
	if !ok {
		return nil, fmt.Errorf("%w: no user with phone %s", apperrors.ErrNotFound, phone)
	}
	user := r.store.users[userID]
	return &user, nil
}

func (r *UserRepository) FindUserByPhoneSuffix(ctx context.Context, suffix string, excludeUserID string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// Deterministic scan order keeps suffix collisions stable across calls.
	phones := make([]string, 0, len(r.store.userIDsByPhone))
	for phone := range r.store.userIDsByPhone {
		phones = append(phones, phone)
	}
	sort.Strings(phones)

	for _, phone := range phones {
		if !strings.HasSuffix(phone, suffix) {
			continue
		}
		userID := r.store.userIDsByPhone[phone]
		if userID == excludeUserID {
			continue
		}
		user := r.store.users[userID]
		return &user, nil
	}
	return nil, fmt.Errorf("%w: no user with phone suffix %s", apperrors.ErrNotFound, suffix)
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.userIDsByPhone[user.PhoneNumber]; ok {
		return fmt.Errorf("%w: phone %s", apperrors.ErrDuplicate, user.PhoneNumber)
	}
	r.store.users[user.UserID] = user
	r.store.userIDsByPhone[user.PhoneNumber] = user.UserID
	return nil
}
