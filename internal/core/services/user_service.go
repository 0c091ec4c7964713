package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
	"github.com/saifipay/saifi-backend/internal/utils"
)

// phoneSuffixLen is how many trailing digits identify a local subscriber
// number once country-code prefixes are stripped.
const phoneSuffixLen = 9

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user registration/authentication service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// NormalizePhone strips everything but digits from a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	phone := NormalizePhone(req.PhoneNumber)
	if len(phone) < phoneSuffixLen {
		return nil, fmt.Errorf("%w: phone number too short", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByPhone(ctx, phone); err == nil {
		return nil, fmt.Errorf("%w: phone number already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		PhoneNumber:  phone,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: phone number already registered", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("phone", phone))
		return nil, fmt.Errorf("saving user: %w", err)
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, phoneNumber, password string) (*domain.User, error) {
	phone := NormalizePhone(phoneNumber)
	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("finding user by id: %w", err)
	}
	return user, nil
}

func (s *userService) ResolveRecipient(ctx context.Context, recipientID, phone, senderUserID string) (*domain.User, error) {
	if recipientID != "" {
		user, err := s.userRepo.FindUserByID(ctx, recipientID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrRecipientNotFound
			}
			return nil, fmt.Errorf("finding recipient: %w", err)
		}
		return user, nil
	}

	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, fmt.Errorf("%w: recipient id or phone required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByPhone(ctx, normalized)
	if err == nil {
		if user.UserID == senderUserID {
			return nil, apperrors.ErrSelfTransfer
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("finding recipient by phone: %w", err)
	}

	// Tolerate country-code prefixes: retry on the trailing digits.
	if len(normalized) >= phoneSuffixLen {
		suffix := normalized[len(normalized)-phoneSuffixLen:]
		user, err = s.userRepo.FindUserByPhoneSuffix(ctx, suffix, senderUserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("finding recipient by phone suffix: %w", err)
		}
	}
	return nil, apperrors.ErrRecipientNotFound
}
