package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
)

type walletService struct {
	BaseService
	walletRepo portsrepo.WalletRepositoryFacade
}

// NewWalletService creates the wallet lookup/creation service.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{walletRepo: walletRepo}
}

func (s *walletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallets", slog.String("user_id", userID))
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	return wallets, nil
}

func (s *walletService) GetOrCreateWallet(ctx context.Context, userID, currencyCode string) (*domain.Wallet, error) {
	if !domain.IsSupportedCurrency(currencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, currencyCode)
	}

	wallet, err := s.walletRepo.FindWalletByUserAndCurrency(ctx, userID, currencyCode)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up wallet",
			slog.String("user_id", userID), slog.String("currency", currencyCode))
		return nil, fmt.Errorf("finding wallet: %w", err)
	}

	now := time.Now()
	created := domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		CurrencyCode: currencyCode,
		Balance:      decimal.Zero,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.walletRepo.SaveWallet(ctx, created); err != nil {
		// Another request may have created the same wallet concurrently;
		// re-read once before giving up.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.walletRepo.FindWalletByUserAndCurrency(ctx, userID, currencyCode)
		}
		s.LogError(ctx, err, "Failed to create wallet",
			slog.String("user_id", userID), slog.String("currency", currencyCode))
		return nil, fmt.Errorf("creating wallet: %w", err)
	}
	s.LogInfo(ctx, "Wallet created",
		slog.String("wallet_id", created.WalletID),
		slog.String("user_id", userID),
		slog.String("currency", currencyCode))
	return &created, nil
}
