package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// WalletSvcFacade exposes wallet lookup and lazy creation.
type WalletSvcFacade interface {
	// ListWallets returns the user's existing wallets (possibly none).
	ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error)

	// GetOrCreateWallet returns the wallet for (user, currency), creating it
	// with a zero balance and inactive flag if it does not exist yet.
	GetOrCreateWallet(ctx context.Context, userID, currencyCode string) (*domain.Wallet, error)
}
