package repositories

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// WalletReader defines read operations for wallet data.
type WalletReader interface {
	// FindWalletByID retrieves a wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindWalletByUserAndCurrency retrieves the single wallet for a
	// (user, currency) pair. Returns apperrors.ErrNotFound when the wallet
	// has never been created; "absent" is distinct from "zero balance".
	FindWalletByUserAndCurrency(ctx context.Context, userID, currencyCode string) (*domain.Wallet, error)

	// ListWalletsByUser retrieves all wallets belonging to a user.
	ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data. Balance mutation is
// deliberately absent: balances change only through LedgerWriter.ApplyTransfer.
type WalletWriter interface {
	// SaveWallet persists a new wallet row.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// SetWalletActive flips the active flag. Wallets are never deleted.
	SetWalletActive(ctx context.Context, walletID string, active bool, updatedBy string) error
}

// WalletRepositoryFacade combines all wallet repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
